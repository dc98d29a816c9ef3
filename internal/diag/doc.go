// Package diag defines the core diagnostic model shared by every phase of the
// ZPL toolchain: lexer, parser, and the three validator passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the parser and validator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting, IO, or CLI integration. Rendering
// responsibilities live in internal/diagfmt; orchestration lives in the driver
// layer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error), see severity.go.
//   - Code – a stable numeric identifier (see codes.go) rendered as "ZPLnnnn"
//     for validator codes or "ZPL.PARSER.nnnn" for parser codes.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the canonical source.Span the diagnostic anchors to.
//   - Context – an ordered key/value map (e.g. "profile_dpi"="203") giving
//     machine-readable detail without parsing Message.
//   - Notes – optional secondary spans/messages for additional context, such
//     as "state set here" pointing back to an earlier ^BY.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. Callers
// construct a Diagnostic with New/NewError/NewWarning/NewInfo (or the fluent
// NewReportBuilder/ReportError/ReportWarning/ReportInfo, chaining WithContext/
// WithNote before Emit), then hand it to a Reporter.
//
// diag.BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication, filtering, and transformation. diag.DedupReporter wraps
// another Reporter and suppresses repeat emissions of the same finding, which
// matters for validator Pass B rules that re-walk the command stream.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/JSON formats.
//   - internal/driver: coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
package diag
