// Package parser assembles a lossless ast.Document from ZPL II source bytes,
// driving internal/lexer by hand and consulting internal/specdata's
// longest-match trie to resolve opcodes.
package parser

import (
	"fmt"
	"strconv"

	"zplforge/internal/ast"
	"zplforge/internal/diag"
	"zplforge/internal/lexer"
	"zplforge/internal/source"
	"zplforge/internal/specdata"
)

// Parser holds the mutable state of a single parse: the lexer (which itself
// tracks the mutable leader/delimiter), the builder accumulating the
// document, the spec table, and where diagnostics go.
type Parser struct {
	lex   *lexer.Lexer
	b     *ast.Builder
	table *specdata.Table
	rep   diag.Reporter
	file  *source.File

	// hexActive tracks whether ^FH is in effect for subsequent field data.
	// Open Question in spec.md §9 resolves hex-indicator scoping as
	// per-label reset, so it is cleared on every ^XA.
	hexActive bool
}

// Parse builds an ast.Document for file. table supplies opcode metadata
// (specdata.Default() if the caller has no custom table); rep receives parse
// diagnostics (diag.NopReporter{} to discard them).
func Parse(file *source.File, table *specdata.Table, rep diag.Reporter) *ast.Document {
	if table == nil {
		table = specdata.Default()
	}
	if rep == nil {
		rep = diag.NopReporter{}
	}
	p := &Parser{
		lex:   lexer.NewLexer(file),
		b:     ast.NewBuilder(file.ID),
		table: table,
		rep:   rep,
		file:  file,
	}
	p.run()
	return p.b.Document()
}

func (p *Parser) run() {
	if len(p.file.Content) == 0 {
		p.report(diag.NewInfo(diag.ParserEmptyInput, source.Span{File: p.file.ID}, "document is empty"))
		return
	}

	for !p.lex.AtEOF() {
		if leader, ok := p.lex.PeekLeader(); ok {
			p.parseCommand(leader)
			continue
		}
		p.parseTrivia()
	}

	for _, idx := range p.b.CloseDanglingLabels() {
		_ = idx
		p.report(diag.NewError(diag.ParserMissingLabelTerminator, source.Span{File: p.file.ID}, "label is missing its ^XZ terminator"))
	}
}

func (p *Parser) report(d diag.Diagnostic) { p.rep.Report(d) }

func (p *Parser) parseTrivia() {
	kind, text, span, ok := p.lex.ScanTrivia()
	if !ok {
		return
	}
	var tk ast.TriviaKind
	switch kind {
	case lexer.TriviaScanWhitespace:
		tk = ast.TriviaWhitespace
	case lexer.TriviaScanLineBreak:
		tk = ast.TriviaLineBreak
	case lexer.TriviaScanStray:
		tk = ast.TriviaStray
		p.report(diag.NewWarning(diag.ParserStrayContent, span, "stray content outside any command"))
	}
	p.b.AddTrivia(ast.Trivia{Span: span, Kind: tk, Text: text})
}

func (p *Parser) parseCommand(leader byte) {
	start := p.lex.Mark()
	p.lex.BumpLeader()

	candidate := p.lex.ScanOpcodeCandidate()
	spec, n, ok := p.table.LookupLongestMatch(candidate)
	if !ok {
		consume := len(candidate)
		if consume == 0 {
			consume = 1
		}
		p.lex.Advance(consume)
		span := p.lex.SpanFrom(start)
		p.report(diag.NewError(diag.ParserUnknownOpcode, span, fmt.Sprintf("unknown opcode %q", candidate)).
			WithContext("candidate", candidate))
		p.b.AddTrivia(ast.Trivia{Span: span, Kind: ast.TriviaStray, Text: string(p.file.Content[span.Start:span.End])})
		return
	}
	p.lex.Advance(n)

	cmd := ast.Command{Leader: leader, Opcode: spec.Opcode}

	var args []ast.ArgumentID
	if len(spec.Args) > 0 {
		args = p.parseArgs(spec)
	}
	cmd.Args = args

	switch {
	case spec.Opcode == "FX":
		text, span := p.lex.ScanComment()
		cmd.HasFieldData = true
		cmd.FieldData = ast.FieldData{Span: span, Text: text}
	case spec.FieldOwning:
		text, span := p.lex.ScanFieldData()
		cmd.HasFieldData = true
		cmd.FieldData = ast.FieldData{Span: span, Text: text, HexEscaped: p.hexActive}
	case spec.RawDataOwning:
		declared := p.declaredRawLength(args)
		data, span, truncated := p.lex.ScanRawData(declared)
		cmd.HasRawData = true
		cmd.RawData = ast.RawData{Span: span, Declared: uint32(declared), Data: append([]byte(nil), data...)}
		if truncated {
			p.report(diag.NewError(diag.GraphicLengthMismatch, span, "declared byte count exceeds remaining input").
				WithContext("declared", strconv.Itoa(declared)).
				WithContext("actual", strconv.Itoa(len(data))))
		}
	}

	cmd.Span = p.lex.SpanFrom(start)

	switch spec.Opcode {
	case "XA":
		p.hexActive = false
		id := p.b.AddCommand(cmd)
		p.b.OpenLabel(id)
	case "XZ":
		p.hexActive = false
		if p.b.InLabel() {
			id := p.b.AllocateCommand(cmd)
			p.b.CloseLabel(id, false)
		} else {
			p.b.AddCommand(cmd)
		}
	case "CC":
		p.b.AddCommand(cmd)
		prev := p.lex.FormatLeader
		p.applyLeaderChange(args, cmd.Span)
		// The prior leader byte that terminated ^CC still introduces the
		// command right after it; the new leader applies from there on.
		if p.lex.FormatLeader != prev && !p.lex.AtEOF() && p.file.Content[p.lex.Offset()] == prev {
			p.parseCommand(prev)
		}
	case "CD":
		p.b.AddCommand(cmd)
		p.applyDelimiterChange(args, cmd.Span)
	case "FH":
		p.hexActive = true
		p.b.AddCommand(cmd)
	default:
		p.b.AddCommand(cmd)
	}
}

// declaredRawLength pulls the byte count a raw-data-owning command declares
// for its own payload. ^GF's third positional argument ("c", bytes per row)
// is not the total; the second ("b", total bytes) is -- this takes the
// integer argument at positional index 1.
func (p *Parser) declaredRawLength(args []ast.ArgumentID) int {
	doc := p.b.Document()
	for _, id := range args {
		a := doc.Argument(id)
		if a.Index == 1 && a.Kind == ast.KindInteger {
			return int(a.Int)
		}
	}
	return 0
}

func (p *Parser) parseArgs(spec *specdata.CommandSpec) []ast.ArgumentID {
	var args []ast.ArgumentID
	for i := 0; i < len(spec.Args); i++ {
		if _, ok := p.lex.PeekLeader(); ok {
			return args
		}
		text, span, closed := p.lex.ScanArgSlot()
		arg := ast.Argument{Index: safeIdx(i), Span: span, Raw: text}
		if text == "" {
			arg.Presence = ast.Empty
		} else {
			arg.Presence = ast.Value
			decodeArg(&arg, spec.Args[i], text)
		}
		id := p.b.AddArgument(arg)
		args = append(args, id)
		if closed == lexer.ArgTermLeader || closed == lexer.ArgTermEOF {
			return args
		}
	}
	// Every declared slot is filled and the last one was still
	// comma-terminated, so more values follow than the command has room
	// for (spec.md §4.2: arity, ZPL1101, is the first Pass A check). A
	// raw-data-owning command's payload follows that delimiter instead.
	if !spec.RawDataOwning {
		p.scanArityOverflow(spec)
	}
	return args
}

// scanArityOverflow consumes the argument slots beyond a command's declared
// arity and reports them instead of leaving them to fall through to the
// top-level loop as unexplained stray content.
func (p *Parser) scanArityOverflow(spec *specdata.CommandSpec) {
	start := p.lex.Mark()
	for {
		if _, ok := p.lex.PeekLeader(); ok {
			break
		}
		_, _, closed := p.lex.ScanArgSlot()
		if closed == lexer.ArgTermLeader || closed == lexer.ArgTermEOF {
			break
		}
	}
	span := p.lex.SpanFrom(start)
	if span.Start == span.End {
		return
	}
	p.report(diag.NewError(diag.ArityMissingArg, span,
		fmt.Sprintf("%s: more arguments supplied than its %d declared slot(s)", spec.Opcode, len(spec.Args))).
		WithContext("expected", strconv.Itoa(len(spec.Args))))
}

func safeIdx(i int) uint32 { return uint32(i) }

func decodeArg(arg *ast.Argument, spec specdata.ArgSpec, text string) {
	switch spec.Type {
	case specdata.ArgInt:
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			arg.Kind = ast.KindInteger
			arg.Int = v
		}
	case specdata.ArgNumber:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			arg.Kind = ast.KindNumber
			arg.Num = v
		}
	case specdata.ArgChar:
		if len([]rune(text)) == 1 {
			arg.Kind = ast.KindChar
		}
		arg.Str = text
	case specdata.ArgEnum:
		arg.Kind = ast.KindEnum
		arg.Str = text
	case specdata.ArgResource:
		arg.Kind = ast.KindResource
		arg.Str = text
	default:
		arg.Kind = ast.KindIdentifier
		arg.Str = text
	}
}

func (p *Parser) applyLeaderChange(args []ast.ArgumentID, span source.Span) {
	if len(args) == 0 {
		return
	}
	doc := p.b.Document()
	a := doc.Argument(args[0])
	if len([]rune(a.Raw)) != 1 {
		return
	}
	old := p.lex.FormatLeader
	p.lex.FormatLeader = a.Raw[0]
	p.report(diag.NewInfo(diag.InfoPrefixChanged, span,
		fmt.Sprintf("leader changed from %q to %q", string(old), a.Raw)).
		WithContext("from", string(old)).WithContext("to", a.Raw))
}

func (p *Parser) applyDelimiterChange(args []ast.ArgumentID, span source.Span) {
	if len(args) == 0 {
		return
	}
	doc := p.b.Document()
	a := doc.Argument(args[0])
	if len([]rune(a.Raw)) != 1 {
		return
	}
	old := p.lex.Delimiter
	p.lex.Delimiter = a.Raw[0]
	p.report(diag.NewInfo(diag.InfoLanguageModeChanged, span,
		fmt.Sprintf("delimiter changed from %q to %q", string(old), a.Raw)).
		WithContext("from", string(old)).WithContext("to", a.Raw))
}
