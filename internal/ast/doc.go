// Package ast defines the lossless syntax tree produced by the parser:
// Command and Trivia nodes allocated into typed arenas and referenced by
// 1-based IDs, plus the Label grouping that distinguishes a document's
// format plane from its host plane.
//
// Nodes are immutable once built. The parser is the only writer (through
// Builder); every other consumer — validator, formatter, tests — reads the
// Document by value or pointer without mutating it.
package ast
