package lexer

import "zplforge/internal/source"

// Kind classifies a lexical token.
type Kind uint8

const (
	// KindEOF marks the end of input.
	KindEOF Kind = iota
	// KindCommand is a leader byte ('^' or '~') followed by a 2-3 letter
	// opcode, e.g. "^FO", "~HS".
	KindCommand
	// KindArgument is one delimiter-separated argument slot's raw text,
	// not including the delimiter itself. An empty slot (two delimiters
	// back to back, or a delimiter immediately before the next leader)
	// still produces a KindArgument token with an empty span.
	KindArgument
	// KindFieldData is the raw text of a ^FD/^FV field body, up to but
	// not including the terminating ^FS or next leader byte.
	KindFieldData
	// KindRawData is a declared-length byte payload owned by a raw-data
	// command (^GF, ~DG, ...).
	KindRawData
	// KindWhitespace is a run of space/tab bytes outside a command.
	KindWhitespace
	// KindLineBreak is a run of newline bytes outside a command.
	KindLineBreak
	// KindComment is a ^FX comment body, up to the next leader byte.
	KindComment
	// KindStray is a byte sequence outside a label that isn't whitespace,
	// a line break, or a recognized leader -- content the printer itself
	// would silently treat as a no-op but the lexer still surfaces.
	KindStray
)

// Token is one lexical unit with its source span.
type Token struct {
	Kind Kind
	Span source.Span
	Text string // decoded/raw text, meaning depends on Kind
}
