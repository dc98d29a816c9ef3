package ast

import "zplforge/internal/source"

// Presence classifies how an argument slot was written: omitted entirely,
// present but empty (meaning "use default"), or carrying an explicit value.
type Presence uint8

const (
	// Unset means the position is implicit — trailing delimiters were elided.
	Unset Presence = iota
	// Empty means a delimiter marks the slot but no text follows it.
	Empty
	// Value means the slot carries explicit text.
	Value
)

func (p Presence) String() string {
	switch p {
	case Unset:
		return "unset"
	case Empty:
		return "empty"
	case Value:
		return "value"
	default:
		return "unknown"
	}
}

// ValueKind is the decoded type of an argument's value.
type ValueKind uint8

const (
	KindUnknown ValueKind = iota
	KindInteger
	KindNumber
	KindEnum
	KindChar
	KindIdentifier
	KindString
	KindResource
)

// CommandID, TriviaID, and ArgumentID are 1-based arena indices; zero means absent.
type (
	CommandID  uint32
	TriviaID   uint32
	ArgumentID uint32
	LabelID    uint32
)

// Argument is one positional slot in a command's argument list.
type Argument struct {
	Index    uint32
	Span     source.Span
	Raw      string
	Presence Presence
	Kind     ValueKind

	Int  int64
	Num  float64
	Str  string // enum token, char, identifier, free string, or resource ref verbatim
}

// FieldData is the trailing payload of a field-owning command (^FD, ^FV).
type FieldData struct {
	Span source.Span
	Text string
	// HexEscaped reports whether ^FH was active when this payload was lexed.
	HexEscaped bool
}

// RawData is the trailing payload of a binary-data command (^GF, ~DG).
type RawData struct {
	Span     source.Span
	Declared uint32
	Data     []byte
}

// Plane classifies where a command is legal: format (inside a label), host
// (outside any label), or device (configuration, legal in either).
type Plane uint8

const (
	PlaneUnknown Plane = iota
	PlaneFormat
	PlaneHost
	PlaneDevice
)

// Command is a single ZPL command: its leader, opcode, arguments, and any
// trailing field-data/raw-data payload it owns.
type Command struct {
	Span   source.Span
	Leader byte // '^' or '~' (or a mutated leader byte)
	Opcode string

	Args []ArgumentID

	HasFieldData bool
	FieldData    FieldData

	HasRawData bool
	RawData    RawData

	// Synthetic marks a node the parser fabricated for error recovery (e.g.
	// the closing ^XZ of a label left open at EOF).
	Synthetic bool
}

// TriviaKind distinguishes the different shapes of non-command source text.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineBreak
	TriviaStray // unrecognized bytes outside any command
)

// Trivia is whitespace, a comment, or stray text attached to the surrounding
// command stream but carrying no command semantics.
type Trivia struct {
	Span source.Span
	Kind TriviaKind
	Text string
}

// NodeKind tags a Node as wrapping a Command or a Trivia.
type NodeKind uint8

const (
	NodeCommand NodeKind = iota
	NodeTrivia
)

// Node is a tagged reference into one of the Document's arenas, preserving
// source order across commands and trivia alike.
type Node struct {
	Kind    NodeKind
	Command CommandID
	Trivia  TriviaID
}

// Label is a sequence of commands bracketed by ^XA/^XZ. Nodes outside any
// label form the document's host plane.
type Label struct {
	Start CommandID // the ^XA command
	End   CommandID // the ^XZ command; 0 if synthesized at EOF
	// EndSynthetic reports whether End was fabricated during error recovery.
	EndSynthetic bool
	Body         []Node
}

// Document is the root of a parsed ZPL source file: the arenas owning every
// Command/Trivia/Argument, the host-plane node sequence, and the labels
// found within it, in source order.
type Document struct {
	File source.FileID

	Commands  *Arena[Command]
	Trivia    *Arena[Trivia]
	Arguments *Arena[Argument]

	// Host is the top-level node sequence: host-plane commands, trivia, and
	// label boundaries interleaved in source order.
	Host []Node

	Labels []Label
}

// NewDocument creates an empty Document bound to a file.
func NewDocument(file source.FileID) *Document {
	return &Document{
		File:      file,
		Commands:  NewArena[Command](64),
		Trivia:    NewArena[Trivia](32),
		Arguments: NewArena[Argument](128),
	}
}

// Command resolves a CommandID to its record, or nil if the ID is zero.
func (d *Document) Command(id CommandID) *Command {
	return d.Commands.Get(uint32(id))
}

// TriviaNode resolves a TriviaID to its record, or nil if the ID is zero.
func (d *Document) TriviaNode(id TriviaID) *Trivia {
	return d.Trivia.Get(uint32(id))
}

// Argument resolves an ArgumentID to its record, or nil if the ID is zero.
func (d *Document) Argument(id ArgumentID) *Argument {
	return d.Arguments.Get(uint32(id))
}

// CommandArgs resolves every argument of a command, in positional order.
func (d *Document) CommandArgs(c *Command) []Argument {
	out := make([]Argument, 0, len(c.Args))
	for _, id := range c.Args {
		if a := d.Argument(id); a != nil {
			out = append(out, *a)
		}
	}
	return out
}
