package ast

import "zplforge/internal/source"

// Builder accumulates Commands/Trivia/Arguments into a Document while the
// parser walks a source file in a single forward pass.
type Builder struct {
	doc *Document

	// openLabels is the stack of labels currently between ^XA and ^XZ. ZPL
	// does not nest labels, so in practice this holds at most one entry, but
	// the parser keeps it as a stack to recover gracefully from malformed
	// nested ^XA sequences.
	openLabels []int // indices into doc.Labels
}

// NewBuilder creates a Builder for a fresh Document over the given file.
func NewBuilder(file source.FileID) *Builder {
	return &Builder{doc: NewDocument(file)}
}

// Document returns the Document under construction.
func (b *Builder) Document() *Document { return b.doc }

// AddArgument allocates an Argument and returns its ID.
func (b *Builder) AddArgument(a Argument) ArgumentID {
	return ArgumentID(b.doc.Arguments.Allocate(a))
}

// AddTrivia allocates a Trivia node and appends it to the current context
// (inside the open label's body, or the document's host plane).
func (b *Builder) AddTrivia(t Trivia) TriviaID {
	id := TriviaID(b.doc.Trivia.Allocate(t))
	b.appendNode(Node{Kind: NodeTrivia, Trivia: id})
	return id
}

// AddCommand allocates a Command and appends it to the current context. Use
// this for ordinary commands, and for the ^XA that opens a label (call
// OpenLabel with its returned ID afterward). For the ^XZ that closes a
// label, use AllocateCommand + CloseLabel instead: the closing command is
// recorded on Label.End, not appended into Label.Body.
func (b *Builder) AddCommand(c Command) CommandID {
	id := b.AllocateCommand(c)
	b.appendNode(Node{Kind: NodeCommand, Command: id})
	return id
}

// AllocateCommand allocates a Command without linking it into the current
// node sequence. Used for a label's closing ^XZ, which is referenced by
// Label.End rather than appearing in Label.Body.
func (b *Builder) AllocateCommand(c Command) CommandID {
	return CommandID(b.doc.Commands.Allocate(c))
}

func (b *Builder) appendNode(n Node) {
	if len(b.openLabels) == 0 {
		b.doc.Host = append(b.doc.Host, n)
		return
	}
	idx := b.openLabels[len(b.openLabels)-1]
	b.doc.Labels[idx].Body = append(b.doc.Labels[idx].Body, n)
}

// OpenLabel starts a new label at the given ^XA command and pushes it onto
// the open-label stack. It adds no node itself: the caller places the ^XA
// command node (via AddCommand) before opening the label.
func (b *Builder) OpenLabel(start CommandID) {
	b.doc.Labels = append(b.doc.Labels, Label{Start: start})
	b.openLabels = append(b.openLabels, len(b.doc.Labels)-1)
}

// CloseLabel ends the innermost open label with the given ^XZ command
// (synthetic if the parser fabricated it during error recovery).
func (b *Builder) CloseLabel(end CommandID, synthetic bool) {
	if len(b.openLabels) == 0 {
		return
	}
	idx := b.openLabels[len(b.openLabels)-1]
	b.doc.Labels[idx].End = end
	b.doc.Labels[idx].EndSynthetic = synthetic
	b.openLabels = b.openLabels[:len(b.openLabels)-1]
}

// InLabel reports whether the builder is currently inside an open label.
func (b *Builder) InLabel() bool { return len(b.openLabels) > 0 }

// CloseDanglingLabels synthesizes closes for any labels still open at EOF.
// Returns the indices into Document.Labels of the labels that were
// force-closed, in open order.
func (b *Builder) CloseDanglingLabels() []int {
	dangling := append([]int(nil), b.openLabels...)
	for range dangling {
		b.CloseLabel(0, true)
	}
	return dangling
}
