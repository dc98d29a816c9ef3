// Package format re-serializes a parsed ast.Document back to ZPL II text,
// under a small whitespace policy: how label bodies are indented, whether
// redundant blank lines are collapsed, and how synthesized label closers are
// emitted. With every option at its zero value, Format reproduces its input
// byte-for-byte for any well-formed document (the round-trip invariant).
package format

import (
	"strings"

	"zplforge/internal/ast"
)

// Compaction controls how runs of blank lines between commands are handled.
type Compaction uint8

const (
	// CompactionNone reproduces trivia verbatim.
	CompactionNone Compaction = iota
	// CompactionCollapseBlank collapses 2+ consecutive line breaks to one.
	CompactionCollapseBlank
)

// Options configures a Format run. The zero value is a faithful,
// no-op re-serialization.
type Options struct {
	// Indent, when non-empty, is inserted after every line break trivia
	// found inside a label body (but not at the document's host plane).
	Indent string
	Compaction Compaction
}

// Format renders doc back to ZPL II source text under opts.
func Format(doc *ast.Document, opts Options) string {
	var b strings.Builder
	startByID := make(map[ast.CommandID]int, len(doc.Labels))
	for i, l := range doc.Labels {
		startByID[l.Start] = i
	}
	w := &writer{doc: doc, opts: opts, startByID: startByID, b: &b, delim: ','}
	w.renderNodes(doc.Host, 0)
	return b.String()
}

type writer struct {
	doc       *ast.Document
	opts      Options
	startByID map[ast.CommandID]int
	b         *strings.Builder
	delim     byte // current argument delimiter, changed by ^CD/~CD
}

func (w *writer) renderNodes(nodes []ast.Node, depth int) {
	pendingBreaks := 0
	for _, n := range nodes {
		switch n.Kind {
		case ast.NodeTrivia:
			w.renderTrivia(w.doc.TriviaNode(n.Trivia), depth, &pendingBreaks)
		case ast.NodeCommand:
			w.flushPendingBreaks(&pendingBreaks)
			if idx, ok := w.startByID[n.Command]; ok {
				w.renderLabel(w.doc.Labels[idx], depth)
				continue
			}
			w.renderCommand(w.doc.Command(n.Command))
		}
	}
	w.flushPendingBreaks(&pendingBreaks)
}

func (w *writer) flushPendingBreaks(pending *int) {
	if *pending == 0 {
		return
	}
	n := *pending
	if w.opts.Compaction == CompactionCollapseBlank && n > 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		w.b.WriteByte('\n')
	}
	*pending = 0
}

func (w *writer) renderTrivia(t *ast.Trivia, depth int, pendingBreaks *int) {
	switch t.Kind {
	case ast.TriviaLineBreak:
		count := strings.Count(t.Text, "\n")
		if count == 0 {
			count = 1 // a bare \r run with no \n still counts as one break
		}
		*pendingBreaks += count
		if depth > 0 && w.opts.Indent != "" {
			w.flushPendingBreaks(pendingBreaks)
			w.b.WriteString(w.opts.Indent)
		}
	default:
		w.flushPendingBreaks(pendingBreaks)
		w.b.WriteString(t.Text)
	}
}

func (w *writer) renderLabel(label ast.Label, depth int) {
	w.renderCommand(w.doc.Command(label.Start))
	w.renderNodes(label.Body, depth+1)
	if label.EndSynthetic {
		w.b.WriteString("^XZ")
		return
	}
	w.renderCommand(w.doc.Command(label.End))
}

func (w *writer) renderCommand(cmd *ast.Command) {
	w.b.WriteByte(cmd.Leader)
	w.b.WriteString(cmd.Opcode)

	args := w.doc.CommandArgs(cmd)
	for i, a := range args {
		if i > 0 {
			w.b.WriteByte(w.delim)
		}
		w.b.WriteString(a.Raw)
	}
	if cmd.Opcode == "CD" && len(args) > 0 && len([]rune(args[0].Raw)) == 1 {
		w.delim = args[0].Raw[0]
	}

	if cmd.HasFieldData {
		w.b.WriteString(cmd.FieldData.Text)
	}
	if cmd.HasRawData {
		w.b.Write(cmd.RawData.Data)
	}
}
