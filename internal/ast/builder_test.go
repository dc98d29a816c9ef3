package ast

import (
	"testing"

	"zplforge/internal/source"
)

func TestBuilderHostPlaneAndLabel(t *testing.T) {
	b := NewBuilder(source.FileID(0))

	xa := b.AddCommand(Command{Opcode: "XA", Leader: '^'})
	b.OpenLabel(xa)

	fo := b.AddCommand(Command{Opcode: "FO", Leader: '^'})
	xz := b.AllocateCommand(Command{Opcode: "XZ", Leader: '^'})
	b.CloseLabel(xz, false)

	doc := b.Document()

	if len(doc.Host) != 1 {
		t.Fatalf("expected 1 host-plane node (the label boundary via first command), got %d", len(doc.Host))
	}
	if len(doc.Labels) != 1 {
		t.Fatalf("expected 1 label, got %d", len(doc.Labels))
	}

	label := doc.Labels[0]
	if label.Start != xa {
		t.Errorf("label start = %d, want %d", label.Start, xa)
	}
	if label.End != xz {
		t.Errorf("label end = %d, want %d", label.End, xz)
	}
	if label.EndSynthetic {
		t.Errorf("expected non-synthetic close")
	}
	if len(label.Body) != 1 {
		t.Fatalf("expected 1 body node (^FO), got %d", len(label.Body))
	}
	if label.Body[0].Command != fo {
		t.Errorf("body command = %d, want %d", label.Body[0].Command, fo)
	}
}

func TestBuilderDanglingLabel(t *testing.T) {
	b := NewBuilder(source.FileID(0))
	xa := b.AddCommand(Command{Opcode: "XA", Leader: '^'})
	b.OpenLabel(xa)
	b.AddCommand(Command{Opcode: "FO", Leader: '^'})

	if !b.InLabel() {
		t.Fatalf("expected builder to be inside an open label")
	}

	dangling := b.CloseDanglingLabels()
	if len(dangling) != 1 {
		t.Fatalf("expected 1 dangling label closed, got %d", len(dangling))
	}
	if b.InLabel() {
		t.Fatalf("expected no open labels after CloseDanglingLabels")
	}

	label := b.Document().Labels[0]
	if !label.EndSynthetic {
		t.Errorf("expected synthetic close")
	}
	if label.End != 0 {
		t.Errorf("expected End == 0 for a synthetic close, got %d", label.End)
	}
}

func TestCommandArgsRoundTrip(t *testing.T) {
	b := NewBuilder(source.FileID(0))
	a0 := b.AddArgument(Argument{Index: 0, Presence: Value, Kind: KindInteger, Int: 50, Raw: "50"})
	a1 := b.AddArgument(Argument{Index: 1, Presence: Value, Kind: KindInteger, Int: 50, Raw: "50"})
	id := b.AddCommand(Command{Opcode: "FO", Leader: '^', Args: []ArgumentID{a0, a1}})

	doc := b.Document()
	cmd := doc.Command(id)
	args := doc.CommandArgs(cmd)
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[0].Raw != "50" || args[1].Raw != "50" {
		t.Errorf("unexpected args: %+v", args)
	}
}
