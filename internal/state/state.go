// Package state implements the pure fold over a command stream that the
// validator needs: the current barcode/font defaults,
// field orientation, label home, hex-escape indicator, and whether a field is
// currently open. It also tracks which state-setting commands were
// overwritten before any field consumed them, the source of ZPL2305.
package state

import (
	"zplforge/internal/ast"
	"zplforge/internal/source"
)

// BarcodeDefaults mirrors the arguments a ^BY sets.
type BarcodeDefaults struct {
	ModuleWidth int
	WideRatio   float64
	Height      int
}

// FontDefaults mirrors the arguments a ^CF sets.
type FontDefaults struct {
	Tag    string
	Height int
	Width  int
}

// Key identifies one piece of trackable state, for override bookkeeping.
type Key uint8

const (
	KeyBarcodeDefaults Key = iota
	KeyFontDefaults
	KeyFieldOrientation
	KeyLabelHome
	KeyHexIndicator
)

// override records where a state key was last set and whether any
// field-owning command has consumed it since.
type override struct {
	span     source.Span
	consumed bool
}

// State is the current, mutable snapshot the tracker maintains while
// replaying a label's command stream.
type State struct {
	Barcode        BarcodeDefaults
	Font           FontDefaults
	FieldOrientation string // "N", "R", "I", "B", or "" if unset
	LabelHomeX, LabelHomeY int
	HexIndicator   string // the current ^FH escape character, default "_"

	FieldOpen     bool
	FieldOpenSpan source.Span
	FieldNumberSeen bool
}

// NewState returns the state a fresh label begins with.
func NewState() State {
	return State{
		Barcode:      BarcodeDefaults{ModuleWidth: 2, WideRatio: 3.0, Height: 10},
		HexIndicator: "_",
	}
}

// Tracker replays a document's commands, maintaining State and recording
// which state-setting commands were superseded before a field consumed them.
type Tracker struct {
	cur       State
	overrides map[Key]*override
}

// NewTracker creates a Tracker starting from a fresh label's default state.
func NewTracker() *Tracker {
	s := NewState()
	return &Tracker{cur: s, overrides: make(map[Key]*override)}
}

// Current returns a copy of the tracker's current state.
func (t *Tracker) Current() State { return t.cur }

// setKey records that key was just set at span, replacing any prior
// unconsumed override (the caller is expected to report it first via
// Pending if it wants ZPL2305 at this point instead of at
// the end of the label).
func (t *Tracker) setKey(key Key, span source.Span) {
	t.overrides[key] = &override{span: span}
}

// consume marks key as used by a field-owning command.
func (t *Tracker) consume(key Key) {
	if o, ok := t.overrides[key]; ok {
		o.consumed = true
	}
}

// Pending returns the span of key's last set, if it has not yet been
// consumed by a field. ok is false if the key was never set or was already
// consumed.
func (t *Tracker) Pending(key Key) (span source.Span, ok bool) {
	o, exists := t.overrides[key]
	if !exists || o.consumed {
		return source.Span{}, false
	}
	return o.span, true
}

// Apply updates the tracker's state for one command, given its decoded
// arguments (via doc.CommandArgs). It returns the key that was overridden
// without being consumed, if replacing that key's prior value clobbered a
// pending one (the caller reports ZPL2305 using the returned span).
func (t *Tracker) Apply(doc *ast.Document, cmd *ast.Command) (clobberedKey Key, clobberedSpan source.Span, clobbered bool) {
	args := doc.CommandArgs(cmd)

	switch cmd.Opcode {
	case "BY":
		if span, ok := t.Pending(KeyBarcodeDefaults); ok {
			clobberedKey, clobberedSpan, clobbered = KeyBarcodeDefaults, span, true
		}
		if len(args) > 0 && args[0].Presence == ast.Value {
			t.cur.Barcode.ModuleWidth = int(args[0].Int)
		}
		if len(args) > 1 && args[1].Presence == ast.Value {
			t.cur.Barcode.WideRatio = args[1].Num
		}
		if len(args) > 2 && args[2].Presence == ast.Value {
			t.cur.Barcode.Height = int(args[2].Int)
		}
		t.setKey(KeyBarcodeDefaults, cmd.Span)

	case "CF":
		if span, ok := t.Pending(KeyFontDefaults); ok {
			clobberedKey, clobberedSpan, clobbered = KeyFontDefaults, span, true
		}
		if len(args) > 0 && args[0].Presence == ast.Value {
			t.cur.Font.Tag = args[0].Str
		}
		if len(args) > 1 && args[1].Presence == ast.Value {
			t.cur.Font.Height = int(args[1].Int)
		}
		if len(args) > 2 && args[2].Presence == ast.Value {
			t.cur.Font.Width = int(args[2].Int)
		}
		t.setKey(KeyFontDefaults, cmd.Span)

	case "FW":
		if span, ok := t.Pending(KeyFieldOrientation); ok {
			clobberedKey, clobberedSpan, clobbered = KeyFieldOrientation, span, true
		}
		if len(args) > 0 && args[0].Presence == ast.Value {
			t.cur.FieldOrientation = args[0].Str
		}
		t.setKey(KeyFieldOrientation, cmd.Span)

	case "LH":
		if span, ok := t.Pending(KeyLabelHome); ok {
			clobberedKey, clobberedSpan, clobbered = KeyLabelHome, span, true
		}
		if len(args) > 0 && args[0].Presence == ast.Value {
			t.cur.LabelHomeX = int(args[0].Int)
		}
		if len(args) > 1 && args[1].Presence == ast.Value {
			t.cur.LabelHomeY = int(args[1].Int)
		}
		t.setKey(KeyLabelHome, cmd.Span)

	case "FH":
		if len(args) > 0 && args[0].Presence == ast.Value {
			t.cur.HexIndicator = args[0].Str
		} else {
			t.cur.HexIndicator = "_"
		}
		t.setKey(KeyHexIndicator, cmd.Span)

	case "FN":
		t.cur.FieldNumberSeen = true

	case "FO", "FT":
		t.FieldOpened(cmd.Span)

	case "FD", "FV":
		t.consume(KeyBarcodeDefaults)
		t.consume(KeyFontDefaults)
		t.consume(KeyFieldOrientation)
		t.consume(KeyHexIndicator)

	case "FS":
		t.FieldClosed()
	}

	return clobberedKey, clobberedSpan, clobbered
}

// FieldOpened marks a field as open starting at span (called on ^FO/^FT).
func (t *Tracker) FieldOpened(span source.Span) {
	t.cur.FieldOpen = true
	t.cur.FieldOpenSpan = span
}

// FieldClosed marks the current field as closed (called on ^FS) and resets
// per-field tracking, such as whether ^FN preceded it.
func (t *Tracker) FieldClosed() {
	t.cur.FieldOpen = false
	t.cur.FieldNumberSeen = false
}
