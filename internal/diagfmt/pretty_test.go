package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"zplforge/internal/diag"
	"zplforge/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()

	content := []byte("^FO50,50^A0N,30,30^FDhello^FS\n")
	fileID := fs.AddVirtual("/home/user/project/labels/ship.zpl", content)

	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.NewError(
		diag.FieldDataWithoutOrigin,
		source.Span{File: fileID, Start: 8, End: 28},
		"field data without a preceding field origin",
	)
	bag.Add(&d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/labels/ship.zpl"},
		{"Relative path", PathModeRelative, "labels/ship.zpl"},
		{"Basename only", PathModeBasename, "ship.zpl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{
				Color:    false,
				Context:  1,
				PathMode: tt.mode,
			}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("Expected ERROR in output")
			}
			if !strings.Contains(output, "ZPL2201") {
				t.Error("Expected ZPL2201 code in output")
			}
			if !strings.Contains(output, "field data without") {
				t.Error("Expected error message in output")
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "ship.zpl", "ship.zpl"},
		{
			"Long absolute path - basename",
			"/very/long/absolute/path/to/some/nested/directory/ship.zpl",
			"ship.zpl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("^XA\n^XZ\n")
			fileID := fs.AddVirtual(tt.path, content)

			bag := diag.NewBag(10)
			d := diag.NewWarning(
				diag.EmptyLabel,
				source.Span{File: fileID, Start: 0, End: 3},
				"test warning",
			)
			bag.Add(&d)

			var buf bytes.Buffer
			opts := PrettyOpts{
				Color:    false,
				Context:  0,
				PathMode: PathModeAuto,
			}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("^BY2,3,10\n^BCN,100,Y,N,N\n")
	fileID := fs.AddVirtual("barcode.zpl", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 11, End: 25}
	d := diag.NewWarning(diag.StateOverrideUnused, primary, "state setter value was overridden before any field consumed it")

	noteSpan := source.Span{File: fileID, Start: 0, End: 9}
	d = d.WithNote(noteSpan, "state set here")
	d = d.WithContext("field_number", "0")

	bag.Add(&d)

	var buf bytes.Buffer
	opts := PrettyOpts{
		Color:       false,
		Context:     0,
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowContext: true,
	}
	Pretty(&buf, bag, fs, opts)

	output := buf.String()

	if !strings.Contains(output, "note: barcode.zpl:1:1") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}

	if !strings.Contains(output, "context: field_number=0") {
		t.Fatalf("expected context entry, got:\n%s", output)
	}
}
