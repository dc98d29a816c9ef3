package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"zplforge/internal/diag"
	"zplforge/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("^XA\n^FO50,50^FDhello\n^XZ\n")
	fileID := fs.AddVirtual("label.zpl", content)

	bag := diag.NewBag(10)
	d := diag.NewError(
		diag.FieldDataWithoutOrigin,
		source.Span{File: fileID, Start: 4, End: 21},
		"field data without a preceding field origin",
	)
	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		Max:              0,
		IncludeNotes:     true,
		IncludeContext:   true,
	}

	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("Expected count=1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", got.Severity)
	}
	if got.Code != "ZPL2201" {
		t.Errorf("Expected code=ZPL2201, got %s", got.Code)
	}
	if got.Message != "field data without a preceding field origin" {
		t.Errorf("unexpected message: %s", got.Message)
	}
	if got.Location.File != "label.zpl" {
		t.Errorf("Expected file=label.zpl, got %s", got.Location.File)
	}
	if got.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", got.Location.StartByte)
	}
	if got.Location.EndByte != 21 {
		t.Errorf("Expected end_byte=21, got %d", got.Location.EndByte)
	}
	if got.Location.StartLine != 2 {
		t.Errorf("Expected start_line=2, got %d", got.Location.StartLine)
	}
}

func TestJSONWithNotesAndContext(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("^BY2,3,10\n^BCN,100,Y,N,N\n")
	fileID := fs.AddVirtual("barcode.zpl", content)

	bag := diag.NewBag(10)
	d := diag.NewWarning(
		diag.StateOverrideUnused,
		source.Span{File: fileID, Start: 11, End: 25},
		"state setter value was overridden before any field consumed it",
	)
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 9}, "state set here")
	d = d.WithContext("field_number", "0")

	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		Max:              0,
		IncludeNotes:     true,
		IncludeContext:   true,
	}

	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]

	if len(got.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(got.Notes))
	}
	if got.Notes[0].Message != "state set here" {
		t.Errorf("unexpected note message: %s", got.Notes[0].Message)
	}

	if len(got.Context) != 1 {
		t.Fatalf("Expected 1 context entry, got %d", len(got.Context))
	}
	if got.Context[0].Key != "field_number" || got.Context[0].Value != "0" {
		t.Errorf("unexpected context entry: %+v", got.Context[0])
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("^XA\n^XZ\n")
	fileID := fs.AddVirtual("label.zpl", content)

	bag := diag.NewBag(10)
	d := diag.NewInfo(
		diag.InfoPrefixChanged,
		source.Span{File: fileID, Start: 0, End: 3},
		"leader character changed",
	)
	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: false,
		PathMode:         PathModeBasename,
		Max:              0,
	}

	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	got := output.Diagnostics[0]
	if got.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", got.Location.StartLine)
	}
	if got.Location.StartByte != 0 {
		t.Errorf("Expected start_byte=0, got %d", got.Location.StartByte)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("^XA\n^XZ\n")
	fileID := fs.AddVirtual("label.zpl", content)

	bag := diag.NewBag(10)
	for i := range 5 {
		d := diag.NewError(
			diag.ArityMissingArg,
			source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)},
			"required argument missing",
		)
		bag.Add(&d)
	}

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: false,
		PathMode:         PathModeBasename,
		Max:              3,
	}

	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if output.Count != 3 {
		t.Errorf("Expected count=3 (limited), got %d", output.Count)
	}
	if len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics (limited), got %d", len(output.Diagnostics))
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")

	content := []byte("^XA\n")
	fileID := fs.AddVirtual("/home/user/project/labels/main.zpl", content)

	bag := diag.NewBag(10)
	d := diag.NewError(
		diag.ArityMissingArg,
		source.Span{File: fileID, Start: 0, End: 1},
		"required argument missing",
	)
	bag.Add(&d)

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/labels/main.zpl"},
		{"Relative", PathModeRelative, "labels/main.zpl"},
		{"Basename", PathModeBasename, "main.zpl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := JSONOpts{
				IncludePositions: false,
				PathMode:         tt.pathMode,
				Max:              0,
			}

			if err := JSON(&buf, bag, fs, opts); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}

			var output DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
				t.Fatalf("Invalid JSON output: %v", err)
			}

			if output.Diagnostics[0].Location.File != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, output.Diagnostics[0].Location.File)
			}
		})
	}
}
