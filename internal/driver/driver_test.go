package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zplforge/internal/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDiagnoseFileParseOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.zpl", "^XA^FO50,50^FDhello^FS^XZ")

	fs, res, err := DiagnoseFile(path, DiagnoseOptions{Stage: DiagnoseStageParse})
	if err != nil {
		t.Fatalf("DiagnoseFile: %v", err)
	}
	if fs == nil || res.Doc == nil {
		t.Fatalf("expected a document, got %+v", res)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", res.Bag.Items())
	}
}

func TestDiagnoseFileValidateCatchesStructuralError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.zpl", "^XA^FDhello^FS^XZ")

	_, res, err := DiagnoseFile(path, DiagnoseOptions{Stage: DiagnoseStageValidate})
	if err != nil {
		t.Fatalf("DiagnoseFile: %v", err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.FieldDataWithoutOrigin {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected FieldDataWithoutOrigin, got %v", res.Bag.Items())
	}
}

func TestDiagnoseFileParseStageSkipsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.zpl", "^XA^FDhello^FS^XZ")

	_, res, err := DiagnoseFile(path, DiagnoseOptions{Stage: DiagnoseStageParse})
	if err != nil {
		t.Fatalf("DiagnoseFile: %v", err)
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.FieldDataWithoutOrigin {
			t.Fatalf("parse-only stage should not run the validator, got %v", res.Bag.Items())
		}
	}
}

func TestDiagnoseFileMissingPath(t *testing.T) {
	_, _, err := DiagnoseFile(filepath.Join(t.TempDir(), "missing.zpl"), DiagnoseOptions{})
	if err == nil {
		t.Fatal("expected an error loading a nonexistent path")
	}
}

func TestDiagnoseFilesPreservesOrderAndSharesFileSet(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.zpl", "^XA^FO10,10^FDa^FS^XZ"),
		writeFile(t, dir, "b.zpl", "^XA^FDbad^FS^XZ"),
		writeFile(t, dir, "c.zpl", "^XA^FO20,20^FDc^FS^XZ"),
	}

	fs, results, err := DiagnoseFiles(context.Background(), paths, DiagnoseOptions{Stage: DiagnoseStageValidate})
	if err != nil {
		t.Fatalf("DiagnoseFiles: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d: expected path %s, got %s", i, paths[i], res.Path)
		}
		if fs.Get(res.FileID) == nil {
			t.Errorf("result %d: FileID does not resolve against the shared FileSet", i)
		}
	}
	middleHasError := false
	for _, d := range results[1].Bag.Items() {
		if d.Code == diag.FieldDataWithoutOrigin {
			middleHasError = true
		}
	}
	if !middleHasError {
		t.Fatalf("expected b.zpl to report FieldDataWithoutOrigin, got %v", results[1].Bag.Items())
	}
}

func TestFormatPathsReportsChangedAndClean(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.zpl", "^XA^FO50,50^FDhello^FS^XZ")
	messy := writeFile(t, dir, "messy.zpl", "^XA^FO10,10^FDx^FS")

	results, err := FormatPaths(context.Background(), []string{clean, messy}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Changed {
		t.Errorf("expected %s to already be formatted", clean)
	}
	if !results[1].Changed {
		t.Errorf("expected %s (missing ^XZ) to require reformatting", messy)
	}
	if string(results[1].Formatted) != "^XA^FO10,10^FDx^FS^XZ" {
		t.Errorf("got %q", results[1].Formatted)
	}
}

func TestFormatPathsMissingFile(t *testing.T) {
	results, err := FormatPaths(context.Background(), []string{filepath.Join(t.TempDir(), "missing.zpl")}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("expected a per-file error, got %+v", results)
	}
}

func TestDiagnoseRecordsPhaseTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.zpl", "^XA^FO50,50^FDhello^FS^XZ")

	_, res, err := DiagnoseFile(path, DiagnoseOptions{Stage: DiagnoseStageValidate})
	if err != nil {
		t.Fatalf("DiagnoseFile: %v", err)
	}
	names := make(map[string]bool, len(res.Timings.Phases))
	for _, p := range res.Timings.Phases {
		names[p.Name] = true
	}
	if !names["parse"] || !names["validate"] {
		t.Fatalf("expected parse and validate phases, got %+v", res.Timings)
	}
}

func TestFormatPathsRecordsPhaseTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.zpl", "^XA^FO50,50^FDhello^FS^XZ")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	names := make(map[string]bool, len(results[0].Timings.Phases))
	for _, p := range results[0].Timings.Phases {
		names[p.Name] = true
	}
	if !names["parse"] || !names["format"] {
		t.Fatalf("expected parse and format phases, got %+v", results[0].Timings)
	}
}
