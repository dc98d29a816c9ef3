package format

import (
	"testing"

	"zplforge/internal/parser"
	"zplforge/internal/source"
	"zplforge/internal/specdata"
)

func parse(t *testing.T, content string) *source.FileSet {
	t.Helper()
	fs := source.NewFileSet()
	fs.AddVirtual("t.zpl", []byte(content))
	return fs
}

func TestRoundTripDefaultOptions(t *testing.T) {
	cases := []string{
		"^XA^FO50,50^FDhello^FS^XZ",
		"^XA\n  ^FO50,50^FDhello^FS\n^XZ\n",
		"^XA^BY2,3,10^FO10,10^BCN^FD123456^FS^XZ",
		"",
	}
	for _, content := range cases {
		fs := source.NewFileSet()
		id := fs.AddVirtual("t.zpl", []byte(content))
		doc := parser.Parse(fs.Get(id), specdata.Default(), nil)
		got := Format(doc, Options{})
		if got != content {
			t.Errorf("round trip mismatch:\n  want: %q\n  got:  %q", content, got)
		}
	}
}

func TestFormatSynthesizesDanglingClose(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.zpl", []byte("^XA^FO10,10^FDx^FS"))
	doc := parser.Parse(fs.Get(id), specdata.Default(), nil)
	got := Format(doc, Options{})
	if got != "^XA^FO10,10^FDx^FS^XZ" {
		t.Errorf("got %q", got)
	}
}

func TestFormatCollapsesBlankLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.zpl", []byte("^XA\n\n\n^FO10,10^FDx^FS^XZ"))
	doc := parser.Parse(fs.Get(id), specdata.Default(), nil)
	got := Format(doc, Options{Compaction: CompactionCollapseBlank})
	if got != "^XA\n^FO10,10^FDx^FS^XZ" {
		t.Errorf("got %q", got)
	}
}
