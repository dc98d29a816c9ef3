package state

import (
	"testing"

	"zplforge/internal/ast"
	"zplforge/internal/parser"
	"zplforge/internal/source"
	"zplforge/internal/specdata"
)

func parseDoc(t *testing.T, content string) *ast.Document {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.zpl", []byte(content))
	return parser.Parse(fs.Get(id), specdata.Default(), nil)
}

func replayLabel(t *testing.T, doc *ast.Document, label ast.Label) *Tracker {
	t.Helper()
	tr := NewTracker()
	for _, n := range label.Body {
		if n.Kind != ast.NodeCommand {
			continue
		}
		cmd := doc.Command(n.Command)
		tr.Apply(doc, cmd)
	}
	return tr
}

func TestBarcodeDefaultsApplied(t *testing.T) {
	doc := parseDoc(t, "^XA^BY3,2.5,20^FO10,10^BCN^FDabc^FS^XZ")
	tr := replayLabel(t, doc, doc.Labels[0])
	got := tr.Current().Barcode
	if got.ModuleWidth != 3 || got.WideRatio != 2.5 || got.Height != 20 {
		t.Errorf("barcode defaults = %+v", got)
	}
}

func TestOverrideBeforeConsumeIsClobbered(t *testing.T) {
	doc := parseDoc(t, "^XA^BY2,3,10^BY4,3,10^FO10,10^FDabc^FS^XZ")
	tr := NewTracker()
	var sawClobber bool
	for _, n := range doc.Labels[0].Body {
		if n.Kind != ast.NodeCommand {
			continue
		}
		cmd := doc.Command(n.Command)
		_, _, clobbered := tr.Apply(doc, cmd)
		if clobbered {
			sawClobber = true
		}
	}
	if !sawClobber {
		t.Errorf("expected the second ^BY to report clobbering the first, unconsumed ^BY")
	}
}

func TestConsumedOverrideIsNotClobbered(t *testing.T) {
	doc := parseDoc(t, "^XA^BY2,3,10^FO10,10^FDabc^FS^BY4,3,10^FO20,20^FDdef^FS^XZ")
	tr := NewTracker()
	var sawClobber bool
	for _, n := range doc.Labels[0].Body {
		if n.Kind != ast.NodeCommand {
			continue
		}
		cmd := doc.Command(n.Command)
		_, _, clobbered := tr.Apply(doc, cmd)
		if clobbered {
			sawClobber = true
		}
	}
	if sawClobber {
		t.Errorf("expected no clobbering once the first ^BY was consumed by a field")
	}
}

func TestFieldOpenLifecycle(t *testing.T) {
	doc := parseDoc(t, "^XA^FO10,10^FDabc^FS^XZ")
	tr := replayLabel(t, doc, doc.Labels[0])
	if tr.Current().FieldOpen {
		t.Errorf("expected field to be closed after ^FS")
	}
}
