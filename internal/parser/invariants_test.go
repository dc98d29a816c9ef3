package parser

import (
	"fmt"
	"testing"

	"zplforge/internal/diag"
	"zplforge/internal/source"
	"zplforge/internal/specdata"
	"zplforge/internal/testkit"
)

// invariantCorpus exercises spec.md §8's quantified invariants ("the
// concatenation of every node's source slice plus trivia equals the
// original input byte-for-byte", "every diagnostic's span falls within
// source bounds", "re-running parse yields the same AST and diagnostics")
// across a corpus of real and synthetic ZPL documents spanning every
// built-in command, malformed input, and leader/delimiter mutation.
var invariantCorpus = []string{
	"",
	"   ",
	"\n\n",
	"; just a comment\n",
	"^XA^XZ",
	"^XA\n^XZ\n",
	"^XA^FO10,10^FDhello^FS^XZ",
	"^XA^FO10,10^FDhello^FS^FO20,20^FDworld^FS^XZ",
	"^XA^FO10,10^A0N,30,30^FDtext^FS^XZ",
	"^XA^FO10,10^CF0,20^FDlabel^FS^XZ",
	"^XA^FW0^FO10,10^FDrot^FS^XZ",
	"^XA^LH5,5^FO0,0^FDorigin^FS^XZ",
	"^XA^PW400^LL300^FO10,10^FDbounded^FS^XZ",
	"^XA^BY2,3,10^FO10,10^BCN^FD123456^FS^XZ",
	"^XA^BY2,3,10^FO10,10^BEN,50^FD1234567890^FS^XZ",
	"^XA^FO10,10^FVvariable^FS^XZ",
	"^XA^FN3^FO10,10^FDserialized^FS^XZ",
	"^XA^SN100^FN3^FO10,10^FDserial^FS^XZ",
	"^XA^CW1,FONT.TTF^FO10,10^A1N,20,20^FDcustom^FS^XZ",
	"^XA^MND^FO10,10^FDtracking^FS^XZ",
	"^XA^RF W,1^FO10,10^FDrfid^FS^XZ",
	"^XA^PO I^FO10,10^FDinverted^FS^XZ",
	"^XA^FH_^FO10,10^FD_41_42^FS^XZ",
	"^XA^FXcomment body^FS^FO10,10^FDafter^FS^XZ",
	"^XA^GFA,8,8,\xff\x00\xff\x00\xff\x00\xff\x00^XZ",
	"^XA^CC+^FO10,10+FDplus^FS+XZ",
	"^XA^CD|^FO10|10^FD|pipe^FS^XZ",
	"^XA",
	"^XA^FO10,10^FDdangling",
	"^ZZunknown^XA^XZ",
	"stray text before ^XA^XZ",
	"^XA^XZ^XA^XZ",
	"^XA^XA^XZ^XZ",
	"^XA^FO10,10^FD^FS^XZ",
	"^XA^FO,^FDempty-args^FS^XZ",
	"^XA^FO10,10^BE,50^FD12345^FS^XZ",
	"^XA\t^FO10,10\t^FDtabbed\t^FS^XZ",
	"^XA^FO10,10^FDunterminated field",
	"~HS",
	"~HI",
	"^XZ",
	"^FO10,10^FDhost-plane^FS",
	"^XA^FO10,10^FDmulti\nline\ntext^FS^XZ",
	"^XA^FO10,10^FDunicode-éè^FS^XZ",
	"^XA^FO-10,-10^FDnegative^FS^XZ",
	"^XA^FO99999,99999^FDoverflow^FS^XZ",
	"^XA^BY0,0,0^FO10,10^BCN^FD1^FS^XZ",
	"^XA^FN1^FO10,10^FDone^FS^FN1^FO20,20^FDdup^FS^XZ",
	"^XA^FO10,10^FDa^FO20,20^FDb^FS^XZ",
	"^XA^SN100^FO10,10^FDno-fn^FS^XZ",
	"^XA^RF W,1^FO10,10^FDmissing-fh^FS^XZ",
	"^XA^FH@^FO10,10^FD@41@42^FS^XZ",
	"^XA^GFA,4,4,\x0f\x0f\x0f\x0f^XZ",
	"^XA^FO10,10^A0N,30,30^FDoverflowlong0123456789012345678901234567890123456789^FS^XZ",
	"^XA\n  ^FO50,50^FDhello^FS\n^XZ\n",
}

func TestCorpusIsLargeEnoughForRoundTripProperty(t *testing.T) {
	if len(invariantCorpus) < 50 {
		t.Fatalf("corpus has %d entries, spec.md §8 wants a corpus of >=50", len(invariantCorpus))
	}
}

func TestSpanInvariantsHoldAcrossCorpus(t *testing.T) {
	for i, content := range invariantCorpus {
		t.Run(fmt.Sprintf("case_%02d", i), func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("t.zpl", []byte(content))
			sf := fs.Get(id)

			doc := Parse(sf, specdata.Default(), diag.NopReporter{})
			if err := testkit.CheckSpanInvariants(doc, sf); err != nil {
				t.Errorf("span invariant violated for %q: %v", content, err)
			}
		})
	}
}

func TestDiagnosticSpansAreWithinSourceBounds(t *testing.T) {
	for i, content := range invariantCorpus {
		t.Run(fmt.Sprintf("case_%02d", i), func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("t.zpl", []byte(content))
			bag := diag.NewBag(256)
			Parse(fs.Get(id), specdata.Default(), diag.BagReporter{Bag: bag})

			for _, d := range bag.Items() {
				if d.Primary.Start > d.Primary.End || int(d.Primary.End) > len(content) {
					t.Errorf("diagnostic %s span %v escapes source bounds (len=%d)", d.Code.ID(), d.Primary, len(content))
				}
			}
		})
	}
}

func TestParseIsDeterministicAcrossCorpus(t *testing.T) {
	for i, content := range invariantCorpus {
		t.Run(fmt.Sprintf("case_%02d", i), func(t *testing.T) {
			fs1 := source.NewFileSet()
			id1 := fs1.AddVirtual("t.zpl", []byte(content))
			bag1 := diag.NewBag(256)
			doc1 := Parse(fs1.Get(id1), specdata.Default(), diag.BagReporter{Bag: bag1})

			fs2 := source.NewFileSet()
			id2 := fs2.AddVirtual("t.zpl", []byte(content))
			bag2 := diag.NewBag(256)
			doc2 := Parse(fs2.Get(id2), specdata.Default(), diag.BagReporter{Bag: bag2})

			if len(doc1.Labels) != len(doc2.Labels) {
				t.Fatalf("label count differs across runs: %d vs %d", len(doc1.Labels), len(doc2.Labels))
			}
			if len(bag1.Items()) != len(bag2.Items()) {
				t.Fatalf("diagnostic count differs across runs: %d vs %d", len(bag1.Items()), len(bag2.Items()))
			}
			for j := range bag1.Items() {
				d1, d2 := bag1.Items()[j], bag2.Items()[j]
				if d1.Code != d2.Code || d1.Primary != d2.Primary {
					t.Errorf("diagnostic %d differs across runs: %+v vs %+v", j, d1, d2)
				}
			}
		})
	}
}
