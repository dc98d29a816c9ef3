package specdata

import (
	"bytes"
	"testing"
)

func TestDefaultTableLookup(t *testing.T) {
	tbl := Default()
	if tbl.Len() == 0 {
		t.Fatalf("expected a non-empty built-in table")
	}

	spec, ok := tbl.Lookup("FO")
	if !ok {
		t.Fatalf("expected FO to be present")
	}
	if spec.Name != "Field Origin" {
		t.Errorf("FO name = %q", spec.Name)
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Fatalf("expected Default() to return the same *Table instance each call")
	}
}

func TestLookupLongestMatch(t *testing.T) {
	tbl := Default()

	spec, n, ok := tbl.LookupLongestMatch("FO50,50")
	if !ok {
		t.Fatalf("expected a match")
	}
	if spec.Opcode != "FO" || n != 2 {
		t.Errorf("got opcode=%s n=%d, want FO 2", spec.Opcode, n)
	}
}

func TestLookupLongestMatchPrefersLonger(t *testing.T) {
	tbl := Default()

	spec, n, ok := tbl.LookupLongestMatch("BY2,3,10")
	if !ok {
		t.Fatalf("expected a match")
	}
	if spec.Opcode != "BY" || n != 2 {
		t.Errorf("got opcode=%s n=%d, want BY 2", spec.Opcode, n)
	}
}

func TestLookupLongestMatchUnknown(t *testing.T) {
	tbl := Default()

	_, _, ok := tbl.LookupLongestMatch("ZZ")
	if ok {
		t.Fatalf("expected no match for an opcode outside the table")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tbl := Default()

	var buf bytes.Buffer
	if err := tbl.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.Len() != tbl.Len() {
		t.Fatalf("round-tripped table has %d opcodes, want %d", decoded.Len(), tbl.Len())
	}

	spec, ok := decoded.Lookup("BC")
	if !ok {
		t.Fatalf("expected BC to survive round-trip")
	}
	if spec.Barcode == nil || spec.Barcode.MaxLen != 255 {
		t.Errorf("BC barcode rule did not survive round-trip: %+v", spec.Barcode)
	}
}
