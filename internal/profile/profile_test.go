package profile

import (
	"strings"
	"testing"
)

const sampleJSON = `{
	"id": "zt411-203dpi",
	"schema_version": "1.0",
	"dpi": 203,
	"page": {"width_dots": 812, "height_dots": 1218},
	"speed_range": {"min": 2, "max": 12},
	"darkness_range": {"min": 0, "max": 30},
	"memory": {"ram_kb": 16384, "flash_kb": 131072},
	"features": {"rfid": false, "cutter": true, "wireless": null},
	"media": {"print_method": "thermal_transfer", "supported_modes": ["tear_off", "peel_off"], "supported_tracking": ["gap", "black_mark"]}
}`

func TestDecodeValid(t *testing.T) {
	p, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.ID != "zt411-203dpi" {
		t.Errorf("ID = %q", p.ID)
	}
	if p.DPI != 203 {
		t.Errorf("DPI = %d", p.DPI)
	}
	if p.Features.RFID != TriUnsupported {
		t.Errorf("RFID = %v, want TriUnsupported", p.Features.RFID)
	}
	if p.Features.Cutter != TriSupported {
		t.Errorf("Cutter = %v, want TriSupported", p.Features.Cutter)
	}
	if p.Features.Wireless != TriUnknown {
		t.Errorf("Wireless = %v, want TriUnknown", p.Features.Wireless)
	}
}

func TestFeaturesSupports(t *testing.T) {
	p, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Features.Supports("rfid") {
		t.Errorf("rfid should not be supported")
	}
	if !p.Features.Supports("cutter") {
		t.Errorf("cutter should be supported")
	}
	if !p.Features.Supports("wireless") {
		t.Errorf("unasserted feature should not block")
	}
	if !p.Features.Supports("made_up_gate") {
		t.Errorf("unknown gate name should not block")
	}
}

func TestFieldLookup(t *testing.T) {
	p, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := p.Field("page.width_dots")
	if !ok || v != 812 {
		t.Errorf("page.width_dots = %v, %v", v, ok)
	}
	if _, ok := p.Field("not.a.real.path"); ok {
		t.Errorf("expected unknown path to report ok=false")
	}
}

func TestDecodeRejectsBadDPI(t *testing.T) {
	bad := strings.Replace(sampleJSON, `"dpi": 203`, `"dpi": 250`, 1)
	if _, err := Decode(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected an error for an unsupported dpi value")
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	bad := strings.Replace(sampleJSON, `"dpi": 203,`, `"dpi": 203, "bogus_field": 1,`, 1)
	if _, err := Decode(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected an error for an unknown field")
	}
}
