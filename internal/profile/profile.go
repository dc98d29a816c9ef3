// Package profile loads and validates printer capability profiles: the JSON
// documents a validation run checks commands against for range gates, feature
// gates, and media constraints.
package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Tri is a tri-state feature flag: a printer profile can assert a feature is
// present, assert it is absent, or simply not say (in which case the
// validator skips any gate keyed on it).
type Tri uint8

const (
	TriUnknown Tri = iota
	TriSupported
	TriUnsupported
)

func (t Tri) MarshalJSON() ([]byte, error) {
	switch t {
	case TriSupported:
		return json.Marshal(true)
	case TriUnsupported:
		return json.Marshal(false)
	default:
		return json.Marshal(nil)
	}
}

func (t *Tri) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v == nil:
		*t = TriUnknown
	case *v:
		*t = TriSupported
	default:
		*t = TriUnsupported
	}
	return nil
}

// Range is an inclusive numeric range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls within the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Page describes the printable area in dots.
type Page struct {
	WidthDots  int `json:"width_dots"`
	HeightDots int `json:"height_dots"`
}

// Memory describes onboard storage capacity, in kilobytes.
type Memory struct {
	RAMKB   int `json:"ram_kb"`
	FlashKB int `json:"flash_kb"`
}

// Features is the tri-state capability set a command's printer gates are
// checked against.
type Features struct {
	RFID        Tri `json:"rfid"`
	Wireless    Tri `json:"wireless"`
	RealTimeClock Tri `json:"real_time_clock"`
	Cutter      Tri `json:"cutter"`
	Peeler      Tri `json:"peeler"`
	ColorRibbon Tri `json:"color_ribbon"`
}

// Supports reports whether the named gate is explicitly asserted supported.
// Unknown gate names and TriUnknown both resolve to "don't block".
func (f Features) Supports(gate string) bool {
	state, ok := f.lookup(gate)
	if !ok {
		return true
	}
	return state != TriUnsupported
}

func (f Features) lookup(gate string) (Tri, bool) {
	switch gate {
	case "rfid":
		return f.RFID, true
	case "wireless":
		return f.Wireless, true
	case "real_time_clock":
		return f.RealTimeClock, true
	case "cutter":
		return f.Cutter, true
	case "peeler":
		return f.Peeler, true
	case "color_ribbon":
		return f.ColorRibbon, true
	default:
		return TriUnknown, false
	}
}

// Media describes print method and supported media handling modes.
type Media struct {
	PrintMethod      string   `json:"print_method"` // "thermal_transfer" | "direct_thermal"
	SupportedModes   []string `json:"supported_modes"`
	SupportedTracking []string `json:"supported_tracking"`
}

// Profile is a printer capability record, loaded from a JSON document.
type Profile struct {
	ID            string   `json:"id"`
	SchemaVersion string   `json:"schema_version"`
	DPI           int      `json:"dpi"`
	Page          Page     `json:"page"`
	SpeedRange    Range    `json:"speed_range"`
	DarknessRange Range    `json:"darkness_range"`
	Memory        Memory   `json:"memory"`
	Features      Features `json:"features"`
	Media         Media    `json:"media"`
}

var validDPI = map[int]bool{100: true, 150: true, 203: true, 300: true, 600: true}

// Validate checks structural invariants that every loaded profile must
// satisfy, independent of which commands it will later gate.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile: missing id")
	}
	if !validDPI[p.DPI] {
		return fmt.Errorf("profile %s: dpi %d is not one of 100/150/203/300/600", p.ID, p.DPI)
	}
	if p.Page.WidthDots <= 0 || p.Page.HeightDots <= 0 {
		return fmt.Errorf("profile %s: page dimensions must be positive", p.ID)
	}
	if p.SpeedRange.Min < 0 || p.SpeedRange.Max < p.SpeedRange.Min {
		return fmt.Errorf("profile %s: invalid speed_range %+v", p.ID, p.SpeedRange)
	}
	if p.DarknessRange.Max < p.DarknessRange.Min {
		return fmt.Errorf("profile %s: invalid darkness_range %+v", p.ID, p.DarknessRange)
	}
	return nil
}

// Field looks up a dotted field path (the subset of Profile that commands can
// gate on: "page.width_dots", "page.height_dots", "speed_range.max", ...) and
// returns its numeric value. ok is false for an unknown path.
func (p *Profile) Field(path string) (float64, bool) {
	switch path {
	case "page.width_dots":
		return float64(p.Page.WidthDots), true
	case "page.height_dots":
		return float64(p.Page.HeightDots), true
	case "speed_range.min":
		return p.SpeedRange.Min, true
	case "speed_range.max":
		return p.SpeedRange.Max, true
	case "darkness_range.min":
		return p.DarknessRange.Min, true
	case "darkness_range.max":
		return p.DarknessRange.Max, true
	case "memory.ram_kb":
		return float64(p.Memory.RAMKB), true
	case "memory.flash_kb":
		return float64(p.Memory.FlashKB), true
	case "dpi":
		return float64(p.DPI), true
	default:
		return 0, false
	}
}

// Decode reads and validates a Profile from JSON.
func Decode(r io.Reader) (*Profile, error) {
	var p Profile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a Profile from a JSON file on disk.
func Load(path string) (*Profile, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profile: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
