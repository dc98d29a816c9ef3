// Package validator runs the three validation passes over a parsed
// ast.Document: Pass A checks each command's own arity/type/range/profile
// gates, Pass B checks structural and cross-command rules, and Pass C checks
// barcode field-data character sets and lengths.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"zplforge/internal/ast"
	"zplforge/internal/diag"
	"zplforge/internal/profile"
	"zplforge/internal/source"
	"zplforge/internal/specdata"
	"zplforge/internal/state"
)

// Options configures a Validate run.
type Options struct {
	Table   *specdata.Table
	Profile *profile.Profile // nil skips every profile-gated check
}

// Validate runs all three passes over doc, reporting every diagnostic to rep.
func Validate(doc *ast.Document, opts Options, rep diag.Reporter) {
	table := opts.Table
	if table == nil {
		table = specdata.Default()
	}
	v := &validator{
		doc:         doc,
		table:       table,
		profile:     opts.Profile,
		rep:         rep,
		loadedFonts: make(map[string]bool),
	}
	v.run()
}

// builtinFonts is the set of font letters every Zebra printer ships resident,
// independent of anything a ^CW has loaded (spec.md §4.2 ZPL2303).
var builtinFonts = map[string]bool{
	"A": true, "B": true, "C": true, "D": true, "E": true,
	"F": true, "G": true, "H": true, "0": true,
}

// pageBounds is the effective page geometry a label validates field
// positions and graphics against: the most recent ^PW/^LL seen in the host
// plane, falling back to the profile's page dimensions (spec.md §4.2 ZPL2302).
type pageBounds struct {
	width, height       float64
	hasWidth, hasHeight bool
	sawPW, sawLL        bool
}

type validator struct {
	doc     *ast.Document
	table   *specdata.Table
	profile *profile.Profile
	rep     diag.Reporter

	loadedFonts map[string]bool
	gfBytesUsed int64
}

func (v *validator) report(d diag.Diagnostic) { v.rep.Report(d) }

// run walks the document's host plane in source order, applying Pass A to
// host-plane commands, tracking the effective page geometry and loaded
// fonts (both of which persist across label boundaries), and dispatching
// into validateLabel at each ^XA.
func (v *validator) run() {
	page := pageBounds{}
	if v.profile != nil {
		if v.profile.Page.WidthDots > 0 {
			page.width, page.hasWidth = float64(v.profile.Page.WidthDots), true
		}
		if v.profile.Page.HeightDots > 0 {
			page.height, page.hasHeight = float64(v.profile.Page.HeightDots), true
		}
	}

	labelByStart := make(map[ast.CommandID]int, len(v.doc.Labels))
	for i, l := range v.doc.Labels {
		labelByStart[l.Start] = i
	}

	for _, n := range v.doc.Host {
		if n.Kind != ast.NodeCommand {
			continue
		}
		cmd := v.doc.Command(n.Command)

		if idx, ok := labelByStart[n.Command]; ok {
			v.validateLabel(v.doc.Labels[idx], page)
			continue
		}

		spec, ok := v.table.Lookup(cmd.Opcode)
		v.passA(cmd, spec)
		if !ok {
			continue
		}

		switch cmd.Opcode {
		case "PW":
			if args := v.doc.CommandArgs(cmd); len(args) > 0 && args[0].Presence == ast.Value {
				page.width, page.hasWidth, page.sawPW = float64(args[0].Int), true, true
			}
		case "LL":
			if args := v.doc.CommandArgs(cmd); len(args) > 0 && args[0].Presence == ast.Value {
				page.height, page.hasHeight, page.sawLL = float64(args[0].Int), true, true
			}
		case "CW":
			if args := v.doc.CommandArgs(cmd); len(args) > 0 && args[0].Presence == ast.Value {
				v.loadedFonts[args[0].Str] = true
			}
		}
	}
}

func (v *validator) validateLabel(label ast.Label, page pageBounds) {
	if len(label.Body) == 0 {
		start := v.doc.Command(label.Start)
		v.report(diag.NewWarning(diag.EmptyLabel, start.Span, "label contains no body commands"))
	}

	if v.profile != nil {
		if !page.sawPW && v.profile.Page.WidthDots > 0 {
			start := v.doc.Command(label.Start)
			v.report(diag.NewInfo(diag.DimensionImpliedByProfile, start.Span,
				fmt.Sprintf("label omits ^PW; using profile page width %d dots", v.profile.Page.WidthDots)).
				WithContext("dimension", "width").WithContext("limit", strconv.Itoa(v.profile.Page.WidthDots)))
		}
		if !page.sawLL && v.profile.Page.HeightDots > 0 {
			start := v.doc.Command(label.Start)
			v.report(diag.NewInfo(diag.DimensionImpliedByProfile, start.Span,
				fmt.Sprintf("label omits ^LL; using profile page height %d dots", v.profile.Page.HeightDots)).
				WithContext("dimension", "height").WithContext("limit", strconv.Itoa(v.profile.Page.HeightDots)))
		}
	}

	tr := state.NewTracker()
	var fieldOrigins int
	fieldNumbers := make(map[int64]source.Span)
	var lastBarcodeSpec *specdata.CommandSpec
	var lastBarcodeCmd *ast.Command
	seenSinceFS := make(map[string]bool)
	var lastOriginX, lastOriginY int64
	var haveOrigin bool

	for _, n := range label.Body {
		if n.Kind != ast.NodeCommand {
			continue
		}
		cmd := v.doc.Command(n.Command)
		spec, ok := v.table.Lookup(cmd.Opcode)

		v.passA(cmd, spec)

		if ok && spec.Plane == specdata.PlaneHost {
			v.report(diag.NewError(diag.HostCommandInsideLabel, cmd.Span,
				fmt.Sprintf("%s is a host-plane command and cannot appear inside a label", cmd.Opcode)))
		}

		switch cmd.Opcode {
		case "FO", "FT":
			if tr.Current().FieldOpen {
				v.report(diag.NewError(diag.NestedFieldOrigin, cmd.Span,
					fmt.Sprintf("%s begins a new field before the previous one was closed with ^FS", cmd.Opcode)).
					WithNote(tr.Current().FieldOpenSpan, "previous field opened here"))
			}
		case "FS":
			if !tr.Current().FieldOpen {
				v.report(diag.NewWarning(diag.FieldSeparatorOrder, cmd.Span,
					"^FS closes a field but no field is currently open"))
			}
		}

		if key, span, clobbered := tr.Apply(v.doc, cmd); clobbered {
			v.report(diag.NewWarning(diag.StateOverrideUnused, span,
				"state setter value was overridden before any field consumed it").
				WithContext("key", stateKeyName(key)).
				WithNote(cmd.Span, "overridden here"))
		}

		if ok {
			v.checkConstraints(cmd, spec, seenSinceFS)
		}
		seenSinceFS[cmd.Opcode] = true

		switch cmd.Opcode {
		case "FO", "FT":
			fieldOrigins++
			if args := v.doc.CommandArgs(cmd); len(args) >= 2 {
				if args[0].Presence == ast.Value {
					lastOriginX, haveOrigin = args[0].Int, true
				}
				if args[1].Presence == ast.Value {
					lastOriginY = args[1].Int
				}
			}
			v.checkFieldBounds(cmd, page, lastOriginX, lastOriginY)
		case "FD", "FV":
			if fieldOrigins == 0 {
				// Already covered by the generic constraint engine above for
				// "FD"/"FV" via their ConstraintRequires("FO") metadata; kept
				// here only as a defensive fallback for hand-built spec
				// tables that omit it.
				if ok && !hasRequiresTarget(spec, "FO") {
					v.report(diag.NewError(diag.FieldDataWithoutOrigin, cmd.Span,
						"field data without a preceding field origin"))
				}
			}
			if cmd.Opcode == "FD" && cmd.HasFieldData && cmd.FieldData.HexEscaped {
				v.checkHexEscape(cmd, tr.Current().HexIndicator)
			}
		case "FS":
			fieldOrigins = 0
			seenSinceFS = make(map[string]bool)
			lastBarcodeSpec, lastBarcodeCmd = nil, nil
		case "FN":
			if ok && len(cmd.Args) > 0 {
				args := v.doc.CommandArgs(cmd)
				if len(args) > 0 && args[0].Presence == ast.Value {
					if prior, dup := fieldNumbers[args[0].Int]; dup {
						v.report(diag.NewError(diag.DuplicateFieldNumber, cmd.Span,
							fmt.Sprintf("field number %d already used in this label", args[0].Int)).
							WithNote(prior, "first used here"))
					} else {
						fieldNumbers[args[0].Int] = cmd.Span
					}
				}
			}
		case "GF":
			v.checkGraphic(cmd, page, lastOriginX, lastOriginY, haveOrigin)
		case "CW":
			if args := v.doc.CommandArgs(cmd); len(args) > 0 && args[0].Presence == ast.Value {
				v.loadedFonts[args[0].Str] = true
			}
		}

		if ok && spec.Barcode != nil {
			lastBarcodeSpec, lastBarcodeCmd = spec, cmd
		}
		if cmd.Opcode == "FD" && lastBarcodeSpec != nil {
			v.passC(lastBarcodeSpec, lastBarcodeCmd, cmd)
			if haveOrigin {
				v.checkBarcodeOverflow(lastBarcodeSpec, lastBarcodeCmd, cmd, tr.Current().Barcode, page, lastOriginX)
			}
		}
	}
}

// hasRequiresTarget reports whether spec declares a ConstraintRequires
// targeting opcode target, so the generic constraint engine already handles
// the case and the dedicated fallback can stay silent.
func hasRequiresTarget(spec *specdata.CommandSpec, target string) bool {
	for _, c := range spec.Constraints {
		if c.Kind == specdata.ConstraintRequires && c.Target == target {
			return true
		}
	}
	return false
}

// checkConstraints evaluates a command's data-driven cross-command rules
// (spec.md §6 ZPL21xx) against the set of opcodes seen since the field last
// closed. Two well-known field-scoped requirements (^FD/^FV needing a prior
// ^FO/^FT, ^SN needing a prior ^FN) are mapped onto their dedicated
// structural/semantic codes (ZPL2201, ZPL2306) instead of the generic ones,
// since spec.md calls those out by name; anything else falls through to the
// generic ZPL21xx codes.
func (v *validator) checkConstraints(cmd *ast.Command, spec *specdata.CommandSpec, seenSinceFS map[string]bool) {
	for _, c := range spec.Constraints {
		switch c.Kind {
		case specdata.ConstraintRequires:
			if seenSinceFS[c.Target] || (c.Target == "FO" && seenSinceFS["FT"]) {
				continue
			}
			switch {
			case cmd.Opcode == "FD" || cmd.Opcode == "FV":
				if c.Target == "FO" {
					v.report(diag.NewError(diag.FieldDataWithoutOrigin, cmd.Span,
						"field data without a preceding field origin"))
					continue
				}
			case cmd.Opcode == "SN" && c.Target == "FN":
				v.report(diag.NewError(diag.SerializationWithoutFN, cmd.Span,
					"serialization command used without a preceding field number"))
				continue
			}
			v.report(diag.NewError(diag.RequiresNotSatisfied, cmd.Span,
				fmt.Sprintf("%s requires a preceding %s in the same field", cmd.Opcode, c.Target)).
				WithContext("requires", c.Target))
		case specdata.ConstraintIncompatible:
			if seenSinceFS[c.Target] {
				v.report(diag.NewError(diag.IncompatibleCommands, cmd.Span,
					fmt.Sprintf("%s is incompatible with %s in the same field", cmd.Opcode, c.Target)).
					WithContext("incompatible_with", c.Target))
			}
		case specdata.ConstraintOrder:
			if seenSinceFS[c.Target] {
				v.report(diag.NewError(diag.CommandOrderViolated, cmd.Span,
					fmt.Sprintf("%s must appear before %s in the same field", cmd.Opcode, c.Target)).
					WithContext("before", c.Target))
			}
		case specdata.ConstraintEmptyData:
			if cmd.HasFieldData && strings.TrimSpace(cmd.FieldData.Text) == "" {
				v.report(diag.NewError(diag.FieldDataEmpty, cmd.FieldData.Span,
					fmt.Sprintf("%s: field data is empty", cmd.Opcode)))
			}
		}
	}
}

func stateKeyName(k state.Key) string {
	switch k {
	case state.KeyBarcodeDefaults:
		return "barcode_defaults"
	case state.KeyFontDefaults:
		return "font_defaults"
	case state.KeyFieldOrientation:
		return "field_orientation"
	case state.KeyLabelHome:
		return "label_home"
	case state.KeyHexIndicator:
		return "hex_indicator"
	default:
		return "unknown"
	}
}

// passA validates one command's own arguments: arity, type, numeric range,
// rounding, presence, and (if a profile is attached) profile-constraint and
// printer-gate checks. spec may be nil for a host-plane command reached
// before any label, which still gets full Pass A treatment.
func (v *validator) passA(cmd *ast.Command, spec *specdata.CommandSpec) {
	if spec == nil {
		var ok bool
		spec, ok = v.table.Lookup(cmd.Opcode)
		if !ok {
			return
		}
	}

	if v.profile != nil {
		for _, gate := range spec.PrinterGates {
			if !v.profile.Features.Supports(gate) {
				v.report(diag.NewError(diag.PrinterGateFailed, cmd.Span,
					fmt.Sprintf("%s requires printer feature %q, which this profile marks unsupported", cmd.Opcode, gate)).
					WithContext("gate", gate))
			}
		}
	}

	args := v.doc.CommandArgs(cmd)
	for i, argSpec := range spec.Args {
		var arg *ast.Argument
		if i < len(args) {
			arg = &args[i]
		}
		v.checkArg(cmd, argSpec, arg)
	}
}

func (v *validator) checkArg(cmd *ast.Command, spec specdata.ArgSpec, arg *ast.Argument) {
	if arg == nil || arg.Presence == ast.Unset {
		if spec.Presence == specdata.PresenceRequired || spec.Presence == specdata.PresenceRequiredNonEmpty {
			v.report(diag.NewError(diag.PresenceRequiredMissing, cmd.Span,
				fmt.Sprintf("%s: required argument %q is missing", cmd.Opcode, spec.Name)).
				WithContext("arg", spec.Key))
		}
		return
	}
	if arg.Presence == ast.Empty {
		if spec.Presence == specdata.PresenceRequiredNonEmpty {
			v.report(diag.NewError(diag.PresenceEmptyRequired, arg.Span,
				fmt.Sprintf("%s: argument %q cannot be empty", cmd.Opcode, spec.Name)))
		}
		return
	}

	switch spec.Type {
	case specdata.ArgInt:
		if arg.Kind != ast.KindInteger {
			v.report(diag.NewError(diag.TypeNotInteger, arg.Span,
				fmt.Sprintf("%s: %q is not an integer", cmd.Opcode, arg.Raw)))
			return
		}
		v.checkNumericRange(cmd, spec, arg, float64(arg.Int))
	case specdata.ArgNumber:
		if arg.Kind != ast.KindNumber && arg.Kind != ast.KindInteger {
			v.report(diag.NewError(diag.TypeNotNumber, arg.Span,
				fmt.Sprintf("%s: %q is not a number", cmd.Opcode, arg.Raw)))
			return
		}
		val := arg.Num
		if arg.Kind == ast.KindInteger {
			val = float64(arg.Int)
		}
		v.checkNumericRange(cmd, spec, arg, val)
	case specdata.ArgChar:
		if len([]rune(arg.Raw)) != 1 {
			v.report(diag.NewError(diag.TypeNotChar, arg.Span,
				fmt.Sprintf("%s: %q is not a single character", cmd.Opcode, arg.Raw)))
			return
		}
		if spec.FontRef && !builtinFonts[arg.Raw] && !v.loadedFonts[arg.Raw] {
			v.report(diag.NewError(diag.FontNotLoaded, arg.Span,
				fmt.Sprintf("%s: font %q is neither a built-in font nor loaded via ^CW", cmd.Opcode, arg.Raw)).
				WithContext("font", arg.Raw))
		}
	case specdata.ArgEnum:
		if !enumContains(spec.Enum, arg.Raw) {
			v.report(diag.NewError(diag.EnumInvalid, arg.Span,
				fmt.Sprintf("%s: %q is not one of the allowed values for %s", cmd.Opcode, arg.Raw, spec.Name)))
			return
		}
		if v.profile != nil {
			if gate := enumGate(spec.Enum, arg.Raw); gate != "" && !v.profile.Features.Supports(gate) {
				v.report(diag.NewError(diag.PrinterGateFailed, arg.Span,
					fmt.Sprintf("%s: value %q requires printer feature %q", cmd.Opcode, arg.Raw, gate)))
			}
			if spec.MediaMode && len(v.profile.Media.SupportedModes) > 0 && !stringsContain(v.profile.Media.SupportedModes, arg.Raw) {
				v.report(diag.NewError(diag.MediaModeUnsupported, arg.Span,
					fmt.Sprintf("%s: media mode %q is not in the profile's supported set", cmd.Opcode, arg.Raw)).
					WithContext("mode", arg.Raw).WithContext("profile", v.profile.ID))
			}
		}
	}

	if spec.HasLen {
		n := len([]rune(arg.Raw))
		if n < spec.MinLen {
			v.report(diag.NewError(diag.StringTooShort, arg.Span,
				fmt.Sprintf("%s: %q is shorter than the minimum length %d", cmd.Opcode, arg.Raw, spec.MinLen)))
		}
		if spec.MaxLen > 0 && n > spec.MaxLen {
			v.report(diag.NewError(diag.StringTooLong, arg.Span,
				fmt.Sprintf("%s: %q is longer than the maximum length %d", cmd.Opcode, arg.Raw, spec.MaxLen)))
		}
	}
}

func stringsContain(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (v *validator) checkNumericRange(cmd *ast.Command, spec specdata.ArgSpec, arg *ast.Argument, val float64) {
	if spec.HasRange && (val < spec.Min || val > spec.Max) {
		v.report(diag.NewError(diag.NumericOutOfRange, arg.Span,
			fmt.Sprintf("%s: %s %s is outside the allowed range [%s, %s]",
				cmd.Opcode, spec.Name, trimFloat(val), trimFloat(spec.Min), trimFloat(spec.Max))))
		return
	}
	if spec.Rounding != nil && spec.Rounding.Multiple > 0 {
		remainder := remainderOf(val, spec.Rounding.Multiple)
		if remainder > spec.Rounding.Epsilon && (spec.Rounding.Multiple-remainder) > spec.Rounding.Epsilon {
			v.report(diag.NewWarning(diag.RoundingViolation, arg.Span,
				fmt.Sprintf("%s: %s %s is not a multiple of %s", cmd.Opcode, spec.Name, trimFloat(val), trimFloat(spec.Rounding.Multiple))))
		}
	}
	if v.profile != nil && spec.Profile != nil {
		limit, ok := v.profile.Field(spec.Profile.FieldPath)
		if ok && !compare(spec.Profile.Compare, val, limit) {
			v.report(diag.NewError(diag.ProfileConstraintViolated, arg.Span,
				fmt.Sprintf("%s: %s %s violates profile constraint against %s (%s)",
					cmd.Opcode, spec.Name, trimFloat(val), spec.Profile.FieldPath, trimFloat(limit))).
				WithContext("field", spec.Profile.FieldPath).
				WithContext("limit", trimFloat(limit)).
				WithContext("actual", trimFloat(val)))
		}
	}
}

// checkFieldBounds implements ZPL2302: a field origin's coordinates must fall
// within the effective page dimensions (the most recent ^PW/^LL, or the
// profile's page if neither was set).
func (v *validator) checkFieldBounds(cmd *ast.Command, page pageBounds, x, y int64) {
	if page.hasWidth && float64(x) > page.width {
		v.report(diag.NewError(diag.FieldPositionOutOfBounds, cmd.Span,
			fmt.Sprintf("%s: x %d exceeds the effective page width %s", cmd.Opcode, x, trimFloat(page.width))).
			WithContext("axis", "x").WithContext("limit", trimFloat(page.width)).WithContext("actual", strconv.FormatInt(x, 10)))
	}
	if page.hasHeight && float64(y) > page.height {
		v.report(diag.NewError(diag.FieldPositionOutOfBounds, cmd.Span,
			fmt.Sprintf("%s: y %d exceeds the effective page height %s", cmd.Opcode, y, trimFloat(page.height))).
			WithContext("axis", "y").WithContext("limit", trimFloat(page.height)).WithContext("actual", strconv.FormatInt(y, 10)))
	}
}

// checkGraphic implements ZPL2308/ZPL2309: a ^GF's bitmap extent against the
// effective label bounds, and its cumulative declared byte footprint against
// the profile's RAM.
func (v *validator) checkGraphic(cmd *ast.Command, page pageBounds, x, y int64, haveOrigin bool) {
	args := v.doc.CommandArgs(cmd)
	var totalBytes, bytesPerRow int64
	for _, a := range args {
		switch a.Index {
		case 1:
			totalBytes = a.Int
		case 2:
			bytesPerRow = a.Int
		}
	}
	if bytesPerRow > 0 {
		widthDots := bytesPerRow * 8
		rows := int64(0)
		if totalBytes > 0 {
			rows = totalBytes / bytesPerRow
		}
		if haveOrigin {
			if page.hasWidth && float64(x+widthDots) > page.width {
				v.report(diag.NewWarning(diag.GraphicOutOfBounds, cmd.Span,
					fmt.Sprintf("^GF extends to x=%d, past the effective page width %s", x+widthDots, trimFloat(page.width))))
			}
			if page.hasHeight && float64(y+rows) > page.height {
				v.report(diag.NewWarning(diag.GraphicOutOfBounds, cmd.Span,
					fmt.Sprintf("^GF extends to y=%d, past the effective page height %s", y+rows, trimFloat(page.height))))
			}
		}
	}

	if totalBytes > 0 {
		v.gfBytesUsed += totalBytes
		if v.profile != nil && v.profile.Memory.RAMKB > 0 {
			limitBytes := int64(v.profile.Memory.RAMKB) * 1024
			if v.gfBytesUsed > limitBytes {
				v.report(diag.NewError(diag.GraphicMemoryExceeded, cmd.Span,
					fmt.Sprintf("cumulative ^GF footprint %d bytes exceeds profile RAM %d bytes", v.gfBytesUsed, limitBytes)).
					WithContext("cumulative", strconv.FormatInt(v.gfBytesUsed, 10)).
					WithContext("limit", strconv.FormatInt(limitBytes, 10)))
			}
		}
	}
}

// checkHexEscape implements ZPL2304: every occurrence of the active hex
// indicator character in a ^FD payload must be followed by exactly two hex
// digits.
func (v *validator) checkHexEscape(cmd *ast.Command, indicator string) {
	ind := rune('_')
	if r := []rune(indicator); len(r) > 0 {
		ind = r[0]
	}
	runes := []rune(cmd.FieldData.Text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != ind {
			continue
		}
		if i+2 >= len(runes) || !isHexDigit(runes[i+1]) || !isHexDigit(runes[i+2]) {
			v.report(diag.NewError(diag.HexEscapeInvalid, cmd.FieldData.Span,
				fmt.Sprintf("%s: hex escape at indicator %q is not followed by two hex digits", cmd.Opcode, string(ind))))
			return
		}
		i += 2
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// estimateBarsPerChar is a heuristic average module count per encoded
// character across the common 1D symbologies this table covers. It is
// intentionally coarse: spec.md §9 marks ZPL2311 as estimate-based, with
// exact per-symbology/per-font metrics called out as a renderer concern.
const estimateBarsPerChar = 11.0

// checkBarcodeOverflow implements ZPL2311: an estimated preflight of a
// barcode field's printed width against the space remaining on the
// effective page, downgrading small overflows to an info-level note.
func (v *validator) checkBarcodeOverflow(spec *specdata.CommandSpec, barcodeCmd, fd *ast.Command, bc state.BarcodeDefaults, page pageBounds, originX int64) {
	if !page.hasWidth {
		return
	}
	n := len([]rune(fd.FieldData.Text))
	moduleWidth := bc.ModuleWidth
	if moduleWidth <= 0 {
		moduleWidth = 2
	}
	estimated := float64(n) * estimateBarsPerChar * float64(moduleWidth)
	available := page.width - float64(originX)
	if available <= 0 || estimated <= available {
		return
	}
	ratio := estimated/available - 1
	msg := fmt.Sprintf("%s: estimated barcode width %s exceeds the %s dots remaining on the page",
		barcodeCmd.Opcode, trimFloat(estimated), trimFloat(available))
	d := diag.NewWarning(diag.TextBarcodeOverflow, fd.FieldData.Span, msg)
	if ratio <= 0.10 {
		d = diag.NewInfo(diag.TextBarcodeOverflow, fd.FieldData.Span, msg+" (may extend)")
	}
	v.report(d.WithContext("estimated", trimFloat(estimated)).WithContext("available", trimFloat(available)))
}

func remainderOf(v, m float64) float64 {
	r := v - float64(int64(v/m))*m
	if r < 0 {
		r += m
	}
	return r
}

func compare(c specdata.Comparator, v, limit float64) bool {
	switch c {
	case specdata.CompareLT:
		return v < limit
	case specdata.CompareLTE:
		return v <= limit
	case specdata.CompareGT:
		return v > limit
	case specdata.CompareGTE:
		return v >= limit
	case specdata.CompareEQ:
		return v == limit
	default:
		return true
	}
}

func enumContains(values []specdata.EnumValue, raw string) bool {
	for _, e := range values {
		if e.Token == raw {
			return true
		}
	}
	return false
}

func enumGate(values []specdata.EnumValue, raw string) string {
	for _, e := range values {
		if e.Token == raw {
			return e.Gate
		}
	}
	return ""
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(f, 'f', 3, 64), "0"), ".")
}

// passC checks a barcode-selecting command's following field data against
// its BarcodeRule: allowed character set and length policy.
func (v *validator) passC(spec *specdata.CommandSpec, barcodeCmd, fd *ast.Command) {
	if fd.HasFieldData && fd.FieldData.HexEscaped {
		// Hex escapes defeat character-set validation (spec.md §4.1): a
		// literal "_41" is two hex digits, not the two raw bytes '4' and '1'.
		return
	}
	rule := spec.Barcode
	text := fd.FieldData.Text
	n := len([]rune(text))

	switch {
	case rule.ExactLen > 0 && n != rule.ExactLen:
		v.report(diag.NewError(diag.BarcodeLengthInvalid, fd.FieldData.Span,
			fmt.Sprintf("%s field data must be exactly %d characters, got %d", barcodeCmd.Opcode, rule.ExactLen, n)))
	case rule.MinLen > 0 && n < rule.MinLen:
		v.report(diag.NewError(diag.BarcodeLengthInvalid, fd.FieldData.Span,
			fmt.Sprintf("%s field data must be at least %d characters, got %d", barcodeCmd.Opcode, rule.MinLen, n)))
	case rule.MaxLen > 0 && n > rule.MaxLen:
		v.report(diag.NewError(diag.BarcodeLengthInvalid, fd.FieldData.Span,
			fmt.Sprintf("%s field data must be at most %d characters, got %d", barcodeCmd.Opcode, rule.MaxLen, n)))
	case len(rule.AllowedLens) > 0 && !lenAllowed(n, rule.AllowedLens):
		v.report(diag.NewError(diag.BarcodeLengthInvalid, fd.FieldData.Span,
			fmt.Sprintf("%s field data length %d is not one of the allowed lengths", barcodeCmd.Opcode, n)))
	}

	if rule.CharsetNotation != "" {
		if bad, ok := firstDisallowedRune(text, rule.CharsetNotation); ok {
			v.report(diag.NewError(diag.BarcodeCharsetInvalid, fd.FieldData.Span,
				fmt.Sprintf("%s field data contains %q, outside the allowed charset %s", barcodeCmd.Opcode, string(bad), rule.CharsetNotation)))
		}
	}
}

func lenAllowed(n int, allowed []int) bool {
	for _, a := range allowed {
		if a == n {
			return true
		}
	}
	return false
}

// firstDisallowedRune checks text against a compact range notation like
// "0-9A-Za-z -.$/+%", returning the first rune not covered by any range.
func firstDisallowedRune(text, notation string) (rune, bool) {
	ranges := parseCharsetNotation(notation)
	for _, r := range text {
		covered := false
		for _, rg := range ranges {
			if r >= rg.lo && r <= rg.hi {
				covered = true
				break
			}
		}
		if !covered {
			return r, true
		}
	}
	return 0, false
}

type runeRange struct{ lo, hi rune }

func parseCharsetNotation(notation string) []runeRange {
	runes := []rune(notation)
	var out []runeRange
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i+1] == '-' {
			out = append(out, runeRange{lo: runes[i], hi: runes[i+2]})
			i += 2
			continue
		}
		out = append(out, runeRange{lo: runes[i], hi: runes[i]})
	}
	return out
}
