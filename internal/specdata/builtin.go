package specdata

// builtinCommands returns a hand-authored subset of the ZPL II command set,
// covering the commands exercised by the validator passes and test corpus.
// A production deployment swaps this for the full artifact produced by the
// out-of-scope JSONC-to-table compiler (spec.md §1); the core is agnostic to
// which source produced the bytes Decode reads.
func builtinCommands() []*CommandSpec {
	return []*CommandSpec{
		{
			Opcode: "XA", Name: "Start Format", Category: "format", Plane: PlaneHost, Scope: ScopeLabel,
			Doc: "Begins a label format.",
		},
		{
			Opcode: "XZ", Name: "End Format", Category: "format", Plane: PlaneHost, Scope: ScopeLabel,
			Doc: "Ends a label format.",
		},
		{
			Opcode: "FO", Name: "Field Origin", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "x", Name: "x", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceRequired,
					Profile: &ProfileConstraint{FieldPath: "page.width_dots", Compare: CompareLTE}},
				{Key: "y", Name: "y", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceRequired,
					Profile: &ProfileConstraint{FieldPath: "page.height_dots", Compare: CompareLTE}},
				{Key: "z", Name: "justification", Type: ArgEnum, Presence: PresenceOptional,
					Enum: []EnumValue{{Token: "0"}, {Token: "1"}, {Token: "2"}}},
			},
		},
		{
			Opcode: "FT", Name: "Field Typeset", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "x", Name: "x", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceRequired},
				{Key: "y", Name: "y", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceRequired},
			},
		},
		{
			Opcode: "FD", Name: "Field Data", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			FieldOwning: true,
			Constraints: []Constraint{
				{Kind: ConstraintRequires, Scope: ScopeField, Target: "FO", Note: "field data without a preceding field origin"},
				{Kind: ConstraintEmptyData, Scope: ScopeField, Note: "field data is empty"},
			},
		},
		{
			Opcode: "FV", Name: "Field Variable Data", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			FieldOwning: true,
			Constraints: []Constraint{
				{Kind: ConstraintRequires, Scope: ScopeField, Target: "FO", Note: "field data without a preceding field origin"},
				{Kind: ConstraintEmptyData, Scope: ScopeField, Note: "field data is empty"},
			},
		},
		{
			Opcode: "FS", Name: "Field Separator", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			Doc: "Closes the current field.",
		},
		{
			Opcode: "BY", Name: "Bar Code Field Default", Category: "barcode", Plane: PlaneFormat, Scope: ScopeLabel,
			Args: []ArgSpec{
				{Key: "w", Name: "module width", Type: ArgInt, HasRange: true, Min: 1, Max: 10, Presence: PresenceOptional,
					Default: DefaultSource{Kind: DefaultLiteral, Literal: "2"}},
				{Key: "r", Name: "wide-to-narrow ratio", Type: ArgNumber, HasRange: true, Min: 2.0, Max: 3.0, Presence: PresenceOptional,
					Default: DefaultSource{Kind: DefaultLiteral, Literal: "3.0"}},
				{Key: "h", Name: "bar code height", Type: ArgInt, HasRange: true, Min: 1, Max: 32000, Presence: PresenceOptional,
					Default: DefaultSource{Kind: DefaultLiteral, Literal: "10"}},
			},
		},
		{
			Opcode: "BC", Name: "Code 128 Bar Code", Category: "barcode", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "o", Name: "orientation", Type: ArgEnum, Presence: PresenceOptional,
					Enum: []EnumValue{{Token: "N"}, {Token: "R"}, {Token: "I"}, {Token: "B"}}},
				{Key: "h", Name: "height", Type: ArgInt, HasRange: true, Min: 1, Max: 32000, Presence: PresenceOptional,
					Default: DefaultSource{Kind: DefaultFromStateKey, StateKey: "barcode_height"}},
			},
			Barcode: &BarcodeRule{CharsetNotation: "0-9A-Za-z -.$/+%", MinLen: 1, MaxLen: 255},
		},
		{
			Opcode: "BE", Name: "EAN-13 Bar Code", Category: "barcode", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "o", Name: "orientation", Type: ArgEnum, Presence: PresenceOptional,
					Enum: []EnumValue{{Token: "N"}, {Token: "R"}, {Token: "I"}, {Token: "B"}}},
				{Key: "h", Name: "height", Type: ArgInt, HasRange: true, Min: 1, Max: 32000, Presence: PresenceOptional},
			},
			Barcode: &BarcodeRule{CharsetNotation: "0-9", ExactLen: 12},
		},
		{
			Opcode: "A0", Name: "Scalable Font", Category: "text", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "o", Name: "orientation", Type: ArgEnum, Presence: PresenceOptional,
					Enum: []EnumValue{{Token: "N"}, {Token: "R"}, {Token: "I"}, {Token: "B"}}},
				{Key: "h", Name: "height", Type: ArgInt, HasRange: true, Min: 10, Max: 32000, Presence: PresenceOptional},
				{Key: "w", Name: "width", Type: ArgInt, HasRange: true, Min: 10, Max: 32000, Presence: PresenceOptional},
			},
		},
		{
			Opcode: "CF", Name: "Change Default Font", Category: "text", Plane: PlaneFormat, Scope: ScopeLabel,
			Args: []ArgSpec{
				{Key: "f", Name: "font", Type: ArgChar, Presence: PresenceOptional, FontRef: true},
				{Key: "h", Name: "height", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceOptional},
				{Key: "w", Name: "width", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceOptional},
			},
		},
		{
			Opcode: "FW", Name: "Field Orientation", Category: "field", Plane: PlaneFormat, Scope: ScopeLabel,
			Args: []ArgSpec{
				{Key: "o", Name: "orientation", Type: ArgEnum, Presence: PresenceOptional,
					Enum: []EnumValue{{Token: "N"}, {Token: "R"}, {Token: "I"}, {Token: "B"}}},
			},
		},
		{
			Opcode: "LH", Name: "Label Home", Category: "layout", Plane: PlaneFormat, Scope: ScopeLabel,
			Args: []ArgSpec{
				{Key: "x", Name: "x", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceOptional},
				{Key: "y", Name: "y", Type: ArgInt, HasRange: true, Min: 0, Max: 32000, Presence: PresenceOptional},
			},
		},
		{
			Opcode: "PW", Name: "Print Width", Category: "layout", Plane: PlaneHost, Scope: ScopeJob,
			Args: []ArgSpec{
				{Key: "w", Name: "width", Type: ArgInt, HasRange: true, Min: 2, Max: 32000, Presence: PresenceRequired,
					Profile: &ProfileConstraint{FieldPath: "page.width_dots", Compare: CompareLTE}},
			},
		},
		{
			Opcode: "LL", Name: "Label Length", Category: "layout", Plane: PlaneHost, Scope: ScopeJob,
			Args: []ArgSpec{
				{Key: "h", Name: "length", Type: ArgInt, HasRange: true, Min: 1, Max: 32000, Presence: PresenceRequired,
					Profile: &ProfileConstraint{FieldPath: "page.height_dots", Compare: CompareLTE},
					Rounding: &RoundingPolicy{Multiple: 8, Epsilon: 0.5}},
			},
		},
		{
			Opcode: "PO", Name: "Print Orientation", Category: "layout", Plane: PlaneHost, Scope: ScopeJob,
			Args: []ArgSpec{
				{Key: "o", Name: "orientation", Type: ArgEnum, Presence: PresenceOptional,
					Enum: []EnumValue{{Token: "N"}, {Token: "I"}}},
			},
		},
		{
			Opcode: "FN", Name: "Field Number", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "n", Name: "number", Type: ArgInt, HasRange: true, Min: 0, Max: 9999, Presence: PresenceRequired},
			},
		},
		{
			Opcode: "FH", Name: "Field Hexadecimal Indicator", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "a", Name: "indicator", Type: ArgChar, Presence: PresenceOptional,
					Default: DefaultSource{Kind: DefaultLiteral, Literal: "_"}},
			},
		},
		{
			Opcode: "GF", Name: "Graphic Field", Category: "graphic", Plane: PlaneFormat, Scope: ScopeField,
			RawDataOwning: true,
			Args: []ArgSpec{
				{Key: "f", Name: "format", Type: ArgEnum, Presence: PresenceRequired,
					Enum: []EnumValue{{Token: "A"}, {Token: "B"}, {Token: "C"}}},
				{Key: "b", Name: "total bytes", Type: ArgInt, Presence: PresenceRequired},
				{Key: "c", Name: "bytes per row", Type: ArgInt, Presence: PresenceRequired},
			},
		},
		{
			Opcode: "CC", Name: "Change Caret", Category: "config", Plane: PlaneFormat, Scope: ScopeSession,
			Args: []ArgSpec{{Key: "c", Name: "leader", Type: ArgChar, Presence: PresenceRequired}},
		},
		{
			Opcode: "CD", Name: "Change Delimiter", Category: "config", Plane: PlaneFormat, Scope: ScopeSession,
			Args: []ArgSpec{{Key: "c", Name: "delimiter", Type: ArgChar, Presence: PresenceRequired}},
		},
		{
			Opcode: "SN", Name: "Serialization Data", Category: "field", Plane: PlaneFormat, Scope: ScopeField,
			Args: []ArgSpec{
				{Key: "n", Name: "start value", Type: ArgInt, Presence: PresenceOptional},
				{Key: "i", Name: "increment", Type: ArgInt, Presence: PresenceOptional},
			},
			Constraints: []Constraint{{Kind: ConstraintRequires, Scope: ScopeField, Target: "FN", Note: "serialization used without a preceding field number"}},
		},
		{
			Opcode: "RF", Name: "RFID", Category: "rfid", Plane: PlaneFormat, Scope: ScopeField,
			PrinterGates: []string{"rfid"},
			Args: []ArgSpec{
				{Key: "op", Name: "operation", Type: ArgEnum, Presence: PresenceRequired,
					Enum: []EnumValue{{Token: "R"}, {Token: "W"}}},
			},
		},
		{
			Opcode: "FX", Name: "Comment", Category: "comment", Plane: PlaneFormat, Scope: ScopeField,
			Doc: "Free-form comment body, terminated by ^FS.",
		},
		{
			Opcode: "CW", Name: "Font Identifier", Category: "text", Plane: PlaneFormat, Scope: ScopeSession,
			Doc: "Assigns a font resource to one of the built-in font letters (A-Z, 0-9).",
			Args: []ArgSpec{
				{Key: "a", Name: "font letter", Type: ArgChar, Presence: PresenceRequired},
				{Key: "d", Name: "font resource", Type: ArgResource, Presence: PresenceOptional, Resource: "font"},
			},
		},
		{
			Opcode: "MN", Name: "Media Tracking", Category: "media", Plane: PlaneHost, Scope: ScopeJob,
			Doc: "Selects the media sensing mode the profile must support.",
			Args: []ArgSpec{
				{Key: "m", Name: "mode", Type: ArgEnum, Presence: PresenceOptional, MediaMode: true,
					Enum: []EnumValue{{Token: "N"}, {Token: "Y"}, {Token: "M"}, {Token: "C"}}},
			},
		},
	}
}
