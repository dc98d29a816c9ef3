package diag

import "fmt"

// Code is a stable, versioned diagnostic identifier. Validator codes use their
// numeric value directly (rendered "ZPLnnnn"); parser codes are stored with a
// parserCodeBase offset so the two namespaces never collide, and render as
// "ZPL.PARSER.nnnn" per the spec's taxonomy (spec.md §6).
type Code uint32

const parserCodeBase Code = 1_000_000

// Parser constructs a parser-namespace Code from its spec.md §6 numeric suffix.
func Parser(n uint32) Code { return parserCodeBase + Code(n) }

// IsParser reports whether the code belongs to the ZPL.PARSER namespace.
func (c Code) IsParser() bool { return c >= parserCodeBase }

// ID renders the stable string form, e.g. "ZPL1201" or "ZPL.PARSER.1102".
func (c Code) ID() string {
	if c.IsParser() {
		return fmt.Sprintf("ZPL.PARSER.%04d", uint32(c-parserCodeBase))
	}
	return fmt.Sprintf("ZPL%04d", uint32(c))
}

func (c Code) String() string { return c.ID() }

const (
	UnknownCode Code = 0

	// ZPL11xx — arity / value validation.
	ArityMissingArg     Code = 1101
	EnumInvalid         Code = 1103
	StringTooShort      Code = 1105
	StringTooLong       Code = 1106
	TypeNotInteger      Code = 1107
	TypeNotNumber       Code = 1108
	TypeNotChar         Code = 1109
	FieldDataEmpty      Code = 1110

	// ZPL12xx — numeric range and rounding policy.
	NumericOutOfRange Code = 1201
	RoundingViolation Code = 1202

	// ZPL14xx — profile constraint, printer gate, media unsupported.
	ProfileConstraintViolated Code = 1401
	PrinterGateFailed         Code = 1402
	MediaModeUnsupported      Code = 1403

	// ZPL15xx — presence.
	PresenceRequiredMissing Code = 1501
	PresenceEmptyRequired   Code = 1502

	// ZPL21xx — cross-command constraints.
	RequiresNotSatisfied    Code = 2101
	IncompatibleCommands    Code = 2102
	CommandOrderViolated    Code = 2103

	// ZPL22xx — structural.
	FieldDataWithoutOrigin  Code = 2201
	EmptyLabel              Code = 2202
	NestedFieldOrigin       Code = 2203
	FieldSeparatorOrder     Code = 2204
	HostCommandInsideLabel  Code = 2205

	// ZPL23xx — semantic.
	DuplicateFieldNumber    Code = 2301
	FieldPositionOutOfBounds Code = 2302
	FontNotLoaded           Code = 2303
	HexEscapeInvalid        Code = 2304
	StateOverrideUnused     Code = 2305
	SerializationWithoutFN  Code = 2306
	GraphicLengthMismatch   Code = 2307
	GraphicOutOfBounds      Code = 2308
	GraphicMemoryExceeded   Code = 2309
	DimensionImpliedByProfile Code = 2310
	TextBarcodeOverflow     Code = 2311

	// ZPL24xx — barcode field-data character-set and length.
	BarcodeCharsetInvalid Code = 2401
	BarcodeLengthInvalid  Code = 2402

	// ZPL30xx — informational notes.
	InfoPrefixChanged       Code = 3001
	InfoLanguageModeChanged Code = 3002
	InfoStateMutation       Code = 3003
)

const (
	parserInfoEmptyInput        = 1 // empty input document
	parserLexUnknownOpcode      = 1002
	parserStrayLeaderInComment  = 1001
	parserStrayContent          = 1301
	parserNonASCIIDelimiterArg  = 1302
	parserMissingLabelTerminator = 1102
	parserFieldInterrupted      = 1203
	parserMissingSeparator      = 1204
)

var (
	// ParserEmptyInput reports an empty source document (spec §8 boundary case).
	ParserEmptyInput          = Parser(parserInfoEmptyInput)
	ParserUnknownOpcode       = Parser(parserLexUnknownOpcode)
	ParserStrayLeaderInComment = Parser(parserStrayLeaderInComment)
	ParserStrayContent        = Parser(parserStrayContent)
	ParserNonASCIIDelimiterArg = Parser(parserNonASCIIDelimiterArg)
	ParserMissingLabelTerminator = Parser(parserMissingLabelTerminator)
	ParserFieldInterrupted    = Parser(parserFieldInterrupted)
	ParserMissingSeparator    = Parser(parserMissingSeparator)
)

var codeTitle = map[Code]string{
	UnknownCode:               "unknown",
	ArityMissingArg:           "more arguments supplied than the command's declared arity",
	EnumInvalid:               "value is not a member of the expected enumeration",
	StringTooShort:            "string shorter than the allowed minimum length",
	StringTooLong:             "string longer than the allowed maximum length",
	TypeNotInteger:            "value does not parse as an integer",
	TypeNotNumber:             "value does not parse as a number",
	TypeNotChar:               "value is not a single character",
	FieldDataEmpty:            "field data is empty where a value is required",
	NumericOutOfRange:         "numeric value outside the allowed range",
	RoundingViolation:         "value is not a multiple of the required rounding unit",
	ProfileConstraintViolated: "value violates a printer profile constraint",
	PrinterGateFailed:         "command or value requires a hardware feature the profile marks absent",
	MediaModeUnsupported:      "media mode is not in the profile's supported set",
	PresenceRequiredMissing:   "required argument position is unset",
	PresenceEmptyRequired:     "argument is empty where a value is required",
	RequiresNotSatisfied:      "command requires another command not present",
	IncompatibleCommands:      "commands are mutually incompatible",
	CommandOrderViolated:      "command appears in an invalid order",
	FieldDataWithoutOrigin:    "field data without a preceding field origin",
	EmptyLabel:                "label contains no body commands",
	NestedFieldOrigin:         "field origin begins before the previous field was closed",
	FieldSeparatorOrder:       "field separator appears out of order",
	HostCommandInsideLabel:    "host-plane command used inside a label",
	DuplicateFieldNumber:      "duplicate field number within a label",
	FieldPositionOutOfBounds:  "field position falls outside the effective page bounds",
	FontNotLoaded:             "referenced font is neither built-in nor loaded",
	HexEscapeInvalid:          "hex escape sequence is malformed",
	StateOverrideUnused:       "state setter value was overridden before any field consumed it",
	SerializationWithoutFN:    "serialization command used without a preceding field number",
	GraphicLengthMismatch:     "declared graphic byte count does not match actual data length",
	GraphicOutOfBounds:        "graphic placement falls outside the effective label bounds",
	GraphicMemoryExceeded:     "cumulative graphic memory footprint exceeds profile RAM",
	DimensionImpliedByProfile: "dimension omitted though the profile provides a default",
	TextBarcodeOverflow:       "estimated text or barcode extent exceeds the field bounds",
	BarcodeCharsetInvalid:     "field data contains a character outside the barcode's allowed set",
	BarcodeLengthInvalid:      "field data length does not satisfy the barcode's length rule",
	InfoPrefixChanged:         "leader character changed",
	InfoLanguageModeChanged:   "delimiter character changed",
	InfoStateMutation:         "lexer or validator state mutated",
}

// Title returns a short human-readable description of the code's meaning.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return "unrecognized diagnostic code"
}
