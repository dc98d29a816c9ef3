package specdata

// Plane mirrors ast.Plane without importing the ast package, since specdata
// sits below ast in the dependency order (diagnostics → spec tables →
// profile → parser/print client → validator → formatter).
type Plane uint8

const (
	PlaneUnknown Plane = iota
	PlaneFormat
	PlaneHost
	PlaneDevice
)

// Scope is the lifetime of a command's effect.
type Scope uint8

const (
	ScopeUnknown Scope = iota
	ScopeField
	ScopeLabel
	ScopeJob
	ScopeSession
)

// ArgType names an argument's decoded type class.
type ArgType uint8

const (
	ArgUnknown ArgType = iota
	ArgInt
	ArgNumber
	ArgEnum
	ArgChar
	ArgString
	ArgResource
)

// PresencePolicy says whether an argument slot must carry an explicit value.
type PresencePolicy uint8

const (
	PresenceOptional PresencePolicy = iota
	PresenceRequired
	// PresenceRequiredNonEmpty forbids both Unset and Empty.
	PresenceRequiredNonEmpty
)

// RoundingPolicy declares that a numeric value must be a multiple of a unit,
// within a tolerance, e.g. "multiple of 8, epsilon 0.5".
type RoundingPolicy struct {
	Multiple float64
	Epsilon  float64
}

// Comparator is a profile-constraint comparison operator.
type Comparator uint8

const (
	CompareNone Comparator = iota
	CompareLT
	CompareLTE
	CompareGT
	CompareGTE
	CompareEQ
)

// ProfileConstraint ties an argument's effective value to a named profile
// field via a comparator, e.g. "value <= profile.page.width_dots".
type ProfileConstraint struct {
	FieldPath string
	Compare   Comparator
}

// DefaultSource says where an elided/empty argument's value comes from.
type DefaultSourceKind uint8

const (
	DefaultNone DefaultSourceKind = iota
	DefaultLiteral
	DefaultFromStateKey
	DefaultFromDPIMap
)

// DefaultSource describes the default-value policy for one argument.
type DefaultSource struct {
	Kind      DefaultSourceKind
	Literal   string
	StateKey  string
	DPIValues map[int]string
}

// EnumValue is one member of an enum argument's value set, with an optional
// printer-gate name guarding it.
type EnumValue struct {
	Token string
	Gate  string // empty if ungated
}

// ArgSpec is a single ordered argument descriptor for a command.
type ArgSpec struct {
	Key      string
	Name     string
	Type     ArgType
	Unit     string
	Min, Max float64
	HasRange bool
	MinLen   int
	MaxLen   int
	HasLen   bool
	Enum     []EnumValue

	Rounding  *RoundingPolicy
	Profile   *ProfileConstraint
	Presence  PresencePolicy
	Default   DefaultSource
	Resource  string // resource kind hint, e.g. "font", "graphic"

	// MediaMode marks an enum argument whose token must appear in the
	// profile's media.supported_modes set when a profile is attached
	// (ZPL1403). Ungated (profile absent, or field not given) skips the check.
	MediaMode bool
	// FontRef marks a char argument that names a font letter, checked
	// against the built-in font set plus anything ^CW has loaded (ZPL2303).
	FontRef bool
}

// ConstraintKind classifies a command-level cross-command constraint.
type ConstraintKind uint8

const (
	ConstraintRequires ConstraintKind = iota
	ConstraintIncompatible
	ConstraintOrder
	ConstraintEmptyData
	ConstraintNote
)

// Constraint is a command-level cross-command rule.
type Constraint struct {
	Kind   ConstraintKind
	Scope  Scope
	Target string // opcode the constraint relates to
	Note   string
}

// BarcodeRule describes the field-data rules of a barcode-selecting command:
// allowed character set (compact range notation), and length policy.
type BarcodeRule struct {
	CharsetNotation string
	ExactLen        int
	MinLen          int
	MaxLen          int
	Parity          string // "", "even", "odd"
	AllowedLens     []int
}

// CommandSpec is the compiled metadata for one opcode.
type CommandSpec struct {
	Opcode   string
	Name     string
	Category string
	Plane    Plane
	Scope    Scope

	Args []ArgSpec

	Constraints   []Constraint
	PrinterGates  []string

	// FieldOwning reports whether this command's trailing payload is field
	// data (^FD/^FV) consumed until ^FS or the next leader.
	FieldOwning bool
	// RawDataOwning reports whether this command owns a raw byte payload
	// (^GF/~DG) with a declared byte count.
	RawDataOwning bool

	// Barcode is non-nil when this command selects a barcode symbology,
	// driving Pass C field-data checks for the field that follows it.
	Barcode *BarcodeRule

	Doc string
}
