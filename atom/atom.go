// Package atom provides strongly-typed, validated package atoms as defined by
// the Package Manager Specification (PMS).
//
// All types in this package are immutable and validate their values at
// construction time. Zero values are generally invalid - use the parse
// functions (ParseDep, ParseCpn, ParseCpv) or constructors (NewCpn, NewDep, ...)
// to create valid instances.
//
// # Types
//
// The main types are:
//   - [Cpn]: a category/package name (e.g., "dev-lang/rust")
//   - [Cpv]: a category/package with an exact version (e.g., "dev-lang/rust-1.75.0")
//   - [Dep]: a full dependency atom (e.g., "!>=dev-lang/rust-1.75.0:0/1=[llvm_targets_AMDGPU]::gentoo")
//   - [SlotDep]: a slot dependency (e.g., "0/1=")
//   - [UseDep]: a USE dependency (e.g., "!ssl?")
//
// # Grammar
//
//	dep     = [blocker] [operator] category "/" package ["-" version ["*"]]
//	          [":" slotdep] {"[" usedep {"," usedep} "]"} ["::" repo]
//	blocker = "!" | "!!"
//	operator = "<" | "<=" | "=" | "~" | ">=" | ">"
//
// Every type's String method is the inverse of its parser: for any valid
// input s, Parse(s).String() == s.
package atom

// Blocker marks an atom as something that must not be installed.
type Blocker uint8

const (
	NoBlocker Blocker = iota
	// Weak is "!": the conflict may be resolved by uninstalling afterwards.
	Weak
	// Strong is "!!": the conflict must be resolved before installing.
	Strong
)

func (b Blocker) String() string {
	switch b {
	case Weak:
		return "!"
	case Strong:
		return "!!"
	default:
		return ""
	}
}

// Operator is a version comparison operator.
type Operator uint8

const (
	NoOperator Operator = iota
	Less
	LessOrEqual
	Equal
	// Approximate is "~": equal to the version, ignoring the revision.
	Approximate
	GreaterOrEqual
	Greater
	// Glob is "=" with a trailing "*" after the version: a prefix match on
	// the version string.
	Glob
)

var operatorNames = [...]string{
	NoOperator:     "",
	Less:           "<",
	LessOrEqual:    "<=",
	Equal:          "=",
	Approximate:    "~",
	GreaterOrEqual: ">=",
	Greater:        ">",
	Glob:           "=*",
}

// String returns the operator symbol; Glob renders as "=*".
func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return "?"
}

// prefix is the text written before the category for this operator.
func (o Operator) prefix() string {
	if o == Glob {
		return "="
	}
	return o.String()
}

// operatorTokens is ordered longest match first.
var operatorTokens = []struct {
	tok string
	op  Operator
}{
	{"<=", LessOrEqual},
	{">=", GreaterOrEqual},
	{"<", Less},
	{">", Greater},
	{"=", Equal},
	{"~", Approximate},
}
