package atom

import (
	"github.com/albertocavalcante/go-pms/diag"
)

// UseKind is the form of a USE dependency.
type UseKind uint8

const (
	// UseEnabled is "flag": the flag must be enabled.
	UseEnabled UseKind = iota
	// UseDisabled is "-flag": the flag must be disabled.
	UseDisabled
	// UseEqual is "flag=": same state as in the depending package.
	UseEqual
	// UseNotEqual is "!flag=": opposite state to the depending package.
	UseNotEqual
	// UseConditional is "flag?": enabled if enabled in the depending package.
	UseConditional
	// UseNotConditional is "!flag?": disabled if disabled in the depending package.
	UseNotConditional
)

// UseDefault is the value assumed for a flag the target package lacks.
type UseDefault uint8

const (
	NoDefault UseDefault = iota
	// DefaultEnabled is "(+)".
	DefaultEnabled
	// DefaultDisabled is "(-)".
	DefaultDisabled
)

func (d UseDefault) String() string {
	switch d {
	case DefaultEnabled:
		return "(+)"
	case DefaultDisabled:
		return "(-)"
	default:
		return ""
	}
}

// UseDep is one item inside an atom's [...] USE dependency list.
type UseDep struct {
	flag string
	kind UseKind
	def  UseDefault
}

// ParseUseDep parses a single USE dependency item such as "!ssl(+)?".
func ParseUseDep(s string) (UseDep, error) {
	return parseUseDep(s, s, 0)
}

// NewUseDep creates a validated UseDep.
func NewUseDep(flag string, kind UseKind, def UseDefault) (UseDep, error) {
	want := UseDep{flag: flag, kind: kind, def: def}
	got, err := ParseUseDep(want.String())
	if err != nil {
		return UseDep{}, err
	}
	if got != want {
		return UseDep{}, diag.New(diag.MalformedUseDep, want.String(), want.String(), 0, "USE dependency does not round-trip")
	}
	return got, nil
}

// MustUseDep creates a UseDep or panics. Use only for constants/tests.
func MustUseDep(s string) UseDep {
	u, err := ParseUseDep(s)
	if err != nil {
		panic(err)
	}
	return u
}

func parseUseDep(input, seg string, base int) (UseDep, error) {
	fail := func(off int, reason string) (UseDep, error) {
		return UseDep{}, diag.New(diag.MalformedUseDep, input, seg, base+off, reason)
	}

	if seg == "" {
		return fail(0, "empty USE dependency")
	}

	start, end := 0, len(seg)
	var negated, disabled bool
	switch seg[0] {
	case '!':
		negated = true
		start = 1
	case '-':
		disabled = true
		start = 1
	}

	var suffix byte
	if c := seg[end-1]; end > start && (c == '?' || c == '=') {
		suffix = c
		end--
	}

	def := NoDefault
	if end-start >= 3 && seg[end-3] == '(' && seg[end-1] == ')' {
		switch seg[end-2] {
		case '+':
			def = DefaultEnabled
			end -= 3
		case '-':
			def = DefaultDisabled
			end -= 3
		}
	}

	flag := seg[start:end]
	if off, reason := useFlagRule.check(flag); off >= 0 {
		return fail(start+off, reason)
	}

	switch {
	case negated && suffix == 0:
		return fail(0, "'!' requires a '?' or '=' suffix")
	case disabled && suffix != 0:
		return fail(len(seg)-1, "'-' cannot be combined with a '?' or '=' suffix")
	case def != NoDefault && suffix == 0:
		return fail(end, "default marker requires a '?' or '=' suffix")
	}

	u := UseDep{flag: flag, def: def}
	switch {
	case disabled:
		u.kind = UseDisabled
	case suffix == '?' && negated:
		u.kind = UseNotConditional
	case suffix == '?':
		u.kind = UseConditional
	case suffix == '=' && negated:
		u.kind = UseNotEqual
	case suffix == '=':
		u.kind = UseEqual
	default:
		u.kind = UseEnabled
	}
	return u, nil
}

// Flag returns the USE flag name.
func (u UseDep) Flag() string {
	return u.flag
}

// Kind returns the dependency form.
func (u UseDep) Kind() UseKind {
	return u.kind
}

// Default returns the default marker.
func (u UseDep) Default() UseDefault {
	return u.def
}

// String returns the item as written inside the brackets.
func (u UseDep) String() string {
	var prefix, suffix string
	switch u.kind {
	case UseDisabled:
		prefix = "-"
	case UseEqual:
		suffix = "="
	case UseNotEqual:
		prefix, suffix = "!", "="
	case UseConditional:
		suffix = "?"
	case UseNotConditional:
		prefix, suffix = "!", "?"
	}
	return prefix + u.flag + u.def.String() + suffix
}
