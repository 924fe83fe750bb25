// Package version implements PMS package version parsing and ordering.
//
// Reference: Package Manager Specification, chapter 3.2 (Version Specifications)
// and 3.3 (Version Comparison).
//
// Version format: N(.N)*[a-z](_SUFFIX[N])*(-rN)?
//   - N: a run of digits; leading zeros are preserved and affect ordering
//   - [a-z]: an optional letter appended to the last numeric component
//   - SUFFIX: one of alpha, beta, pre, rc, p
//   - -rN: an optional revision
//
// Parsed versions are immutable values. Two versions may compare equal
// (for example 1.0 and 1.00) while remaining structurally distinct; use
// [Version.Equal] for structural equality and [Compare] for ordering.
package version

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/go-pms/diag"
	"github.com/albertocavalcante/go-pms/internal/lex"
)

// SuffixKind is a release-type suffix tag.
type SuffixKind uint8

// Suffix tags in ascending precedence, except that an absent suffix sorts
// between RC and P.
const (
	Alpha SuffixKind = iota
	Beta
	Pre
	RC
	P
)

var suffixNames = [...]string{
	Alpha: "alpha",
	Beta:  "beta",
	Pre:   "pre",
	RC:    "rc",
	P:     "p",
}

// suffixTags lists tags in match order; "pre" must be tried before "p".
var suffixTags = []SuffixKind{Alpha, Beta, Pre, RC, P}

func (k SuffixKind) String() string {
	if int(k) < len(suffixNames) {
		return suffixNames[k]
	}
	return "unknown"
}

// Suffix is a release-type suffix with its optional number.
type Suffix struct {
	Kind SuffixKind
	// Number holds the digits following the tag exactly as written, or ""
	// when the tag has no number.
	Number string
}

func (s Suffix) String() string {
	return "_" + s.Kind.String() + s.Number
}

// Version is a parsed PMS version.
type Version struct {
	numbers  []string
	letter   byte
	suffixes []Suffix
	revision string
}

// Parse parses a bare version string (no operator, package name or glob).
// Failures are *diag.Error values of kind diag.MalformedVersion.
func Parse(s string) (Version, error) {
	fail := func(off int, reason string) (Version, error) {
		return Version{}, diag.New(diag.MalformedVersion, s, s, off, reason)
	}

	if s == "" {
		return fail(0, "empty version")
	}

	var v Version
	i := 0
	for {
		n := lex.DigitRun(s[i:])
		if n == 0 {
			if i == 0 {
				return fail(i, "version must start with a digit")
			}
			return fail(i, "expected digit after '.'")
		}
		v.numbers = append(v.numbers, s[i:i+n])
		i += n
		if i < len(s) && s[i] == '.' {
			i++
			continue
		}
		break
	}

	if i < len(s) && lex.IsLower(s[i]) {
		v.letter = s[i]
		i++
	}

	for i < len(s) && s[i] == '_' {
		kind, n := matchSuffix(s[i+1:])
		if n == 0 {
			return fail(i+1, "unknown suffix, want one of alpha, beta, pre, rc, p")
		}
		j := i + 1 + n
		d := lex.DigitRun(s[j:])
		v.suffixes = append(v.suffixes, Suffix{Kind: kind, Number: s[j : j+d]})
		i = j + d
	}

	if strings.HasPrefix(s[i:], "-r") {
		d := lex.DigitRun(s[i+2:])
		if d == 0 {
			return fail(i+2, "expected digits after '-r'")
		}
		v.revision = s[i+2 : i+2+d]
		i += 2 + d
	}

	if i < len(s) {
		return fail(i, "unexpected character "+quoteByte(s[i]))
	}
	return v, nil
}

func matchSuffix(s string) (SuffixKind, int) {
	for _, k := range suffixTags {
		if name := k.String(); strings.HasPrefix(s, name) {
			return k, len(name)
		}
	}
	return 0, 0
}

func quoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}

// MustParse parses s or panics. Use only for constants/tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Valid reports whether s is a syntactically valid version.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// IsEmpty returns true for the zero Version, which no successful Parse returns.
func (v Version) IsEmpty() bool {
	return len(v.numbers) == 0
}

// Components returns the numeric components as written, e.g. ["1", "75", "0"].
func (v Version) Components() []string {
	return slices.Clone(v.numbers)
}

// Letter returns the trailing letter, or 0 when there is none.
func (v Version) Letter() byte {
	return v.letter
}

// Suffixes returns the release-type suffixes in input order.
func (v Version) Suffixes() []Suffix {
	return slices.Clone(v.suffixes)
}

// Revision returns the revision digits as written, or "" when absent.
// An absent revision orders as -r0.
func (v Version) Revision() string {
	return v.revision
}

// HasRevision reports whether an explicit -rN was given.
func (v Version) HasRevision() bool {
	return v.revision != ""
}

// WithoutRevision returns a copy of v with the revision removed.
func (v Version) WithoutRevision() Version {
	out := v.clone()
	out.revision = ""
	return out
}

func (v Version) clone() Version {
	return Version{
		numbers:  slices.Clone(v.numbers),
		letter:   v.letter,
		suffixes: slices.Clone(v.suffixes),
		revision: v.revision,
	}
}

// Equal reports structural equality: same components, letter, suffixes and
// revision exactly as written.
func (v Version) Equal(other Version) bool {
	return slices.Equal(v.numbers, other.numbers) &&
		v.letter == other.letter &&
		slices.Equal(v.suffixes, other.suffixes) &&
		v.revision == other.revision
}

// String returns the canonical text of v; Parse(v.String()) is Equal to v.
func (v Version) String() string {
	var b strings.Builder
	v.writeTo(&b)
	return b.String()
}

func (v Version) writeTo(b *strings.Builder) {
	for i, n := range v.numbers {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(n)
	}
	if v.letter != 0 {
		b.WriteByte(v.letter)
	}
	for _, s := range v.suffixes {
		b.WriteString(s.String())
	}
	if v.revision != "" {
		b.WriteString("-r")
		b.WriteString(v.revision)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
