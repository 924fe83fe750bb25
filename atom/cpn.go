package atom

import (
	"cmp"
	"strings"

	"github.com/albertocavalcante/go-pms/diag"
	"github.com/albertocavalcante/go-pms/internal/lex"
	"github.com/albertocavalcante/go-pms/version"
)

// Cpn is a validated category/package name pair, e.g. "dev-lang/rust".
type Cpn struct {
	category string
	pkg      string
}

// ParseCpn parses "category/package".
func ParseCpn(s string) (Cpn, error) {
	return parseCpn(s, s, 0)
}

// NewCpn creates a validated Cpn from its two parts.
func NewCpn(category, pkg string) (Cpn, error) {
	return ParseCpn(category + "/" + pkg)
}

// MustCpn creates a Cpn or panics. Use only for constants/tests.
func MustCpn(s string) Cpn {
	c, err := ParseCpn(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseCpn parses seg, which starts at byte offset base of input.
func parseCpn(input, seg string, base int) (Cpn, error) {
	fail := func(off int, reason string) (Cpn, error) {
		return Cpn{}, diag.New(diag.MalformedCpn, input, seg, base+off, reason)
	}

	slash := strings.IndexByte(seg, '/')
	if slash < 0 {
		return fail(len(seg), "missing '/' between category and package")
	}
	category, pkg := seg[:slash], seg[slash+1:]
	if j := strings.IndexByte(pkg, '/'); j >= 0 {
		return fail(slash+1+j, "more than one '/'")
	}
	if off, reason := categoryRule.check(category); off >= 0 {
		return fail(off, reason)
	}
	// Only the part before a trailing "-version" is held to the package
	// name charset, so "rust-1.75.0" is reported at the hyphen.
	tail := versionTail(pkg)
	name := pkg
	if tail > 0 {
		name = pkg[:tail]
	}
	if off, reason := packageRule.check(name); off >= 0 {
		return fail(slash+1+off, reason)
	}
	if tail >= 0 {
		return fail(slash+1+tail, "package name must not end in a hyphen followed by a version")
	}
	return Cpn{category: category, pkg: pkg}, nil
}

// Category returns the category, e.g. "dev-lang".
func (c Cpn) Category() string {
	return c.category
}

// Package returns the package name, e.g. "rust".
func (c Cpn) Package() string {
	return c.pkg
}

// IsEmpty returns true if this is a zero-value Cpn.
func (c Cpn) IsEmpty() bool {
	return c.category == "" && c.pkg == ""
}

// String returns "category/package".
func (c Cpn) String() string {
	return c.category + "/" + c.pkg
}

// Equal returns true if both names are identical.
func (c Cpn) Equal(other Cpn) bool {
	return c == other
}

// Compare orders by category, then package name.
func (c Cpn) Compare(other Cpn) int {
	if r := cmp.Compare(c.category, other.category); r != 0 {
		return r
	}
	return cmp.Compare(c.pkg, other.pkg)
}

// MarshalText implements encoding.TextMarshaler.
func (c Cpn) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cpn) UnmarshalText(text []byte) error {
	parsed, err := ParseCpn(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Cpv is a category/package name with an exact version, e.g.
// "dev-lang/rust-1.75.0". It identifies one package version and carries no
// operator.
type Cpv struct {
	cpn     Cpn
	version version.Version
}

// ParseCpv parses "category/package-version".
func ParseCpv(s string) (Cpv, error) {
	cpn, v, found, err := parseVersioned(s, s, 0)
	if err != nil {
		return Cpv{}, err
	}
	if !found {
		return Cpv{}, diag.New(diag.MalformedVersion, s, s, len(s), "missing version")
	}
	return Cpv{cpn: cpn, version: v}, nil
}

// NewCpv creates a Cpv from a name and a parsed version.
func NewCpv(cpn Cpn, v version.Version) (Cpv, error) {
	if cpn.IsEmpty() {
		return Cpv{}, diag.New(diag.MalformedCpn, "", "", 0, "empty category/package")
	}
	if v.IsEmpty() {
		return Cpv{}, diag.New(diag.MalformedVersion, cpn.String(), "", len(cpn.String()), "missing version")
	}
	return Cpv{cpn: cpn, version: v}, nil
}

// MustCpv creates a Cpv or panics. Use only for constants/tests.
func MustCpv(s string) Cpv {
	c, err := ParseCpv(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseVersioned splits seg into a Cpn and a version. The version starts
// after the leftmost '-' whose remainder is a complete valid version, so the
// longest version suffix wins. found is false when seg has no version at all.
func parseVersioned(input, seg string, base int) (cpn Cpn, v version.Version, found bool, err error) {
	slash := strings.IndexByte(seg, '/')
	if slash < 0 {
		err = diag.New(diag.MalformedCpn, input, seg, base+len(seg), "missing '/' between category and package")
		return
	}

	split := -1
	if off := versionTail(seg[slash+1:]); off >= 0 {
		split = slash + 1 + off
	}
	if split < 0 {
		// Report why the rightmost candidate is not a version.
		for i := len(seg) - 2; i > slash; i-- {
			if seg[i] == '-' && lex.IsDigit(seg[i+1]) {
				_, perr := version.Parse(seg[i+1:])
				err = diag.Rebase(perr, input, base+i+1)
				return
			}
		}
		if strings.HasSuffix(seg, "-") {
			err = diag.New(diag.MalformedVersion, input, "", base+len(seg), "missing version after '-'")
		}
		return
	}

	cpn, err = parseCpn(input, seg[:split], base)
	if err != nil {
		return
	}
	v = version.MustParse(seg[split+1:])
	return cpn, v, true, nil
}

// Cpn returns the category/package part.
func (c Cpv) Cpn() Cpn {
	return c.cpn
}

// Category returns the category.
func (c Cpv) Category() string {
	return c.cpn.category
}

// Package returns the package name.
func (c Cpv) Package() string {
	return c.cpn.pkg
}

// Version returns the version.
func (c Cpv) Version() version.Version {
	return c.version
}

// IsEmpty returns true if this is a zero-value Cpv.
func (c Cpv) IsEmpty() bool {
	return c.cpn.IsEmpty()
}

// Equal reports structural equality.
func (c Cpv) Equal(other Cpv) bool {
	return c.cpn == other.cpn && c.version.Equal(other.version)
}

// Compare orders by category, package name and then PMS version order.
func (c Cpv) Compare(other Cpv) int {
	if r := c.cpn.Compare(other.cpn); r != 0 {
		return r
	}
	return version.Compare(c.version, other.version)
}

// Dep returns the atom "=category/package-version" matching exactly c.
func (c Cpv) Dep() Dep {
	return Dep{op: Equal, version: c.version, cpn: c.cpn}
}

// String returns "category/package-version".
func (c Cpv) String() string {
	return c.cpn.String() + "-" + c.version.String()
}

// MarshalText implements encoding.TextMarshaler.
func (c Cpv) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cpv) UnmarshalText(text []byte) error {
	parsed, err := ParseCpv(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
