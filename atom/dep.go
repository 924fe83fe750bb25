package atom

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-pms/diag"
	"github.com/albertocavalcante/go-pms/internal/lex"
	"github.com/albertocavalcante/go-pms/version"
)

var (
	// ErrUnknownBlocker is returned by NewDep for a Blocker value outside
	// NoBlocker, Weak and Strong.
	ErrUnknownBlocker = errors.New("unknown blocker")
	// ErrNotCanonical is returned by NewDep when the parts do not survive a
	// trip through the atom's string form.
	ErrNotCanonical = errors.New("atom does not round-trip")
)

// Dep is a full package dependency atom.
//
// The operator and version are jointly present or jointly absent. USE
// dependencies keep the bracket groups they were written in so String
// reproduces the input; UseDeps flattens them in order.
type Dep struct {
	blocker   Blocker
	op        Operator
	version   version.Version
	cpn       Cpn
	slot      SlotDep
	hasSlot   bool
	useGroups [][]UseDep
	repo      string
}

// DepOption configures a Dep built with NewDep.
type DepOption func(*Dep) error

// WithBlocker sets the blocker.
func WithBlocker(b Blocker) DepOption {
	return func(d *Dep) error {
		if b > Strong {
			return fmt.Errorf("%w: %d", ErrUnknownBlocker, int(b))
		}
		d.blocker = b
		return nil
	}
}

// WithVersion sets the operator and version constraint.
func WithVersion(op Operator, v version.Version) DepOption {
	return func(d *Dep) error {
		d.op = op
		d.version = v
		return nil
	}
}

// WithSlot sets the slot dependency.
func WithSlot(s SlotDep) DepOption {
	return func(d *Dep) error {
		d.slot = s
		d.hasSlot = true
		return nil
	}
}

// WithUseDeps appends one bracketed group of USE dependencies.
func WithUseDeps(deps ...UseDep) DepOption {
	return func(d *Dep) error {
		if len(deps) == 0 {
			return diag.New(diag.MalformedUseDep, "[]", "", 1, "empty USE dependency list")
		}
		d.useGroups = append(d.useGroups, slices.Clone(deps))
		return nil
	}
}

// WithRepo sets the repository.
func WithRepo(repo string) DepOption {
	return func(d *Dep) error {
		if off, reason := repoRule.check(repo); off >= 0 {
			return diag.New(diag.MalformedRepo, repo, repo, off, reason)
		}
		d.repo = repo
		return nil
	}
}

// NewDep builds a validated Dep. The result always satisfies
// ParseDep(d.String()) == d.
func NewDep(cpn Cpn, opts ...DepOption) (Dep, error) {
	if cpn.IsEmpty() {
		return Dep{}, diag.New(diag.MalformedCpn, "", "", 0, "empty category/package")
	}
	d := Dep{cpn: cpn}
	for _, opt := range opts {
		if err := opt(&d); err != nil {
			return Dep{}, err
		}
	}

	text := d.String()
	switch {
	case d.op == NoOperator && !d.version.IsEmpty():
		return Dep{}, diag.New(diag.MalformedOperator, text, "", 0, "version requires an operator")
	case d.op != NoOperator && d.version.IsEmpty():
		return Dep{}, diag.New(diag.MalformedOperator, text, "", 0, "operator requires a version")
	case d.op > Glob:
		return Dep{}, diag.New(diag.MalformedOperator, text, "", 0, "unknown operator")
	}

	parsed, err := ParseDep(text)
	if err != nil {
		return Dep{}, err
	}
	if !parsed.Equal(d) {
		return Dep{}, fmt.Errorf("%w: %q", ErrNotCanonical, text)
	}
	return parsed, nil
}

// MustDep parses s or panics. Use only for constants/tests.
func MustDep(s string) Dep {
	d, err := ParseDep(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Blocker returns the blocker marker.
func (d Dep) Blocker() Blocker {
	return d.blocker
}

// Operator returns the version operator, NoOperator when unversioned.
func (d Dep) Operator() Operator {
	return d.op
}

// Version returns the constraint version and whether one is present.
func (d Dep) Version() (version.Version, bool) {
	return d.version, d.op != NoOperator
}

// Cpn returns the category/package name.
func (d Dep) Cpn() Cpn {
	return d.cpn
}

// Category returns the category.
func (d Dep) Category() string {
	return d.cpn.category
}

// Package returns the package name.
func (d Dep) Package() string {
	return d.cpn.pkg
}

// Cpv returns the category/package/version when a version is present.
func (d Dep) Cpv() (Cpv, bool) {
	if d.op == NoOperator {
		return Cpv{}, false
	}
	return Cpv{cpn: d.cpn, version: d.version}, true
}

// Slot returns the slot dependency and whether one is present.
func (d Dep) Slot() (SlotDep, bool) {
	return d.slot, d.hasSlot
}

// UseDeps returns all USE dependencies in order, across bracket groups.
// Duplicates are kept.
func (d Dep) UseDeps() []UseDep {
	var out []UseDep
	for _, g := range d.useGroups {
		out = append(out, g...)
	}
	return out
}

// UseGroups returns the USE dependencies grouped as written.
func (d Dep) UseGroups() [][]UseDep {
	if len(d.useGroups) == 0 {
		return nil
	}
	out := make([][]UseDep, len(d.useGroups))
	for i, g := range d.useGroups {
		out[i] = slices.Clone(g)
	}
	return out
}

// Repo returns the repository name, or "".
func (d Dep) Repo() string {
	return d.repo
}

// Unversioned returns a copy of d without operator and version.
func (d Dep) Unversioned() Dep {
	out := d
	out.op = NoOperator
	out.version = version.Version{}
	out.useGroups = d.UseGroups()
	return out
}

// MatchesVersion reports whether v satisfies the operator constraint.
// Unversioned atoms match every version.
func (d Dep) MatchesVersion(v version.Version) bool {
	switch d.op {
	case NoOperator:
		return true
	case Less:
		return version.Compare(v, d.version) < 0
	case LessOrEqual:
		return version.Compare(v, d.version) <= 0
	case Equal:
		return version.Compare(v, d.version) == 0
	case Approximate:
		return version.Compare(v.WithoutRevision(), d.version) == 0
	case GreaterOrEqual:
		return version.Compare(v, d.version) >= 0
	case Greater:
		return version.Compare(v, d.version) > 0
	case Glob:
		return globMatch(d.version.String(), v.String())
	}
	return false
}

// globMatch reports whether version string s starts with prefix and the
// match ends on a component boundary, so "1*" matches "1.2" and "1a" but
// not "10".
func globMatch(prefix, s string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) || prefix == "" {
		return true
	}
	next := s[len(prefix)]
	if strings.IndexByte("._-", next) >= 0 {
		return true
	}
	return lex.IsDigit(prefix[len(prefix)-1]) != lex.IsDigit(next)
}

// Matches reports whether c has d's name and satisfies its version
// constraint. Blocker, slot, USE and repository clauses need package
// metadata and are not considered.
func (d Dep) Matches(c Cpv) bool {
	return d.cpn == c.cpn && d.MatchesVersion(c.version)
}

// Equal reports structural equality.
func (d Dep) Equal(other Dep) bool {
	return d.blocker == other.blocker &&
		d.op == other.op &&
		d.version.Equal(other.version) &&
		d.cpn == other.cpn &&
		d.hasSlot == other.hasSlot &&
		d.slot == other.slot &&
		slices.EqualFunc(d.useGroups, other.useGroups, slices.Equal[[]UseDep]) &&
		d.repo == other.repo
}

// String returns the canonical atom text.
func (d Dep) String() string {
	var b strings.Builder
	b.WriteString(d.blocker.String())
	b.WriteString(d.op.prefix())
	b.WriteString(d.cpn.String())
	if d.op != NoOperator {
		b.WriteByte('-')
		b.WriteString(d.version.String())
		if d.op == Glob {
			b.WriteByte('*')
		}
	}
	if d.hasSlot {
		b.WriteByte(':')
		b.WriteString(d.slot.String())
	}
	for _, g := range d.useGroups {
		b.WriteByte('[')
		for i, u := range g {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(u.String())
		}
		b.WriteByte(']')
	}
	if d.repo != "" {
		b.WriteString("::")
		b.WriteString(d.repo)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Dep) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dep) UnmarshalText(text []byte) error {
	parsed, err := ParseDep(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
