// Package gopms provides a Go library for parsing and comparing package atoms
// as defined by the Gentoo Package Manager Specification (PMS).
//
// An atom is a compact string naming a package, optionally constrained by
// version, slot, USE flags, repository and blocker markers:
//
//	!!>=dev-lang/rust-1.75.0:0/1=[llvm_targets_AMDGPU,!debug?]::gentoo
//
// # Overview
//
// The package provides three main components:
//
//   - Parser: decomposes atom strings into validated, immutable values
//     ([atom.Cpn], [atom.Cpv], [atom.Dep]) and bare versions ([version.Version])
//   - Comparator: orders versions with the PMS algorithm
//   - Serializer: turns every value back into its canonical string
//
// # Quick Start
//
//	dep, err := gopms.ParseDep(">=dev-lang/rust-1.75.0:0")
//	if err != nil {
//	    var perr *diag.Error
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Kind, perr.Offset)
//	    }
//	}
//
//	a, _ := gopms.ParseVersion("1.0_rc1")
//	b, _ := gopms.ParseVersion("1.0")
//	gopms.CompareVersions(a, b) // -1
//
// # Errors
//
// Every parse failure is a *diag.Error carrying the kind of failure and the
// byte offset of the first offending character. Match kinds with errors.Is
// against the sentinels re-exported in this package.
//
// # Thread Safety
//
// All values are immutable and safe for concurrent use.
package gopms

import (
	"fmt"

	"github.com/albertocavalcante/go-pms/atom"
	"github.com/albertocavalcante/go-pms/version"
)

// ParseCpn parses a category/package name such as "dev-lang/rust".
func ParseCpn(text string) (atom.Cpn, error) {
	return atom.ParseCpn(text)
}

// ParseCpv parses a category/package/version such as "dev-lang/rust-1.75.0".
func ParseCpv(text string) (atom.Cpv, error) {
	return atom.ParseCpv(text)
}

// ParseDep parses a full dependency atom.
func ParseDep(text string) (atom.Dep, error) {
	return atom.ParseDep(text)
}

// ParseVersion parses a bare version such as "1.2.3b_rc1-r2".
func ParseVersion(text string) (version.Version, error) {
	return version.Parse(text)
}

// CompareVersions returns -1, 0 or +1 as a is less than, equal to or
// greater than b in PMS order.
func CompareVersions(a, b version.Version) int {
	return version.Compare(a, b)
}

// Serialize returns the canonical string form of any parsed value.
func Serialize(v fmt.Stringer) string {
	return v.String()
}

// Satisfies reports whether the package version cpv is matched by the
// operator and version of dep. Slot, USE and repository clauses are not
// evaluated.
func Satisfies(cpv, dep string) (bool, error) {
	c, err := atom.ParseCpv(cpv)
	if err != nil {
		return false, fmt.Errorf("parse cpv: %w", err)
	}
	d, err := atom.ParseDep(dep)
	if err != nil {
		return false, fmt.Errorf("parse dep: %w", err)
	}
	return d.Matches(c), nil
}
