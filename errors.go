package gopms

import "github.com/albertocavalcante/go-pms/diag"

// Sentinel errors for parse failures, one per grammar segment.
var (
	// ErrMalformedVersion indicates a version that does not match the version grammar.
	ErrMalformedVersion = diag.ErrMalformedVersion

	// ErrMalformedOperator indicates an operator that is invalid in context.
	ErrMalformedOperator = diag.ErrMalformedOperator

	// ErrMalformedCpn indicates an invalid category or package name.
	ErrMalformedCpn = diag.ErrMalformedCpn

	// ErrMalformedSlot indicates an invalid slot clause.
	ErrMalformedSlot = diag.ErrMalformedSlot

	// ErrMalformedUseDep indicates an invalid bracketed USE dependency.
	ErrMalformedUseDep = diag.ErrMalformedUseDep

	// ErrMalformedRepo indicates an invalid repository name.
	ErrMalformedRepo = diag.ErrMalformedRepo

	// ErrTrailingInput indicates text left over after a complete atom.
	ErrTrailingInput = diag.ErrTrailingInput
)
