// Package diag defines the error taxonomy shared by the version and atom parsers.
//
// Every parse failure is reported as a [*Error] carrying the [Kind] of failure,
// the full input, the segment being parsed and the byte offset of the first
// offending character. Each Kind has a sentinel so callers can match with
// errors.Is:
//
//	if errors.Is(err, diag.ErrMalformedSlot) { ... }
package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a parse failure by the grammar segment that rejected it.
type Kind int

const (
	// MalformedVersion: a version segment does not match the version grammar.
	MalformedVersion Kind = iota + 1
	// MalformedOperator: an operator is present but contextually invalid.
	MalformedOperator
	// MalformedCpn: the category/package segment violates identifier rules.
	MalformedCpn
	// MalformedSlot: the slot clause violates the slot grammar.
	MalformedSlot
	// MalformedUseDep: a bracketed USE dependency is invalid.
	MalformedUseDep
	// MalformedRepo: the repository identifier is invalid.
	MalformedRepo
	// TrailingInput: input remains after every recognized segment.
	TrailingInput
)

// Sentinel errors, one per Kind.
var (
	ErrMalformedVersion  = errors.New("malformed version")
	ErrMalformedOperator = errors.New("malformed operator")
	ErrMalformedCpn      = errors.New("malformed category/package")
	ErrMalformedSlot     = errors.New("malformed slot")
	ErrMalformedUseDep   = errors.New("malformed USE dependency")
	ErrMalformedRepo     = errors.New("malformed repository")
	ErrTrailingInput     = errors.New("trailing input")
)

var sentinels = map[Kind]error{
	MalformedVersion:  ErrMalformedVersion,
	MalformedOperator: ErrMalformedOperator,
	MalformedCpn:      ErrMalformedCpn,
	MalformedSlot:     ErrMalformedSlot,
	MalformedUseDep:   ErrMalformedUseDep,
	MalformedRepo:     ErrMalformedRepo,
	TrailingInput:     ErrTrailingInput,
}

// Sentinel returns the sentinel error for k, or nil for an unknown Kind.
func (k Kind) Sentinel() error {
	return sentinels[k]
}

// String returns the sentinel message for k.
func (k Kind) String() string {
	if err := sentinels[k]; err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a parse failure with a precise location.
type Error struct {
	Kind Kind
	// Input is the complete text handed to the parser.
	Input string
	// Segment is the portion of Input that was being parsed.
	Segment string
	// Offset is the byte offset in Input of the first offending character.
	// It equals len(Input) when the failure is a missing component.
	Offset int
	// Reason is a short human-readable explanation.
	Reason string
}

// New returns an Error of kind k.
func New(k Kind, input, segment string, offset int, reason string) *Error {
	return &Error{Kind: k, Input: input, Segment: segment, Offset: offset, Reason: reason}
}

// Newf is New with a formatted reason.
func Newf(k Kind, input, segment string, offset int, format string, args ...any) *Error {
	return New(k, input, segment, offset, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return fmt.Sprintf("%q: %s at offset %d: %s", e.Input, e.Kind, e.Offset, e.Reason)
}

// Unwrap returns the sentinel for the error's Kind.
func (e *Error) Unwrap() error {
	return e.Kind.Sentinel()
}

// Rebase relocates an Error produced while parsing a substring of input that
// starts at byte offset base. Errors that are not *Error are returned unchanged.
func Rebase(err error, input string, base int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	return &Error{
		Kind:    e.Kind,
		Input:   input,
		Segment: e.Segment,
		Offset:  e.Offset + base,
		Reason:  e.Reason,
	}
}

// KindOf reports the Kind of err, or 0 when err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
