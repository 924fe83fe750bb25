package gopms

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/albertocavalcante/go-pms/atom"
)

// Policy errors reported by ParseList for atoms that parse but are not
// allowed by the configured options.
var (
	// ErrBlockerNotAllowed indicates a blocker atom in a list parsed WithoutBlockers.
	ErrBlockerNotAllowed = errors.New("blocker not allowed")

	// ErrVersionRequired indicates an unversioned atom in a list parsed WithRequireVersion.
	ErrVersionRequired = errors.New("version required")
)

// ListEntry is one atom read from an atom list.
type ListEntry struct {
	// Line is the 1-based line number.
	Line int `json:"line" yaml:"line"`

	// Dep is the parsed atom.
	Dep atom.Dep `json:"atom" yaml:"atom"`
}

// LineError is a failure on one line of an atom list.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ListErrors collects every rejected line of an atom list.
type ListErrors struct {
	Errors []*LineError
	// Truncated is set when parsing stopped at the WithMaxErrors limit.
	Truncated bool
}

func (e *ListErrors) Error() string {
	if len(e.Errors) == 0 {
		return "atom list invalid"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid atoms:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	if e.Truncated {
		b.WriteString("\n  (stopped after too many errors)")
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ListErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// HasErrors returns true if any errors were collected.
func (e *ListErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil if no errors, otherwise returns self.
func (e *ListErrors) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// ParseList reads one atom per line from r, in the format of Portage's
// package.* and world files. Blank lines and lines starting with '#' are
// skipped; surrounding whitespace is trimmed.
//
// Every line is attempted. Valid entries are returned even when some lines
// fail; the failures are reported together as a *ListErrors.
func ParseList(ctx context.Context, r io.Reader, opts ...Option) ([]ListEntry, error) {
	cfg, err := newListConfig(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.log()

	var (
		entries []ListEntry
		errs    ListErrors
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		d, err := atom.ParseDep(text)
		if err == nil {
			err = cfg.check(d)
		}
		if err != nil {
			log.Debug("rejected atom", "line", line, "text", text, "error", err)
			errs.Errors = append(errs.Errors, &LineError{Line: line, Text: text, Err: err})
			if cfg.maxErrors > 0 && len(errs.Errors) >= cfg.maxErrors {
				errs.Truncated = true
				log.Debug("stopping at error limit", "limit", cfg.maxErrors)
				break
			}
			continue
		}

		log.Debug("parsed atom", "line", line, "atom", d.String())
		entries = append(entries, ListEntry{Line: line, Dep: d})
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("read atom list: %w", err)
	}
	return entries, errs.ToError()
}

// check applies the list policy options to a parsed atom.
func (c *listConfig) check(d atom.Dep) error {
	if c.noBlockers && d.Blocker() != atom.NoBlocker {
		return fmt.Errorf("%w: %s", ErrBlockerNotAllowed, d)
	}
	if c.requireVersion && d.Operator() == atom.NoOperator {
		return fmt.Errorf("%w: %s", ErrVersionRequired, d)
	}
	return nil
}
