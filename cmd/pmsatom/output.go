package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/go-pms/diag"
)

// render writes v as JSON or YAML, or calls text for the human format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// writeParseError prints err and, for parse errors, the input with a caret
// under the offending byte.
func writeParseError(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("error:")+" "+err.Error())

	var perr *diag.Error
	if !errors.As(err, &perr) || perr.Input == "" {
		return
	}
	fmt.Fprintln(w, "  "+perr.Input)
	fmt.Fprintln(w, "  "+strings.Repeat(" ", perr.Offset)+CaretStyle.Render("^"))
}

// errorReport is the machine-readable form of a parse failure.
type errorReport struct {
	Input  string `json:"input" yaml:"input"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Offset *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Error  string `json:"error" yaml:"error"`
}

func newErrorReport(input string, err error) *errorReport {
	r := &errorReport{Input: input, Error: err.Error()}
	var perr *diag.Error
	if errors.As(err, &perr) {
		r.Kind = perr.Kind.String()
		off := perr.Offset
		r.Offset = &off
	}
	return r
}
