package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	gopms "github.com/albertocavalcante/go-pms"
)

// checkReport is the result of "pmsatom check".
type checkReport struct {
	Source    string            `json:"source" yaml:"source"`
	Valid     int               `json:"valid" yaml:"valid"`
	Errors    []checkLineReport `json:"errors,omitempty" yaml:"errors,omitempty"`
	Truncated bool              `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

type checkLineReport struct {
	Line int          `json:"line" yaml:"line"`
	Err  *errorReport `json:"error" yaml:"error"`
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [FILE]",
		Short: "Validate a file of atoms, one per line",
		Long: `Validate a file of atoms, one per line, such as Portage's world file or a
package.use entry list. Blank lines and lines starting with '#' are skipped.
Reads standard input when FILE is omitted or "-".

Exits with status 1 when any line is invalid.`,
		Example: `  pmsatom check /var/lib/portage/world
  pmsatom check --no-blockers --require-version deps.txt
  cat deps.txt | pmsatom check --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			r, closeFn, err := openInput(cmd, source)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}
			defer closeFn()

			opts := []gopms.Option{
				gopms.WithLogger(a.logger),
				gopms.WithMaxErrors(a.cfg.Check.MaxErrors),
			}
			if a.cfg.Check.NoBlockers {
				opts = append(opts, gopms.WithoutBlockers())
			}
			if a.cfg.Check.RequireVersion {
				opts = append(opts, gopms.WithRequireVersion())
			}

			entries, err := gopms.ParseList(cmd.Context(), r, opts...)
			report := checkReport{Source: source, Valid: len(entries)}
			var listErr *gopms.ListErrors
			switch {
			case errors.As(err, &listErr):
				report.Truncated = listErr.Truncated
				for _, le := range listErr.Errors {
					report.Errors = append(report.Errors, checkLineReport{Line: le.Line, Err: newErrorReport(le.Text, le.Err)})
				}
			case err != nil:
				return &ExitError{Code: 2, Err: err}
			}

			if err := render(cmd.OutOrStdout(), a.cfg.Format, report, func(w io.Writer) error {
				writeCheckReport(w, report, listErr)
				return nil
			}); err != nil {
				return err
			}
			if len(report.Errors) > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf("%s: %d invalid atoms", source, len(report.Errors))}
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-blockers", false, "reject atoms with a '!' or '!!' blocker")
	cmd.Flags().Bool("require-version", false, "reject atoms without a version operator")
	cmd.Flags().Int("max-errors", 0, "stop after this many invalid lines (0 means no limit)")
	return cmd
}

func writeCheckReport(w io.Writer, r checkReport, listErr *gopms.ListErrors) {
	if listErr != nil {
		for _, le := range listErr.Errors {
			fmt.Fprintf(w, "%s:%d: ", r.Source, le.Line)
			writeParseError(w, le.Err)
		}
		if r.Truncated {
			fmt.Fprintln(w, WarningStyle.Render("stopped after too many errors"))
		}
	}
	if len(r.Errors) == 0 {
		fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("✓ %d atoms valid", r.Valid)))
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("✗ %d invalid, %d valid", len(r.Errors), r.Valid)))
}

// openInput opens path for reading, or the command's stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
