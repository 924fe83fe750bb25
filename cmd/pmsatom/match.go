package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-pms/atom"
)

// errNoMatch reports that no candidate satisfied the atom.
var errNoMatch = errors.New("no matching versions")

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match DEP CPV...",
		Short: "Print the package versions matched by an atom",
		Long: `Print every CPV argument whose name and version satisfy DEP. Slot, USE and
repository clauses are ignored because they need package metadata.

Exits with status 1 when nothing matches.`,
		Example: `  pmsatom match '~dev-lang/rust-1.75.0' dev-lang/rust-1.75.0-r1 dev-lang/rust-1.76.0
  pmsatom match '=sys-libs/glibc-2.3*' sys-libs/glibc-2.3.1 sys-libs/glibc-2.38`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := atom.ParseDep(args[0])
			if err != nil {
				writeParseError(cmd.ErrOrStderr(), err)
				return &ExitError{Code: 2, Err: err}
			}

			matched := []string{}
			for _, arg := range args[1:] {
				c, err := atom.ParseCpv(arg)
				if err != nil {
					writeParseError(cmd.ErrOrStderr(), err)
					return &ExitError{Code: 2, Err: err}
				}
				ok := dep.Matches(c)
				a.logger.Debug("match", "atom", dep.String(), "cpv", c.String(), "matched", ok)
				if ok {
					matched = append(matched, c.String())
				}
			}

			if err := render(cmd.OutOrStdout(), a.cfg.Format, matched, func(w io.Writer) error {
				for _, m := range matched {
					fmt.Fprintln(w, m)
				}
				return nil
			}); err != nil {
				return err
			}
			if len(matched) == 0 {
				return &ExitError{Code: 1, Err: errNoMatch}
			}
			return nil
		},
	}
}
