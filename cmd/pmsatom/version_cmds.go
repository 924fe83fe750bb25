package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-pms/version"
)

// compareReport is the result of "pmsatom compare".
type compareReport struct {
	A      string `json:"a" yaml:"a"`
	B      string `json:"b" yaml:"b"`
	Result int    `json:"result" yaml:"result"`
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare A B",
		Short: "Compare two versions in PMS order",
		Example: `  pmsatom compare 1.0_rc1 1.0
  pmsatom compare 1.01 1.1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			va, err := parseVersionArg(cmd, args[0])
			if err != nil {
				return err
			}
			vb, err := parseVersionArg(cmd, args[1])
			if err != nil {
				return err
			}

			r := compareReport{A: args[0], B: args[1], Result: version.Compare(va, vb)}
			a.logger.Debug("compared versions", "a", r.A, "b", r.B, "result", r.Result)
			return render(cmd.OutOrStdout(), a.cfg.Format, r, func(w io.Writer) error {
				op := "=="
				switch r.Result {
				case -1:
					op = "<"
				case 1:
					op = ">"
				}
				_, err := fmt.Fprintf(w, "%s %s %s\n", VersionStyle.Render(r.A), op, VersionStyle.Render(r.B))
				return err
			})
		},
	}
}

func newSortCmd(a *app) *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:     "sort VERSION...",
		Short:   "Print versions in ascending PMS order",
		Example: `  pmsatom sort 1.0 1.0_p1 1.0-r1 1.0_rc1 0.9`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions := make([]version.Version, 0, len(args))
			for _, arg := range args {
				v, err := parseVersionArg(cmd, arg)
				if err != nil {
					return err
				}
				versions = append(versions, v)
			}
			version.Sort(versions)

			out := make([]string, len(versions))
			for i, v := range versions {
				j := i
				if reverse {
					j = len(versions) - 1 - i
				}
				out[j] = v.String()
			}
			return render(cmd.OutOrStdout(), a.cfg.Format, out, func(w io.Writer) error {
				for _, s := range out {
					if _, err := fmt.Fprintln(w, s); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "print in descending order")
	return cmd
}

func parseVersionArg(cmd *cobra.Command, s string) (version.Version, error) {
	v, err := version.Parse(s)
	if err != nil {
		writeParseError(cmd.ErrOrStderr(), err)
		return version.Version{}, &ExitError{Code: 2, Err: err}
	}
	return v, nil
}
