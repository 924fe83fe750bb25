package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	gopms "github.com/albertocavalcante/go-pms"
	"github.com/albertocavalcante/go-pms/atom"
)

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two lists of package versions",
		Long: `Compare two files listing category/package-version entries, one per line,
for example two snapshots of "qlist -Iv". Either file may be "-" for
standard input.`,
		Example: `  pmsatom diff before.txt after.txt`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := readCpvFile(cmd, args[0])
			if err != nil {
				return err
			}
			cur, err := readCpvFile(cmd, args[1])
			if err != nil {
				return err
			}

			diff := gopms.DiffCpvs(old, cur)
			a.logger.Debug("computed diff", "old", len(old), "new", len(cur), "changes", diff.TotalChanges())
			return render(cmd.OutOrStdout(), a.cfg.Format, diff, func(w io.Writer) error {
				writeDiff(w, diff)
				return nil
			})
		},
	}
}

func writeDiff(w io.Writer, d *gopms.CpvDiff) {
	if d.IsEmpty() {
		fmt.Fprintln(w, "no changes")
		return
	}
	for _, c := range d.Added {
		fmt.Fprintln(w, SuccessStyle.Render("+ "+c.Name.String()+"-"+c.Version.String()))
	}
	for _, c := range d.Removed {
		fmt.Fprintln(w, ErrorStyle.Render("- "+c.Name.String()+"-"+c.Version.String()))
	}
	for _, u := range d.Upgraded {
		fmt.Fprintf(w, "%s %s %s -> %s\n", SuccessStyle.Render("↑"), u.Name, u.OldVersion, VersionStyle.Render(u.NewVersion.String()))
	}
	for _, u := range d.Downgraded {
		fmt.Fprintf(w, "%s %s %s -> %s\n", WarningStyle.Render("↓"), u.Name, u.OldVersion, VersionStyle.Render(u.NewVersion.String()))
	}
}

// readCpvFile reads one category/package-version per line, skipping blank
// lines and '#' comments.
func readCpvFile(cmd *cobra.Command, path string) ([]atom.Cpv, error) {
	r, closeFn, err := openInput(cmd, path)
	if err != nil {
		return nil, &ExitError{Code: 2, Err: err}
	}
	defer closeFn()

	var out []atom.Cpv
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c, err := atom.ParseCpv(text)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d: ", path, line)
			writeParseError(cmd.ErrOrStderr(), err)
			return nil, &ExitError{Code: 2, Err: fmt.Errorf("%s:%d: %w", path, line, err)}
		}
		out = append(out, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ExitError{Code: 2, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	return out, nil
}
