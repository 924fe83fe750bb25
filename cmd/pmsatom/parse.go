package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-pms/atom"
)

// atomReport is the structured breakdown printed by "pmsatom parse".
type atomReport struct {
	Input        string       `json:"input" yaml:"input"`
	Blocker      string       `json:"blocker,omitempty" yaml:"blocker,omitempty"`
	Operator     string       `json:"operator,omitempty" yaml:"operator,omitempty"`
	Category     string       `json:"category,omitempty" yaml:"category,omitempty"`
	Package      string       `json:"package,omitempty" yaml:"package,omitempty"`
	Version      string       `json:"version,omitempty" yaml:"version,omitempty"`
	Slot         string       `json:"slot,omitempty" yaml:"slot,omitempty"`
	Subslot      string       `json:"subslot,omitempty" yaml:"subslot,omitempty"`
	SlotOperator string       `json:"slot_operator,omitempty" yaml:"slot_operator,omitempty"`
	UseDeps      []string     `json:"use,omitempty" yaml:"use,omitempty"`
	Repository   string       `json:"repository,omitempty" yaml:"repository,omitempty"`
	Error        *errorReport `json:"error,omitempty" yaml:"error,omitempty"`
}

func newAtomReport(input string, d atom.Dep) atomReport {
	r := atomReport{
		Input:      input,
		Blocker:    d.Blocker().String(),
		Operator:   d.Operator().String(),
		Category:   d.Category(),
		Package:    d.Package(),
		Repository: d.Repo(),
	}
	if v, ok := d.Version(); ok {
		r.Version = v.String()
	}
	if s, ok := d.Slot(); ok {
		r.Slot = s.Slot()
		r.Subslot = s.Subslot()
		r.SlotOperator = s.Operator().String()
	}
	for _, u := range d.UseDeps() {
		r.UseDeps = append(r.UseDeps, u.String())
	}
	return r
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse ATOM...",
		Short: "Show the structure of package atoms",
		Example: `  pmsatom parse '>=dev-lang/rust-1.75.0:0/1=[llvm_targets_AMDGPU]::gentoo'
  pmsatom parse --format json '!!sys-apps/systemd'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]atomReport, 0, len(args))
			failed := 0
			for _, arg := range args {
				d, err := atom.ParseDep(arg)
				if err != nil {
					failed++
					a.logger.Debug("parse failed", "atom", arg, "error", err)
					reports = append(reports, atomReport{Input: arg, Error: newErrorReport(arg, err)})
					if a.cfg.Format == "text" {
						writeParseError(cmd.ErrOrStderr(), err)
					}
					continue
				}
				reports = append(reports, newAtomReport(arg, d))
			}

			err := render(cmd.OutOrStdout(), a.cfg.Format, reports, func(w io.Writer) error {
				for _, r := range reports {
					if r.Error == nil {
						writeAtomReport(w, r)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d atoms invalid", failed, len(args))}
			}
			return nil
		},
	}
}

func writeAtomReport(w io.Writer, r atomReport) {
	fmt.Fprintln(w, TitleStyle.Render(r.Input))
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintln(w, "  "+LabelStyle.Render(label)+value)
		}
	}
	field("blocker", r.Blocker)
	field("operator", r.Operator)
	field("category", r.Category)
	field("package", r.Package)
	if r.Version != "" {
		field("version", VersionStyle.Render(r.Version))
	}
	field("slot", r.Slot)
	field("subslot", r.Subslot)
	field("slot op", r.SlotOperator)
	for _, u := range r.UseDeps {
		field("use", u)
	}
	field("repository", r.Repository)
}
