package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/albertocavalcante/go-pms/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// app carries state shared by all subcommands once the root command has
// resolved its configuration.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// newRootCmd builds a fresh command tree.
func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "pmsatom",
		Short: "Parse, validate and compare PMS package atoms",
		Long: TitleStyle.Render("pmsatom") + ` - parse, validate and compare package atoms

Atoms follow the Package Manager Specification used by Portage:

  [!|!!][op]category/package[-version[*]][:slot][[use,...]][::repo]

Configuration is read from $XDG_CONFIG_HOME/pmsatom/config.yaml, from
./config.yaml, or from the file given with --config. Every setting can be
overridden with a PMSATOM_* environment variable (PMSATOM_FORMAT,
PMSATOM_CHECK_MAX_ERRORS, ...) and then with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP("format", "f", "text", "output format: text, json or yaml")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pmsatom/config.yaml)")

	rootCmd.AddCommand(
		newParseCmd(a),
		newCompareCmd(a),
		newSortCmd(a),
		newCheckCmd(a),
		newDiffCmd(a),
		newMatchCmd(a),
	)
	return rootCmd
}

// init loads configuration and builds the logger for the executing command.
func (a *app) init(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, path, err := config.Load(config.Options{
		ConfigFilePath: a.cfgFile,
		Flags: map[string]*pflag.Flag{
			"format":                flags.Lookup("format"),
			"verbose":               flags.Lookup("verbose"),
			"check.no_blockers":     flags.Lookup("no-blockers"),
			"check.require_version": flags.Lookup("require-version"),
			"check.max_errors":      flags.Lookup("max-errors"),
		},
	})
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("load configuration: %w", err)}
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if path != "" {
		a.logger.Debug("loaded config file", "path", path)
	}
	return nil
}

// newLogger returns a slog.Logger backed by a charmbracelet/log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "pmsatom",
		Level:  level,
	})
	return slog.New(handler)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
