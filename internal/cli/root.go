// Package cli implements the kairu command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kairu/internal/engine"
	"github.com/mesh-intelligence/kairu/internal/prompt"
	"github.com/mesh-intelligence/kairu/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
}

// app carries per-invocation state shared by every subcommand.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *log.Logger
	clock     engine.Clock
	asker     prompt.Asker
}

type option func(*app)

// withClock fixes the engine clock, for tests.
func withClock(c engine.Clock) option {
	return func(a *app) { a.clock = c }
}

// withAsker replaces the interactive prompt, for tests.
func withAsker(p prompt.Asker) option {
	return func(a *app) { a.asker = p }
}

// NewRootCmd creates the top-level "kairu" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd()
}

func newRootCmd(opts ...option) *cobra.Command {
	a := &app{clock: engine.SystemClock{}}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "kairu",
		Short: "A command-line productivity coach",
		Long: "Kairu tracks tasks in groups, links them to goals, and rewards you\n" +
			"with points, streaks, levels, themes and achievements.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/kairu)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/kairu)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite (overrides config.yaml)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output views as JSON")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newGroupCmd(a),
		newGoalCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newViewCmd(a),
		newViewCompletedCmd(a),
		newDoneCmd(a),
		newDeleteCmd(a),
		newSubCmd(a),
		newLogCmd(a),
		newStarCmd(a, true),
		newStarCmd(a, false),
		newFocusCmd(a),
		newSearchCmd(a),
		newHealthCmd(a),
		newStatsCmd(a),
		newThemesCmd(a),
		newUnlockThemeCmd(a),
		newSetThemeCmd(a),
		newBuyFreezeCmd(a),
		newPlanDayCmd(a),
		newShutdownCmd(a),
		newUnstuckCmd(a),
		newExportCmd(a),
	)

	return root
}

// setup resolves configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadSettings()
	if err != nil {
		return sysError(err)
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), a.flags.verbose, cfg.LogLevel)
	a.logger.Debug("configuration resolved", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	if a.asker == nil {
		a.asker = prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return nil
}

// newLogger returns a stderr logger at debug level when verbose, otherwise
// at the configured level (warn when unset or unparseable).
func newLogger(w io.Writer, verbose bool, level string) *log.Logger {
	lvl := log.WarnLevel
	if parsed, err := log.ParseLevel(level); err == nil && level != "" {
		lvl = parsed
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "kairu",
		Level:           lvl,
		ReportTimestamp: verbose,
	})
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an environment failure (exit code 2).
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error returned by a command to the process exit code.
// Engine rule violations are user errors; anything marked by sysError is not.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if code := exitCode(err); code != exitSuccess {
		os.Exit(code)
	}
}

// userError formats a usage problem detected by the CLI itself.
func userError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
