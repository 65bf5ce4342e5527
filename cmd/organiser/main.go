// Command organiser manages the roster from the terminal: one-shot commands
// for scripting and an interactive board.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/bootstrap"
	"github.com/spec-kit/team-organiser/internal/config"
	"github.com/spec-kit/team-organiser/internal/observability"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// app carries the runtime opened by the root command's pre-run hook.
type app struct {
	verbose bool
	rt      *bootstrap.Runtime
}

// skipRuntime marks commands that never touch storage.
const skipRuntime = "skip-runtime"

// newRootCmd builds the command tree. The returned func releases the runtime
// and must run after Execute, including when a command fails.
func newRootCmd() (*cobra.Command, func()) {
	a := &app{}
	root := &cobra.Command{
		Use:           "organiser",
		Short:         "Group people into teams and order them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipRuntime] == "true" {
				return nil
			}
			return a.open(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at info level to stderr")

	root.AddCommand(
		newShowCmd(a),
		newIngestCmd(a),
		newTeamCmd(a),
		newAssignCmd(a),
		newUnassignCmd(a),
		newReorderCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newBoardCmd(a),
		newHashPassphraseCmd(),
	)
	return root, a.close
}

func (a *app) close() {
	if a.rt == nil {
		return
	}
	_ = a.rt.Logger.Sync()
	a.rt.Close()
	a.rt = nil
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return withCode(exitUsage, err)
	}
	cfg.Logger.Output = "stderr"
	cfg.Logger.Encoding = "console"
	if !a.verbose {
		cfg.Logger.Level = "warn"
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	rt, err := bootstrap.Open(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("open runtime", zap.Error(err))
		return err
	}
	a.rt = rt
	return nil
}

func main() {
	root, closeRuntime := newRootCmd()
	err := root.Execute()
	closeRuntime()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		code := exitError
		var coded *codedError
		if errors.As(err, &coded) {
			code = coded.code
		}
		os.Exit(code)
	}
	os.Exit(exitOK)
}
