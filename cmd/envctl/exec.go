package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanizio/webstack/internal/config"
)

// exitError carries a child's exit status back to main.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("command exited with status %d", e.code) }

func newExecCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the mode secrets overlay applied",
		Long: `exec loads the mode secrets file into the environment (variables that
are already set keep their value) and runs the command with it.  The
command's exit status becomes envctl's exit status.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := config.ApplyEnvironmentOverlay(g.resolvedMode(), g.resolvedDir())
			if err != nil {
				return err
			}
			zap.S().Debugw("exec", "command", args[0], "applied", ov.Applied)

			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			child.Env = os.Environ()
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()

			if err := child.Run(); err != nil {
				var ee *exec.ExitError
				if errors.As(err, &ee) {
					return &exitError{code: ee.ExitCode()}
				}
				return err
			}
			return nil
		},
	}
}
