package runner

import (
	"context"
	"errors"
	"os/exec"
)

// CommandExecutor - runs tasks as child processes.
type CommandExecutor struct{}

// Execute - runs the command and returns its combined stdout and stderr.
func (CommandExecutor) Execute(ctx context.Context, task Task) ([]byte, int, error) {
	output, err := exec.CommandContext(ctx, task.Command, task.Args...).CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), err
		}

		return output, -1, err
	}

	return output, 0, nil
}
