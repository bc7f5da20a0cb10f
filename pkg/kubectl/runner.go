package kubectl

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/piwi3910/kubeact/pkg/action"
)

// Runner executes argument vectors as subprocesses. It holds no state
// across calls; each Run scopes its process handle and output buffers
// to the single invocation.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run spawns argv[0] with the remaining tokens as arguments and blocks
// until the process exits or ctx is cancelled. Stdout and stderr are
// captured independently and never merged. A non-zero exit is a normal,
// classifiable outcome; only a process that could not be located,
// launched, or that was forcibly terminated surfaces as an error.
//
// There is no internal retry and no internal timeout: both belong to
// the caller.
func (r *Runner) Run(ctx context.Context, argv []string) (*action.ExecutionResult, error) {
	if len(argv) == 0 {
		return nil, action.NewInvalidRequestError("empty argument vector", nil)
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, action.NewSpawnError("executable not found", err).WithArgv(argv)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &action.ExecutionResult{
		Argv:   argv,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		// Forced termination must never read as success.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, action.NewSpawnError("terminated by caller", ctxErr).WithArgv(argv)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, action.NewSpawnError("failed to launch process", err).WithArgv(argv)
	}

	result.ExitCode = 0
	return result, nil
}
