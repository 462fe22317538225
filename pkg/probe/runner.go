package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Result is the captured outcome of one command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner runs a system command. A non-zero exit status is not an error; the
// returned error means the command could not be run or timed out.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// waitDelay bounds how long Run waits for output pipes after the timeout
// kills the command; a child process may keep them open.
const waitDelay = 100 * time.Millisecond

// ExecRunner runs commands with os/exec, bounding each with Timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates a runner with the given per-command timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			if ctx.Err() == nil {
				return res, nil
			}
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s timed out after %v", name, r.Timeout)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return res, nil
}
