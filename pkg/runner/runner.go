// Package runner executes external commands with captured output. Commands
// are spawned from an argument vector rather than handed to a shell, so no
// shell metacharacter interpretation takes place.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a command's execution when no timeout is configured
const DefaultTimeout = 30 * time.Second

// Result holds the captured outcome of one command execution
type Result struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// ExecutionError indicates a command that failed to spawn, exited non-zero,
// or exceeded its timeout. Stderr carries whatever the process wrote before
// failing.
type ExecutionError struct {
	FullCommand string
	Stderr      string
	Err         error
}

func (e *ExecutionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command %q failed: %v\nstderr: %s", e.FullCommand, e.Err, e.Stderr)
	}
	return fmt.Sprintf("command %q failed: %v", e.FullCommand, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Runner executes commands in a fixed working directory with a bounded
// timeout. The zero timeout falls back to DefaultTimeout.
type Runner struct {
	workDir string
	timeout time.Duration
}

// New creates a runner. An empty workDir means the process current directory.
func New(workDir string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{workDir: workDir, timeout: timeout}
}

// WorkDir returns the configured working directory
func (r *Runner) WorkDir() string {
	return r.workDir
}

// Run executes command with args, blocking until the process exits or the
// timeout elapses. Stdout and stderr are captured in full.
func (r *Runner) Run(ctx context.Context, command string, args []string) (Result, error) {
	fullCommand := command
	for _, arg := range args {
		fullCommand += " " + arg
	}

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, command, args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		result.ExitCode = -1
		return result, &ExecutionError{
			FullCommand: fullCommand,
			Stderr:      result.Stderr,
			Err:         fmt.Errorf("timed out after %v", r.timeout),
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}

		log.Debug().
			Str("command", command).
			Strs("args", args).
			Int("exit_code", result.ExitCode).
			Dur("duration", duration).
			Err(err).
			Msg("Command execution failed")

		return result, &ExecutionError{
			FullCommand: fullCommand,
			Stderr:      result.Stderr,
			Err:         err,
		}
	}

	log.Debug().
		Str("command", command).
		Strs("args", args).
		Int("exit_code", result.ExitCode).
		Dur("duration", duration).
		Msg("Command executed")

	return result, nil
}
