package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run_Success(t *testing.T) {
	r := New("", 0)

	result, err := r.Run(context.Background(), "echo", []string{"hello"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "hello")
	assert.Empty(t, result.Stderr)
}

func TestRunner_Run_NonZeroExit(t *testing.T) {
	r := New("", 0)

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo oops >&2; exit 3"})
	require.Error(t, err)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "oops")
	assert.Contains(t, execErr.Error(), "oops")
}

func TestRunner_Run_SpawnFailure(t *testing.T) {
	r := New("", 0)

	result, err := r.Run(context.Background(), "definitely-not-a-real-binary", nil)
	require.Error(t, err)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, -1, result.ExitCode)
}

func TestRunner_Run_Timeout(t *testing.T) {
	r := New("", 100*time.Millisecond)

	_, err := r.Run(context.Background(), "sleep", []string{"5"})
	require.Error(t, err)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Contains(t, execErr.Error(), "timed out")
}

func TestRunner_Run_WorkDir(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, 0)

	result, err := r.Run(context.Background(), "pwd", nil)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestRunner_Run_NoShellInterpretation(t *testing.T) {
	r := New("", 0)

	// The argv form must pass metacharacters through as literal arguments.
	result, err := r.Run(context.Background(), "echo", []string{"$(whoami)"})
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "$(whoami)")
}
