package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/toolbridge/pkg/gate"
	"github.com/harun/toolbridge/pkg/registry"
	"github.com/harun/toolbridge/pkg/runner"
)

func newTestRegistry(t *testing.T, allowed []string) *registry.Registry {
	t.Helper()

	reg := registry.New()
	err := Register(reg, Options{
		Gate:   gate.New(allowed),
		Runner: runner.New("", 0),
	})
	require.NoError(t, err)

	return reg
}

// countingRunner records how often Run is invoked without spawning anything.
type countingRunner struct {
	calls int
}

func (c *countingRunner) Run(ctx context.Context, command string, args []string) (runner.Result, error) {
	c.calls++
	return runner.Result{Stdout: "ran\n"}, nil
}

func newSpyRegistry(t *testing.T, allowed []string) (*registry.Registry, *countingRunner) {
	t.Helper()

	spy := &countingRunner{}
	reg := registry.New()
	err := Register(reg, Options{
		Gate:   gate.New(allowed),
		Runner: spy,
	})
	require.NoError(t, err)

	return reg, spy
}

func TestRegister_ToolSurface(t *testing.T) {
	reg := newTestRegistry(t, nil)

	assert.Equal(t, 3, reg.Len())
	assert.NotNil(t, reg.Get("get_documentation"))
	assert.NotNil(t, reg.Get("search_project"))
	assert.NotNil(t, reg.Get("run_command"))
}

func TestGetDocumentation_Placeholder(t *testing.T) {
	reg := newTestRegistry(t, nil)

	result := reg.Dispatch(context.Background(), "get_documentation", map[string]interface{}{
		"query": "Foo",
	})

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), "Foo")
	// The source default applies when absent.
	assert.Contains(t, result.Text(), "local")
	assert.Contains(t, result.Text(), "not implemented")
}

func TestGetDocumentation_Deterministic(t *testing.T) {
	reg := newTestRegistry(t, nil)
	params := map[string]interface{}{"query": "Foo", "source": "web"}

	first := reg.Dispatch(context.Background(), "get_documentation", params)
	second := reg.Dispatch(context.Background(), "get_documentation", params)

	assert.Equal(t, first, second)
	assert.Contains(t, first.Text(), "web")
}

func TestSearchProject_Placeholder(t *testing.T) {
	reg := newTestRegistry(t, nil)

	result := reg.Dispatch(context.Background(), "search_project", map[string]interface{}{
		"query": "Foo",
	})

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), "Foo")
	assert.Contains(t, result.Text(), `"*"`)
	assert.Contains(t, result.Text(), "not implemented")
}

func TestSearchProject_Deterministic(t *testing.T) {
	reg := newTestRegistry(t, nil)
	params := map[string]interface{}{"query": "Foo", "filePattern": "*.txt"}

	first := reg.Dispatch(context.Background(), "search_project", params)
	second := reg.Dispatch(context.Background(), "search_project", params)

	assert.Equal(t, first, second)
}

func TestRunCommand_Allowed(t *testing.T) {
	reg := newTestRegistry(t, []string{"echo hello"})

	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{
		"command": "echo",
		"args":    []interface{}{"hello"},
	})

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), "echo hello")
	assert.Contains(t, result.Text(), "hello")
}

func TestRunCommand_Rejected(t *testing.T) {
	reg, spy := newSpyRegistry(t, []string{"echo hello"})

	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{
		"command": "rm",
		"args":    []interface{}{"-rf", "/"},
	})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "rm -rf /")
	assert.Contains(t, result.Text(), "echo hello")
	// Rejection happens before execution: nothing may be spawned.
	assert.Equal(t, 0, spy.calls)
}

func TestRunCommand_NoCommandNormalization(t *testing.T) {
	reg, spy := newSpyRegistry(t, []string{"echo hello"})

	// The command string is compared as given; surrounding whitespace must
	// not be stripped into an allowed form.
	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{
		"command": "  echo  ",
		"args":    []interface{}{"hello"},
	})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "not allowed")
	assert.Equal(t, 0, spy.calls)
}

func TestRunCommand_ExactFullCommandMatch(t *testing.T) {
	reg := newTestRegistry(t, []string{"ls -la"})

	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{
		"command": "ls",
		"args":    []interface{}{"-la", "/tmp"},
	})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "not allowed")
}

func TestRunCommand_MissingCommand(t *testing.T) {
	reg := newTestRegistry(t, []string{"echo hello"})

	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "command")
}

func TestRunCommand_ExecutionFailure(t *testing.T) {
	reg := newTestRegistry(t, []string{"sh -c exit 2"})

	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{
		"command": "sh",
		"args":    []interface{}{"-c", "exit 2"},
	})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "failed")
}

func TestRunCommand_EmptyAllowListRejectsEverything(t *testing.T) {
	reg := newTestRegistry(t, nil)

	result := reg.Dispatch(context.Background(), "run_command", map[string]interface{}{
		"command": "echo",
		"args":    []interface{}{"hello"},
	})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "allow-list is empty")
}
