// Package tools registers the tool surface exposed to the orchestrator:
// documentation lookup, project search, and gated command execution.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harun/toolbridge/pkg/gate"
	"github.com/harun/toolbridge/pkg/registry"
	"github.com/harun/toolbridge/pkg/runner"
)

// DocSource resolves documentation queries. The default implementation is a
// placeholder; real backends can be plugged in without touching the dispatch
// contract.
type DocSource interface {
	Lookup(ctx context.Context, query, source string) (string, error)
}

// ProjectSearcher searches project files for a query. Same contract as
// DocSource: the default is an explicit placeholder.
type ProjectSearcher interface {
	Search(ctx context.Context, query, filePattern string) (string, error)
}

// CommandRunner executes an allow-listed command. *runner.Runner is the
// production implementation.
type CommandRunner interface {
	Run(ctx context.Context, command string, args []string) (runner.Result, error)
}

// Options configures tool registration.
type Options struct {
	Gate   *gate.Gate
	Runner CommandRunner
	Docs   DocSource
	Search ProjectSearcher
}

// Register registers the documentation, search, and command tools.
func Register(reg *registry.Registry, opts Options) error {
	if reg == nil {
		return errors.New("registry is required")
	}
	if opts.Gate == nil {
		return errors.New("command gate is required")
	}
	if opts.Runner == nil {
		return errors.New("runner is required")
	}
	if opts.Docs == nil {
		opts.Docs = StubDocSource{}
	}
	if opts.Search == nil {
		opts.Search = StubSearcher{}
	}

	defs := []registry.Tool{
		documentationTool(opts.Docs),
		searchTool(opts.Search),
		commandTool(opts.Gate, opts.Runner),
	}

	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", def.Name, err)
		}
	}
	return nil
}

func documentationTool(docs DocSource) registry.Tool {
	return registry.Tool{
		Name:        "get_documentation",
		Description: "Look up documentation for a query.",
		Parameters: []registry.Parameter{
			{Name: "query", Type: "string", Description: "What to look up", Required: true},
			{Name: "source", Type: "string", Description: "Documentation source", Default: "local"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			query, _ := params["query"].(string)
			source, _ := params["source"].(string)
			return docs.Lookup(ctx, query, source)
		},
	}
}

func searchTool(search ProjectSearcher) registry.Tool {
	return registry.Tool{
		Name:        "search_project",
		Description: "Search project files for a query.",
		Parameters: []registry.Parameter{
			{Name: "query", Type: "string", Description: "Text to search for", Required: true},
			{Name: "filePattern", Type: "string", Description: "Glob pattern limiting searched files", Default: "*"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			query, _ := params["query"].(string)
			filePattern, _ := params["filePattern"].(string)
			return search.Search(ctx, query, filePattern)
		},
	}
}

func commandTool(g *gate.Gate, r CommandRunner) registry.Tool {
	return registry.Tool{
		Name:        "run_command",
		Description: "Execute an allow-listed shell command and capture its output.",
		Parameters: []registry.Parameter{
			{Name: "command", Type: "string", Description: "Command to execute", Required: true},
			{Name: "args", Type: "array", Description: "Command arguments", Default: []interface{}{}},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (string, error) {
			command, _ := params["command"].(string)
			if command == "" {
				return "", errors.New("command is required")
			}

			// The allow-list comparison is exact: the command is used as
			// given, with no trimming or other normalization.
			args := toStringSlice(params["args"])
			fullCommand := gate.FullCommand(command, args)

			if err := g.Check(fullCommand); err != nil {
				return "", err
			}

			result, err := r.Run(ctx, command, args)
			if err != nil {
				return "", err
			}

			return formatRunResult(fullCommand, result), nil
		},
	}
}

func formatRunResult(fullCommand string, result runner.Result) string {
	var sb strings.Builder
	sb.WriteString("Command: " + fullCommand + "\n")
	sb.WriteString("stdout:\n")
	sb.WriteString(result.Stdout)
	if !strings.HasSuffix(result.Stdout, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("stderr:\n")
	sb.WriteString(result.Stderr)
	return sb.String()
}

func toStringSlice(value interface{}) []string {
	switch raw := value.(type) {
	case []string:
		return raw
	case []interface{}:
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
