// Package server wires the tool registry into an MCP server exposed over
// standard input/output. Framing, handshake, and session state belong to the
// mcp-go transport; this package only maps descriptors and results.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/harun/toolbridge/pkg/registry"
)

// Name identifies the server to MCP clients
const Name = "toolbridge"

// New builds an MCP server exposing every tool currently registered.
func New(reg *registry.Registry, version string) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, tool := range reg.Tools() {
		s.AddTool(mcpTool(tool), dispatchHandler(reg, tool.Name))
	}

	log.Info().Int("tools", reg.Len()).Str("version", version).Msg("MCP server built")

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout. A returned
// error means the transport could not be established or broke down; the
// caller treats it as fatal.
func ServeStdio(s *server.MCPServer) error {
	log.Info().Msg("Serving MCP over stdio")

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	return nil
}

// mcpTool converts a registry descriptor into an mcp tool definition
func mcpTool(tool *registry.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(tool.Description)}

	for _, param := range tool.Parameters {
		opts = append(opts, paramOption(param))
	}

	return mcp.NewTool(tool.Name, opts...)
}

func paramOption(param registry.Parameter) mcp.ToolOption {
	props := []mcp.PropertyOption{mcp.Description(param.Description)}
	if param.Required {
		props = append(props, mcp.Required())
	}

	switch param.Type {
	case "number", "integer":
		if def, ok := param.Default.(float64); ok {
			props = append(props, mcp.DefaultNumber(def))
		}
		return mcp.WithNumber(param.Name, props...)
	case "boolean":
		return mcp.WithBoolean(param.Name, props...)
	case "array":
		props = append(props, mcp.Items(map[string]interface{}{"type": "string"}))
		return mcp.WithArray(param.Name, props...)
	case "object":
		return mcp.WithObject(param.Name, props...)
	default:
		if def, ok := param.Default.(string); ok {
			props = append(props, mcp.DefaultString(def))
		}
		return mcp.WithString(param.Name, props...)
	}
}

// dispatchHandler adapts an mcp tool call into a registry dispatch. The
// registry owns validation, defaults, and error conversion; every outcome
// comes back as a tool result, never a protocol error.
func dispatchHandler(reg *registry.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		result := reg.Dispatch(ctx, name, args)

		if result.IsError {
			return mcp.NewToolResultError(result.Text()), nil
		}
		return mcp.NewToolResultText(result.Text()), nil
	}
}
