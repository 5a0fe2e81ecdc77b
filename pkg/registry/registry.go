package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// Parameter defines a single tool parameter
type Parameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
}

// Tool defines a tool's metadata and handler
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Handler     Handler     `json:"-"`
}

// Handler is the function signature for tool execution. The returned
// string becomes the text content of the result; a non-nil error is
// converted into an error result at the dispatch boundary.
type Handler func(ctx context.Context, params map[string]interface{}) (string, error)

// ContentItem is one entry in a result's content sequence
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result represents the outcome of a tool invocation. IsError true means
// the content describes the failure in human-readable text.
type Result struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// TextResult builds a single-item text result
func TextResult(text string) Result {
	return Result{Content: []ContentItem{{Type: "text", Text: text}}}
}

// ErrorResult builds a single-item error result
func ErrorResult(text string) Result {
	return Result{Content: []ContentItem{{Type: "text", Text: text}}, IsError: true}
}

// Text returns the concatenated text content of the result
func (r Result) Text() string {
	out := ""
	for _, item := range r.Content {
		out += item.Text
	}
	return out
}

// Registry holds the set of available tools and dispatches invocations
type Registry struct {
	tools   map[string]*Tool
	schemas map[string]*gojsonschema.Schema
	mu      sync.RWMutex
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		tools:   make(map[string]*Tool),
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

var validParamTypes = map[string]bool{
	"string": true, "number": true, "boolean": true,
	"object": true, "array": true, "integer": true,
}

// Register adds a tool. Registering a name that already exists fails with
// a DuplicateToolError; tool descriptors are immutable once registered.
func (r *Registry) Register(tool Tool) error {
	if err := validateTool(tool); err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}

	schema, err := buildSchema(tool)
	if err != nil {
		return fmt.Errorf("failed to build schema for %s: %w", tool.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &DuplicateToolError{Name: tool.Name}
	}

	r.tools[tool.Name] = &tool
	r.schemas[tool.Name] = schema

	log.Info().Str("tool", tool.Name).Msg("Tool registered")

	return nil
}

// Get returns a tool by name, or nil if absent
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tools[name]
}

// Tools returns all registered tools sorted by name
func (r *Registry) Tools() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })

	return tools
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Dispatch resolves a tool by name, validates the parameters against its
// schema, applies declared defaults, and invokes the handler. Every failure
// mode, including a handler error, is converted into a Result with IsError
// set; Dispatch never returns an error to its caller.
func (r *Registry) Dispatch(ctx context.Context, name string, params map[string]interface{}) Result {
	start := time.Now()
	invocationID := uuid.NewString()

	log.Info().
		Str("tool", name).
		Str("invocation_id", invocationID).
		Interface("params", params).
		Msg("Dispatching tool invocation")

	result := r.dispatch(ctx, name, params)

	outcome := log.Info()
	if result.IsError {
		outcome = log.Warn()
	}
	outcome.
		Str("tool", name).
		Str("invocation_id", invocationID).
		Bool("error", result.IsError).
		Dur("duration", time.Since(start)).
		Msg("Tool invocation completed")

	return result
}

func (r *Registry) dispatch(ctx context.Context, name string, params map[string]interface{}) Result {
	r.mu.RLock()
	tool := r.tools[name]
	schema := r.schemas[name]
	r.mu.RUnlock()

	if tool == nil {
		err := &UnknownToolError{Name: name}
		return ErrorResult(err.Error())
	}

	if params == nil {
		params = map[string]interface{}{}
	}

	if err := validateParams(schema, params); err != nil {
		return ErrorResult(err.Error())
	}

	normalized := normalizeParams(tool, params)

	text, err := tool.Handler(ctx, normalized)
	if err != nil {
		return ErrorResult(err.Error())
	}

	return TextResult(text)
}

func validateTool(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Description == "" {
		return fmt.Errorf("tool description cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	for _, param := range tool.Parameters {
		if param.Name == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}
		if !validParamTypes[param.Type] {
			return fmt.Errorf("invalid parameter type %s for %s", param.Type, param.Name)
		}
	}

	return nil
}

// buildSchema generates a JSON Schema from the tool's parameters. Unknown
// extra parameters are permitted by the schema and stripped during
// normalization rather than rejected.
func buildSchema(tool Tool) (*gojsonschema.Schema, error) {
	properties := make(map[string]interface{})
	required := []string{}

	for _, param := range tool.Parameters {
		paramSchema := map[string]interface{}{
			"type": param.Type,
		}
		if param.Description != "" {
			paramSchema["description"] = param.Description
		}
		if param.Default != nil {
			paramSchema["default"] = param.Default
		}

		properties[param.Name] = paramSchema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	schemaMap := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schemaMap["required"] = required
	}

	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
}

func validateParams(schema *gojsonschema.Schema, params map[string]interface{}) error {
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return &ValidationError{Detail: err.Error()}
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &ValidationError{Details: details}
	}

	return nil
}

// normalizeParams keeps only declared parameters and fills in defaults for
// absent optional ones
func normalizeParams(tool *Tool, params map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(tool.Parameters))

	for _, param := range tool.Parameters {
		if value, ok := params[param.Name]; ok {
			normalized[param.Name] = value
			continue
		}
		if param.Default != nil {
			normalized[param.Name] = param.Default
		}
	}

	return normalized
}
