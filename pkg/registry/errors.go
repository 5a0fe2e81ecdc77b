package registry

import (
	"fmt"
	"strings"
)

// DuplicateToolError indicates a registration attempt for a name that is
// already taken
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}

// UnknownToolError indicates a dispatch to a name that was never registered
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ValidationError indicates parameters that do not satisfy the tool's schema
type ValidationError struct {
	Detail  string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("parameter validation failed: %s", strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("parameter validation failed: %s", e.Detail)
}
