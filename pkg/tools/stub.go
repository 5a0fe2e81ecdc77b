package tools

import (
	"context"
	"fmt"
)

// StubDocSource is the placeholder documentation backend. It formats a
// deterministic response from its input and performs no I/O.
type StubDocSource struct{}

// Lookup returns the templated placeholder text for query and source.
func (StubDocSource) Lookup(_ context.Context, query, source string) (string, error) {
	return fmt.Sprintf(
		"Documentation lookup is not implemented yet.\n\nQuery: %q\nSource: %q\n\nNo real lookup was performed; this is a placeholder response.",
		query, source,
	), nil
}

// StubSearcher is the placeholder project-search backend. Its "matches" are
// fabricated from the input and no filesystem access takes place.
type StubSearcher struct{}

// Search returns the templated placeholder match list for query and
// filePattern.
func (StubSearcher) Search(_ context.Context, query, filePattern string) (string, error) {
	return fmt.Sprintf(
		"Project search is not implemented yet.\n\nQuery: %q\nFile pattern: %q\n\nFabricated placeholder matches:\n  example/main.txt:1: ... %s ...\n  example/util.txt:42: ... %s ...\n\nNo real search was performed.",
		query, filePattern, query, query,
	), nil
}
