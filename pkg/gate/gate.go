// Package gate decides whether a requested shell command may be executed.
// The decision is an exact string-equality check of the full command line
// against a fixed allow-list: no normalization, no prefix or glob matching.
package gate

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Gate holds the set of exact full-command strings permitted for execution.
// It is constructed once at process start and read-only afterwards.
type Gate struct {
	allowed []string
}

// New creates a gate from a list of exact full-command strings
func New(allowed []string) *Gate {
	entries := make([]string, 0, len(allowed))
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}

	log.Info().Int("count", len(entries)).Msg("Command allow-list loaded")

	return &Gate{allowed: entries}
}

// Parse creates a gate from a comma-separated allow-list string, the format
// of the ALLOWED_COMMANDS environment variable. An empty value yields an
// empty gate that rejects everything.
func Parse(raw string) *Gate {
	if strings.TrimSpace(raw) == "" {
		return New(nil)
	}
	return New(strings.Split(raw, ","))
}

// FullCommand joins a command and its arguments with single spaces, the
// form compared against allow-list entries
func FullCommand(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

// Check returns nil if fullCommand is allowed, or a CommandNotAllowedError
// naming the rejected command and the allowed set
func (g *Gate) Check(fullCommand string) error {
	for _, entry := range g.allowed {
		if entry == fullCommand {
			return nil
		}
	}

	log.Warn().Str("command", fullCommand).Msg("Command rejected by allow-list")

	return &CommandNotAllowedError{Command: fullCommand, Allowed: g.Allowed()}
}

// Allowed returns a copy of the allow-list
func (g *Gate) Allowed() []string {
	allowed := make([]string, len(g.allowed))
	copy(allowed, g.allowed)
	return allowed
}

// CommandNotAllowedError indicates a full command absent from the allow-list
type CommandNotAllowedError struct {
	Command string
	Allowed []string
}

func (e *CommandNotAllowedError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("command not allowed: %q (allow-list is empty)", e.Command)
	}
	return fmt.Sprintf("command not allowed: %q (allowed: %s)", e.Command, strings.Join(e.Allowed, ", "))
}
