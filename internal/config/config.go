package config

import (
	"time"

	"github.com/harun/toolbridge/internal/logger"
)

// Config represents the toolbridge configuration
type Config struct {
	// Exact full-command strings permitted by run_command. Empty means
	// every command is rejected.
	AllowedCommands []string `json:"allowed_commands" mapstructure:"allowed_commands"`

	// Working directory for command execution
	ProjectPath string `json:"project_path" mapstructure:"project_path"`

	// Upper bound on a single command's execution time, in seconds
	CommandTimeoutSeconds int `json:"command_timeout_seconds" mapstructure:"command_timeout_seconds"`

	// Logging configuration
	Logging logger.Config `json:"logging" mapstructure:"logging"`
}

// CommandTimeout returns the configured command timeout as a duration
func (c *Config) CommandTimeout() time.Duration {
	if c.CommandTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AllowedCommands:       nil,
		ProjectPath:           ".",
		CommandTimeoutSeconds: 30,
		Logging:               logger.DefaultConfig(),
	}
}
