package config

import (
	"fmt"
	"os"
	"strings"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateProjectPath validates the command working directory
func (v *Validator) ValidateProjectPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("project path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("project path %q is not accessible: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %q is not a directory", path)
	}

	return nil
}

// ValidateAllowedCommands validates allow-list entries
func (v *Validator) ValidateAllowedCommands(commands []string) error {
	for _, command := range commands {
		if strings.TrimSpace(command) == "" {
			return fmt.Errorf("allow-list entries cannot be empty")
		}
	}
	return nil
}

// Validate checks the whole configuration
func (v *Validator) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := v.ValidateProjectPath(cfg.ProjectPath); err != nil {
		return err
	}
	if err := v.ValidateAllowedCommands(cfg.AllowedCommands); err != nil {
		return err
	}
	if cfg.CommandTimeoutSeconds < 0 {
		return fmt.Errorf("command timeout cannot be negative")
	}

	return nil
}
