package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/harun/toolbridge/pkg/gate"
)

// EnvAllowedCommands is the comma-separated allow-list of exact full-command
// strings. A missing or empty value means an empty allow-list.
const EnvAllowedCommands = "ALLOWED_COMMANDS"

// EnvProjectPath is the working directory for command execution. Missing
// means the process current directory.
const EnvProjectPath = "PROJECT_PATH"

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads the configuration from file and applies environment overrides.
// A missing config file is not an error; defaults apply.
func (l *Loader) Load() (*Config, error) {
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".toolbridge", "toolbridge.json")
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	v.SetEnvPrefix("TOOLBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env values through Unmarshal;
	// each key has to be bound explicitly.
	for _, key := range []string{
		"project_path",
		"command_timeout_seconds",
		"logging.level",
		"logging.file",
		"logging.console",
		"logging.pretty",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env key %s: %w", key, err)
		}
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies the two orchestrator-facing environment
// variables on top of whatever the config file provided. The allow-list
// splitting semantics live in the gate package.
func applyEnvOverrides(cfg *Config) {
	if raw, ok := os.LookupEnv(EnvAllowedCommands); ok {
		cfg.AllowedCommands = gate.Parse(raw).Allowed()
	}
	if path, ok := os.LookupEnv(EnvProjectPath); ok && strings.TrimSpace(path) != "" {
		cfg.ProjectPath = path
	}
}
