package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harun/toolbridge/internal/config"
	"github.com/harun/toolbridge/internal/logger"
	"github.com/harun/toolbridge/internal/server"
	"github.com/harun/toolbridge/pkg/gate"
	"github.com/harun/toolbridge/pkg/registry"
	"github.com/harun/toolbridge/pkg/runner"
	"github.com/harun/toolbridge/pkg/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool protocol on stdin/stdout",
	Long: `Serve the MCP tool protocol on standard input/output until the
orchestrator closes the stream. Diagnostics go to stderr and the log file,
never to stdout.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	// A transport failure is the only fatal condition: the process exits
	// non-zero after logging the cause.
	if err := server.ServeStdio(server.New(reg, version)); err != nil {
		log.Error().Err(err).Msg("Transport failed")
		return err
	}
	return nil
}

// setup loads configuration and installs the logger. The returned cleanup
// closes the log file.
func setup() (*config.Config, func(), error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	l, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		l.Close()
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, func() { l.Close() }, nil
}

// buildRegistry constructs the registry with the full tool surface wired to
// the configured gate and runner.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()

	err := tools.Register(reg, tools.Options{
		Gate:   gate.New(cfg.AllowedCommands),
		Runner: runner.New(cfg.ProjectPath, cfg.CommandTimeout()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return reg, nil
}
