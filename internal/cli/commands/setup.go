// Package commands implements the feedlift subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/feedlift/feedlift/internal/cli/config"
	"github.com/feedlift/feedlift/internal/cli/output"
	"github.com/feedlift/feedlift/internal/engine"
	"github.com/feedlift/feedlift/internal/state"
	"github.com/feedlift/feedlift/internal/transform"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically
// via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Engine = eng

	cleanup := func() {
		_ = eng.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't need store access.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// Config validation already constrained the format; an unparsable value
	// can only come from the env fallback path, so render it as a table.
	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		mode = output.ModeTable
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		StatePath:     getEnvOrDefault("FEEDLIFT_STATE_PATH", config.DefaultStateFile),
		Driver:        getEnvOrDefault("FEEDLIFT_DRIVER", config.DefaultDriver),
		DSN:           os.Getenv("FEEDLIFT_DSN"),
		TransformsDir: os.Getenv("FEEDLIFT_TRANSFORMS_DIR"),
		Workers:       config.DefaultWorkers,
		Output:        config.DefaultOutput,
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// createEngine opens the configured store, migrates it and builds an engine
// around it. The engine takes ownership of the store.
func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	var store *state.SQLStore
	switch cfg.Driver {
	case "postgres":
		store = state.NewPostgresStore(logger)
	default:
		// Ensure the state directory exists
		stateDir := filepath.Dir(cfg.StatePath)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		store = state.NewSQLiteStore(logger)
	}

	if err := store.Open(cfg.StoreTarget()); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}

	transforms := transform.Default(logger)
	if cfg.TransformsDir != "" {
		if err := transforms.LoadDir(cfg.TransformsDir); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to load custom transforms: %w", err)
		}
	}

	return engine.New(engine.Config{
		Store:      store,
		Transforms: transforms,
		Logger:     logger,
		Workers:    cfg.Workers,
	})
}
