package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/config"
	"github.com/tonality-labs/tonality/internal/cli/output"
	"github.com/tonality-labs/tonality/internal/engine"
	"github.com/tonality-labs/tonality/internal/registry"
	"github.com/tonality-labs/tonality/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Store    *state.SQLiteStore
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine, session store,
// and renderer. Persisted session registrations are loaded into the
// engine's registry. Returns the context and a cleanup function that must
// be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx, err := NewCommandContextWithoutState(cmd)
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(cmdCtx.Cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := store.LoadRegistry(cmdCtx.Engine.Session()); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load session state: %w", err)
	}
	cmdCtx.Store = store

	cleanup := func() {
		_ = store.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutState creates a CommandContext without opening
// the session database. Useful for commands that only read the built-in
// catalogs.
func NewCommandContextWithoutState(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := engine.New(engine.Config{
		Logger:  logger,
		Session: registry.New(),
	})
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, nil
}

// openStore opens the session database, creating its directory and schema
// as needed.
func openStore(cfg *config.Config) (*state.SQLiteStore, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize session schema: %w", err)
	}
	return store, nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		StatePath:    getEnvOrDefault("TONALITY_STATE_PATH", config.DefaultStateFile),
		Spelling:     getEnvOrDefault("TONALITY_SPELLING", config.DefaultSpelling),
		Verbose:      os.Getenv("TONALITY_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("TONALITY_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
