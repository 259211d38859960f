// Package commands implements the ddlsync subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ddlsync/internal/cli/config"
	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/leapstack-labs/ddlsync/internal/engine"
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
// The returned cleanup function must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cctx, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(engine.Config{
		TablesDir:     cctx.Cfg.TablesDir,
		StatePath:     cctx.Cfg.StatePath,
		Environment:   cctx.Cfg.Environment,
		Target:        cctx.Cfg.Target,
		Introspection: cctx.Cfg.Introspection,
		Logger:        cctx.Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	cctx.Engine = eng

	cleanup := func() {
		if err := eng.Close(); err != nil {
			cctx.Logger.Warn("failed to close engine", slog.String("error", err.Error()))
		}
	}
	return cctx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine,
// for commands that never touch the warehouse.
func NewCommandContextWithoutEngine(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}, nil
}
