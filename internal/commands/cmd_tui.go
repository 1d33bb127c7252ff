package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/planar/internal/core/config"
	"github.com/colonyops/planar/internal/store/presets"
	"github.com/colonyops/planar/internal/tui"
	"github.com/colonyops/planar/pkg/logutils"
)

type TuiCmd struct {
	flags   *Flags
	noWatch bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the config file when it changes",
			Sources:     cli.EnvVars("PLANAR_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	// Console logs would tear the alt screen; hold them until the program exits.
	logger := log.Logger
	if cmd.flags.LogFile == logutils.Console {
		var flush func() error
		logger, flush = logutils.Defer(log.Logger, os.Stderr)
		defer func() { _ = flush() }()
	}

	var watcher *config.Watcher
	if !cmd.noWatch {
		w, err := config.NewWatcher(cmd.flags.ConfigPath, cfg.DataDir, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("config watcher disabled")
		} else {
			watcher = w
			defer func() { _ = watcher.Close() }()
		}
	}

	m := tui.New(tui.Options{
		Config:  cfg,
		Presets: presets.New(cfg.PresetsFile()),
		Watcher: watcher,
		Logger:  logger,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
