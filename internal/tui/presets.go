package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/planar/internal/rounding"
	"github.com/colonyops/planar/internal/store/presets"
)

const presetTimeout = 2 * time.Second

type presetsLoadedMsg struct {
	configs []rounding.RangeConfig
	err     error
}

type presetSavedMsg struct {
	axis string
	err  error
}

func loadPresets(store *presets.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), presetTimeout)
		defer cancel()

		configs, err := store.List(ctx)
		return presetsLoadedMsg{configs: configs, err: err}
	}
}

func savePreset(store *presets.Store, cfg rounding.RangeConfig) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), presetTimeout)
		defer cancel()

		return presetSavedMsg{axis: cfg.Axis, err: store.Save(ctx, cfg)}
	}
}

func (m Model) handlePresetsLoaded(msg presetsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("load presets")
		return m.notify(LevelError, "load range presets: "+msg.err.Error())
	}

	for _, cfg := range msg.configs {
		if err := m.applyRange(cfg); err != nil {
			m.log.Warn().Err(err).Str("axis", cfg.Axis).Msg("skip preset")
		}
	}
	return m, nil
}
