package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/planar/internal/core/config"
	"github.com/colonyops/planar/internal/core/styles"
)

type configReloadMsg struct {
	reload config.Reload
}

// waitForReload blocks until the watcher reports a config change. It
// returns nil once the watcher is closed.
func waitForReload(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-w.Events()
		if !ok {
			return nil
		}
		return configReloadMsg{reload: r}
	}
}

func (m Model) handleConfigReload(msg configReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.watcher)

	if err := msg.reload.Err; err != nil {
		m.log.Warn().Err(err).Msg("config reload rejected")
		model, cmd := m.notify(LevelWarning, "config not reloaded: "+err.Error())
		return model, tea.Batch(cmd, next)
	}

	cfg := msg.reload.Config
	m.cfg = cfg
	styles.SetThemeName(cfg.TUI.Theme)
	m.hub.SetSnap(cfg.Plane.Snap)
	m.log.Info().Str("theme", cfg.TUI.Theme).Bool("snap", cfg.Plane.Snap).Msg("config reloaded")

	model, cmd := m.notify(LevelInfo, "config reloaded")
	return model, tea.Batch(cmd, next)
}
