package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/plane"
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.renderMain()

	switch {
	case m.dialog != nil:
		content = overlayCenter(content, m.dialog.View(), w, h)
	case m.showHelp:
		full := m.help
		full.ShowAll = true
		box := styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render("Keys"), "", full.View(m.keys),
			styles.ModalHelpStyle.Render("? or esc to close")))
		content = overlayCenter(content, box, w, h)
	}

	content = m.toasts.Overlay(content, w, h)

	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	return v
}

func (m Model) renderMain() string {
	canvas := NewCanvas(m.cols, m.rows)
	canvas.Draw(m.hub.Scene().Commands())
	surface := styles.SurfaceStyle.Render(canvas.Render())

	body := lipgloss.JoinHorizontal(lipgloss.Top, surface, m.ctl.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine(), m.help.View(m.keys))
}

func (m Model) statusLine() string {
	ptr := m.hub.Pointer()
	parts := []string{
		"x " + plane.FormatValue(ptr.X),
		"y " + plane.FormatValue(ptr.Y),
	}

	if m.hub.Snap() {
		parts = append(parts, styles.SnapOnStyle.Render("snap"))
	} else {
		parts = append(parts, "no snap")
	}

	for _, axis := range []plane.Axis{plane.AxisX, plane.AxisY} {
		if cfg, ok := m.ranges[axis]; ok {
			parts = append(parts, axis.String()+" "+cfg.Mode.Name())
		}
	}

	raw := map[plane.Axis]float64{plane.AxisX: ptr.X, plane.AxisY: ptr.Y}
	axes := make([]plane.Axis, 0, len(m.exprs))
	for axis := range m.exprs {
		axes = append(axes, axis)
	}
	slices.Sort(axes)
	for _, axis := range axes {
		expr := m.exprs[axis]
		v, err := expr.Eval(raw[axis])
		if err != nil {
			parts = append(parts, styles.TextErrorStyle.Render(expr.String()+" = ?"))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = %s", expr, plane.FormatValue(v)))
	}

	return styles.StatusBarStyle.Render(" " + strings.Join(parts, "  "))
}

func overlayCenter(background, overlay string, w, h int) string {
	bgLayer := lipgloss.NewLayer(background)
	layer := lipgloss.NewLayer(overlay)
	x := max((w-lipgloss.Width(overlay))/2, 0)
	y := max((h-lipgloss.Height(overlay))/2, 0)
	layer.X(x).Y(y).Z(1)
	return lipgloss.NewCompositor(bgLayer, layer).Render()
}
