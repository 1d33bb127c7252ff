// Package tui renders the coordinate plane in a terminal: the plane surface,
// the side panel of bound fields and sliders, and the range dialog.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/planar/internal/core/config"
	"github.com/colonyops/planar/internal/core/logging"
	"github.com/colonyops/planar/internal/plane"
	"github.com/colonyops/planar/internal/rounding"
	"github.com/colonyops/planar/internal/store/presets"
)

// Space taken by the surface border, the status line and the help line.
const (
	chromeCols = 2
	chromeRows = 4
)

// Options configures the TUI.
type Options struct {
	Config  *config.Config
	Presets *presets.Store  // optional, range presets are not persisted when nil
	Watcher *config.Watcher // optional, config hot reload
	Logger  zerolog.Logger
}

// Model is the bubbletea model for the plane view.
type Model struct {
	cfg     *config.Config
	hub     *plane.Hub
	ctl     *Controls
	capture *pointerCapture
	keys    keyMap
	help    help.Model

	presets *presets.Store
	watcher *config.Watcher

	ranges map[plane.Axis]rounding.RangeConfig
	exprs  map[plane.Axis]*rounding.Expression
	dialog *rangeDialog
	toasts *ToastController

	showHelp bool
	quitting bool

	width, height int
	cols, rows    int

	log zerolog.Logger
}

// pointerCapture records whether a drag owns the mouse. While captured,
// motion outside the surface is still delivered, clamped to its edge.
type pointerCapture struct {
	active bool
}

func (c *pointerCapture) CapturePointer() { c.active = true }
func (c *pointerCapture) ReleasePointer() { c.active = false }

// New builds the model and its hub from the configuration.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	m := Model{
		cfg:     cfg,
		ctl:     NewControls(),
		capture: &pointerCapture{},
		keys:    newKeyMap(),
		help:    help.New(),
		presets: opts.Presets,
		watcher: opts.Watcher,
		ranges:  make(map[plane.Axis]rounding.RangeConfig),
		exprs:   make(map[plane.Axis]*rounding.Expression),
		toasts:  NewToastController(),
		log:     logging.Scoped(opts.Logger, "tui"),
	}

	vp := plane.NewViewport()
	vp.XMin, vp.XMax = cfg.Plane.XMin, cfg.Plane.XMax
	vp.YMin, vp.YMax = cfg.Plane.YMin, cfg.Plane.YMax
	vp.Step = cfg.Plane.Step
	vp.MinSpan, vp.MaxSpan = cfg.Zoom.MinSpan, cfg.Zoom.MaxSpan

	m.hub = plane.NewHub(plane.Options{
		Viewport:    vp,
		Start:       plane.Point{X: cfg.Plane.X, Y: cfg.Plane.Y},
		Snap:        cfg.Plane.Snap,
		CalloutGap:  cfg.Callout.Gap,
		ZoomIn:      cfg.Zoom.In,
		ZoomOut:     cfg.Zoom.Out,
		Font:        plane.SizeControl(cfg.Sizes.Font),
		PointSize:   plane.SizeControl(cfg.Sizes.Point),
		RadiusScale: cfg.Sizes.RadiusScale,
		Binder:      m.ctl,
		Measurer:    cellMeasurer{},
		Capture:     m.capture,
		Logger:      logging.Scoped(opts.Logger, "plane"),
	})

	return m
}

// Hub exposes the engine behind the view.
func (m Model) Hub() *plane.Hub { return m.hub }

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadPresets(m.presets), waitForReload(m.watcher))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cols = max(m.width-panelWidth-chromeCols, 0)
		m.rows = max(m.height-chromeRows, 0)
		m.help.SetWidth(m.width)
		m.hub.Resize(float64(m.cols*CellWidth), float64(m.rows*CellHeight))
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if m.dialog == nil {
			m.handleMouse(msg.(tea.MouseMsg))
		}
		return m, nil

	case tea.BlurMsg:
		m.hub.CaptureLost()
		return m, nil

	case presetsLoadedMsg:
		return m.handlePresetsLoaded(msg)

	case presetSavedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("axis", msg.axis).Msg("save preset")
			return m.notify(LevelError, fmt.Sprintf("save %s range: %v", msg.axis, msg.err))
		}
		return m.notify(LevelInfo, fmt.Sprintf("saved %s range", msg.axis))

	case configReloadMsg:
		return m.handleConfigReload(msg)

	case toastTickMsg:
		return m, m.toasts.HandleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil {
		cmd := m.dialog.Update(msg)
		if m.dialog.Done() {
			return m.finishRangeDialog(cmd)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		return m, m.ctl.Next()
	case key.Matches(msg, m.keys.Prev):
		return m, m.ctl.Prev()
	case key.Matches(msg, m.keys.Blur):
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.ctl.HasFocus():
			m.ctl.Blur()
		default:
			m.toasts.Dismiss()
		}
		return m, nil
	}

	if _, ok := m.ctl.FocusedField(); ok {
		id, text, changed, cmd := m.ctl.UpdateField(msg)
		if changed {
			m.hub.TextChanged(id, text)
			m.log.Debug().Stringer("field", id).Str("text", text).Stringer("controls", m.ctl).Msg("field edited")
		}
		return m, cmd
	}

	if id, ok := m.ctl.FocusedSlider(); ok {
		notch := 0
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Down):
			notch = -1
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Up):
			notch = 1
		}
		if notch != 0 {
			m.hub.SliderChanged(id, m.ctl.Slider(id).Nudge(notch))
			return m, nil
		}
	}

	return m.handleGlobalKey(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	step := m.hub.Viewport().Step
	ptr := m.hub.Pointer()

	switch {
	case key.Matches(msg, m.keys.Left):
		m.hub.Commit(ptr.X-step, ptr.Y, plane.Programmatic)
	case key.Matches(msg, m.keys.Right):
		m.hub.Commit(ptr.X+step, ptr.Y, plane.Programmatic)
	case key.Matches(msg, m.keys.Up):
		m.hub.Commit(ptr.X, ptr.Y+step, plane.Programmatic)
	case key.Matches(msg, m.keys.Down):
		m.hub.Commit(ptr.X, ptr.Y-step, plane.Programmatic)
	case key.Matches(msg, m.keys.Snap):
		m.hub.SetSnap(!m.hub.Snap())
	case key.Matches(msg, m.keys.ZoomIn):
		if !m.hub.ZoomIn() {
			return m.notify(LevelWarning, "zoom limit reached")
		}
	case key.Matches(msg, m.keys.ZoomOut):
		if !m.hub.ZoomOut() {
			return m.notify(LevelWarning, "zoom limit reached")
		}
	case key.Matches(msg, m.keys.RangeX):
		m.openRangeDialog(plane.AxisX)
	case key.Matches(msg, m.keys.RangeY):
		m.openRangeDialog(plane.AxisY)
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	mouse := msg.Mouse()
	col, row, inside := m.surfaceCell(mouse.X, mouse.Y)

	switch msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft || !inside {
			return
		}
		m.ctl.Blur()
		p := pixelOf(col, row)
		m.hub.PointerDown(p.X, p.Y)
	case tea.MouseMotionMsg:
		if !m.capture.active {
			return
		}
		p := pixelOf(col, row)
		m.hub.PointerMove(p.X, p.Y)
	case tea.MouseReleaseMsg:
		p := pixelOf(col, row)
		m.hub.PointerUp(p.X, p.Y)
	case tea.MouseWheelMsg:
		if !inside {
			return
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.hub.Wheel(1)
		case tea.MouseWheelDown:
			m.hub.Wheel(-1)
		}
	}
}

// surfaceCell maps a terminal cell to a surface cell, clamped to the
// surface. inside reports whether the cell was on the surface at all.
func (m Model) surfaceCell(x, y int) (col, row int, inside bool) {
	col, row = x-1, y-1
	inside = col >= 0 && row >= 0 && col < m.cols && row < m.rows
	col = min(max(col, 0), max(m.cols-1, 0))
	row = min(max(row, 0), max(m.rows-1, 0))
	return col, row, inside
}

func (m *Model) openRangeDialog(axis plane.Axis) {
	cfg, ok := m.ranges[axis]
	if !ok {
		vp := m.hub.Viewport()
		lo, hi := vp.XMin, vp.XMax
		if axis == plane.AxisY {
			lo, hi = vp.YMin, vp.YMax
		}
		cfg = rounding.DefaultConfig(axis.String(), lo, hi, vp.Step)
	}
	m.ctl.Blur()
	m.dialog = newRangeDialog(cfg)
}

func (m Model) finishRangeDialog(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	cfg, err := m.dialog.Result()
	m.dialog = nil
	if errors.Is(err, rounding.ErrCancelled) {
		return m, cmd
	}
	if err != nil {
		return m.notify(LevelError, err.Error())
	}

	if err := m.applyRange(cfg); err != nil {
		return m.notify(LevelError, err.Error())
	}
	return m, tea.Batch(cmd, savePreset(m.presets, cfg))
}

// applyRange installs a confirmed range config: the axis bounds and step,
// the axis quantizer and the derived expression.
func (m *Model) applyRange(cfg rounding.RangeConfig) error {
	axis, ok := parseAxis(cfg.Axis)
	if !ok {
		return fmt.Errorf("unknown axis %q", cfg.Axis)
	}
	lo, hi, err := cfg.Bounds()
	if err != nil {
		return err
	}
	expr, err := cfg.CompiledExpression()
	if err != nil {
		return err
	}

	c := m.hub.ApplyAxisRange(axis, lo, hi, cfg.Step)
	m.hub.SetQuantizer(axis, cfg.Mode)
	m.ranges[axis] = cfg
	if expr != nil {
		m.exprs[axis] = expr
	} else {
		delete(m.exprs, axis)
	}

	m.log.Info().
		Str("axis", cfg.Axis).
		Str("mode", cfg.Mode.Name()).
		Float64("min", lo).
		Float64("max", hi).
		Float64("step", cfg.Step).
		Bool("corrected", c.Any()).
		Msg("range applied")
	return nil
}

func (m Model) notify(level Level, message string) (tea.Model, tea.Cmd) {
	m.toasts.Push(Notice{Level: level, Message: message})
	return m, m.toasts.StartTicking()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func parseAxis(name string) (plane.Axis, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "X":
		return plane.AxisX, true
	case "Y":
		return plane.AxisY, true
	}
	return 0, false
}
