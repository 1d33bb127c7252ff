package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/planar/internal/core/styles"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

// Level is the severity of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Notice is a short message shown as a toast in the lower-right corner.
type Notice struct {
	Level   Level
	Message string
}

type toast struct {
	notice    Notice
	remaining time.Duration
}

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastController manages the lifecycle of active toasts: push, eviction,
// TTL countdown and dismissal.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notice to the stack, evicting the oldest beyond defaultMaxToasts.
func (c *ToastController) Push(n Notice) {
	c.toasts = append(c.toasts, toast{notice: n, remaining: defaultToastTTL})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool { return len(c.toasts) > 0 }

// Notices returns the active notices, oldest first.
func (c *ToastController) Notices() []Notice {
	out := make([]Notice, len(c.toasts))
	for i, t := range c.toasts {
		out[i] = t.notice
	}
	return out
}

// StartTicking returns the tick command when no tick is running yet.
func (c *ToastController) StartTicking() tea.Cmd {
	if c.ticking || len(c.toasts) == 0 {
		return nil
	}
	c.ticking = true
	return scheduleToastTick()
}

// HandleTick advances the TTLs and schedules the next tick while toasts remain.
func (c *ToastController) HandleTick() tea.Cmd {
	c.Tick(toastTickInterval)
	if len(c.toasts) == 0 {
		c.ticking = false
		return nil
	}
	return scheduleToastTick()
}

// View renders the toast stack, oldest at top.
func (c *ToastController) View() string {
	if len(c.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(c.toasts))
	for _, t := range c.toasts {
		rendered = append(rendered, renderToast(t.notice))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n Notice) string {
	var icon string
	var style lipgloss.Style

	switch n.Level {
	case LevelError:
		icon, style = "✘", styles.ToastErrorStyle
	case LevelWarning:
		icon, style = "●", styles.ToastWarningStyle
	default:
		icon, style = "✔", styles.ToastInfoStyle
	}

	return style.Width(toastWidth).Render(icon + " " + n.Message)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (c *ToastController) Overlay(background string, width, height int) string {
	content := c.View()
	if content == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(content)

	rightX := max(width-lipgloss.Width(content)-1, 0)
	bottomY := max(height-lipgloss.Height(content)-1, 0)
	toastLayer.X(rightX).Y(bottomY).Z(2)

	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}
