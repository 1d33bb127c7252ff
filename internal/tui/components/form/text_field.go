package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/planar/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	input   textinput.Model
	label   string
	focused bool
	allow   func(string) bool
	err     string
}

// NewTextField creates a new single-line text input field.
func NewTextField(label, placeholder, defaultVal string) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.SetWidth(24)

	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	return &TextField{
		input: ti,
		label: label,
	}
}

// WithFilter installs a keystroke filter. An edit that produces text the
// filter rejects is undone before anyone sees it.
func (f *TextField) WithFilter(allow func(string) bool) *TextField {
	f.allow = allow
	return f
}

// SetError shows msg under the field. An empty msg clears it.
func (f *TextField) SetError(msg string) { f.err = msg }

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	before, pos := f.input.Value(), f.input.Position()

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	if f.allow != nil && !f.allow(f.input.Value()) {
		f.input.SetValue(before)
		f.input.SetCursor(pos)
	}
	return f, cmd
}

func (f *TextField) View() string {
	titleStyle := styles.TextMutedStyle
	if f.focused {
		titleStyle = styles.FormTitleStyle
	}
	parts := []string{titleStyle.Render(f.label), f.input.View()}
	if f.err != "" {
		parts = append(parts, styles.FormErrorStyle.Render(f.err))
	}

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// InputView renders only the input line, without label or border.
func (f *TextField) InputView() string { return f.input.View() }

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

// SetValue replaces the text and keeps the cursor at the end while focused.
func (f *TextField) SetValue(v string) {
	if v == f.input.Value() {
		return
	}
	f.input.SetValue(v)
	f.input.CursorEnd()
}

func (f *TextField) Focused() bool  { return f.focused }
func (f *TextField) Value() string  { return f.input.Value() }
func (f *TextField) Label() string  { return f.label }
func (f *TextField) SetWidth(w int) { f.input.SetWidth(w) }
