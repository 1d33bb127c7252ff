package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/planar/internal/core/styles"
)

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields.
type Dialog struct {
	fields       []Field
	keys         []string // parallel slice: key for each field
	focusedField int
	submitted    bool
	cancelled    bool
	Title        string
	Message      string // shown above the help line, e.g. a rejected submit
}

// NewDialog creates a form dialog with the given fields and keys.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, keys []string) *Dialog {
	d := &Dialog{
		fields: fields,
		keys:   keys,
		Title:  title,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "enter":
		d.submitted = true
		return d, nil
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with the message and help text.
func (d *Dialog) View() string {
	var parts []string
	for _, field := range d.fields {
		parts = append(parts, field.View())
	}

	if d.Message != "" {
		parts = append(parts, "", styles.FormErrorStyle.Render(d.Message))
	}

	help := styles.FormHelpStyle.Render("tab: next  shift+tab: prev  enter: confirm  esc: cancel")
	parts = append(parts, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormValues returns a map of field keys to field values.
func (d *Dialog) FormValues() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.keys[i]] = field.Value()
	}
	return result
}

// Field returns the field registered under key, or nil.
func (d *Dialog) Field(key string) Field {
	for i, k := range d.keys {
		if k == key {
			return d.fields[i]
		}
	}
	return nil
}

// FocusedKey returns the key of the focused field.
func (d *Dialog) FocusedKey() string {
	if len(d.fields) == 0 {
		return ""
	}
	return d.keys[d.focusedField]
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// Resume reopens a submitted dialog, e.g. after the submitted values were
// rejected.
func (d *Dialog) Resume() { d.submitted = false }

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}
	return d.focus((d.focusedField + 1) % len(d.fields))
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}
	return d.focus((d.focusedField + len(d.fields) - 1) % len(d.fields))
}

func (d *Dialog) focus(i int) (*Dialog, tea.Cmd) {
	d.fields[d.focusedField].Blur()
	d.focusedField = i
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}
