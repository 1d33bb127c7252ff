package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestSelectFormField(t *testing.T) {
	options := []string{"real", "integer", "even", "odd"}

	t.Run("creation with no default", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "")
		assert.Equal(t, "Mode", f.Label())
		assert.False(t, f.Focused())
		assert.Equal(t, "real", f.Value())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "even")
		assert.Equal(t, "even", f.Value())
	})

	t.Run("unknown default falls back to first", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "prime")
		assert.Equal(t, "real", f.Value())
	})

	t.Run("empty options", func(t *testing.T) {
		f := NewSelectFormField("Mode", []string{}, "")
		assert.Empty(t, f.Value())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "")
		field, _ := f.Update(tea.KeyPressMsg(tea.Key{Code: 'j', Text: "j"}))
		assert.Equal(t, "real", field.Value())
	})

	t.Run("down moves the selection when focused", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "")
		f.Focus()

		field, _ := f.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}))
		assert.Equal(t, "integer", field.Value())
	})

	t.Run("set value", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "")
		f.SetValue("odd")
		assert.Equal(t, "odd", f.Value())

		f.SetValue("nope")
		assert.Equal(t, "odd", f.Value())
	})

	t.Run("view renders", func(t *testing.T) {
		f := NewSelectFormField("Mode", options, "")
		view := f.View()
		assert.Contains(t, view, "Mode")
		assert.Contains(t, view, "integer")
	})
}
