package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := NewTextField("Min", "", "")
		f2 := NewTextField("Max", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"min", "max"})

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.Equal(t, "min", d.FocusedKey())
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty", []Field{}, []string{})
		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.Empty(t, d.FormValues())
		assert.Empty(t, d.FocusedKey())
	})

	t.Run("tab cycles focus and wraps", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		f3 := NewTextField("C", "", "")
		d := NewDialog("Test", []Field{f1, f2, f3}, []string{"a", "b", "c"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f2.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f3.Focused())

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		assert.True(t, f1.Focused())
		assert.False(t, f3.Focused())
		assert.False(t, d.Submitted(), "tab never submits")
	})

	t.Run("shift+tab retreats focus and wraps", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f2.Focused())
		assert.False(t, f1.Focused())
		assert.Equal(t, "b", d.FocusedKey())
	})

	t.Run("enter submits and resume reopens", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.True(t, d.Submitted())

		d.Resume()
		assert.False(t, d.Submitted())
	})

	t.Run("escape cancels", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		assert.True(t, d.Cancelled())
		assert.False(t, d.Submitted())
	})

	t.Run("typing reaches the focused field", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tea.KeyPressMsg(tea.Key{Code: '7', Text: "7"}))
		assert.Equal(t, "7", f1.Value())
	})

	t.Run("FormValues and Field", func(t *testing.T) {
		f1 := NewTextField("Min", "", "-4")
		f2 := NewSelectFormField("Mode", []string{"real", "integer"}, "integer")
		d := NewDialog("Test", []Field{f1, f2}, []string{"min", "mode"})

		vals := d.FormValues()
		assert.Equal(t, "-4", vals["min"])
		assert.Equal(t, "integer", vals["mode"])
		assert.Same(t, f2, d.Field("mode"))
		assert.Nil(t, d.Field("missing"))
	})

	t.Run("view shows fields message and help", func(t *testing.T) {
		f1 := NewTextField("Min", "", "")
		f2 := NewSelectFormField("Mode", []string{"even", "odd"}, "")
		d := NewDialog("Range", []Field{f1, f2}, []string{"min", "mode"})
		d.Message = "min must be smaller than max"

		view := d.View()
		assert.Contains(t, view, "Min")
		assert.Contains(t, view, "Mode")
		assert.Contains(t, view, "min must be smaller than max")
		assert.Contains(t, view, "tab")
	})
}
