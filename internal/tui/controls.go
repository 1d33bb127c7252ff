package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/plane"
	"github.com/colonyops/planar/internal/rounding"
	"github.com/colonyops/planar/internal/tui/components/form"
)

const (
	panelWidth  = 34
	fieldWidth  = 14
	sliderWidth = 16
	labelWidth  = 10
)

var fieldOrder = []plane.FieldID{
	plane.FieldX,
	plane.FieldY,
	plane.FieldXMin,
	plane.FieldXMax,
	plane.FieldYMin,
	plane.FieldYMax,
	plane.FieldStep,
	plane.FieldFontMin,
	plane.FieldFontMax,
	plane.FieldPointMin,
	plane.FieldPointMax,
}

var sliderOrder = []plane.SliderID{
	plane.SliderX,
	plane.SliderY,
	plane.SliderFontSize,
	plane.SliderPointSize,
}

var fieldLabels = map[plane.FieldID]string{
	plane.FieldX:        "x",
	plane.FieldY:        "y",
	plane.FieldXMin:     "x min",
	plane.FieldXMax:     "x max",
	plane.FieldYMin:     "y min",
	plane.FieldYMax:     "y max",
	plane.FieldStep:     "step",
	plane.FieldFontMin:  "font min",
	plane.FieldFontMax:  "font max",
	plane.FieldPointMin: "point min",
	plane.FieldPointMax: "point max",
}

var sliderLabels = map[plane.SliderID]string{
	plane.SliderX:         "x",
	plane.SliderY:         "y",
	plane.SliderFontSize:  "font",
	plane.SliderPointSize: "point",
}

// Controls is the side panel of text fields and sliders. It is the hub's
// Binder: values pushed by the hub land here without being reported back.
type Controls struct {
	fields  map[plane.FieldID]*form.TextField
	sliders map[plane.SliderID]*Slider

	// focus indexes fieldOrder then sliderOrder; -1 leaves focus on the surface.
	focus int
}

// NewControls builds the panel with every field empty and nothing focused.
func NewControls() *Controls {
	c := &Controls{
		fields:  make(map[plane.FieldID]*form.TextField, len(fieldOrder)),
		sliders: make(map[plane.SliderID]*Slider, len(sliderOrder)),
		focus:   -1,
	}
	for _, id := range fieldOrder {
		allow := rounding.AllowBoundInput
		if id == plane.FieldStep {
			allow = rounding.AllowStepInput
		}
		f := form.NewTextField(fieldLabels[id], "", "").WithFilter(allow)
		f.SetWidth(fieldWidth)
		c.fields[id] = f
	}
	for _, id := range sliderOrder {
		c.sliders[id] = NewSlider(sliderLabels[id], sliderWidth)
	}
	return c
}

func (c *Controls) SetFieldText(id plane.FieldID, text string) {
	if f, ok := c.fields[id]; ok {
		f.SetValue(text)
	}
}

func (c *Controls) SetSliderValue(id plane.SliderID, v float64) {
	if s, ok := c.sliders[id]; ok {
		s.SetValue(v)
	}
}

func (c *Controls) SetSliderBounds(id plane.SliderID, lo, hi float64) {
	if s, ok := c.sliders[id]; ok {
		s.SetBounds(lo, hi)
	}
}

// Field returns the text field for id.
func (c *Controls) Field(id plane.FieldID) *form.TextField { return c.fields[id] }

// Slider returns the slider for id.
func (c *Controls) Slider(id plane.SliderID) *Slider { return c.sliders[id] }

func (c *Controls) count() int { return len(fieldOrder) + len(sliderOrder) }

// FocusedField returns the focused text field, if any.
func (c *Controls) FocusedField() (plane.FieldID, bool) {
	if c.focus >= 0 && c.focus < len(fieldOrder) {
		return fieldOrder[c.focus], true
	}
	return 0, false
}

// FocusedSlider returns the focused slider, if any.
func (c *Controls) FocusedSlider() (plane.SliderID, bool) {
	i := c.focus - len(fieldOrder)
	if i >= 0 && i < len(sliderOrder) {
		return sliderOrder[i], true
	}
	return 0, false
}

// HasFocus reports whether any control, rather than the surface, has focus.
func (c *Controls) HasFocus() bool { return c.focus >= 0 }

// Next moves focus forward through the panel and back to the surface.
func (c *Controls) Next() tea.Cmd {
	next := c.focus + 1
	if next >= c.count() {
		next = -1
	}
	return c.setFocus(next)
}

// Prev moves focus backward, wrapping from the surface to the last control.
func (c *Controls) Prev() tea.Cmd {
	prev := c.focus - 1
	if c.focus == -1 {
		prev = c.count() - 1
	}
	return c.setFocus(prev)
}

// Blur returns focus to the surface.
func (c *Controls) Blur() { c.setFocus(-1) }

func (c *Controls) setFocus(i int) tea.Cmd {
	if id, ok := c.FocusedField(); ok {
		c.fields[id].Blur()
	}
	if id, ok := c.FocusedSlider(); ok {
		c.sliders[id].Blur()
	}

	c.focus = i
	if id, ok := c.FocusedField(); ok {
		return c.fields[id].Focus()
	}
	if id, ok := c.FocusedSlider(); ok {
		c.sliders[id].Focus()
	}
	return nil
}

// UpdateField forwards msg to the focused text field and reports the field
// and its text when the edit changed it.
func (c *Controls) UpdateField(msg tea.Msg) (plane.FieldID, string, bool, tea.Cmd) {
	id, ok := c.FocusedField()
	if !ok {
		return 0, "", false, nil
	}
	f := c.fields[id]
	before := f.Value()
	_, cmd := f.Update(msg)
	after := f.Value()
	return id, after, after != before, cmd
}

// View renders the panel.
func (c *Controls) View() string {
	var lines []string

	section := func(title string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.FormTitleStyle.Render(title))
	}

	row := func(label string, focused bool, body string) {
		marker, style := "  ", styles.TextMutedStyle
		if focused {
			marker, style = styles.TextPrimaryBoldStyle.Render("> "), styles.TextForegroundBoldStyle
		}
		lines = append(lines, marker+style.Width(labelWidth).Render(label)+body)
	}

	field := func(id plane.FieldID) {
		f := c.fields[id]
		row(f.Label(), f.Focused(), f.InputView())
	}
	slider := func(id plane.SliderID) {
		s := c.sliders[id]
		row(s.Label(), s.Focused(), s.View())
	}

	section("Position")
	field(plane.FieldX)
	field(plane.FieldY)
	slider(plane.SliderX)
	slider(plane.SliderY)

	section("Range")
	for _, id := range []plane.FieldID{plane.FieldXMin, plane.FieldXMax, plane.FieldYMin, plane.FieldYMax, plane.FieldStep} {
		field(id)
	}

	section("Sizes")
	for _, id := range []plane.FieldID{plane.FieldFontMin, plane.FieldFontMax} {
		field(id)
	}
	slider(plane.SliderFontSize)
	for _, id := range []plane.FieldID{plane.FieldPointMin, plane.FieldPointMax} {
		field(id)
	}
	slider(plane.SliderPointSize)

	return lipgloss.NewStyle().Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// String is a compact dump of the field values, used in debug logs.
func (c *Controls) String() string {
	parts := make([]string, 0, len(fieldOrder))
	for _, id := range fieldOrder {
		parts = append(parts, fmt.Sprintf("%s=%q", id, c.fields[id].Value()))
	}
	return strings.Join(parts, " ")
}
