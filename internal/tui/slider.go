package tui

import (
	"math"
	"strings"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/plane"
)

// sliderNotches is how many key presses move a slider across its range.
const sliderNotches = 20

// Slider is a horizontal track with a knob, moved with the arrow keys.
type Slider struct {
	label   string
	min     float64
	max     float64
	value   float64
	width   int
	focused bool
}

// NewSlider returns a slider over [0,1] with a track width of width cells.
func NewSlider(label string, width int) *Slider {
	return &Slider{label: label, max: 1, width: max(width, 3)}
}

func (s *Slider) Label() string  { return s.label }
func (s *Slider) Value() float64 { return s.value }
func (s *Slider) Min() float64   { return s.min }
func (s *Slider) Max() float64   { return s.max }
func (s *Slider) Focus()         { s.focused = true }
func (s *Slider) Blur()          { s.focused = false }
func (s *Slider) Focused() bool  { return s.focused }

// SetBounds changes the range and pulls the value inside it. Bounds with
// min >= max are ignored.
func (s *Slider) SetBounds(lo, hi float64) {
	if !(lo < hi) {
		return
	}
	s.min, s.max = lo, hi
	s.value = math.Min(math.Max(s.value, lo), hi)
}

// SetValue moves the knob, clamped to the bounds.
func (s *Slider) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.value = math.Min(math.Max(v, s.min), s.max)
}

// Nudge moves the knob by n notches and returns the new value.
func (s *Slider) Nudge(n int) float64 {
	s.SetValue(s.value + float64(n)*(s.max-s.min)/sliderNotches)
	return s.value
}

func (s *Slider) knob() int {
	span := s.max - s.min
	if span <= 0 {
		return 0
	}
	return int(math.Round((s.value - s.min) / span * float64(s.width-1)))
}

// View renders the track and knob followed by the current value.
func (s *Slider) View() string {
	k := s.knob()
	left := strings.Repeat("─", k)
	right := strings.Repeat("─", s.width-1-k)

	knob := styles.SliderKnobStyle.Render("●")
	if !s.focused {
		knob = styles.TextMutedStyle.Render("○")
	}

	return styles.SliderTrackStyle.Render(left) + knob +
		styles.SliderTrackStyle.Render(right) + " " + plane.FormatValue(s.value)
}
