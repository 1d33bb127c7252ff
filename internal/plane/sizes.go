package plane

// SizeControl is a slider with user-editable bounds, used for the label font
// size and the marker point size.
type SizeControl struct {
	Min   float64
	Max   float64
	Value float64
}

// SetBounds applies new bounds when min < max and pulls the value inside
// them. It returns false and leaves the control untouched otherwise.
func (c *SizeControl) SetBounds(minV, maxV float64) bool {
	if !(minV < maxV) {
		return false
	}
	c.Min, c.Max = minV, maxV
	c.Value = clamp(c.Value, minV, maxV)
	return true
}

// Set moves the slider, clamped to the bounds.
func (c *SizeControl) Set(v float64) {
	c.Value = clamp(v, c.Min, c.Max)
}
