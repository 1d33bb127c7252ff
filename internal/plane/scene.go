package plane

// Stroke weights used by the grid and the marker guides.
const (
	StrokeGrid  = 0.6
	StrokeZero  = 1.2
	StrokeAxis  = 1.4
	StrokeGuide = 0.8
)

// Command is one drawable primitive handed to the render collaborator.
type Command interface {
	command()
}

// Line is a straight stroke between two pixel points.
type Line struct {
	P1, P2 Point
	Weight float64
	Dashed bool
	// Axis marks lines drawn for a coordinate axis.
	Axis bool
}

// Label is a piece of text anchored at its top-left pixel.
type Label struct {
	Text     string
	Anchor   Point
	FontSize float64
	Bold     bool
}

// Marker is the draggable point.
type Marker struct {
	Center Point
	Radius float64
}

// Callout is the floating coordinate readout next to the marker.
type Callout struct {
	Anchor   Point
	Size     Size
	Text     string
	FontSize float64
}

func (Line) command()    {}
func (Label) command()   {}
func (Marker) command()  {}
func (Callout) command() {}

// Scene is the render-ready state of the plane. Grid primitives are
// regenerated wholesale on every layout pass and carry a version; the marker,
// callout and guide lines live in stable slots that layout never touches.
type Scene struct {
	version uint64
	grid    []Command

	Marker  *Marker
	Callout *Callout
	GuideH  *Line
	GuideV  *Line
}

// Version increments on every grid regeneration.
func (s *Scene) Version() uint64 { return s.version }

// Grid returns the current grid primitives.
func (s *Scene) Grid() []Command { return s.grid }

// ReplaceGrid swaps in a freshly generated set of grid primitives.
func (s *Scene) ReplaceGrid(cmds []Command) {
	s.grid = cmds
	s.version++
}

// ClearSlots empties the marker, callout and guide slots.
func (s *Scene) ClearSlots() {
	s.Marker = nil
	s.Callout = nil
	s.GuideH = nil
	s.GuideV = nil
}

// Commands returns every primitive in paint order: grid first, then guides,
// marker and callout.
func (s *Scene) Commands() []Command {
	out := make([]Command, 0, len(s.grid)+4)
	out = append(out, s.grid...)
	if s.GuideH != nil {
		out = append(out, *s.GuideH)
	}
	if s.GuideV != nil {
		out = append(out, *s.GuideV)
	}
	if s.Marker != nil {
		out = append(out, *s.Marker)
	}
	if s.Callout != nil {
		out = append(out, *s.Callout)
	}
	return out
}
