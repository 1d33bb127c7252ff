package plane

import "math"

// DefaultRadius is the marker radius in pixels before any point-size change.
const DefaultRadius = 7.0

// hitSlop widens the marker hit area by a couple of pixels.
const hitSlop = 2.0

// Pointer is the marker's logical position and on-screen radius.
type Pointer struct {
	X      float64
	Y      float64
	Radius float64
}

// NewPointer returns a pointer at the origin with the default radius.
func NewPointer() Pointer {
	return Pointer{Radius: DefaultRadius}
}

// Position returns the logical position as a point.
func (p Pointer) Position() Point { return Point{X: p.X, Y: p.Y} }

// MoveTo sets the position clamped into the viewport bounds.
func (p *Pointer) MoveTo(v Viewport, x, y float64) {
	p.X, p.Y = v.Clamp(x, y)
}

// Hit reports whether the pixel lies within the marker radius, with a small
// forgiveness margin, of the marker centre.
func (p Pointer) Hit(center, at Point) bool {
	dx := at.X - center.X
	dy := at.Y - center.Y
	r := p.Radius + hitSlop
	return dx*dx+dy*dy <= r*r
}

// Snap rounds each coordinate to the nearest multiple of step. A
// non-positive step leaves the point unchanged.
func Snap(p Point, step float64) Point {
	if !(step > 0) {
		return p
	}
	return Point{
		X: math.Round(p.X/step) * step,
		Y: math.Round(p.Y/step) * step,
	}
}
