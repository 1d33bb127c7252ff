// Package plane implements the coordinate-plane engine: the logical/pixel
// viewport transform, grid layout, pointer and drag handling, and the hub
// that keeps every representation of the marker position in sync.
package plane

import "math"

// Default viewport values.
const (
	DefaultMin  = -10.0
	DefaultMax  = 10.0
	DefaultStep = 1.0

	DefaultMinSpan = 1e-6
	DefaultMaxSpan = 1e9

	// Zoom factors for a wheel notch or key press. Below 1 zooms in.
	DefaultZoomIn  = 0.8
	DefaultZoomOut = 1.25
)

// Point is a 2D point in either logical or pixel space.
type Point struct {
	X float64
	Y float64
}

// Viewport maps the logical region [XMin,XMax]×[YMin,YMax] onto a render
// surface of Width×Height pixels. Pixel y grows downward.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	Step       float64

	Width  float64
	Height float64

	// MinSpan and MaxSpan bound the axis spans reachable through Zoom.
	MinSpan float64
	MaxSpan float64
}

// RangeCorrection reports which values ApplyRange had to auto-correct.
type RangeCorrection struct {
	XMax bool
	YMax bool
	Step bool
}

// Any reports whether at least one value was corrected.
func (c RangeCorrection) Any() bool { return c.XMax || c.YMax || c.Step }

// NewViewport returns a viewport over [-10,10]×[-10,10] with step 1 and no
// surface yet.
func NewViewport() Viewport {
	return Viewport{
		XMin:    DefaultMin,
		XMax:    DefaultMax,
		YMin:    DefaultMin,
		YMax:    DefaultMax,
		Step:    DefaultStep,
		MinSpan: DefaultMinSpan,
		MaxSpan: DefaultMaxSpan,
	}
}

// HasSurface reports whether both surface dimensions are positive.
func (v Viewport) HasSurface() bool {
	return v.Width > 0 && v.Height > 0
}

// Resize records a new surface size. Negative sizes are stored as zero.
func (v *Viewport) Resize(width, height float64) {
	v.Width = math.Max(0, width)
	v.Height = math.Max(0, height)
}

// ToPixel converts a logical point to surface pixels. ok is false when the
// surface has no area yet.
func (v Viewport) ToPixel(x, y float64) (px, py float64, ok bool) {
	if !v.HasSurface() {
		return 0, 0, false
	}
	px = (x - v.XMin) * v.Width / (v.XMax - v.XMin)
	py = v.Height - (y - v.YMin)*v.Height/(v.YMax-v.YMin)
	return px, py, true
}

// ToLogical is the inverse of ToPixel.
func (v Viewport) ToLogical(px, py float64) (x, y float64, ok bool) {
	if !v.HasSurface() {
		return 0, 0, false
	}
	x = v.XMin + px*(v.XMax-v.XMin)/v.Width
	y = v.YMin + (v.Height-py)*(v.YMax-v.YMin)/v.Height
	return x, y, true
}

// Center returns the logical centre of the visible region.
func (v Viewport) Center() Point {
	return Point{X: (v.XMin + v.XMax) / 2, Y: (v.YMin + v.YMax) / 2}
}

// Clamp forces a logical point into the visible region.
func (v Viewport) Clamp(x, y float64) (float64, float64) {
	return clamp(x, v.XMin, v.XMax), clamp(y, v.YMin, v.YMax)
}

// Contains reports whether the logical point lies inside the region.
func (v Viewport) Contains(x, y float64) bool {
	return x >= v.XMin && x <= v.XMax && y >= v.YMin && y <= v.YMax
}

// XAxisVisible reports whether the line y=0 is inside the vertical range.
func (v Viewport) XAxisVisible() bool {
	return 0 >= v.YMin && 0 <= v.YMax
}

// YAxisVisible reports whether the line x=0 is inside the horizontal range.
func (v Viewport) YAxisVisible() bool {
	return 0 >= v.XMin && 0 <= v.XMax
}

// Zoom rescales both axis ranges by factor around center. A factor below 1
// zooms in. The zoom is refused, and false returned, when the factor is not
// positive or a resulting span would leave [MinSpan, MaxSpan].
func (v *Viewport) Zoom(factor float64, center Point) bool {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return false
	}

	newWidth := (v.XMax - v.XMin) * factor
	newHeight := (v.YMax - v.YMin) * factor
	if !v.spanAllowed(newWidth) || !v.spanAllowed(newHeight) {
		return false
	}

	v.XMin = center.X - (center.X-v.XMin)*factor
	v.XMax = v.XMin + newWidth
	v.YMin = center.Y - (center.Y-v.YMin)*factor
	v.YMax = v.YMin + newHeight
	return true
}

func (v Viewport) spanAllowed(span float64) bool {
	if v.MinSpan > 0 && span < v.MinSpan {
		return false
	}
	if v.MaxSpan > 0 && span > v.MaxSpan {
		return false
	}
	return true
}

// ApplyRange replaces the logical range and grid step. A max that is not
// above its min becomes min+1 and a non-positive step becomes 1.
func (v *Viewport) ApplyRange(xMin, xMax, yMin, yMax, step float64) RangeCorrection {
	var c RangeCorrection

	if !(xMax > xMin) {
		xMax = xMin + 1
		c.XMax = true
	}
	if !(yMax > yMin) {
		yMax = yMin + 1
		c.YMax = true
	}
	if !(step > 0) || math.IsInf(step, 0) {
		step = DefaultStep
		c.Step = true
	}

	v.XMin, v.XMax = xMin, xMax
	v.YMin, v.YMax = yMin, yMax
	v.Step = step
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
