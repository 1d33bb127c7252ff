package plane

import "math"

const (
	// DefaultCalloutGap is the distance between the marker edge and the callout.
	DefaultCalloutGap = 6.0

	calloutMargin = 2.0
)

// Size is a measured width and height in pixels.
type Size struct {
	W, H float64
}

// Measurer reports the rendered size of callout text. The render surface
// supplies it since only it knows the font metrics.
type Measurer interface {
	Measure(text string, fontSize float64) Size
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, fontSize float64) Size

func (f MeasureFunc) Measure(text string, fontSize float64) Size { return f(text, fontSize) }

// PlaceCallout returns the top-left anchor for a callout of the given size
// next to a marker at center with radius r on a w×h surface.
//
// The callout prefers the upper right of the marker. It flips to the left
// when it would overflow the right edge and pins to the margin if that still
// overflows. Vertically it drops below the marker when it would leave the
// top, and pins to the bottom margin if that overflows.
func PlaceCallout(center Point, r, gap float64, size Size, w, h float64) Point {
	left := center.X + r + gap
	top := center.Y - r - gap - size.H

	if left+size.W > w {
		left = center.X - r - gap - size.W
	}
	if left < 0 {
		left = calloutMargin
	}

	if top < 0 {
		top = center.Y + r + gap
	}
	if top+size.H > h {
		top = math.Max(calloutMargin, h-size.H-calloutMargin)
	}

	return Point{X: left, Y: top}
}

// CalloutText formats a logical position the way the callout shows it.
func CalloutText(x, y float64) string {
	return "(" + FormatValue(x) + ", " + FormatValue(y) + ")"
}
