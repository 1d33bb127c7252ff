package plane

import (
	"math"
	"strconv"
)

const (
	// gridEpsilon absorbs floating point drift when stepping to the upper
	// bound and when deciding whether a line sits on an axis.
	gridEpsilon = 1e-9

	// MaxLinesPerAxis caps how many grid lines one axis may produce.
	MaxLinesPerAxis = 2000

	DefaultTickFontSize = 12.0
	AxisFontSize        = 14.0
)

// Orientation of a grid line.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// GridLine is one generated grid line.
type GridLine struct {
	Orientation Orientation
	Value       float64
	Pixel       float64
	IsAxis      bool
}

// TickLabel is the value label attached to a grid line.
type TickLabel struct {
	Text     string
	Anchor   Point
	FontSize float64
}

// Grid is the output of one layout pass.
type Grid struct {
	Lines  []GridLine
	Labels []TickLabel

	// Truncated is set when an axis hit MaxLinesPerAxis.
	Truncated bool

	commands []Command
}

// Commands returns the grid as draw commands in paint order.
func (g Grid) Commands() []Command { return g.commands }

// LayoutGrid generates grid lines, axis lines and labels for the viewport.
// Tick labels are only produced for a dimension when the opposite axis is
// visible, since they hang off that axis line. An empty grid is returned when
// the surface has no area.
func LayoutGrid(v Viewport, tickFontSize float64) Grid {
	var g Grid
	if !v.HasSurface() {
		return g
	}
	if tickFontSize <= 0 {
		tickFontSize = DefaultTickFontSize
	}

	w, h := v.Width, v.Height
	xScale := w / (v.XMax - v.XMin)
	yScale := h / (v.YMax - v.YMin)

	axisCol, yAxis := 0.0, v.YAxisVisible()
	if yAxis {
		axisCol = (0 - v.XMin) * xScale
	}
	axisRow, xAxis := 0.0, v.XAxisVisible()
	if xAxis {
		axisRow = h - (0-v.YMin)*yScale
	}

	for i := 0; ; i++ {
		x := v.XMin + float64(i)*v.Step
		if x > v.XMax+gridEpsilon {
			break
		}
		if i >= MaxLinesPerAxis {
			g.Truncated = true
			break
		}

		px := (x - v.XMin) * xScale
		g.addLine(GridLine{Orientation: Vertical, Value: x, Pixel: px, IsAxis: math.Abs(x) < gridEpsilon},
			Point{px, 0}, Point{px, h})

		if xAxis {
			g.addLabel(TickLabel{
				Text:     FormatValue(x),
				Anchor:   Point{px - 10, axisRow + 2},
				FontSize: tickFontSize,
			})
		}
	}

	for i := 0; ; i++ {
		y := v.YMin + float64(i)*v.Step
		if y > v.YMax+gridEpsilon {
			break
		}
		if i >= MaxLinesPerAxis {
			g.Truncated = true
			break
		}

		py := h - (y-v.YMin)*yScale
		g.addLine(GridLine{Orientation: Horizontal, Value: y, Pixel: py, IsAxis: math.Abs(y) < gridEpsilon},
			Point{0, py}, Point{w, py})

		if yAxis {
			g.addLabel(TickLabel{
				Text:     FormatValue(y),
				Anchor:   Point{axisCol + 4, py - 8},
				FontSize: tickFontSize,
			})
		}
	}

	if xAxis {
		g.commands = append(g.commands, Line{P1: Point{0, axisRow}, P2: Point{w, axisRow}, Weight: StrokeAxis, Axis: true})
	}
	if yAxis {
		g.commands = append(g.commands, Line{P1: Point{axisCol, 0}, P2: Point{axisCol, h}, Weight: StrokeAxis, Axis: true})
	}

	if xAxis {
		g.commands = append(g.commands, Label{Text: "X", Anchor: Point{w - 20, axisRow - 20}, FontSize: AxisFontSize, Bold: true})
	}
	if yAxis {
		g.commands = append(g.commands, Label{Text: "Y", Anchor: Point{axisCol + 10, 5}, FontSize: AxisFontSize, Bold: true})
	}

	return g
}

func (g *Grid) addLine(line GridLine, p1, p2 Point) {
	g.Lines = append(g.Lines, line)
	weight := StrokeGrid
	if line.IsAxis {
		weight = StrokeZero
	}
	g.commands = append(g.commands, Line{P1: p1, P2: p2, Weight: weight, Axis: line.IsAxis})
}

func (g *Grid) addLabel(l TickLabel) {
	g.Labels = append(g.Labels, l)
	g.commands = append(g.commands, Label{Text: l.Text, Anchor: l.Anchor, FontSize: l.FontSize})
}

// FormatValue renders a coordinate with at most three decimals and no
// trailing zeros.
func FormatValue(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
