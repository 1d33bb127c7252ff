package tui

import (
	"math"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/plane"
)

// Each terminal cell stands for a CellWidth×CellHeight block of surface
// pixels, roughly the aspect ratio of a monospace glyph.
const (
	CellWidth  = 8
	CellHeight = 16
)

// cellOf returns the cell containing a surface pixel.
func cellOf(p plane.Point) (col, row int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

// pixelOf returns the surface pixel at the centre of a cell.
func pixelOf(col, row int) plane.Point {
	return plane.Point{
		X: float64(col*CellWidth) + CellWidth/2,
		Y: float64(row*CellHeight) + CellHeight/2,
	}
}

type ink uint8

const (
	inkBlank ink = iota
	inkGrid
	inkZero
	inkAxis
	inkGuide
	inkLabel
	inkAxisName
	inkMarker
	inkCallout
)

func (i ink) style() lipgloss.Style {
	switch i {
	case inkGrid:
		return styles.GridStyle
	case inkZero:
		return styles.ZeroLineStyle
	case inkAxis:
		return styles.AxisStyle
	case inkGuide:
		return styles.GuideStyle
	case inkLabel:
		return styles.TickStyle
	case inkAxisName:
		return styles.AxisNameStyle
	case inkMarker:
		return styles.MarkerStyle
	case inkCallout:
		return styles.CalloutStyle
	}
	return lipgloss.NewStyle()
}

type cell struct {
	r   rune
	ink ink

	// line directions crossing the cell
	h, v bool
}

// Canvas rasterizes scene commands onto a grid of terminal cells.
type Canvas struct {
	cols, rows int
	cells      []cell
}

// NewCanvas returns a blank canvas. Negative sizes are treated as zero.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &Canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	c.Clear()
	return c
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// Rune returns the glyph shown in a cell, or a space outside the canvas.
func (c *Canvas) Rune(col, row int) rune {
	if cl := c.at(col, row); cl != nil {
		return cl.r
	}
	return ' '
}

// Draw paints commands in order. Later commands cover earlier ones.
func (c *Canvas) Draw(cmds []plane.Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case plane.Line:
			c.line(cmd)
		case plane.Label:
			k := inkLabel
			if cmd.Bold {
				k = inkAxisName
			}
			col, row := cellOf(cmd.Anchor)
			c.text(col, row, cmd.Text, k)
		case plane.Marker:
			col, row := cellOf(cmd.Center)
			if cl := c.at(col, row); cl != nil {
				*cl = cell{r: markerGlyph(cmd.Radius), ink: inkMarker}
			}
		case plane.Callout:
			col, row := cellOf(cmd.Anchor)
			c.text(col, row, " "+cmd.Text+" ", inkCallout)
		}
	}
}

func lineInk(l plane.Line) ink {
	switch {
	case l.Dashed:
		return inkGuide
	case l.Weight >= plane.StrokeAxis:
		return inkAxis
	case l.Axis:
		return inkZero
	}
	return inkGrid
}

func (c *Canvas) line(l plane.Line) {
	k := lineInk(l)
	c1, r1 := cellOf(l.P1)
	c2, r2 := cellOf(l.P2)

	switch {
	case l.P1.X == l.P2.X:
		for row := min(r1, r2); row <= max(r1, r2); row++ {
			c.stroke(c1, row, k, false, true)
		}
	case l.P1.Y == l.P2.Y:
		for col := min(c1, c2); col <= max(c1, c2); col++ {
			c.stroke(col, r1, k, true, false)
		}
	default:
		steps := max(abs(c2-c1), abs(r2-r1), 1)
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			col := c1 + int(math.Round(t*float64(c2-c1)))
			row := r1 + int(math.Round(t*float64(r2-r1)))
			if cl := c.at(col, row); cl != nil {
				*cl = cell{r: '·', ink: k}
			}
		}
	}
}

func (c *Canvas) stroke(col, row int, k ink, h, v bool) {
	cl := c.at(col, row)
	if cl == nil {
		return
	}
	if cl.ink >= inkLabel {
		return // text and marker stay on top of lines
	}
	cl.h = cl.h || h
	cl.v = cl.v || v
	cl.ink = k
	cl.r = lineGlyph(k, cl.h, cl.v)
}

func lineGlyph(k ink, h, v bool) rune {
	switch k {
	case inkGuide:
		switch {
		case h && v:
			return '┼'
		case h:
			return '┄'
		}
		return '┆'
	case inkAxis:
		switch {
		case h && v:
			return '╋'
		case h:
			return '━'
		}
		return '┃'
	}
	switch {
	case h && v:
		return '┼'
	case h:
		return '─'
	}
	return '│'
}

func markerGlyph(radius float64) rune {
	switch {
	case radius < 4:
		return '•'
	case radius < 10:
		return '●'
	}
	return '◉'
}

func (c *Canvas) text(col, row int, s string, k ink) {
	for _, r := range s {
		if cl := c.at(col, row); cl != nil {
			*cl = cell{r: r, ink: k}
		}
		col++
	}
}

// Render returns the canvas as styled lines, one per row.
func (c *Canvas) Render() string {
	var b strings.Builder
	var run strings.Builder

	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		current := inkBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == inkBlank {
				b.WriteString(run.String())
			} else {
				b.WriteString(current.style().Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.ink != current {
				flush()
				current = cl.ink
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// cellMeasurer sizes callout text in whole cells, with one cell of padding
// on each side.
type cellMeasurer struct{}

func (cellMeasurer) Measure(text string, _ float64) plane.Size {
	return plane.Size{
		W: float64(lipgloss.Width(text)+2) * CellWidth,
		H: CellHeight,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
