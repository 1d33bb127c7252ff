package plane

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// FieldID names a text input bound to the hub.
type FieldID int

const (
	FieldX FieldID = iota
	FieldY
	FieldXMin
	FieldXMax
	FieldYMin
	FieldYMax
	FieldStep
	FieldFontMin
	FieldFontMax
	FieldPointMin
	FieldPointMax
)

var fieldNames = [...]string{
	FieldX:        "x",
	FieldY:        "y",
	FieldXMin:     "x_min",
	FieldXMax:     "x_max",
	FieldYMin:     "y_min",
	FieldYMax:     "y_max",
	FieldStep:     "step",
	FieldFontMin:  "font_min",
	FieldFontMax:  "font_max",
	FieldPointMin: "point_min",
	FieldPointMax: "point_max",
}

func (f FieldID) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// SliderID names a slider bound to the hub.
type SliderID int

const (
	SliderX SliderID = iota
	SliderY
	SliderFontSize
	SliderPointSize
)

func (s SliderID) String() string {
	switch s {
	case SliderX:
		return "x"
	case SliderY:
		return "y"
	case SliderFontSize:
		return "font_size"
	case SliderPointSize:
		return "point_size"
	}
	return "slider(" + strconv.Itoa(int(s)) + ")"
}

// Origin tags where a position change came from. The hub never writes back
// into the kind of representation that originated the change.
type Origin int

const (
	Programmatic Origin = iota
	TextField
	Slider
	Drag
)

func (o Origin) String() string {
	switch o {
	case TextField:
		return "text"
	case Slider:
		return "slider"
	case Drag:
		return "drag"
	}
	return "programmatic"
}

// Axis selects one of the two coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Binder receives the values the hub pushes into the redundant input
// representations. Implementations must not report these writes back as
// user edits.
type Binder interface {
	SetFieldText(id FieldID, text string)
	SetSliderValue(id SliderID, v float64)
	SetSliderBounds(id SliderID, min, max float64)
}

// Quantizer rounds a coordinate on one axis, e.g. to integers.
type Quantizer interface {
	Quantize(v float64) float64
}

// Options configure a Hub.
type Options struct {
	Viewport   Viewport
	Start      Point // initial marker position, clamped into Viewport
	Snap       bool
	CalloutGap float64

	// ZoomIn and ZoomOut are the factors used by Wheel, ZoomIn and ZoomOut.
	ZoomIn  float64
	ZoomOut float64

	Font        SizeControl
	PointSize   SizeControl
	RadiusScale float64

	Binder   Binder
	Measurer Measurer
	Capture  Capture
	Logger   zerolog.Logger
}

// DefaultOptions returns the stock configuration: the default viewport, a
// 12pt label font and a 7px marker.
func DefaultOptions() Options {
	return Options{
		Viewport:    NewViewport(),
		CalloutGap:  DefaultCalloutGap,
		ZoomIn:      DefaultZoomIn,
		ZoomOut:     DefaultZoomOut,
		Font:        SizeControl{Min: 8, Max: 32, Value: DefaultTickFontSize},
		PointSize:   SizeControl{Min: 0.2, Max: 2, Value: 0.7},
		RadiusScale: 10,
		Logger:      zerolog.Nop(),
	}
}

// Hub owns the single authoritative marker position and viewport and keeps
// the text fields, sliders and scene consistent with them.
type Hub struct {
	vp    Viewport
	ptr   Pointer
	scene Scene
	drag  *DragController

	snap        bool
	gap         float64
	zoomIn      float64
	zoomOut     float64
	font        SizeControl
	point       SizeControl
	radiusScale float64
	quant       [2]Quantizer

	texts    map[FieldID]string
	binder   Binder
	measurer Measurer
	log      zerolog.Logger
}

// NewHub builds a hub, lays out the grid and pushes the initial state into
// every bound representation.
func NewHub(opts Options) *Hub {
	h := &Hub{
		vp:          opts.Viewport,
		ptr:         NewPointer(),
		snap:        opts.Snap,
		gap:         opts.CalloutGap,
		zoomIn:      opts.ZoomIn,
		zoomOut:     opts.ZoomOut,
		font:        opts.Font,
		point:       opts.PointSize,
		radiusScale: opts.RadiusScale,
		texts:       make(map[FieldID]string),
		binder:      opts.Binder,
		measurer:    opts.Measurer,
		log:         opts.Logger,
	}
	if h.binder == nil {
		h.binder = nopBinder{}
	}
	if h.measurer == nil {
		h.measurer = MeasureFunc(estimateSize)
	}
	if h.radiusScale <= 0 {
		h.radiusScale = 1
	}
	h.drag = NewDragController(hubTarget{h}, opts.Capture)

	defaults := DefaultOptions()
	if !(h.zoomIn > 0 && h.zoomIn < 1) {
		h.zoomIn = defaults.ZoomIn
	}
	if !(h.zoomOut > 1) {
		h.zoomOut = defaults.ZoomOut
	}
	if !(h.font.Min < h.font.Max) {
		h.font = defaults.Font
	}
	if !(h.point.Min < h.point.Max) {
		h.point = defaults.PointSize
	}

	h.vp.ApplyRange(h.vp.XMin, h.vp.XMax, h.vp.YMin, h.vp.YMax, h.vp.Step)
	h.font.Set(h.font.Value)
	h.point.Set(h.point.Value)
	h.ptr.Radius = h.point.Value * h.radiusScale

	h.pushRange()
	h.pushSizes()
	h.relayout()
	h.Commit(opts.Start.X, opts.Start.Y, Programmatic)
	return h
}

// Viewport returns a copy of the current viewport.
func (h *Hub) Viewport() Viewport { return h.vp }

// Pointer returns a copy of the current pointer.
func (h *Hub) Pointer() Pointer { return h.ptr }

// Scene returns the scene to render.
func (h *Hub) Scene() *Scene { return &h.scene }

// Drag exposes the drag state machine.
func (h *Hub) Drag() *DragController { return h.drag }

// Snap reports whether pointer placement snaps to the grid step.
func (h *Hub) Snap() bool { return h.snap }

// SetSnap toggles snapping for subsequent pointer placement.
func (h *Hub) SetSnap(on bool) { h.snap = on }

// FontSize returns the shared label font size.
func (h *Hub) FontSize() SizeControl { return h.font }

// PointSize returns the marker point size control.
func (h *Hub) PointSize() SizeControl { return h.point }

// FieldText returns the last text seen in or pushed to a field.
func (h *Hub) FieldText(id FieldID) string { return h.texts[id] }

// SetQuantizer installs (or with nil removes) the rounding rule for an axis
// and re-commits the current position under it.
func (h *Hub) SetQuantizer(axis Axis, q Quantizer) {
	h.quant[axis] = q
	h.Commit(h.ptr.X, h.ptr.Y, Programmatic)
}

// Commit is the only way the marker position changes. The position is
// clamped into the viewport, quantized to an allowed value inside it, placed
// in the scene and then pushed to every representation other than the one
// named by origin. The origin is written too when the committed position
// differs from what it sent.
func (h *Hub) Commit(x, y float64, origin Origin) {
	if math.IsNaN(x) {
		x = h.ptr.X
	}
	if math.IsNaN(y) {
		y = h.ptr.Y
	}
	in := Point{x, y}
	x = quantizeInto(h.quant[AxisX], x, h.vp.XMin, h.vp.XMax)
	y = quantizeInto(h.quant[AxisY], y, h.vp.YMin, h.vp.YMax)

	h.ptr.MoveTo(h.vp, x, y)
	h.placeMarker()
	h.pushPosition(origin, in)

	h.log.Debug().
		Stringer("origin", origin).
		Float64("x", h.ptr.X).
		Float64("y", h.ptr.Y).
		Msg("position committed")
}

// TextChanged handles a user edit of a bound text field.
func (h *Hub) TextChanged(id FieldID, text string) {
	h.texts[id] = text

	switch id {
	case FieldX, FieldY:
		if text == "" || midEdit(text) {
			return
		}
		x, okX := parseNumber(h.texts[FieldX])
		y, okY := parseNumber(h.texts[FieldY])
		if okX && okY {
			h.Commit(x, y, TextField)
		}
	case FieldXMin, FieldXMax, FieldYMin, FieldYMax, FieldStep:
		h.rangeChanged()
	case FieldFontMin, FieldFontMax:
		h.sizeBoundsChanged(&h.font, FieldFontMin, FieldFontMax, SliderFontSize)
	case FieldPointMin, FieldPointMax:
		h.sizeBoundsChanged(&h.point, FieldPointMin, FieldPointMax, SliderPointSize)
	}
}

// SliderChanged handles a user move of a bound slider.
func (h *Hub) SliderChanged(id SliderID, v float64) {
	switch id {
	case SliderX:
		h.Commit(v, h.ptr.Y, Slider)
	case SliderY:
		h.Commit(h.ptr.X, v, Slider)
	case SliderFontSize:
		h.font.Set(v)
		h.relayout()
		h.placeMarker()
	case SliderPointSize:
		h.point.Set(v)
		h.ptr.Radius = h.point.Value * h.radiusScale
		h.Commit(h.ptr.X, h.ptr.Y, Slider)
	}
}

// Resize handles a render surface size change.
func (h *Hub) Resize(width, height float64) {
	h.vp.Resize(width, height)
	h.relayout()
	h.Commit(h.ptr.X, h.ptr.Y, Programmatic)
}

// Wheel zooms around the view centre: positive deltas zoom in.
func (h *Hub) Wheel(delta float64) bool {
	if delta > 0 {
		return h.ZoomIn()
	}
	return h.ZoomOut()
}

// ZoomIn zooms in around the view centre.
func (h *Hub) ZoomIn() bool { return h.Zoom(h.zoomIn, h.vp.Center()) }

// ZoomOut zooms out around the view centre.
func (h *Hub) ZoomOut() bool { return h.Zoom(h.zoomOut, h.vp.Center()) }

// Zoom rescales the viewport around center and pushes the new bounds into
// the range fields.
func (h *Hub) Zoom(factor float64, center Point) bool {
	if !h.vp.Zoom(factor, center) {
		h.log.Debug().Float64("factor", factor).Msg("zoom refused")
		return false
	}
	h.pushRange()
	h.relayout()
	h.Commit(h.ptr.X, h.ptr.Y, Programmatic)
	return true
}

// ApplyRange replaces both axis ranges and the step, as if typed into the
// range fields.
func (h *Hub) ApplyRange(xMin, xMax, yMin, yMax, step float64) RangeCorrection {
	c := h.vp.ApplyRange(xMin, xMax, yMin, yMax, step)
	h.pushRange()
	h.relayout()
	h.Commit(h.ptr.X, h.ptr.Y, Programmatic)
	return c
}

// ApplyAxisRange replaces one axis range and the step.
func (h *Hub) ApplyAxisRange(axis Axis, lo, hi, step float64) RangeCorrection {
	if axis == AxisY {
		return h.ApplyRange(h.vp.XMin, h.vp.XMax, lo, hi, step)
	}
	return h.ApplyRange(lo, hi, h.vp.YMin, h.vp.YMax, step)
}

// PointerDown, PointerMove, PointerUp and CaptureLost forward surface events
// to the drag controller.
func (h *Hub) PointerDown(px, py float64) { h.drag.PointerDown(px, py) }
func (h *Hub) PointerMove(px, py float64) { h.drag.PointerMove(px, py) }
func (h *Hub) PointerUp(px, py float64)   { h.drag.PointerUp(px, py) }
func (h *Hub) CaptureLost()               { h.drag.CaptureLost() }

// MarkerPixel returns the marker centre in surface pixels.
func (h *Hub) MarkerPixel() (Point, bool) {
	px, py, ok := h.vp.ToPixel(h.ptr.X, h.ptr.Y)
	return Point{px, py}, ok
}

func (h *Hub) rangeChanged() {
	xMin := h.fieldOr(FieldXMin, h.vp.XMin)
	xMax := h.fieldOr(FieldXMax, h.vp.XMax)
	yMin := h.fieldOr(FieldYMin, h.vp.YMin)
	yMax := h.fieldOr(FieldYMax, h.vp.YMax)
	step := h.fieldOr(FieldStep, h.vp.Step)

	c := h.vp.ApplyRange(xMin, xMax, yMin, yMax, step)
	if c.XMax && !midEdit(h.texts[FieldXMax]) {
		h.setText(FieldXMax, formatBound(h.vp.XMax))
	}
	if c.YMax && !midEdit(h.texts[FieldYMax]) {
		h.setText(FieldYMax, formatBound(h.vp.YMax))
	}
	if c.Any() {
		h.log.Debug().
			Bool("x_max", c.XMax).
			Bool("y_max", c.YMax).
			Bool("step", c.Step).
			Msg("range auto-corrected")
	}

	h.pushSliderBounds()
	h.relayout()
	h.Commit(h.ptr.X, h.ptr.Y, Programmatic)
}

func (h *Hub) sizeBoundsChanged(c *SizeControl, minID, maxID FieldID, slider SliderID) {
	lo, okLo := parseNumber(h.texts[minID])
	hi, okHi := parseNumber(h.texts[maxID])
	if !okLo || !okHi {
		return
	}
	before := c.Value
	if !c.SetBounds(lo, hi) {
		return
	}
	h.binder.SetSliderBounds(slider, c.Min, c.Max)
	if c.Value != before {
		h.SliderChanged(slider, c.Value)
		h.binder.SetSliderValue(slider, c.Value)
	}
}

// fieldOr parses a field, falling back to the current value when the field
// is empty, mid-edit or not a number.
func (h *Hub) fieldOr(id FieldID, current float64) float64 {
	text, ok := h.texts[id]
	if !ok || midEdit(text) {
		return current
	}
	if v, ok := parseNumber(text); ok {
		return v
	}
	return current
}

func (h *Hub) relayout() {
	g := LayoutGrid(h.vp, h.font.Value)
	h.scene.ReplaceGrid(g.Commands())
	if g.Truncated {
		h.log.Debug().Float64("step", h.vp.Step).Msg("grid truncated")
	}
}

func (h *Hub) placeMarker() {
	center, ok := h.MarkerPixel()
	if !ok {
		h.scene.ClearSlots()
		return
	}

	w, ht := h.vp.Width, h.vp.Height
	r := h.ptr.Radius
	text := CalloutText(h.ptr.X, h.ptr.Y)
	size := h.measurer.Measure(text, h.font.Value)

	h.scene.Marker = &Marker{Center: center, Radius: r}
	h.scene.Callout = &Callout{
		Anchor:   PlaceCallout(center, r, h.gap, size, w, ht),
		Size:     size,
		Text:     text,
		FontSize: h.font.Value,
	}
	h.scene.GuideH = &Line{P1: Point{0, center.Y}, P2: Point{w, center.Y}, Weight: StrokeGuide, Dashed: true}
	h.scene.GuideV = &Line{P1: Point{center.X, 0}, P2: Point{center.X, ht}, Weight: StrokeGuide, Dashed: true}
}

func (h *Hub) pushPosition(origin Origin, in Point) {
	corrected := in != h.ptr.Position()
	if (origin != TextField || corrected) && !midEdit(h.texts[FieldX]) && !midEdit(h.texts[FieldY]) {
		h.setText(FieldX, FormatValue(h.ptr.X))
		h.setText(FieldY, FormatValue(h.ptr.Y))
	}
	if origin != Slider || corrected {
		h.binder.SetSliderValue(SliderX, h.ptr.X)
		h.binder.SetSliderValue(SliderY, h.ptr.Y)
	}
}

func (h *Hub) pushRange() {
	h.setText(FieldXMin, formatBound(h.vp.XMin))
	h.setText(FieldXMax, formatBound(h.vp.XMax))
	h.setText(FieldYMin, formatBound(h.vp.YMin))
	h.setText(FieldYMax, formatBound(h.vp.YMax))
	h.setText(FieldStep, formatBound(h.vp.Step))
	h.pushSliderBounds()
}

func (h *Hub) pushSliderBounds() {
	h.binder.SetSliderBounds(SliderX, h.vp.XMin, h.vp.XMax)
	h.binder.SetSliderBounds(SliderY, h.vp.YMin, h.vp.YMax)
}

func (h *Hub) pushSizes() {
	h.setText(FieldFontMin, formatBound(h.font.Min))
	h.setText(FieldFontMax, formatBound(h.font.Max))
	h.setText(FieldPointMin, formatBound(h.point.Min))
	h.setText(FieldPointMax, formatBound(h.point.Max))
	h.binder.SetSliderBounds(SliderFontSize, h.font.Min, h.font.Max)
	h.binder.SetSliderValue(SliderFontSize, h.font.Value)
	h.binder.SetSliderBounds(SliderPointSize, h.point.Min, h.point.Max)
	h.binder.SetSliderValue(SliderPointSize, h.point.Value)
}

func (h *Hub) setText(id FieldID, text string) {
	h.texts[id] = text
	h.binder.SetFieldText(id, text)
}

// hubTarget lets the drag controller move the hub's marker without exposing
// the DragTarget methods on Hub itself.
type hubTarget struct{ h *Hub }

func (t hubTarget) MarkerPixel() (Point, bool) { return t.h.MarkerPixel() }

func (t hubTarget) HitMarker(at Point) bool {
	center, ok := t.h.MarkerPixel()
	return ok && t.h.ptr.Hit(center, at)
}

func (t hubTarget) DragTo(px Point) {
	x, y, ok := t.h.vp.ToLogical(px.X, px.Y)
	if !ok {
		return
	}
	p := Point{x, y}
	if t.h.snap {
		p = Snap(p, t.h.vp.Step)
	}
	t.h.Commit(p.X, p.Y, Drag)
}

type nopBinder struct{}

func (nopBinder) SetFieldText(FieldID, string)              {}
func (nopBinder) SetSliderValue(SliderID, float64)          {}
func (nopBinder) SetSliderBounds(SliderID, float64, float64) {}

// midEdit reports text a user is still typing: a lone minus sign or a
// trailing decimal point.
func midEdit(text string) bool {
	return text == "-" || strings.HasSuffix(text, ".")
}

// parseNumber parses a finite decimal number, ignoring surrounding spaces.
func parseNumber(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// quantizeInto clamps v into [lo, hi] and rounds it with q. When the nearest
// allowed value lies outside the range, the closest one inside is used. A
// range holding no allowed value leaves v clamped but unrounded.
func quantizeInto(q Quantizer, v, lo, hi float64) float64 {
	c := clamp(v, lo, hi)
	if q == nil {
		return c
	}
	r := q.Quantize(c)
	if r >= lo && r <= hi {
		return r
	}

	d := math.Abs(r - c)
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return c
	}
	if r > hi {
		d = -d
	}
	for k := 2.0; k <= 8; k++ {
		if n := q.Quantize(c + k*d); n >= lo && n <= hi {
			return n
		}
	}
	return c
}

// formatBound renders range values with enough significant digits to
// survive a round trip through a text field after deep zooming.
func formatBound(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 15, 64)
}

func estimateSize(text string, fontSize float64) Size {
	return Size{
		W: float64(len(text))*fontSize*0.6 + 12,
		H: fontSize*1.35 + 6,
	}
}
