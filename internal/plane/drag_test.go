package plane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	center Point
	radius float64
	moves  []Point
}

func (f *fakeTarget) MarkerPixel() (Point, bool) { return f.center, true }

func (f *fakeTarget) HitMarker(at Point) bool {
	return Pointer{Radius: f.radius}.Hit(f.center, at)
}

func (f *fakeTarget) DragTo(px Point) {
	f.moves = append(f.moves, px)
	f.center = px
}

type fakeCapture struct {
	captured int
	released int
}

func (c *fakeCapture) CapturePointer() { c.captured++ }
func (c *fakeCapture) ReleasePointer() { c.released++ }

func TestDragController_DragLifecycle(t *testing.T) {
	target := &fakeTarget{center: Point{100, 100}, radius: 7}
	capture := &fakeCapture{}
	d := NewDragController(target, capture)

	require.Equal(t, Idle, d.State())

	d.PointerDown(104, 103)
	require.Equal(t, Dragging, d.State())
	assert.Equal(t, 1, capture.captured)
	assert.Empty(t, target.moves, "grabbing the marker does not move it")

	session := d.Session()
	assert.Equal(t, Point{104, 103}, session.StartMouse)
	assert.Equal(t, Point{100, 100}, session.StartMarker)

	d.PointerMove(124, 93)
	require.Len(t, target.moves, 1)
	assert.Equal(t, Point{120, 90}, target.moves[0], "marker keeps its offset from the mouse")

	d.PointerUp(124, 93)
	assert.Equal(t, Idle, d.State())
	assert.Equal(t, 1, capture.released)

	d.PointerMove(300, 300)
	assert.Len(t, target.moves, 1, "moves while idle are ignored")
}

func TestDragController_ClickOutsideMovesMarker(t *testing.T) {
	target := &fakeTarget{center: Point{100, 100}, radius: 7}
	capture := &fakeCapture{}
	d := NewDragController(target, capture)

	d.PointerDown(150, 20)

	assert.Equal(t, Idle, d.State())
	assert.Equal(t, []Point{{150, 20}}, target.moves)
	assert.Zero(t, capture.captured)
}

func TestDragController_CaptureLostEndsDrag(t *testing.T) {
	target := &fakeTarget{center: Point{50, 50}, radius: 3}
	capture := &fakeCapture{}
	d := NewDragController(target, capture)

	d.PointerDown(50, 50)
	require.Equal(t, Dragging, d.State())

	d.CaptureLost()
	assert.Equal(t, Idle, d.State())
	assert.Equal(t, 1, capture.released)

	d.CaptureLost()
	assert.Equal(t, 1, capture.released, "release only once")
}

func TestDragController_NilCapture(t *testing.T) {
	target := &fakeTarget{center: Point{10, 10}, radius: 7}
	d := NewDragController(target, nil)

	assert.NotPanics(t, func() {
		d.PointerDown(10, 10)
		d.PointerMove(12, 12)
		d.PointerUp(12, 12)
	})
}
