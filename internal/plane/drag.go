package plane

// DragState is the state of the drag state machine.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragSession is the bookkeeping of an active drag.
type DragSession struct {
	Active      bool
	StartMouse  Point
	StartMarker Point
}

// Capture is implemented by surfaces that can route all pointer events to
// the plane while a drag is in progress.
type Capture interface {
	CapturePointer()
	ReleasePointer()
}

// DragTarget is what the drag controller moves.
type DragTarget interface {
	// MarkerPixel returns the marker centre in pixels, ok=false when the
	// surface has no area.
	MarkerPixel() (Point, bool)
	// HitMarker reports whether a pixel is on the marker.
	HitMarker(px Point) bool
	// DragTo moves the marker so that its centre sits under px.
	DragTo(px Point)
}

// DragController turns raw pointer events into marker moves.
type DragController struct {
	target  DragTarget
	capture Capture
	session DragSession
}

// NewDragController returns a controller in the Idle state. capture may be nil.
func NewDragController(target DragTarget, capture Capture) *DragController {
	return &DragController{target: target, capture: capture}
}

// State returns Idle or Dragging.
func (d *DragController) State() DragState {
	if d.session.Active {
		return Dragging
	}
	return Idle
}

// Session returns a copy of the current drag session.
func (d *DragController) Session() DragSession { return d.session }

// PointerDown starts a drag when the press lands on the marker, and otherwise
// moves the marker to the pressed pixel.
func (d *DragController) PointerDown(px, py float64) {
	at := Point{px, py}

	center, ok := d.target.MarkerPixel()
	if ok && d.target.HitMarker(at) {
		d.session = DragSession{Active: true, StartMouse: at, StartMarker: center}
		if d.capture != nil {
			d.capture.CapturePointer()
		}
		return
	}

	d.target.DragTo(at)
}

// PointerMove drags the marker by the distance the pointer travelled since
// the drag started. It does nothing while Idle.
func (d *DragController) PointerMove(px, py float64) {
	if !d.session.Active {
		return
	}
	d.target.DragTo(Point{
		X: d.session.StartMarker.X + (px - d.session.StartMouse.X),
		Y: d.session.StartMarker.Y + (py - d.session.StartMouse.Y),
	})
}

// PointerUp ends a drag.
func (d *DragController) PointerUp(_, _ float64) {
	d.end()
}

// CaptureLost ends a drag when the surface loses the pointer.
func (d *DragController) CaptureLost() {
	d.end()
}

func (d *DragController) end() {
	if !d.session.Active {
		return
	}
	d.session = DragSession{}
	if d.capture != nil {
		d.capture.ReleasePointer()
	}
}
