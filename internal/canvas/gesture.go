package canvas

import (
	"math"

	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
)

// Point is a pointer position in canvas-local pixel coordinates.
type Point struct {
	X, Y float64
}

// gesture carries the state shared by all direct-manipulation gestures: the
// target item and a snapshot of its geometry at gesture start, so the whole
// gesture can be cancelled back to where it began.
type gesture struct {
	e     *Engine
	id    string
	start model.CanvasImage
}

// Cancel restores the item's geometry from the start of the gesture.
func (g *gesture) Cancel() {
	g.e.UpdateItem(g.start)
}

func (g *gesture) current() model.CanvasImage {
	if item, ok := g.e.find(g.id); ok {
		return item
	}
	return g.start
}

// Drag moves an item by accumulating relative pointer deltas. Positions stay
// internally consistent regardless of scroll offset or canvas origin because
// no absolute cursor-to-canvas mapping is ever taken.
type Drag struct {
	gesture
	last Point
}

// BeginDrag starts a drag on the item under the pointer.
func (e *Engine) BeginDrag(id string, p Point) (*Drag, error) {
	item, ok := e.find(id)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &Drag{gesture: gesture{e: e, id: id, start: item}, last: p}, nil
}

// Move applies the delta since the previous pointer sample and returns the
// item's live geometry. Samples are applied strictly in arrival order.
func (d *Drag) Move(p Point) model.CanvasImage {
	item := d.current()
	item.X += p.X - d.last.X
	item.Y += p.Y - d.last.Y
	d.last = p
	d.e.UpdateItem(item)
	return item
}

// End completes the gesture and returns the final geometry.
func (d *Drag) End() model.CanvasImage {
	return d.current()
}

// Resize grows or shrinks an item from a handle anchored at its top-left.
// Each axis resolves independently; there is no aspect-ratio lock in the
// pointer-drag variant (see Engine.ResizeToWidth for the slider one).
type Resize struct {
	gesture
	origin Point // item top-left captured at gesture start
}

// BeginResize starts a resize on the item.
func (e *Engine) BeginResize(id string) (*Resize, error) {
	item, ok := e.find(id)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &Resize{
		gesture: gesture{e: e, id: id, start: item},
		origin:  Point{X: item.X, Y: item.Y},
	}, nil
}

// Move sets width and height to the pointer's offset from the item origin,
// clamped to MinSize per axis.
func (r *Resize) Move(p Point) model.CanvasImage {
	item := r.current()
	item.Width = clampSize(p.X - r.origin.X)
	item.Height = clampSize(p.Y - r.origin.Y)
	r.e.UpdateItem(item)
	return item
}

// End completes the gesture and returns the final geometry.
func (r *Resize) End() model.CanvasImage {
	return r.current()
}

// Rotate spins an item about its center, following the pointer angle. The
// offset between the item's rotation and the pointer angle is captured at
// gesture start, so rotation is relative to where the user grabbed the
// handle, not an absolute snap to the pointer.
type Rotate struct {
	gesture
	center Point
	offset float64 // degrees
}

// BeginRotate starts a rotation on the item.
func (e *Engine) BeginRotate(id string, p Point) (*Rotate, error) {
	item, ok := e.find(id)
	if !ok {
		return nil, errs.ErrNotFound
	}
	center := Point{X: item.X + item.Width/2, Y: item.Y + item.Height/2}
	return &Rotate{
		gesture: gesture{e: e, id: id, start: item},
		center:  center,
		offset:  item.Rotation - pointerAngle(center, p),
	}, nil
}

// Move updates rotation from the live pointer position. Position and size are
// untouched; the stored angle is unbounded, not normalized to [0,360).
func (r *Rotate) Move(p Point) model.CanvasImage {
	item := r.current()
	item.Rotation = r.offset + pointerAngle(r.center, p)
	r.e.UpdateItem(item)
	return item
}

// End completes the gesture and returns the final geometry.
func (r *Rotate) End() model.CanvasImage {
	return r.current()
}

// pointerAngle returns the angle in degrees between the item center and the
// pointer position.
func pointerAngle(center, p Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
}
