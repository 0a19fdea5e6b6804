package diagram

import (
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/shape"
)

// Press routes a button press to the topmost shape under the pointer, or
// starts a rubber band on empty canvas. An open inline editor loses focus
// and commits unless the press lands on it.
func (d *Diagram) Press(ev shape.PointerEvent) {
	d.track(ev.Scene)
	if d.editor != nil && !d.editor.Contains(ev.Scene) {
		d.editor.Commit()
	}
	d.clickShape = nil
	d.marqueeMoved = false
	if s := d.ShapeAt(ev.Scene); s != nil {
		d.active = s
		s.HandlePress(ev)
		return
	}
	d.active = nil
	d.marquee = true
	d.marqueeFrom = ev.Scene
	d.marqueeTo = ev.Scene
	d.marqueeMoved = false
}

// Drag forwards motion with the button held.
func (d *Diagram) Drag(ev shape.PointerEvent) {
	d.track(ev.Scene)
	if d.active != nil {
		d.active.HandleDrag(ev)
		return
	}
	if d.marquee {
		d.marqueeTo = ev.Scene
		d.marqueeMoved = true
		d.Invalidate(nil)
	}
}

// Release ends the current press. A rubber band is applied here, once.
func (d *Diagram) Release(ev shape.PointerEvent) {
	d.track(ev.Scene)
	if d.active != nil {
		d.active.HandleRelease(ev)
		d.clickShape = d.active
		d.active = nil
		return
	}
	if d.marquee {
		d.marquee = false
		if d.marqueeMoved {
			d.Marquee(geom.RectFromPoints(d.marqueeFrom, ev.Scene))
		}
		d.Invalidate(nil)
	}
}

// Click forwards a click to the shape that took the press, or to the shape
// under the pointer when there was no press. The click that ends a rubber
// band is dropped so the marquee result stands. A click on empty canvas
// clears the selection.
func (d *Diagram) Click(ev shape.PointerEvent) {
	d.track(ev.Scene)
	s := d.clickShape
	d.clickShape = nil
	if s == nil && d.marqueeMoved {
		d.marqueeMoved = false
		return
	}
	if s == nil {
		s = d.ShapeAt(ev.Scene)
	}
	if s != nil {
		s.HandleClick(ev)
		return
	}
	d.sel.Clear()
}

// MouseMoved updates hover feedback.
func (d *Diagram) MouseMoved(ev shape.PointerEvent) {
	d.track(ev.Scene)
	s := d.ShapeAt(ev.Scene)
	if d.hover != nil && (s == nil || s.ID() != d.hover.ID()) {
		d.hover.HandleMouseMoved(ev)
	}
	d.hover = s
	if s != nil {
		s.HandleMouseMoved(ev)
	}
}

// Cursor is the pointer feedback for the last position seen.
func (d *Diagram) Cursor() handles.Cursor {
	if d.active != nil {
		return d.active.Cursor()
	}
	if d.hover != nil {
		return d.hover.Cursor()
	}
	if d.marquee {
		return handles.CursorCrosshair
	}
	return handles.CursorDefault
}

// Pointer returns the last scene position seen by any pointer handler.
func (d *Diagram) Pointer() (geom.Point, bool) { return d.pointer, d.hasPointer }

// MarqueeRect returns the rubber band while one is being dragged.
func (d *Diagram) MarqueeRect() (geom.Rect, bool) {
	if !d.marquee || !d.marqueeMoved {
		return geom.Rect{}, false
	}
	return geom.RectFromPoints(d.marqueeFrom, d.marqueeTo), true
}

func (d *Diagram) track(p geom.Point) {
	d.pointer = p
	d.hasPointer = true
}
