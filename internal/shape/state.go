package shape

import (
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/surface"
)

// State is the per-shape interaction mode.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
	// Connecting means a block shape is pulling a new arrow out of one of
	// its connection handles.
	Connecting
	EditingStartPoint
	EditingEndPoint
	EditingText
)

var stateNames = [...]string{"idle", "dragging", "resizing", "connecting", "editing-start", "editing-end", "editing-text"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// control reports whether s belongs to a claimed control point.
func (s State) control() bool {
	switch s {
	case Resizing, Connecting, EditingStartPoint, EditingEndPoint:
		return true
	}
	return false
}

func press(v variant, ev PointerEvent) {
	b := v.core()
	if c := b.env.Container; c != nil {
		c.BringToFront(v)
	}
	if !b.selected && !ev.Modified() {
		selectOnly(v)
	}
	b.pressAt = ev.Scene
	b.anchor = ev.Scene
	b.origBox = b.box
	b.dragged = false

	if st, ok := v.controlAt(b.local(ev.Scene)); ok {
		b.state = st
		b.env.logger().Debug("control claimed", "shape", b.id, "kind", b.kind, "state", st)
		b.invalidate()
		return
	}
	if b.state != EditingText {
		b.state = Idle
	}
}

func drag(v variant, ev PointerEvent) {
	b := v.core()
	b.dragged = true
	if b.state.control() {
		v.dragControl(ev)
		b.invalidate()
		return
	}

	b.state = Dragging
	d := ev.Scene.Sub(b.anchor)
	b.anchor = ev.Scene
	if d.X == 0 && d.Y == 0 {
		return
	}
	moved := false
	if reg := b.env.Selection; reg != nil {
		for _, m := range reg.Members() {
			m.Translate(d.X, d.Y)
			if m.ID() == b.id {
				moved = true
			}
		}
	}
	if !moved {
		b.Translate(d.X, d.Y)
	}
}

func release(v variant, ev PointerEvent) {
	b := v.core()
	if b.state.control() {
		v.releaseControl(ev)
	}
	if b.editor != nil {
		b.state = EditingText
	} else {
		b.state = Idle
	}
	b.cursor = v.cursorAt(b.local(ev.Scene))
	if reg := b.env.Selection; reg != nil {
		reg.Notify()
	}
	b.invalidate()
}

func click(v variant, ev PointerEvent) {
	b := v.core()
	if b.dragged {
		b.dragged = false
		return
	}
	if ev.ClickCount >= 2 {
		beginTextEdit(v)
		return
	}
	if ev.Modified() {
		if reg := b.env.Selection; reg != nil {
			reg.Toggle(v)
		} else {
			v.SetSelected(!b.selected)
		}
		return
	}
	selectOnly(v)
}

func mouseMoved(v variant, ev PointerEvent) {
	b := v.core()
	c := v.cursorAt(b.local(ev.Scene))
	if c != b.cursor {
		b.cursor = c
		b.invalidate()
	}
}

func selectOnly(v variant) {
	if reg := v.core().env.Selection; reg != nil {
		reg.SelectOnly(v)
		return
	}
	v.SetSelected(true)
}

// beginTextEdit asks the container for an inline editor over the shape.
func beginTextEdit(v variant) {
	b := v.core()
	c := b.env.Container
	if c == nil || b.editor != nil {
		return
	}
	b.state = EditingText
	b.editor = c.OpenTextEditor(b.box.Center(), b.label, func(s string) {
		commitText(v, s)
	})
	b.invalidate()
}

func commitText(v variant, s string) {
	b := v.core()
	ed := b.editor
	if ed == nil {
		return
	}
	b.editor = nil
	ed.Close()
	b.label = s
	b.state = Idle
	b.env.logger().Debug("label committed", "shape", b.id, "label", s)
	b.invalidate()
}

func draw(v variant, s surface.Surface) {
	b := v.core()
	th := b.env.theme()
	local := surface.Offset(s, b.box.X, b.box.Y)

	v.drawShape(local, th)
	if b.label != "" && b.editor == nil {
		tw := local.MeasureText(b.label)
		at := v.labelOrigin(tw, local.FontSize())
		local.SetFillColor(th.Label)
		local.FillText(b.label, at.X, at.Y)
	}
	if b.selected || b.state.control() {
		v.drawChrome(local, th)
	}
}

// drawHandles fills a Size square at each top-left position.
func drawHandles(s surface.Surface, pts []geom.Point, size float64) {
	for _, p := range pts {
		s.FillRect(p.X, p.Y, size, size)
		s.StrokeRect(p.X, p.Y, size, size)
	}
}
