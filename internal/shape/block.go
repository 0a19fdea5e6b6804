package shape

import (
	"image/color"
	"math"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/surface"
	"github.com/example/flowsketch/internal/theme"
	"github.com/google/uuid"
)

const (
	// BlockPadding separates a block's chrome ring from its outline. Small
	// boxes use a quarter of their shorter side instead.
	BlockPadding = 20
	// RectInset is how far inside its edge a rectangle's connection point
	// sits.
	RectInset = 2
	// CurveInset scales the half-axes of ovals and diamonds to place their
	// connection points just inside the outline.
	CurveInset = 0.95
)

// block is the behaviour shared by box-bounded shapes.
type block struct {
	base
	handle  handles.Handle
	connDir handles.Direction
	connTo  geom.Point
	snapAt  geom.Point
	snapped bool
}

// Oval is an ellipse inscribed in its drawing area.
type Oval struct{ block }

// Rectangle is an axis-aligned box.
type Rectangle struct{ block }

// Diamond is a rhombus through the mid-edges of its drawing area.
type Diamond struct{ block }

func newOval(env Env, box geom.Rect) *Oval {
	o := &Oval{}
	o.init(env, KindOval, box, o)
	return o
}

func newRectangle(env Env, box geom.Rect) *Rectangle {
	r := &Rectangle{}
	r.init(env, KindRectangle, box, r)
	return r
}

func newDiamond(env Env, box geom.Rect) *Diamond {
	d := &Diamond{}
	d.init(env, KindDiamond, box, d)
	return d
}

func (b *block) padding() float64 {
	return math.Min(BlockPadding, math.Min(b.box.W, b.box.H)/4)
}

// area is the outline box in local coordinates.
func (b *block) area() geom.Rect {
	return geom.DrawingArea(b.box.W, b.box.H, b.padding())
}

func (b *block) sceneArea() geom.Rect {
	return b.area().Translate(b.box.Min())
}

func (b *block) SetBoxWidth(w float64) {
	b.box.W = math.Max(w, handles.MinSize)
	b.invalidate()
}

func (b *block) SetBoxHeight(h float64) {
	b.box.H = math.Max(h, handles.MinSize)
	b.invalidate()
}

// HitTest includes the handle ring of a selected block, which may reach
// outside the box.
func (b *block) HitTest(p geom.Point) bool {
	if b.box.Contains(p) {
		return true
	}
	if !b.selected {
		return false
	}
	l := b.local(p)
	if _, ok := handles.ResizeHandleAt(l.X, l.Y, b.box.W, b.box.H, b.padding()); ok {
		return true
	}
	_, ok := handles.ArrowHandleAt(l.X, l.Y, b.box.W, b.box.H, b.padding())
	return ok
}

func (b *block) snapper() Snapper { return b.v.(Snapper) }

// SnapPoints returns the four connection points in Top, Bottom, Left,
// Right order.
func (b *block) SnapPoints() []geom.Point {
	s := b.snapper()
	out := make([]geom.Point, 0, 4)
	for _, d := range handles.Directions() {
		out = append(out, s.ConnectionPoint(d))
	}
	return out
}

// NearestSnapPoint returns the snap point closest to p, if any lies within
// radius.
func (b *block) NearestSnapPoint(p geom.Point, radius float64) (geom.Point, bool) {
	best, bestD := geom.Point{}, math.Inf(1)
	for _, sp := range b.SnapPoints() {
		if d := geom.Distance(p, sp); d <= radius && d < bestD {
			best, bestD = sp, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

// curvedPoint places a connection point on the half-axis towards d.
func (b *block) curvedPoint(d handles.Direction) geom.Point {
	a := b.sceneArea()
	c := a.Center()
	rx, ry := a.W/2*CurveInset, a.H/2*CurveInset
	switch d {
	case handles.Top:
		return geom.Pt(c.X, c.Y-ry)
	case handles.Bottom:
		return geom.Pt(c.X, c.Y+ry)
	case handles.Left:
		return geom.Pt(c.X-rx, c.Y)
	default:
		return geom.Pt(c.X+rx, c.Y)
	}
}

// ConnectionPoint is the oval boundary in direction d, in scene coordinates.
func (o *Oval) ConnectionPoint(d handles.Direction) geom.Point { return o.curvedPoint(d) }

// ConnectionPoint is the diamond vertex in direction d, in scene
// coordinates.
func (dm *Diamond) ConnectionPoint(d handles.Direction) geom.Point { return dm.curvedPoint(d) }

// ConnectionPoint is the edge midpoint in direction d moved RectInset
// inwards, in scene coordinates.
func (r *Rectangle) ConnectionPoint(d handles.Direction) geom.Point {
	a := r.sceneArea()
	c := a.Center()
	switch d {
	case handles.Top:
		return geom.Pt(c.X, a.Y+RectInset)
	case handles.Bottom:
		return geom.Pt(c.X, a.Y+a.H-RectInset)
	case handles.Left:
		return geom.Pt(a.X+RectInset, c.Y)
	default:
		return geom.Pt(a.X+a.W-RectInset, c.Y)
	}
}

func (b *block) fillColor(th *theme.Theme) color.RGBA {
	if b.selected {
		return th.Tint()
	}
	return th.ShapeFill
}

func (o *Oval) drawShape(s surface.Surface, th *theme.Theme) {
	a := o.area()
	s.SetFillColor(o.fillColor(th))
	s.FillOval(a.X, a.Y, a.W, a.H)
	s.SetStrokeColor(th.ShapeStroke)
	s.SetLineWidth(1.5)
	s.StrokeOval(a.X, a.Y, a.W, a.H)
}

func (r *Rectangle) drawShape(s surface.Surface, th *theme.Theme) {
	a := r.area()
	s.SetFillColor(r.fillColor(th))
	s.FillRect(a.X, a.Y, a.W, a.H)
	s.SetStrokeColor(th.ShapeStroke)
	s.SetLineWidth(1.5)
	s.StrokeRect(a.X, a.Y, a.W, a.H)
}

func (dm *Diamond) drawShape(s surface.Surface, th *theme.Theme) {
	pts := dm.outline()
	s.SetFillColor(dm.fillColor(th))
	s.FillPolygon(pts)
	s.SetStrokeColor(th.ShapeStroke)
	s.SetLineWidth(1.5)
	s.StrokePolygon(pts)
}

// outline returns the diamond vertices top, right, bottom, left in local
// coordinates.
func (dm *Diamond) outline() []geom.Point {
	a := dm.area()
	c := a.Center()
	return []geom.Point{
		{X: c.X, Y: a.Y},
		{X: a.X + a.W, Y: c.Y},
		{X: c.X, Y: a.Y + a.H},
		{X: a.X, Y: c.Y},
	}
}

func (b *block) drawChrome(s surface.Surface, th *theme.Theme) {
	a := b.area()
	s.SetLineWidth(1)
	s.SetStrokeColor(th.Selection)
	s.StrokeRect(a.X, a.Y, a.W, a.H)

	rh := handles.ResizeHandlePositions(b.box.W, b.box.H, b.padding())
	s.SetFillColor(th.ResizeHandle)
	drawHandles(s, rh[:], handles.Size)

	s.SetFillColor(th.ConnectionHandle)
	for _, p := range handles.ArrowHandlePositions(b.box.W, b.box.H, b.padding()) {
		s.FillOval(p.X, p.Y, handles.Size, handles.Size)
	}

	if b.state == Connecting {
		from := b.local(b.snapper().ConnectionPoint(b.connDir))
		to := b.local(b.connTo)
		s.SetStrokeColor(th.Connector)
		s.StrokeLine(from.X, from.Y, to.X, to.Y)
		if b.snapped {
			drawSnapTarget(s, b.local(b.snapAt), th)
		}
	}
}

func (b *block) labelOrigin(textW, fontSize float64) geom.Point {
	return geom.CenteredTextPosition(b.box.W, b.box.H, textW, fontSize)
}

func (b *block) controlAt(local geom.Point) (State, bool) {
	if !b.selected {
		return Idle, false
	}
	if h, ok := handles.ResizeHandleAt(local.X, local.Y, b.box.W, b.box.H, b.padding()); ok {
		b.handle = h
		b.cursor = handles.CursorFor(h)
		return Resizing, true
	}
	if d, ok := handles.ArrowHandleAt(local.X, local.Y, b.box.W, b.box.H, b.padding()); ok {
		b.connDir = d
		b.connTo = b.snapper().ConnectionPoint(d)
		b.snapped = false
		b.cursor = handles.CursorCrosshair
		return Connecting, true
	}
	return Idle, false
}

func (b *block) dragControl(ev PointerEvent) {
	switch b.state {
	case Resizing:
		d := ev.Scene.Sub(b.pressAt)
		o := b.origBox
		b.box = handles.NewDimensions(b.handle, d.X, d.Y, o.W, o.H, o.X, o.Y, handles.MinSize)
	case Connecting:
		b.connTo = ev.Scene
		b.snapAt, b.snapped = nearestSnap(b.env, ev.Scene, b.id)
	}
}

func (b *block) releaseControl(ev PointerEvent) {
	defer func() { b.snapped = false }()
	switch b.state {
	case Resizing:
		b.env.logger().Debug("resized", "shape", b.id, "handle", b.handle, "box", b.box)
	case Connecting:
		from := b.snapper().ConnectionPoint(b.connDir)
		to := ev.Scene
		if sp, ok := nearestSnap(b.env, ev.Scene, b.id); ok {
			to = sp
		}
		if geom.Distance(from, to) < handles.Size {
			return
		}
		a := NewArrow(b.env, from, to)
		b.env.logger().Debug("connector created", "from", b.id, "direction", b.connDir, "arrow", a.id)
		if c := b.env.Container; c != nil {
			c.Add(a)
			selectOnly(a)
		}
	}
}

func (b *block) cursorAt(local geom.Point) handles.Cursor {
	if b.selected {
		if h, ok := handles.ResizeHandleAt(local.X, local.Y, b.box.W, b.box.H, b.padding()); ok {
			return handles.CursorFor(h)
		}
		if _, ok := handles.ArrowHandleAt(local.X, local.Y, b.box.W, b.box.H, b.padding()); ok {
			return handles.CursorCrosshair
		}
	}
	if geom.R(0, 0, b.box.W, b.box.H).Contains(local) {
		return handles.CursorMove
	}
	return handles.CursorDefault
}

// nearestSnap finds the closest snap point of any block in the container
// other than exclude, within the env's snap radius.
func nearestSnap(env Env, p geom.Point, exclude uuid.UUID) (geom.Point, bool) {
	if env.Container == nil {
		return geom.Point{}, false
	}
	radius := env.snapRadius()
	best, bestD, found := geom.Point{}, math.Inf(1), false
	for _, sh := range env.Container.Shapes() {
		sn, ok := sh.(Snapper)
		if !ok || sh.ID() == exclude {
			continue
		}
		if sp, ok := sn.NearestSnapPoint(p, radius); ok {
			if d := geom.Distance(p, sp); d < bestD {
				best, bestD, found = sp, d, true
			}
		}
	}
	return best, found
}

func drawSnapTarget(s surface.Surface, p geom.Point, th *theme.Theme) {
	r := float64(handles.Size)
	s.SetStrokeColor(th.SnapTarget)
	s.StrokeOval(p.X-r/2, p.Y-r/2, r, r)
}
