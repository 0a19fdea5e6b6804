package shape

import (
	"math"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/surface"
	"github.com/example/flowsketch/internal/theme"
)

const (
	// LinePadding pads a connector's box around its endpoints.
	LinePadding = 20
	// MinLineWidth and MinLineHeight floor a connector's box.
	MinLineWidth  = 60
	MinLineHeight = 40
	// EndpointControlSize is the side of the square that grabs an endpoint.
	EndpointControlSize = 6
	// ArrowHeadLength is the length of each arrow head leg.
	ArrowHeadLength = 5

	arrowHeadAngle   = math.Pi / 6
	lineHitTolerance = 6
)

// Connector is a two-endpoint shape. Its box is derived from the
// endpoints and refitted whenever one of them moves.
type Connector interface {
	Shape
	// Endpoints returns start and end in scene coordinates.
	Endpoints() (start, end geom.Point)
	// SetEndpoints places both endpoints in scene coordinates.
	SetEndpoints(start, end geom.Point)
	setLocalEndpoints(start, end geom.Point)
}

type connector struct {
	base
	start, end geom.Point // local
	hasEnds    bool
	snapAt     geom.Point
	snapped    bool
}

// Line is a plain segment.
type Line struct{ connector }

// Arrow is a segment with a filled head at its end point.
type Arrow struct{ connector }

func newLine(env Env, box geom.Rect) *Line {
	l := &Line{}
	l.init(env, KindLine, box, l)
	return l
}

func newArrow(env Env, box geom.Rect) *Arrow {
	a := &Arrow{}
	a.init(env, KindArrow, box, a)
	return a
}

// NewLine creates a line between two scene points.
func NewLine(env Env, p1, p2 geom.Point) *Line {
	l := newLine(env, geom.Rect{})
	l.SetEndpoints(p1, p2)
	return l
}

// NewArrow creates an arrow from p1 to p2 in scene coordinates.
func NewArrow(env Env, p1, p2 geom.Point) *Arrow {
	a := newArrow(env, geom.Rect{})
	a.SetEndpoints(p1, p2)
	return a
}

// ensureEnds gives a connector built from a bare box a horizontal segment
// through the middle of it.
func (c *connector) ensureEnds() {
	if c.hasEnds {
		return
	}
	pad := math.Min(LinePadding, c.box.W/4)
	c.start = geom.Pt(pad, c.box.H/2)
	c.end = geom.Pt(c.box.W-pad, c.box.H/2)
	c.hasEnds = true
	c.recomputeBox()
}

func (c *connector) Endpoints() (geom.Point, geom.Point) {
	c.ensureEnds()
	o := c.box.Min()
	return c.start.Add(o), c.end.Add(o)
}

func (c *connector) SetEndpoints(start, end geom.Point) {
	o := c.box.Min()
	c.start = geom.ToRelative(start, o)
	c.end = geom.ToRelative(end, o)
	c.hasEnds = true
	c.recomputeBox()
	c.invalidate()
}

func (c *connector) setLocalEndpoints(start, end geom.Point) {
	c.start, c.end = start, end
	c.hasEnds = true
}

// recomputeBox refits the box to the endpoints: padded bounds with the
// size floor, centred on the segment midpoint, endpoints re-expressed in
// the new frame.
func (c *connector) recomputeBox() {
	o := c.box.Min()
	absStart, absEnd := c.start.Add(o), c.end.Add(o)
	size := geom.CanvasSize(geom.BoundsOf(absStart, absEnd), LinePadding, MinLineWidth, MinLineHeight)
	mid := geom.LineCenter(absStart, absEnd)
	pos := geom.Pt(mid.X-size.W/2, mid.Y-size.H/2)
	c.box = geom.Rect{X: pos.X, Y: pos.Y, W: size.W, H: size.H}
	c.start = geom.ToRelative(absStart, pos)
	c.end = geom.ToRelative(absEnd, pos)
}

func (c *connector) Geometry() Geometry {
	c.ensureEnds()
	g := c.base.Geometry()
	g.Start, g.End, g.Endpoints = c.start, c.end, true
	return g
}

// SetBoxWidth stretches the segment horizontally about the box centre so
// that the refitted box is w wide (subject to the size floor).
func (c *connector) SetBoxWidth(w float64) {
	c.ensureEnds()
	c.start.X, c.end.X = stretch(c.start.X, c.end.X, c.box.W/2, math.Max(w, MinLineWidth)-2*LinePadding)
	c.recomputeBox()
	c.invalidate()
}

// SetBoxHeight is the vertical counterpart of SetBoxWidth.
func (c *connector) SetBoxHeight(h float64) {
	c.ensureEnds()
	c.start.Y, c.end.Y = stretch(c.start.Y, c.end.Y, c.box.H/2, math.Max(h, MinLineHeight)-2*LinePadding)
	c.recomputeBox()
	c.invalidate()
}

// stretch scales a and b about mid so that |b-a| becomes span. A zero
// length span is opened up with a first, so a collapsed axis can grow
// again.
func stretch(a, b, mid, span float64) (float64, float64) {
	span = math.Max(span, 0)
	cur := math.Abs(b - a)
	if cur == 0 {
		return mid - span/2, mid + span/2
	}
	k := span / cur
	return mid + (a-mid)*k, mid + (b-mid)*k
}

func (c *connector) HitTest(p geom.Point) bool {
	c.ensureEnds()
	l := c.local(p)
	if _, ok := c.endpointAt(l); ok {
		return true
	}
	return geom.DistanceToSegment(l, c.start, c.end) <= lineHitTolerance
}

func (c *connector) endpointAt(local geom.Point) (State, bool) {
	hs := float64(EndpointControlSize) / 2
	if geom.HitTestHandle(local.X, local.Y, c.start.X-hs, c.start.Y-hs, EndpointControlSize) {
		return EditingStartPoint, true
	}
	if geom.HitTestHandle(local.X, local.Y, c.end.X-hs, c.end.Y-hs, EndpointControlSize) {
		return EditingEndPoint, true
	}
	return Idle, false
}

func (c *connector) controlAt(local geom.Point) (State, bool) {
	c.ensureEnds()
	st, ok := c.endpointAt(local)
	if ok {
		c.snapped = false
		c.cursor = handles.CursorCrosshair
	}
	return st, ok
}

// dragControl moves the grabbed endpoint to the pointer, or onto a nearby
// snap point, then refits the box.
func (c *connector) dragControl(ev PointerEvent) {
	p := ev.Scene
	c.snapAt, c.snapped = nearestSnap(c.env, p, c.id)
	if c.snapped {
		p = c.snapAt
	}
	lp := c.local(p)
	switch c.state {
	case EditingStartPoint:
		c.start = lp
	case EditingEndPoint:
		c.end = lp
	default:
		return
	}
	c.recomputeBox()
}

func (c *connector) releaseControl(PointerEvent) {
	if c.snapped {
		c.env.logger().Debug("endpoint snapped", "shape", c.id, "at", c.snapAt)
	}
	c.snapped = false
}

func (c *connector) cursorAt(local geom.Point) handles.Cursor {
	c.ensureEnds()
	if _, ok := c.endpointAt(local); ok {
		return handles.CursorCrosshair
	}
	if geom.DistanceToSegment(local, c.start, c.end) <= lineHitTolerance {
		return handles.CursorMove
	}
	return handles.CursorDefault
}

func (c *connector) strokeSegment(s surface.Surface, th *theme.Theme) {
	c.ensureEnds()
	s.SetStrokeColor(th.Connector)
	if c.selected {
		s.SetLineWidth(2.5)
	} else {
		s.SetLineWidth(1.5)
	}
	s.StrokeLine(c.start.X, c.start.Y, c.end.X, c.end.Y)
}

func (l *Line) drawShape(s surface.Surface, th *theme.Theme) {
	l.strokeSegment(s, th)
}

func (a *Arrow) drawShape(s surface.Surface, th *theme.Theme) {
	a.strokeSegment(s, th)
	head := ArrowHead(a.start, a.end)
	s.SetFillColor(th.Connector)
	s.FillPolygon(head[:])
	s.StrokePolygon(head[:])
}

// ArrowHead returns the tip and the two leg ends of the head drawn at end.
// The legs are ArrowHeadLength long, splayed 30 degrees either side of the
// segment.
func ArrowHead(start, end geom.Point) [3]geom.Point {
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	leg := func(a float64) geom.Point {
		return geom.Pt(end.X-ArrowHeadLength*math.Cos(a), end.Y-ArrowHeadLength*math.Sin(a))
	}
	return [3]geom.Point{end, leg(angle - arrowHeadAngle), leg(angle + arrowHeadAngle)}
}

func (c *connector) drawChrome(s surface.Surface, th *theme.Theme) {
	c.ensureEnds()
	hs := float64(EndpointControlSize) / 2
	s.SetLineWidth(1)
	s.SetStrokeColor(th.Selection)
	s.SetFillColor(th.EndpointHandle)
	drawHandles(s, []geom.Point{
		c.start.Sub(geom.Pt(hs, hs)),
		c.end.Sub(geom.Pt(hs, hs)),
	}, EndpointControlSize)
	if c.snapped {
		drawSnapTarget(s, c.local(c.snapAt), th)
	}
}

// labelOrigin sits the label just above the segment midpoint.
func (c *connector) labelOrigin(textW, fontSize float64) geom.Point {
	c.ensureEnds()
	mid := geom.LineCenter(c.start, c.end)
	return geom.Pt(mid.X-textW/2, mid.Y-fontSize/2)
}
