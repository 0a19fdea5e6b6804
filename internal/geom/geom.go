// Package geom holds the layout math shared by every shape kind and both
// handle managers. Everything here is pure and deterministic.
package geom

import "math"

// Point is a location in scene or local coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned box given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the midpoint of the box.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Size returns the box dimensions.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// RectFromPoints returns the normalised box spanned by two corners, as used
// for rubber-band selection where the drag may run in any direction.
func RectFromPoints(a, b Point) Rect {
	minX, minY, maxX, maxY := BoundingBox(a, b)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Bounds is the (minX, minY, maxX, maxY) form of a bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf wraps BoundingBox in a Bounds value.
func BoundsOf(p1, p2 Point) Bounds {
	minX, minY, maxX, maxY := BoundingBox(p1, p2)
	return Bounds{minX, minY, maxX, maxY}
}

// DrawingArea shrinks a totalW x totalH box by padding on every side. It
// separates a shape's chrome border from its drawable interior.
func DrawingArea(totalW, totalH, padding float64) Rect {
	return Rect{
		X: padding,
		Y: padding,
		W: totalW - 2*padding,
		H: totalH - 2*padding,
	}
}

// ResizeHandlePositions lays out the eight resize handles of area. The order
// is top-left, top-centre, top-right, middle-left, middle-right,
// bottom-left, bottom-centre, bottom-right. Each position is the top-left
// of a handleSize square centred on the geometric point.
func ResizeHandlePositions(area Rect, handleSize float64) [8]Point {
	hs := handleSize / 2
	x, y, w, h := area.X, area.Y, area.W, area.H
	cx := x + w/2
	cy := y + h/2
	return [8]Point{
		{x - hs, y - hs},
		{cx - hs, y - hs},
		{x + w - hs, y - hs},
		{x - hs, cy - hs},
		{x + w - hs, cy - hs},
		{x - hs, y + h - hs},
		{cx - hs, y + h - hs},
		{x + w - hs, y + h - hs},
	}
}

// HitTestHandle reports whether (px, py) falls in the handleSize square
// whose top-left corner is (hx, hy). Bounds are inclusive.
func HitTestHandle(px, py, hx, hy, handleSize float64) bool {
	return px >= hx && px <= hx+handleSize && py >= hy && py <= hy+handleSize
}

// BoundingBox returns the axis-aligned extent of two points.
func BoundingBox(p1, p2 Point) (minX, minY, maxX, maxY float64) {
	return math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y), math.Max(p1.X, p2.X), math.Max(p1.Y, p2.Y)
}

// CanvasSize pads b on every side and applies a minimum size floor.
func CanvasSize(b Bounds, padding, minW, minH float64) Size {
	return Size{
		W: math.Max((b.MaxX-b.MinX)+2*padding, minW),
		H: math.Max((b.MaxY-b.MinY)+2*padding, minH),
	}
}

// CanvasPosition returns the top-left of b padded by padding.
func CanvasPosition(b Bounds, padding float64) Point {
	return Point{b.MinX - padding, b.MinY - padding}
}

// ToRelative expresses abs in the frame whose origin is canvasPos.
func ToRelative(abs, canvasPos Point) Point {
	return abs.Sub(canvasPos)
}

// LineCenter returns the midpoint of a segment.
func LineCenter(p1, p2 Point) Point {
	return Point{(p1.X + p2.X) / 2, (p1.Y + p2.Y) / 2}
}

// CenteredTextPosition returns the baseline origin that centres a run of
// text textW wide inside a totalW x totalH box.
func CenteredTextPosition(totalW, totalH, textW, fontSize float64) Point {
	return Point{
		X: (totalW - textW) / 2,
		Y: totalH/2 + fontSize/2,
	}
}

// Distance is the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// DistanceToSegment is the distance from p to the closest point of the
// segment a-b.
func DistanceToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return Distance(p, Point{a.X + t*dx, a.Y + t*dy})
}
