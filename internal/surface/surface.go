// Package surface defines the draw calls the diagram engine issues and the
// backends that carry them out.
package surface

import (
	"image"
	"image/color"

	"github.com/example/flowsketch/internal/geom"
)

// Surface is a 2-D drawing target. Shapes draw through it in whatever frame
// the caller set up; see Offset for mapping local shape coordinates onto the
// scene.
type Surface interface {
	// Clear paints the whole surface with c.
	Clear(c color.Color)
	// ClearRect resets a region to the surface background.
	ClearRect(x, y, w, h float64)

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)

	StrokeRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	// StrokeOval and FillOval draw the ellipse inscribed in the box.
	StrokeOval(x, y, w, h float64)
	FillOval(x, y, w, h float64)
	StrokePolygon(pts []geom.Point)
	FillPolygon(pts []geom.Point)
	StrokeLine(x1, y1, x2, y2 float64)

	// FillText draws s with its baseline origin at (x, y).
	FillText(s string, x, y float64)
	MeasureText(s string) float64
	FontSize() float64

	// Snapshot returns the pixels drawn so far.
	Snapshot() image.Image
}

// Offset returns a Surface that adds (dx, dy) to every coordinate before
// forwarding to s.
func Offset(s Surface, dx, dy float64) Surface {
	if o, ok := s.(*offset); ok {
		return &offset{Surface: o.Surface, dx: o.dx + dx, dy: o.dy + dy}
	}
	return &offset{Surface: s, dx: dx, dy: dy}
}

type offset struct {
	Surface
	dx, dy float64
}

func (o *offset) ClearRect(x, y, w, h float64) { o.Surface.ClearRect(x+o.dx, y+o.dy, w, h) }
func (o *offset) StrokeRect(x, y, w, h float64) {
	o.Surface.StrokeRect(x+o.dx, y+o.dy, w, h)
}
func (o *offset) FillRect(x, y, w, h float64) { o.Surface.FillRect(x+o.dx, y+o.dy, w, h) }
func (o *offset) StrokeOval(x, y, w, h float64) {
	o.Surface.StrokeOval(x+o.dx, y+o.dy, w, h)
}
func (o *offset) FillOval(x, y, w, h float64) { o.Surface.FillOval(x+o.dx, y+o.dy, w, h) }
func (o *offset) StrokePolygon(pts []geom.Point) {
	o.Surface.StrokePolygon(o.shift(pts))
}
func (o *offset) FillPolygon(pts []geom.Point) { o.Surface.FillPolygon(o.shift(pts)) }
func (o *offset) StrokeLine(x1, y1, x2, y2 float64) {
	o.Surface.StrokeLine(x1+o.dx, y1+o.dy, x2+o.dx, y2+o.dy)
}
func (o *offset) FillText(s string, x, y float64) { o.Surface.FillText(s, x+o.dx, y+o.dy) }

func (o *offset) shift(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	d := geom.Pt(o.dx, o.dy)
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}
