package diagram

import (
	"github.com/example/flowsketch/internal/surface"
)

// Render redraws the whole diagram onto s in scene coordinates: background,
// shapes bottom to top, the rubber band and the inline editor.
func (d *Diagram) Render(s surface.Surface) {
	th := d.theme
	s.Clear(th.Background)
	for _, sh := range d.shapes {
		sh.Draw(s)
	}
	if r, ok := d.MarqueeRect(); ok {
		s.SetFillColor(th.MarqueeFill)
		s.FillRect(r.X, r.Y, r.W, r.H)
		s.SetLineWidth(1)
		s.SetStrokeColor(th.Marquee)
		s.StrokeRect(r.X, r.Y, r.W, r.H)
	}
	if d.editor != nil {
		d.editor.draw(s)
	}
	d.dirty = false
}

// RenderAt draws the diagram translated by (dx, dy), as used when exporting
// a region that does not start at the scene origin.
func (d *Diagram) RenderAt(s surface.Surface, dx, dy float64) {
	d.Render(surface.Offset(s, dx, dy))
}
