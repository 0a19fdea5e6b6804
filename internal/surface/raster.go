package surface

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/example/flowsketch/internal/geom"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the label size used when callers pass zero.
const DefaultFontSize = 12

var (
	fontOnce sync.Once
	fontErr  error
	ttfFont  *truetype.Font
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		ttfFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return ttfFont, fontErr
}

// Raster is a Surface that rasterises into an RGBA image using gg.
type Raster struct {
	dc         *gg.Context
	stroke     color.Color
	fill       color.Color
	background color.Color
	fontSize   float64
}

// NewRaster allocates a w x h raster surface with labels at fontSize points.
func NewRaster(w, h int, fontSize float64) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster size %dx%d must be positive", w, h)
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	dc := gg.NewContext(w, h)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	return &Raster{
		dc:         dc,
		stroke:     color.Black,
		fill:       color.White,
		background: color.White,
		fontSize:   fontSize,
	}, nil
}

// Width returns the surface width in pixels.
func (r *Raster) Width() int { return r.dc.Width() }

// Height returns the surface height in pixels.
func (r *Raster) Height() int { return r.dc.Height() }

func (r *Raster) Clear(c color.Color) {
	r.background = c
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	r.dc.SetColor(r.background)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) SetStrokeColor(c color.Color) { r.stroke = c }
func (r *Raster) SetFillColor(c color.Color)   { r.fill = c }
func (r *Raster) SetLineWidth(w float64)       { r.dc.SetLineWidth(w) }

func (r *Raster) StrokeRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.strokePath()
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.fillPath()
}

func (r *Raster) StrokeOval(x, y, w, h float64) {
	r.dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	r.strokePath()
}

func (r *Raster) FillOval(x, y, w, h float64) {
	r.dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	r.fillPath()
}

func (r *Raster) StrokePolygon(pts []geom.Point) {
	if r.polygon(pts) {
		r.strokePath()
	}
}

func (r *Raster) FillPolygon(pts []geom.Point) {
	if r.polygon(pts) {
		r.fillPath()
	}
}

func (r *Raster) StrokeLine(x1, y1, x2, y2 float64) {
	r.dc.DrawLine(x1, y1, x2, y2)
	r.strokePath()
}

func (r *Raster) FillText(s string, x, y float64) {
	r.dc.SetColor(r.fill)
	r.dc.DrawString(s, x, y)
}

func (r *Raster) MeasureText(s string) float64 {
	w, _ := r.dc.MeasureString(s)
	return w
}

func (r *Raster) FontSize() float64 { return r.fontSize }

// Snapshot returns the backing image. The image is shared with the surface,
// so copy it before drawing again if it must stay stable.
func (r *Raster) Snapshot() image.Image { return r.dc.Image() }

func (r *Raster) polygon(pts []geom.Point) bool {
	if len(pts) < 2 {
		return false
	}
	r.dc.NewSubPath()
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	return true
}

func (r *Raster) strokePath() {
	r.dc.SetColor(r.stroke)
	r.dc.Stroke()
}

func (r *Raster) fillPath() {
	r.dc.SetColor(r.fill)
	r.dc.Fill()
}
