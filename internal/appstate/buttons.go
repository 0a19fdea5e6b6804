package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/flowsketch/internal/diagram"
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/shape"
	"github.com/example/flowsketch/internal/surface"
	"github.com/example/flowsketch/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.Reset()
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// Reset drops the cached renderings, e.g. after a theme change.
func (cb *CacheButton) Reset() { cb.cache = [3]*image.RGBA{} }

func buttonFill(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover
	case StatePressed:
		return th.ButtonBackgroundPress
	}
	return th.ButtonBackground
}

// ActionButton runs a command such as export or delete.
type ActionButton struct {
	label      string
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, ab.rect, &image.Uniform{buttonFill(ab.theme, state)}, image.Point{}, draw.Src)
	drawRect(dst, ab.rect, ab.theme.ButtonBorder, 1)
	drawLabel(dst, ab.label, image.Pt(centredX(ab.rect, ab.label), ab.rect.Min.Y+16), ab.theme.ButtonText)
}

func (ab *ActionButton) Rect() image.Rectangle     { return ab.rect }
func (ab *ActionButton) SetRect(r image.Rectangle) { ab.rect = r }
func (ab *ActionButton) Activate() {
	if ab.onActivate != nil {
		ab.onActivate()
	}
}

// PaletteButton offers one shape kind. Clicking it drops the shape in the
// middle of the canvas; dragging it carries a Creator payload to the drop
// point.
type PaletteButton struct {
	creator    diagram.Creator
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

const paletteLabelHeight = 14

func (pb *PaletteButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := buttonFill(pb.theme, state)
	draw.Draw(dst, pb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, pb.rect, pb.theme.ButtonBorder, 1)

	iw, ih := pb.rect.Dx(), pb.rect.Dy()-paletteLabelHeight
	if r, err := surface.NewRaster(iw, ih, 0); err == nil {
		r.Clear(bg)
		icon := shape.New(shape.Env{Theme: pb.theme}, pb.creator.Kind, iconBox(pb.creator, float64(iw), float64(ih)))
		icon.Draw(r)
		draw.Draw(dst, image.Rect(pb.rect.Min.X, pb.rect.Min.Y, pb.rect.Max.X, pb.rect.Min.Y+ih), r.Snapshot(), image.Point{}, draw.Over)
	}
	name := pb.creator.Kind.String()
	drawLabel(dst, name, image.Pt(centredX(pb.rect, name), pb.rect.Max.Y-3), pb.theme.ButtonText)
}

func (pb *PaletteButton) Rect() image.Rectangle     { return pb.rect }
func (pb *PaletteButton) SetRect(r image.Rectangle) { pb.rect = r }
func (pb *PaletteButton) Activate() {
	if pb.onActivate != nil {
		pb.onActivate()
	}
}

// iconBox scales the creator's default size into a w x h cell.
func iconBox(c diagram.Creator, w, h float64) geom.Rect {
	const inset = 6
	scale := min((w-2*inset)/c.Width, (h-2*inset)/c.Height)
	bw, bh := c.Width*scale, c.Height*scale
	return geom.R((w-bw)/2, (h-bh)/2, bw, bh)
}

func drawLabel(dst *image.RGBA, s string, dot image.Point, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(s)
}

func measureLabel(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

// centredX is the dot x that centres s in r, clamped to a small left inset.
func centredX(r image.Rectangle, s string) int {
	return r.Min.X + max(4, (r.Dx()-measureLabel(s))/2)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Over)
}
