package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ContentBounds returns the smallest rectangle holding every pixel of img
// that differs from bg. ok is false when the image is blank.
func ContentBounds(img image.Image, bg color.Color) (r image.Rectangle, ok bool) {
	br, bgc, bb, ba := bg.RGBA()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pr == br && pg == bgc && pb == bb && pa == ba {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !ok {
				r, ok = px, true
				continue
			}
			r = r.Union(px)
		}
	}
	return r, ok
}

// Trim crops img to its content plus margin pixels on every side, clamped
// to the image. A blank image comes back unchanged.
func Trim(img image.Image, bg color.Color, margin int) *image.NRGBA {
	r, ok := ContentBounds(img, bg)
	if !ok {
		return imaging.Clone(img)
	}
	r = r.Inset(-margin).Intersect(img.Bounds())
	return imaging.Crop(img, r)
}

// Thumbnail scales img down to fit within size x size.
func Thumbnail(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, size, size, imaging.Lanczos)
}
