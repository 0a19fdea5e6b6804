// Package render post-processes exported diagram images.
package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow effect applied to an image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.NRGBA
	// Offset reports how far the original content was translated when
	// rebasing onto the expanded canvas.
	Offset image.Point
}

// DefaultShadowOptions returns a soft drop shadow suited to diagram exports.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(8, 8),
		Opacity: 0.45,
	}
}

// ApplyShadow composites img over a blurred copy of its alpha mask. The
// result always has a zero origin. Offset tells where img's top-left corner
// ended up inside the expanded canvas.
func ApplyShadow(img image.Image, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	srcBounds := img.Bounds()
	if srcBounds.Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: imaging.Clone(img)}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	paddedBounds := srcBounds.Inset(-radius)
	shadowBounds := paddedBounds.Add(opts.Offset)
	compositeBounds := srcBounds.Union(shadowBounds)

	shift := srcBounds.Min.Sub(compositeBounds.Min)
	shadowOrigin := shadowBounds.Min.Sub(compositeBounds.Min)

	mask := imaging.New(paddedBounds.Dx(), paddedBounds.Dy(), color.Transparent)
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			mask.SetNRGBA(x-paddedBounds.Min.X, y-paddedBounds.Min.Y, color.NRGBA{A: uint8(a >> 8)})
		}
	}
	if radius > 0 {
		mask = imaging.Blur(mask, float64(radius)/2)
	}

	dst := imaging.New(compositeBounds.Dx(), compositeBounds.Dy(), color.Transparent)
	dst = imaging.Overlay(dst, mask, shadowOrigin, opacity)
	dst = imaging.Overlay(dst, img, shift, 1)
	return ShadowResult{Image: dst, Offset: shift}
}
