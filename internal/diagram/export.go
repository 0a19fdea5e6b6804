package diagram

import (
	"errors"
	"image"
	"math"

	"github.com/example/flowsketch/internal/surface"
)

// ErrEmpty is returned when exporting a diagram with no shapes.
var ErrEmpty = errors.New("diagram is empty")

// Export rasterises the diagram cropped to its bounds plus margin on every
// side. Labels use fontSize points, or the surface default when zero.
func (d *Diagram) Export(margin, fontSize float64) (image.Image, error) {
	b, ok := d.Bounds()
	if !ok {
		return nil, ErrEmpty
	}
	w := int(math.Ceil(b.W + 2*margin))
	h := int(math.Ceil(b.H + 2*margin))
	r, err := surface.NewRaster(w, h, fontSize)
	if err != nil {
		return nil, err
	}
	d.RenderAt(r, margin-b.X, margin-b.Y)
	return r.Snapshot(), nil
}
