package diagram

import (
	"encoding/json"
	"fmt"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/shape"
)

// Creator is a deferred shape instantiation, as carried by a palette drag.
type Creator struct {
	Kind   shape.Kind `json:"kind"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
}

// Palette lists the default creator for every kind.
func Palette() []Creator {
	return []Creator{
		{Kind: shape.KindOval, Width: 120, Height: 80},
		{Kind: shape.KindRectangle, Width: 120, Height: 80},
		{Kind: shape.KindDiamond, Width: 120, Height: 100},
		{Kind: shape.KindLine, Width: 140, Height: 40},
		{Kind: shape.KindArrow, Width: 140, Height: 40},
	}
}

// DefaultCreator returns the palette entry for k.
func DefaultCreator(k shape.Kind) Creator {
	for _, c := range Palette() {
		if c.Kind == k {
			return c
		}
	}
	return Creator{Kind: k, Width: 120, Height: 80}
}

// Encode serialises c as a drag payload.
func (c Creator) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// DecodeCreator parses a drag payload. Missing sizes fall back to the
// palette default for the kind.
func DecodeCreator(data []byte) (Creator, error) {
	var c Creator
	if err := json.Unmarshal(data, &c); err != nil {
		return Creator{}, fmt.Errorf("decode creator: %w", err)
	}
	def := DefaultCreator(c.Kind)
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	return c, nil
}

// Create builds a kind shape w x h centred on at and adds it on top. An
// invalid kind panics, see shape.New.
func (d *Diagram) Create(kind shape.Kind, at geom.Point, w, h float64) shape.Shape {
	def := DefaultCreator(kind)
	if w <= 0 {
		w = def.Width
	}
	if h <= 0 {
		h = def.Height
	}
	s := shape.New(d.Env(), kind, geom.R(at.X-w/2, at.Y-h/2, w, h))
	d.Add(s)
	return s
}

// CreateFrom instantiates c centred on at.
func (d *Diagram) CreateFrom(c Creator, at geom.Point) shape.Shape {
	return d.Create(c.Kind, at, c.Width, c.Height)
}

// Connect joins two block shapes with an arrow between the given
// connection points.
func (d *Diagram) Connect(from shape.Snapper, fromDir handles.Direction, to shape.Snapper, toDir handles.Direction) *shape.Arrow {
	a := shape.NewArrow(d.Env(), from.ConnectionPoint(fromDir), to.ConnectionPoint(toDir))
	d.Add(a)
	return a
}
