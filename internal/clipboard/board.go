// Package clipboard holds the diagram clipboard and the bridge to the
// system clipboard.
//
// A Board snapshots shapes by kind and geometry; pasting builds fresh
// shapes from the snapshot and hands them back to the caller, which decides
// where they live. The package level functions publish text and images to
// the desktop clipboard.
package clipboard

import (
	"log/slog"
	"strings"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/shape"
)

// Item is one copied shape.
type Item struct {
	Kind     shape.Kind
	Geometry shape.Geometry
}

// Board is the diagram clipboard. It lives as long as the editor and is
// replaced wholesale by every Copy. A Board is not safe for concurrent use.
type Board struct {
	items    []Item
	centroid geom.Point
	logger   *slog.Logger
}

// NewBoard returns an empty board. A nil logger discards warnings.
func NewBoard(logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Board{logger: logger}
}

// Copy replaces the board with snapshots of shapes and returns how many were
// kept. Shapes whose kind cannot be determined are skipped with a warning.
func (b *Board) Copy(shapes []shape.Shape) int {
	b.items = b.items[:0]
	var sum geom.Point
	for i, s := range shapes {
		if s == nil || !s.Kind().Valid() {
			b.logger.Warn("skipping shape with unknown kind on copy", "index", i)
			continue
		}
		g := s.Geometry()
		b.items = append(b.items, Item{Kind: s.Kind(), Geometry: g})
		sum = sum.Add(g.Center())
	}
	b.centroid = geom.Point{}
	if n := float64(len(b.items)); n > 0 {
		b.centroid = geom.Pt(sum.X/n, sum.Y/n)
	}
	b.logger.Debug("copied shapes", "count", len(b.items), "centroid", b.centroid)
	return len(b.items)
}

// Paste builds a fresh shape for every item, translated by
// target - centroid, and returns them. The board is left untouched, so the
// same contents can be pasted again. An empty board yields nil.
func (b *Board) Paste(env shape.Env, target geom.Point) []shape.Shape {
	if len(b.items) == 0 {
		return nil
	}
	d := target.Sub(b.centroid)
	out := make([]shape.Shape, 0, len(b.items))
	for _, it := range b.items {
		s := shape.FromGeometry(env, it.Kind, it.Geometry)
		s.Translate(d.X, d.Y)
		out = append(out, s)
	}
	return out
}

// Len returns the number of items on the board.
func (b *Board) Len() int { return len(b.items) }

// Centroid returns the mean box centre of the copied shapes. ok is false
// when the board is empty.
func (b *Board) Centroid() (c geom.Point, ok bool) {
	return b.centroid, len(b.items) > 0
}

// Items returns a copy of the board contents.
func (b *Board) Items() []Item {
	return append([]Item(nil), b.items...)
}

// Text joins the non-empty labels on the board, one per line, for the
// system clipboard.
func (b *Board) Text() string {
	var labels []string
	for _, it := range b.items {
		if it.Geometry.Label != "" {
			labels = append(labels, it.Geometry.Label)
		}
	}
	return strings.Join(labels, "\n")
}
