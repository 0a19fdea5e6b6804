// Package diagram is the in-memory container that owns a set of shapes.
//
// It keeps z-order, routes pointer events to the topmost shape under the
// pointer or to rubber-band selection, hosts the inline text editor and
// maps keyboard commands onto selection and clipboard operations. Like the
// shapes it holds, a Diagram is not safe for concurrent use.
package diagram

import (
	"log/slog"

	"github.com/example/flowsketch/internal/clipboard"
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/selection"
	"github.com/example/flowsketch/internal/shape"
	"github.com/example/flowsketch/internal/theme"
)

// Option configures a Diagram.
type Option func(*Diagram)

// WithTheme sets the palette used by Render and by every shape.
func WithTheme(t *theme.Theme) Option {
	return func(d *Diagram) { d.theme = t }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Diagram) { d.logger = l }
}

// WithObserver registers o for selection changes.
func WithObserver(o selection.Observer[shape.Shape]) Option {
	return func(d *Diagram) { d.observers = append(d.observers, o) }
}

// WithSnapRadius sets how close a connector endpoint must come to a snap
// point to lock onto it.
func WithSnapRadius(r float64) Option {
	return func(d *Diagram) { d.snapRadius = r }
}

// WithInvalidate registers fn to be told whenever the diagram needs to be
// drawn again. s is nil for changes that are not tied to one shape.
func WithInvalidate(fn func(s shape.Shape)) Option {
	return func(d *Diagram) { d.onInvalidate = fn }
}

// WithBoard shares a clipboard board between diagrams.
func WithBoard(b *clipboard.Board) Option {
	return func(d *Diagram) { d.board = b }
}

// Diagram owns the shapes of one drawing.
type Diagram struct {
	shapes []shape.Shape // bottom to top

	sel          *selection.Registry[shape.Shape]
	board        *clipboard.Board
	theme        *theme.Theme
	logger       *slog.Logger
	snapRadius   float64
	observers    []selection.Observer[shape.Shape]
	onInvalidate func(shape.Shape)
	dirty        bool

	editor *Editor

	active     shape.Shape // receiving the current press
	clickShape shape.Shape
	hover      shape.Shape
	pointer    geom.Point
	hasPointer bool

	marquee      bool
	marqueeFrom  geom.Point
	marqueeTo    geom.Point
	marqueeMoved bool
}

// New returns an empty diagram.
func New(opts ...Option) *Diagram {
	d := &Diagram{sel: selection.NewRegistry[shape.Shape]()}
	for _, o := range opts {
		o(d)
	}
	if d.theme == nil {
		d.theme = theme.Default()
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.board == nil {
		d.board = clipboard.NewBoard(d.logger)
	}
	if d.snapRadius <= 0 {
		d.snapRadius = shape.DefaultSnapRadius
	}
	for _, o := range d.observers {
		d.sel.Observe(o)
	}
	return d
}

// Env returns the environment shapes of this diagram are built with.
func (d *Diagram) Env() shape.Env {
	return shape.Env{
		Container:  d,
		Selection:  d.sel,
		Theme:      d.theme,
		Logger:     d.logger,
		SnapRadius: d.snapRadius,
	}
}

// Theme returns the active palette.
func (d *Diagram) Theme() *theme.Theme { return d.theme }

// SetTheme switches palette. Shapes created earlier keep the palette
// they were built with until they are pasted or recreated.
func (d *Diagram) SetTheme(t *theme.Theme) {
	d.theme = t
	d.Invalidate(nil)
}

// Selection exposes the selection registry.
func (d *Diagram) Selection() *selection.Registry[shape.Shape] { return d.sel }

// Board exposes the clipboard board.
func (d *Diagram) Board() *clipboard.Board { return d.board }

// Add puts s on top. Adding a shape twice is a no-op.
func (d *Diagram) Add(s shape.Shape) {
	if d.indexOf(s) >= 0 {
		return
	}
	d.shapes = append(d.shapes, s)
	d.logger.Debug("shape added", "id", s.ID(), "kind", s.Kind())
	d.Invalidate(s)
}

// Remove deletes s, dropping it from the selection first. An inline
// editor open on s is cancelled.
func (d *Diagram) Remove(s shape.Shape) {
	i := d.indexOf(s)
	if i < 0 {
		return
	}
	if d.editor != nil && s.State() == shape.EditingText {
		d.editor.Cancel()
	}
	if s.Selected() {
		s.SetSelected(false)
	}
	d.shapes = append(d.shapes[:i], d.shapes[i+1:]...)
	for _, p := range []*shape.Shape{&d.active, &d.clickShape, &d.hover} {
		if *p != nil && (*p).ID() == s.ID() {
			*p = nil
		}
	}
	d.logger.Debug("shape removed", "id", s.ID())
	d.Invalidate(nil)
}

// BringToFront moves s to the top of the z-order.
func (d *Diagram) BringToFront(s shape.Shape) {
	i := d.indexOf(s)
	if i < 0 || i == len(d.shapes)-1 {
		return
	}
	d.shapes = append(d.shapes[:i], d.shapes[i+1:]...)
	d.shapes = append(d.shapes, s)
	d.Invalidate(s)
}

// Invalidate marks the diagram as needing a redraw.
func (d *Diagram) Invalidate(s shape.Shape) {
	d.dirty = true
	if d.onInvalidate != nil {
		d.onInvalidate(s)
	}
}

// Dirty reports whether anything changed since the last Render.
func (d *Diagram) Dirty() bool { return d.dirty }

// Shapes returns the shapes bottom to top.
func (d *Diagram) Shapes() []shape.Shape {
	return append([]shape.Shape(nil), d.shapes...)
}

// Len returns the number of shapes.
func (d *Diagram) Len() int { return len(d.shapes) }

// ShapeAt returns the topmost shape hit at p.
func (d *Diagram) ShapeAt(p geom.Point) shape.Shape {
	for i := len(d.shapes) - 1; i >= 0; i-- {
		if d.shapes[i].HitTest(p) {
			return d.shapes[i]
		}
	}
	return nil
}

// Bounds is the union of every shape box. ok is false for an empty diagram.
func (d *Diagram) Bounds() (r geom.Rect, ok bool) {
	for i, s := range d.shapes {
		if i == 0 {
			r = s.Box()
			continue
		}
		r = r.Union(s.Box())
	}
	return r, len(d.shapes) > 0
}

func (d *Diagram) indexOf(s shape.Shape) int {
	if s == nil {
		return -1
	}
	for i, o := range d.shapes {
		if o.ID() == s.ID() {
			return i
		}
	}
	return -1
}
