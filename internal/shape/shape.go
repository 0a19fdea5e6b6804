// Package shape implements the diagram shapes and their pointer protocol.
//
// The set of shapes is closed: Oval, Rectangle, Diamond, Line and Arrow.
// Behaviour common to all of them (selection, dragging, inline text
// editing) lives in free functions over the variant; each variant only
// supplies its outline, its control points and what a drag on those
// control points means.
package shape

import (
	"log/slog"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/selection"
	"github.com/example/flowsketch/internal/surface"
	"github.com/example/flowsketch/internal/theme"
	"github.com/google/uuid"
)

// Shape is a placed diagram element.
type Shape interface {
	ID() uuid.UUID
	Kind() Kind

	// Position is the top-left of the box in scene coordinates.
	Position() geom.Point
	Size() geom.Size
	Box() geom.Rect
	SetPosition(p geom.Point)
	SetBoxWidth(w float64)
	SetBoxHeight(h float64)
	Translate(dx, dy float64)

	Label() string
	SetText(s string)

	Selected() bool
	SetSelected(v bool)

	State() State
	Cursor() handles.Cursor

	// HitTest reports whether the scene point p picks this shape.
	HitTest(p geom.Point) bool
	Geometry() Geometry
	// Draw renders the whole shape. s is in scene coordinates.
	Draw(s surface.Surface)

	HandlePress(ev PointerEvent)
	HandleDrag(ev PointerEvent)
	HandleRelease(ev PointerEvent)
	HandleClick(ev PointerEvent)
	HandleMouseMoved(ev PointerEvent)

	core() *base
}

// Snapper is a shape that offers snap points to connector endpoints.
type Snapper interface {
	Shape
	SnapPoints() []geom.Point
	NearestSnapPoint(p geom.Point, radius float64) (geom.Point, bool)
	ConnectionPoint(d handles.Direction) geom.Point
}

// Container hosts shapes. The diagram implements it.
type Container interface {
	Add(s Shape)
	BringToFront(s Shape)
	// Invalidate asks for s to be drawn again.
	Invalidate(s Shape)
	// Shapes returns the shapes bottom to top.
	Shapes() []Shape
	// OpenTextEditor shows an inline editor centred on at, pre-filled with
	// initial. commit receives the final value on enter or blur.
	OpenTextEditor(at geom.Point, initial string, commit func(string)) TextEditor
}

// TextEditor is an open inline text-input widget.
type TextEditor interface {
	Position() geom.Point
	Move(dx, dy float64)
	Value() string
	Close()
}

// Env carries what every shape needs from its surroundings. The zero Env
// is usable: shapes then live without a container, track selection only in
// their own flag and log nowhere.
type Env struct {
	Container  Container
	Selection  *selection.Registry[Shape]
	Theme      *theme.Theme
	Logger     *slog.Logger
	SnapRadius float64
}

// DefaultSnapRadius is used when Env.SnapRadius is zero.
const DefaultSnapRadius = 12

var discard = slog.New(slog.DiscardHandler)

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return discard
	}
	return e.Logger
}

func (e Env) theme() *theme.Theme {
	if e.Theme == nil {
		return theme.Default()
	}
	return e.Theme
}

func (e Env) snapRadius() float64 {
	if e.SnapRadius <= 0 {
		return DefaultSnapRadius
	}
	return e.SnapRadius
}

// PointerEvent is one input event in scene coordinates.
type PointerEvent struct {
	Scene      geom.Point
	Shift      bool
	Ctrl       bool
	ClickCount int
}

// Modified reports whether shift or ctrl was held.
func (ev PointerEvent) Modified() bool { return ev.Shift || ev.Ctrl }

// Geometry is a structural copy of a shape's placement. Start and End are
// only meaningful when Endpoints is set.
type Geometry struct {
	Position  geom.Point
	Size      geom.Size
	Start     geom.Point
	End       geom.Point
	Endpoints bool
	Label     string
}

// Center returns the middle of the box.
func (g Geometry) Center() geom.Point {
	return geom.Pt(g.Position.X+g.Size.W/2, g.Position.Y+g.Size.H/2)
}

// variant is what each concrete kind adds on top of base.
type variant interface {
	Shape
	// controlAt claims a press on one of the shape's control points.
	controlAt(local geom.Point) (State, bool)
	dragControl(ev PointerEvent)
	releaseControl(ev PointerEvent)
	cursorAt(local geom.Point) handles.Cursor
	drawShape(s surface.Surface, th *theme.Theme)
	drawChrome(s surface.Surface, th *theme.Theme)
	labelOrigin(textW, fontSize float64) geom.Point
}

type base struct {
	env  Env
	v    variant
	id   uuid.UUID
	kind Kind

	box      geom.Rect
	label    string
	selected bool
	state    State
	cursor   handles.Cursor

	pressAt geom.Point
	anchor  geom.Point
	origBox geom.Rect
	dragged bool
	editor  TextEditor
}

func (b *base) init(env Env, k Kind, box geom.Rect, v variant) {
	b.env = env
	b.v = v
	b.id = uuid.New()
	b.kind = k
	b.box = box
}

func (b *base) core() *base { return b }

func (b *base) ID() uuid.UUID        { return b.id }
func (b *base) Kind() Kind           { return b.kind }
func (b *base) Position() geom.Point { return b.box.Min() }
func (b *base) Size() geom.Size      { return b.box.Size() }
func (b *base) Box() geom.Rect       { return b.box }
func (b *base) Label() string        { return b.label }
func (b *base) Selected() bool       { return b.selected }
func (b *base) State() State         { return b.state }

func (b *base) Cursor() handles.Cursor { return b.cursor }

func (b *base) SetPosition(p geom.Point) {
	b.Translate(p.X-b.box.X, p.Y-b.box.Y)
}

// Translate moves the box and any open inline editor.
func (b *base) Translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	b.box.X += dx
	b.box.Y += dy
	if b.editor != nil {
		b.editor.Move(dx, dy)
	}
	b.invalidate()
}

func (b *base) SetText(s string) {
	b.label = s
	b.invalidate()
}

// SetSelected sets the flag and mirrors it into the selection registry.
func (b *base) SetSelected(v bool) {
	b.selected = v
	if reg := b.env.Selection; reg != nil {
		if v {
			reg.Add(b.v)
		} else {
			reg.Remove(b.v)
		}
	}
	b.invalidate()
}

func (b *base) Geometry() Geometry {
	return Geometry{Position: b.box.Min(), Size: b.box.Size(), Label: b.label}
}

func (b *base) HandlePress(ev PointerEvent)      { press(b.v, ev) }
func (b *base) HandleDrag(ev PointerEvent)       { drag(b.v, ev) }
func (b *base) HandleRelease(ev PointerEvent)    { release(b.v, ev) }
func (b *base) HandleClick(ev PointerEvent)      { click(b.v, ev) }
func (b *base) HandleMouseMoved(ev PointerEvent) { mouseMoved(b.v, ev) }

// Draw renders the shape through a surface offset to the box.
func (b *base) Draw(s surface.Surface) { draw(b.v, s) }

func (b *base) local(p geom.Point) geom.Point { return geom.ToRelative(p, b.box.Min()) }

func (b *base) invalidate() {
	if c := b.env.Container; c != nil {
		c.Invalidate(b.v)
	}
}
