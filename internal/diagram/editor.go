package diagram

import (
	"math"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/shape"
	"github.com/example/flowsketch/internal/surface"
)

const (
	editorMinWidth = 80
	editorPadding  = 6
)

// Editor is the inline text editor the diagram hosts for a shape label.
// It is centred on its position.
type Editor struct {
	d       *Diagram
	at      geom.Point
	initial string
	value   []rune
	commit  func(string)
	size    geom.Size
	closed  bool
}

// OpenTextEditor implements shape.Container. Opening a second editor
// commits the first.
func (d *Diagram) OpenTextEditor(at geom.Point, initial string, commit func(string)) shape.TextEditor {
	if d.editor != nil {
		d.editor.Commit()
	}
	d.editor = &Editor{
		d:       d,
		at:      at,
		initial: initial,
		value:   []rune(initial),
		commit:  commit,
		size:    geom.Size{W: editorMinWidth, H: surface.DefaultFontSize + 2*editorPadding},
	}
	d.Invalidate(nil)
	return d.editor
}

// TextEditor returns the open inline editor, or nil.
func (d *Diagram) TextEditor() *Editor { return d.editor }

func (e *Editor) Position() geom.Point { return e.at }

func (e *Editor) Move(dx, dy float64) {
	e.at = e.at.Add(geom.Pt(dx, dy))
	e.d.Invalidate(nil)
}

func (e *Editor) Value() string { return string(e.value) }

// SetValue replaces the text being edited.
func (e *Editor) SetValue(s string) {
	e.value = []rune(s)
	e.d.Invalidate(nil)
}

// Insert appends r.
func (e *Editor) Insert(r rune) {
	e.value = append(e.value, r)
	e.d.Invalidate(nil)
}

// Backspace drops the last rune. It reports false on an empty value.
func (e *Editor) Backspace() bool {
	if len(e.value) == 0 {
		return false
	}
	e.value = e.value[:len(e.value)-1]
	e.d.Invalidate(nil)
	return true
}

// Close removes the editor without committing.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if e.d.editor == e {
		e.d.editor = nil
	}
	e.d.Invalidate(nil)
}

// Commit hands the current value to the shape, which closes the editor.
func (e *Editor) Commit() {
	if e.closed {
		return
	}
	fn := e.commit
	v := e.Value()
	if fn == nil {
		e.Close()
		return
	}
	fn(v)
	e.Close()
}

// Cancel commits the value the editor opened with.
func (e *Editor) Cancel() {
	e.value = []rune(e.initial)
	e.Commit()
}

// Rect is the editor box in scene coordinates.
func (e *Editor) Rect() geom.Rect {
	return geom.R(e.at.X-e.size.W/2, e.at.Y-e.size.H/2, e.size.W, e.size.H)
}

// Contains reports whether p is inside the editor box.
func (e *Editor) Contains(p geom.Point) bool { return e.Rect().Contains(p) }

func (e *Editor) draw(s surface.Surface) {
	text := e.Value()
	fs := s.FontSize()
	tw := s.MeasureText(text)
	e.size = geom.Size{
		W: math.Max(editorMinWidth, tw+2*editorPadding),
		H: fs + 2*editorPadding,
	}
	r := e.Rect()
	th := e.d.theme
	s.SetFillColor(th.EditorBackground)
	s.FillRect(r.X, r.Y, r.W, r.H)
	s.SetLineWidth(1)
	s.SetStrokeColor(th.Selection)
	s.StrokeRect(r.X, r.Y, r.W, r.H)
	s.SetFillColor(th.EditorText)
	x := r.X + editorPadding
	baseline := r.Y + editorPadding + fs*0.85
	s.FillText(text, x, baseline)
	s.SetStrokeColor(th.EditorText)
	s.StrokeLine(x+tw+1, r.Y+editorPadding-1, x+tw+1, r.Y+r.H-editorPadding+1)
}
