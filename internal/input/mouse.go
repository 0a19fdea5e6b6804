// Package input turns raw window events into the pointer and keyboard
// vocabulary of the diagram engine.
package input

import (
	"time"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/shape"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

const (
	// DefaultDoubleClick is the longest gap between clicks that still
	// counts towards a double click.
	DefaultDoubleClick = 400 * time.Millisecond
	// ClickSlop is how far the pointer may travel between press and
	// release for the release to also count as a click.
	ClickSlop = 4
)

// EventType classifies a pointer Event.
type EventType int

const (
	Press EventType = iota
	Drag
	Release
	Click
	Move
)

var eventNames = [...]string{"press", "drag", "release", "click", "move"}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is a translated pointer event in scene coordinates.
type Event struct {
	Type       EventType
	Point      geom.Point
	Shift      bool
	Ctrl       bool
	ClickCount int
}

// Pointer converts e for the shape handlers.
func (e Event) Pointer() shape.PointerEvent {
	return shape.PointerEvent{Scene: e.Point, Shift: e.Shift, Ctrl: e.Ctrl, ClickCount: e.ClickCount}
}

// Translator tracks the left button across mouse events. It is not safe
// for concurrent use; feed it from the event loop.
type Translator struct {
	// DoubleClick bounds the gap between counted clicks.
	DoubleClick time.Duration
	// ToScene maps window pixels to scene coordinates. Nil means identity.
	ToScene func(x, y float32) geom.Point

	now func() time.Time

	down   bool
	downAt geom.Point
	moved  bool

	lastClick   time.Time
	lastClickAt geom.Point
	clicks      int
}

// NewTranslator returns a Translator. A non-positive doubleClick selects
// DefaultDoubleClick.
func NewTranslator(doubleClick time.Duration) *Translator {
	if doubleClick <= 0 {
		doubleClick = DefaultDoubleClick
	}
	return &Translator{DoubleClick: doubleClick, now: time.Now}
}

func (t *Translator) scene(e mouse.Event) geom.Point {
	if t.ToScene != nil {
		return t.ToScene(e.X, e.Y)
	}
	return geom.Pt(float64(e.X), float64(e.Y))
}

// Mouse translates one mouse event. Motion with the button held becomes
// Drag once it leaves the click slop; a release that stayed inside the slop
// is followed by a Click carrying the running click count.
func (t *Translator) Mouse(e mouse.Event) []Event {
	p := t.scene(e)
	ev := Event{
		Point: p,
		Shift: e.Modifiers&key.ModShift != 0,
		Ctrl:  e.Modifiers&(key.ModControl|key.ModMeta) != 0,
	}

	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return nil
		}
		t.down = true
		t.downAt = p
		t.moved = false
		ev.Type = Press
		return []Event{ev}

	case mouse.DirNone:
		if !t.down {
			ev.Type = Move
			return []Event{ev}
		}
		if !t.moved && geom.Distance(p, t.downAt) < ClickSlop {
			return nil
		}
		t.moved = true
		ev.Type = Drag
		return []Event{ev}

	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !t.down {
			return nil
		}
		t.down = false
		ev.Type = Release
		out := []Event{ev}
		if t.moved {
			t.clicks = 0
			return out
		}
		now := t.now()
		if t.clicks > 0 && now.Sub(t.lastClick) <= t.DoubleClick && geom.Distance(p, t.lastClickAt) < ClickSlop {
			t.clicks++
		} else {
			t.clicks = 1
		}
		t.lastClick = now
		t.lastClickAt = p
		click := ev
		click.Type = Click
		click.ClickCount = t.clicks
		return append(out, click)
	}
	return nil
}

// Dragging reports whether the button is held and the pointer has left the
// click slop.
func (t *Translator) Dragging() bool { return t.down && t.moved }
