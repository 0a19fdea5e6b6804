package input

import (
	"testing"
	"time"

	"github.com/example/flowsketch/internal/geom"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestTranslator() (*Translator, *clock) {
	c := &clock{t: time.Unix(1000, 0)}
	tr := NewTranslator(0)
	tr.now = c.now
	return tr, c
}

func ev(x, y float32, dir mouse.Direction) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: dir}
}

func types(evs []Event) []EventType {
	out := make([]EventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestClickAndDoubleClick(t *testing.T) {
	tr, c := newTestTranslator()
	var got []Event
	got = append(got, tr.Mouse(ev(10, 10, mouse.DirPress))...)
	got = append(got, tr.Mouse(ev(11, 10, mouse.DirNone))...)
	got = append(got, tr.Mouse(ev(11, 10, mouse.DirRelease))...)
	c.t = c.t.Add(150 * time.Millisecond)
	got = append(got, tr.Mouse(ev(11, 11, mouse.DirPress))...)
	got = append(got, tr.Mouse(ev(11, 11, mouse.DirRelease))...)

	want := []EventType{Press, Release, Click, Press, Release, Click}
	if g := types(got); len(g) != len(want) {
		t.Fatalf("events = %v, want %v", g, want)
	}
	for i, w := range want {
		if got[i].Type != w {
			t.Fatalf("event %d = %v, want %v", i, got[i].Type, w)
		}
	}
	if got[2].ClickCount != 1 || got[5].ClickCount != 2 {
		t.Fatalf("click counts %d, %d", got[2].ClickCount, got[5].ClickCount)
	}
}

func TestSlowSecondClickRestartsCount(t *testing.T) {
	tr, c := newTestTranslator()
	tr.Mouse(ev(10, 10, mouse.DirPress))
	tr.Mouse(ev(10, 10, mouse.DirRelease))
	c.t = c.t.Add(time.Second)
	tr.Mouse(ev(10, 10, mouse.DirPress))
	out := tr.Mouse(ev(10, 10, mouse.DirRelease))
	if len(out) != 2 || out[1].ClickCount != 1 {
		t.Fatalf("got %+v", out)
	}
}

func TestDragSuppressesClick(t *testing.T) {
	tr, _ := newTestTranslator()
	tr.Mouse(ev(0, 0, mouse.DirPress))
	if out := tr.Mouse(ev(2, 0, mouse.DirNone)); len(out) != 0 {
		t.Fatalf("motion inside slop should be swallowed: %+v", out)
	}
	out := tr.Mouse(ev(30, 5, mouse.DirNone))
	if len(out) != 1 || out[0].Type != Drag || out[0].Point != geom.Pt(30, 5) {
		t.Fatalf("drag = %+v", out)
	}
	if !tr.Dragging() {
		t.Fatal("Dragging should be true")
	}
	out = tr.Mouse(ev(30, 5, mouse.DirRelease))
	if len(out) != 1 || out[0].Type != Release {
		t.Fatalf("release after drag = %+v", out)
	}
}

func TestHoverAndModifiers(t *testing.T) {
	tr, _ := newTestTranslator()
	tr.ToScene = func(x, y float32) geom.Point { return geom.Pt(float64(x)-100, float64(y)) }
	out := tr.Mouse(mouse.Event{X: 150, Y: 20, Direction: mouse.DirNone})
	if len(out) != 1 || out[0].Type != Move || out[0].Point != geom.Pt(50, 20) {
		t.Fatalf("move = %+v", out)
	}
	out = tr.Mouse(mouse.Event{X: 150, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress, Modifiers: key.ModShift})
	if !out[0].Shift || out[0].Ctrl {
		t.Fatalf("modifiers = %+v", out[0])
	}
	p := out[0].Pointer()
	if !p.Shift || p.Scene != geom.Pt(50, 20) {
		t.Fatalf("pointer = %+v", p)
	}
	if out := tr.Mouse(mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirPress}); out != nil {
		t.Fatalf("right button should be ignored: %+v", out)
	}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name string
		e    key.Event
		want Command
	}{
		{"delete", key.Event{Code: key.CodeDeleteForward, Direction: key.DirPress}, CmdDelete},
		{"backspace", key.Event{Code: key.CodeDeleteBackspace, Direction: key.DirPress}, CmdBackspace},
		{"ctrl-a rune", key.Event{Rune: 'a', Code: key.CodeA, Modifiers: key.ModControl, Direction: key.DirPress}, CmdSelectAll},
		{"ctrl-C shifted", key.Event{Rune: 'C', Code: key.CodeC, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}, CmdCopy},
		{"ctrl-v code only", key.Event{Rune: -1, Code: key.CodeV, Modifiers: key.ModControl, Direction: key.DirPress}, CmdPaste},
		{"escape", key.Event{Code: key.CodeEscape, Direction: key.DirPress}, CmdEscape},
		{"enter", key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress}, CmdEnter},
		{"plain a", key.Event{Rune: 'a', Code: key.CodeA, Direction: key.DirPress}, CmdNone},
		{"release", key.Event{Code: key.CodeEscape, Direction: key.DirRelease}, CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandFor(tt.e); got != tt.want {
				t.Errorf("CommandFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextRune(t *testing.T) {
	if r, ok := TextRune(key.Event{Rune: 'x', Direction: key.DirPress}); !ok || r != 'x' {
		t.Fatalf("TextRune = %q, %v", r, ok)
	}
	for _, e := range []key.Event{
		{Rune: 'x', Modifiers: key.ModControl, Direction: key.DirPress},
		{Rune: '\r', Direction: key.DirPress},
		{Rune: 'x', Direction: key.DirRelease},
		{Rune: -1, Code: key.CodeEscape},
	} {
		if _, ok := TextRune(e); ok {
			t.Errorf("TextRune(%+v) should be rejected", e)
		}
	}
}
