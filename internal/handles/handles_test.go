package handles

import (
	"testing"

	"github.com/example/flowsketch/internal/geom"
)

func TestResizeHandleAtCorners(t *testing.T) {
	// 120x120 box, outline inset by 20: corners at 20 and 100.
	tests := []struct {
		x, y float64
		want Handle
	}{
		{20, 20, TopLeft},
		{60, 20, TopCenter},
		{100, 20, TopRight},
		{20, 60, MiddleLeft},
		{100, 60, MiddleRight},
		{20, 100, BottomLeft},
		{60, 100, BottomCenter},
		{103, 97, BottomRight},
	}
	for _, tt := range tests {
		got, ok := ResizeHandleAt(tt.x, tt.y, 120, 120, 20)
		if !ok || got != tt.want {
			t.Errorf("ResizeHandleAt(%v,%v) = %v,%v want %v", tt.x, tt.y, got, ok, tt.want)
		}
	}
	if _, ok := ResizeHandleAt(60, 60, 120, 120, 20); ok {
		t.Error("centre of the shape should not hit a handle")
	}
}

func TestNewDimensionsBottomRightScenario(t *testing.T) {
	got := NewDimensions(BottomRight, 20, 10, 80, 80, 100, 100, MinSize)
	want := geom.R(100, 100, 100, 90)
	if got != want {
		t.Fatalf("NewDimensions = %+v, want %+v", got, want)
	}
}

func TestNewDimensionsKeepsOppositeEdge(t *testing.T) {
	const ox, oy, ow, oh = 50.0, 40.0, 100.0, 60.0
	deltas := []geom.Point{{X: 15, Y: 10}, {X: -30, Y: -25}, {X: 200, Y: 150}, {X: -200, Y: -150}}
	for _, h := range All() {
		for _, d := range deltas {
			r := NewDimensions(h, d.X, d.Y, ow, oh, ox, oy, MinSize)
			if r.W < MinSize || r.H < MinSize {
				t.Fatalf("%v %v: degenerate box %+v", h, d, r)
			}
			if h.onLeft() {
				if r.X+r.W != ox+ow {
					t.Errorf("%v %v: right edge moved to %v", h, d, r.X+r.W)
				}
			} else if r.X != ox {
				t.Errorf("%v %v: left edge moved to %v", h, d, r.X)
			}
			if h.onTop() {
				if r.Y+r.H != oy+oh {
					t.Errorf("%v %v: bottom edge moved to %v", h, d, r.Y+r.H)
				}
			} else if r.Y != oy {
				t.Errorf("%v %v: top edge moved to %v", h, d, r.Y)
			}
		}
	}
}

func TestNewDimensionsCentreHandlesTouchOneAxis(t *testing.T) {
	r := NewDimensions(TopCenter, 40, -10, 80, 80, 0, 0, MinSize)
	if r.W != 80 || r.X != 0 {
		t.Errorf("TopCenter changed width: %+v", r)
	}
	if r.H != 90 || r.Y != -10 {
		t.Errorf("TopCenter height/anchor: %+v", r)
	}
	r = NewDimensions(MiddleRight, 10, 99, 80, 80, 0, 0, MinSize)
	if r.H != 80 || r.W != 90 {
		t.Errorf("MiddleRight: %+v", r)
	}
}

func TestCursorFor(t *testing.T) {
	tests := map[Handle]Cursor{
		TopLeft:      CursorResizeNWSE,
		BottomRight:  CursorResizeNWSE,
		TopRight:     CursorResizeNESW,
		BottomLeft:   CursorResizeNESW,
		TopCenter:    CursorResizeNS,
		BottomCenter: CursorResizeNS,
		MiddleLeft:   CursorResizeEW,
		MiddleRight:  CursorResizeEW,
	}
	for h, want := range tests {
		if got := CursorFor(h); got != want {
			t.Errorf("CursorFor(%v) = %v, want %v", h, got, want)
		}
	}
}

func TestArrowHandlesOutsideResizeRing(t *testing.T) {
	pos := ArrowHandlePositions(120, 80, 20)
	// Top handle centre sits ArrowOffset above the top edge at y=20.
	if c := pos[Top].Y + Size/2; c != 20-ArrowOffset {
		t.Errorf("top handle centre y = %v", c)
	}
	if c := pos[Right].X + Size/2; c != 100+ArrowOffset {
		t.Errorf("right handle centre x = %v", c)
	}
	for _, d := range Directions() {
		p := pos[d]
		got, ok := ArrowHandleAt(p.X+Size/2, p.Y+Size/2, 120, 80, 20)
		if !ok || got != d {
			t.Errorf("ArrowHandleAt centre of %v = %v,%v", d, got, ok)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions() {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v,%v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("unexpected direction parsed")
	}
}
