package geom

import (
	"math"
	"testing"
)

func TestDrawingArea(t *testing.T) {
	got := DrawingArea(100, 60, 10)
	want := R(10, 10, 80, 40)
	if got != want {
		t.Fatalf("DrawingArea = %+v, want %+v", got, want)
	}
}

func TestResizeHandlePositionsCentred(t *testing.T) {
	area := R(10, 10, 80, 40)
	pos := ResizeHandlePositions(area, 8)
	centres := []Point{
		{10, 10}, {50, 10}, {90, 10},
		{10, 30}, {90, 30},
		{10, 50}, {50, 50}, {90, 50},
	}
	for i, c := range centres {
		if pos[i].X+4 != c.X || pos[i].Y+4 != c.Y {
			t.Errorf("handle %d centred at (%v,%v), want %v", i, pos[i].X+4, pos[i].Y+4, c)
		}
	}
}

func TestHitTestHandleInclusive(t *testing.T) {
	tests := []struct {
		px, py float64
		want   bool
	}{
		{10, 10, true},
		{18, 18, true},
		{14, 14, true},
		{18.01, 14, false},
		{9.99, 14, false},
	}
	for _, tt := range tests {
		if got := HitTestHandle(tt.px, tt.py, 10, 10, 8); got != tt.want {
			t.Errorf("HitTestHandle(%v,%v) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
}

func TestBoundingBoxUnordered(t *testing.T) {
	minX, minY, maxX, maxY := BoundingBox(Pt(30, -5), Pt(-10, 20))
	if minX != -10 || minY != -5 || maxX != 30 || maxY != 20 {
		t.Fatalf("got (%v,%v,%v,%v)", minX, minY, maxX, maxY)
	}
}

func TestCanvasSizeFloor(t *testing.T) {
	b := BoundsOf(Pt(0, 0), Pt(10, 5))
	got := CanvasSize(b, 20, 60, 40)
	if got != (Size{60, 45}) {
		t.Fatalf("CanvasSize = %+v", got)
	}
}

func TestCanvasRoundTripContainsEndpoints(t *testing.T) {
	pairs := [][2]Point{
		{Pt(0, 0), Pt(100, 0)},
		{Pt(-40, 90), Pt(15, -3)},
		{Pt(5, 5), Pt(5, 5)},
		{Pt(300, 200), Pt(-120, 250)},
	}
	for _, pr := range pairs {
		b := BoundsOf(pr[0], pr[1])
		pos := CanvasPosition(b, 20)
		size := CanvasSize(b, 20, 60, 40)
		local := R(0, 0, size.W, size.H)
		for _, p := range pr {
			rel := ToRelative(p, pos)
			if !local.Contains(rel) {
				t.Errorf("%v re-expressed as %v lies outside %+v", p, rel, local)
			}
		}
	}
}

func TestLineCenter(t *testing.T) {
	if got := LineCenter(Pt(0, 0), Pt(10, -20)); got != Pt(5, -10) {
		t.Fatalf("LineCenter = %v", got)
	}
}

func TestCenteredTextPosition(t *testing.T) {
	got := CenteredTextPosition(100, 40, 30, 12)
	if got != Pt(35, 26) {
		t.Fatalf("CenteredTextPosition = %v", got)
	}
}

func TestRectIntersects(t *testing.T) {
	marquee := RectFromPoints(Pt(50, 50), Pt(0, 0))
	if !marquee.Intersects(R(10, 10, 20, 20)) {
		t.Error("expected inner rect to intersect")
	}
	if marquee.Intersects(R(200, 200, 20, 20)) {
		t.Error("expected far rect not to intersect")
	}
	if !marquee.Intersects(R(45, 45, 100, 100)) {
		t.Error("expected overlapping rect to intersect")
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Pt(0, 0), Pt(3, 4)); math.Abs(d-5) > 1e-9 {
		t.Fatalf("Distance = %v", d)
	}
}
