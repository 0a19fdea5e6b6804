package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/selection"
	"github.com/example/flowsketch/internal/surface"
)

type fakeEditor struct {
	at     geom.Point
	value  string
	closed bool
	commit func(string)
}

func (e *fakeEditor) Position() geom.Point { return e.at }
func (e *fakeEditor) Move(dx, dy float64)  { e.at = e.at.Add(geom.Pt(dx, dy)) }
func (e *fakeEditor) Value() string        { return e.value }
func (e *fakeEditor) Close()               { e.closed = true }

type testContainer struct {
	shapes  []Shape
	fronted []Shape
	redraws int
	editor  *fakeEditor
}

func (c *testContainer) Add(s Shape) { c.shapes = append(c.shapes, s) }

func (c *testContainer) BringToFront(s Shape) {
	c.fronted = append(c.fronted, s)
	for i, o := range c.shapes {
		if o == s {
			c.shapes = append(append(c.shapes[:i:i], c.shapes[i+1:]...), s)
			return
		}
	}
}

func (c *testContainer) Invalidate(Shape) { c.redraws++ }
func (c *testContainer) Shapes() []Shape  { return c.shapes }

func (c *testContainer) OpenTextEditor(at geom.Point, initial string, commit func(string)) TextEditor {
	c.editor = &fakeEditor{at: at, value: initial, commit: commit}
	return c.editor
}

func newEnv() (Env, *testContainer) {
	c := &testContainer{}
	return Env{Container: c, Selection: selection.NewRegistry[Shape]()}, c
}

func add(env Env, k Kind, r geom.Rect) Shape {
	s := New(env, k, r)
	env.Container.Add(s)
	return s
}

func at(x, y float64) PointerEvent { return PointerEvent{Scene: geom.Pt(x, y)} }

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestNewPanicsOnInvalidKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(Env{}, Kind(42), geom.R(0, 0, 10, 10))
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("Rect"); err != nil || k != KindRectangle {
		t.Errorf("ParseKind(Rect) = %v, %v", k, err)
	}
	if _, err := ParseKind("hexagon"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestResizeBottomRight(t *testing.T) {
	env, _ := newEnv()
	o := add(env, KindOval, geom.R(100, 100, 80, 80))

	o.HandlePress(at(160, 160))
	if o.State() != Resizing {
		t.Fatalf("state after press = %v, want resizing", o.State())
	}
	o.HandleDrag(at(170, 165))
	o.HandleDrag(at(180, 170))
	o.HandleRelease(at(180, 170))

	if got := o.Box(); got != geom.R(100, 100, 100, 90) {
		t.Fatalf("box = %+v, want (100,100,100,90)", got)
	}
	if o.State() != Idle {
		t.Errorf("state after release = %v", o.State())
	}
}

func TestResizeTopLeftClampsAtMinimum(t *testing.T) {
	env, _ := newEnv()
	r := add(env, KindRectangle, geom.R(0, 0, 80, 80))
	r.HandlePress(at(20, 20))
	if r.State() != Resizing {
		t.Fatalf("state = %v", r.State())
	}
	r.HandleDrag(at(200, 200))
	got := r.Box()
	if got.W != handles.MinSize || got.H != handles.MinSize {
		t.Fatalf("size = %vx%v, want clamp to %v", got.W, got.H, handles.MinSize)
	}
	if got.X+got.W != 80 || got.Y+got.H != 80 {
		t.Fatalf("bottom-right corner moved: %+v", got)
	}
}

func TestArrowEndpointDragRefitsBox(t *testing.T) {
	env, c := newEnv()
	a := NewArrow(env, geom.Pt(0, 0), geom.Pt(100, 0))
	c.Add(a)
	if got := a.Box(); got != geom.R(-20, -20, 140, 40) {
		t.Fatalf("initial box = %+v", got)
	}

	a.HandlePress(at(100, 0))
	if a.State() != EditingEndPoint {
		t.Fatalf("state = %v, want editing-end", a.State())
	}
	a.HandleDrag(at(100, 100))
	a.HandleRelease(at(100, 100))

	box := a.Box()
	if box.H < 100+2*LinePadding {
		t.Errorf("box height %v too small", box.H)
	}
	start, end := a.Endpoints()
	if !near(start, geom.Pt(0, 0)) || !near(end, geom.Pt(100, 100)) {
		t.Errorf("endpoints = %v %v", start, end)
	}
	g := a.Geometry()
	if !box.Contains(box.Min().Add(g.Start)) || !box.Contains(box.Min().Add(g.End)) {
		t.Errorf("endpoints fell outside %+v", box)
	}
}

func TestGroupDragMovesSelectionInLockStep(t *testing.T) {
	env, _ := newEnv()
	a := add(env, KindRectangle, geom.R(0, 0, 80, 60))
	b := add(env, KindOval, geom.R(200, 0, 80, 60))
	a.SetSelected(true)
	b.SetSelected(true)

	a.HandlePress(at(40, 30))
	a.HandleDrag(at(50, 35))
	a.HandleDrag(at(60, 40))
	a.HandleRelease(at(60, 40))
	a.HandleClick(at(60, 40))

	if got := a.Position(); got != geom.Pt(20, 10) {
		t.Errorf("a moved to %v", got)
	}
	if got := b.Position(); got != geom.Pt(220, 10) {
		t.Errorf("b moved to %v", got)
	}
	if env.Selection.Len() != 2 {
		t.Errorf("click after drag changed the selection: %d selected", env.Selection.Len())
	}
}

func TestDragUnselectedShapeCarriesSelection(t *testing.T) {
	env, _ := newEnv()
	a := add(env, KindRectangle, geom.R(0, 0, 80, 60))
	b := add(env, KindRectangle, geom.R(200, 0, 80, 60))
	b.SetSelected(true)

	a.HandlePress(PointerEvent{Scene: geom.Pt(40, 30), Shift: true})
	if a.Selected() {
		t.Fatal("modified press should not select")
	}
	a.HandleDrag(PointerEvent{Scene: geom.Pt(45, 30), Shift: true})
	if a.Position() != geom.Pt(5, 0) || b.Position() != geom.Pt(205, 0) {
		t.Fatalf("a=%v b=%v", a.Position(), b.Position())
	}
}

func TestClickSelectionRules(t *testing.T) {
	env, _ := newEnv()
	a := add(env, KindRectangle, geom.R(0, 0, 80, 60))
	b := add(env, KindDiamond, geom.R(100, 0, 80, 60))
	c := add(env, KindOval, geom.R(200, 0, 80, 60))

	a.HandleClick(at(40, 30))
	b.HandleClick(PointerEvent{Scene: geom.Pt(140, 30), Ctrl: true})
	c.HandleClick(PointerEvent{Scene: geom.Pt(240, 30), Shift: true})
	if !a.Selected() || !b.Selected() || !c.Selected() || env.Selection.Len() != 3 {
		t.Fatalf("modifier clicks should add: %d selected", env.Selection.Len())
	}

	b.HandleClick(PointerEvent{Scene: geom.Pt(140, 30), Shift: true})
	if b.Selected() || !a.Selected() || !c.Selected() {
		t.Fatal("shift click should toggle only the clicked shape")
	}

	c.HandleClick(at(240, 30))
	if a.Selected() || !c.Selected() || env.Selection.Len() != 1 {
		t.Fatal("plain click should select only the clicked shape")
	}
}

func TestPressSelectsUnselectedShape(t *testing.T) {
	env, c := newEnv()
	a := add(env, KindRectangle, geom.R(0, 0, 80, 60))
	b := add(env, KindRectangle, geom.R(100, 0, 80, 60))
	a.SetSelected(true)

	b.HandlePress(at(140, 30))
	if a.Selected() || !b.Selected() {
		t.Fatal("press should select only the pressed shape")
	}
	if c.shapes[len(c.shapes)-1] != b {
		t.Fatal("press should bring the shape to the front")
	}
}

func TestDoubleClickEditsLabel(t *testing.T) {
	env, c := newEnv()
	r := add(env, KindRectangle, geom.R(0, 0, 100, 60))
	r.SetText("old")

	r.HandleClick(PointerEvent{Scene: geom.Pt(50, 30), ClickCount: 2})
	if r.State() != EditingText {
		t.Fatalf("state = %v", r.State())
	}
	if c.editor == nil || c.editor.value != "old" || c.editor.at != geom.Pt(50, 30) {
		t.Fatalf("editor = %+v", c.editor)
	}

	r.HandlePress(at(50, 30))
	r.HandleDrag(at(60, 30))
	r.HandleRelease(at(60, 30))
	if c.editor.at != geom.Pt(60, 30) {
		t.Errorf("editor did not follow drag: %v", c.editor.at)
	}
	if r.State() != EditingText {
		t.Errorf("state after drag with open editor = %v", r.State())
	}

	c.editor.commit("new")
	if r.Label() != "new" || r.State() != Idle || !c.editor.closed {
		t.Fatalf("after commit label=%q state=%v closed=%v", r.Label(), r.State(), c.editor.closed)
	}
	c.editor.commit("again")
	if r.Label() != "new" {
		t.Error("second commit should be ignored")
	}
}

func TestConnectionPointsInsideBox(t *testing.T) {
	env := Env{}
	for _, k := range []Kind{KindOval, KindRectangle, KindDiamond} {
		for _, box := range []geom.Rect{geom.R(10, 20, 120, 80), geom.R(0, 0, 20, 20)} {
			s := New(env, k, box).(Snapper)
			for _, d := range handles.Directions() {
				p := s.ConnectionPoint(d)
				if p.X <= box.X || p.Y <= box.Y || p.X >= box.X+box.W || p.Y >= box.Y+box.H {
					t.Errorf("%v %v: %v outside %+v", k, d, p, box)
				}
			}
		}
	}
}

func TestRectangleConnectionPointNearEdgeMidpoint(t *testing.T) {
	r := New(Env{}, KindRectangle, geom.R(0, 0, 140, 100)).(*Rectangle)
	a := r.sceneArea()
	c := a.Center()
	mids := map[handles.Direction]geom.Point{
		handles.Top:    geom.Pt(c.X, a.Y),
		handles.Bottom: geom.Pt(c.X, a.Y+a.H),
		handles.Left:   geom.Pt(a.X, c.Y),
		handles.Right:  geom.Pt(a.X+a.W, c.Y),
	}
	for d, m := range mids {
		if dist := geom.Distance(r.ConnectionPoint(d), m); dist > RectInset {
			t.Errorf("%v: %v from edge midpoint", d, dist)
		}
	}
}

func TestNearestSnapPoint(t *testing.T) {
	r := New(Env{}, KindRectangle, geom.R(0, 0, 140, 100)).(Snapper)
	left := r.ConnectionPoint(handles.Left)
	got, ok := r.NearestSnapPoint(left.Add(geom.Pt(-5, 3)), 10)
	if !ok || got != left {
		t.Fatalf("NearestSnapPoint = %v, %v", got, ok)
	}
	if _, ok := r.NearestSnapPoint(geom.Pt(-100, -100), 10); ok {
		t.Fatal("far point should not snap")
	}
	if n := len(r.SnapPoints()); n != 4 {
		t.Fatalf("SnapPoints len = %d", n)
	}
}

func TestConnectFromHandleSnapsToTarget(t *testing.T) {
	env, c := newEnv()
	src := add(env, KindRectangle, geom.R(0, 0, 100, 60))
	dst := add(env, KindRectangle, geom.R(200, 0, 100, 60)).(Snapper)
	src.SetSelected(true)

	src.HandlePress(at(97, 30))
	if src.State() != Connecting {
		t.Fatalf("state = %v, want connecting", src.State())
	}
	src.HandleDrag(at(215, 32))
	src.HandleRelease(at(215, 32))

	if len(c.shapes) != 3 {
		t.Fatalf("container has %d shapes, want new arrow", len(c.shapes))
	}
	a, ok := c.shapes[2].(*Arrow)
	if !ok {
		t.Fatalf("new shape is %T", c.shapes[2])
	}
	start, end := a.Endpoints()
	if !near(start, src.(Snapper).ConnectionPoint(handles.Right)) {
		t.Errorf("start = %v", start)
	}
	if !near(end, dst.ConnectionPoint(handles.Left)) {
		t.Errorf("end = %v, want snapped to %v", end, dst.ConnectionPoint(handles.Left))
	}
	if !a.Selected() || src.Selected() {
		t.Error("new arrow should become the selection")
	}
}

func TestEndpointDragSnapsToBlock(t *testing.T) {
	env, c := newEnv()
	target := add(env, KindOval, geom.R(200, 0, 100, 100)).(Snapper)
	l := NewLine(env, geom.Pt(0, 50), geom.Pt(100, 50))
	c.Add(l)

	top := target.ConnectionPoint(handles.Top)
	l.HandlePress(at(100, 50))
	l.HandleDrag(PointerEvent{Scene: top.Add(geom.Pt(4, -4))})
	l.HandleRelease(PointerEvent{Scene: top.Add(geom.Pt(4, -4))})
	if _, end := l.Endpoints(); !near(end, top) {
		t.Fatalf("end = %v, want %v", end, top)
	}
}

func TestSetSelectedTwiceKeepsOneMember(t *testing.T) {
	env, _ := newEnv()
	calls := 0
	env.Selection.Observe(selection.ObserverFunc[Shape](func([]Shape) { calls++ }))
	s := add(env, KindOval, geom.R(0, 0, 50, 50))
	s.SetSelected(true)
	s.SetSelected(true)
	if env.Selection.Len() != 1 || calls != 1 {
		t.Fatalf("len=%d calls=%d", env.Selection.Len(), calls)
	}
}

func TestReleaseNotifiesObserver(t *testing.T) {
	env, _ := newEnv()
	s := add(env, KindOval, geom.R(0, 0, 50, 50))
	var seen []Shape
	env.Selection.Observe(selection.ObserverFunc[Shape](func(cur []Shape) { seen = cur }))
	s.HandlePress(at(25, 25))
	s.HandleRelease(at(25, 25))
	if len(seen) != 1 || seen[0] != s {
		t.Fatalf("observer saw %v", seen)
	}
}

func TestDrawBlock(t *testing.T) {
	env, _ := newEnv()
	o := add(env, KindOval, geom.R(10, 10, 100, 80))
	o.SetText("start")
	rec := surface.NewRecorder(200, 200)

	o.Draw(rec)
	if rec.Count(surface.OpFillOval) != 1 || rec.Count(surface.OpStrokeOval) != 1 {
		t.Fatalf("unexpected draw calls:\n%v", rec.Commands())
	}
	if texts := rec.Texts(); len(texts) != 1 || texts[0] != "start" {
		t.Fatalf("texts = %v", texts)
	}

	rec.Reset()
	o.SetSelected(true)
	o.Draw(rec)
	if n := rec.Count(surface.OpFillRect); n != 8 {
		t.Errorf("selected oval drew %d handle squares, want 8", n)
	}
	if n := rec.Count(surface.OpFillOval); n != 1+4 {
		t.Errorf("selected oval drew %d filled ovals, want body plus 4 connection handles", n)
	}
}

func TestDrawArrowHasHead(t *testing.T) {
	a := NewArrow(Env{}, geom.Pt(0, 0), geom.Pt(100, 0))
	rec := surface.NewRecorder(200, 200)
	a.Draw(rec)
	if rec.Count(surface.OpStrokeLine) != 1 || rec.Count(surface.OpFillPolygon) != 1 {
		t.Fatalf("unexpected draw calls:\n%v", rec.Commands())
	}
	line := rec.Commands()[2]
	if line.Op != surface.OpStrokeLine || line.Args[0] != 0 || line.Args[1] != 0 {
		t.Errorf("segment should start at the scene origin: %v", line)
	}
}

func TestArrowHeadGeometry(t *testing.T) {
	head := ArrowHead(geom.Pt(0, 0), geom.Pt(100, 0))
	if head[0] != geom.Pt(100, 0) {
		t.Fatalf("tip = %v", head[0])
	}
	for _, p := range head[1:] {
		if d := geom.Distance(p, head[0]); math.Abs(d-ArrowHeadLength) > 1e-9 {
			t.Errorf("leg length %v", d)
		}
		if p.X >= 100 {
			t.Errorf("leg %v should point back along the segment", p)
		}
	}
	if math.Abs(head[1].Y+head[2].Y) > 1e-9 {
		t.Errorf("legs not symmetric: %v %v", head[1], head[2])
	}
}

func TestLazyEndpoints(t *testing.T) {
	l := New(Env{}, KindLine, geom.R(0, 0, 140, 40))
	rec := surface.NewRecorder(200, 200)
	l.Draw(rec)
	g := l.Geometry()
	if !g.Endpoints || g.Start != geom.Pt(20, 20) || g.End != geom.Pt(120, 20) {
		t.Fatalf("geometry = %+v", g)
	}
}

func TestFromGeometryKeepsEndpoints(t *testing.T) {
	a := NewArrow(Env{}, geom.Pt(0, 0), geom.Pt(80, 60))
	a.SetText("flow")
	g := a.Geometry()
	cp := FromGeometry(Env{}, KindArrow, g).(*Arrow)
	if cp.ID() == a.ID() {
		t.Fatal("copy should have a fresh identity")
	}
	s1, e1 := a.Endpoints()
	s2, e2 := cp.Endpoints()
	if s1 != s2 || e1 != e2 || cp.Label() != "flow" {
		t.Fatalf("copy differs: %v-%v %q", s2, e2, cp.Label())
	}
}

func TestConnectorSetBoxWidth(t *testing.T) {
	l := NewLine(Env{}, geom.Pt(0, 0), geom.Pt(100, 0))
	l.SetBoxWidth(240)
	if got := l.Box().W; math.Abs(got-240) > 1e-9 {
		t.Fatalf("width = %v", got)
	}
	s, e := l.Endpoints()
	if math.Abs(geom.LineCenter(s, e).X-50) > 1e-9 {
		t.Errorf("stretch should keep the midpoint, got %v-%v", s, e)
	}
}

func TestHitTest(t *testing.T) {
	l := NewLine(Env{}, geom.Pt(0, 0), geom.Pt(100, 0))
	if !l.HitTest(geom.Pt(50, 3)) || l.HitTest(geom.Pt(50, 15)) {
		t.Error("line hit test should follow the segment")
	}
	r := New(Env{}, KindRectangle, geom.R(0, 0, 100, 60))
	if !r.HitTest(geom.Pt(1, 1)) || r.HitTest(geom.Pt(101, 30)) {
		t.Error("unselected block hit test should follow the box")
	}
	r.SetSelected(true)
	if !r.HitTest(geom.Pt(101, 30)) {
		t.Error("selected block should be hit on its connection handle")
	}
}

func TestMouseMovedCursor(t *testing.T) {
	env, _ := newEnv()
	r := add(env, KindRectangle, geom.R(0, 0, 100, 60))
	r.HandleMouseMoved(at(50, 30))
	if r.Cursor() != handles.CursorMove {
		t.Errorf("cursor = %v", r.Cursor())
	}
	r.SetSelected(true)
	r.HandleMouseMoved(at(85, 45))
	if r.Cursor() != handles.CursorResizeNWSE {
		t.Errorf("cursor over bottom-right = %v", r.Cursor())
	}
}

func TestNewFloorsBlockBox(t *testing.T) {
	for _, k := range []Kind{KindOval, KindRectangle, KindDiamond} {
		s := New(Env{}, k, geom.R(5, 5, -10, 0))
		if got := s.Size(); got.W != handles.MinSize || got.H != handles.MinSize {
			t.Errorf("%v size = %+v", k, got)
		}
		if s.Position() != geom.Pt(5, 5) {
			t.Errorf("%v position = %v", k, s.Position())
		}
	}
}

func TestNewConnectorFitsBoxToSegment(t *testing.T) {
	l := New(Env{}, KindArrow, geom.R(85, 95, 30, 10))
	if got := l.Size(); got.W != MinLineWidth || got.H != MinLineHeight {
		t.Fatalf("size = %+v", got)
	}
	if !near(l.Box().Center(), geom.Pt(100, 100)) {
		t.Fatalf("centre = %v", l.Box().Center())
	}
	s, e := l.(*Arrow).Endpoints()
	if !near(s, geom.Pt(92.5, 100)) || !near(e, geom.Pt(107.5, 100)) {
		t.Fatalf("endpoints = %v %v", s, e)
	}
}

func TestConnectorShrinkKeepsDirection(t *testing.T) {
	l := NewLine(Env{}, geom.Pt(0, 0), geom.Pt(100, 0))
	l.SetBoxWidth(10)
	s, e := l.Endpoints()
	if got := e.X - s.X; math.Abs(got-(MinLineWidth-2*LinePadding)) > 1e-9 {
		t.Fatalf("span after shrink = %v", got)
	}
	if got := l.Box().W; math.Abs(got-MinLineWidth) > 1e-9 {
		t.Fatalf("width = %v", got)
	}
	l.SetBoxWidth(240)
	s, e = l.Endpoints()
	if got := e.X - s.X; math.Abs(got-200) > 1e-9 {
		t.Fatalf("span after regrow = %v", got)
	}

	// A horizontal segment given height opens vertically.
	l.SetBoxHeight(100)
	s, e = l.Endpoints()
	if got := e.Y - s.Y; math.Abs(got-60) > 1e-9 {
		t.Fatalf("vertical span = %v", got)
	}
}
