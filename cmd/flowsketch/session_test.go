package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/shape"
)

func newTestSession(t *testing.T) (*session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	var r *root
	s := newSession(r, r.newDiagram(), &out)
	s.writeText = nil
	return s, &out
}

func TestSessionCreatesAndConnects(t *testing.T) {
	s, out := newTestSession(t)
	script := `
# two boxes joined left to right
rect 10 10 100 50 start
oval 200 10 100 50 end
connect 1 right 2 left
`
	if err := s.runScript(strings.NewReader(script)); err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if got := s.d.Len(); got != 3 {
		t.Fatalf("shapes = %d, want 3", got)
	}
	if !strings.Contains(out.String(), "#3 arrow") {
		t.Fatalf("output %q missing arrow number", out.String())
	}
	a, ok := s.d.Shapes()[2].(*shape.Arrow)
	if !ok {
		t.Fatalf("third shape is %T", s.d.Shapes()[2])
	}
	from := s.d.Shapes()[0].(shape.Snapper).ConnectionPoint(handles.Right)
	to := s.d.Shapes()[1].(shape.Snapper).ConnectionPoint(handles.Left)
	if p1, p2 := a.Endpoints(); p1 != from || p2 != to {
		t.Fatalf("endpoints = %v %v, want %v %v", p1, p2, from, to)
	}
}

func TestSessionSelectMoveLabel(t *testing.T) {
	s, _ := newTestSession(t)
	lines := []string{
		"rect 10 10 100 50",
		"rect 300 10 100 50",
		"select 1",
		"move 5 -5",
		"label 2 hello there",
		"resize 2 80 40",
	}
	for _, l := range lines {
		if err := s.execLine(l); err != nil {
			t.Fatalf("%q: %v", l, err)
		}
	}
	first, second := s.d.Shapes()[0], s.d.Shapes()[1]
	if got := first.Position(); got != geom.Pt(15, 5) {
		t.Fatalf("moved position = %v", got)
	}
	if got := second.Position(); got != geom.Pt(300, 10) {
		t.Fatalf("unselected shape moved to %v", got)
	}
	if got := second.Label(); got != "hello there" {
		t.Fatalf("label = %q", got)
	}
	if got := second.Size(); got.W != 80 || got.H != 40 {
		t.Fatalf("size = %v", got)
	}
}

func TestSessionCopyPasteNumbers(t *testing.T) {
	s, out := newTestSession(t)
	var copied string
	s.writeText = func(v string) error { copied = v; return nil }
	script := "rect 10 10 100 50 a\nrect 200 10 100 50 b\nselectall\ncopy\npaste 400 400\n"
	if err := s.runScript(strings.NewReader(script)); err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if !strings.Contains(out.String(), "pasted #3 #4") {
		t.Fatalf("output %q", out.String())
	}
	if copied != "a\nb" {
		t.Fatalf("clipboard text = %q", copied)
	}
	if got := s.d.Len(); got != 4 {
		t.Fatalf("shapes = %d, want 4", got)
	}

	out.Reset()
	if err := s.execLine("delete"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "deleted 2") {
		t.Fatalf("delete output %q", out.String())
	}
	// Numbers survive deletion of other shapes.
	sh, err := s.lookup("1")
	if err != nil || sh.Label() != "a" {
		t.Fatalf("lookup 1 = %v, %v", sh, err)
	}
	if _, err := s.lookup("3"); err == nil {
		t.Fatal("deleted shape still resolves")
	}
}

func TestSessionList(t *testing.T) {
	s, out := newTestSession(t)
	if err := s.runScript(strings.NewReader("diamond 0 0 120 100 decide\nline 0 200 100 200\nlist\n")); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"decide", "diamond", "line", "kind"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSessionClickAndDrag(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.execLine("rect 10 10 100 50"); err != nil {
		t.Fatal(err)
	}
	if err := s.execLine("click 50 30"); err != nil {
		t.Fatal(err)
	}
	if got := len(s.d.Selected()); got != 1 {
		t.Fatalf("selected after click = %d", got)
	}
	if err := s.execLine("drag 50 30 80 60"); err != nil {
		t.Fatal(err)
	}
	if got := s.d.Shapes()[0].Position(); got != geom.Pt(40, 40) {
		t.Fatalf("position after drag = %v", got)
	}
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"short args", "rect 1 2\n", "line 1"},
		{"unknown", "rect 0 0 10 10\nfrobnicate\n", "line 2"},
		{"bad number", "oval a b c d\n", "invalid number"},
		{"missing shape", "select 4\n", "no shape 4"},
		{"bad direction", "rect 0 0 10 10\nrect 50 0 10 10\nconnect 1 up 2 left\n", "unknown direction"},
		{"connect line", "line 0 0 10 10\nrect 50 0 10 10\nconnect 1 right 2 left\n", "no connection points"},
		{"empty paste", "paste\n", "clipboard is empty"},
		{"degenerate block", "oval 0 0 -10 0\n", "must be positive"},
		{"negative add", "add rect 50 50 -5 10\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			err := s.runScript(strings.NewReader(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestSessionExitStopsScript(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.runScript(strings.NewReader("rect 0 0 10 10\nexit\nrect 50 0 10 10\n")); err != nil {
		t.Fatal(err)
	}
	if got := s.d.Len(); got != 1 {
		t.Fatalf("shapes = %d, want 1", got)
	}
	if err := s.execLine("quit"); !errors.Is(err, errExit) {
		t.Fatalf("quit = %v", err)
	}
}

func TestSessionRubberBandEndingOnShape(t *testing.T) {
	s, _ := newTestSession(t)
	script := "rect 10 10 20 20\nrect 40 40 20 20\ndrag 0 0 50 50\n"
	if err := s.runScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	if got := len(s.d.Selected()); got != 2 {
		t.Fatalf("selected = %d, want 2", got)
	}
}
