package shape

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
)

// Kind tags the closed set of shape variants.
type Kind int

const (
	KindOval Kind = iota
	KindRectangle
	KindDiamond
	KindLine
	KindArrow
)

// ErrUnknownKind is returned by ParseKind for names it does not recognise.
var ErrUnknownKind = errors.New("unknown shape kind")

var kindNames = [...]string{"oval", "rectangle", "diamond", "line", "arrow"}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a known variant.
func (k Kind) Valid() bool { return k >= KindOval && k <= KindArrow }

// IsConnector reports whether k is a two-endpoint kind.
func (k Kind) IsConnector() bool { return k == KindLine || k == KindArrow }

// Kinds returns every variant in palette order.
func Kinds() []Kind {
	return []Kind{KindOval, KindRectangle, KindDiamond, KindLine, KindArrow}
}

// ParseKind accepts the names returned by Kind.String plus "rect".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "rect" {
		return KindRectangle, nil
	}
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// New creates a shape of kind k occupying box. Blocks are floored at
// handles.MinSize on each side. Connectors lay a segment across the middle
// of the box and refit the box around it. An invalid kind is a programming
// error and panics.
func New(env Env, k Kind, box geom.Rect) Shape {
	switch k {
	case KindOval:
		return newOval(env, minBox(box))
	case KindRectangle:
		return newRectangle(env, minBox(box))
	case KindDiamond:
		return newDiamond(env, minBox(box))
	case KindLine, KindArrow:
		s := newConnector(env, k, box)
		s.ensureEnds()
		return s
	}
	panic(fmt.Sprintf("shape.New: %v", k))
}

func minBox(r geom.Rect) geom.Rect {
	r.W = math.Max(r.W, handles.MinSize)
	r.H = math.Max(r.H, handles.MinSize)
	return r
}

func newConnector(env Env, k Kind, box geom.Rect) interface {
	Connector
	ensureEnds()
} {
	if k == KindArrow {
		return newArrow(env, box)
	}
	return newLine(env, box)
}

// FromGeometry rebuilds a fresh shape of kind k from a snapshot. It panics
// on an invalid kind, like New.
func FromGeometry(env Env, k Kind, g Geometry) Shape {
	box := geom.Rect{X: g.Position.X, Y: g.Position.Y, W: g.Size.W, H: g.Size.H}
	var s Shape
	if k.IsConnector() && g.Endpoints {
		c := newConnector(env, k, box)
		c.setLocalEndpoints(g.Start, g.End)
		s = c
	} else {
		s = New(env, k, box)
	}
	s.core().label = g.Label
	return s
}
