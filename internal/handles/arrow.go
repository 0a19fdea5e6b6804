package handles

import "github.com/example/flowsketch/internal/geom"

// Direction names a side of a shape for connection handles and points.
type Direction int

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

var directionNames = [...]string{"top", "bottom", "left", "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Directions returns the four directions in layout order.
func Directions() []Direction {
	return []Direction{Top, Bottom, Left, Right}
}

// ParseDirection accepts the names returned by Direction.String.
func ParseDirection(s string) (Direction, bool) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// ArrowHandlePositions places the four connection handles ArrowOffset
// outside the mid-edges of the drawing area. Positions are the top-left of
// each Size square, in Top, Bottom, Left, Right order.
func ArrowHandlePositions(boxW, boxH, padding float64) [4]geom.Point {
	a := geom.DrawingArea(boxW, boxH, padding)
	hs := float64(Size) / 2
	c := a.Center()
	return [4]geom.Point{
		{X: c.X - hs, Y: a.Y - ArrowOffset - hs},
		{X: c.X - hs, Y: a.Y + a.H + ArrowOffset - hs},
		{X: a.X - ArrowOffset - hs, Y: c.Y - hs},
		{X: a.X + a.W + ArrowOffset - hs, Y: c.Y - hs},
	}
}

// ArrowHandleAt returns the connection handle under the local point.
func ArrowHandleAt(mouseX, mouseY, boxW, boxH, padding float64) (Direction, bool) {
	for i, p := range ArrowHandlePositions(boxW, boxH, padding) {
		if geom.HitTestHandle(mouseX, mouseY, p.X, p.Y, Size) {
			return Direction(i), true
		}
	}
	return 0, false
}
