// Package handles lays out, hit-tests and interprets the resize and
// connection handles drawn around box-bounded shapes.
package handles

import "github.com/example/flowsketch/internal/geom"

const (
	// Size is the side of a resize or connection handle square.
	Size = 8
	// MinSize is the smallest width or height a resize can produce.
	MinSize = 20
	// ArrowOffset is how far connection handles sit outside the resize ring.
	ArrowOffset = 12
)

// Handle identifies one of the eight resize handles.
type Handle int

const (
	TopLeft Handle = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var handleNames = [...]string{
	"top-left", "top-center", "top-right",
	"middle-left", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "unknown"
	}
	return handleNames[h]
}

// All returns every handle in layout order.
func All() []Handle {
	return []Handle{TopLeft, TopCenter, TopRight, MiddleLeft, MiddleRight, BottomLeft, BottomCenter, BottomRight}
}

func (h Handle) onLeft() bool {
	return h == TopLeft || h == MiddleLeft || h == BottomLeft
}

func (h Handle) onRight() bool {
	return h == TopRight || h == MiddleRight || h == BottomRight
}

func (h Handle) onTop() bool {
	return h == TopLeft || h == TopCenter || h == TopRight
}

func (h Handle) onBottom() bool {
	return h == BottomLeft || h == BottomCenter || h == BottomRight
}

// Cursor is the pointer feedback hosts should show. It is advisory only.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorCrosshair
	CursorResizeNWSE
	CursorResizeNESW
	CursorResizeNS
	CursorResizeEW
)

var cursorNames = [...]string{"default", "move", "crosshair", "nwse-resize", "nesw-resize", "ns-resize", "ew-resize"}

func (c Cursor) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "default"
	}
	return cursorNames[c]
}

// CursorFor maps a handle to its resize cursor.
func CursorFor(h Handle) Cursor {
	switch h {
	case TopLeft, BottomRight:
		return CursorResizeNWSE
	case TopRight, BottomLeft:
		return CursorResizeNESW
	case TopCenter, BottomCenter:
		return CursorResizeNS
	case MiddleLeft, MiddleRight:
		return CursorResizeEW
	}
	return CursorDefault
}

// ResizeHandlePositions returns the handle squares for a boxW x boxH shape
// whose outline is inset by padding.
func ResizeHandlePositions(boxW, boxH, padding float64) [8]geom.Point {
	return geom.ResizeHandlePositions(geom.DrawingArea(boxW, boxH, padding), Size)
}

// ResizeHandleAt returns the handle under the local point (mouseX, mouseY).
func ResizeHandleAt(mouseX, mouseY, boxW, boxH, padding float64) (Handle, bool) {
	for i, p := range ResizeHandlePositions(boxW, boxH, padding) {
		if geom.HitTestHandle(mouseX, mouseY, p.X, p.Y, Size) {
			return Handle(i), true
		}
	}
	return 0, false
}

// NewDimensions computes the box produced by dragging handle by (dx, dy)
// from the original box. Handles on the top or left move the anchor so the
// opposite edge stays put; bottom and right handles keep the anchor. Width
// and height never fall below minSize, and clamping keeps the opposite edge
// fixed as well.
func NewDimensions(h Handle, dx, dy, origW, origH, origX, origY, minSize float64) geom.Rect {
	r := geom.Rect{X: origX, Y: origY, W: origW, H: origH}
	switch {
	case h.onLeft():
		r.W = origW - dx
		r.X = origX + dx
	case h.onRight():
		r.W = origW + dx
	}
	switch {
	case h.onTop():
		r.H = origH - dy
		r.Y = origY + dy
	case h.onBottom():
		r.H = origH + dy
	}
	if r.W < minSize {
		r.W = minSize
		if h.onLeft() {
			r.X = origX + origW - minSize
		}
	}
	if r.H < minSize {
		r.H = minSize
		if h.onTop() {
			r.Y = origY + origH - minSize
		}
	}
	return r
}
