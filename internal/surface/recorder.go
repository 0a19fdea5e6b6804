package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/example/flowsketch/internal/geom"
)

// Op names a recorded draw call.
type Op string

const (
	OpClear         Op = "clear"
	OpClearRect     Op = "clear-rect"
	OpStrokeColor   Op = "stroke-color"
	OpFillColor     Op = "fill-color"
	OpLineWidth     Op = "line-width"
	OpStrokeRect    Op = "stroke-rect"
	OpFillRect      Op = "fill-rect"
	OpStrokeOval    Op = "stroke-oval"
	OpFillOval      Op = "fill-oval"
	OpStrokePolygon Op = "stroke-polygon"
	OpFillPolygon   Op = "fill-polygon"
	OpStrokeLine    Op = "stroke-line"
	OpFillText      Op = "fill-text"
)

// Command is one recorded draw call.
type Command struct {
	Op     Op
	Args   []float64
	Points []geom.Point
	Text   string
	Color  color.Color
}

func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Op))
	for _, a := range c.Args {
		fmt.Fprintf(&sb, " %.1f", a)
	}
	for _, p := range c.Points {
		fmt.Fprintf(&sb, " (%.1f,%.1f)", p.X, p.Y)
	}
	if c.Text != "" {
		fmt.Fprintf(&sb, " %q", c.Text)
	}
	if c.Color != nil {
		r, g, b, a := c.Color.RGBA()
		fmt.Fprintf(&sb, " #%02X%02X%02X%02X", r>>8, g>>8, b>>8, a>>8)
	}
	return sb.String()
}

// Recorder is a Surface that keeps the calls it receives instead of
// drawing them. Text is measured with a fixed advance per rune so layouts
// are deterministic.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	fontSize      float64
	commands      []Command
}

// NewRecorder returns a recorder that reports a w x h snapshot.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{width: w, height: h, fontSize: DefaultFontSize}
}

// Commands returns the calls recorded so far.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset drops every recorded call.
func (r *Recorder) Reset() { r.commands = r.commands[:0] }

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the strings passed to FillText in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.commands {
		if c.Op == OpFillText {
			out = append(out, c.Text)
		}
	}
	return out
}

// WriteTo dumps the recorded calls one per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range r.commands {
		n, err := fmt.Fprintln(w, c.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Recorder) add(c Command) { r.commands = append(r.commands, c) }

func (r *Recorder) Clear(c color.Color) { r.add(Command{Op: OpClear, Color: c}) }
func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.add(Command{Op: OpClearRect, Args: []float64{x, y, w, h}})
}
func (r *Recorder) SetStrokeColor(c color.Color) { r.add(Command{Op: OpStrokeColor, Color: c}) }
func (r *Recorder) SetFillColor(c color.Color)   { r.add(Command{Op: OpFillColor, Color: c}) }
func (r *Recorder) SetLineWidth(w float64)       { r.add(Command{Op: OpLineWidth, Args: []float64{w}}) }
func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.add(Command{Op: OpStrokeRect, Args: []float64{x, y, w, h}})
}
func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Command{Op: OpFillRect, Args: []float64{x, y, w, h}})
}
func (r *Recorder) StrokeOval(x, y, w, h float64) {
	r.add(Command{Op: OpStrokeOval, Args: []float64{x, y, w, h}})
}
func (r *Recorder) FillOval(x, y, w, h float64) {
	r.add(Command{Op: OpFillOval, Args: []float64{x, y, w, h}})
}
func (r *Recorder) StrokePolygon(pts []geom.Point) {
	r.add(Command{Op: OpStrokePolygon, Points: append([]geom.Point(nil), pts...)})
}
func (r *Recorder) FillPolygon(pts []geom.Point) {
	r.add(Command{Op: OpFillPolygon, Points: append([]geom.Point(nil), pts...)})
}
func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64) {
	r.add(Command{Op: OpStrokeLine, Args: []float64{x1, y1, x2, y2}})
}
func (r *Recorder) FillText(s string, x, y float64) {
	r.add(Command{Op: OpFillText, Args: []float64{x, y}, Text: s})
}

func (r *Recorder) MeasureText(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.fontSize * 0.6
}

func (r *Recorder) FontSize() float64 { return r.fontSize }

func (r *Recorder) Snapshot() image.Image {
	return image.NewRGBA(image.Rect(0, 0, r.width, r.height))
}
