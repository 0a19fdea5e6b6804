package diagram

import (
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/input"
	"github.com/example/flowsketch/internal/shape"
)

// pasteNudge offsets a paste that has no pointer position to aim at, so
// the copies do not land exactly on their originals.
var pasteNudge = geom.Pt(20, 20)

// Marquee replaces the selection with every shape whose box intersects r.
func (d *Diagram) Marquee(r geom.Rect) []shape.Shape {
	var hit []shape.Shape
	for _, s := range d.shapes {
		if s.Box().Intersects(r) {
			hit = append(hit, s)
		}
	}
	d.sel.Replace(d.shapes, hit)
	d.logger.Debug("marquee", "rect", r, "selected", len(hit))
	return hit
}

// SelectAll selects every shape.
func (d *Diagram) SelectAll() {
	d.sel.Replace(d.shapes, d.shapes)
}

// Selected returns the selection in the order it was made.
func (d *Diagram) Selected() []shape.Shape { return d.sel.Members() }

// DeleteSelected removes every selected shape and returns how many went.
func (d *Diagram) DeleteSelected() int {
	victims := d.sel.Members()
	if len(victims) == 0 {
		return 0
	}
	if d.editor != nil {
		d.editor.Cancel()
	}
	d.sel.Batch(func() {
		for _, s := range victims {
			d.Remove(s)
		}
	})
	d.logger.Debug("deleted selection", "count", len(victims))
	return len(victims)
}

// Copy snapshots the selection onto the board and returns how many shapes
// were copied. An empty selection leaves the board alone.
func (d *Diagram) Copy() int {
	sel := d.sel.Members()
	if len(sel) == 0 {
		return 0
	}
	return d.board.Copy(sel)
}

// Paste adds copies of the board centred on at and makes them the
// selection.
func (d *Diagram) Paste(at geom.Point) []shape.Shape {
	pasted := d.board.Paste(d.Env(), at)
	if len(pasted) == 0 {
		return nil
	}
	for _, s := range pasted {
		d.Add(s)
	}
	d.sel.Replace(d.shapes, pasted)
	d.logger.Debug("pasted", "count", len(pasted), "at", at)
	return pasted
}

// pasteTarget is the pointer when known, else the board centroid nudged.
func (d *Diagram) pasteTarget() geom.Point {
	if p, ok := d.Pointer(); ok {
		return p
	}
	c, _ := d.board.Centroid()
	return c.Add(pasteNudge)
}

// Key applies a keyboard command. It reports whether the command did
// anything.
func (d *Diagram) Key(cmd input.Command) bool {
	if d.editor != nil {
		switch cmd {
		case input.CmdEnter:
			d.editor.Commit()
			return true
		case input.CmdEscape:
			d.editor.Cancel()
			return true
		case input.CmdBackspace:
			return d.editor.Backspace()
		}
		return false
	}

	switch cmd {
	case input.CmdDelete, input.CmdBackspace:
		return d.DeleteSelected() > 0
	case input.CmdSelectAll:
		d.SelectAll()
		return len(d.shapes) > 0
	case input.CmdCopy:
		return d.Copy() > 0
	case input.CmdPaste:
		return len(d.Paste(d.pasteTarget())) > 0
	case input.CmdEscape:
		if d.sel.Len() == 0 {
			return false
		}
		d.sel.Clear()
		return true
	}
	return false
}

// Type feeds a printable rune to the open inline editor.
func (d *Diagram) Type(r rune) bool {
	if d.editor == nil {
		return false
	}
	d.editor.Insert(r)
	return true
}
