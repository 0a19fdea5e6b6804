package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/flowsketch/internal/clipboard"
	"github.com/example/flowsketch/internal/diagram"
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/input"
	"github.com/example/flowsketch/internal/notify"
	"github.com/example/flowsketch/internal/surface"
)

const (
	toolbarWidth  = 96
	statusHeight  = 20
	buttonGap     = 4
	paletteHeight = 56
	actionHeight  = 24
	exportMargin  = 16
	messageTime   = 2 * time.Second
)

// KeyShortcut describes a keyboard combination that triggers a window
// action. Editing commands live in the input package.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var windowShortcuts = map[KeyShortcut]string{
	{Rune: 's', Modifiers: key.ModControl}:                      "export",
	{Code: key.CodeS, Modifiers: key.ModControl}:                "export",
	{Rune: 'c', Modifiers: key.ModControl | key.ModShift}:       "copy-image",
	{Code: key.CodeC, Modifiers: key.ModControl | key.ModShift}: "copy-image",
}

func windowAction(e key.Event) (string, bool) {
	if e.Rune > 0 {
		if name, ok := windowShortcuts[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}]; ok {
			return name, true
		}
	}
	name, ok := windowShortcuts[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return name, ok
}

type paletteDrag struct {
	payload []byte
	at      image.Point
	size    geom.Size
}

// controller owns the editor state driven by the window event loop. It is
// not safe for concurrent use.
type controller struct {
	d        *diagram.Diagram
	tr       *input.Translator
	output   string
	fontSize float64
	notifier *notify.Notifier

	writeText  func(string) error
	writeImage func(image.Image) error
	now        func() time.Time

	width, height int
	buttons       []*CacheButton
	hover         int
	pressed       int
	toolbarDown   bool
	drag          *paletteDrag

	canvas       *surface.Raster
	message      string
	messageUntil time.Time
}

func newController(d *diagram.Diagram, output string, fontSize float64, doubleClick time.Duration, n *notify.Notifier) *controller {
	c := &controller{
		d:          d,
		tr:         input.NewTranslator(doubleClick),
		output:     output,
		fontSize:   fontSize,
		notifier:   n,
		writeText:  clipboard.WriteText,
		writeImage: clipboard.WriteImage,
		now:        time.Now,
		hover:      -1,
		pressed:    -1,
	}
	c.tr.ToScene = func(x, y float32) geom.Point {
		return geom.Pt(float64(x)-toolbarWidth, float64(y))
	}
	c.buildButtons()
	return c
}

func (c *controller) buildButtons() {
	th := c.d.Theme()
	c.buttons = nil
	for _, cr := range diagram.Palette() {
		cr := cr
		c.buttons = append(c.buttons, &CacheButton{Button: &PaletteButton{
			creator: cr,
			theme:   th,
			onActivate: func() {
				c.d.CreateFrom(cr, c.canvasCenter())
				c.flash(fmt.Sprintf("added %s", cr.Kind))
			},
		}})
	}
	actions := []struct {
		label string
		fn    func()
	}{
		{"Copy", c.copyShapes},
		{"Paste", func() { c.d.Key(input.CmdPaste) }},
		{"Delete", func() { c.d.Key(input.CmdDelete) }},
		{"Export", c.export},
	}
	for _, a := range actions {
		c.buttons = append(c.buttons, &CacheButton{Button: &ActionButton{label: a.label, theme: th, onActivate: a.fn}})
	}
	c.layout()
}

func (c *controller) layout() {
	y := buttonGap
	for _, b := range c.buttons {
		h := actionHeight
		if _, ok := b.Button.(*PaletteButton); ok {
			h = paletteHeight
		}
		b.SetRect(image.Rect(buttonGap, y, toolbarWidth-buttonGap, y+h))
		y += h + buttonGap
	}
}

func (c *controller) resize(w, h int) {
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.canvas = nil
}

func (c *controller) canvasRect() image.Rectangle {
	return image.Rect(toolbarWidth, 0, c.width, c.height-statusHeight)
}

func (c *controller) canvasCenter() geom.Point {
	r := c.canvasRect()
	return geom.Pt(float64(r.Dx())/2, float64(r.Dy())/2)
}

func (c *controller) buttonAt(p image.Point) int {
	for i, b := range c.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

func (c *controller) flash(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageTime)
	log.Print(msg)
}

// mouse handles one pointer event and reports whether a repaint is needed.
func (c *controller) mouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))

	if e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft && p.X < toolbarWidth {
		c.toolbarDown = true
		c.pressed = c.buttonAt(p)
		if c.pressed >= 0 {
			if pb, ok := c.buttons[c.pressed].Button.(*PaletteButton); ok {
				payload, err := pb.creator.Encode()
				if err != nil {
					log.Printf("palette drag: %v", err)
				} else {
					c.drag = &paletteDrag{payload: payload, at: p, size: geom.Size{W: pb.creator.Width, H: pb.creator.Height}}
				}
			}
		}
		return true
	}

	if c.toolbarDown {
		return c.toolbarGesture(e, p)
	}

	changed := false
	if e.Direction == mouse.DirNone && !c.tr.Dragging() {
		if h := c.buttonAt(p); h != c.hover {
			c.hover = h
			changed = true
		}
		if p.X < toolbarWidth {
			return changed
		}
	}

	for _, ev := range c.tr.Mouse(e) {
		pe := ev.Pointer()
		switch ev.Type {
		case input.Press:
			c.d.Press(pe)
		case input.Drag:
			c.d.Drag(pe)
		case input.Release:
			c.d.Release(pe)
		case input.Click:
			c.d.Click(pe)
		case input.Move:
			c.d.MouseMoved(pe)
		}
		changed = true
	}
	return changed || c.d.Dirty()
}

func (c *controller) toolbarGesture(e mouse.Event, p image.Point) bool {
	switch e.Direction {
	case mouse.DirNone:
		if c.drag != nil {
			c.drag.at = p
		}
		return true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		pressed := c.pressed
		drag := c.drag
		c.toolbarDown = false
		c.pressed = -1
		c.drag = nil

		if drag != nil && p.In(c.canvasRect()) {
			cr, err := diagram.DecodeCreator(drag.payload)
			if err != nil {
				log.Printf("palette drop: %v", err)
				return true
			}
			c.d.CreateFrom(cr, geom.Pt(float64(p.X-toolbarWidth), float64(p.Y)))
			c.flash(fmt.Sprintf("added %s", cr.Kind))
			return true
		}
		if pressed >= 0 && c.buttonAt(p) == pressed {
			c.buttons[pressed].Activate()
		}
		return true
	}
	return false
}

// key handles one key event and reports whether a repaint is needed.
func (c *controller) key(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if name, ok := windowAction(e); ok {
		switch name {
		case "export":
			c.export()
		case "copy-image":
			c.copyImage()
		}
		return true
	}

	cmd := input.CommandFor(e)
	if cmd == input.CmdCopy && c.d.TextEditor() == nil {
		c.copyShapes()
		return true
	}
	if cmd != input.CmdNone {
		return c.d.Key(cmd)
	}
	if r, ok := input.TextRune(e); ok {
		return c.d.Type(r)
	}
	return false
}

func (c *controller) copyShapes() {
	n := c.d.Copy()
	if n == 0 {
		c.flash("nothing selected")
		return
	}
	if err := c.writeText(c.d.Board().Text()); err != nil {
		log.Printf("copy text: %v", err)
	}
	detail := fmt.Sprintf("%d shapes", n)
	c.flash("copied " + detail)
	c.notifier.Copy(detail)
}

func (c *controller) copyImage() {
	img, err := c.d.Export(exportMargin, c.fontSize)
	if err != nil {
		c.flash(fmt.Sprintf("copy image: %v", err))
		return
	}
	if err := c.writeImage(img); err != nil {
		c.flash(fmt.Sprintf("copy image: %v", err))
		return
	}
	c.flash("diagram image copied to clipboard")
	c.notifier.Copy("diagram image")
}

func (c *controller) export() {
	img, err := c.d.Export(exportMargin, c.fontSize)
	if err != nil {
		c.flash(fmt.Sprintf("export: %v", err))
		return
	}
	if err := writePNG(c.output, img); err != nil {
		c.flash(fmt.Sprintf("export: %v", err))
		return
	}
	c.flash(fmt.Sprintf("saved %s", c.output))
	c.notifier.Export(c.output, img)
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("export: closing file: %v", cerr)
		}
		return err
	}
	return out.Close()
}

func (c *controller) status() string {
	if c.message != "" && c.now().Before(c.messageUntil) {
		return c.message
	}
	return fmt.Sprintf("%d shapes, %d selected  [%s]", c.d.Len(), len(c.d.Selected()), c.d.Cursor())
}

// frame renders the whole window into a new image.
func (c *controller) frame() (*image.RGBA, error) {
	th := c.d.Theme()
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{th.EditorBackground}, image.Point{}, draw.Src)

	cr := c.canvasRect()
	if !cr.Empty() {
		if c.canvas == nil {
			r, err := surface.NewRaster(cr.Dx(), cr.Dy(), c.fontSize)
			if err != nil {
				return nil, err
			}
			c.canvas = r
		}
		c.d.Render(c.canvas)
		draw.Draw(img, cr, c.canvas.Snapshot(), image.Point{}, draw.Src)
	}

	draw.Draw(img, image.Rect(0, 0, toolbarWidth, c.height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, b := range c.buttons {
		state := StateDefault
		switch i {
		case c.pressed:
			state = StatePressed
		case c.hover:
			state = StateHover
		}
		b.Draw(img, state)
	}

	if c.drag != nil && c.drag.at.In(cr) {
		w, h := int(c.drag.size.W), int(c.drag.size.H)
		ghost := image.Rect(c.drag.at.X-w/2, c.drag.at.Y-h/2, c.drag.at.X+w-w/2, c.drag.at.Y+h-h/2)
		draw.Draw(img, ghost.Intersect(cr), &image.Uniform{th.MarqueeFill}, image.Point{}, draw.Over)
		drawRect(img, ghost, th.Marquee, 1)
	}

	sb := image.Rect(0, c.height-statusHeight, c.width, c.height)
	draw.Draw(img, sb, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	drawLabel(img, c.status(), image.Pt(sb.Min.X+6, sb.Max.Y-6), th.StatusText)
	return img, nil
}
