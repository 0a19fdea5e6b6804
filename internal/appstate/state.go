// Package appstate hosts the diagram editor in a shiny window.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/flowsketch/internal/diagram"
	"github.com/example/flowsketch/internal/input"
	"github.com/example/flowsketch/internal/notify"
	"github.com/example/flowsketch/internal/theme"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Diagram     *diagram.Diagram
	Output      string
	Width       int
	Height      int
	FontSize    float64
	DoubleClick time.Duration
	Notifier    *notify.Notifier

	updateCh chan struct{}

	themeMu  sync.Mutex
	sendCtrl func(controlEvent)

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithDiagram sets the diagram being edited.
func WithDiagram(d *diagram.Diagram) Option { return func(a *AppState) { a.Diagram = d } }

// WithOutput sets the file written by the export action.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSize sets the initial window size.
func WithSize(w, h int) Option { return func(a *AppState) { a.Width, a.Height = w, h } }

// WithFontSize sets the label size used on the canvas and in exports.
func WithFontSize(pt float64) Option { return func(a *AppState) { a.FontSize = pt } }

// WithDoubleClick sets the double click interval.
func WithDoubleClick(d time.Duration) Option { return func(a *AppState) { a.DoubleClick = d } }

// WithNotifier sets the desktop notifier for export and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Output:      "diagram.png",
		Width:       1024,
		Height:      720,
		DoubleClick: input.DefaultDoubleClick,
		updateCh:    make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Diagram == nil {
		a.Diagram = diagram.New()
	}
	return a
}

// controlEvent carries requests from other goroutines into the event loop.
type controlEvent struct {
	Theme *theme.Theme
}

// NotifyChanged requests a repaint after the diagram was mutated outside
// the event loop.
func (a *AppState) NotifyChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

// SetTheme swaps the palette. It is safe to call from any goroutine.
func (a *AppState) SetTheme(t *theme.Theme) {
	a.themeMu.Lock()
	sender := a.sendCtrl
	a.themeMu.Unlock()
	if sender != nil {
		sender(controlEvent{Theme: t})
		return
	}
	a.Diagram.SetTheme(t)
}

func (a *AppState) setControlSender(fn func(controlEvent)) {
	a.themeMu.Lock()
	a.sendCtrl = fn
	a.themeMu.Unlock()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.setControlSender(nil)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window event loop on s until the window closes.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.Width, Height: a.Height, Title: "FlowSketch"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	if a.updateCh != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-a.updateCh:
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	a.setControlSender(func(ev controlEvent) { w.Send(ev) })

	c := newController(a.Diagram, a.Output, a.FontSize, a.DoubleClick, a.Notifier)
	c.resize(a.Width, a.Height)

	// Stops before w.Release runs.
	pt := newPainter(func(ctx context.Context, frame *image.RGBA) { publish(ctx, s, w, frame) })
	defer pt.stop()

	for {
		switch e := w.NextEvent().(type) {
		case controlEvent:
			if e.Theme != nil {
				a.Diagram.SetTheme(e.Theme)
				c.buildButtons()
				c.canvas = nil
			}
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				pt.abort()
				return
			}
		case size.Event:
			c.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			if c.width <= 0 || c.height <= 0 {
				continue
			}
			frame, err := c.frame()
			if err != nil {
				log.Printf("render: %v", err)
				continue
			}
			pt.submit(frame)
		case mouse.Event:
			if c.mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if c.key(e) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func publish(ctx context.Context, s screen.Screen, w screen.Window, frame *image.RGBA) {
	b, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	copy(b.RGBA().Pix, frame.Pix)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
