package appstate

import (
	"context"
	"image"
	"sync"
)

// painter publishes frames on its own goroutine. Only the newest frame is
// kept while an upload is in flight, and a new frame cancels the upload in
// progress.
type painter struct {
	publish func(context.Context, *image.RGBA)

	mu     sync.Mutex
	cancel context.CancelFunc
	ch     chan *image.RGBA
	done   chan struct{}
}

func newPainter(publish func(context.Context, *image.RGBA)) *painter {
	p := &painter{
		publish: publish,
		ch:      make(chan *image.RGBA, 1),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer close(p.done)
	for frame := range p.ch {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.publish(ctx, frame)
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
		cancel()
	}
}

// abort cancels the upload in progress, if any.
func (p *painter) abort() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
}

// submit queues frame, replacing a frame that has not started uploading.
// It must not be called after stop.
func (p *painter) submit(frame *image.RGBA) {
	p.abort()
	select {
	case p.ch <- frame:
	default:
		select {
		case <-p.ch:
		default:
		}
		p.ch <- frame
	}
}

// stop lets the queued frame finish and waits for the goroutine to exit.
func (p *painter) stop() {
	close(p.ch)
	<-p.done
}
