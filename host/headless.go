package host

import (
	"context"
	"sync"
	"time"
)

// Headless is a Host without a display. Frames are paced by a ticker at the
// target rate (or not at all when fps is 0) and drawing goes to a Recorder.
type Headless struct {
	mu     sync.Mutex
	w, h   int
	queued []Event

	rec      *Recorder
	noSurf   bool
	interval time.Duration
	ticker   *time.Ticker
}

// NewHeadless creates a headless host of the given size.
func NewHeadless(w, h, fps int) *Headless {
	hl := &Headless{w: w, h: h, rec: NewRecorder()}
	if fps > 0 {
		hl.interval = time.Second / time.Duration(fps)
	}
	return hl
}

// WithoutSurface makes Surface fail, as when no drawing context exists.
func (hl *Headless) WithoutSurface() *Headless {
	hl.noSurf = true
	return hl
}

// Recorder returns the surface the host records into.
func (hl *Headless) Recorder() *Recorder {
	return hl.rec
}

func (hl *Headless) Surface() (Surface, error) {
	if hl.noSurf {
		return nil, ErrNoSurface
	}
	return hl.rec, nil
}

func (hl *Headless) Size() (int, int) {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	return hl.w, hl.h
}

// Resize changes the size and queues an EventResize for the next Poll.
func (hl *Headless) Resize(w, h int) {
	hl.mu.Lock()
	hl.w, hl.h = w, h
	hl.queued = append(hl.queued, Event{Type: EventResize, W: w, H: h})
	hl.mu.Unlock()
}

// Inject queues an arbitrary event for the next Poll. Safe from any goroutine.
func (hl *Headless) Inject(ev Event) {
	hl.mu.Lock()
	hl.queued = append(hl.queued, ev)
	hl.mu.Unlock()
}

func (hl *Headless) Poll(bus *Bus) {
	hl.mu.Lock()
	queued := hl.queued
	hl.queued = nil
	hl.mu.Unlock()

	for _, ev := range queued {
		bus.Publish(ev)
	}
}

// BeginFrame drops the previous frame's recorded calls.
func (hl *Headless) BeginFrame() {
	hl.rec.Reset()
}

func (hl *Headless) EndFrame() {}

func (hl *Headless) WaitFrame(ctx context.Context) error {
	if hl.interval == 0 {
		return ctx.Err()
	}
	if hl.ticker == nil {
		hl.ticker = time.NewTicker(hl.interval)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-hl.ticker.C:
		return nil
	}
}

func (hl *Headless) Close() error {
	if hl.ticker != nil {
		hl.ticker.Stop()
	}
	return nil
}
