package host

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrRunning is returned when Run is called on a loop that is already running.
var ErrRunning = errors.New("loop already running")

// Host is the environment a page runs in.
type Host interface {
	// Surface returns the drawing surface, or an error wrapping ErrNoSurface.
	Surface() (Surface, error)
	// Size returns the current surface size in pixels.
	Size() (w, h int)
	// Poll publishes pending host notifications onto the bus.
	Poll(bus *Bus)
	// BeginFrame and EndFrame bracket the drawing of one frame.
	BeginFrame()
	EndFrame()
	// WaitFrame blocks until the next repaint is due.
	WaitFrame(ctx context.Context) error
	// Close releases host resources.
	Close() error
}

// FrameFunc is called once per frame with the frame number.
type FrameFunc func(frame uint64)

// Loop drives a Host: one entry point, one frame per WaitFrame, stoppable.
type Loop struct {
	host   Host
	bus    *Bus
	timers *Timers
	clock  Clock

	frameFns []FrameFunc
	frames   uint64

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop. The loop subscribes itself to EventQuit.
func NewLoop(h Host, bus *Bus, timers *Timers, clock Clock) *Loop {
	l := &Loop{
		host:   h,
		bus:    bus,
		timers: timers,
		clock:  clock,
		stop:   make(chan struct{}),
	}
	bus.Subscribe(EventQuit, l.handleQuit)
	return l
}

// OnFrame registers fn to run every frame, after events and timers.
// Must be called before Run or from the loop goroutine.
func (l *Loop) OnFrame(fn FrameFunc) {
	l.frameFns = append(l.frameFns, fn)
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Stop ends Run after the current frame. Safe to call from any goroutine
// and more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Loop) handleQuit(Event) {
	slog.Info("host requested quit", "frame", l.frames)
	l.Stop()
}

func (l *Loop) stopped() bool {
	select {
	case <-l.stop:
		return true
	default:
		return false
	}
}

// Run publishes EventReady and then runs frames until Stop, an EventQuit or
// ctx cancellation. Each frame: poll the host, dispatch events, fire due
// timers, draw, then wait for the next repaint.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	l.bus.Publish(Event{Type: EventReady})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.stopped() {
			return nil
		}

		l.host.Poll(l.bus)
		l.bus.Dispatch()
		if l.stopped() {
			return nil
		}
		l.timers.Advance(l.clock.Now())

		l.host.BeginFrame()
		for _, fn := range l.frameFns {
			fn(l.frames)
		}
		l.host.EndFrame()
		l.frames++

		if err := l.host.WaitFrame(ctx); err != nil {
			return err
		}
	}
}
