package host

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestLoop(h Host) (*Loop, *Bus, *Timers, *ManualClock) {
	bus := NewBus()
	clock := NewManualClock(epoch)
	timers := NewTimers(epoch)
	return NewLoop(h, bus, timers, clock), bus, timers, clock
}

func TestLoop_ReadyBeforeFirstFrame(t *testing.T) {
	h := NewHeadless(320, 240, 0)
	loop, bus, _, _ := newTestLoop(h)

	var order []string
	bus.Subscribe(EventReady, func(Event) { order = append(order, "ready") })
	loop.OnFrame(func(frame uint64) {
		order = append(order, "frame")
		if frame == 1 {
			loop.Stop()
		}
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}

	want := []string{"ready", "frame", "frame"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, order[i], want[i])
		}
	}
	if loop.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", loop.Frames())
	}
}

func TestLoop_EventsAndTimersBeforeDraw(t *testing.T) {
	h := NewHeadless(320, 240, 0)
	loop, bus, timers, clock := newTestLoop(h)

	var order []string
	bus.Subscribe(EventResize, func(ev Event) { order = append(order, "resize") })
	timers.After(10*time.Millisecond, func() { order = append(order, "timer") })

	loop.OnFrame(func(frame uint64) {
		switch frame {
		case 0:
			h.Resize(640, 480)
			clock.Advance(20 * time.Millisecond)
		case 1:
			order = append(order, "frame")
			loop.Stop()
		}
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}

	want := []string{"resize", "timer", "frame"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestLoop_QuitEventStops(t *testing.T) {
	h := NewHeadless(100, 100, 0)
	loop, _, _, _ := newTestLoop(h)

	loop.OnFrame(func(frame uint64) {
		if frame == 2 {
			h.Inject(Event{Type: EventQuit})
		}
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if loop.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", loop.Frames())
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	h := NewHeadless(100, 100, 240)
	defer h.Close()
	loop, _, _, _ := newTestLoop(h)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want deadline exceeded", err)
	}
	if loop.Frames() == 0 {
		t.Error("expected at least one frame before cancellation")
	}
}

func TestLoop_StopIdempotent(t *testing.T) {
	h := NewHeadless(100, 100, 0)
	loop, _, _, _ := newTestLoop(h)

	loop.Stop()
	loop.Stop()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if loop.Frames() != 0 {
		t.Errorf("stopped loop ran %d frames", loop.Frames())
	}
}

func TestHeadless_BeginFrameResetsRecorder(t *testing.T) {
	h := NewHeadless(100, 100, 0)
	s, err := h.Surface()
	if err != nil {
		t.Fatalf("Surface: %v", err)
	}
	s.Clear(Color{A: 1})
	s.Circle(1, 1, 2, Color{A: 1})
	if len(h.Recorder().Ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(h.Recorder().Ops))
	}
	h.BeginFrame()
	if len(h.Recorder().Ops) != 0 {
		t.Errorf("expected recorder reset, got %d ops", len(h.Recorder().Ops))
	}
}

func TestHeadless_WithoutSurface(t *testing.T) {
	h := NewHeadless(100, 100, 0).WithoutSurface()
	if _, err := h.Surface(); !errors.Is(err, ErrNoSurface) {
		t.Errorf("Surface error = %v, want ErrNoSurface", err)
	}
}
