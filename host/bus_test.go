package host

import (
	"sync"
	"testing"
)

func TestBus_DispatchOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(EventClick, func(ev Event) { got = append(got, "a:"+ev.Target) })
	bus.Subscribe(EventClick, func(ev Event) { got = append(got, "b:"+ev.Target) })

	bus.Publish(Event{Type: EventClick, Target: "#home"})
	bus.Publish(Event{Type: EventClick, Target: "#about"})

	if n := bus.Dispatch(); n != 2 {
		t.Fatalf("Dispatch returned %d, want 2", n)
	}

	want := []string{"a:#home", "b:#home", "a:#about", "b:#about"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("handler call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBus_PublishDuringDispatchDeferred(t *testing.T) {
	bus := NewBus()
	calls := 0

	bus.Subscribe(EventScroll, func(Event) {
		calls++
		if calls == 1 {
			bus.Publish(Event{Type: EventScroll, DY: 10})
		}
	})

	bus.Publish(Event{Type: EventScroll, DY: 5})
	bus.Dispatch()

	if calls != 1 {
		t.Fatalf("expected 1 call in first dispatch, got %d", calls)
	}
	if bus.Pending() != 1 {
		t.Fatalf("expected re-published event to be pending, got %d", bus.Pending())
	}

	bus.Dispatch()
	if calls != 2 {
		t.Errorf("expected 2 calls after second dispatch, got %d", calls)
	}
}

func TestBus_UnhandledEventsDrained(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Type: EventToggleMenu})

	if n := bus.Dispatch(); n != 1 {
		t.Errorf("Dispatch returned %d, want 1", n)
	}
	if bus.Pending() != 0 {
		t.Errorf("expected empty queue, got %d", bus.Pending())
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()
	count := 0
	bus.Subscribe(EventPointerMove, func(Event) { count++ })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(Event{Type: EventPointerMove, X: float64(j)})
			}
		}()
	}
	wg.Wait()

	bus.Dispatch()
	if count != 800 {
		t.Errorf("expected 800 events, got %d", count)
	}
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventReady, "ready"},
		{EventResize, "resize"},
		{EventSubmit, "submit"},
		{EventQuit, "quit"},
		{EventType(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
