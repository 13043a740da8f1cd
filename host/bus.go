package host

import "sync"

// EventType identifies a host notification.
type EventType uint8

const (
	EventReady       EventType = iota // Content ready, published once by the loop
	EventResize                       // W, H: new surface size
	EventPointerMove                  // X, Y: pointer position in surface space
	EventScroll                       // DY: scroll delta in page pixels
	EventClick                        // Target: navigation href
	EventToggleMenu                   // Hamburger toggle
	EventSubmit                       // Target: form id, Fields: submitted values
	EventQuit                         // Host is closing
)

var eventNames = [...]string{
	EventReady:       "ready",
	EventResize:      "resize",
	EventPointerMove: "pointer_move",
	EventScroll:      "scroll",
	EventClick:       "click",
	EventToggleMenu:  "toggle_menu",
	EventSubmit:      "submit",
	EventQuit:        "quit",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a host notification. Only the fields relevant to Type are set.
type Event struct {
	Type   EventType
	X, Y   float64
	DY     float64
	W, H   int
	Target string
	Fields map[string]string
}

// Handler processes one event on the loop goroutine.
type Handler func(Event)

// Bus queues host notifications and dispatches them on the loop goroutine.
//
// Publish may be called from any goroutine. Subscribe and Dispatch must run
// on the loop goroutine (or before the loop starts). Handlers for one event
// type run in registration order; events run in FIFO order. Events published
// by a handler are delivered on the next Dispatch.
type Bus struct {
	mu       sync.Mutex
	pending  []Event
	spare    []Event
	handlers map[EventType][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		pending:  make([]Event, 0, 64),
		spare:    make([]Event, 0, 64),
		handlers: make(map[EventType][]Handler),
	}
}

// Publish queues an event.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	b.pending = append(b.pending, ev)
	b.mu.Unlock()
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// Dispatch delivers every queued event and returns how many were delivered.
func (b *Bus) Dispatch() int {
	b.mu.Lock()
	events := b.pending
	b.pending = b.spare[:0]
	b.mu.Unlock()

	for _, ev := range events {
		for _, h := range b.handlers[ev.Type] {
			h(ev)
		}
	}

	// Reuse the drained slice for the next swap
	b.mu.Lock()
	b.spare = events[:0]
	b.mu.Unlock()

	return len(events)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// HandlerCount returns the number of handlers registered for t.
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}
