package host

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Timers runs delayed callbacks on the loop goroutine.
//
// Time only moves when Advance is called. While a callback runs, Now reports
// that callback's deadline, so timers scheduled from inside a callback are
// relative to when it was due rather than when Advance was called.
type Timers struct {
	now    time.Time
	seq    uint64
	nextID TimerID
	queue  timerHeap
	byID   map[TimerID]*timer
}

// NewTimers creates a scheduler whose clock starts at start.
func NewTimers(start time.Time) *Timers {
	return &Timers{
		now:  start,
		byID: make(map[TimerID]*timer),
	}
}

// Now returns the scheduler's current time.
func (t *Timers) Now() time.Time {
	return t.now
}

// After schedules fn to run once d has elapsed.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t.nextID++
	t.seq++
	tm := &timer{
		id:       t.nextID,
		deadline: t.now.Add(d),
		seq:      t.seq,
		fn:       fn,
	}
	heap.Push(&t.queue, tm)
	t.byID[tm.id] = tm
	return tm.id
}

// Cancel removes a pending timer. Returns false if it already ran or never existed.
func (t *Timers) Cancel(id TimerID) bool {
	tm, ok := t.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&t.queue, tm.index)
	delete(t.byID, id)
	return true
}

// Advance moves time forward to now, running every callback due by then in
// deadline order (ties in scheduling order). Returns the number of callbacks run.
func (t *Timers) Advance(now time.Time) int {
	ran := 0
	for len(t.queue) > 0 {
		next := t.queue[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&t.queue)
		delete(t.byID, next.id)
		if next.deadline.After(t.now) {
			t.now = next.deadline
		}
		next.fn()
		ran++
	}
	if now.After(t.now) {
		t.now = now
	}
	return ran
}

// Pending returns the number of scheduled timers.
func (t *Timers) Pending() int {
	return len(t.queue)
}
