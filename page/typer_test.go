package page

import (
	"errors"
	"testing"
	"time"

	"github.com/pthm-cable/backdrop/host"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var stockTimings = TyperTimings{
	Type:   100 * time.Millisecond,
	Delete: 50 * time.Millisecond,
	Hold:   2000 * time.Millisecond,
	Gap:    500 * time.Millisecond,
}

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestTyper_SinglePhraseCycle(t *testing.T) {
	timers := host.NewTimers(epoch)
	ty, err := NewTyper(timers, []string{"AB"}, stockTimings)
	if err != nil {
		t.Fatalf("NewTyper: %v", err)
	}
	ty.Start()

	steps := []struct {
		ms       int
		want     string
		deleting bool
	}{
		{0, "", false},
		{99, "", false},
		{100, "A", false},
		{200, "AB", true},
		{2199, "AB", true},
		{2200, "A", true},
		{2250, "", false},
		{2749, "", false},
		{2750, "A", false},
		{2850, "AB", true},
	}

	for _, s := range steps {
		timers.Advance(at(s.ms))
		if got := ty.Text(); got != s.want {
			t.Errorf("at %dms text = %q, want %q", s.ms, got, s.want)
		}
		if ty.Deleting() != s.deleting {
			t.Errorf("at %dms deleting = %v, want %v", s.ms, ty.Deleting(), s.deleting)
		}
	}
}

func TestTyper_AdvancesPhrases(t *testing.T) {
	timers := host.NewTimers(epoch)
	ty, err := NewTyper(timers, []string{"Hi", "Yo"}, stockTimings)
	if err != nil {
		t.Fatalf("NewTyper: %v", err)
	}
	var seen []string
	ty.OnChange(func(s string) { seen = append(seen, s) })
	ty.Start()

	// "H" 100, "Hi" 200, hold to 2200 "H", 2250 "" + gap, 2750 "Y", 2850 "Yo"
	timers.Advance(at(2850))

	want := []string{"H", "Hi", "H", "", "Y", "Yo"}
	if len(seen) != len(want) {
		t.Fatalf("changes = %q, want %q", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("change %d = %q, want %q", i, seen[i], want[i])
		}
	}
	if ty.Phrase() != 1 {
		t.Errorf("Phrase = %d, want 1", ty.Phrase())
	}

	// Wraps back to the first phrase
	// 4850 "Y", 4900 "" + gap, 5400 "H"
	timers.Advance(at(5400))
	if ty.Phrase() != 0 || ty.Text() != "H" {
		t.Errorf("after wrap phrase = %d text = %q, want 0 %q", ty.Phrase(), ty.Text(), "H")
	}
}

func TestTyper_MultibyteRunes(t *testing.T) {
	timers := host.NewTimers(epoch)
	ty, _ := NewTyper(timers, []string{"né"}, stockTimings)
	ty.Start()

	timers.Advance(at(200))
	if ty.Text() != "né" {
		t.Errorf("text = %q, want %q", ty.Text(), "né")
	}
	timers.Advance(at(2200))
	if ty.Text() != "n" {
		t.Errorf("text after first delete = %q, want %q", ty.Text(), "n")
	}
}

func TestTyper_Stop(t *testing.T) {
	timers := host.NewTimers(epoch)
	ty, _ := NewTyper(timers, []string{"AB"}, stockTimings)
	ty.Start()
	timers.Advance(at(100))
	ty.Stop()

	timers.Advance(at(5000))
	if ty.Text() != "A" {
		t.Errorf("text after stop = %q, want %q", ty.Text(), "A")
	}
	if timers.Pending() != 0 {
		t.Errorf("pending timers after stop = %d", timers.Pending())
	}
}

func TestTyper_NoPhrases(t *testing.T) {
	_, err := NewTyper(host.NewTimers(epoch), nil, stockTimings)
	if !errors.Is(err, ErrNoPhrases) {
		t.Errorf("error = %v, want ErrNoPhrases", err)
	}
}

func TestTyper_RejectsZeroCycle(t *testing.T) {
	tests := []struct {
		name    string
		timings TyperTimings
	}{
		{"all zero", TyperTimings{}},
		{"zero type", TyperTimings{Delete: time.Millisecond}},
		{"zero delete", TyperTimings{Type: time.Millisecond}},
		{"negative hold", TyperTimings{Type: time.Millisecond, Delete: time.Millisecond, Hold: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTyper(host.NewTimers(epoch), []string{"AB"}, tt.timings)
			if !errors.Is(err, ErrBadDelay) {
				t.Errorf("error = %v, want ErrBadDelay", err)
			}
		})
	}

	// Zero hold and gap still advance through the positive per-character delays
	if _, err := NewTyper(host.NewTimers(epoch), []string{"AB"}, TyperTimings{Type: time.Millisecond, Delete: time.Millisecond}); err != nil {
		t.Errorf("zero hold and gap rejected: %v", err)
	}
}
