package page

import (
	"errors"
	"fmt"
	"time"

	"github.com/pthm-cable/backdrop/host"
)

// ErrNoPhrases is returned when the headline rotator has nothing to type.
var ErrNoPhrases = errors.New("typed text: no phrases")

// ErrBadDelay is returned when a full type/delete cycle would take no time.
var ErrBadDelay = errors.New("typed text: type and delete delays must be positive")

// TyperTimings holds the rotator delays.
type TyperTimings struct {
	Type   time.Duration // Between typed characters
	Delete time.Duration // Between deleted characters
	Hold   time.Duration // At the full phrase
	Gap    time.Duration // At the empty phrase, before the next one
}

// Typer types and deletes a cyclic list of phrases one character at a time.
type Typer struct {
	timers  *host.Timers
	phrases [][]rune
	timings TyperTimings

	index    int  // Current phrase
	chars    int  // Characters shown
	deleting bool // Removing characters
	text     string

	pending  host.TimerID
	running  bool
	onChange func(string)
}

// NewTyper creates a stopped rotator.
func NewTyper(timers *host.Timers, phrases []string, timings TyperTimings) (*Typer, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	if timings.Type <= 0 || timings.Delete <= 0 || timings.Hold < 0 || timings.Gap < 0 {
		return nil, fmt.Errorf("%w: type=%v delete=%v hold=%v gap=%v",
			ErrBadDelay, timings.Type, timings.Delete, timings.Hold, timings.Gap)
	}
	t := &Typer{timers: timers, timings: timings}
	for _, p := range phrases {
		t.phrases = append(t.phrases, []rune(p))
	}
	return t, nil
}

// OnChange sets a callback invoked with the new text after every change.
func (t *Typer) OnChange(fn func(string)) {
	t.onChange = fn
}

// Start schedules the first character one type interval from now.
func (t *Typer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.pending = t.timers.After(t.timings.Type, t.tick)
}

// Stop cancels the pending step. The text keeps its current value.
func (t *Typer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.timers.Cancel(t.pending)
}

// Text returns the text currently shown.
func (t *Typer) Text() string {
	return t.text
}

// Phrase returns the index of the phrase being typed or deleted.
func (t *Typer) Phrase() int {
	return t.index
}

// Deleting reports whether the rotator is removing characters.
func (t *Typer) Deleting() bool {
	return t.deleting
}

func (t *Typer) tick() {
	phrase := t.phrases[t.index]

	if t.deleting {
		t.chars--
	} else {
		t.chars++
	}
	t.chars = max(0, min(len(phrase), t.chars))
	t.text = string(phrase[:t.chars])

	delay := t.timings.Type
	if t.deleting {
		delay = t.timings.Delete
	}

	switch {
	case !t.deleting && t.chars == len(phrase):
		delay = t.timings.Hold
		t.deleting = true
	case t.deleting && t.chars == 0:
		t.deleting = false
		t.index = (t.index + 1) % len(t.phrases)
		delay = t.timings.Gap
	}

	if t.onChange != nil {
		t.onChange(t.text)
	}
	t.pending = t.timers.After(delay, t.tick)
}
