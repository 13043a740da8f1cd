// Package audio plays the contact form acknowledgement chime.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/backdrop/config"
)

const sampleRate = beep.SampleRate(44100)

// Chime is a short decaying sine tone. The zero value is not usable; build
// one with NewChime.
type Chime struct {
	mu          sync.Mutex
	freq        float64
	length      time.Duration
	volume      float64
	initialized bool
}

// NewChime builds a chime from the audio config.
func NewChime(cfg config.AudioConfig) *Chime {
	return &Chime{
		freq:   cfg.Frequency,
		length: time.Duration(cfg.DurationMS) * time.Millisecond,
		volume: cfg.Volume,
	}
}

// Init opens the audio device. It fails when no output is available, in which
// case the chime stays silent.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if _, err := c.stream(); err != nil {
		return err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}
	c.initialized = true
	return nil
}

// Play starts the chime without blocking.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s, err := c.stream()
	if err != nil {
		return
	}
	speaker.Play(s)
}

// stream builds one finite chime streamer.
func (c *Chime) stream() (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		return nil, fmt.Errorf("chime tone: %w", err)
	}
	n := sampleRate.N(c.length)
	if n <= 0 {
		return nil, fmt.Errorf("chime duration must be positive, got %v", c.length)
	}
	return newVolume(&decay{streamer: beep.Take(n, tone), total: n}, c.volume), nil
}

// decay fades a stream linearly to silence over total samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales by a linear gain; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
