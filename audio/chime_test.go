package audio

import (
	"math"
	"testing"

	"github.com/pthm-cable/backdrop/config"
)

func drain(t *testing.T, c *Chime) [][2]float64 {
	t.Helper()
	s, err := c.stream()
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

func TestChime_LengthAndDecay(t *testing.T) {
	c := NewChime(config.AudioConfig{Frequency: 880, DurationMS: 100, Volume: 1})
	samples := drain(t, c)

	if want := sampleRate.N(c.length); len(samples) != want {
		t.Fatalf("samples = %d, want %d", len(samples), want)
	}

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	q := len(samples) / 4
	if head, tail := peak(0, q), peak(3*q, len(samples)); tail >= head {
		t.Errorf("tail peak %v not below head peak %v", tail, head)
	}
	for i, s := range samples {
		if math.Abs(s[0]) > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v", i, s)
		}
	}
}

func TestChime_ZeroVolumeIsSilent(t *testing.T) {
	c := NewChime(config.AudioConfig{Frequency: 440, DurationMS: 20, Volume: 0})
	for i, s := range drain(t, c) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

func TestChime_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AudioConfig
	}{
		{"zero duration", config.AudioConfig{Frequency: 880, DurationMS: 0, Volume: 1}},
		{"above nyquist", config.AudioConfig{Frequency: 30000, DurationMS: 100, Volume: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChime(tt.cfg)
			if err := c.Init(); err == nil {
				t.Error("Init succeeded with invalid settings")
			}
			c.Play() // must not panic when uninitialized
		})
	}
}
