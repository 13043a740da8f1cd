package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Field.AreaPerParticle != 15000 {
		t.Errorf("expected area_per_particle 15000, got %v", cfg.Field.AreaPerParticle)
	}
	if cfg.Field.LinkDistance != 150 || cfg.Field.PointerDistance != 200 {
		t.Errorf("expected link/pointer distance 150/200, got %v/%v", cfg.Field.LinkDistance, cfg.Field.PointerDistance)
	}
	if cfg.Derived.TypeDelay != 100*time.Millisecond {
		t.Errorf("expected type delay 100ms, got %v", cfg.Derived.TypeDelay)
	}
	if cfg.Derived.AckDisplay != 5*time.Second {
		t.Errorf("expected ack display 5s, got %v", cfg.Derived.AckDisplay)
	}
	if cfg.Reveal.HiddenOpacity != 1 {
		t.Errorf("expected content visible by default (hidden_opacity 1), got %v", cfg.Reveal.HiddenOpacity)
	}
	if len(cfg.Typing.Phrases) != 4 {
		t.Errorf("expected 4 default phrases, got %d", len(cfg.Typing.Phrases))
	}
	if len(cfg.Page.Sections) == 0 || len(cfg.Page.Links) == 0 {
		t.Error("expected default page sections and links")
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("field:\n  link_distance: 90\ntyping:\n  hold_ms: 1000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading %s: %v", path, err)
	}

	if cfg.Field.LinkDistance != 90 {
		t.Errorf("expected overridden link distance 90, got %v", cfg.Field.LinkDistance)
	}
	// Untouched fields keep their defaults
	if cfg.Field.PointerDistance != 200 {
		t.Errorf("expected default pointer distance 200, got %v", cfg.Field.PointerDistance)
	}
	if cfg.Derived.Hold != time.Second {
		t.Errorf("expected derived hold 1s, got %v", cfg.Derived.Hold)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero density", "field:\n  area_per_particle: 0\n"},
		{"inverted radius", "field:\n  min_radius: 4\n  max_radius: 2\n"},
		{"zero cell", "terminal:\n  cell_width: 0\n"},
		{"zero typing delays", "typing:\n  type_delay_ms: 0\n  delete_delay_ms: 0\n  hold_ms: 0\n  gap_ms: 0\n"},
		{"zero delete delay", "typing:\n  delete_delay_ms: 0\n"},
		{"negative ack display", "contact:\n  display_ms: -1\n"},
		{"hidden opacity above one", "reveal:\n  hidden_opacity: 1.5\n"},
		{"duplicate section", "page:\n  sections:\n    - {id: a, height: 10}\n    - {id: a, height: 10}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.LinkDistance = 123

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written yaml: %v", err)
	}
	if loaded.Field.LinkDistance != 123 {
		t.Errorf("expected link distance 123 after reload, got %v", loaded.Field.LinkDistance)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected Cfg to panic before Init")
		}
	}()
	Cfg()
}
