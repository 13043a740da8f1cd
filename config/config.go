// Package config provides configuration loading and access for the backdrop.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all page and animation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Field      FieldConfig      `yaml:"field"`
	Typing     TypingConfig     `yaml:"typing"`
	Navigation NavigationConfig `yaml:"navigation"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Contact    ContactConfig    `yaml:"contact"`
	Page       PageConfig       `yaml:"page"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds the particle network parameters.
type FieldConfig struct {
	AreaPerParticle float64 `yaml:"area_per_particle"` // Surface area (px²) per particle
	MaxSpeed        float64 `yaml:"max_speed"`         // Velocity components sampled from [-max, max]
	MinRadius       float64 `yaml:"min_radius"`
	MaxRadius       float64 `yaml:"max_radius"`
	LinkDistance    float64 `yaml:"link_distance"`    // Particle-particle connection range
	LinkAlpha       float64 `yaml:"link_alpha"`       // Opacity scale at zero distance
	LinkWidth       float64 `yaml:"link_width"`
	PointerDistance float64 `yaml:"pointer_distance"` // Particle-pointer connection range
	PointerAlpha    float64 `yaml:"pointer_alpha"`
	PointerWidth    float64 `yaml:"pointer_width"`
	Color           string  `yaml:"color"`      // Accent colour, hex
	Background      string  `yaml:"background"` // Clear colour, hex
}

// TypingConfig holds the headline rotator parameters.
type TypingConfig struct {
	Phrases       []string `yaml:"phrases"`
	TypeDelayMS   int      `yaml:"type_delay_ms"`
	DeleteDelayMS int      `yaml:"delete_delay_ms"`
	HoldMS        int      `yaml:"hold_ms"` // Pause at full phrase
	GapMS         int      `yaml:"gap_ms"`  // Pause at empty phrase
}

// NavigationConfig holds navigation highlighting parameters.
type NavigationConfig struct {
	ScrollOffset  float64 `yaml:"scroll_offset"`  // Added to scroll position before section lookup
	ScrollStep    float64 `yaml:"scroll_step"`    // Pixels per wheel notch / key press
	SpringFreq    float64 `yaml:"spring_freq"`    // Smooth-scroll angular frequency
	SpringDamping float64 `yaml:"spring_damping"` // Smooth-scroll damping ratio
}

// RevealConfig holds scroll reveal parameters.
type RevealConfig struct {
	Threshold     float64 `yaml:"threshold"`       // Visible ratio needed to reveal
	BottomMargin  float64 `yaml:"bottom_margin"`   // Shrinks the viewport bottom edge
	StaggerMS     int     `yaml:"stagger_ms"`      // Delay between skill tags
	SettleMS      int     `yaml:"settle_ms"`       // Delay between reset and release of a tag
	HiddenOpacity float64 `yaml:"hidden_opacity"`  // Opacity of blocks not yet revealed
	TagDropOffset float64 `yaml:"tag_drop_offset"` // Vertical offset of a reset tag
	TransitionMS  int     `yaml:"transition_ms"`   // Visual easing time used by overlays
}

// ContactConfig holds mock contact form parameters.
type ContactConfig struct {
	Fields    []string `yaml:"fields"`
	Message   string   `yaml:"message"`
	DisplayMS int      `yaml:"display_ms"`
	Chime     bool     `yaml:"chime"`
}

// PageConfig describes the page content and layout.
type PageConfig struct {
	Links    []LinkConfig    `yaml:"links"`
	Sections []SectionConfig `yaml:"sections"`
}

// LinkConfig is a navigation link.
type LinkConfig struct {
	Href  string `yaml:"href"`
	Label string `yaml:"label"`
}

// SectionConfig is a page section. Sections are stacked in order.
type SectionConfig struct {
	ID     string        `yaml:"id"`
	Title  string        `yaml:"title"`
	Height float64       `yaml:"height"`
	Blocks []BlockConfig `yaml:"blocks"`
}

// BlockConfig is a piece of content inside a section.
type BlockConfig struct {
	ID     string   `yaml:"id"`
	Kind   string   `yaml:"kind"`   // hero, title, text, info, card, skills, form
	Offset float64  `yaml:"offset"` // From the section top
	Height float64  `yaml:"height"`
	Text   string   `yaml:"text"`
	Tags   []string `yaml:"tags"`
}

// TerminalConfig holds terminal backend parameters.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`  // Virtual pixels per cell column
	CellHeight int `yaml:"cell_height"` // Virtual pixels per cell row
}

// AudioConfig holds acknowledgement chime parameters.
type AudioConfig struct {
	Frequency  float64 `yaml:"frequency"`
	DurationMS int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`  // Frames averaged by the perf collector
	LogInterval int `yaml:"log_interval"` // Frames between perf log lines (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TypeDelay   time.Duration
	DeleteDelay time.Duration
	Hold        time.Duration
	Gap         time.Duration
	Stagger     time.Duration
	Settle      time.Duration
	Transition  time.Duration
	AckDisplay  time.Duration
	ChimeLength time.Duration
	FrameBudget time.Duration // 1/TargetFPS, zero when uncapped
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the page cannot run with.
func (c *Config) validate() error {
	if c.Field.AreaPerParticle <= 0 {
		return fmt.Errorf("field.area_per_particle must be positive, got %v", c.Field.AreaPerParticle)
	}
	if c.Field.MaxRadius < c.Field.MinRadius {
		return fmt.Errorf("field.max_radius (%v) below field.min_radius (%v)", c.Field.MaxRadius, c.Field.MinRadius)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive, got %dx%d", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Reveal.HiddenOpacity < 0 || c.Reveal.HiddenOpacity > 1 {
		return fmt.Errorf("reveal.hidden_opacity must be within [0, 1], got %v", c.Reveal.HiddenOpacity)
	}
	if c.Typing.TypeDelayMS <= 0 || c.Typing.DeleteDelayMS <= 0 {
		return fmt.Errorf("typing delays must be positive, got type=%d delete=%d", c.Typing.TypeDelayMS, c.Typing.DeleteDelayMS)
	}
	for _, d := range []struct {
		name string
		ms   int
	}{
		{"typing.hold_ms", c.Typing.HoldMS},
		{"typing.gap_ms", c.Typing.GapMS},
		{"reveal.stagger_ms", c.Reveal.StaggerMS},
		{"reveal.settle_ms", c.Reveal.SettleMS},
		{"reveal.transition_ms", c.Reveal.TransitionMS},
		{"contact.display_ms", c.Contact.DisplayMS},
	} {
		if d.ms < 0 {
			return fmt.Errorf("%s must not be negative, got %d", d.name, d.ms)
		}
	}
	seen := make(map[string]bool, len(c.Page.Sections))
	for _, s := range c.Page.Sections {
		if s.ID == "" {
			return fmt.Errorf("page section without id")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate page section %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	c.Derived.TypeDelay = ms(c.Typing.TypeDelayMS)
	c.Derived.DeleteDelay = ms(c.Typing.DeleteDelayMS)
	c.Derived.Hold = ms(c.Typing.HoldMS)
	c.Derived.Gap = ms(c.Typing.GapMS)
	c.Derived.Stagger = ms(c.Reveal.StaggerMS)
	c.Derived.Settle = ms(c.Reveal.SettleMS)
	c.Derived.Transition = ms(c.Reveal.TransitionMS)
	c.Derived.AckDisplay = ms(c.Contact.DisplayMS)
	c.Derived.ChimeLength = ms(c.Audio.DurationMS)

	c.Derived.FrameBudget = 0
	if c.Screen.TargetFPS > 0 {
		c.Derived.FrameBudget = time.Second / time.Duration(c.Screen.TargetFPS)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
