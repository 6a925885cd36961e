// Package config provides the tunable rules for the concourse simulation.
// Values are loaded from a YAML file so a build can be tuned without recompiling,
// and a handful of them can be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all simulation rules for a run
type Config struct {
	// Locale selects the localization catalog (e.g. "en", "zh-Hant")
	Locale string `yaml:"locale" env:"DUTYFREE_LOCALE"`

	// StartingMoney is the wallet balance at startup
	StartingMoney int `yaml:"starting_money" env:"DUTYFREE_MONEY"`

	// BoardingSeconds is the countdown shown in the HUD
	BoardingSeconds float64 `yaml:"boarding_seconds" env:"DUTYFREE_BOARDING_SECONDS"`

	// MetricsAddr enables a prometheus /metrics listener when set (e.g. ":9109")
	MetricsAddr string `yaml:"metrics_addr" env:"DUTYFREE_METRICS_ADDR"`

	Window   WindowConfig   `yaml:"window"`
	Scale    ScaleConfig    `yaml:"scale"`
	Controls ControlsConfig `yaml:"controls"`
	Crowd    CrowdConfig    `yaml:"crowd"`
	Store    StoreConfig    `yaml:"store"`
	UI       UIConfig       `yaml:"ui"`
}

// WindowConfig defines the initial window
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ScaleConfig defines camera zoom limits
type ScaleConfig struct {
	PreferredZoom float64 `yaml:"preferred_zoom"` // Starting zoom (integer for crisp pixels)
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
}

// ControlsConfig defines player movement
type ControlsConfig struct {
	BaseSpeed     float64 `yaml:"base_speed"`     // World units per second
	RunMultiplier float64 `yaml:"run_multiplier"` // Applied while Shift is held
}

// Range is an inclusive integer range [Min, Max]
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// CrowdConfig defines the wander/pause behavior of NPC travelers
type CrowdConfig struct {
	VX        Range   `yaml:"vx"`         // Horizontal velocity range
	VY        Range   `yaml:"vy"`         // Vertical velocity range
	FallbackX int     `yaml:"fallback_x"` // Used when the vx draw lands on zero
	FallbackY int     `yaml:"fallback_y"` // Used when the vy draw lands on zero
	WalkMS    Range   `yaml:"walk_ms"`    // Walking dwell time
	PauseMS   Range   `yaml:"pause_ms"`   // Pause dwell time
	Bounce    float64 `yaml:"bounce"`     // Restitution against walls and other bodies

	// Per-zone crowd sizes
	HallCount int `yaml:"hall_count"`
	ACount    int `yaml:"a_count"`
	BCount    int `yaml:"b_count"`

	// Nameplates
	NameplateDistance float64 `yaml:"nameplate_distance"` // Max viewer distance for a visible plate
	NameplateOffset   float64 `yaml:"nameplate_offset"`   // Extra gap above the actor's head
}

// StoreConfig defines store-visit proximity rules
type StoreConfig struct {
	TalkRadius     float64 `yaml:"talk_radius"`      // Player-to-clerk distance for dialogue
	ExitRadius     float64 `yaml:"exit_radius"`      // Player-to-door distance for leaving
	DoorRadius     float64 `yaml:"door_radius"`      // Concourse door entry distance
	DoorLabelRange float64 `yaml:"door_label_range"` // Concourse door label distance
}

// UIConfig defines overlay sizes. FontSize is the only hand-tuned value;
// the rest are derived from it.
type UIConfig struct {
	FontSize    float64 `yaml:"font_size"`
	MinFontSize float64 `yaml:"min_font_size"` // Floor for zoom-compensated world labels
	FontPath    string  `yaml:"font_path"`     // Optional TTF/OTF; falls back to Go Regular
	PanelMinW   float64 `yaml:"panel_min_width"`
}

// DefaultConfig returns the defaults used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Locale:          "en",
		StartingMoney:   3000,
		BoardingSeconds: 5 * 60,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Duty Free",
		},
		Scale: ScaleConfig{
			PreferredZoom: 3,
			MinZoom:       1,
			MaxZoom:       8,
		},
		Controls: ControlsConfig{
			BaseSpeed:     80,
			RunMultiplier: 1.9,
		},
		Crowd: CrowdConfig{
			VX:                Range{Min: -35, Max: 35},
			VY:                Range{Min: -25, Max: 25},
			FallbackX:         20,
			FallbackY:         15,
			WalkMS:            Range{Min: 900, Max: 1600},
			PauseMS:           Range{Min: 500, Max: 900},
			Bounce:            1,
			HallCount:         8,
			ACount:            6,
			BCount:            6,
			NameplateDistance: 42,
			NameplateOffset:   0,
		},
		Store: StoreConfig{
			TalkRadius:     24,
			ExitRadius:     18,
			DoorRadius:     22,
			DoorLabelRange: 22,
		},
		UI: UIConfig{
			FontSize:    24,
			MinFontSize: 8,
			PanelMinW:   120,
		},
	}
}

// LoadConfig loads config from a YAML file and applies environment overrides.
// A missing file is not an error; defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with
func (c *Config) Validate() error {
	if c.StartingMoney < 0 {
		return fmt.Errorf("starting_money must be >= 0, got %d", c.StartingMoney)
	}
	if c.Scale.MinZoom <= 0 || c.Scale.MaxZoom < c.Scale.MinZoom {
		return fmt.Errorf("invalid zoom range [%v, %v]", c.Scale.MinZoom, c.Scale.MaxZoom)
	}
	for name, r := range map[string]Range{
		"crowd.vx":       c.Crowd.VX,
		"crowd.vy":       c.Crowd.VY,
		"crowd.walk_ms":  c.Crowd.WalkMS,
		"crowd.pause_ms": c.Crowd.PauseMS,
	} {
		if r.Max < r.Min {
			return fmt.Errorf("%s: max %d < min %d", name, r.Max, r.Min)
		}
	}
	if c.Crowd.FallbackX == 0 || c.Crowd.FallbackY == 0 {
		return fmt.Errorf("crowd fallback velocities must be nonzero")
	}
	if c.UI.FontSize <= 0 {
		return fmt.Errorf("ui.font_size must be > 0")
	}
	return nil
}

// SmallFont is the derived size for secondary HUD text
func (u UIConfig) SmallFont() float64 {
	return math.Max(9, math.Round(u.FontSize*0.45))
}

// HUDHeight is the height of the top and bottom HUD bars
func (u UIConfig) HUDHeight() float64 {
	return math.Max(16, u.SmallFont()+8)
}

// LineStep is the vertical distance between lines of panel text
func (u UIConfig) LineStep() float64 {
	return u.SmallFont() + 2
}

// DialogHeight is the minimum height of the dialogue box
func (u UIConfig) DialogHeight() float64 {
	return math.Max(40, u.SmallFont()+16)
}
