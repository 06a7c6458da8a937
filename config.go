package loam

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const defaultHighlightColor = "#4da6ff"

// Config bundles editor tuning values. Load one from YAML with LoadConfig or
// start from DefaultConfig and adjust fields.
type Config struct {
	// DragDeadZone is the minimum pointer travel in pixels before a drag starts.
	DragDeadZone float64 `yaml:"drag_dead_zone"`

	Highlight HighlightConfig `yaml:"highlight"`
	Brush     BrushConfig     `yaml:"brush"`
	Ground    GroundConfig    `yaml:"ground"`
}

// HighlightConfig tunes the node-picker hover highlight.
type HighlightConfig struct {
	// Color is the highlight color as a hex string, e.g. "#4da6ff".
	Color string `yaml:"color"`
	// Intensity in [0, 1] is the peak blend amount toward Color.
	Intensity float64 `yaml:"intensity"`
	// PulseHz is the pulse rate in full cycles per second. Zero uses the default rate.
	PulseHz float64 `yaml:"pulse_hz"`
}

// BrushConfig tunes the default ground brush.
type BrushConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	Falloff  float64 `yaml:"falloff"`
	// Mode is one of "raise", "lower", "smooth", "set".
	Mode string `yaml:"mode"`
	// Value is the target cell value for the "set" mode.
	Value float64 `yaml:"value"`

	mode BrushMode // parsed from Mode during validation
}

// GroundConfig sizes the default ground layer.
type GroundConfig struct {
	// Size is the edge length of the square layer in world units.
	Size float64 `yaml:"size"`
	// CellSize is the edge length of one cell in world units.
	CellSize float64 `yaml:"cell_size"`
}

// DefaultConfig returns the stock editor configuration: the standard ground
// plane extent, a soft raise brush, and a pulsing blue highlight.
func DefaultConfig() Config {
	return Config{
		DragDeadZone: defaultDragDeadZone,
		Highlight: HighlightConfig{
			Color:     defaultHighlightColor,
			Intensity: 0.6,
			PulseHz:   1.0,
		},
		Brush: BrushConfig{
			Radius:   60,
			Strength: 1.0,
			Falloff:  0.5,
			Mode:     "raise",
			mode:     BrushRaise,
		},
		Ground: GroundConfig{
			Size:     DefaultGroundSize,
			CellSize: DefaultGroundCellSize,
		},
	}
}

// LoadConfig parses YAML over the defaults and validates the result, so a
// document only needs the fields it wants to change.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse editor config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DragDeadZone < 0 {
		return fmt.Errorf("editor config: drag_dead_zone %v is negative", c.DragDeadZone)
	}
	if _, err := colorful.Hex(c.Highlight.Color); err != nil {
		return fmt.Errorf("editor config: highlight color %q: %w", c.Highlight.Color, err)
	}
	if c.Highlight.Intensity < 0 || c.Highlight.Intensity > 1 {
		return fmt.Errorf("editor config: highlight intensity %v outside [0, 1]", c.Highlight.Intensity)
	}
	if c.Highlight.PulseHz < 0 {
		return fmt.Errorf("editor config: highlight pulse_hz %v is negative", c.Highlight.PulseHz)
	}
	if c.Brush.Radius <= 0 {
		return fmt.Errorf("editor config: brush radius %v must be positive", c.Brush.Radius)
	}
	if c.Brush.Falloff < 0 || c.Brush.Falloff > 1 {
		return fmt.Errorf("editor config: brush falloff %v outside [0, 1]", c.Brush.Falloff)
	}
	mode, ok := parseBrushMode(c.Brush.Mode)
	if !ok {
		return fmt.Errorf("editor config: unknown brush mode %q", c.Brush.Mode)
	}
	c.Brush.mode = mode
	if c.Ground.Size <= 0 {
		return fmt.Errorf("editor config: ground size %v must be positive", c.Ground.Size)
	}
	if c.Ground.CellSize <= 0 || c.Ground.CellSize > c.Ground.Size {
		return fmt.Errorf("editor config: ground cell_size %v must be in (0, size]", c.Ground.CellSize)
	}
	return nil
}

// parseBrushMode maps a config mode string to a BrushMode.
func parseBrushMode(s string) (BrushMode, bool) {
	switch s {
	case "raise", "":
		return BrushRaise, true
	case "lower":
		return BrushLower, true
	case "smooth":
		return BrushSmooth, true
	case "set":
		return BrushSet, true
	default:
		return BrushRaise, false
	}
}
