package loam

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.DragDeadZone != defaultDragDeadZone {
		t.Errorf("drag dead zone = %v, want %v", cfg.DragDeadZone, defaultDragDeadZone)
	}
	if cfg.Highlight.Color != defaultHighlightColor {
		t.Errorf("highlight color = %q, want %q", cfg.Highlight.Color, defaultHighlightColor)
	}
	if cfg.Ground.Size != DefaultGroundSize || cfg.Ground.CellSize != DefaultGroundCellSize {
		t.Errorf("ground = %+v, want the stock plane extent", cfg.Ground)
	}
	if cfg.Brush.mode != BrushRaise {
		t.Errorf("brush mode = %v, want raise", cfg.Brush.mode)
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`
brush:
  radius: 25
  mode: smooth
highlight:
  color: "#ff0000"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Brush.Radius != 25 {
		t.Errorf("brush radius = %v, want 25", cfg.Brush.Radius)
	}
	if cfg.Brush.mode != BrushSmooth {
		t.Errorf("brush mode = %v, want smooth", cfg.Brush.mode)
	}
	if cfg.Highlight.Color != "#ff0000" {
		t.Errorf("highlight color = %q, want overridden", cfg.Highlight.Color)
	}
	// Untouched fields keep their defaults.
	if cfg.Ground.Size != DefaultGroundSize {
		t.Errorf("ground size = %v, want default", cfg.Ground.Size)
	}
	if cfg.DragDeadZone != defaultDragDeadZone {
		t.Errorf("drag dead zone = %v, want default", cfg.DragDeadZone)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed yaml", "brush: [", "parse editor config"},
		{"negative dead zone", "drag_dead_zone: -1", "drag_dead_zone"},
		{"bad highlight color", "highlight: {color: banana}", "highlight color"},
		{"intensity out of range", "highlight: {intensity: 1.5}", "intensity"},
		{"negative pulse", "highlight: {pulse_hz: -2}", "pulse_hz"},
		{"zero brush radius", "brush: {radius: 0}", "brush radius"},
		{"falloff out of range", "brush: {falloff: 2}", "falloff"},
		{"unknown brush mode", "brush: {mode: sparkle}", `unknown brush mode "sparkle"`},
		{"zero ground size", "ground: {size: 0}", "ground size"},
		{"cell larger than layer", "ground: {size: 100, cell_size: 150}", "cell_size"},
	}
	for _, tc := range cases {
		if _, err := LoadConfig([]byte(tc.yaml)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		} else if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error = %q, want it to contain %q", tc.name, err.Error(), tc.want)
		}
	}
}

func TestParseBrushMode(t *testing.T) {
	if m, ok := parseBrushMode(""); !ok || m != BrushRaise {
		t.Error("empty mode should default to raise")
	}
	if m, ok := parseBrushMode("set"); !ok || m != BrushSet {
		t.Error("set should parse")
	}
	if _, ok := parseBrushMode("sparkle"); ok {
		t.Error("unknown mode should not parse")
	}
}
