package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Particles.Count != 15000 {
		t.Errorf("expected 15000 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Particles.MorphDuration != 2*time.Second {
		t.Errorf("expected 2s morph duration, got %v", cfg.Particles.MorphDuration)
	}
	if cfg.Particles.AnimationSpeed != 1.0 {
		t.Errorf("expected animation speed 1.0, got %v", cfg.Particles.AnimationSpeed)
	}

	if cfg.Interaction.Radius != 80 {
		t.Errorf("expected interaction radius 80, got %v", cfg.Interaction.Radius)
	}
	if cfg.Interaction.Strength != 45 {
		t.Errorf("expected interaction strength 45, got %v", cfg.Interaction.Strength)
	}

	if !cfg.Auto.MorphEnabled {
		t.Error("expected auto-morph to be enabled by default")
	}
	if cfg.Auto.MorphInterval != 8*time.Second {
		t.Errorf("expected 8s morph interval, got %v", cfg.Auto.MorphInterval)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
particles:
  count: 5000
  morph_duration: 500ms
  color: "#ff8800"
interaction:
  radius: 120
auto:
  morph_enabled: false
  morph_interval: 3s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Particles.Count != 5000 {
		t.Errorf("count = %d, want 5000", cfg.Particles.Count)
	}
	if cfg.Particles.MorphDuration != 500*time.Millisecond {
		t.Errorf("morph_duration = %v, want 500ms", cfg.Particles.MorphDuration)
	}
	if cfg.Interaction.Radius != 120 {
		t.Errorf("radius = %v, want 120", cfg.Interaction.Radius)
	}
	if cfg.Auto.MorphEnabled {
		t.Error("morph_enabled should be overridden to false")
	}
	if cfg.Auto.MorphInterval != 3*time.Second {
		t.Errorf("morph_interval = %v, want 3s", cfg.Auto.MorphInterval)
	}

	// Untouched values keep their defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("width = %d, want default 1280", cfg.Graphics.Width)
	}
	if cfg.Interaction.Strength != 45 {
		t.Errorf("strength = %v, want default 45", cfg.Interaction.Strength)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Particles.Count = 777
	cfg.Auto.MorphInterval = 11 * time.Second

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Particles.Count != 777 {
		t.Errorf("count = %d, want 777", loaded.Particles.Count)
	}
	if loaded.Auto.MorphInterval != 11*time.Second {
		t.Errorf("morph_interval = %v, want 11s", loaded.Auto.MorphInterval)
	}
}

func TestTintColor(t *testing.T) {
	p := ParticleConfig{Color: "#ffffff"}
	c := p.TintColor()
	if c.R != 1 || c.G != 1 || c.B != 1 {
		t.Errorf("TintColor(#ffffff) = %v, want white", c)
	}

	p.Color = "not-a-color"
	c = p.TintColor()
	// Falls back to the default tint rather than black
	if c.R == 0 && c.G == 0 && c.B == 0 {
		t.Error("malformed color should fall back to the default tint")
	}
}
