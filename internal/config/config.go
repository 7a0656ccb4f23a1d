// Package config handles experience configuration loading and management.
package config

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Config holds all experience settings. It is passed by reference into the
// components that read it; values are re-read each frame or at tween start,
// so edits at runtime take effect without restarting.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Particles   ParticleConfig    `yaml:"particles"`
	Interaction InteractionConfig `yaml:"interaction"`
	Auto        AutoConfig        `yaml:"auto"`
	Shapes      ShapesConfig      `yaml:"shapes"`
	Audio       AudioConfig       `yaml:"audio"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// ParticleConfig holds the particle field settings.
// Count is read once at startup (every shape is sampled to that length);
// the rest are live.
type ParticleConfig struct {
	Count          int           `yaml:"count"`
	Size           float32       `yaml:"size"`
	Color          string        `yaml:"color"` // hex, e.g. "#4ec9ff"
	MorphDuration  time.Duration `yaml:"morph_duration"`
	AnimationSpeed float32       `yaml:"animation_speed"`
}

// InteractionConfig holds pointer repulsion field settings.
type InteractionConfig struct {
	Radius   float32 `yaml:"radius"`
	Strength float32 `yaml:"strength"`
}

// AutoConfig holds autonomous behavior settings.
type AutoConfig struct {
	RotateEnabled bool          `yaml:"rotate_enabled"`
	RotateSpeed   float32       `yaml:"rotate_speed"` // radians per second
	MorphEnabled  bool          `yaml:"morph_enabled"`
	MorphInterval time.Duration `yaml:"morph_interval"`
}

// ShapesConfig holds shape loading settings.
type ShapesConfig struct {
	// OBJPaths lists extra Wavefront OBJ meshes to sample, registered after
	// the built-in procedural shapes, in list order.
	OBJPaths []string `yaml:"obj_paths"`
	// SampleDiagonal is the bounding-box diagonal every mesh is normalized to
	// before sampling, so all shapes share one scale.
	SampleDiagonal float32 `yaml:"sample_diagonal"`
}

// AudioConfig holds audio feedback settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	// AmbientPath optionally names a WAV file looped in the background.
	AmbientPath string `yaml:"ambient_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ShowFPS:    false,
		},
		Particles: ParticleConfig{
			Count:          15000,
			Size:           2.5,
			Color:          "#4ec9ff",
			MorphDuration:  2 * time.Second,
			AnimationSpeed: 1.0,
		},
		Interaction: InteractionConfig{
			Radius:   80,
			Strength: 45,
		},
		Auto: AutoConfig{
			RotateEnabled: true,
			RotateSpeed:   0.15,
			MorphEnabled:  true,
			MorphInterval: 8 * time.Second,
		},
		Shapes: ShapesConfig{
			SampleDiagonal: 340,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TintColor parses the configured particle color. Falls back to the default
// tint when the hex string is malformed.
func (p *ParticleConfig) TintColor() colorful.Color {
	c, err := colorful.Hex(p.Color)
	if err != nil {
		c, _ = colorful.Hex("#4ec9ff")
	}
	return c
}
