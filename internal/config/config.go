// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Prediction PredictionConfig `yaml:"prediction"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	Hotspots   []HotspotConfig  `yaml:"hotspots"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// MeshConfig selects the anatomical mesh source. An empty GLBPath (or a
// failed load) falls back to the procedural capsule.
type MeshConfig struct {
	GLBPath string `yaml:"glb_path"`
}

// PredictionConfig holds the prediction service connection settings.
type PredictionConfig struct {
	URL          string        `yaml:"url"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout"`
}

// OverlayConfig holds cosmetic overlay settings.
type OverlayConfig struct {
	// GlitchAmp scales the holographic glitch displacement; 0 disables it.
	GlitchAmp float32 `yaml:"glitch_amp"`
}

// HotspotConfig describes one anatomical landmark of the stiffness field. An
// empty hotspot list keeps the built-in reference table.
type HotspotConfig struct {
	Label             string     `yaml:"label"`
	Position          [3]float32 `yaml:"position"`
	RelativeStiffness float32    `yaml:"relative_stiffness"`
	InfluenceRadius   float32    `yaml:"influence_radius"`
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
		},
		Mesh: MeshConfig{
			GLBPath: "",
		},
		Prediction: PredictionConfig{
			URL:          "http://127.0.0.1:8000",
			PollInterval: 5 * time.Second,
			Timeout:      10 * time.Second,
		},
		Overlay: OverlayConfig{
			GlitchAmp: 1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks cross-field invariants after load.
func (c *Config) Validate() error {
	if c.Prediction.PollInterval <= 0 {
		return fmt.Errorf("prediction poll_interval must be positive, got %v", c.Prediction.PollInterval)
	}
	if c.Prediction.Timeout <= 0 {
		return fmt.Errorf("prediction timeout must be positive, got %v", c.Prediction.Timeout)
	}
	for _, h := range c.Hotspots {
		if h.InfluenceRadius <= 0 {
			return fmt.Errorf("hotspot %q: influence_radius must be positive, got %g", h.Label, h.InfluenceRadius)
		}
	}
	return nil
}
