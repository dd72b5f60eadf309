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
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Prediction.URL != "http://127.0.0.1:8000" {
		t.Errorf("expected default prediction URL, got %s", cfg.Prediction.URL)
	}
	if cfg.Prediction.PollInterval != 5*time.Second {
		t.Errorf("expected poll interval 5s, got %v", cfg.Prediction.PollInterval)
	}

	if cfg.Mesh.GLBPath != "" {
		t.Errorf("expected empty glb_path (capsule fallback), got %s", cfg.Mesh.GLBPath)
	}
	if len(cfg.Hotspots) != 0 {
		t.Errorf("expected empty hotspot override list, got %d entries", len(cfg.Hotspots))
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

mesh:
  glb_path: "assets/uterus.glb"

prediction:
  url: "http://pinn.local:8000"
  poll_interval: 2s
  timeout: 4s

hotspots:
  - label: fundus
    position: [0, 2.8, 0]
    relative_stiffness: 1.4
    influence_radius: 1.6
  - label: cervix
    position: [0, -4.0, 0]
    relative_stiffness: 0.6
    influence_radius: 1.0

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile() error: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("graphics = %dx%d, want 1920x1080", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Mesh.GLBPath != "assets/uterus.glb" {
		t.Errorf("glb_path = %q", cfg.Mesh.GLBPath)
	}
	if cfg.Prediction.URL != "http://pinn.local:8000" {
		t.Errorf("prediction url = %q", cfg.Prediction.URL)
	}
	if cfg.Prediction.PollInterval != 2*time.Second {
		t.Errorf("poll interval = %v, want 2s", cfg.Prediction.PollInterval)
	}
	if len(cfg.Hotspots) != 2 {
		t.Fatalf("hotspots = %d, want 2", len(cfg.Hotspots))
	}
	if cfg.Hotspots[0].Label != "fundus" || cfg.Hotspots[0].Position[1] != 2.8 {
		t.Errorf("hotspot 0 = %+v", cfg.Hotspots[0])
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config failed validation: %v", err)
	}
}

func TestValidateRejectsBadHotspot(t *testing.T) {
	cfg := Default()
	cfg.Hotspots = []HotspotConfig{{Label: "bad", InfluenceRadius: 0}}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted zero influence radius")
	}
}

func TestValidateRejectsBadPolling(t *testing.T) {
	cfg := Default()
	cfg.Prediction.PollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted zero poll interval")
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 800
	cfg.Hotspots = []HotspotConfig{{
		Label:             "posterior_wall",
		Position:          [3]float32{0, 0.4, -2.0},
		RelativeStiffness: 1.1,
		InfluenceRadius:   1.2,
	}}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	reloaded := Default()
	if err := loadFromFile(reloaded, path); err != nil {
		t.Fatalf("loadFromFile() error: %v", err)
	}
	if reloaded.Graphics.Width != 800 {
		t.Errorf("reloaded width = %d, want 800", reloaded.Graphics.Width)
	}
	if len(reloaded.Hotspots) != 1 || reloaded.Hotspots[0].Label != "posterior_wall" {
		t.Errorf("reloaded hotspots = %+v", reloaded.Hotspots)
	}
}
