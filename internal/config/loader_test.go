package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != Default() {
		t.Errorf("embedded YAML = %+v\nDefault() = %+v", fromYAML, Default())
	}
}

func TestLoadCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "grid:\n  width: 12\nsim:\n  step_interval: 3\nlogging:\n  level: DEBUG\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid.Width != 12 {
		t.Errorf("Grid.Width = %d, expected 12", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 50 {
		t.Errorf("Grid.Height = %d, expected default 50", cfg.Grid.Height)
	}
	if cfg.Sim.StepInterval != 3 {
		t.Errorf("Sim.StepInterval = %d, expected 3", cfg.Sim.StepInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected lowercased debug", cfg.Logging.Level)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Sim:     SimConfig{TickRate: 10_000, Speed: "fast"},
		View:    ViewConfig{PanFriction: 1.5},
		Logging: LoggingConfig{Format: "xml"},
	}
	cfg.Validate()

	if cfg.Grid.Width != 50 || cfg.Grid.Height != 50 {
		t.Errorf("grid = %+v, expected defaults", cfg.Grid)
	}
	if cfg.Sim.StepInterval != 5 {
		t.Errorf("StepInterval = %d, expected 5 from the fast preset", cfg.Sim.StepInterval)
	}
	if cfg.Sim.TickRate != 240 {
		t.Errorf("TickRate = %d, expected clamp to 240", cfg.Sim.TickRate)
	}
	if cfg.View.PanFriction != 0.99 {
		t.Errorf("PanFriction = %v, expected 0.99", cfg.View.PanFriction)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Format = %q, expected text", cfg.Logging.Format)
	}
	if cfg.View.Theme != "default" {
		t.Errorf("Theme = %q, expected default", cfg.View.Theme)
	}
}

func TestValidateClampsGridSize(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 1 << 20
	cfg.Grid.Height = 5000
	cfg.Validate()

	if cfg.Grid.Width != 1024 || cfg.Grid.Height != 1024 {
		t.Errorf("grid = %+v, expected clamp to 1024x1024", cfg.Grid)
	}
}

func TestSpeedPresets(t *testing.T) {
	p, err := ParseSpeedPreset(" Turbo ")
	if err != nil {
		t.Fatalf("ParseSpeedPreset() error: %v", err)
	}
	if p.StepInterval() != 1 {
		t.Errorf("turbo interval = %d, expected 1", p.StepInterval())
	}
	if _, err := ParseSpeedPreset("ludicrous"); err == nil {
		t.Error("unknown preset should fail")
	}

	cfg := Default()
	ApplySpeedPreset(&cfg, SpeedSlow)
	if cfg.Sim.StepInterval != 20 || cfg.Sim.Speed != "slow" {
		t.Errorf("after ApplySpeedPreset sim = %+v", cfg.Sim)
	}
}

func TestRuntime(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 9
	cfg.Sim.StartPaused = false

	rc := cfg.Runtime()
	if rc.GridW != 9 || rc.GridH != 50 {
		t.Errorf("grid = %dx%d", rc.GridW, rc.GridH)
	}
	if rc.StartPaused {
		t.Error("StartPaused should follow configuration")
	}
	if rc.StepInterval != 10 || rc.TickRate != 60 {
		t.Errorf("pacing = %d/%d", rc.StepInterval, rc.TickRate)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandPath(~/x/y.db) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(~) = %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(Default())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "step_interval: 10") {
		t.Errorf("encoded config missing step_interval:\n%s", data)
	}
	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != Default() {
		t.Errorf("round trip changed config: %+v", back)
	}
}
