package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/machine"
)

// Load loads the application configuration.
// Search order: customPath -> ~/.cellmachine/config.yaml ->
// ./configs/cellmachine.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides
// the keys it names. The result is validated.
func Load(customPath string) (Config, error) {
	cfg := embedded()

	if customPath != "" {
		data, err := os.ReadFile(ExpandPath(customPath))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "cellmachine.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err == nil {
			layered.Validate()
			return layered, nil
		}
	}

	cfg.Validate()
	return cfg, nil
}

// embedded parses the embedded default YAML, falling back to Default.
func embedded() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// userConfigPath returns the path to the user config file, or empty if
// home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cellmachine", "config.yaml")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// Validate clamps out-of-range values to usable ones.
func (c *Config) Validate() {
	def := Default()

	if c.Grid.Width <= 0 {
		c.Grid.Width = def.Grid.Width
	}
	if c.Grid.Height <= 0 {
		c.Grid.Height = def.Grid.Height
	}
	c.Grid.Width = core.Clamp(c.Grid.Width, 1, machine.MaxSide)
	c.Grid.Height = core.Clamp(c.Grid.Height, 1, machine.MaxSide)

	if c.Sim.Speed != "" {
		if p, err := ParseSpeedPreset(c.Sim.Speed); err == nil {
			c.Sim.StepInterval = p.StepInterval()
		} else {
			c.Sim.Speed = ""
		}
	}
	if c.Sim.StepInterval <= 0 {
		c.Sim.StepInterval = def.Sim.StepInterval
	}
	c.Sim.TickRate = core.Clamp(c.Sim.TickRate, 1, 240)

	if c.View.CellWidth <= 0 {
		c.View.CellWidth = def.View.CellWidth
	}
	if c.View.CellHeight <= 0 {
		c.View.CellHeight = def.View.CellHeight
	}
	if c.View.PanSpeed <= 0 {
		c.View.PanSpeed = def.View.PanSpeed
	}
	c.View.PanFriction = core.ClampF(c.View.PanFriction, 0, 0.99)
	if c.View.Theme == "" {
		c.View.Theme = def.View.Theme
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		c.Logging.Format = def.Logging.Format
	}
}

// Runtime converts the configuration into the settings handed to a session.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = c.Sim.TickRate
	rc.StepInterval = c.Sim.StepInterval
	rc.GridW = c.Grid.Width
	rc.GridH = c.Grid.Height
	rc.StartPaused = c.Sim.StartPaused
	rc.CellW = c.View.CellWidth
	rc.CellH = c.View.CellHeight
	rc.PanSpeed = c.View.PanSpeed
	rc.PanFriction = c.View.PanFriction
	return rc
}

// Encode renders the configuration as YAML.
func Encode(c Config) ([]byte, error) {
	return yaml.Marshal(&c)
}
