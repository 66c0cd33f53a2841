package config

import (
	_ "embed"
)

//go:embed defaults/cellmachine.yaml
var defaultYAML []byte

// Default returns the built-in configuration, used when the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  50,
			Height: 50,
		},
		Sim: SimConfig{
			StepInterval: 10,
			TickRate:     60,
			StartPaused:  true,
		},
		View: ViewConfig{
			CellWidth:   2,
			CellHeight:  1,
			PanSpeed:    2,
			PanFriction: 0.9,
			Theme:       "default",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "~/.cellmachine/cellmachine.log",
		},
		Storage: StorageConfig{
			DB: "~/.cellmachine/runs.db",
		},
		Boards: BoardsConfig{
			Dir: "~/.cellmachine/boards",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
