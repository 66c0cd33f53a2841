// Package config provides YAML-based configuration loading for the cell
// machine: grid defaults, simulation pacing, view settings, logging,
// storage and the boards directory.
package config

// Config is the complete application configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Sim     SimConfig     `yaml:"sim"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Boards  BoardsConfig  `yaml:"boards"`
}

// GridConfig sizes boards built from scratch.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimConfig controls simulation pacing.
type SimConfig struct {
	StepInterval int    `yaml:"step_interval"` // Frames between steps
	TickRate     int    `yaml:"tick_rate"`     // Frames per second
	StartPaused  bool   `yaml:"start_paused"`
	Speed        string `yaml:"speed,omitempty"` // Optional preset, overrides step_interval
}

// ViewConfig defines how the grid is drawn in the terminal.
type ViewConfig struct {
	CellWidth   int     `yaml:"cell_width"`
	CellHeight  int     `yaml:"cell_height"`
	PanSpeed    float64 `yaml:"pan_speed"`
	PanFriction float64 `yaml:"pan_friction"`
	Theme       string  `yaml:"theme"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json or logfmt
	File   string `yaml:"file"`   // Empty logs to stderr
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// BoardsConfig locates board definition files.
type BoardsConfig struct {
	Dir string `yaml:"dir"`
}
