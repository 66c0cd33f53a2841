package core

// RuntimeConfig contains the settings a session needs at start-up.
// It is filled from the YAML configuration and CLI flags by the command layer.
type RuntimeConfig struct {
	ScreenW      int     // Screen width in characters
	ScreenH      int     // Screen height in characters
	TickRate     int     // Frames per second driven by the platform (default 60)
	StepInterval int     // Frames between simulation steps (default 10)
	GridW        int     // Width of boards built from scratch
	GridH        int     // Height of boards built from scratch
	StartPaused  bool    // Whether new boards start paused
	CellW        int     // Terminal columns per grid cell
	CellH        int     // Terminal rows per grid cell
	PanSpeed     float64 // Pan velocity set by a pan key, in screen units per frame
	PanFriction  float64 // Velocity multiplier applied every frame
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     60,
		StepInterval: 10,
		GridW:        50,
		GridH:        50,
		StartPaused:  true,
		CellW:        2,
		CellH:        1,
		PanSpeed:     2,
		PanFriction:  0.9,
	}
}

// SessionState is a read-only view of a running simulator session.
type SessionState struct {
	BoardID    string
	Frame      uint64 // Frames seen so far, the tick passed to Step
	Generation uint64 // Steps committed
	Paused     bool
	Eligible   bool // Whether the current frame is a step frame
}

// StepResult is returned by a session after each frame.
type StepResult struct {
	State   SessionState
	Stepped bool // A simulation step was committed this frame
	Quit    bool // The session asked to leave (back to the title screen)
}
