package config

import (
	"fmt"
	"strings"
)

// SpeedPreset names a step interval.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedTurbo}

// ParseSpeedPreset parses a preset name (case-insensitive).
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	p := SpeedPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SpeedPresets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown speed preset %q (want slow, normal, fast or turbo)", s)
}

// StepInterval returns the frames between steps for the preset.
func (p SpeedPreset) StepInterval() int {
	switch p {
	case SpeedSlow:
		return 20
	case SpeedFast:
		return 5
	case SpeedTurbo:
		return 1
	default:
		return 10
	}
}

// ApplySpeedPreset sets the step interval from a preset.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	cfg.Sim.Speed = string(preset)
	cfg.Sim.StepInterval = preset.StepInterval()
}
