package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/cellmachine/internal/core"
)

const (
	fpsHistory = 60 // Samples kept
	fpsScale   = 60 // Sparkline ceiling
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// FPSViewer keeps a rolling history of frame rates and draws it as a
// sparkline. The newest sample is on the right.
type FPSViewer struct {
	samples [fpsHistory]float64
	last    time.Time
}

// NewFPSViewer creates an empty viewer.
func NewFPSViewer() *FPSViewer {
	return &FPSViewer{}
}

// Tick records a frame delivered at now. The first call only sets the
// reference time.
func (f *FPSViewer) Tick(now time.Time) {
	if f.last.IsZero() {
		f.last = now
		return
	}
	dt := now.Sub(f.last)
	f.last = now
	if dt <= 0 {
		return
	}
	f.Push(float64(time.Second) / float64(dt))
}

// Push shifts the history left and appends a sample.
func (f *FPSViewer) Push(fps float64) {
	copy(f.samples[:], f.samples[1:])
	f.samples[fpsHistory-1] = fps
}

// Current returns the newest sample.
func (f *FPSViewer) Current() float64 {
	return f.samples[fpsHistory-1]
}

// Sparkline renders the last width samples, one rune each.
func (f *FPSViewer) Sparkline(width int) string {
	if width <= 0 {
		return ""
	}
	if width > fpsHistory {
		width = fpsHistory
	}
	out := make([]rune, width)
	for i, v := range f.samples[fpsHistory-width:] {
		v = core.ClampF(v, 0, fpsScale)
		idx := int(v / fpsScale * float64(len(sparkBlocks)-1))
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

// Draw writes "FPS: n" followed by the sparkline at (x, y). The label
// switches to the warning color below half the target rate.
func (f *FPSViewer) Draw(dst *core.Screen, x, y, target int) {
	label := core.ColorHUD
	if target > 0 && f.Current() < float64(target)/2 {
		label = core.ColorWarning
	}
	x = dst.DrawTextColor(x, y, fmt.Sprintf("FPS: %-3d ", int(f.Current()+0.5)), label)

	width := dst.Width() - x
	dst.DrawTextColor(x, y, f.Sparkline(width), core.ColorSparkline)
}
