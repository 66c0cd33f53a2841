package machine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cellmachine/internal/machine"
)

func TestDir_Rotation(t *testing.T) {
	for _, d := range machine.Dirs {
		assert.Equal(t, d, d.RotateCW().RotateCCW(), "%v", d)
		assert.Equal(t, d, d.RotateCW().RotateCW().RotateCW().RotateCW(), "%v", d)
		assert.Equal(t, d.Opposite(), d.RotateCW().RotateCW(), "%v", d)
	}
	assert.Equal(t, machine.DirDown, machine.DirRight.RotateCW())
	assert.Equal(t, machine.DirUp, machine.DirRight.RotateCCW())
	assert.Equal(t, machine.DirRight, machine.DirUp.RotateCW())
}

func TestDir_Delta(t *testing.T) {
	tests := []struct {
		dir    machine.Dir
		dx, dy int
	}{
		{machine.DirUp, 0, -1},
		{machine.DirRight, 1, 0},
		{machine.DirDown, 0, 1},
		{machine.DirLeft, -1, 0},
	}
	for _, tc := range tests {
		dx, dy := tc.dir.Delta()
		assert.Equal(t, tc.dx, dx, "%v", tc.dir)
		assert.Equal(t, tc.dy, dy, "%v", tc.dir)

		c := machine.C(5, 5)
		assert.Equal(t, c, c.Step(tc.dir).Back(tc.dir))
	}
}

func TestDir_Angles(t *testing.T) {
	assert.Equal(t, 0.0, machine.DirRight.Degrees())
	assert.Equal(t, 90.0, machine.DirDown.Degrees())
	assert.Equal(t, 180.0, machine.DirLeft.Degrees())
	assert.Equal(t, 270.0, machine.DirUp.Degrees())
	assert.InDelta(t, math.Pi, machine.DirLeft.Radians(), 1e-9)
	assert.Equal(t, '↑', machine.DirUp.Glyph())
}

func TestParseDir(t *testing.T) {
	for in, want := range map[string]machine.Dir{
		"up":     machine.DirUp,
		"Right":  machine.DirRight,
		" DOWN ": machine.DirDown,
		"l":      machine.DirLeft,
		"north":  machine.DirUp,
	} {
		got, err := machine.ParseDir(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := machine.ParseDir("sideways")
	assert.ErrorIs(t, err, machine.ErrUnknownDir)
}

func TestKind_Cycle(t *testing.T) {
	k := machine.KindMover
	seen := []machine.Kind{k}
	for i := 0; i < 2; i++ {
		k = k.Next()
		seen = append(seen, k)
	}
	assert.Equal(t, []machine.Kind{machine.KindMover, machine.KindPusher, machine.KindGenerator}, seen)
	assert.Equal(t, machine.KindMover, machine.KindGenerator.Next())

	for _, k := range machine.Kinds {
		assert.Equal(t, k, k.Next().Prev(), "%v", k)
	}
	assert.Equal(t, machine.KindMover, machine.KindEmpty.Next())
}

func TestParseKind(t *testing.T) {
	k, err := machine.ParseKind("Generator")
	require.NoError(t, err)
	assert.Equal(t, machine.KindGenerator, k)

	_, err = machine.ParseKind("rock")
	assert.ErrorIs(t, err, machine.ErrUnknownKind)
}

func TestCell_Facing(t *testing.T) {
	d, ok := machine.Mover(machine.DirLeft).Facing()
	assert.True(t, ok)
	assert.Equal(t, machine.DirLeft, d)

	_, ok = machine.Pusher().Facing()
	assert.False(t, ok)
	_, ok = machine.Empty().Facing()
	assert.False(t, ok)

	assert.Equal(t, machine.Pusher(), machine.Pusher().WithFacing(machine.DirUp))
	assert.Equal(t, machine.Generator(machine.DirUp), machine.Generator(machine.DirRight).WithFacing(machine.DirUp))
}

func TestCell_Predicates(t *testing.T) {
	assert.True(t, machine.Empty().IsEmpty())
	assert.True(t, machine.Mover(machine.DirUp).Pushable())
	assert.True(t, machine.Pusher().Pushable())
	assert.False(t, machine.Generator(machine.DirUp).Pushable())
	assert.False(t, machine.Empty().Pushable())
}

func TestNewCell(t *testing.T) {
	c, err := machine.NewCell(machine.KindPusher, machine.DirLeft)
	require.NoError(t, err)
	assert.Equal(t, machine.Pusher(), c)

	c, err = machine.NewCell(machine.KindGenerator, machine.DirDown)
	require.NoError(t, err)
	assert.Equal(t, "generator:Down", c.String())

	_, err = machine.NewCell(machine.KindMover, machine.Dir(9))
	assert.ErrorIs(t, err, machine.ErrUnknownDir)

	_, err = machine.NewCell(machine.Kind(9), machine.DirUp)
	assert.ErrorIs(t, err, machine.ErrUnknownKind)
}
