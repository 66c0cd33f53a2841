package formats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cellmachine/internal/boards/formats"
	"github.com/vovakirdan/cellmachine/internal/machine"
)

func TestParseYAML_Cells(t *testing.T) {
	data := []byte(`
id: push-train
name: Push Train
size: {w: 6, h: 2}
paused: false
step_interval: 5
cells:
  - {x: 0, y: 1, kind: mover, dir: right}
  - {x: 1, y: 1, kind: pusher}
  - {x: 5, y: 0, kind: generator}
metadata:
  author: test
`)
	b, err := formats.ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "push-train", b.ID)
	assert.Equal(t, "Push Train", b.Name)
	assert.Equal(t, 6, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.False(t, b.Paused)
	assert.Equal(t, 5, b.StepInterval)
	assert.Equal(t, "test", b.Metadata["author"])

	require.Len(t, b.Cells, 3)
	assert.Equal(t, formats.Placement{At: machine.C(0, 1), Cell: machine.Mover(machine.DirRight)}, b.Cells[0])
	assert.Equal(t, machine.Pusher(), b.Cells[1].Cell)
	// Generators without a facing default to Right.
	assert.Equal(t, machine.Generator(machine.DirRight), b.Cells[2].Cell)
}

func TestParseYAML_Rows(t *testing.T) {
	data := []byte(`
id: picture
rows:
  - ">.#"
  - "..U"
cells:
  - {x: 1, y: 0, kind: mover, dir: down}
`)
	b, err := formats.ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "picture", b.Name, "name falls back to id")
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.True(t, b.Paused, "boards start paused unless told otherwise")
	assert.Equal(t, []formats.Placement{
		{At: machine.C(0, 0), Cell: machine.Mover(machine.DirRight)},
		{At: machine.C(2, 0), Cell: machine.Pusher()},
		{At: machine.C(2, 1), Cell: machine.Generator(machine.DirUp)},
		{At: machine.C(1, 0), Cell: machine.Mover(machine.DirDown)},
	}, b.Cells)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{"missing id", "size: {w: 2, h: 2}", formats.ErrInvalidBoard},
		{"zero size", "id: x\nsize: {w: 0, h: 3}", formats.ErrInvalidBoard},
		{"unknown kind", "id: x\nsize: {w: 2, h: 2}\ncells:\n  - {x: 0, y: 0, kind: rock}", machine.ErrUnknownKind},
		{"unknown dir", "id: x\nsize: {w: 2, h: 2}\ncells:\n  - {x: 0, y: 0, kind: mover, dir: up-ish}", machine.ErrUnknownDir},
		{"bad glyph", "id: x\nrows: [\"?\"]", machine.ErrUnknownKind},
		{"huge size", "id: x\nsize: {w: 4294967296, h: 4294967296}\ncells: [{x: 5, y: 5, kind: pusher}]", formats.ErrInvalidBoard},
		{"one side too wide", "id: x\nsize: {w: 1025, h: 1}", formats.ErrInvalidBoard},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tc.data))
			assert.ErrorIs(t, err, tc.is)
		})
	}

	_, err := formats.ParseYAML([]byte("id: [unterminated"))
	assert.Error(t, err)
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	in := formats.Board{
		ID:     "export",
		Name:   "Export",
		Width:  4,
		Height: 3,
		Paused: false,
		Cells: []formats.Placement{
			{At: machine.C(0, 0), Cell: machine.Mover(machine.DirUp)},
			{At: machine.C(1, 2), Cell: machine.Empty()},
			{At: machine.C(3, 2), Cell: machine.Generator(machine.DirLeft)},
		},
		Metadata: map[string]string{"generation": "12"},
	}

	data, err := formats.EncodeYAML(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: generator")
	assert.Contains(t, string(data), "dir: left")

	out, err := formats.ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Width, out.Width)
	assert.Equal(t, in.Height, out.Height)
	assert.False(t, out.Paused)
	assert.Equal(t, in.Metadata, out.Metadata)
	assert.Equal(t, []formats.Placement{in.Cells[0], in.Cells[2]}, out.Cells)
}
