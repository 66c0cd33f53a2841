package boards_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cellmachine/internal/boards"
	"github.com/vovakirdan/cellmachine/internal/boards/formats"
	"github.com/vovakirdan/cellmachine/internal/machine"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "id: zeta\nrows: [\">..\"]\n")
	writeFile(t, dir, "nested/a.yml", "id: alpha\nsize: {w: 2, h: 2}\n")
	writeFile(t, dir, "broken.yaml", "id: broken\nrows: [\"?\"]\n")
	writeFile(t, dir, "notes.txt", "not a board")

	var logs bytes.Buffer
	loader := boards.NewLoader(dir)
	loader.Logger = log.New(&logs)

	all, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].ID)
	assert.Equal(t, "zeta", all[1].ID)
	assert.Equal(t, filepath.Join(dir, "nested", "a.yml"), all[0].FilePath)
	assert.Contains(t, logs.String(), "broken.yaml")

	ids, err := loader.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestLoader_MissingRoot(t *testing.T) {
	loader := boards.NewLoader(filepath.Join(t.TempDir(), "nope"))
	all, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = loader.LoadByID("anything")
	assert.ErrorIs(t, err, boards.ErrNotFound)
}

func TestLoader_LoadByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "train.yaml", "id: train\nname: Train\nrows: [\">#.\"]\npaused: false\n")

	b, err := boards.NewLoader(dir).LoadByID("train")
	require.NoError(t, err)
	assert.Equal(t, "Train", b.Name)

	g, err := b.ToGrid()
	require.NoError(t, err)
	assert.False(t, g.Paused())
	assert.Equal(t, []string{">#."}, machine.GridToLines(g))
}

func TestBoard_ToGridRejectsOutOfBounds(t *testing.T) {
	b := boards.Board{Board: formats.Board{
		ID:     "oob",
		Width:  2,
		Height: 2,
		Cells:  []formats.Placement{{At: machine.C(2, 0), Cell: machine.Pusher()}},
	}}
	_, err := b.ToGrid()
	assert.ErrorIs(t, err, machine.ErrOutOfBounds)
}

func TestBoard_ToGridRejectsOversized(t *testing.T) {
	b := boards.Board{Board: formats.Board{
		ID:     "huge",
		Width:  machine.MaxSide * 4,
		Height: machine.MaxSide * 4,
		Cells:  []formats.Placement{{At: machine.C(5, 5), Cell: machine.Pusher()}},
	}}
	_, err := b.ToGrid()
	assert.ErrorIs(t, err, formats.ErrInvalidBoard)
}

func TestBoard_ToGridStepInterval(t *testing.T) {
	b := boards.Board{Board: formats.Board{ID: "slow", Width: 1, Height: 1, StepInterval: 30}}
	g, err := b.ToGrid()
	require.NoError(t, err)
	assert.Equal(t, uint64(30), g.StepInterval())
	assert.False(t, g.Paused())
}

func TestFromGrid_EncodeRoundTrip(t *testing.T) {
	g, err := machine.ParseGrid(">.#", "..L")
	require.NoError(t, err)
	g.Advance()

	b := boards.FromGrid("snap", "Snapshot", g)
	assert.Equal(t, "1", b.Metadata["generation"])

	data, err := boards.Encode(b, "out.yaml")
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "snap.yaml", string(data))
	loaded, err := boards.NewLoader(filepath.Dir(path)).LoadFile(path)
	require.NoError(t, err)

	back, err := loaded.ToGrid()
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
	assert.True(t, back.Paused())

	_, err = boards.Encode(b, "out.json")
	assert.Error(t, err)
}

func TestIsBoardFile(t *testing.T) {
	assert.True(t, boards.IsBoardFile("x/y.YAML"))
	assert.True(t, boards.IsBoardFile("y.yml"))
	assert.False(t, boards.IsBoardFile("y.json"))
}
