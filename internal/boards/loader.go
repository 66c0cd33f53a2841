// Package boards loads board definitions from disk and turns them into
// simulation grids. This package depends on machine but machine does not
// depend on boards.
package boards

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cellmachine/internal/boards/formats"
	"github.com/vovakirdan/cellmachine/internal/machine"
)

// ErrNotFound is returned when no board has the requested ID.
var ErrNotFound = errors.New("boards: board not found")

// Board is a complete board definition.
type Board struct {
	formats.Board
	FilePath string
}

// ToGrid creates a Grid from the board. A cell placed outside the board
// size fails with machine.ErrOutOfBounds.
func (b Board) ToGrid() (*machine.Grid, error) {
	if b.Width <= 0 || b.Height <= 0 || b.Width > machine.MaxSide || b.Height > machine.MaxSide {
		return nil, fmt.Errorf("board %s: %w: size %dx%d", b.ID, formats.ErrInvalidBoard, b.Width, b.Height)
	}
	g := machine.New(b.Width, b.Height)
	for _, p := range b.Cells {
		if err := g.PlaceAt(p.At, p.Cell); err != nil {
			return nil, fmt.Errorf("board %s: %w", b.ID, err)
		}
	}
	g.SetPaused(b.Paused)
	if b.StepInterval > 0 {
		g.SetStepInterval(uint64(b.StepInterval))
	}
	return g, nil
}

// FromGrid captures the current contents of g as a board definition.
func FromGrid(id, name string, g *machine.Grid) Board {
	b := Board{Board: formats.Board{
		ID:           id,
		Name:         name,
		Width:        g.Width(),
		Height:       g.Height(),
		Paused:       g.Paused(),
		StepInterval: int(g.StepInterval()),
		Metadata: map[string]string{
			"generation": strconv.FormatUint(g.Generation(), 10),
		},
	}}
	g.Each(func(c machine.Coord, cell machine.Cell) {
		if !cell.IsEmpty() {
			b.Cells = append(b.Cells, formats.Placement{At: c, Cell: cell})
		}
	})
	return b
}

// Encode serializes the board in the format chosen by the file extension
// of path. YAML is the only format for now.
func Encode(b Board, path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExtension(ext) {
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
	return formats.EncodeYAML(b.Board)
}

// Loader handles loading boards from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger // Optional; receives warnings for skipped files
}

// NewLoader creates a new board loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all board files.
// Invalid files are skipped (and logged when a Logger is set).
// A missing root directory yields no boards and no error.
// Returns boards sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	if l.Root == "" {
		return nil, nil
	}
	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		board, err := l.LoadFile(path)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping board file", "path", path, "error", err)
			}
			return nil
		}

		boards = append(boards, board)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})

	return boards, nil
}

// LoadFile loads a single board file.
func (l *Loader) LoadFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Board{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Board{Board: parsed, FilePath: path}, nil
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}

	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}

	return Board{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all board IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return ids, nil
}

// IsBoardFile reports whether path names a file in a supported format.
func IsBoardFile(path string) bool {
	return isSupportedExtension(strings.ToLower(filepath.Ext(path)))
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Board, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Board{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
