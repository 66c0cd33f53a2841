// Package formats provides board file format parsers and encoders.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cellmachine/internal/machine"
)

// ErrInvalidBoard is returned when a board file is structurally wrong.
var ErrInvalidBoard = errors.New("formats: invalid board")

// YAMLBoard represents the YAML structure for a board file.
type YAMLBoard struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Size         YAMLSize          `yaml:"size"`
	Paused       *bool             `yaml:"paused,omitempty"`
	StepInterval int               `yaml:"step_interval,omitempty"`
	Rows         []string          `yaml:"rows,omitempty"`
	Cells        []YAMLCell        `yaml:"cells,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLCell is a single placed cell.
type YAMLCell struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"`
	Dir  string `yaml:"dir,omitempty"`
}

// Placement puts one cell at one coordinate.
type Placement struct {
	At   machine.Coord
	Cell machine.Cell
}

// Board is a parsed board definition ready for use.
// Cells from the rows block come first, then the cells list, so an
// explicit cell entry overrides the picture.
type Board struct {
	ID           string
	Name         string
	Description  string
	Width        int
	Height       int
	Paused       bool
	StepInterval int
	Cells        []Placement
	Metadata     map[string]string
}

// ParseYAML parses a YAML board file.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	id := strings.TrimSpace(yb.ID)
	if id == "" {
		return Board{}, fmt.Errorf("%w: missing id", ErrInvalidBoard)
	}

	w, h := yb.Size.W, yb.Size.H
	if len(yb.Rows) > 0 {
		if w == 0 {
			w = len([]rune(yb.Rows[0]))
		}
		if h == 0 {
			h = len(yb.Rows)
		}
	}
	if w <= 0 || h <= 0 || w > machine.MaxSide || h > machine.MaxSide {
		return Board{}, fmt.Errorf("%w: %s: size %dx%d (max side %d)", ErrInvalidBoard, id, w, h, machine.MaxSide)
	}

	board := Board{
		ID:           id,
		Name:         yb.Name,
		Description:  yb.Description,
		Width:        w,
		Height:       h,
		Paused:       true,
		StepInterval: yb.StepInterval,
		Metadata:     yb.Metadata,
	}
	if board.Name == "" {
		board.Name = id
	}
	if yb.Paused != nil {
		board.Paused = *yb.Paused
	}

	for y, row := range yb.Rows {
		for x, r := range []rune(row) {
			cell, err := machine.ParseChar(r)
			if err != nil {
				return Board{}, fmt.Errorf("%s: rows[%d][%d]: %w", id, y, x, err)
			}
			if cell.IsEmpty() {
				continue
			}
			board.Cells = append(board.Cells, Placement{At: machine.C(x, y), Cell: cell})
		}
	}

	for i, yc := range yb.Cells {
		cell, err := parseCell(yc)
		if err != nil {
			return Board{}, fmt.Errorf("%s: cells[%d]: %w", id, i, err)
		}
		board.Cells = append(board.Cells, Placement{At: machine.C(yc.X, yc.Y), Cell: cell})
	}

	return board, nil
}

func parseCell(yc YAMLCell) (machine.Cell, error) {
	kind, err := machine.ParseKind(yc.Kind)
	if err != nil {
		return machine.Cell{}, err
	}
	dir := machine.DefaultFacing
	if yc.Dir != "" {
		if dir, err = machine.ParseDir(yc.Dir); err != nil {
			return machine.Cell{}, err
		}
	}
	return machine.NewCell(kind, dir)
}

// EncodeYAML writes a board in the same format ParseYAML reads.
// Only the cells list is emitted; empty placements are dropped.
func EncodeYAML(b Board) ([]byte, error) {
	paused := b.Paused
	yb := YAMLBoard{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		Size:         YAMLSize{W: b.Width, H: b.Height},
		Paused:       &paused,
		StepInterval: b.StepInterval,
		Metadata:     b.Metadata,
	}
	for _, p := range b.Cells {
		if p.Cell.IsEmpty() {
			continue
		}
		yc := YAMLCell{X: p.At.X, Y: p.At.Y, Kind: p.Cell.Kind().String()}
		if d, ok := p.Cell.Facing(); ok {
			yc.Dir = strings.ToLower(d.String())
		}
		yb.Cells = append(yb.Cells, yc)
	}

	out, err := yaml.Marshal(&yb)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
