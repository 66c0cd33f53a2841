// Package scenarios holds the built-in boards and resolves board
// references given on the command line or picked in the title screen.
package scenarios

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/cellmachine/internal/boards"
	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/machine"
	"github.com/vovakirdan/cellmachine/internal/registry"
)

// EmptyID is the scenario used when no board is named.
const EmptyID = "empty"

// builtin is a board drawn with the ASCII glyphs understood by
// machine.ParseGrid.
type builtin struct {
	id    string
	title string
	desc  string
	rows  []string
}

func (b builtin) ID() string          { return b.id }
func (b builtin) Title() string       { return b.title }
func (b builtin) Description() string { return b.desc }

func (b builtin) Build(cfg core.RuntimeConfig) (*machine.Grid, error) {
	g, err := machine.ParseGrid(b.rows...)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", b.id, err)
	}
	applyConfig(g, cfg)
	return g, nil
}

// empty is a blank board sized from configuration.
type empty struct{}

func (empty) ID() string          { return EmptyID }
func (empty) Title() string       { return "Empty board" }
func (empty) Description() string { return "Blank grid sized from configuration" }

func (empty) Build(cfg core.RuntimeConfig) (*machine.Grid, error) {
	g := machine.New(cfg.GridW, cfg.GridH)
	applyConfig(g, cfg)
	return g, nil
}

func applyConfig(g *machine.Grid, cfg core.RuntimeConfig) {
	g.SetPaused(cfg.StartPaused)
	if cfg.StepInterval > 0 {
		g.SetStepInterval(uint64(cfg.StepInterval))
	}
}

// fileBoard adapts a board definition loaded from disk.
type fileBoard struct {
	board boards.Board
}

// FromBoard wraps a loaded board definition as a Scenario. The board's own
// pause flag and step interval win over configuration.
func FromBoard(b boards.Board) registry.Scenario {
	return fileBoard{board: b}
}

func (f fileBoard) ID() string    { return f.board.ID }
func (f fileBoard) Title() string { return f.board.Name }

func (f fileBoard) Description() string {
	if f.board.Description != "" {
		return f.board.Description
	}
	return f.board.FilePath
}

func (f fileBoard) Build(cfg core.RuntimeConfig) (*machine.Grid, error) {
	g, err := f.board.ToGrid()
	if err != nil {
		return nil, err
	}
	if f.board.StepInterval <= 0 && cfg.StepInterval > 0 {
		g.SetStepInterval(uint64(cfg.StepInterval))
	}
	return g, nil
}

// Resolve finds the scenario named by ref. It tries, in order: the empty
// board for "", a built-in ID, a board file path, and a board ID in the
// loader's directory.
func Resolve(ref string, loader *boards.Loader) (registry.Scenario, error) {
	if ref == "" {
		ref = EmptyID
	}
	if registry.Exists(ref) {
		return registry.Create(ref)
	}

	if boards.IsBoardFile(ref) {
		if _, err := os.Stat(ref); err == nil {
			if loader == nil {
				loader = boards.NewLoader("")
			}
			b, err := loader.LoadFile(ref)
			if err != nil {
				return nil, err
			}
			return FromBoard(b), nil
		}
	}

	if loader != nil {
		b, err := loader.LoadByID(ref)
		if err == nil {
			return FromBoard(b), nil
		}
		if !errors.Is(err, boards.ErrNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %s", boards.ErrNotFound, ref)
}

// Source tells where a catalog entry comes from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceFile    Source = "file"
)

// Entry is one line of the board catalog.
type Entry struct {
	registry.Info
	Source Source
	Path   string
}

// Ref returns the reference that Resolve maps back to this entry.
func (e Entry) Ref() string {
	if e.Source == SourceFile && e.Path != "" {
		return e.Path
	}
	return e.ID
}

// Catalog lists built-in scenarios followed by the boards found by loader.
// A nil loader lists built-ins only.
func Catalog(loader *boards.Loader) ([]Entry, error) {
	var entries []Entry
	for _, info := range registry.List() {
		entries = append(entries, Entry{Info: info, Source: SourceBuiltin})
	}
	if loader == nil {
		return entries, nil
	}

	all, err := loader.LoadAll()
	if err != nil {
		return entries, err
	}
	for _, b := range all {
		s := FromBoard(b)
		entries = append(entries, Entry{
			Info:   registry.Info{ID: s.ID(), Title: s.Title(), Description: s.Description()},
			Source: SourceFile,
			Path:   b.FilePath,
		})
	}
	return entries, nil
}
