// Package session drives one board through the simulator: it feeds frames
// to the grid, applies editing actions and draws the board with its HUD
// into a core.Screen. It has no dependency on Bubble Tea; the TUI and the
// headless runner both sit on top of it.
package session

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/machine"
	"github.com/vovakirdan/cellmachine/internal/registry"
	"github.com/vovakirdan/cellmachine/internal/storage"
)

// HUDHeight is the number of screen rows above the board frame.
// The last HUD row is left blank for the platform's FPS viewer.
const HUDHeight = 3

// Stats accumulates what happened during a session.
type Stats struct {
	Frames  uint64
	Steps   uint64
	Moves   int
	Spawns  int
	Blocked int
}

// Add folds one step result into the totals.
func (s *Stats) Add(res machine.StepResult) {
	if !res.Stepped {
		return
	}
	s.Steps++
	s.Moves += len(res.Moves)
	s.Spawns += len(res.Spawns)
	s.Blocked += len(res.Blocked)
}

// Session is an interactive simulator session on a single grid.
type Session struct {
	boardID string
	title   string
	grid    *machine.Grid
	cfg     core.RuntimeConfig
	logger  *log.Logger

	frame uint64
	stats Stats
	last  machine.StepResult

	// Placement palette
	cursor machine.Coord
	kind   machine.Kind
	facing machine.Dir

	// Pan velocity in screen units per frame
	velX, velY float64
}

// New builds the scenario's grid and wraps it in a session.
func New(sc registry.Scenario, cfg core.RuntimeConfig, logger *log.Logger) (*Session, error) {
	g, err := sc.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("session: build %s: %w", sc.ID(), err)
	}
	s := FromGrid(sc.ID(), g, cfg, logger)
	s.title = sc.Title()
	return s, nil
}

// FromGrid wraps an existing grid.
func FromGrid(boardID string, g *machine.Grid, cfg core.RuntimeConfig, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.CellW <= 0 {
		cfg.CellW = 2
	}
	if cfg.CellH <= 0 {
		cfg.CellH = 1
	}
	return &Session{
		boardID: boardID,
		title:   boardID,
		grid:    g,
		cfg:     cfg,
		logger:  logger.With("board", boardID),
		kind:    machine.KindMover,
		facing:  machine.DefaultFacing,
	}
}

// BoardID returns the identifier of the running board.
func (s *Session) BoardID() string { return s.boardID }

// Title returns the display name of the running board.
func (s *Session) Title() string { return s.title }

// Grid exposes the simulated grid.
func (s *Session) Grid() *machine.Grid { return s.grid }

// Stats returns the totals so far.
func (s *Session) Stats() Stats { return s.stats }

// LastStep returns the result of the most recent frame.
func (s *Session) LastStep() machine.StepResult { return s.last }

// Cursor returns the keyboard placement cursor.
func (s *Session) Cursor() machine.Coord { return s.cursor }

// Selected returns the kind and facing that Place will put down.
func (s *Session) Selected() (machine.Kind, machine.Dir) { return s.kind, s.facing }

// Velocity returns the current pan velocity.
func (s *Session) Velocity() (float64, float64) { return s.velX, s.velY }

// Resize updates the screen size used for layout and hit-testing.
func (s *Session) Resize(w, h int) {
	s.cfg.ScreenW = w
	s.cfg.ScreenH = h
}

// State returns a read-only view of the session.
func (s *Session) State() core.SessionState {
	return core.SessionState{
		BoardID:    s.boardID,
		Frame:      s.frame,
		Generation: s.grid.Generation(),
		Paused:     s.grid.Paused(),
		Eligible:   s.grid.Eligible(s.frame),
	}
}

// Step processes one frame: editing actions first, then pan inertia,
// then the throttled simulation step for the current frame number.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionBack) {
		return core.StepResult{State: s.State(), Quit: true}
	}

	s.handleEditing(in)
	s.handlePan(in)

	var stepped bool
	if in.Has(core.ActionStep) && s.grid.Paused() {
		s.record(s.grid.Advance())
		stepped = true
	}

	res := s.grid.Step(s.frame)
	s.record(res)
	stepped = stepped || res.Stepped

	s.stats.Frames++
	state := s.State()
	s.frame++

	return core.StepResult{State: state, Stepped: stepped}
}

func (s *Session) record(res machine.StepResult) {
	s.stats.Add(res)
	if !res.Stepped {
		return
	}
	s.last = res
	if len(res.Blocked) > 0 {
		s.logger.Debug("step", "generation", res.Generation, "moves", len(res.Moves),
			"spawns", len(res.Spawns), "blocked", len(res.Blocked))
	}
}

// RunFrames feeds n empty frames, as the headless runner does.
func (s *Session) RunFrames(n uint64) Stats {
	in := core.NewInputFrame()
	for i := uint64(0); i < n; i++ {
		s.Step(in)
	}
	return s.stats
}

func (s *Session) handleEditing(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		paused := s.grid.TogglePause()
		s.logger.Debug("pause toggled", "paused", paused, "frame", s.frame)
	}

	if in.Has(core.ActionRotateCW) {
		s.facing = s.facing.RotateCW()
	}
	if in.Has(core.ActionRotateCCW) {
		s.facing = s.facing.RotateCCW()
	}
	if in.Has(core.ActionNextKind) {
		s.kind = s.kind.Next()
	}
	if in.Has(core.ActionPrevKind) {
		s.kind = s.kind.Prev()
	}

	dx, dy := 0, 0
	if in.Has(core.ActionCursorLeft) {
		dx--
	}
	if in.Has(core.ActionCursorRight) {
		dx++
	}
	if in.Has(core.ActionCursorUp) {
		dy--
	}
	if in.Has(core.ActionCursorDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		s.MoveCursor(dx, dy)
	}

	if !in.Has(core.ActionPlace) && !in.Has(core.ActionErase) {
		return
	}

	target := s.cursor
	if in.HasPointer {
		c, ok := s.HitTest(in.Pointer.X, in.Pointer.Y)
		if !ok {
			return
		}
		target = c
		s.cursor = c
	}

	if in.Has(core.ActionErase) {
		s.place(target, machine.Empty())
		return
	}
	cell, err := machine.NewCell(s.kind, s.facing)
	if err != nil {
		s.logger.Debug("cannot build cell", "kind", s.kind, "err", err)
		return
	}
	s.place(target, cell)
}

func (s *Session) place(c machine.Coord, cell machine.Cell) {
	if err := s.grid.PlaceAt(c, cell); err != nil {
		s.logger.Debug("place rejected", "at", c, "err", err)
	}
}

// MoveCursor moves the placement cursor, staying inside the grid.
func (s *Session) MoveCursor(dx, dy int) {
	s.cursor = machine.C(
		core.Clamp(s.cursor.X+dx, 0, s.grid.Width()-1),
		core.Clamp(s.cursor.Y+dy, 0, s.grid.Height()-1),
	)
}

// handlePan applies the pan keys and decays velocity. A pan key sets the
// velocity outright; the view drifts by its integer part every frame and
// friction slows it down.
func (s *Session) handlePan(in core.InputFrame) {
	speed := s.cfg.PanSpeed
	if in.Has(core.ActionPanRight) {
		s.velX = -speed
	}
	if in.Has(core.ActionPanLeft) {
		s.velX = speed
	}
	if in.Has(core.ActionPanDown) {
		s.velY = -speed
	}
	if in.Has(core.ActionPanUp) {
		s.velY = speed
	}

	s.grid.Pan(int(s.velX), int(s.velY))

	friction := core.ClampF(s.cfg.PanFriction, 0, 0.99)
	s.velX *= friction
	s.velY *= friction
	if math.Abs(s.velX) < 0.01 {
		s.velX = 0
	}
	if math.Abs(s.velY) < 0.01 {
		s.velY = 0
	}
}

// Viewport returns the mapping between grid coordinates and board-local
// screen positions.
func (s *Session) Viewport() machine.Viewport {
	return machine.Viewport{CellW: s.cfg.CellW, CellH: s.cfg.CellH, Offset: s.grid.PanOffset()}
}

// BoardRect is the screen area inside the board frame for the current
// screen size.
func (s *Session) BoardRect() core.Rect {
	return boardRect(s.cfg.ScreenW, s.cfg.ScreenH)
}

func boardRect(screenW, screenH int) core.Rect {
	return core.NewRect(1, HUDHeight+1, screenW-2, screenH-HUDHeight-2)
}

// HitTest returns the grid cell under the screen position (x, y).
// Positions outside the board frame or the grid report false.
func (s *Session) HitTest(x, y int) (machine.Coord, bool) {
	r := s.BoardRect()
	if !r.Contains(x, y) {
		return machine.Coord{}, false
	}
	c, ok := s.Viewport().Lookup(x-r.X, y-r.Y)
	if !ok {
		return machine.Coord{}, false
	}
	return c, s.grid.InBounds(c)
}

// Record converts the session totals into a run history record.
func (s *Session) Record(src storage.Source, elapsed time.Duration) storage.Run {
	census := s.grid.Census()
	return storage.Run{
		BoardID:    s.boardID,
		Source:     src,
		Width:      s.grid.Width(),
		Height:     s.grid.Height(),
		Frames:     s.stats.Frames,
		Steps:      s.stats.Steps,
		Moves:      s.stats.Moves,
		Spawns:     s.stats.Spawns,
		Blocked:    s.stats.Blocked,
		Movers:     census.Movers,
		Pushers:    census.Pushers,
		Generators: census.Generators,
		Duration:   elapsed,
	}
}
