package machine

import "fmt"

// Move relocates the cell at From to To.
type Move struct {
	From Coord
	To   Coord
}

// Spawn records a generator emission: the cell behind the generator is
// copied to the slot ahead of it and the slot behind is cleared.
type Spawn struct {
	Generator Coord
	From      Coord
	To        Coord
	Cell      Cell
}

// BlockReason explains why a mover or generator did not act.
type BlockReason uint8

const (
	// BlockedEdge: the mover faces the grid edge.
	BlockedEdge BlockReason = iota
	// BlockedObstacle: the target or a chain link is not pushable.
	BlockedObstacle
	// BlockedChainEdge: the push chain runs into the grid edge.
	BlockedChainEdge
	// BlockedContested: an earlier plan this step already claimed a
	// source or destination this one needs.
	BlockedContested
)

// String returns a short label for the reason.
func (r BlockReason) String() string {
	switch r {
	case BlockedEdge:
		return "edge"
	case BlockedObstacle:
		return "obstacle"
	case BlockedChainEdge:
		return "chain-edge"
	case BlockedContested:
		return "contested"
	default:
		return "unknown"
	}
}

// BlockedEvent records a mover or generator that could not act this step.
// By is the slot that stopped it and may lie out of bounds.
type BlockedEvent struct {
	At     Coord
	Reason BlockReason
	By     Coord
}

// Plan is the set of changes computed for one step. Moves are listed in
// recording order: each push lists the initiator first, then the chain
// from its far end back toward the initiator.
type Plan struct {
	Moves   []Move
	Spawns  []Spawn
	Blocked []BlockedEvent
}

// Empty returns true if the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Moves) == 0 && len(p.Spawns) == 0
}

// Validate checks that no slot is the source of two changes and no slot
// is written twice. A failure means plan resolution is broken.
func (p Plan) Validate() error {
	sources := make(map[Coord]struct{}, len(p.Moves)+len(p.Spawns))
	dests := make(map[Coord]struct{}, len(p.Moves)+len(p.Spawns))

	check := func(from, to Coord) error {
		if _, dup := sources[from]; dup {
			return fmt.Errorf("%w: %v is a source twice", ErrCorruptPlan, from)
		}
		if _, dup := dests[to]; dup {
			return fmt.Errorf("%w: %v is a destination twice", ErrCorruptPlan, to)
		}
		sources[from] = struct{}{}
		dests[to] = struct{}{}
		return nil
	}

	for _, m := range p.Moves {
		if err := check(m.From, m.To); err != nil {
			return err
		}
	}
	for _, s := range p.Spawns {
		if err := check(s.From, s.To); err != nil {
			return err
		}
	}
	return nil
}

// StepResult contains information about what happened during a step.
type StepResult struct {
	Tick       uint64
	Stepped    bool   // False when the frame was throttled or the grid paused
	Generation uint64 // Steps committed after this call
	Plan
}

// Step advances the simulation if the frame is eligible: tick must be a
// multiple of the step interval and the grid must not be paused.
// Callers invoke it every frame; throttling is internal. An ineligible
// call leaves the grid untouched.
func (g *Grid) Step(tick uint64) StepResult {
	if !g.Eligible(tick) {
		return StepResult{Tick: tick, Generation: g.generation}
	}
	return g.commit(tick, g.Plan())
}

// Advance runs exactly one step regardless of frame or pause state.
func (g *Grid) Advance() StepResult {
	return g.commit(0, g.Plan())
}

// commit applies a plan atomically. Every cell written is read from the
// pre-step front buffer; all sources are cleared before any destination
// is written.
func (g *Grid) commit(tick uint64, p Plan) StepResult {
	if err := p.Validate(); err != nil {
		panic(err)
	}

	copy(g.back, g.cells)

	for _, m := range p.Moves {
		g.back[g.index(m.From)] = Empty()
	}
	for _, s := range p.Spawns {
		g.back[g.index(s.From)] = Empty()
	}

	for _, m := range p.Moves {
		g.back[g.index(m.To)] = g.cells[g.index(m.From)]
	}
	for _, s := range p.Spawns {
		g.back[g.index(s.To)] = g.cells[g.index(s.From)]
	}

	g.cells, g.back = g.back, g.cells
	g.generation++

	return StepResult{
		Tick:       tick,
		Stepped:    true,
		Generation: g.generation,
		Plan:       p,
	}
}

// claims tracks which slots are already spoken for during planning.
type claims struct {
	src []bool
	dst []bool
}

// Plan computes the changes the next step would make without applying
// them. Cells are visited in row-major order; when two candidate plans
// need the same source or destination, the one found first wins and the
// later one is rejected whole, so a push chain moves together or not at all.
func (g *Grid) Plan() Plan {
	var p Plan
	cl := claims{
		src: make([]bool, len(g.cells)),
		dst: make([]bool, len(g.cells)),
	}

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			c := C(x, y)
			cell := g.cells[g.index(c)]
			switch cell.kind {
			case KindGenerator:
				g.planSpawn(&p, &cl, c, cell.dir)
			case KindMover:
				g.planPush(&p, &cl, c, cell.dir)
			}
		}
	}
	return p
}

// planSpawn handles a generator at c facing d.
func (g *Grid) planSpawn(p *Plan, cl *claims, c Coord, d Dir) {
	behind := c.Back(d)
	if !g.InBounds(behind) {
		return
	}
	src := g.Get(behind)
	if src.IsEmpty() {
		return
	}
	ahead := c.Step(d)
	if !g.InBounds(ahead) {
		return
	}

	bi, ai := g.index(behind), g.index(ahead)
	if cl.src[bi] {
		p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedContested, By: behind})
		return
	}
	if cl.dst[ai] {
		p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedContested, By: ahead})
		return
	}
	cl.src[bi] = true
	cl.dst[ai] = true

	p.Spawns = append(p.Spawns, Spawn{
		Generator: c,
		From:      behind,
		To:        ahead,
		Cell:      src,
	})
}

// planPush handles a mover at c facing d, including chain pushes.
func (g *Grid) planPush(p *Plan, cl *claims, c Coord, d Dir) {
	target := c.Step(d)
	if !g.InBounds(target) {
		p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedEdge, By: target})
		return
	}

	occupant := g.Get(target)
	if !occupant.IsEmpty() && !occupant.Pushable() {
		p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedObstacle, By: target})
		return
	}

	// Walk the chain of pushable cells until an empty slot is found.
	links := []Coord{c}
	end := target
	for !g.Get(end).IsEmpty() {
		links = append(links, end)
		end = end.Step(d)
		if !g.InBounds(end) {
			p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedChainEdge, By: end})
			return
		}
		if next := g.Get(end); !next.IsEmpty() && !next.Pushable() {
			p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedObstacle, By: end})
			return
		}
	}

	// links[i] moves into links[i+1]; the last link moves into end.
	moves := make([]Move, 0, len(links))
	moves = append(moves, Move{From: c, To: target})
	for i := len(links) - 1; i >= 1; i-- {
		to := end
		if i+1 < len(links) {
			to = links[i+1]
		}
		moves = append(moves, Move{From: links[i], To: to})
	}

	for _, m := range moves {
		if cl.src[g.index(m.From)] || cl.dst[g.index(m.To)] {
			p.Blocked = append(p.Blocked, BlockedEvent{At: c, Reason: BlockedContested, By: m.To})
			return
		}
	}
	for _, m := range moves {
		cl.src[g.index(m.From)] = true
		cl.dst[g.index(m.To)] = true
	}
	p.Moves = append(p.Moves, moves...)
}
