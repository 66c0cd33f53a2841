package machine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cellmachine/internal/machine"
)

// running parses rows into an unpaused grid.
func running(t *testing.T, rows ...string) *machine.Grid {
	t.Helper()
	g, err := machine.ParseGrid(rows...)
	require.NoError(t, err)
	g.SetPaused(false)
	return g
}

func lines(g *machine.Grid) []string {
	return machine.GridToLines(g)
}

func TestStep_SingleMoverCrossesRow(t *testing.T) {
	g := running(t, ">....")

	res := g.Step(10)
	require.True(t, res.Stepped)
	assert.Equal(t, []string{".>..."}, lines(g))

	cell, err := g.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, machine.KindMover, cell.Kind())
	dir, ok := cell.Facing()
	assert.True(t, ok)
	assert.Equal(t, machine.DirRight, dir)

	for tick := uint64(20); tick <= 50; tick += 10 {
		g.Step(tick)
	}
	assert.Equal(t, []string{"....>"}, lines(g))

	// Further steps leave it at the edge.
	for tick := uint64(60); tick <= 100; tick += 10 {
		res = g.Step(tick)
		assert.True(t, res.Stepped)
		assert.Empty(t, res.Moves)
	}
	assert.Equal(t, []string{"....>"}, lines(g))
	assert.Equal(t, uint64(10), g.Generation())
}

func TestStep_AdvancesOneCellPerEligibleTick(t *testing.T) {
	g := running(t,
		"......",
		"......",
		"......",
		"......",
		"^.....",
	)
	for n := 1; n <= 4; n++ {
		g.Step(uint64(n * 10))
		cell := g.Get(machine.C(0, 4-n))
		assert.Equal(t, machine.KindMover, cell.Kind(), "after %d steps", n)
		assert.Equal(t, 1, g.Census().Movers)
	}
}

func TestStep_ThrottledAndPausedAreNoOps(t *testing.T) {
	g := running(t, ">.#.", "R...", "....")
	before := g.Clone()

	for _, tick := range []uint64{1, 5, 9, 11, 19, 25} {
		res := g.Step(tick)
		assert.False(t, res.Stepped, "tick %d", tick)
		assert.True(t, g.Equal(before), "tick %d changed the grid", tick)
	}

	g.SetPaused(true)
	for _, tick := range []uint64{0, 10, 20} {
		res := g.Step(tick)
		assert.False(t, res.Stepped)
		assert.True(t, g.Equal(before))
	}
	assert.Equal(t, uint64(0), g.Generation())
}

func TestStep_NewGridStartsPaused(t *testing.T) {
	g := machine.New(3, 1)
	require.NoError(t, g.Place(0, 0, machine.Mover(machine.DirRight)))

	res := g.Step(10)
	assert.False(t, res.Stepped)
	assert.Equal(t, []string{">.."}, lines(g))

	g.TogglePause()
	g.Step(10)
	assert.Equal(t, []string{".>."}, lines(g))
}

func TestStep_MoverAtEdgeDoesNotMove(t *testing.T) {
	g := running(t, "...>")

	res := g.Step(0)
	require.True(t, res.Stepped)
	assert.Empty(t, res.Moves)
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedEdge, res.Blocked[0].Reason)
	assert.Equal(t, machine.C(3, 0), res.Blocked[0].At)
	assert.Equal(t, []string{"...>"}, lines(g))
}

func TestStep_ChainPushShiftsEveryLink(t *testing.T) {
	g := running(t, ">#>#.")

	res := g.Step(0)
	assert.Equal(t, []string{".>#>#"}, lines(g))

	// Initiator first, then the chain from the far end backward.
	assert.Equal(t, []machine.Move{
		{From: machine.C(0, 0), To: machine.C(1, 0)},
		{From: machine.C(3, 0), To: machine.C(4, 0)},
		{From: machine.C(2, 0), To: machine.C(3, 0)},
		{From: machine.C(1, 0), To: machine.C(2, 0)},
	}, res.Moves)

	// The pushed mover had already moved as part of the chain.
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedContested, res.Blocked[0].Reason)
	assert.Equal(t, machine.C(2, 0), res.Blocked[0].At)
}

func TestStep_ChainPreservesFacing(t *testing.T) {
	g := running(t,
		".",
		"<",
		"#",
		"^",
	)
	g.Step(0)
	assert.Equal(t, []string{"<", "#", "^", "."}, lines(g))
}

func TestStep_ChainBlockedByGenerator(t *testing.T) {
	g := running(t, ">##U.")

	res := g.Step(0)
	assert.Equal(t, []string{">##U."}, lines(g))
	assert.Empty(t, res.Moves)
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedObstacle, res.Blocked[0].Reason)
	assert.Equal(t, machine.C(3, 0), res.Blocked[0].By)
}

func TestStep_MoverFacingGeneratorIsBlocked(t *testing.T) {
	g := running(t, ">U.")
	res := g.Step(0)
	assert.Equal(t, []string{">U."}, lines(g))
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedObstacle, res.Blocked[0].Reason)
}

func TestStep_ChainRunningOffGridFails(t *testing.T) {
	g := running(t, ">##")
	res := g.Step(0)
	assert.Equal(t, []string{">##"}, lines(g))
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedChainEdge, res.Blocked[0].Reason)
	assert.Equal(t, machine.C(3, 0), res.Blocked[0].By)
}

func TestStep_HeadOnMoversDoNotShareDestination(t *testing.T) {
	g := running(t, ">.<")
	res := g.Step(0)

	require.NoError(t, res.Plan.Validate())
	assert.Equal(t, []string{".><"}, lines(g))
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedContested, res.Blocked[0].Reason)
	assert.Equal(t, machine.C(2, 0), res.Blocked[0].At)
}

func TestStep_AdjacentHeadOnPushesThrough(t *testing.T) {
	g := running(t, "><.")
	g.Step(0)
	assert.Equal(t, []string{".><"}, lines(g))
}

func TestStep_FollowingMoversReadSnapshot(t *testing.T) {
	g := running(t, ">.>.")
	g.Step(0)
	assert.Equal(t, []string{".>.>"}, lines(g))

	g = running(t, ">>..")
	g.Step(0)
	assert.Equal(t, []string{".>>."}, lines(g))
}

func TestStep_GeneratorDuplicatesBehindCell(t *testing.T) {
	g := running(t, "#R.")

	res := g.Step(0)
	assert.Equal(t, []string{".R#"}, lines(g))
	require.Len(t, res.Spawns, 1)
	assert.Equal(t, machine.Spawn{
		Generator: machine.C(1, 0),
		From:      machine.C(0, 0),
		To:        machine.C(2, 0),
		Cell:      machine.Pusher(),
	}, res.Spawns[0])
}

func TestStep_GeneratorOverwritesAheadAndKeepsFacing(t *testing.T) {
	g := running(t,
		"#",
		"U",
		"<",
	)
	g.Step(0)
	assert.Equal(t, []string{"<", "U", "."}, lines(g))

	g = running(t, "#R>")
	g.Step(0)
	assert.Equal(t, []string{".R#"}, lines(g))
}

func TestStep_GeneratorStaysPut(t *testing.T) {
	g := running(t, ">R..")
	g.Step(0)
	// The mover is blocked by the generator and re-emitted ahead of it.
	assert.Equal(t, []string{".R>."}, lines(g))
	g.Step(10)
	assert.Equal(t, []string{".R.>"}, lines(g))
	assert.Equal(t, machine.Generator(machine.DirRight), g.Get(machine.C(1, 0)))
}

func TestStep_GeneratorSkips(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"behind empty", []string{".R#"}},
		{"behind out of bounds", []string{"R.#"}},
		{"ahead out of bounds", []string{"#R"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := running(t, tc.rows...)
			res := g.Step(0)
			assert.Empty(t, res.Spawns)
			assert.Equal(t, tc.rows, lines(g))
		})
	}
}

func TestStep_PushWinsOverLaterSpawn(t *testing.T) {
	g := running(t,
		".v..",
		".#R.",
		"....",
	)
	res := g.Step(0)
	assert.Equal(t, []string{"....", ".vR.", ".#.."}, lines(g))
	assert.Empty(t, res.Spawns)
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, machine.BlockedEvent{
		At:     machine.C(2, 1),
		Reason: machine.BlockedContested,
		By:     machine.C(1, 1),
	}, res.Blocked[0])
}

func TestStep_SpawnWinsOverLaterPush(t *testing.T) {
	g := running(t,
		"....",
		".#R.",
		".^..",
	)
	res := g.Step(0)
	assert.Equal(t, []string{"....", "..R#", ".^.."}, lines(g))
	assert.Empty(t, res.Moves)
	require.Len(t, res.Spawns, 1)
}

func TestStep_SpawnFillsSlotVacatedByEarlierMover(t *testing.T) {
	g := running(t,
		"...",
		"^L#",
	)
	res := g.Step(0)
	assert.Equal(t, []string{"^..", "#L."}, lines(g))

	assert.Equal(t, []machine.Move{{From: machine.C(0, 1), To: machine.C(0, 0)}}, res.Moves)
	require.Len(t, res.Spawns, 1)
	assert.Equal(t, machine.Spawn{
		Generator: machine.C(1, 1),
		From:      machine.C(2, 1),
		To:        machine.C(0, 1),
		Cell:      machine.Pusher(),
	}, res.Spawns[0])
	assert.Empty(t, res.Blocked)
	assert.Equal(t, machine.Mover(machine.DirUp), g.Get(machine.C(0, 0)))
}

func TestPlan_IsDryRun(t *testing.T) {
	g := running(t, ">.#R.")
	before := g.Clone()

	p := g.Plan()
	assert.False(t, p.Empty())
	assert.True(t, g.Equal(before))
	assert.Equal(t, uint64(0), g.Generation())
}

func TestPlan_ValidateRejectsDuplicates(t *testing.T) {
	p := machine.Plan{Moves: []machine.Move{
		{From: machine.C(0, 0), To: machine.C(1, 0)},
		{From: machine.C(2, 0), To: machine.C(1, 0)},
	}}
	assert.ErrorIs(t, p.Validate(), machine.ErrCorruptPlan)

	p = machine.Plan{
		Moves:  []machine.Move{{From: machine.C(0, 0), To: machine.C(1, 0)}},
		Spawns: []machine.Spawn{{From: machine.C(0, 0), To: machine.C(3, 0)}},
	}
	assert.ErrorIs(t, p.Validate(), machine.ErrCorruptPlan)
}

func TestAdvance_IgnoresPauseAndTick(t *testing.T) {
	g, err := machine.ParseGrid(">..")
	require.NoError(t, err)
	require.True(t, g.Paused())

	res := g.Advance()
	assert.True(t, res.Stepped)
	assert.Equal(t, []string{".>."}, lines(g))
	assert.True(t, g.Paused())
}

func TestStep_CustomInterval(t *testing.T) {
	g := running(t, ">...")
	g.SetStepInterval(3)
	assert.False(t, g.Step(10).Stepped)
	assert.True(t, g.Step(9).Stepped)
	assert.Equal(t, []string{".>.."}, lines(g))

	g.SetStepInterval(0)
	assert.Equal(t, uint64(machine.DefaultStepInterval), g.StepInterval())
}

// randomGrid fills a grid with a deterministic mix of cells.
func randomGrid(rng *rand.Rand, w, h int) *machine.Grid {
	g := machine.New(w, h)
	palette := []machine.Cell{machine.Empty(), machine.Empty(), machine.Pusher()}
	for _, d := range machine.Dirs {
		palette = append(palette, machine.Mover(d), machine.Generator(d))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_ = g.Place(x, y, palette[rng.Intn(len(palette))])
		}
	}
	g.SetPaused(false)
	return g
}

func TestStep_InvariantsOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 25; round++ {
		w, h := 3+rng.Intn(10), 3+rng.Intn(10)
		g := randomGrid(rng, w, h)
		twin := g.Clone()

		for step := 0; step < 30; step++ {
			before := g.Census().Total()

			plan := g.Plan()
			require.NoError(t, plan.Validate(), "round %d step %d", round, step)

			res := g.Step(uint64(step * 10))
			twin.Step(uint64(step * 10))

			require.Len(t, g.Snapshot(), w*h)
			assert.Equal(t, plan, res.Plan)
			assert.LessOrEqual(t, g.Census().Total(), before, "cells are never created from nothing")
			assert.Equal(t, w*h, g.Census().Total()+g.Census().Empty)
			require.True(t, g.Equal(twin), "stepping must be deterministic")
		}
	}
}

func TestStep_MovesConserveCells(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		g := machine.New(8, 8)
		for i := 0; i < 20; i++ {
			d := machine.Dirs[rng.Intn(4)]
			cell := machine.Mover(d)
			if rng.Intn(2) == 0 {
				cell = machine.Pusher()
			}
			_ = g.Place(rng.Intn(8), rng.Intn(8), cell)
		}
		g.SetPaused(false)
		census := g.Census()
		for step := 0; step < 20; step++ {
			g.Step(0)
			assert.Equal(t, census, g.Census())
		}
	}
}
