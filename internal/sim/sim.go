// Package sim drives validated models generation by generation. Rules are
// compiled once to an id-indexed engine, then each step reads an immutable
// snapshot and writes the spare buffer, so cell updates never observe
// partial results. Randomness is partitioned per row and per generation,
// which makes a run reproducible from its seed regardless of how many
// workers share the grid.
package sim

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
	"github.com/Lucas-Bergami/Cellular-Automata/pkg/rng"
)

// Options tunes a simulation. The zero value runs with a Moore
// neighborhood, seed 0 and one worker per CPU.
type Options struct {
	Neighborhood core.Neighborhood
	Seed         int64
	Workers      int
}

// Simulation owns the double-buffered grid pair for one model.
type Simulation struct {
	model   *core.Model
	engine  *Engine
	nb      core.Neighborhood
	workers int
	seed    int64
	gen     uint64
	cur     *core.Grid
	nxt     *core.Grid
}

// New builds a simulation over a validated model and seeds the first
// generation from the model's state weights.
func New(m *core.Model, o Options) *Simulation {
	w := o.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	s := &Simulation{
		model:   m,
		engine:  NewEngine(m),
		nb:      o.Neighborhood,
		workers: w,
	}
	s.Reset(o.Seed)
	return s
}

// Reset reseeds the first generation from the model's weights and rewinds
// the generation counter.
func (s *Simulation) Reset(seed int64) {
	s.seed = seed
	s.gen = 0
	s.cur = core.RandomGrid(s.model, s.nb, rng.Stream(seed, 0))
	s.nxt = core.NewGrid(s.model.Grid, s.nb)
}

// SetGrid adopts a caller-built grid, such as a loaded snapshot or a
// hand-placed pattern, as the current generation. The grid must match the
// model's dimensions and alphabet; its neighborhood replaces the
// simulation's. The generation counter rewinds to zero.
func (s *Simulation) SetGrid(g *core.Grid) error {
	if g.W != s.model.Grid.Width || g.H != s.model.Grid.Height {
		return errors.Errorf("grid is %dx%d but the model declares %dx%d",
			g.W, g.H, s.model.Grid.Width, s.model.Grid.Height)
	}
	if err := g.CheckAlphabet(s.model); err != nil {
		return err
	}
	s.cur = g
	s.nxt = core.NewGrid(s.model.Grid, g.Neighborhood)
	s.nb = g.Neighborhood
	s.gen = 0
	return nil
}

// Grid returns the current generation. It stays valid until the next Step,
// which recycles it as the write buffer; callers that keep a generation
// around must Clone it.
func (s *Simulation) Grid() *core.Grid { return s.cur }

// Generation returns how many steps have run since the last reset.
func (s *Simulation) Generation() uint64 { return s.gen }

// Model returns the model the simulation was built from.
func (s *Simulation) Model() *core.Model { return s.model }

// Step advances one generation. The read snapshot is never written during
// a step; every cell is decided against it and the results land in the
// spare buffer, which then becomes current.
func (s *Simulation) Step() {
	stepGrid(s.engine, s.cur, s.nxt, s.seed, s.gen, s.workers)
	s.cur, s.nxt = s.nxt, s.cur
	s.gen++
}

// StepN advances n generations.
func (s *Simulation) StepN(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// Census counts the current generation's cells per state name.
func (s *Simulation) Census() map[string]int {
	c := make(map[string]int, len(s.model.States))
	for _, st := range s.model.States {
		c[st.Name] = 0
	}
	for _, id := range s.cur.Cells() {
		c[s.model.StateName(id)]++
	}
	return c
}

// StepGrid advances one generation as a pure function: src is never
// mutated and a fresh grid is returned. It uses the same per-row
// substreams as Simulation.Step, so both paths produce identical cells
// for the same engine, seed and generation number.
func StepGrid(e *Engine, src *core.Grid, seed int64, gen uint64) *core.Grid {
	dst := core.NewGrid(core.GridSpec{Width: src.W, Height: src.H}, src.Neighborhood)
	stepRows(e, src, dst, 0, src.H, seed, gen)
	return dst
}

// stepGrid fills dst from src, splitting rows into bands across workers.
// Band boundaries cannot change the result because every row draws from
// its own substream.
func stepGrid(e *Engine, src, dst *core.Grid, seed int64, gen uint64, workers int) {
	h := src.H
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		stepRows(e, src, dst, 0, h, seed, gen)
		return
	}
	var g errgroup.Group
	band := (h + workers - 1) / workers
	for lo := 0; lo < h; lo += band {
		hi := min(lo+band, h)
		g.Go(func() error {
			stepRows(e, src, dst, lo, hi, seed, gen)
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()
}

// stepRows advances dst rows [lo, hi) from src.
func stepRows(e *Engine, src, dst *core.Grid, lo, hi int, seed int64, gen uint64) {
	counts := make([]int, e.nstates)
	for y := lo; y < hi; y++ {
		rnd := rng.Stream(seed, rowStream(gen, src.H, y))
		for x := 0; x < src.W; x++ {
			src.NeighborCounts(x, y, counts)
			dst.Set(x, y, e.NextCell(src.At(x, y), counts, rnd))
		}
	}
}

// rowStream numbers row substreams from 1 upward; stream 0 seeds initial
// grids, so a draw made while seeding can never collide with a step draw.
func rowStream(gen uint64, height, row int) uint64 {
	return 1 + gen*uint64(height) + uint64(row)
}
