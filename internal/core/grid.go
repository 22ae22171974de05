package core

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Neighborhood selects which surrounding cells a count( ) condition sees.
// The zero value is Moore, the default everywhere.
type Neighborhood int

const (
	// Moore is the 8 cells touching a cell, diagonals included.
	Moore Neighborhood = iota
	// VonNeumann is the 4 orthogonally adjacent cells.
	VonNeumann
	// ExtendedMoore is the full 5x5 block minus the center, 24 cells.
	ExtendedMoore
)

var mooreOffsets = [][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

var vonNeumannOffsets = [][2]int{
	{0, -1}, {-1, 0}, {1, 0}, {0, 1},
}

var extendedMooreOffsets = func() [][2]int {
	offs := make([][2]int, 0, 24)
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offs = append(offs, [2]int{dx, dy})
		}
	}
	return offs
}()

// Offsets returns the (dx, dy) displacements of the neighborhood.
// Callers must not mutate the returned slice.
func (n Neighborhood) Offsets() [][2]int {
	switch n {
	case VonNeumann:
		return vonNeumannOffsets
	case ExtendedMoore:
		return extendedMooreOffsets
	default:
		return mooreOffsets
	}
}

func (n Neighborhood) String() string {
	switch n {
	case VonNeumann:
		return "von-neumann"
	case ExtendedMoore:
		return "extended-moore"
	default:
		return "moore"
	}
}

// ParseNeighborhood maps a name to a Neighborhood, accepting the same
// spellings String produces.
func ParseNeighborhood(s string) (Neighborhood, error) {
	switch s {
	case "moore":
		return Moore, nil
	case "von-neumann":
		return VonNeumann, nil
	case "extended-moore":
		return ExtendedMoore, nil
	}
	return Moore, errors.Errorf("unknown neighborhood %q (want moore, von-neumann or extended-moore)", s)
}

// Grid is one generation of cells, stored row-major. Cell values are state
// ids into a Model's States slice. The grid is bounded: cells past the edge
// do not exist and contribute nothing to neighbor counts.
type Grid struct {
	W, H         int
	Neighborhood Neighborhood
	cells        []uint8
}

// NewGrid returns a grid of the given dimensions with every cell in state 0.
func NewGrid(spec GridSpec, n Neighborhood) *Grid {
	return &Grid{
		W:            spec.Width,
		H:            spec.Height,
		Neighborhood: n,
		cells:        make([]uint8, spec.Width*spec.Height),
	}
}

// RandomGrid seeds a fresh grid from the model's state weights: each cell is
// drawn independently, with a state's chance proportional to its weight.
// States with weight zero are never drawn. If every weight is zero the grid
// stays all state 0.
func RandomGrid(m *Model, n Neighborhood, rnd *rand.Rand) *Grid {
	g := NewGrid(m.Grid, n)
	total := 0
	for _, s := range m.States {
		if s.Weight > 0 {
			total += s.Weight
		}
	}
	if total == 0 {
		return g
	}
	for i := range g.cells {
		roll := rnd.IntN(total)
		for id, s := range m.States {
			if s.Weight <= 0 {
				continue
			}
			if roll < s.Weight {
				g.cells[i] = uint8(id)
				break
			}
			roll -= s.Weight
		}
	}
	return g
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the state id at (x, y).
func (g *Grid) At(x, y int) uint8 { return g.cells[y*g.W+x] }

// Set writes the state id at (x, y).
func (g *Grid) Set(x, y int, id uint8) { g.cells[y*g.W+x] = id }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.cells }

// Fill sets every cell to the given state id.
func (g *Grid) Fill(id uint8) {
	for i := range g.cells {
		g.cells[i] = id
	}
}

// Clone returns an independent copy sharing no storage.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, Neighborhood: g.Neighborhood}
	c.cells = make([]uint8, len(g.cells))
	copy(c.cells, g.cells)
	return c
}

// CountNeighbors reports how many neighbors of (x, y) hold the target state.
// Out-of-bounds positions are skipped, not wrapped.
func (g *Grid) CountNeighbors(x, y int, target uint8) int {
	n := 0
	for _, d := range g.Neighborhood.Offsets() {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= g.W || ny < 0 || ny >= g.H {
			continue
		}
		if g.cells[ny*g.W+nx] == target {
			n++
		}
	}
	return n
}

// NeighborCounts tallies the neighborhood of (x, y) into counts, indexed by
// state id. counts must hold one slot per model state; ids outside it are
// ignored so a stale snapshot cannot index past the alphabet. The slice is
// zeroed first, letting step loops reuse one scratch buffer per row.
func (g *Grid) NeighborCounts(x, y int, counts []int) {
	for i := range counts {
		counts[i] = 0
	}
	for _, d := range g.Neighborhood.Offsets() {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= g.W || ny < 0 || ny >= g.H {
			continue
		}
		if id := g.cells[ny*g.W+nx]; int(id) < len(counts) {
			counts[id]++
		}
	}
}

type gridJSON struct {
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Neighborhood string    `json:"neighborhood"`
	Cells        [][]uint8 `json:"cells"`
}

// MarshalJSON encodes the grid as a snapshot with nested rows, so dumps
// stay diffable and hand-editable.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]uint8, g.H)
	for y := 0; y < g.H; y++ {
		rows[y] = g.cells[y*g.W : (y+1)*g.W : (y+1)*g.W]
	}
	return json.Marshal(gridJSON{
		Width:        g.W,
		Height:       g.H,
		Neighborhood: g.Neighborhood.String(),
		Cells:        rows,
	})
}

// UnmarshalJSON decodes a snapshot, rejecting dimension mismatches and
// ragged rows.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode grid snapshot")
	}
	if raw.Width <= 0 || raw.Height <= 0 {
		return errors.Errorf("grid snapshot has non-positive dimensions %dx%d", raw.Width, raw.Height)
	}
	if len(raw.Cells) != raw.Height {
		return errors.Errorf("grid snapshot declares height %d but has %d rows", raw.Height, len(raw.Cells))
	}
	n, err := ParseNeighborhood(raw.Neighborhood)
	if err != nil {
		return err
	}
	cells := make([]uint8, 0, raw.Width*raw.Height)
	for y, row := range raw.Cells {
		if len(row) != raw.Width {
			return errors.Errorf("grid snapshot row %d has %d cells, want %d", y, len(row), raw.Width)
		}
		cells = append(cells, row...)
	}
	g.W = raw.Width
	g.H = raw.Height
	g.Neighborhood = n
	g.cells = cells
	return nil
}

// CheckAlphabet verifies every cell id names a state of the model. Loaded
// snapshots pass through here before stepping so the engine can trust its
// id-indexed tables.
func (g *Grid) CheckAlphabet(m *Model) error {
	for i, id := range g.cells {
		if int(id) >= len(m.States) {
			return errors.Errorf("cell (%d, %d) holds state id %d but the model declares only %d states",
				i%g.W, i/g.W, id, len(m.States))
		}
	}
	return nil
}
