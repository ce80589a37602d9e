// Package world implements the 60×60 toroidal grid described in spec.md
// 4.G: a flat array of optional organism slots, Moore-8 neighbor
// enumeration, birth/death placement, and pure population statistics. It
// also owns the single PRNG the whole simulation draws from (spec.md 5's
// "PRNG ownership" design note), the same discipline the teacher applies
// by keeping math/rand calls local to grid2d.Grid.PutRandomly rather than
// behind a package-global source.
package world

import (
	"math/rand"

	"github.com/maccam912/avida-rs/logging"
	"github.com/maccam912/avida-rs/organism"
	"github.com/maccam912/avida-rs/task"
)

// Logger is the package-level logger, Null() by default; swap it for
// Real() to trace placement/displacement decisions, the same hot-path
// grid2d.Grid.PutRandomly traces in the teacher.
var Logger logging.Logger = logging.Null()

// Width and Height are the fixed dimensions of the grid (spec.md 4.G).
const (
	Width  = 60
	Height = 60
	Cells  = Width * Height
)

// neighborOffsets enumerates the Moore-8 neighborhood in the exact order
// spec.md 8's boundary property 9 requires: starting at the upper-left
// corner and proceeding row by row, skipping the center.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// World holds the grid and the shared PRNG every mutation of world state
// draws from (spec.md 5: "the PRNG is shared; only the scheduler draws
// from it").
type World struct {
	cells [Cells]*organism.Organism
	rng   *rand.Rand
}

// New creates an empty world seeded with the given world seed.
func New(seed int64) *World {
	return &World{rng: rand.New(rand.NewSource(seed))}
}

// Rng exposes the world's single PRNG to the scheduler, which draws from
// it during updates (spec.md 5); engine.Reset also draws the ancestor's
// input seed from it once, before any update runs.
func (w *World) Rng() *rand.Rand {
	return w.rng
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Index converts (possibly out-of-range) coordinates to a wrapped,
// row-major cell index.
func Index(x, y int) int {
	return wrap(y, Height)*Width + wrap(x, Width)
}

// At returns the occupant at (x, y), or nil if the cell is empty.
// Coordinates are taken modulo the grid's extents.
func (w *World) At(x, y int) *organism.Organism {
	return w.cells[Index(x, y)]
}

// AtIndex returns the occupant at a raw cell index (0..Cells).
func (w *World) AtIndex(i int) *organism.Organism {
	return w.cells[i]
}

// Set places o at (x, y) directly, replacing any existing occupant. Used
// to seed the world and by PlaceChild's placement/displacement logic.
func (w *World) Set(x, y int, o *organism.Organism) {
	w.cells[Index(x, y)] = o
}

// Neighbors returns the 8 wrapped coordinates around (x, y), in the fixed
// order spec.md 8 (property 9) mandates.
func Neighbors(x, y int) [8][2]int {
	var out [8][2]int
	for i, off := range neighborOffsets {
		out[i] = [2]int{wrap(x+off[0], Width), wrap(y+off[1], Height)}
	}
	return out
}

// PlaceChild implements spec.md 4.G's placement rule: among the 8
// neighbors of (px, py), if any are empty, one is chosen uniformly at
// random and the child is placed there; otherwise one neighbor is chosen
// uniformly at random and its occupant is displaced (dies) to make room.
// Returns the coordinates the child was placed at.
func (w *World) PlaceChild(px, py int, child *organism.Organism) (x, y int) {
	neighbors := Neighbors(px, py)

	var empty []int
	for i, n := range neighbors {
		if w.At(n[0], n[1]) == nil {
			empty = append(empty, i)
		}
	}

	var idx int
	if len(empty) > 0 {
		idx = empty[w.rng.Intn(len(empty))]
	} else {
		idx = w.rng.Intn(len(neighbors))
		Logger.Printf("PlaceChild(%d,%d): all neighbors occupied, displacing (%d,%d)", px, py, neighbors[idx][0], neighbors[idx][1])
	}
	x, y = neighbors[idx][0], neighbors[idx][1]
	w.Set(x, y, child)
	return x, y
}

// CellRef names an occupied cell's coordinates, index, and occupant —
// the unit the scheduler iterates over.
type CellRef struct {
	X, Y, Index int
	Org         *organism.Organism
}

// Snapshot returns every currently-occupied cell in row-major index
// order, the stable iteration order spec.md 4.H's scheduler requires.
func (w *World) Snapshot() []CellRef {
	var out []CellRef
	for i, o := range w.cells {
		if o != nil {
			out = append(out, CellRef{X: i % Width, Y: i / Width, Index: i, Org: o})
		}
	}
	return out
}

// Population returns the number of occupied cells.
func (w *World) Population() int {
	n := 0
	for _, o := range w.cells {
		if o != nil {
			n++
		}
	}
	return n
}

// Stats holds the pure population statistics spec.md 4.G calls for.
type Stats struct {
	Population      int
	MeanGenomeLength float64
	MeanMerit        float64
	TaskCompletions  [task.NumTasks]int
}

// ComputeStats computes Stats as a pure function of the current grid
// contents (spec.md 4.G: "computations are pure functions of the current
// grid snapshot").
func (w *World) ComputeStats() Stats {
	var s Stats
	var totalLen, totalMerit float64
	for _, o := range w.cells {
		if o == nil {
			continue
		}
		s.Population++
		totalLen += float64(o.Genome.Len())
		totalMerit += o.Merit
		for t := task.Task(0); t < task.NumTasks; t++ {
			if o.Flags.Has(t) {
				s.TaskCompletions[t]++
			}
		}
	}
	if s.Population > 0 {
		s.MeanGenomeLength = totalLen / float64(s.Population)
		s.MeanMerit = totalMerit / float64(s.Population)
	}
	return s
}
