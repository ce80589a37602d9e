// Package engine implements the control surface described in spec.md
// 4.I / 6: reset, step, get_snapshot, get_stats, inspect,
// set_mutation_rates, and set_cycles_per_organism, with the BadSymbol /
// BadParam error surfacing spec.md 7 requires. This is the package a
// front-end (CLI, websocket hub, ...) actually talks to; everything
// below it (world, scheduler, organism, interp) is implementation detail.
package engine

import (
	"github.com/maccam912/avida-rs/cpu"
	"github.com/maccam912/avida-rs/genome"
	"github.com/maccam912/avida-rs/interp"
	"github.com/maccam912/avida-rs/mutate"
	"github.com/maccam912/avida-rs/organism"
	"github.com/maccam912/avida-rs/scheduler"
	"github.com/maccam912/avida-rs/task"
	"github.com/maccam912/avida-rs/world"
	"github.com/pkg/errors"
)

// ErrBadParam is returned for out-of-range coordinates, probabilities,
// or cycle counts (spec.md 7). State is left unchanged.
var ErrBadParam = errors.New("avidacore: parameter out of range")

// DefaultAncestor is the canonical 50-symbol self-replicating ancestor:
// h-alloc (r), h-search (u), h-copy (t), h-divide (s), and a nop-A/nop-C
// template pair, padded with nop-C filler. Front-ends should offer this
// as the default reset() argument but must accept any well-formed
// string over a..z.
const DefaultAncestor = "rutyabsvacccccccccccccccccccccccccccccccccccccccbc"

// centerX, centerY are where reset places the initial ancestor organism.
// spec.md is silent on the exact placement; the center keeps the
// ancestor's descendants away from the grid edges for as long as
// possible, which is immaterial under toroidal wrap but reads naturally
// in the demo front-end.
const (
	centerX = world.Width / 2
	centerY = world.Height / 2
)

// Engine is the single stateful object a front-end drives.
type Engine struct {
	World     *world.World
	Scheduler *scheduler.Scheduler
	driver    organism.Driver
	updates   uint64
}

// New constructs an Engine with no world yet; call Reset before Step.
func New() *Engine {
	return &Engine{
		Scheduler: scheduler.New(),
		driver:    interp.New(),
	}
}

// Reset implements reset(ancestor_genome, world_seed): parses the
// ancestor (surfacing BadSymbol on invalid characters), builds a fresh
// world from the given seed, and places one copy of the ancestor at the
// grid's center. The scheduler's tunable parameters are preserved across
// Reset so a front-end that has already called set_mutation_rates /
// set_cycles_per_organism doesn't need to re-apply them.
func (e *Engine) Reset(ancestor string, seed uint64) error {
	g, err := genome.Parse(ancestor)
	if err != nil {
		return err
	}
	w := world.New(int64(seed))
	o := organism.New(g, 0, w.Rng().Int63(), e.driver)
	w.Set(centerX, centerY, o)

	e.World = w
	e.updates = 0
	return nil
}

// Step implements step(n_updates): runs n updates of the scheduler.
func (e *Engine) Step(n uint32) {
	e.Scheduler.Run(e.World, int(n))
	e.updates += uint64(n)
}

// Updates returns the number of updates run since the last Reset.
func (e *Engine) Updates() uint64 {
	return e.updates
}

// SnapshotEntry is one cell of get_snapshot's output (spec.md 6): nil
// for an empty cell.
type SnapshotEntry struct {
	GenomeLength uint16
	Merit        float32
	Age          uint32
	Generation   uint32
	TaskMask     uint16
}

// GetSnapshot returns a row-major array of world.Cells entries, nil for
// empty cells, per spec.md 6's snapshot format.
func (e *Engine) GetSnapshot() []*SnapshotEntry {
	out := make([]*SnapshotEntry, world.Cells)
	for i := 0; i < world.Cells; i++ {
		o := e.World.AtIndex(i)
		if o == nil {
			continue
		}
		out[i] = &SnapshotEntry{
			GenomeLength: uint16(o.Genome.Len()),
			Merit:        float32(o.Merit),
			Age:          o.Age,
			Generation:   o.Generation,
			TaskMask:     o.TaskMask(),
		}
	}
	return out
}

// GetStats implements get_stats(): population count, mean genome length,
// mean merit, and per-task completion counts (spec.md 4.G).
func (e *Engine) GetStats() world.Stats {
	return e.World.ComputeStats()
}

// InspectDetail is inspect(x, y)'s return value: the full organism
// detail spec.md 6 calls for.
type InspectDetail struct {
	Genome        string
	Merit         float64
	Age           uint32
	Generation    uint32
	TaskMask      uint16
	Tasks         []task.Task
	AX, BX, CX    int32
	Heads         cpu.Heads
	ActiveStack   []int32
	InactiveStack []int32
}

// Inspect implements inspect(x, y): returns nil, nil for an empty cell,
// or the full detail for an occupied one. Out-of-range coordinates yield
// ErrBadParam.
func (e *Engine) Inspect(x, y int) (*InspectDetail, error) {
	if x < 0 || x >= world.Width || y < 0 || y >= world.Height {
		return nil, ErrBadParam
	}
	o := e.World.At(x, y)
	if o == nil {
		return nil, nil
	}
	active, inactive := o.Cpu.Stacks()
	var tasks []task.Task
	for t := task.Task(0); t < task.NumTasks; t++ {
		if o.Flags.Has(t) {
			tasks = append(tasks, t)
		}
	}
	return &InspectDetail{
		Genome:        o.Genome.String(),
		Merit:         o.Merit,
		Age:           o.Age,
		Generation:    o.Generation,
		TaskMask:      o.TaskMask(),
		Tasks:         tasks,
		AX:            o.Cpu.AX,
		BX:            o.Cpu.BX,
		CX:            o.Cpu.CX,
		Heads:         o.Cpu.Heads,
		ActiveStack:   active.Values(),
		InactiveStack: inactive.Values(),
	}, nil
}

// SetMutationRates implements set_mutation_rates(p_copy, p_ins, p_del).
// Any probability outside [0, 1] yields ErrBadParam and leaves the
// current rates unchanged.
func (e *Engine) SetMutationRates(pCopy, pIns, pDel float64) error {
	if !isProbability(pCopy) || !isProbability(pIns) || !isProbability(pDel) {
		return ErrBadParam
	}
	e.Scheduler.Rates = mutate.Rates{PCopy: pCopy, PIns: pIns, PDel: pDel}
	return nil
}

// SetCyclesPerOrganism implements set_cycles_per_organism(C_avg). A
// non-positive value yields ErrBadParam.
func (e *Engine) SetCyclesPerOrganism(cAvg int) error {
	if cAvg <= 0 {
		return ErrBadParam
	}
	e.Scheduler.CyclesPerOrganism = cAvg
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
