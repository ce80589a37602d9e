// Package organism implements the organism described in spec.md 4.C: a
// genome, a CPU, task flags, merit, age/generation bookkeeping, and an
// offspring-in-progress handle. It deliberately does not depend on the
// interp package that actually executes instructions against it — the
// same separation the teacher draws between org.Organism (state) and
// cpu1.Cpu (behavior), mediated by a Driver interface so org never needs
// to import the package that drives it (org.Organism.Driver interface{}
// in the teacher, type-asserted back to *cpu1.Cpu by the caller).
package organism

import (
	"math/rand"

	"github.com/maccam912/avida-rs/alphabet"
	"github.com/maccam912/avida-rs/cpu"
	"github.com/maccam912/avida-rs/genome"
	"github.com/maccam912/avida-rs/mutate"
	"github.com/maccam912/avida-rs/task"
	"github.com/pkg/errors"
)

// InitialMerit is the merit every newly-born organism starts with
// (spec.md 3).
const InitialMerit = 1.0

// ErrNoDriver is returned by Tick if no Driver has been attached.
var ErrNoDriver = errors.New("avidacore: organism has no driver")

// Context carries the per-tick dependencies a Driver needs but that the
// Organism itself must not own: the shared world PRNG (spec.md 5 keeps
// the PRNG inside the world, drawn from only in a fixed order) and the
// current mutation rates.
type Context struct {
	Rng   *rand.Rand
	Rates mutate.Rates
}

// Driver executes one instruction against an Organism. The interp
// package's Driver implementation is the only one this repo ships, but
// keeping it an interface (rather than a direct type dependency) avoids
// organism importing interp, mirroring the teacher's org.Organism.Driver.
type Driver interface {
	Step(o *Organism, ctx *Context) error
}

// replication tracks an organism's offspring-in-progress: the genome
// buffer accumulated by h-copy since the last h-alloc (spec.md 3's
// "Offspring-in-progress").
type replication struct {
	copying bool
	copied  []alphabet.Symbol
}

// Organism is a single self-replicating program living in the world.
type Organism struct {
	Genome     genome.Genome
	Cpu        cpu.Cpu
	Flags      task.Flags
	Merit      float64
	Age        uint32
	Generation uint32
	Driver     Driver

	repl     replication
	inputRng *rand.Rand

	pendingChild    genome.Genome
	hasPendingChild bool
}

// New constructs an organism with the given genome, generation, input
// stream seed, and driver. Merit starts at InitialMerit; age at 0.
func New(g genome.Genome, generation uint32, inputSeed int64, driver Driver) *Organism {
	return &Organism{
		Genome:     g,
		Merit:      InitialMerit,
		Generation: generation,
		Driver:     driver,
		inputRng:   rand.New(rand.NewSource(inputSeed)),
	}
}

// Tick executes exactly one instruction via the organism's Driver
// (spec.md 4.C).
func (o *Organism) Tick(ctx *Context) error {
	if o.Driver == nil {
		return ErrNoDriver
	}
	return o.Driver.Step(o, ctx)
}

// NextInput draws the next value from this organism's deterministic
// input stream, records it into the CPU's recent-input ring, and returns
// it. Each organism's stream is seeded independently at birth (spec.md 9
// open question, resolved in SPEC_FULL.md): it never shares state with
// its parent's stream or the world's own PRNG beyond the one seed value
// drawn at birth.
func (o *Organism) NextInput() int32 {
	v := int32(o.inputRng.Int31())
	o.Cpu.PushInput(v)
	return v
}

// Output records an IO output value, runs the task detector against the
// organism's current recent-input buffer, and applies any newly-earned
// merit bonuses (spec.md 4.E). Returns the tasks newly detected by this
// call, if any.
func (o *Organism) Output(v int32) []task.Task {
	o.Cpu.PushOutput(v)
	newly := o.Flags.Detect(v, o.Cpu.RecentInputs())
	if len(newly) > 0 {
		o.Merit *= task.MeritMultiplier(newly)
	}
	return newly
}

// Alloc implements h-alloc: begins (or, if already copying, idempotently
// no-ops on) an offspring-in-progress buffer (spec.md 4.D, 9).
func (o *Organism) Alloc() {
	if o.repl.copying {
		return
	}
	o.repl.copying = true
	o.repl.copied = o.repl.copied[:0]
}

// IsCopying reports whether h-alloc has been executed without a
// subsequent successful or failed h-divide since.
func (o *Organism) IsCopying() bool {
	return o.repl.copying
}

// AppendCopy implements the storage side of h-copy: appends s to the
// offspring-in-progress buffer. A no-op (silent fault) if h-alloc has not
// been executed.
func (o *Organism) AppendCopy(s alphabet.Symbol) {
	if !o.repl.copying {
		return
	}
	o.repl.copied = append(o.repl.copied, s)
}

// CopiedLen returns the number of symbols copied into the
// offspring-in-progress buffer so far.
func (o *Organism) CopiedLen() int {
	return len(o.repl.copied)
}

// RecentCopiedTemplate returns the last n symbols copied into the
// offspring-in-progress buffer, used by if-label to compare against the
// complement of a template (spec.md 4.D). If fewer than n symbols have
// been copied, returns all of them.
func (o *Organism) RecentCopiedTemplate(n int) genome.Template {
	if n <= 0 {
		return nil
	}
	c := o.repl.copied
	if n > len(c) {
		n = len(c)
	}
	start := len(c) - n
	t := make(genome.Template, n)
	copy(t, c[start:])
	return t
}

// Divide implements h-divide's finalization: it consumes the
// offspring-in-progress buffer, applies division-time mutation, and
// returns the resulting child genome. ok is false when no child is
// produced — either no alloc ever occurred, zero symbols were copied, or
// mutation emptied the genome — all silent faults per spec.md 7. The
// replication state is always cleared by this call, successful or not;
// a failed divide cannot be "retried" without a fresh h-alloc/h-copy
// sequence. On success the caller (the scheduler) must place the child
// via the world and then call FinishDivide to reset the parent.
func (o *Organism) Divide(rates mutate.Rates, rng *rand.Rand) (genome.Genome, bool) {
	if !o.repl.copying {
		return nil, false
	}
	copied := o.repl.copied
	o.repl.copying = false
	o.repl.copied = nil
	if len(copied) == 0 {
		return nil, false
	}
	child := make(genome.Genome, len(copied))
	copy(child, copied)
	return mutate.ApplyDivision(rng, rates, child)
}

// FinishDivide resets the parent's CPU state (heads, stacks, registers,
// I/O buffers) and task flags after a successful divide, while
// preserving merit exactly as accumulated (spec.md 4.C, 4.E, 9): reward
// for tasks performed by the lineage carries over across generations,
// but already-earned flags are never re-awarded, so only newly-earned
// flags after this reset can multiply merit again.
func (o *Organism) FinishDivide() {
	o.Cpu.Reset()
	o.Flags = 0
}

// TaskMask returns the task flag vector in the snapshot bit layout
// (spec.md 6).
func (o *Organism) TaskMask() uint16 {
	return o.Flags.Mask()
}

// SetPendingChild records a just-finalized child genome for the
// scheduler to place into the world. Called by the interp package's
// h-divide handler after a successful Divide.
func (o *Organism) SetPendingChild(g genome.Genome) {
	o.pendingChild = g
	o.hasPendingChild = true
}

// TakePendingChild returns and clears the pending child genome, if any.
// The scheduler calls this after every tick of an organism, places the
// returned genome into the world on ok, and then calls FinishDivide to
// reset the parent.
func (o *Organism) TakePendingChild() (genome.Genome, bool) {
	g, ok := o.pendingChild, o.hasPendingChild
	o.pendingChild = nil
	o.hasPendingChild = false
	return g, ok
}
