// Package cpu implements the per-organism virtual CPU: the register file,
// the two bounded stacks, the four heads, and the I/O buffers (spec.md
// 4.B). The CPU has no knowledge of the genome it will be used to
// interpret; it is a passive record operated on by the interp package,
// the same separation of concerns the teacher draws between cpu1.Cpu
// (registers/Ip) and the org.Organism/genome it drives.
package cpu

import "github.com/maccam912/avida-rs/alphabet"

// StackDepth is the maximum depth of either stack (spec.md 4.B).
const StackDepth = 10

// InputCapacity is the size of the recent-input ring the task detector
// reads from.
const InputCapacity = 3

// OutputCapacity bounds how many recent outputs are retained for
// inspection. The task detector only ever needs the most recent value,
// but the data model calls for "a bounded log of recent outputs", which
// is useful for the control surface's inspect() call.
const OutputCapacity = 16

// Stack is a LIFO stack of 32-bit signed integers bounded at StackDepth.
// Push onto a full stack drops the oldest (bottommost) element; pop from
// an empty stack yields 0 (spec.md 4.B and scenario S6).
type Stack struct {
	v []int32
}

// Push appends x to the top of the stack, dropping the bottom element if
// the stack is already at StackDepth.
func (s *Stack) Push(x int32) {
	s.v = append(s.v, x)
	if len(s.v) > StackDepth {
		s.v = s.v[1:]
	}
}

// Pop removes and returns the top of the stack, or 0 if the stack is empty.
func (s *Stack) Pop() int32 {
	if len(s.v) == 0 {
		return 0
	}
	n := len(s.v) - 1
	x := s.v[n]
	s.v = s.v[:n]
	return x
}

// Len returns the current depth of the stack.
func (s *Stack) Len() int {
	return len(s.v)
}

// Values returns the stack contents, bottom first, for inspection.
func (s *Stack) Values() []int32 {
	out := make([]int32, len(s.v))
	copy(out, s.v)
	return out
}

func (s *Stack) reset() {
	s.v = nil
}

// Heads holds the four genome-relative indices the interpreter navigates
// with. Values are not normalized eagerly; callers take them modulo the
// current genome length when dereferencing, since the CPU itself has no
// notion of genome length.
type Heads struct {
	IP, Read, Write, Flow int
}

// Cpu is the complete per-organism virtual machine state: three 32-bit
// registers, two bounded stacks (one active), four heads, and the
// recent-input / recent-output I/O buffers.
type Cpu struct {
	AX, BX, CX int32

	stacks      [2]Stack
	activeStack int
	Heads       Heads
	inputs      []int32 // most recent first, capped at InputCapacity
	outputs     []int32 // most recent first, capped at OutputCapacity
}

// Reset restores the CPU to its post-birth state: heads to zero, stacks
// empty, registers zero, I/O buffers cleared. This is invoked on an
// organism's CPU after h-divide finalizes a child (spec.md 4.C); a fresh
// organism's zero-value Cpu is already in this state.
func (c *Cpu) Reset() {
	c.AX, c.BX, c.CX = 0, 0, 0
	c.stacks[0].reset()
	c.stacks[1].reset()
	c.activeStack = 0
	c.Heads = Heads{}
	c.inputs = nil
	c.outputs = nil
}

// Register returns the current value of the named register.
func (c *Cpu) Register(r alphabet.Register) int32 {
	switch r {
	case alphabet.AX:
		return c.AX
	case alphabet.BX:
		return c.BX
	case alphabet.CX:
		return c.CX
	default:
		panic("avidacore: unknown register")
	}
}

// SetRegister stores v into the named register.
func (c *Cpu) SetRegister(r alphabet.Register, v int32) {
	switch r {
	case alphabet.AX:
		c.AX = v
	case alphabet.BX:
		c.BX = v
	case alphabet.CX:
		c.CX = v
	default:
		panic("avidacore: unknown register")
	}
}

// ActiveStack returns a pointer to the currently active stack.
func (c *Cpu) ActiveStack() *Stack {
	return &c.stacks[c.activeStack]
}

// ToggleStack switches which of the two stacks is active.
func (c *Cpu) ToggleStack() {
	c.activeStack = 1 - c.activeStack
}

// Stacks exposes both stacks, active first, for inspection.
func (c *Cpu) Stacks() (active, inactive *Stack) {
	return &c.stacks[c.activeStack], &c.stacks[1-c.activeStack]
}

// PushInput records a freshly-read input value into the recent-input
// ring, most recent first, capped at InputCapacity.
func (c *Cpu) PushInput(v int32) {
	c.inputs = append([]int32{v}, c.inputs...)
	if len(c.inputs) > InputCapacity {
		c.inputs = c.inputs[:InputCapacity]
	}
}

// RecentInputs returns the recent-input ring, most recent first. The
// length is between 0 and InputCapacity depending on how many inputs
// have been read so far.
func (c *Cpu) RecentInputs() []int32 {
	out := make([]int32, len(c.inputs))
	copy(out, c.inputs)
	return out
}

// PushOutput records an output value into the bounded output log.
func (c *Cpu) PushOutput(v int32) {
	c.outputs = append([]int32{v}, c.outputs...)
	if len(c.outputs) > OutputCapacity {
		c.outputs = c.outputs[:OutputCapacity]
	}
}

// RecentOutputs returns the output log, most recent first.
func (c *Cpu) RecentOutputs() []int32 {
	out := make([]int32, len(c.outputs))
	copy(out, c.outputs)
	return out
}
