// Package interp implements the 26-symbol interpreter described in
// spec.md 4.D: nop-modifier resolution, template-driven control flow, the
// replication protocol, and the arithmetic/stack/IO instructions. It
// implements organism.Driver so the organism package never has to import
// it (the same Driver indirection the teacher uses between org.Organism
// and cpu1.Cpu).
//
// The instruction set is closed and small (spec.md's "Polymorphism over
// instruction kinds" redesign flag), so dispatch is a single switch over
// a tagged enumeration rather than per-instruction objects.
package interp

import "github.com/maccam912/avida-rs/alphabet"

// Instr identifies one of the 23 non-nop instructions. Values are in the
// order the instructions are listed in spec.md 4.D; letterTable below
// assigns each one its letter.
type Instr int

const (
	IfNEqu Instr = iota
	IfLess
	IfLabel
	Pop
	Push
	SwapStk
	Swap
	ShiftR
	ShiftL
	Inc
	Dec
	Add
	Sub
	Nand
	IO
	HAlloc
	HSearch
	HCopy
	HDivide
	MovHead
	JmpHead
	GetHead
	SetFlow
)

// letterTable is the fixed mapping from genome symbol to instruction.
// spec.md 6 pins h-alloc=r, h-search=u, h-copy=t, h-divide=s; the
// remaining 19 non-nop letters (d,e,f,g,h,i,j,k,l,m,n,o,p,q,v,w,x,y,z)
// are assigned in the order the instructions are listed in spec.md 4.D.
var letterTable = map[alphabet.Symbol]Instr{
	'd' - 'a': IfNEqu,
	'e' - 'a': IfLess,
	'f' - 'a': IfLabel,
	'g' - 'a': Pop,
	'h' - 'a': Push,
	'i' - 'a': SwapStk,
	'j' - 'a': Swap,
	'k' - 'a': ShiftR,
	'l' - 'a': ShiftL,
	'm' - 'a': Inc,
	'n' - 'a': Dec,
	'o' - 'a': Add,
	'p' - 'a': Sub,
	'q' - 'a': Nand,
	'v' - 'a': IO,
	'r' - 'a': HAlloc,
	'u' - 'a': HSearch,
	't' - 'a': HCopy,
	's' - 'a': HDivide,
	'w' - 'a': MovHead,
	'x' - 'a': JmpHead,
	'y' - 'a': GetHead,
	'z' - 'a': SetFlow,
}

// Lookup returns the instruction a genome symbol designates, and false if
// sym is one of the three nop symbols (which are never dispatched as
// instructions in their own right, only as modifiers and template
// material).
func Lookup(sym alphabet.Symbol) (Instr, bool) {
	if sym.IsNop() {
		return 0, false
	}
	i, ok := letterTable[sym]
	return i, ok
}
