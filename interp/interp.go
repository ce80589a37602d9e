package interp

import (
	"github.com/maccam912/avida-rs/alphabet"
	"github.com/maccam912/avida-rs/cpu"
	"github.com/maccam912/avida-rs/genome"
	"github.com/maccam912/avida-rs/logging"
	"github.com/maccam912/avida-rs/organism"
)

// Logger is the package-level logger, Null() by default; swap it for
// Real() to trace replication events (h-alloc/h-copy/h-divide), the
// same hot-path decision points cpu1.Cpu.Step traces in the teacher.
var Logger logging.Logger = logging.Null()

// Interp is the stateless organism.Driver that executes one instruction
// per Tick. It carries no per-organism state of its own; every organism
// in the world shares a single Interp value.
type Interp struct{}

// New returns a ready-to-use Interp. It exists purely for symmetry with
// the rest of the package's constructors; Interp has no fields to set.
func New() *Interp {
	return &Interp{}
}

// Step implements organism.Driver: it fetches the symbol at the
// organism's IP, resolves any nop-modifier, executes the instruction's
// effect, and advances the heads according to spec.md 4.D.
func (in *Interp) Step(o *organism.Organism, ctx *organism.Context) error {
	g := o.Genome
	ip := o.Cpu.Heads.IP
	sym := g.At(ip)

	if sym.IsNop() {
		o.Cpu.Heads.IP = ip + 1
		return nil
	}

	instr, ok := Lookup(sym)
	if !ok {
		// Every non-nop letter is assigned an instruction, so this is
		// unreachable for any genome parsed through alphabet.ParseGenome.
		o.Cpu.Heads.IP = ip + 1
		return nil
	}

	execInstr(o, ctx, instr, ip)
	return nil
}

// modifier peeks at the genome position right after an instruction and,
// if it holds a nop, reports the register it designates and that one
// symbol was consumed.
func modifier(g genome.Genome, pos int, def alphabet.Register) (alphabet.Register, int) {
	s := g.At(pos)
	if !s.IsNop() {
		return def, 0
	}
	return s.Register(), 1
}

// headID names one of the three heads a mov-head/jmp-head/get-head
// nop-modifier can select instead of IP (spec.md 4.D). Flow is never a
// selectable target for these instructions; it is always the implicit
// source (mov-head) or reference point they operate against.
type headID int

const (
	headIP headID = iota
	headRead
	headWrite
)

func modifierHead(g genome.Genome, pos int) (headID, int) {
	s := g.At(pos)
	if !s.IsNop() {
		return headIP, 0
	}
	switch s {
	case alphabet.NopA:
		return headIP, 1
	case alphabet.NopB:
		return headRead, 1
	default:
		return headWrite, 1
	}
}

func getHead(h *cpu.Heads, id headID) int {
	switch id {
	case headRead:
		return h.Read
	case headWrite:
		return h.Write
	default:
		return h.IP
	}
}

func setHead(h *cpu.Heads, id headID, v int) {
	switch id {
	case headRead:
		h.Read = v
	case headWrite:
		h.Write = v
	default:
		h.IP = v
	}
}

// wrapPos reduces i into [0, g.Len()) the same way genome.Genome.At does
// internally, for heads (Flow in particular) that must be stored already
// normalized rather than dereferenced lazily.
func wrapPos(g genome.Genome, i int) int {
	n := g.Len()
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func execInstr(o *organism.Organism, ctx *organism.Context, instr Instr, ip int) {
	c := &o.Cpu
	g := o.Genome

	switch instr {
	case IfNEqu, IfLess:
		tmpl, tlen := genome.ReadTemplate(g, ip+1)
		cmpReg := alphabet.CX
		if tlen > 0 {
			cmpReg = tmpl[0].ComplementRegister()
		}
		cmp := c.Register(cmpReg)
		var predicate bool
		if instr == IfNEqu {
			predicate = c.BX != cmp
		} else {
			predicate = c.BX < cmp
		}
		next := ip + 1 + tlen
		if !predicate {
			next++
		}
		c.Heads.IP = next

	case IfLabel:
		tmpl, tlen := genome.ReadTemplate(g, ip+1)
		predicate := false
		if tlen > 0 {
			want := tmpl.Complement()
			got := o.RecentCopiedTemplate(tlen)
			predicate = got.Equal(want)
		}
		next := ip + 1
		if !predicate {
			next++
		}
		c.Heads.IP = next

	case Pop:
		c.BX = c.ActiveStack().Pop()
		c.Heads.IP = ip + 1

	case Push:
		c.ActiveStack().Push(c.BX)
		c.Heads.IP = ip + 1

	case SwapStk:
		c.ToggleStack()
		c.Heads.IP = ip + 1

	case Swap:
		reg, consumed := modifier(g, ip+1, alphabet.CX)
		v := c.Register(reg)
		c.SetRegister(reg, c.BX)
		c.BX = v
		c.Heads.IP = ip + 1 + consumed

	case ShiftR:
		reg, consumed := modifier(g, ip+1, alphabet.BX)
		c.SetRegister(reg, c.Register(reg)>>1)
		c.Heads.IP = ip + 1 + consumed

	case ShiftL:
		reg, consumed := modifier(g, ip+1, alphabet.BX)
		c.SetRegister(reg, int32(uint32(c.Register(reg))<<1))
		c.Heads.IP = ip + 1 + consumed

	case Inc:
		reg, consumed := modifier(g, ip+1, alphabet.BX)
		c.SetRegister(reg, c.Register(reg)+1)
		c.Heads.IP = ip + 1 + consumed

	case Dec:
		reg, consumed := modifier(g, ip+1, alphabet.BX)
		c.SetRegister(reg, c.Register(reg)-1)
		c.Heads.IP = ip + 1 + consumed

	case Add:
		c.BX = c.BX + c.CX
		c.Heads.IP = ip + 1

	case Sub:
		c.BX = c.BX - c.CX
		c.Heads.IP = ip + 1

	case Nand:
		c.BX = ^(c.BX & c.CX)
		c.Heads.IP = ip + 1

	case IO:
		o.Output(c.BX)
		c.BX = o.NextInput()
		c.Heads.IP = ip + 1

	case HAlloc:
		o.Alloc()
		Logger.Printf("h-alloc: ip=%d", ip)
		c.Heads.IP = ip + 1

	case HSearch:
		tmpl, tlen := genome.ReadTemplate(g, ip+1)
		if tlen == 0 {
			c.BX, c.CX = 0, 0
			c.Heads.Flow = wrapPos(g, ip+1)
			c.Heads.IP = ip + 1
			return
		}
		d, l, ok := genome.FindComplement(g, tmpl, ip+1)
		if !ok {
			c.BX, c.CX = 0, 0
			c.Heads.Flow = wrapPos(g, ip+1)
		} else {
			c.BX = int32(d + 1)
			c.CX = int32(l)
			c.Heads.Flow = wrapPos(g, ip+1+d+l)
		}
		c.Heads.IP = ip + 1

	case HCopy:
		sym := g.At(c.Heads.Read)
		mutated := ctx.Rates.MaybeSubstituteCopy(ctx.Rng, sym)
		if mutated != sym {
			Logger.Printf("h-copy: substituted %v for %v at read=%d", mutated, sym, c.Heads.Read)
		}
		o.AppendCopy(mutated)
		c.Heads.Read = c.Heads.Read + 1
		c.Heads.IP = ip + 1

	case HDivide:
		child, ok := o.Divide(ctx.Rates, ctx.Rng)
		if ok {
			Logger.Printf("h-divide: parent len=%d child len=%d", g.Len(), child.Len())
			o.SetPendingChild(child)
		}
		c.Heads.IP = ip + 1

	case MovHead:
		id, consumed := modifierHead(g, ip+1)
		if id == headIP {
			c.Heads.IP = c.Heads.Flow
			return
		}
		setHead(&c.Heads, id, c.Heads.Flow)
		c.Heads.IP = ip + 1 + consumed

	case JmpHead:
		id, consumed := modifierHead(g, ip+1)
		delta := int(c.CX)
		if id == headIP {
			c.Heads.IP = ip + 1 + consumed + delta
		} else {
			setHead(&c.Heads, id, getHead(&c.Heads, id)+delta)
			c.Heads.IP = ip + 1 + consumed
		}

	case GetHead:
		id, consumed := modifierHead(g, ip+1)
		c.CX = int32(getHead(&c.Heads, id))
		c.Heads.IP = ip + 1 + consumed

	case SetFlow:
		reg, consumed := modifier(g, ip+1, alphabet.CX)
		c.Heads.Flow = wrapPos(g, int(c.Register(reg)))
		c.Heads.IP = ip + 1 + consumed
	}
}
