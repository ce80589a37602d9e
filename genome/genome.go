// Package genome represents an organism's circular sequence of symbols and
// the template-matching operations the interpreter needs to perform on it
// (reading a nop-template, searching for its complement). The genome package
// has no notion of a CPU or an organism; it is pure sequence manipulation,
// the way the teacher's cpu1.Bytecode is a plain []byte with no knowledge of
// the Cpu or Organism that execute it.
package genome

import (
	"github.com/maccam912/avida-rs/alphabet"
	"github.com/pkg/errors"
)

// Genome is a non-empty, circular sequence of symbols.
type Genome []alphabet.Symbol

// ErrEmpty is returned by operations that require a non-empty genome.
var ErrEmpty = errors.New("avidacore: genome is empty")

// Parse parses a string of a..z characters into a Genome.
func Parse(s string) (Genome, error) {
	syms, err := alphabet.ParseGenome(s)
	if err != nil {
		return nil, err
	}
	if len(syms) == 0 {
		return nil, ErrEmpty
	}
	return Genome(syms), nil
}

// String renders the Genome back to its a..z form.
func (g Genome) String() string {
	return alphabet.Render([]alphabet.Symbol(g))
}

// Len returns the genome's current length.
func (g Genome) Len() int {
	return len(g)
}

// wrap reduces i into [0, len(g)) for the genome's current length. Panics
// on an empty genome since every invariant in this system requires
// length >= 1 at all times (spec.md Invariants).
func (g Genome) wrap(i int) int {
	n := len(g)
	if n == 0 {
		panic("avidacore: wrap called on an empty genome")
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// At returns the symbol at position i, taken modulo the genome's length.
func (g Genome) At(i int) alphabet.Symbol {
	return g[g.wrap(i)]
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// Template is a contiguous run of nop symbols read starting at some
// position, used as a label for search and conditional flow.
type Template []alphabet.Symbol

// Complement returns the nop-complement of every symbol in the template, in
// the same order. An empty template's complement is itself empty.
func (t Template) Complement() Template {
	c := make(Template, len(t))
	for i, s := range t {
		c[i] = s.Complement()
	}
	return c
}

// Equal reports whether two templates contain the same symbols in the same
// order.
func (t Template) Equal(o Template) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

// ReadTemplate reads the maximal run of nop symbols starting at position
// start (inclusive), stopping at the first non-nop symbol or once the scan
// has covered the entire genome (a genome that is wholly nops has a template
// equal to the whole genome, read once). Returns the template and the
// number of positions consumed, which may be zero if start is not a nop.
func ReadTemplate(g Genome, start int) (Template, int) {
	n := g.Len()
	var t Template
	for i := 0; i < n; i++ {
		sym := g.At(start + i)
		if !sym.IsNop() {
			break
		}
		t = append(t, sym)
	}
	return t, len(t)
}

// FindComplement searches forward from searchStart (inclusive) for the
// first occurrence of template's complement, scanning at most one full
// genome revolution. Returns the distance from searchStart to the match
// (0 if it starts exactly at searchStart), the length of the matched run
// and true on success. On failure, or if template is empty, returns
// (0, 0, false).
func FindComplement(g Genome, template Template, searchStart int) (distance int, length int, ok bool) {
	if len(template) == 0 {
		return 0, 0, false
	}
	want := template.Complement()
	n := g.Len()
	for d := 0; d < n; d++ {
		pos := searchStart + d
		got, l := ReadTemplate(g, pos)
		if l >= len(want) && Template(got[:len(want)]).Equal(want) {
			return d, len(want), true
		}
	}
	return 0, 0, false
}
