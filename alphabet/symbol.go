// Package alphabet defines the 26-symbol instruction alphabet that every
// organism's genome is written in, and the nop-complement relation used
// throughout the interpreter for template matching and nop-modification.
package alphabet

import (
	"github.com/pkg/errors"
)

// Symbol is one of the 26 letters a..z that a genome is composed of.
// It is represented as a small integer 0..25 so it can index directly
// into the instruction optable.
type Symbol byte

// NumSymbols is the size of the instruction alphabet.
const NumSymbols = 26

// The three nop symbols double as register designators: nop-A designates
// AX, nop-B designates BX, nop-C designates CX.
const (
	NopA Symbol = 0
	NopB Symbol = 1
	NopC Symbol = 2
)

// ErrBadSymbol is returned when parsing a character outside a..z.
var ErrBadSymbol = errors.New("avidacore: character outside a..z")

// Parse converts a single character into a Symbol. Characters outside
// a..z yield ErrBadSymbol, wrapped with the offending rune for context.
func Parse(r rune) (Symbol, error) {
	if r < 'a' || r > 'z' {
		return 0, errors.Wrapf(ErrBadSymbol, "rune %q", r)
	}
	return Symbol(r - 'a'), nil
}

// ParseGenome converts a string into a slice of Symbols. On the first
// invalid character, returns ErrBadSymbol annotated with its position.
func ParseGenome(s string) ([]Symbol, error) {
	syms := make([]Symbol, 0, len(s))
	for i, r := range s {
		sym, err := Parse(r)
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
		syms = append(syms, sym)
	}
	return syms, nil
}

// Char renders a Symbol back to its a..z character.
func (s Symbol) Char() rune {
	return rune('a' + int(s)%NumSymbols)
}

// String renders a Symbol as a single-character string, satisfying fmt.Stringer.
func (s Symbol) String() string {
	return string(s.Char())
}

// Render converts a slice of Symbols back into a string. Render(Parse(s))
// is the identity for any well-formed s.
func Render(syms []Symbol) string {
	b := make([]byte, len(syms))
	for i, s := range syms {
		b[i] = byte(s.Char())
	}
	return string(b)
}

// IsNop reports whether s is one of the three nop symbols (a, b, c).
func (s Symbol) IsNop() bool {
	return s == NopA || s == NopB || s == NopC
}

// Complement returns the nop-complement of a nop symbol: a->b, b->c, c->a.
// Complement is undefined (and panics) for non-nop symbols; callers must
// check IsNop first, as the interpreter always does before calling this.
func (s Symbol) Complement() Symbol {
	switch s {
	case NopA:
		return NopB
	case NopB:
		return NopC
	case NopC:
		return NopA
	default:
		panic("avidacore: Complement called on a non-nop symbol")
	}
}

// Register identifies one of the three CPU registers. Nop symbols map
// directly onto Register values since their numeric encoding already
// matches (a->AX, b->BX, c->CX).
type Register byte

const (
	AX Register = 0
	BX Register = 1
	CX Register = 2
)

// Register returns the register designated by a nop symbol. Panics if s
// is not a nop, mirroring Complement's contract.
func (s Symbol) Register() Register {
	if !s.IsNop() {
		panic("avidacore: Register called on a non-nop symbol")
	}
	return Register(s)
}

// ComplementRegister returns the register designated by the complement of
// a nop symbol, a shortcut used by the interpreter's template-driven
// comparisons (if-n-equ, if-less).
func (s Symbol) ComplementRegister() Register {
	return s.Complement().Register()
}

func (r Register) String() string {
	switch r {
	case AX:
		return "AX"
	case BX:
		return "BX"
	case CX:
		return "CX"
	default:
		return "?"
	}
}
