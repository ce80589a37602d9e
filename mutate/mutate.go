// Package mutate implements the copy-time substitution and division-time
// insertion/deletion mutation pipeline (spec.md 4.F). Randomness is always
// supplied by the caller (the world's own *rand.Rand, per spec.md 5's
// PRNG-ownership rule) rather than drawn from a package-global source, so
// the entire trajectory stays reproducible from a single world seed — the
// same discipline the teacher applies by keeping math/rand calls local to
// grid2d.PutRandomly and cpu1.Bytecode.Mutate rather than behind a global.
package mutate

import (
	"math/rand"

	"github.com/maccam912/avida-rs/alphabet"
	"github.com/maccam912/avida-rs/genome"
	"github.com/maccam912/avida-rs/logging"
)

// Logger is the package-level logger, Null() by default; swap it for
// Real() to trace division-time mutations, the way cpu1.Bytecode.Mutate
// traces its own substitutions in the teacher.
var Logger logging.Logger = logging.Null()

// Rates holds the three runtime-adjustable mutation probabilities.
type Rates struct {
	PCopy float64 // per-symbol substitution probability during h-copy
	PIns  float64 // per-divide insertion probability
	PDel  float64 // per-divide deletion probability
}

// DefaultRates returns the defaults named in spec.md 4.F.
func DefaultRates() Rates {
	return Rates{PCopy: 0.0025, PIns: 0.05, PDel: 0.05}
}

// MaybeSubstituteCopy implements the h-copy mutation: with probability
// PCopy, sym is replaced with a uniformly-random symbol from the
// 26-element alphabet instead of being copied faithfully.
func (r Rates) MaybeSubstituteCopy(rng *rand.Rand, sym alphabet.Symbol) alphabet.Symbol {
	if rng.Float64() < r.PCopy {
		return alphabet.Symbol(rng.Intn(alphabet.NumSymbols))
	}
	return sym
}

// ApplyDivision applies, independently, the division-time insertion and
// deletion mutations to a finalized child genome. Each is applied at most
// once. If the deletion would empty the genome, ok is false and the
// divide must be aborted (spec.md 4.F); otherwise ok is true and child is
// the (possibly unmodified) mutated genome.
func ApplyDivision(rng *rand.Rand, r Rates, child genome.Genome) (mutated genome.Genome, ok bool) {
	child = child.Clone()

	if rng.Float64() < r.PIns {
		pos := 0
		if n := len(child); n > 0 {
			pos = rng.Intn(n + 1)
		}
		sym := alphabet.Symbol(rng.Intn(alphabet.NumSymbols))
		Logger.Printf("ApplyDivision: inserting %v at %d", sym, pos)
		child = insertAt(child, pos, sym)
	}

	if rng.Float64() < r.PDel {
		if len(child) == 0 {
			Logger.Printf("ApplyDivision: deletion emptied genome, aborting divide")
			return child, false
		}
		pos := rng.Intn(len(child))
		Logger.Printf("ApplyDivision: deleting symbol at %d", pos)
		child = deleteAt(child, pos)
	}

	if len(child) == 0 {
		Logger.Printf("ApplyDivision: genome empty after mutation, aborting divide")
		return child, false
	}
	return child, true
}

func insertAt(g genome.Genome, pos int, sym alphabet.Symbol) genome.Genome {
	out := make(genome.Genome, 0, len(g)+1)
	out = append(out, g[:pos]...)
	out = append(out, sym)
	out = append(out, g[pos:]...)
	return out
}

func deleteAt(g genome.Genome, pos int) genome.Genome {
	out := make(genome.Genome, 0, len(g)-1)
	out = append(out, g[:pos]...)
	out = append(out, g[pos+1:]...)
	return out
}
