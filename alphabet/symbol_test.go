package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		sym, err := Parse(r)
		require.NoError(t, err)
		assert.Equal(t, r, sym.Char())
	}
}

func TestParseBadSymbol(t *testing.T) {
	_, err := Parse('A')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadSymbol)
}

func TestParseGenomeRoundTrip(t *testing.T) {
	// S1 from spec.md: parse "abc" -> [nop-A, nop-B, nop-C].
	syms, err := ParseGenome("abc")
	require.NoError(t, err)
	require.Equal(t, []Symbol{NopA, NopB, NopC}, syms)
	assert.Equal(t, "abc", Render(syms))
}

func TestParseGenomeBadSymbol(t *testing.T) {
	_, err := ParseGenome("abA")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadSymbol)
}

func TestNopComplementCycle(t *testing.T) {
	assert.Equal(t, NopB, NopA.Complement())
	assert.Equal(t, NopC, NopB.Complement())
	assert.Equal(t, NopA, NopC.Complement())
}

func TestComplementPanicsOnNonNop(t *testing.T) {
	nonNop := Symbol(10)
	assert.Panics(t, func() { nonNop.Complement() })
}

func TestRegisterMapping(t *testing.T) {
	assert.Equal(t, AX, NopA.Register())
	assert.Equal(t, BX, NopB.Register())
	assert.Equal(t, CX, NopC.Register())
	assert.Equal(t, BX, NopA.ComplementRegister())
}
