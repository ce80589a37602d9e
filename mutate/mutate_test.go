package mutate

import (
	"math/rand"
	"testing"

	"github.com/maccam912/avida-rs/alphabet"
	"github.com/maccam912/avida-rs/genome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybeSubstituteCopyZeroRate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := Rates{PCopy: 0}
	for i := 0; i < 100; i++ {
		got := r.MaybeSubstituteCopy(rng, alphabet.NopA)
		assert.Equal(t, alphabet.NopA, got)
	}
}

func TestMaybeSubstituteCopyAlwaysRate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := Rates{PCopy: 1}
	substituted := false
	for i := 0; i < 20; i++ {
		if r.MaybeSubstituteCopy(rng, alphabet.NopA) != alphabet.NopA {
			substituted = true
		}
	}
	assert.True(t, substituted)
}

func TestApplyDivisionZeroRatesUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g, err := genome.Parse("abc")
	require.NoError(t, err)
	out, ok := ApplyDivision(rng, Rates{}, g)
	require.True(t, ok)
	assert.Equal(t, g.String(), out.String())
}

func TestApplyDivisionDeletionCanEmptyAndAbort(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g, err := genome.Parse("a")
	require.NoError(t, err)
	_, ok := ApplyDivision(rng, Rates{PDel: 1}, g)
	assert.False(t, ok, "deleting the only symbol should abort the divide")
}

func TestApplyDivisionInsertionGrowsGenome(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g, err := genome.Parse("abc")
	require.NoError(t, err)
	out, ok := ApplyDivision(rng, Rates{PIns: 1}, g)
	require.True(t, ok)
	assert.Equal(t, 4, out.Len())
}
