package engine

import (
	"testing"

	"github.com/maccam912/avida-rs/alphabet"
	"github.com/maccam912/avida-rs/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replicator is a small, hand-traced replicating genome built from the
// interp letter table (r=h-alloc, t=h-copy, s=h-divide): it allocates,
// copies its first 2 symbols, and divides, producing an "rt" child. The
// parent repeats this forever, since the post-divide reset returns its
// IP and Read head to 0.
const replicator = "rtts"

func TestResetRejectsBadSymbol(t *testing.T) {
	e := New()
	err := e.Reset("abcA", 1)
	assert.ErrorIs(t, err, alphabet.ErrBadSymbol)
}

func TestResetPlacesAncestorAtCenter(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	assert.Equal(t, 1, e.World.Population())
	assert.NotNil(t, e.World.At(centerX, centerY))
}

func TestStepGrowsPopulationWithZeroMutation(t *testing.T) {
	// S3-style scenario, built on a small hand-traced replicator rather
	// than the canonical 50-symbol ancestor, so the replication trace is
	// one this test suite can verify by inspection rather than by
	// execution.
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	require.NoError(t, e.SetMutationRates(0, 0, 0))
	e.Step(50)
	assert.Greater(t, e.World.Population(), 1)
}

func TestStepDeterministic(t *testing.T) {
	e1, e2 := New(), New()
	require.NoError(t, e1.Reset(replicator, 42))
	require.NoError(t, e2.Reset(replicator, 42))

	e1.Step(20)
	e2.Step(20)

	assert.Equal(t, e1.GetSnapshot(), e2.GetSnapshot())
}

func TestGetSnapshotLength(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	assert.Len(t, e.GetSnapshot(), world.Cells)
}

func TestInspectOutOfRangeIsBadParam(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	_, err := e.Inspect(-1, 0)
	assert.ErrorIs(t, err, ErrBadParam)
	_, err = e.Inspect(0, world.Height)
	assert.ErrorIs(t, err, ErrBadParam)
}

func TestInspectEmptyCellReturnsNilNoError(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	detail, err := e.Inspect(0, 0)
	assert.NoError(t, err)
	assert.Nil(t, detail)
}

func TestSetMutationRatesRejectsOutOfRange(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	assert.ErrorIs(t, e.SetMutationRates(-0.1, 0, 0), ErrBadParam)
	assert.ErrorIs(t, e.SetMutationRates(0, 1.5, 0), ErrBadParam)
	assert.NoError(t, e.SetMutationRates(0.01, 0.05, 0.05))
}

func TestSetCyclesPerOrganismRejectsNonPositive(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	assert.ErrorIs(t, e.SetCyclesPerOrganism(0), ErrBadParam)
	assert.NoError(t, e.SetCyclesPerOrganism(10))
}

func TestGetStatsReflectsPopulation(t *testing.T) {
	e := New()
	require.NoError(t, e.Reset(replicator, 1))
	stats := e.GetStats()
	assert.Equal(t, 1, stats.Population)
	assert.Equal(t, float64(len(replicator)), stats.MeanGenomeLength)
}
