package organism

import (
	"math/rand"
	"testing"

	"github.com/maccam912/avida-rs/alphabet"
	"github.com/maccam912/avida-rs/genome"
	"github.com/maccam912/avida-rs/mutate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrganism(t *testing.T) *Organism {
	t.Helper()
	g, err := genome.Parse("abc")
	require.NoError(t, err)
	return New(g, 0, 1, nil)
}

func TestTickWithoutDriverReturnsError(t *testing.T) {
	o := newTestOrganism(t)
	err := o.Tick(&Context{Rng: rand.New(rand.NewSource(1)), Rates: mutate.DefaultRates()})
	assert.ErrorIs(t, err, ErrNoDriver)
}

func TestAllocIsIdempotent(t *testing.T) {
	o := newTestOrganism(t)
	o.Alloc()
	o.AppendCopy(alphabet.NopA)
	o.Alloc() // second alloc mid-cycle should be a no-op, not clear the buffer
	assert.Equal(t, 1, o.CopiedLen())
}

func TestAppendCopyWithoutAllocIsSilentNoop(t *testing.T) {
	o := newTestOrganism(t)
	o.AppendCopy(alphabet.NopA)
	assert.Equal(t, 0, o.CopiedLen())
}

func TestDivideWithoutAllocFails(t *testing.T) {
	o := newTestOrganism(t)
	rng := rand.New(rand.NewSource(1))
	_, ok := o.Divide(mutate.Rates{}, rng)
	assert.False(t, ok)
}

func TestDivideWithEmptyCopyBufferFails(t *testing.T) {
	o := newTestOrganism(t)
	o.Alloc()
	rng := rand.New(rand.NewSource(1))
	_, ok := o.Divide(mutate.Rates{}, rng)
	assert.False(t, ok)
}

func TestDivideProducesChildMatchingCopiedSymbols(t *testing.T) {
	o := newTestOrganism(t)
	o.Alloc()
	o.AppendCopy(alphabet.NopA)
	o.AppendCopy(alphabet.NopB)
	rng := rand.New(rand.NewSource(1))
	child, ok := o.Divide(mutate.Rates{}, rng)
	require.True(t, ok)
	assert.Equal(t, "ab", child.String())
	assert.False(t, o.IsCopying(), "replication state should clear after divide")
}

func TestFinishDividePreservesMeritResetsEverythingElse(t *testing.T) {
	o := newTestOrganism(t)
	o.Merit = 4.0
	o.Flags.Detect(^int32(1), []int32{1})
	o.Cpu.Heads.IP = 5
	o.Cpu.SetRegister(alphabet.AX, 9)

	o.FinishDivide()

	assert.Equal(t, 4.0, o.Merit, "merit carries across the reset")
	assert.Equal(t, uint16(0), o.TaskMask(), "task flags reset")
	assert.Equal(t, int32(0), o.Cpu.Register(alphabet.AX))
	assert.Equal(t, 0, o.Cpu.Heads.IP)
}

func TestOutputAppliesMeritBonusOnce(t *testing.T) {
	o := newTestOrganism(t)
	o.NextInput()
	i1 := o.Cpu.RecentInputs()[0]
	v := ^i1

	o.Output(v)
	assert.Equal(t, 2.0, o.Merit)

	o.Output(v)
	assert.Equal(t, 2.0, o.Merit, "second identical output should not re-award NOT")
}

func TestRecentCopiedTemplateClipsToAvailable(t *testing.T) {
	o := newTestOrganism(t)
	o.Alloc()
	o.AppendCopy(alphabet.NopA)
	tmpl := o.RecentCopiedTemplate(5)
	assert.Equal(t, genome.Template{alphabet.NopA}, tmpl)
}
