package cpu

import (
	"testing"

	"github.com/maccam912/avida-rs/alphabet"
	"github.com/stretchr/testify/assert"
)

func TestStackBoundedDepth(t *testing.T) {
	// S6 from spec.md: push 11 values onto an empty stack, bottom dropped.
	var s Stack
	for i := int32(0); i < 11; i++ {
		s.Push(i)
	}
	assert.Equal(t, StackDepth, s.Len())
	assert.Equal(t, int32(1), s.Values()[0], "value 0 should have been dropped")
	assert.Equal(t, int32(10), s.Pop())
}

func TestStackPopEmptyYieldsZero(t *testing.T) {
	var s Stack
	assert.Equal(t, int32(0), s.Pop())
}

func TestToggleStack(t *testing.T) {
	var c Cpu
	c.ActiveStack().Push(42)
	c.ToggleStack()
	assert.Equal(t, 0, c.ActiveStack().Len())
	c.ToggleStack()
	assert.Equal(t, int32(42), c.ActiveStack().Pop())
}

func TestRegisterAccess(t *testing.T) {
	var c Cpu
	c.SetRegister(alphabet.BX, 7)
	assert.Equal(t, int32(7), c.Register(alphabet.BX))
}

func TestResetClearsEverything(t *testing.T) {
	var c Cpu
	c.SetRegister(alphabet.AX, 1)
	c.ActiveStack().Push(1)
	c.Heads.IP = 5
	c.PushInput(3)
	c.PushOutput(4)

	c.Reset()

	assert.Equal(t, int32(0), c.AX)
	assert.Equal(t, 0, c.ActiveStack().Len())
	assert.Equal(t, Heads{}, c.Heads)
	assert.Empty(t, c.RecentInputs())
	assert.Empty(t, c.RecentOutputs())
}

func TestRecentInputsMostRecentFirst(t *testing.T) {
	var c Cpu
	c.PushInput(1)
	c.PushInput(2)
	c.PushInput(3)
	c.PushInput(4)
	assert.Equal(t, []int32{4, 3, 2}, c.RecentInputs())
}
