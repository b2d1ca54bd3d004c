package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvTimeline(t *testing.T) {
	env := NewEnv()
	assert.Equal(t, uint32(0), env.Now())

	assert.False(t, env.Sample())
	assert.Equal(t, uint32(1), env.Now(), "one sample costs one poll")

	env.AddPulse(5, 10)
	for env.Now() < 4 {
		assert.False(t, env.Sample())
	}
	assert.True(t, env.Sample())  // t=5, window opens
	env.Advance(9)                // t=14
	assert.False(t, env.Sample()) // t=15, window closed

	env.Pulse(25)
	require.Len(t, env.Sent(), 1)
	assert.Equal(t, uint32(15), env.Sent()[0])
	assert.Equal(t, uint32(40), env.Now())
}

func TestEnvWindowNearWraparound(t *testing.T) {
	env := NewEnv()
	start := uint32(0xFFFFFFF8)
	env.AddPulse(start, 16) // spans the 32-bit boundary
	env.Advance(start - 1)

	assert.True(t, env.Sample()) // t=start
	env.Advance(20)              // t wraps past the window end
	assert.False(t, env.Sample())
}

func TestEnvPollCostFloor(t *testing.T) {
	env := NewEnv()
	env.SetPollCost(0)
	assert.Equal(t, uint32(1), env.PollCost(), "zero poll cost would stall the wait loop")
}
