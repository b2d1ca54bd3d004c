package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabel/badgesync/internal/engine"
)

func TestClusterEmitsFrames(t *testing.T) {
	c := New(Config{
		Badges:  2,
		SkewPPM: 5000,
		Poll:    200 * time.Microsecond,
		Engine:  engine.Config{StepMillis: 25},
	}, zerolog.Nop())
	require.Len(t, c.Badges(), 2)

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()
	go c.Run(ctx)

	frames := map[int]int{}
	patterns := map[int]int{}
	for ev := range c.Events() {
		switch ev.Kind {
		case EventFrame:
			frames[ev.Badge]++
		case EventPattern:
			patterns[ev.Badge]++
		}
	}

	for id := 0; id < 2; id++ {
		assert.Greater(t, frames[id], 4, "badge %d produced too few frames", id)
		assert.GreaterOrEqual(t, patterns[id], 1, "badge %d never dispatched a pattern", id)
	}
}

func TestBusPulseResetsBadgeMidPattern(t *testing.T) {
	c := New(Config{
		Badges: 1,
		Poll:   200 * time.Microsecond,
		Engine: engine.Config{StepMillis: 5},
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go c.Run(ctx)

	// Pulse the shared bus while the badge is partway through pattern 1.
	go func() {
		time.Sleep(50 * time.Millisecond)
		c.bus.pulse(10 * time.Millisecond)
	}()

	sawSync := false
	for ev := range c.Events() {
		if !sawSync {
			sawSync = ev.Kind == EventSync
			continue
		}
		if ev.Kind == EventPattern {
			assert.Equal(t, 1, ev.State, "badge did not restart at pattern 1 after sync")
			cancel()
			break
		}
	}
	require.True(t, sawSync, "bus pulse never produced a sync event")
	for range c.Events() {
	}
}

func TestBusPulseIsVisibleWhileOnAir(t *testing.T) {
	b := &Bus{}
	assert.False(t, b.High())

	done := make(chan struct{})
	go func() {
		b.pulse(30 * time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, b.High(), "pulse not visible mid-transmission")
	<-done
	time.Sleep(time.Millisecond)
	assert.False(t, b.High(), "line still high after the pulse ended")
}

func TestSpreadPPM(t *testing.T) {
	assert.Equal(t, 0, spreadPPM(1000, 0, 1))
	assert.Equal(t, -1000, spreadPPM(1000, 0, 3))
	assert.Equal(t, 0, spreadPPM(1000, 1, 3))
	assert.Equal(t, 1000, spreadPPM(1000, 2, 3))
}
