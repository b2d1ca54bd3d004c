// Package clock provides the badge's monotonic millisecond time base. The
// counter wraps after roughly 49.7 days, so elapsed-time comparisons must use
// unsigned subtraction throughout.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock is a monotonic millisecond counter.
type Clock interface {
	Now() uint32
}

// Counter is a tick-driven clock: a periodic tick source calls Tick once per
// millisecond while the application reads Now from its own flow. The counter
// is wider than one machine word on the original 8-bit target, so every
// access runs inside a critical section; the mutex stands in for the
// original's disable-interrupt, read, re-enable protocol.
type Counter struct {
	mu sync.Mutex
	ms uint32
}

func (c *Counter) Now() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ms
}

// Tick advances the counter by one millisecond.
func (c *Counter) Tick() {
	c.mu.Lock()
	c.ms++
	c.mu.Unlock()
}

// Advance moves the counter forward by d milliseconds.
func (c *Counter) Advance(d uint32) {
	c.mu.Lock()
	c.ms += d
	c.mu.Unlock()
}

// Run feeds the counter from a real-time 1 ms ticker until ctx is done.
func (c *Counter) Run(ctx context.Context) {
	t := time.NewTicker(time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Tick()
		}
	}
}

// System derives milliseconds from the host clock. A non-zero skew (parts
// per million) scales the rate, mimicking the oscillator spread that makes
// one badge finish its cycle before another.
type System struct {
	start time.Time
	rate  float64
}

func NewSystem(skewPPM int) *System {
	return &System{start: time.Now(), rate: 1 + float64(skewPPM)/1e6}
}

func (s *System) Now() uint32 {
	return uint32(float64(time.Since(s.start).Milliseconds()) * s.rate)
}
