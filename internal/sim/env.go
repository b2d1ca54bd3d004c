// Package sim provides Env, a deterministic virtual world for exercising the
// engine in tests: a single shared millisecond timeline acting as clock, IR
// receiver, and IR transmitter at once.
package sim

// Env is a virtual millisecond timeline. Reading the clock is free; each
// receiver sample costs PollCost milliseconds, standing in for one trip
// around a real busy-poll loop, and transmitting a pulse consumes its full
// duration. Incoming pulses are scripted as [start, start+length) windows
// during which the sync line reads high.
type Env struct {
	now     uint32
	poll    uint32
	windows []window
	sent    []uint32 // instants at which Pulse began
}

type window struct {
	start, length uint32
}

func NewEnv() *Env {
	return &Env{poll: 1}
}

// SetPollCost overrides the per-sample cost. Must be positive or the wait
// loop would never observe time passing.
func (e *Env) SetPollCost(ms uint32) {
	if ms == 0 {
		ms = 1
	}
	e.poll = ms
}

// PollCost returns the per-sample cost in milliseconds.
func (e *Env) PollCost() uint32 { return e.poll }

// AddPulse scripts an incoming sync pulse on the line.
func (e *Env) AddPulse(start, length uint32) {
	e.windows = append(e.windows, window{start, length})
}

// Advance moves the timeline forward without any observation.
func (e *Env) Advance(d uint32) { e.now += d }

// Now implements clock.Clock.
func (e *Env) Now() uint32 { return e.now }

// Sample implements ir.Receiver: one poll-loop trip passes, then the line
// level at the new instant is returned.
func (e *Env) Sample() bool {
	e.now += e.poll
	return e.level(e.now)
}

func (e *Env) level(t uint32) bool {
	for _, w := range e.windows {
		if t-w.start < w.length { // wraparound-safe
			return true
		}
	}
	return false
}

// Pulse implements ir.Transmitter: the emission instant is recorded and the
// timeline advances by the pulse duration.
func (e *Env) Pulse(durationMillis uint16) {
	e.sent = append(e.sent, e.now)
	e.now += uint32(durationMillis)
}

// Sent returns the start instants of every transmitted pulse.
func (e *Env) Sent() []uint32 {
	out := make([]uint32, len(e.sent))
	copy(out, e.sent)
	return out
}
