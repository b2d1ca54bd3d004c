// Package engine is the badge's animation and synchronization core: a step
// waiter that polls the IR receiver while pacing frames, a pattern player
// that aborts on a received sync pulse, and the sequence scheduler that
// transmits its own pulse when a full cycle completes. Whichever badge in
// range finishes first becomes the group's timing reference.
package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumenlabel/badgesync/internal/clock"
	"github.com/lumenlabel/badgesync/internal/ir"
	"github.com/lumenlabel/badgesync/internal/led"
	"github.com/lumenlabel/badgesync/internal/pattern"
)

// WaitResult reports how a step wait ended.
type WaitResult uint8

const (
	// TimedOut means the full budget elapsed with no sync edge.
	TimedOut WaitResult = iota
	// SyncDetected means a rising edge on the sync input cut the wait short.
	SyncDetected
)

const (
	DefaultStepMillis  = 25
	DefaultPulseMillis = 25
)

// Config carries the two timing constants. Zero values select the defaults.
type Config struct {
	StepMillis  uint32 // per-step hold before advancing
	PulseMillis uint16 // sync pulse length at end of sequence
}

// Deps are the engine's hardware collaborators, injected so the core runs
// identically against GPIO and against a simulated world.
type Deps struct {
	Clock clock.Clock
	Leds  led.Driver
	Rx    ir.Receiver
	Tx    ir.Transmitter
}

// Hooks are optional observer callbacks, invoked on the engine's goroutine.
type Hooks struct {
	// OnPattern fires when the scheduler dispatches a pattern state (1-based).
	OnPattern func(state int, name string)
	// OnSync fires when a received pulse resets the sequence.
	OnSync func(atMillis uint32)
	// OnPulse fires after the badge transmits its own sync pulse.
	OnPulse func(atMillis uint32)
}

// TickResult describes one scheduler transition.
type TickResult struct {
	State  uint8  // state value dispatched this tick
	Name   string // pattern name; empty on the pulse branch
	Pulsed bool   // this tick transmitted the sync pulse
	Synced bool   // playback was cut short by a received pulse
}

// Engine owns all mutable sequencing state. There is exactly one instance
// per badge and it runs on a single goroutine; the only shared state is the
// clock counter, which guards itself.
type Engine struct {
	clk   clock.Clock
	leds  led.Driver
	rx    ir.Receiver
	tx    ir.Transmitter
	table []pattern.Entry
	hooks Hooks
	log   zerolog.Logger

	cfg Config

	state      uint8  // sequence state; 0 means "about to start pattern 1"
	baseline   uint32 // start instant of the pending wait
	pinWasHigh bool   // last sampled receiver level
}

func New(d Deps, cfg Config, h Hooks, logger zerolog.Logger) *Engine {
	if cfg.StepMillis == 0 {
		cfg.StepMillis = DefaultStepMillis
	}
	if cfg.PulseMillis == 0 {
		cfg.PulseMillis = DefaultPulseMillis
	}
	return &Engine{
		clk:   d.Clock,
		leds:  d.Leds,
		rx:    d.Rx,
		tx:    d.Tx,
		table: pattern.Sequence(),
		hooks: h,
		log:   logger,
		cfg:   cfg,
		// The receiver may idle high at power-on; arming the edge detector
		// high forces it to see a low sample before any edge counts.
		baseline:   d.Clock.Now(),
		pinWasHigh: true,
	}
}

// State returns the current sequence state. 0 means the next tick plays
// pattern 1.
func (e *Engine) State() uint8 { return e.state }

// Wait blocks for at most budget milliseconds while polling the receiver.
// It returns SyncDetected as soon as a low-then-high transition shows up on
// the sync input; the pin must have been sampled low since the previous
// detection, so one physical pulse yields exactly one edge no matter how
// often Wait is called while the line is still high. On a sync the timing
// baseline moves to the edge instant and the sequence state resets to 0.
// On timeout the baseline advances by exactly budget rather than by the
// measured elapsed time, so per-iteration overhead never accumulates into
// drift across a long sequence.
func (e *Engine) Wait(budget uint32) WaitResult {
	now := e.clk.Now()
	pinHigh := e.rx.Sample()
	for now-e.baseline < budget && (!pinHigh || e.pinWasHigh) {
		now = e.clk.Now()
		e.pinWasHigh = pinHigh
		pinHigh = e.rx.Sample()
	}
	if pinHigh && !e.pinWasHigh {
		e.state = 0
		e.baseline = now
		e.pinWasHigh = true
		e.log.Debug().Uint32("at", now).Msg("sync pulse received, sequence reset")
		if e.hooks.OnSync != nil {
			e.hooks.OnSync(now)
		}
		return SyncDetected
	}
	e.baseline += budget
	return TimedOut
}

// Play shows a pattern repeats times, waiting one step budget after every
// frame. It returns true the moment a sync pulse aborts playback, without
// finishing the remaining steps or repeats.
func (e *Engine) Play(p pattern.Pattern, repeats int) bool {
	for r := 0; r < repeats; r++ {
		for i := 0; i < p.Steps; i++ {
			l, rt := p.At(i)
			e.leds.Set(l, rt)
			if e.Wait(e.cfg.StepMillis) == SyncDetected {
				return true
			}
		}
	}
	return false
}

// Tick advances the scheduler by one state. States 1..8 play their pattern;
// past the end of the table the badge transmits its sync pulse and wraps to
// state 0, so the next tick starts the sequence over. A received pulse can
// force state 0 at any point during playback, in which case Tick returns
// early with Synced set.
func (e *Engine) Tick() TickResult {
	e.state++
	s := e.state
	if n := int(s); n >= 1 && n <= len(e.table) {
		ent := e.table[n-1]
		e.log.Debug().Int("state", n).Str("pattern", ent.Pattern.Name).Msg("pattern start")
		if e.hooks.OnPattern != nil {
			e.hooks.OnPattern(n, ent.Pattern.Name)
		}
		synced := e.Play(ent.Pattern, ent.Repeats)
		return TickResult{State: s, Name: ent.Pattern.Name, Synced: synced}
	}
	// End of sequence: race to become the group's timing reference. A badge
	// that got here was not reset by anyone else's pulse this cycle.
	e.baseline = e.clk.Now()
	e.tx.Pulse(e.cfg.PulseMillis)
	at := e.clk.Now()
	e.log.Debug().Uint32("at", at).Msg("sync pulse transmitted")
	if e.hooks.OnPulse != nil {
		e.hooks.OnPulse(at)
	}
	e.state = 0
	return TickResult{State: s, Pulsed: true}
}

// Run ticks the scheduler until ctx is cancelled. The embedded original
// loops forever; cancellation is the hosted equivalent of pulling power.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.Tick()
	}
}
