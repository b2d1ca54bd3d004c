// Package cluster runs several simulated badges against one shared IR bus in
// real time. Clock skew makes one badge reach its terminal pulse first; its
// pulse resets the rest, which is the synchronization behavior worth
// watching.
package cluster

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumenlabel/badgesync/internal/clock"
	"github.com/lumenlabel/badgesync/internal/engine"
	"github.com/lumenlabel/badgesync/internal/led"
)

// EventKind labels cluster events for observers.
type EventKind string

const (
	EventFrame   EventKind = "frame"
	EventPattern EventKind = "pattern"
	EventSync    EventKind = "sync"
	EventPulse   EventKind = "pulse"
)

// Event is one observable occurrence on a simulated badge.
type Event struct {
	Badge int       `json:"badge"`
	Kind  EventKind `json:"kind"`
	Frame led.Pair  `json:"frame,omitempty"`
	State int       `json:"state,omitempty"`
	Name  string    `json:"name,omitempty"`
	At    uint32    `json:"at,omitempty"`
}

// Bus is the shared IR medium. A transmitting badge holds the line high for
// the pulse duration; every receiver in "range" reads the same level.
type Bus struct {
	mu    sync.Mutex
	until time.Time
}

// High reports whether a pulse is currently on the air.
func (b *Bus) High() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Now().Before(b.until)
}

func (b *Bus) pulse(d time.Duration) {
	end := time.Now().Add(d)
	b.mu.Lock()
	if end.After(b.until) {
		b.until = end
	}
	b.mu.Unlock()
	time.Sleep(d)
}

// busReceiver paces the engine's busy-poll loop so a goroutine per badge
// does not spin a core flat out.
type busReceiver struct {
	bus  *Bus
	poll time.Duration
}

func (r *busReceiver) Sample() bool {
	time.Sleep(r.poll)
	return r.bus.High()
}

type busTransmitter struct {
	bus *Bus
}

func (t *busTransmitter) Pulse(durationMillis uint16) {
	t.bus.pulse(time.Duration(durationMillis) * time.Millisecond)
}

// Badge is one simulated badge: its engine, its recorded LED output, and
// its skewed clock.
type Badge struct {
	ID   int
	Eng  *engine.Engine
	Leds *led.Recorder
}

// Config sizes a simulated cluster.
type Config struct {
	Badges  int
	SkewPPM int           // clock spread: badge clocks run within ±SkewPPM
	Poll    time.Duration // receiver poll pacing; default 1ms
	Engine  engine.Config
}

// Cluster owns the badges, the bus, and the event fan-out.
type Cluster struct {
	badges []*Badge
	bus    *Bus
	events chan Event
	log    zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Cluster {
	if cfg.Badges < 1 {
		cfg.Badges = 1
	}
	if cfg.Poll <= 0 {
		cfg.Poll = time.Millisecond
	}
	c := &Cluster{
		bus:    &Bus{},
		events: make(chan Event, 256),
		log:    logger,
	}
	for i := 0; i < cfg.Badges; i++ {
		id := i
		rec := led.NewRecorder()
		rec.OnFrame(func(p led.Pair) {
			c.emit(Event{Badge: id, Kind: EventFrame, Frame: p})
		})
		hooks := engine.Hooks{
			OnPattern: func(state int, name string) {
				c.emit(Event{Badge: id, Kind: EventPattern, State: state, Name: name})
			},
			OnSync: func(at uint32) {
				c.emit(Event{Badge: id, Kind: EventSync, At: at})
			},
			OnPulse: func(at uint32) {
				c.emit(Event{Badge: id, Kind: EventPulse, At: at})
			},
		}
		eng := engine.New(engine.Deps{
			Clock: clock.NewSystem(spreadPPM(cfg.SkewPPM, i, cfg.Badges)),
			Leds:  rec,
			Rx:    &busReceiver{bus: c.bus, poll: cfg.Poll},
			Tx:    &busTransmitter{bus: c.bus},
		}, cfg.Engine, hooks, logger.With().Int("badge", id).Logger())
		c.badges = append(c.badges, &Badge{ID: id, Eng: eng, Leds: rec})
	}
	return c
}

// spreadPPM places badge i's skew evenly across [-ppm, +ppm].
func spreadPPM(ppm, i, n int) int {
	if n <= 1 || ppm == 0 {
		return 0
	}
	return -ppm + (2*ppm*i)/(n-1)
}

// Badges returns the simulated badges.
func (c *Cluster) Badges() []*Badge { return c.badges }

// Events is the cluster's fan-out stream. Slow consumers lose events rather
// than stalling a badge.
func (c *Cluster) Events() <-chan Event { return c.events }

func (c *Cluster) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

// Run drives every badge until ctx is cancelled, then closes the event
// stream.
func (c *Cluster) Run(ctx context.Context) {
	c.log.Debug().Int("badges", len(c.badges)).Msg("cluster running")
	var wg sync.WaitGroup
	for _, b := range c.badges {
		wg.Add(1)
		go func(b *Badge) {
			defer wg.Done()
			b.Eng.Run(ctx)
		}(b)
	}
	wg.Wait()
	close(c.events)
}
