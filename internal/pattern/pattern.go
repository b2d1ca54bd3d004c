// Package pattern holds the badge's built-in animations. A pattern is a
// fixed, finite run of LED-pair frames addressed by a pure step function;
// the engine owns all timing.
package pattern

import "github.com/lumenlabel/badgesync/internal/led"

// Pattern is one animation: Steps frames, each produced by At.
type Pattern struct {
	Name  string
	Steps int
	// At returns the pair shown at step i, 0 <= i < Steps. Pure.
	At func(i int) (left, right led.Position)
}

// Entry pairs a pattern with the number of times the scheduler replays it.
type Entry struct {
	Pattern Pattern
	Repeats int
}

// SingleCCW chases one lit LED counter-clockwise around the full 40-slot
// perimeter: down the left side, then up the right, the other side dark.
var SingleCCW = Pattern{
	Name:  "single-ccw",
	Steps: 40,
	At: func(i int) (led.Position, led.Position) {
		if i < 20 {
			return led.Lit(i), led.Off
		}
		return led.Off, led.Lit(39 - i)
	},
}

// SingleCW is the clockwise mirror of SingleCCW.
var SingleCW = Pattern{
	Name:  "single-cw",
	Steps: 40,
	At: func(i int) (led.Position, led.Position) {
		if i < 20 {
			return led.Off, led.Lit(i)
		}
		return led.Lit(39 - i), led.Off
	},
}

// TwoCCW sweeps both sides at once, mirrored, counter-clockwise.
var TwoCCW = Pattern{
	Name:  "two-ccw",
	Steps: 20,
	At: func(i int) (led.Position, led.Position) {
		return led.Lit(i), led.Lit(19 - i)
	},
}

// TwoCW sweeps both sides at once, mirrored, clockwise.
var TwoCW = Pattern{
	Name:  "two-cw",
	Steps: 20,
	At: func(i int) (led.Position, led.Position) {
		return led.Lit(19 - i), led.Lit(i)
	},
}

// FlapDown lights the same index on both sides, top to bottom.
var FlapDown = Pattern{
	Name:  "flap-down",
	Steps: 20,
	At: func(i int) (led.Position, led.Position) {
		return led.Lit(i), led.Lit(i)
	},
}

// FlapUp lights the same index on both sides, bottom to top.
var FlapUp = Pattern{
	Name:  "flap-up",
	Steps: 20,
	At: func(i int) (led.Position, led.Position) {
		return led.Lit(19 - i), led.Lit(19 - i)
	},
}

// Flap is a full down pass immediately followed by a full up pass.
var Flap = Pattern{
	Name:  "flap",
	Steps: 40,
	At: func(i int) (led.Position, led.Position) {
		if i < 20 {
			return led.Lit(i), led.Lit(i)
		}
		return led.Lit(39 - i), led.Lit(39 - i)
	},
}

// shuffleTable is a fixed 40-entry permutation. It looks random on the badge
// but is fully reproducible, so every badge plays the same frames.
var shuffleTable = [40]uint8{
	9, 19, 3, 2, 16, 17, 6, 18, 1, 8, 0, 14, 15, 5, 7, 10, 11, 12, 4, 10,
	10, 1, 15, 8, 17, 9, 6, 16, 7, 13, 11, 0, 2, 3, 4, 18, 12, 14, 5, 19,
}

// Shuffle plays the permutation table in four directional passes: forward,
// operands swapped, reversed, and reversed with operands swapped.
var Shuffle = Pattern{
	Name:  "shuffle",
	Steps: 80,
	At: func(i int) (led.Position, led.Position) {
		j := i % 20
		switch i / 20 {
		case 0:
			return led.Lit(int(shuffleTable[j])), led.Lit(int(shuffleTable[j+20]))
		case 1:
			return led.Lit(int(shuffleTable[j+20])), led.Lit(int(shuffleTable[j]))
		case 2:
			return led.Lit(int(shuffleTable[19-j])), led.Lit(int(shuffleTable[39-j]))
		default:
			return led.Lit(int(shuffleTable[39-j])), led.Lit(int(shuffleTable[19-j]))
		}
	},
}

// Sequence is the badge's fixed program. The scheduler walks the entries in
// order, then emits a sync pulse and starts over.
func Sequence() []Entry {
	return []Entry{
		{SingleCCW, 4},
		{SingleCW, 4},
		{TwoCCW, 8},
		{TwoCW, 8},
		{FlapDown, 8},
		{FlapUp, 8},
		{Flap, 4},
		{Shuffle, 4},
	}
}
