package led

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// SidePins is the ordered 5-pin list driving one 20-LED charlieplexed array.
// Index n is the anode (source) pin for LEDs 4n..4n+3. On the original badge
// the left side is PB4,PB5,PB6,PB7,PA7 and the right side PB3,PB2,PB1,PB0,PA0.
type SidePins [5]gpio.PinIO

// Charlieplex drives the two badge arrays through raw GPIO. At most one LED
// per side conducts at a time: its anode pin sources, its cathode pin sinks,
// and the remaining three pins float.
type Charlieplex struct {
	left  SidePins
	right SidePins
}

func NewCharlieplex(left, right SidePins) (*Charlieplex, error) {
	for i := range left {
		if left[i] == nil || right[i] == nil {
			return nil, fmt.Errorf("led: side pin %d is nil", i)
		}
	}
	c := &Charlieplex{left: left, right: right}
	c.Set(Off, Off)
	return c, nil
}

func (c *Charlieplex) Set(left, right Position) {
	driveSide(c.left, left)
	driveSide(c.right, right)
}

func driveSide(pins SidePins, p Position) {
	if p == Unchanged {
		return
	}
	for _, pin := range pins {
		_ = pin.In(gpio.Float, gpio.NoEdge)
	}
	if !p.IsLit() {
		return
	}
	anode := int(p) / 4
	cathode := cathodePin(anode, int(p)%4)
	_ = pins[cathode].Out(gpio.Low)
	_ = pins[anode].Out(gpio.High)
}

// cathodePin returns the sink pin for the j-th LED within an anode group.
// The badge wires each group's four cathodes to the remaining pins in
// descending order, which is what the original pin table reduces to.
func cathodePin(anode, j int) int {
	k := 0
	for c := 4; c >= 0; c-- {
		if c == anode {
			continue
		}
		if k == j {
			return c
		}
		k++
	}
	return 0 // unreachable for j in 0..3
}
