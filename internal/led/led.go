package led

import "fmt"

// Position addresses one LED on one side of the badge. Each side carries 20
// charlieplexed LEDs; two sentinel values complete the domain.
type Position uint8

const (
	// Off switches every LED on that side off.
	Off Position = 20
	// Unchanged leaves the side's current output exactly as it is.
	Unchanged Position = 21
)

// Lit returns the Position of the n-th LED on a side. n must be in 0..19.
func Lit(n int) Position {
	if n < 0 || n > 19 {
		panic(fmt.Sprintf("led: position %d out of range", n))
	}
	return Position(n)
}

// IsLit reports whether p addresses a real LED rather than a sentinel.
func (p Position) IsLit() bool { return p < Off }

func (p Position) String() string {
	switch {
	case p < Off:
		return fmt.Sprintf("L%02d", uint8(p))
	case p == Off:
		return "off"
	default:
		return "unchanged"
	}
}

// Pair is the visible state of a badge at one instant: at most one LED lit
// per side.
type Pair struct {
	Left  Position `json:"left"`
	Right Position `json:"right"`
}

// Driver abstracts the badge's LED output. Set activates one LED pair; it is
// a total function with no failure mode, matching the hardware it stands for.
type Driver interface {
	Set(left, right Position)
}
