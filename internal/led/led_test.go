package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionDomain(t *testing.T) {
	assert.True(t, Lit(0).IsLit())
	assert.True(t, Lit(19).IsLit())
	assert.False(t, Off.IsLit())
	assert.False(t, Unchanged.IsLit())
	assert.Panics(t, func() { Lit(20) })
	assert.Panics(t, func() { Lit(-1) })

	assert.Equal(t, "L07", Lit(7).String())
	assert.Equal(t, "off", Off.String())
	assert.Equal(t, "unchanged", Unchanged.String())
}

func TestRecorderTracksOnePairPerSide(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, Pair{Left: Off, Right: Off}, r.Current())

	r.Set(Lit(3), Lit(7))
	assert.Equal(t, Pair{Left: Lit(3), Right: Lit(7)}, r.Current())

	r.Set(Unchanged, Lit(9))
	assert.Equal(t, Pair{Left: Lit(3), Right: Lit(9)}, r.Current())

	r.Set(Off, Unchanged)
	assert.Equal(t, Pair{Left: Off, Right: Lit(9)}, r.Current())

	require.Equal(t, 3, r.Frames())
	hist := r.History()
	assert.Equal(t, Pair{Left: Lit(3), Right: Lit(7)}, hist[0])
	assert.Equal(t, Pair{Left: Off, Right: Lit(9)}, hist[2])
}

func TestRecorderFanOut(t *testing.T) {
	r := NewRecorder()
	var frames []Pair
	r.OnFrame(func(p Pair) { frames = append(frames, p) })
	r.Set(Lit(1), Off)
	r.Set(Lit(2), Off)
	require.Len(t, frames, 2)
	assert.Equal(t, Pair{Left: Lit(2), Right: Off}, frames[1])
}

// The badge wires each anode group's four cathodes to the remaining pins in
// descending order. This is the whole original pin table, flattened.
func TestCathodePinMatchesBadgeWiring(t *testing.T) {
	want := []int{
		4, 3, 2, 1, // LEDs 0..3, anode pin 0
		4, 3, 2, 0, // LEDs 4..7, anode pin 1
		4, 3, 1, 0, // LEDs 8..11, anode pin 2
		4, 2, 1, 0, // LEDs 12..15, anode pin 3
		3, 2, 1, 0, // LEDs 16..19, anode pin 4
	}
	for i := 0; i < 20; i++ {
		got := cathodePin(i/4, i%4)
		assert.Equal(t, want[i], got, "LED %d", i)
		assert.NotEqual(t, i/4, got, "LED %d cathode equals anode", i)
	}
}
