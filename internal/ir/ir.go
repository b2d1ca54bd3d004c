// Package ir abstracts the badge's infrared sync link. Only the presence and
// timing of a pulse matter; there is no data protocol.
package ir

// Receiver samples the demodulated IR input. True means a sync pulse is
// currently present at the receiver. The engine polls this from its wait
// loop; delivery is never interrupt-driven.
type Receiver interface {
	Sample() bool
}

// Transmitter emits one modulated sync pulse. Pulse blocks for the full
// duration and guarantees the output is physically off when it returns.
type Transmitter interface {
	Pulse(durationMillis uint16)
}
