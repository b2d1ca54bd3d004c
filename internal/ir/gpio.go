package ir

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// PinReceiver reads a demodulated IR receiver on a GPIO pin. The common
// 38 kHz receiver modules idle high and pull the line low while a burst is
// present, so ActiveLow is normally true.
type PinReceiver struct {
	Pin       gpio.PinIO
	ActiveLow bool
}

func (r *PinReceiver) Sample() bool {
	high := r.Pin.Read() == gpio.High
	if r.ActiveLow {
		return !high
	}
	return high
}

// PinTransmitter keys the IR LED. The 38 kHz carrier comes from hardware (a
// timer/PWM feeding the LED); this side only shapes the pulse envelope.
type PinTransmitter struct {
	Pin gpio.PinIO
}

func (t *PinTransmitter) Pulse(durationMillis uint16) {
	_ = t.Pin.Out(gpio.High)
	time.Sleep(time.Duration(durationMillis) * time.Millisecond)
	_ = t.Pin.Out(gpio.Low)
}
