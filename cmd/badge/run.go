package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/lumenlabel/badgesync/internal/clock"
	"github.com/lumenlabel/badgesync/internal/config"
	"github.com/lumenlabel/badgesync/internal/engine"
	"github.com/lumenlabel/badgesync/internal/ir"
	"github.com/lumenlabel/badgesync/internal/led"
)

func loadConfig() *config.Config {
	c, err := config.Load(flagConfig)
	if err != nil {
		log.Warn().Err(err).Str("path", flagConfig).Msg("config load failed; using defaults")
		return config.Default()
	}
	return c
}

// buildHardware resolves the configured pins and wires up the GPIO
// collaborators.
func buildHardware(cfg *config.Config) (*led.Charlieplex, *ir.PinReceiver, *ir.PinTransmitter, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, nil, err
	}
	var left, right led.SidePins
	for i := 0; i < 5; i++ {
		left[i] = gpioreg.ByName(cfg.Pins.Left[i])
		right[i] = gpioreg.ByName(cfg.Pins.Right[i])
		if left[i] == nil || right[i] == nil {
			return nil, nil, nil, fmt.Errorf("unknown side pin %q / %q", cfg.Pins.Left[i], cfg.Pins.Right[i])
		}
	}
	drv, err := led.NewCharlieplex(left, right)
	if err != nil {
		return nil, nil, nil, err
	}
	rxPin := gpioreg.ByName(cfg.Pins.IRIn)
	txPin := gpioreg.ByName(cfg.Pins.IROut)
	if rxPin == nil || txPin == nil {
		return nil, nil, nil, fmt.Errorf("unknown IR pin %q / %q", cfg.Pins.IRIn, cfg.Pins.IROut)
	}
	if err := rxPin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, nil, nil, err
	}
	if err := txPin.Out(gpio.Low); err != nil {
		return nil, nil, nil, err
	}
	return drv, &ir.PinReceiver{Pin: rxPin, ActiveLow: cfg.Pins.IRActiveLow}, &ir.PinTransmitter{Pin: txPin}, nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Drive real badge hardware over GPIO",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			drv, rx, tx, err := buildHardware(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctr := &clock.Counter{}
			go ctr.Run(ctx)

			eng := engine.New(engine.Deps{Clock: ctr, Leds: drv, Rx: rx, Tx: tx},
				engine.Config{StepMillis: uint32(cfg.StepMs), PulseMillis: uint16(cfg.PulseMs)},
				engine.Hooks{}, log.Logger)

			log.Info().Int("step_ms", cfg.StepMs).Int("pulse_ms", cfg.PulseMs).Msg("badge running")
			eng.Run(ctx)
			drv.Set(led.Off, led.Off)
			return nil
		},
	}
}
