package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lumenlabel/badgesync/internal/led"
)

// newSelftestCmd walks every LED position once per side, for hardware
// bring-up: a dead pin shows up as a gap in the sweep.
func newSelftestCmd() *cobra.Command {
	var holdMs int
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Walk all 40 LED positions once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			var drv led.Driver
			if cfg.Driver == "gpio" {
				hw, _, _, err := buildHardware(cfg)
				if err != nil {
					return err
				}
				drv = hw
			} else {
				rec := led.NewRecorder()
				rec.OnFrame(func(p led.Pair) {
					log.Info().Stringer("left", p.Left).Stringer("right", p.Right).Msg("frame")
				})
				drv = rec
			}

			hold := time.Duration(holdMs) * time.Millisecond
			for i := 0; i < 20; i++ {
				drv.Set(led.Lit(i), led.Off)
				time.Sleep(hold)
			}
			for i := 0; i < 20; i++ {
				drv.Set(led.Off, led.Lit(i))
				time.Sleep(hold)
			}
			drv.Set(led.Off, led.Off)
			log.Info().Msg("selftest complete")
			return nil
		},
	}
	cmd.Flags().IntVar(&holdMs, "hold", 100, "milliseconds to hold each LED")
	return cmd
}
