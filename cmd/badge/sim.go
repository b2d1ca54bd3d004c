package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lumenlabel/badgesync/internal/cluster"
	"github.com/lumenlabel/badgesync/internal/config"
	"github.com/lumenlabel/badgesync/internal/engine"
	"github.com/lumenlabel/badgesync/internal/tui"
	"github.com/lumenlabel/badgesync/internal/ws"
)

func newSimCmd() *cobra.Command {
	var (
		badges  int
		skewPPM int
		useTUI  bool
		addr    string
	)
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a cluster of simulated badges on a shared IR bus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if badges > 0 {
				cfg.Sim.Badges = badges
			}
			if skewPPM > 0 {
				cfg.Sim.SkewPPM = skewPPM
			}

			cl := cluster.New(cluster.Config{
				Badges:  cfg.Sim.Badges,
				SkewPPM: cfg.Sim.SkewPPM,
				Poll:    time.Millisecond,
				Engine:  engine.Config{StepMillis: uint32(cfg.StepMs), PulseMillis: uint16(cfg.PulseMs)},
			}, log.Logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go cl.Run(ctx)

			events := cl.Events()
			if addr = previewAddr(addr, cfg); addr != "" {
				srv := ws.NewServer()
				go func() {
					if err := srv.ListenAndServe(addr); err != nil {
						log.Error().Err(err).Msg("preview server stopped")
					}
				}()
				wsEvents := make(chan cluster.Event, 256)
				go srv.Pump(wsEvents)
				events = teeEvents(events, wsEvents)
			}

			if useTUI {
				p := tea.NewProgram(tui.New(events, cfg.Sim.Badges))
				_, err := p.Run()
				stop()
				return err
			}

			for ev := range events {
				switch ev.Kind {
				case cluster.EventPattern:
					log.Info().Int("badge", ev.Badge).Int("state", ev.State).Str("pattern", ev.Name).Msg("pattern")
				case cluster.EventSync:
					log.Info().Int("badge", ev.Badge).Uint32("at", ev.At).Msg("sync received")
				case cluster.EventPulse:
					log.Info().Int("badge", ev.Badge).Uint32("at", ev.At).Msg("pulse transmitted")
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&badges, "badges", 0, "number of simulated badges (overrides config)")
	cmd.Flags().IntVar(&skewPPM, "skew", 0, "clock spread in ppm (overrides config)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "render the cluster in the terminal")
	cmd.Flags().StringVar(&addr, "addr", "", "serve a websocket preview on this address (overrides config)")
	return cmd
}

// previewAddr prefers the flag, then the config file.
func previewAddr(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Addr
}

// teeEvents duplicates the stream into dup, never blocking on either side,
// and closes dup when the source closes.
func teeEvents(in <-chan cluster.Event, dup chan<- cluster.Event) <-chan cluster.Event {
	out := make(chan cluster.Event, 256)
	go func() {
		defer close(out)
		defer close(dup)
		for ev := range in {
			select {
			case dup <- ev:
			default:
			}
			select {
			case out <- ev:
			default:
			}
		}
	}()
	return out
}
