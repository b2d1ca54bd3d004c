package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pins names the GPIO lines, in the order the charlieplex tables expect:
// index n sources LEDs 4n..4n+3 on that side.
type Pins struct {
	Left  [5]string `yaml:"left"`
	Right [5]string `yaml:"right"`
	IRIn  string    `yaml:"ir_in"`
	IROut string    `yaml:"ir_out"`
	// IRActiveLow matches the usual demodulating receiver modules, which
	// pull the line low while a burst is present.
	IRActiveLow bool `yaml:"ir_active_low"`
}

// Sim sizes the simulated cluster.
type Sim struct {
	Badges  int `yaml:"badges"`
	SkewPPM int `yaml:"skew_ppm"`
}

type Config struct {
	Driver  string `yaml:"driver"` // "gpio" | "sim"
	StepMs  int    `yaml:"step_ms"`
	PulseMs int    `yaml:"pulse_ms"`
	Addr    string `yaml:"addr,omitempty"` // websocket preview listen address

	Pins Pins `yaml:"pins"`
	Sim  Sim  `yaml:"sim"`
}

// Default mirrors the original badge: 25 ms steps, 25 ms pulse, and the
// Raspberry Pi header pins a bring-up rig typically uses.
func Default() *Config {
	return &Config{
		Driver:  "sim",
		StepMs:  25,
		PulseMs: 25,
		Pins: Pins{
			Left:        [5]string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26"},
			Right:       [5]string{"GPIO12", "GPIO16", "GPIO20", "GPIO21", "GPIO25"},
			IRIn:        "GPIO23",
			IROut:       "GPIO24",
			IRActiveLow: true,
		},
		Sim: Sim{Badges: 3, SkewPPM: 2000},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
