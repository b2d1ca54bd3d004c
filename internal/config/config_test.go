package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, 25, c.StepMs)
	assert.Equal(t, 25, c.PulseMs)
	assert.Equal(t, "sim", c.Driver)
	assert.True(t, c.Pins.IRActiveLow)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := Default()
	c.Driver = "gpio"
	c.StepMs = 30
	c.Sim.Badges = 7
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpio", got.Driver)
	assert.Equal(t, 30, got.StepMs)
	assert.Equal(t, 7, got.Sim.Badges)
	assert.Equal(t, c.Pins, got.Pins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
