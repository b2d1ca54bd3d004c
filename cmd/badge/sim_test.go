package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabel/badgesync/internal/cluster"
	"github.com/lumenlabel/badgesync/internal/config"
)

func TestPreviewAddrFallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = ":8080"
	assert.Equal(t, ":8080", previewAddr("", cfg))
	assert.Equal(t, ":9000", previewAddr(":9000", cfg))

	cfg.Addr = ""
	assert.Equal(t, "", previewAddr("", cfg))
}

func TestTeeEventsDuplicatesAndCloses(t *testing.T) {
	in := make(chan cluster.Event, 4)
	dup := make(chan cluster.Event, 4)
	out := teeEvents(in, dup)

	in <- cluster.Event{Badge: 1, Kind: cluster.EventSync, At: 500}
	close(in)

	ev, ok := <-out
	require.True(t, ok)
	assert.Equal(t, 1, ev.Badge)
	_, ok = <-out
	assert.False(t, ok, "out not closed after source closed")

	ev, ok = <-dup
	require.True(t, ok)
	assert.Equal(t, cluster.EventSync, ev.Kind)
	_, ok = <-dup
	assert.False(t, ok, "dup not closed after source closed")
}
