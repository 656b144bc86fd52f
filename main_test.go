package main

import (
	"context"
	"domineering/meta"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	t.Run("defaults come from meta", func(t *testing.T) {
		o, err := parseOptions(nil)

		require.NoError(t, err)
		require.Equal(t, "match", o.mode)
		require.Equal(t, meta.EPISODES, o.episodes)
		require.Equal(t, meta.SIMULATIONS, o.simulations)
		require.Equal(t, meta.MATCHES, o.matches)
		require.Equal(t, meta.DURATION, o.duration)
		require.Equal(t, meta.ADDR, o.addr)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		o, err := parseOptions([]string{"-mode", "throughput", "-episodes", "0", "-duration", "2s"})

		require.NoError(t, err)
		require.Equal(t, "throughput", o.mode)
		require.Zero(t, o.episodes)
		require.Equal(t, 2*time.Second, o.duration)
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		_, err := parseOptions([]string{"-depth", "3"})

		require.Error(t, err)
	})
}

func TestRunUnknownMode(t *testing.T) {
	o, err := parseOptions([]string{"-mode", "solve"})
	require.NoError(t, err)

	require.ErrorContains(t, run(context.Background(), o), "unknown mode")
}
