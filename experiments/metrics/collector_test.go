package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("sums concurrent reports", func(t *testing.T) {
		c := NewCollector()
		c.Start("flat", 4, 10, 56)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddPlayouts(140)
				c.AddEpisode()
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, "flat", got.Searcher)
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 10, got.Simulations)
		require.Equal(t, 56, got.Candidates)
		require.Equal(t, 560, got.Playouts)
		require.Equal(t, 4, got.Episodes)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("flat", 1, 1, 1)
		c.AddPlayouts(3)
		c.Start("flat", 1, 1, 1)

		require.Zero(t, c.Complete().Playouts)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("flat", 4, 10, 56)
		c.AddPlayouts(10)

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
