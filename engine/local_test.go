package engine

import (
	"context"
	"domineering/experiments/metrics"
	"domineering/game"
	"domineering/searcher"
	"domineering/searcher/agent"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func flatAgent(budget int, seed uint64) agent.Agent {
	return agent.NewEvaluationAgent(searcher.NewFlatMC(
		searcher.WithSimulations(budget),
		searcher.WithGoroutines(2),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	))
}

type failingAgent struct{}

func (failingAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	return 0, metrics.SearchMetric{}, errors.New("out of time")
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("plays a full game", func(t *testing.T) {
		e := NewLocalEngine(flatAgent(5, 1), flatAgent(5, 2))

		score, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Contains(t, []int{-1, 1}, score)
		require.True(t, e.State.Terminated())
		require.Equal(t, score, gameMetric.Score)
		require.Equal(t, e.State.Winner().String(), gameMetric.Winner)
		require.Equal(t, int(game.Vertical), gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, 2*len(moveMetrics), e.State.OccupiedCount())

		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, i%2, mm.Player, "Players alternate starting with vertical")
			require.Equal(t, "flat", mm.Searcher)
		}
		last := moveMetrics[len(moveMetrics)-1]
		require.Equal(t, score, game.Player(last.Player).Score(), "The last mover wins")
	})

	t.Run("stops on agent errors", func(t *testing.T) {
		e := NewLocalEngine(flatAgent(2, 1), failingAgent{})

		_, _, moveMetrics, err := e.Run(context.Background())

		require.ErrorContains(t, err, "out of time")
		require.Len(t, moveMetrics, 1)
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() { NewLocalEngine(nil, failingAgent{}) })
	})
}
