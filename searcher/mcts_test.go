package searcher

import (
	"domineering/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	t.Run("panics without episodes or duration", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(WithGoroutines(2)) })
	})
}

func TestMCTSSearch(t *testing.T) {
	t.Run("finds the winning vertical move", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(200), WithGoroutines(4), WithSeed(1))

		require.Equal(t, game.Encode(game.Vertical, 4, 4), m.FindNextMove(verticalChoice()))
	})

	t.Run("finds the winning horizontal move", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(200), WithGoroutines(4), WithSeed(1))

		require.Equal(t, game.Encode(game.Horizontal, 4, 4), m.FindNextMove(horizontalChoice()))
	})

	t.Run("counts episodes", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(300), WithGoroutines(3), WithMetrics())

		move, metric := m.Search(game.InitialState())

		state := game.InitialState()
		require.Contains(t, state.LegalMoves(), move)
		require.Equal(t, "mcts", metric.Searcher)
		require.Equal(t, 300, metric.Episodes)
		require.Equal(t, 300, metric.Playouts)
	})

	t.Run("stops after its duration", func(t *testing.T) {
		m := NewMCTS(WithDuration(20*time.Millisecond), WithGoroutines(2), WithMetrics())

		move, metric := m.Search(game.InitialState())

		state := game.InitialState()
		require.Contains(t, state.LegalMoves(), move)
		require.GreaterOrEqual(t, metric.Episodes, 2)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})

	t.Run("repeated sequential searches agree", func(t *testing.T) {
		state := game.InitialState()
		state.Play(game.Encode(game.Vertical, 2, 2))
		m := NewMCTS(WithEpisodes(150), WithGoroutines(1), WithSeed(8))

		require.Equal(t, m.FindNextMove(state), m.FindNextMove(state))
	})

	t.Run("panics on a terminal state", func(t *testing.T) {
		state := lastMoveState()
		state.Play(state.Move(0))
		m := NewMCTS(WithEpisodes(10))

		require.Panics(t, func() { m.Search(state) })
	})
}
