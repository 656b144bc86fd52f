package searcher

import (
	"domineering/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCTScore(t *testing.T) {
	t.Run("adds win rate and exploration", func(t *testing.T) {
		policy := newUCT(CSquared, 56)

		expected := 3.0/4 + math.Sqrt(CSquared*math.Log(56)/4)
		require.InDelta(t, expected, policy.evaluate(3, 4), 1e-12)
	})

	t.Run("a single parent visit only counts wins", func(t *testing.T) {
		policy := newUCT(CSquared, 1)

		require.Zero(t, policy.exploration(1))
		require.Equal(t, 0.5, policy.evaluate(1, 2))
	})

	t.Run("panics on zero visits", func(t *testing.T) {
		require.Panics(t, func() { newUCT(CSquared, 0) })
		require.Panics(t, func() { newUCT(CSquared, 10).evaluate(Win, 0) })
	})
}

// expandedRoot expands every vertical opening move of the empty board
// once and records the given wins for the first two of them.
func expandedRoot(t *testing.T, wins ...float64) *decision {
	t.Helper()
	initial := game.InitialState()
	root := newDecision(nil, 0, &initial)
	for i := 0; i < initial.Count(); i++ {
		state := initial
		child, expanded := root.SelectOrExpand(&state)
		require.True(t, expanded)
		winner := game.Horizontal
		if i < len(wins) && wins[i] == Win {
			winner = game.Vertical
		}
		child.Backup(winner)
	}
	return root
}

func TestPickChild(t *testing.T) {
	t.Run("prefers the opening that won for vertical", func(t *testing.T) {
		root := expandedRoot(t, Loss, Win)

		require.Equal(t, 1, root.pickChild())
	})

	t.Run("ties go to the first opening", func(t *testing.T) {
		root := expandedRoot(t)

		require.Equal(t, 0, root.pickChild())
	})

	t.Run("prefers a less visited opening with the same win rate", func(t *testing.T) {
		root := expandedRoot(t, Win, Win)
		first := root.children[0]
		first.Backup(game.Vertical)
		first.Backup(game.Vertical)

		require.Equal(t, 1, root.pickChild())
	})

	t.Run("a pending virtual loss steers away from a child", func(t *testing.T) {
		root := expandedRoot(t, Win, Win)
		root.children[0].applyLoss()

		require.Equal(t, 1, root.pickChild())
	})
}
