package agent

import (
	"context"
	"domineering/experiments/metrics"
	"domineering/game"
	"domineering/searcher"
	"fmt"
)

type evaluationAgent struct {
	searcher searcher.Searcher
}

// NewEvaluationAgent returns an agent that always plays the searcher's
// best move.
func NewEvaluationAgent(s searcher.Searcher) Agent {
	return evaluationAgent{searcher: s}
}

func (a evaluationAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	if state.Terminated() {
		return 0, metrics.SearchMetric{}, fmt.Errorf("no move to find: %s has already won", state.Winner())
	}
	move, metric := a.searcher.Search(state)
	return move, metric, nil
}
