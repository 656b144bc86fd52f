package agent

import (
	"context"
	"domineering/experiments/metrics"
	"domineering/game"
)

type Agent interface {
	// FindMove returns the move to play in a non-terminal state and the
	// search metrics (if collected) behind the choice
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error)
}
