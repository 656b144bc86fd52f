package engine

import (
	"context"
	"domineering/experiments/metrics"
)

type Engine interface {
	// Run plays a game till one side cannot move and returns its score
	Run(ctx context.Context) (score int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
