package engine

import (
	"context"

	"mcts/experiments/metrics"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays until the game is over or the move limit is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
