package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"mcts/experiments/metrics"
	"mcts/searcher"
)

type Config struct {
	EnsembleSize int
	Budget       time.Duration // Per move, used when Samples is 0
	Samples      int           // Fixed iterations per member and move
	Exploration  float64
	MaxMoves     int
	Seed         uint64
	BatchMin     int
	BatchMax     int
	BatchCutoff  int
}

// Local plays a game on the local machine with an ensemble searcher choosing
// every move.
type Local[A comparable, S searcher.State[A, S]] struct {
	State    S
	config   Config
	respond  func(S) error
	ensemble *searcher.Ensemble[A, S]
	metrics  metrics.Collector
}

// LocalEngine prepares a game starting at state. respond, if not nil, lets
// the environment act after every committed move.
func LocalEngine[A comparable, S searcher.State[A, S]](state S, config Config, respond func(S) error) *Local[A, S] {
	if config.Samples <= 0 && config.Budget <= 0 {
		panic("Must specify search samples or budget")
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = MaxMoves
	}

	collector := metrics.NewCollector()
	ensemble := searcher.New[A](state, config.EnsembleSize,
		searcher.WithSeed(config.Seed),
		searcher.WithMetrics(collector),
		searcher.WithBatchLimits(config.BatchMin, config.BatchMax, config.BatchCutoff),
	)

	return &Local[A, S]{
		State:    state,
		config:   config,
		respond:  respond,
		ensemble: ensemble,
		metrics:  collector,
	}
}

// Run executes the game loop until no action is left.
func (e *Local[A, S]) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	game := metrics.GameMetric{Seed: e.config.Seed, StartTime: time.Now()}
	var moves []metrics.MoveMetric

	step := 1
	for ; step <= e.config.MaxMoves; step++ {
		if len(e.State.AllowedActions()) == 0 {
			game.Terminal = true
			break
		}

		e.metrics.Start(e.ensemble.Size())
		if err := e.search(ctx); err != nil {
			return game, moves, fmt.Errorf("search at move %d: %w", step, err)
		}
		metric := e.metrics.Complete()
		stats := e.ensemble.TreeStatistics()

		action, ok := e.ensemble.BestAction()
		if !ok {
			log.Warn().Msgf("no action found at move %d", step)
			break
		}
		if err := e.State.MakeMove(action); err != nil {
			return game, moves, fmt.Errorf("committing move %d: %w", step, err)
		}
		if e.respond != nil {
			if err := e.respond(e.State); err != nil {
				return game, moves, fmt.Errorf("responding to move %d: %w", step, err)
			}
		}
		e.ensemble.AdvanceGame(e.State)

		moves = append(moves, metrics.MoveMetric{
			Step:         step,
			Action:       fmt.Sprint(action),
			Reward:       e.State.Reward(),
			Nodes:        stats.Nodes,
			MinDepth:     stats.MinDepth,
			MaxDepth:     stats.MaxDepth,
			SearchMetric: metric,
		})
		log.Info().Msgf("move %d: %v reward=%.3f %v episodes=%d", step, action, e.State.Reward(), stats, metric.Episodes)
	}

	if !game.Terminal && len(e.State.AllowedActions()) == 0 {
		game.Terminal = true
	}
	game.EndTime = time.Now()
	game.Duration = game.EndTime.Sub(game.StartTime)
	game.TotalMoves = len(moves)
	game.Reward = e.State.Reward()
	return game, moves, nil
}

func (e *Local[A, S]) search(ctx context.Context) error {
	if e.config.Samples > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return e.ensemble.Search(e.config.Samples, e.config.Exploration)
	}
	return e.ensemble.SearchTime(ctx, e.config.Budget, e.config.Exploration)
}
