package experiments

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"mcts/config"
	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/searcher"
)

// Summary aggregates repeated games as mean and standard error.
type Summary struct {
	Games        int
	Terminal     int
	MeanMoves    float64
	StdErrMoves  float64
	MeanReward   float64
	StdErrReward float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games: moves %.1f ± %.1f, reward %.3f ± %.3f",
		s.Games, s.MeanMoves, s.StdErrMoves, s.MeanReward, s.StdErrReward)
}

type setup struct {
	Config    config.Config `json:"config"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Summary   Summary       `json:"summary"`
}

// Run plays cfg.Repeats games, game k starting from newGame(cfg.Seed+k). After
// every committed move respond, if not nil, lets the environment act. If a game
// fails, the summary and final states of the games finished before it are
// returned with the error.
func Run[A comparable, S searcher.State[A, S]](ctx context.Context, cfg config.Config, newGame func(seed uint64) S, respond func(S) error) (Summary, []S, error) {
	start := time.Now()
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	finals := make([]S, 0, cfg.Repeats)

	log.Info().Msgf("starting %d %s games with ensemble=%d", cfg.Repeats, cfg.Game, cfg.EnsembleSize)

	for i := 0; i < cfg.Repeats; i++ {
		seed := cfg.Seed + uint64(i)
		state := newGame(seed)
		e := engine.LocalEngine[A](state, engineConfig(cfg, seed), respond)

		gameMetric, moveMetrics, err := e.Run(ctx)
		if err != nil {
			return Summarize(gameRecords), finals, fmt.Errorf("game %d: %w", i+1, err)
		}
		finals = append(finals, e.State)

		gameRecords = append(gameRecords, metrics.GameRecord{ID: i + 1, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}

		log.Info().Msgf("completed game %d of %d: moves=%d reward=%.3f in %v",
			i+1, cfg.Repeats, gameMetric.TotalMoves, gameMetric.Reward, gameMetric.Duration.Round(time.Millisecond))
	}

	summary := Summarize(gameRecords)
	log.Info().Msgf("completed %v", summary)

	if cfg.OutputDir != "" {
		s := setup{Config: cfg, StartTime: start, EndTime: time.Now(), Summary: summary}
		s.Duration = s.EndTime.Sub(s.StartTime)
		if err := store(cfg.OutputDir, cfg.Game, s, gameRecords, moveRecords); err != nil {
			return summary, finals, err
		}
	}
	return summary, finals, nil
}

func engineConfig(cfg config.Config, seed uint64) engine.Config {
	return engine.Config{
		EnsembleSize: cfg.EnsembleSize,
		Budget:       cfg.TimePerMove,
		Samples:      cfg.Samples,
		Exploration:  cfg.Exploration,
		MaxMoves:     cfg.MaxMoves,
		Seed:         seed,
		BatchMin:     cfg.BatchMin,
		BatchMax:     cfg.BatchMax,
		BatchCutoff:  cfg.BatchCutoff,
	}
}

// Summarize computes the mean and standard error of moves and rewards.
func Summarize(records []metrics.GameRecord) Summary {
	summary := Summary{Games: len(records)}
	if len(records) == 0 {
		return summary
	}

	moves := make([]float64, len(records))
	rewards := make([]float64, len(records))
	for i, record := range records {
		moves[i] = float64(record.TotalMoves)
		rewards[i] = record.Reward
		if record.Terminal {
			summary.Terminal++
		}
	}

	summary.MeanMoves = stat.Mean(moves, nil)
	summary.MeanReward = stat.Mean(rewards, nil)
	if len(records) > 1 {
		n := math.Sqrt(float64(len(records)))
		summary.StdErrMoves = stat.StdDev(moves, nil) / n
		summary.StdErrReward = stat.StdDev(rewards, nil) / n
	}
	return summary
}

func store(root, name string, s setup, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteSetup(s); err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}

	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}
