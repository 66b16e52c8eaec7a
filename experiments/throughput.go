package experiments

import (
	"time"

	"golang.org/x/exp/rand"

	"mcts/searcher"
)

type Throughput struct {
	Playouts          int
	Duration          time.Duration
	PlayoutsPerSecond float64
	ExpectedReward    float64
}

// MeasureThroughput times random playouts from state and reports their mean
// reward.
func MeasureThroughput[A comparable, S searcher.State[A, S]](state S, playouts int, seed uint64) (Throughput, error) {
	rng := rand.New(rand.NewSource(seed))

	start := time.Now()
	reward, err := searcher.ExpectedReward[A](state, playouts, rng)
	if err != nil {
		return Throughput{}, err
	}
	elapsed := time.Since(start)

	result := Throughput{
		Playouts:       playouts,
		Duration:       elapsed,
		ExpectedReward: reward,
	}
	if elapsed > 0 {
		result.PlayoutsPerSecond = float64(playouts) / elapsed.Seconds()
	}
	return result, nil
}
