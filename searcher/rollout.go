package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Playout plays uniformly random allowed actions on a clone of state until
// none are left and returns the terminal clone. The game must be finite.
func Playout[A comparable, S State[A, S]](state S, rng *rand.Rand) (S, error) {
	state = state.Clone()
	actions := state.AllowedActions()
	for len(actions) > 0 {
		action := actions[rng.Intn(len(actions))] // Random rollout policy
		if err := state.MakeMove(action); err != nil {
			return state, fmt.Errorf("playout: %w", err)
		}
		actions = state.AllowedActions()
	}
	return state, nil
}

// ExpectedReward estimates the reward of state as the mean over independent
// playouts. It returns 0 for non-positive samples.
func ExpectedReward[A comparable, S State[A, S]](state S, samples int, rng *rand.Rand) (float64, error) {
	if samples <= 0 {
		return 0, nil
	}
	total := 0.0
	for i := 0; i < samples; i++ {
		final, err := Playout[A](state, rng)
		if err != nil {
			return 0, err
		}
		total += final.Reward()
	}
	return total / float64(samples), nil
}
