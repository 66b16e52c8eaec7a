package searcher

import (
	"fmt"

	"mcts/game"
)

// chain is a game of fixed length where every step offers width actions and
// the reward is the sum of the chosen actions.
type chain struct {
	depth   int
	length  int
	width   int
	sum     int
	seed    uint64
	illegal bool // MakeMove always fails
}

func newChain(length, width int) *chain {
	return &chain{length: length, width: width}
}

func (c *chain) AllowedActions() []int {
	if c.depth >= c.length {
		return nil
	}
	actions := make([]int, c.width)
	for i := range actions {
		actions[i] = i
	}
	return actions
}

func (c *chain) MakeMove(action int) error {
	if c.illegal || c.depth >= c.length || action < 0 || action >= c.width {
		return fmt.Errorf("%w: %d", game.ErrIllegalMove, action)
	}
	c.depth++
	c.sum += action
	return nil
}

func (c *chain) Reward() float64 {
	return float64(c.sum)
}

func (c *chain) SetRNGSeed(seed uint64) {
	c.seed = seed
}

func (c *chain) Clone() *chain {
	clone := *c
	return &clone
}
