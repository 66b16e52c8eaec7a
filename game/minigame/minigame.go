// Package minigame is a toy arithmetic game: add 3, 4 or 5 to a running sum
// and try to land exactly on WinningSum.
package minigame

import (
	"fmt"

	"mcts/game"
)

const WinningSum = 11

var adds = []int{3, 4, 5}

type Move struct {
	Add int
}

func (m Move) String() string {
	return fmt.Sprintf("+%d", m.Add)
}

type State struct {
	Sum int
}

func New() *State {
	return &State{}
}

func FromSum(sum int) *State {
	return &State{Sum: sum}
}

func (s *State) AllowedActions() []Move {
	if s.Sum >= WinningSum {
		return nil
	}
	moves := make([]Move, len(adds))
	for i, add := range adds {
		moves[i] = Move{Add: add}
	}
	return moves
}

func (s *State) MakeMove(move Move) error {
	if s.Sum >= WinningSum || move.Add < adds[0] || move.Add > adds[len(adds)-1] {
		return fmt.Errorf("%w: %v at sum %d", game.ErrIllegalMove, move, s.Sum)
	}
	s.Sum += move.Add
	return nil
}

func (s *State) Reward() float64 {
	switch {
	case s.Sum == WinningSum:
		return 1
	case s.Sum > WinningSum:
		return -1
	default:
		return 0
	}
}

// SetRNGSeed is a no-op, the game has no chance element.
func (s *State) SetRNGSeed(uint64) {}

func (s *State) Clone() *State {
	clone := *s
	return &clone
}

func (s *State) String() string {
	return fmt.Sprintf("sum=%d", s.Sum)
}
