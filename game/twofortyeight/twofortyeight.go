// Package twofortyeight implements plain 2048: every move is followed by a 2
// spawning on a random empty cell, drawn from the game's own seeded generator.
package twofortyeight

import (
	"fmt"

	"mcts/game"
)

type Game struct {
	Board Board
	Score float64
	Moves int
	rng   game.Rng
}

// Empty returns a game with no tiles.
func Empty(seed uint64) *Game {
	return &Game{rng: game.NewRng(seed)}
}

// New returns a game with two starting tiles.
func New(seed uint64) *Game {
	g := Empty(seed)
	g.RandomSpawn()
	g.RandomSpawn()
	return g
}

// RandomSpawn places a 2 on a uniformly chosen empty cell. It does nothing on
// a full board.
func (g *Game) RandomSpawn() {
	cells := g.Board.EmptyCells()
	if len(cells) == 0 {
		return
	}
	g.Board[cells[g.rng.Intn(len(cells))]] = 2
}

func (g *Game) AllowedActions() []Direction {
	return g.Board.Moves()
}

func (g *Game) MakeMove(d Direction) error {
	board, points, changed := g.Board.Shift(d)
	if !changed {
		return fmt.Errorf("%w: %v leaves the board unchanged", game.ErrIllegalMove, d)
	}
	g.Board = board
	g.Score += points
	g.Moves++
	g.RandomSpawn()
	return nil
}

func (g *Game) Reward() float64 {
	return g.Score
}

func (g *Game) SetRNGSeed(seed uint64) {
	g.rng.Seed(seed)
}

func (g *Game) Clone() *Game {
	clone := *g
	clone.rng = g.rng.Clone()
	return &clone
}

func (g *Game) String() string {
	return fmt.Sprintf("score=%.0f moves=%d\n%v", g.Score, g.Moves, g.Board)
}
