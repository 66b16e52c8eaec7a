// Package adv2048 models 2048 with tile spawns as explicit moves, so player
// moves and spawn moves alternate and the search tree branches over both.
package adv2048

import (
	"fmt"

	"github.com/samber/lo"

	"mcts/game"
	"mcts/game/twofortyeight"
)

type Kind uint8

const (
	PlayerMove Kind = iota
	SpawnMove
)

// Action is either a player direction or the board index a 2 spawns on.
type Action struct {
	Kind      Kind
	Direction twofortyeight.Direction
	Position  int
}

func Player(d twofortyeight.Direction) Action {
	return Action{Kind: PlayerMove, Direction: d}
}

func Spawn(position int) Action {
	return Action{Kind: SpawnMove, Position: position}
}

func (a Action) String() string {
	if a.Kind == SpawnMove {
		return fmt.Sprintf("spawn@%d", a.Position)
	}
	return a.Direction.String()
}

type Game struct {
	Board twofortyeight.Board
	Score float64
	Moves int
	last  Kind
	rng   game.Rng
}

// Empty returns a board without tiles, waiting for a player move.
func Empty(seed uint64) *Game {
	return &Game{last: SpawnMove, rng: game.NewRng(seed)}
}

// New returns a game with two randomly spawned starting tiles.
func New(seed uint64) *Game {
	g := Empty(seed)
	g.RandomSpawn()
	g.RandomSpawn()
	return g
}

// RandomSpawn plays the environment's spawn move on a uniformly chosen empty
// cell. It does nothing on a full board.
func (g *Game) RandomSpawn() {
	cells := g.Board.EmptyCells()
	if len(cells) == 0 {
		return
	}
	g.spawn(cells[g.rng.Intn(len(cells))])
}

func (g *Game) spawn(position int) {
	g.Board[position] = 2
	g.last = SpawnMove
}

func (g *Game) AllowedActions() []Action {
	if g.last == PlayerMove {
		return lo.Map(g.Board.EmptyCells(), func(position int, _ int) Action {
			return Spawn(position)
		})
	}
	return lo.Map(g.Board.Moves(), func(d twofortyeight.Direction, _ int) Action {
		return Player(d)
	})
}

func (g *Game) MakeMove(action Action) error {
	switch action.Kind {
	case PlayerMove:
		if g.last == PlayerMove {
			return fmt.Errorf("%w: %v while a spawn is due", game.ErrIllegalMove, action)
		}
		board, points, changed := g.Board.Shift(action.Direction)
		if !changed {
			return fmt.Errorf("%w: %v leaves the board unchanged", game.ErrIllegalMove, action)
		}
		g.Board = board
		g.Score += points
		g.Moves++
		g.last = PlayerMove
	case SpawnMove:
		if g.last != PlayerMove {
			return fmt.Errorf("%w: %v while a player move is due", game.ErrIllegalMove, action)
		}
		if action.Position < 0 || action.Position >= twofortyeight.Cells || g.Board[action.Position] != 0 {
			return fmt.Errorf("%w: %v is not an empty cell", game.ErrIllegalMove, action)
		}
		g.spawn(action.Position)
	default:
		return fmt.Errorf("%w: unknown action kind %d", game.ErrIllegalMove, action.Kind)
	}
	return nil
}

func (g *Game) Reward() float64 {
	return g.Score / 1000
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
