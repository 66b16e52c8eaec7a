package adv2048

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mcts/game"
	"mcts/game/twofortyeight"
	"mcts/searcher"
)

var _ searcher.State[Action, *Game] = (*Game)(nil)

func TestNew(t *testing.T) {
	g := New(1)
	require.Len(t, g.Board.EmptyCells(), twofortyeight.Cells-2)
	for _, a := range g.AllowedActions() {
		require.Equal(t, PlayerMove, a.Kind, "Player should move first")
	}
}

func TestAlternation(t *testing.T) {
	g := Empty(1)
	g.Board.SetTile(0, 0, 2)
	g.Board.SetTile(0, 1, 2)

	require.ErrorIs(t, g.MakeMove(Spawn(5)), game.ErrIllegalMove, "Spawn should wait for a player move")
	require.NoError(t, g.MakeMove(Player(twofortyeight.Left)))
	require.Equal(t, 4.0/1000, g.Reward())
	require.Equal(t, 1, g.Moves)

	spawns := g.AllowedActions()
	require.Len(t, spawns, twofortyeight.Cells-1, "Every empty cell should be a spawn option")
	for _, a := range spawns {
		require.Equal(t, SpawnMove, a.Kind)
	}
	require.ErrorIs(t, g.MakeMove(Player(twofortyeight.Right)), game.ErrIllegalMove, "Player should wait for a spawn")
	require.ErrorIs(t, g.MakeMove(Spawn(0)), game.ErrIllegalMove, "Cannot spawn on an occupied cell")
	require.ErrorIs(t, g.MakeMove(Spawn(twofortyeight.Cells)), game.ErrIllegalMove, "Cannot spawn off the board")

	require.NoError(t, g.MakeMove(Spawn(15)))
	require.Equal(t, uint16(2), g.Board[15])
	require.Equal(t, PlayerMove, g.AllowedActions()[0].Kind)
}

func TestRandomSpawn(t *testing.T) {
	g := Empty(3)
	g.Board.SetTile(0, 0, 2)
	g.Board.SetTile(0, 1, 2)
	require.NoError(t, g.MakeMove(Player(twofortyeight.Left)))

	g.RandomSpawn()
	require.Len(t, g.Board.EmptyCells(), twofortyeight.Cells-2)
	require.Equal(t, PlayerMove, g.AllowedActions()[0].Kind, "Environment spawn should hand the turn back")
}

func TestClone(t *testing.T) {
	g := New(5)
	clone := g.Clone()
	a := clone.AllowedActions()[0]
	require.NoError(t, clone.MakeMove(a))
	require.Zero(t, g.Moves, "Original should be untouched")

	left, right := g.Clone(), g.Clone()
	left.RandomSpawn()
	right.RandomSpawn()
	require.Equal(t, left.Board, right.Board, "Clones should share the random future")
}

func TestActionString(t *testing.T) {
	require.Equal(t, "left", Player(twofortyeight.Left).String())
	require.Equal(t, "spawn@7", Spawn(7).String())
}
