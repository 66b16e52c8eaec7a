package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mcts/game"
	"mcts/searcher"
)

var _ searcher.State[Move, *State] = (*State)(nil)

func play(t *testing.T, moves ...Move) *State {
	t.Helper()
	s := New()
	for _, m := range moves {
		require.NoError(t, s.MakeMove(m))
	}
	return s
}

func TestNew(t *testing.T) {
	s := New()
	require.Equal(t, Cross, s.Next(), "Cross should start")
	require.Len(t, s.AllowedActions(), Size*Size)
	require.Zero(t, s.Reward())
}

func TestMakeMove(t *testing.T) {
	t.Run("players alternate", func(t *testing.T) {
		s := play(t, Move{0, 0}, Move{1, 1})
		require.Equal(t, Cross, s.At(0, 0))
		require.Equal(t, Circle, s.At(1, 1))
		require.Equal(t, Cross, s.Next())
		require.Len(t, s.AllowedActions(), 7)
		require.NotContains(t, s.AllowedActions(), Move{0, 0})
	})

	t.Run("occupied field", func(t *testing.T) {
		s := play(t, Move{0, 0})
		require.ErrorIs(t, s.MakeMove(Move{0, 0}), game.ErrIllegalMove)
	})

	t.Run("off the board", func(t *testing.T) {
		require.ErrorIs(t, New().MakeMove(Move{3, 0}), game.ErrIllegalMove)
	})
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		moves  []Move
		winner Player
		reward float64
	}{
		{"row", []Move{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}}, Cross, 1},
		{"column", []Move{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}, {2, 1}}, Circle, -1},
		{"diagonal", []Move{{0, 0}, {0, 1}, {1, 1}, {0, 2}, {2, 2}}, Cross, 1},
		{"anti-diagonal", []Move{{0, 0}, {0, 2}, {0, 1}, {1, 1}, {2, 2}, {2, 0}}, Circle, -1},
		{"draw", []Move{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}}, Empty, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := play(t, tt.moves...)
			require.Equal(t, tt.winner, s.Winner())
			require.Equal(t, tt.reward, s.Reward())
			require.Empty(t, s.AllowedActions(), "Game should be over")
			require.ErrorIs(t, s.MakeMove(Move{0, 0}), game.ErrIllegalMove)
		})
	}
}

func TestClone(t *testing.T) {
	s := play(t, Move{0, 0})
	clone := s.Clone()
	require.NoError(t, clone.MakeMove(Move{2, 2}))
	require.Equal(t, Empty, s.At(2, 2), "Original should be untouched")
	require.Equal(t, Circle, s.Next())
}
