package tictactoe

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"mcts/game"
)

const Size = 3

type Player uint8

const (
	Empty Player = iota
	Cross
	Circle
)

func (p Player) String() string {
	switch p {
	case Cross:
		return "X"
	case Circle:
		return "O"
	default:
		return " "
	}
}

type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// State is a tic-tac-toe position. Rewards are from Cross' perspective.
type State struct {
	board [Size * Size]Player
	next  Player
}

func New() *State {
	return &State{next: Cross}
}

func (s *State) Next() Player {
	return s.next
}

func (s *State) At(row, col int) Player {
	return s.board[row*Size+col]
}

// Winner returns the player owning a complete line, or Empty.
func (s *State) Winner() Player {
	for i := 0; i < Size; i++ {
		if p := s.line(i*Size, 1); p != Empty {
			return p
		}
		if p := s.line(i, Size); p != Empty {
			return p
		}
	}
	if p := s.line(0, Size+1); p != Empty {
		return p
	}
	return s.line(Size-1, Size-1)
}

func (s *State) line(start, stride int) Player {
	first := s.board[start]
	for i := 1; i < Size; i++ {
		if s.board[start+i*stride] != first {
			return Empty
		}
	}
	return first
}

func (s *State) AllowedActions() []Move {
	if s.Winner() != Empty {
		return nil
	}
	free := lo.Filter(lo.Range(Size*Size), func(idx int, _ int) bool {
		return s.board[idx] == Empty
	})
	return lo.Map(free, func(idx int, _ int) Move {
		return Move{Row: idx / Size, Col: idx % Size}
	})
}

func (s *State) MakeMove(move Move) error {
	if move.Row < 0 || move.Row >= Size || move.Col < 0 || move.Col >= Size {
		return fmt.Errorf("%w: %v is off the board", game.ErrIllegalMove, move)
	}
	idx := move.Row*Size + move.Col
	if s.board[idx] != Empty || s.Winner() != Empty {
		return fmt.Errorf("%w: %v", game.ErrIllegalMove, move)
	}
	s.board[idx] = s.next
	if s.next == Cross {
		s.next = Circle
	} else {
		s.next = Cross
	}
	return nil
}

func (s *State) Reward() float64 {
	switch s.Winner() {
	case Cross:
		return 1
	case Circle:
		return -1
	default:
		return 0
	}
}

func (s *State) SetRNGSeed(uint64) {}

func (s *State) Clone() *State {
	clone := *s
	return &clone
}

func (s *State) String() string {
	var b strings.Builder
	for row := 0; row < Size; row++ {
		cells := make([]string, Size)
		for col := range cells {
			cells[col] = s.At(row, col).String()
		}
		b.WriteString(strings.Join(cells, "|"))
		b.WriteByte('\n')
		if row < Size-1 {
			b.WriteString("-+-+-\n")
		}
	}
	return b.String()
}
