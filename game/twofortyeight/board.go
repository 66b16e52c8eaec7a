package twofortyeight

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	Width  = 4
	Height = 4
	Cells  = Width * Height
)

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Board holds tile values row by row; zero is an empty cell.
type Board [Cells]uint16

// strides returns the first cell, the step between lines and the step along
// a line, walking each line in the direction tiles slide towards.
func strides(d Direction) (start, outer, inner int) {
	switch d {
	case Up:
		return 0, 1, Width
	case Down:
		return Cells - Width, 1, -Width
	case Left:
		return 0, Width, 1
	default:
		return Cells - 1, -Width, -1
	}
}

// Shift slides and merges all tiles towards d. It reports the merged points
// and whether any tile moved.
func (b Board) Shift(d Direction) (Board, float64, bool) {
	start, outer, inner := strides(d)

	var shifted Board
	var points float64
	changed := false
	line := make([]uint16, Height)
	for o := 0; o < Height; o++ {
		for i := range line {
			line[i] = b[start+o*outer+i*inner]
		}
		merged, p, c := mergeLine(line)
		points += p
		changed = changed || c
		for i, tile := range merged {
			shifted[start+o*outer+i*inner] = tile
		}
	}
	return shifted, points, changed
}

// mergeLine slides tiles to the front of line and merges equal neighbours
// once per move.
func mergeLine(line []uint16) ([]uint16, float64, bool) {
	merged := make([]uint16, 0, len(line))
	var points float64
	var pending uint16
	for _, tile := range line {
		if tile == 0 {
			continue
		}
		if tile == pending {
			merged = append(merged, 2*tile)
			points += 2 * float64(tile)
			pending = 0
			continue
		}
		if pending != 0 {
			merged = append(merged, pending)
		}
		pending = tile
	}
	if pending != 0 {
		merged = append(merged, pending)
	}
	for len(merged) < len(line) {
		merged = append(merged, 0)
	}

	changed := false
	for i := range line {
		changed = changed || line[i] != merged[i]
	}
	return merged, points, changed
}

// Moves lists the directions that change the board.
func (b Board) Moves() []Direction {
	return lo.Filter(Directions, func(d Direction, _ int) bool {
		_, _, changed := b.Shift(d)
		return changed
	})
}

func (b Board) Tile(row, col int) uint16 {
	return b[row*Width+col]
}

func (b *Board) SetTile(row, col int, tile uint16) {
	b[row*Width+col] = tile
}

// EmptyCells lists the indices of empty cells in board order.
func (b Board) EmptyCells() []int {
	return lo.Filter(lo.Range(Cells), func(idx int, _ int) bool {
		return b[idx] == 0
	})
}

func (b Board) Full() bool {
	return len(b.EmptyCells()) == 0
}

// MaxTile returns the largest tile on the board.
func (b Board) MaxTile() uint16 {
	return lo.Max(b[:])
}

func (b Board) String() string {
	var sb strings.Builder
	separator := strings.Repeat("+------", Width) + "+\n"
	sb.WriteString(separator)
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			if tile := b.Tile(row, col); tile != 0 {
				fmt.Fprintf(&sb, "|%6d", tile)
			} else {
				sb.WriteString("|      ")
			}
		}
		sb.WriteString("|\n")
		sb.WriteString(separator)
	}
	return sb.String()
}
