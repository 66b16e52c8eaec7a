package searcher

import (
	"errors"
	"fmt"
)

// State is what a game must offer to be searched. S is the concrete state
// type itself so Clone stays statically typed.
type State[A comparable, S any] interface {
	// AllowedActions is empty exactly at a terminal state.
	AllowedActions() []A
	// MakeMove applies action in place and fails if it is not allowed.
	MakeMove(action A) error
	Reward() float64
	// SetRNGSeed fixes any chance element of the game.
	SetRNGSeed(seed uint64)
	Clone() S
}

var (
	ErrMissingAction    = errors.New("non-root node without action")
	ErrNoUntriedActions = errors.New("expandable node without untried actions")
	ErrNoChildren       = errors.New("fully expanded node without children")
)

// NodeState is the expansion stage of a node. A node leaves Expandable at
// most once and never returns to it.
type NodeState uint8

const (
	Expandable NodeState = iota
	FullyExpanded
	LeafNode
)

func (s NodeState) String() string {
	switch s {
	case Expandable:
		return "expandable"
	case FullyExpanded:
		return "fully-expanded"
	case LeafNode:
		return "leaf"
	default:
		return fmt.Sprintf("NodeState(%d)", uint8(s))
	}
}
