package searcher

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/rand"

	"mcts/experiments/metrics"
)

// Node is one vertex of a search tree. A parent owns its children; values
// flow back up through the return values of iterate, so there is no parent
// pointer.
type Node[A comparable, S State[A, S]] struct {
	action    A
	hasAction bool // false only at a root
	children  []*Node[A, S]
	state     NodeState
	visits    int
	rewards   float64
}

func newRoot[A comparable, S State[A, S]]() *Node[A, S] {
	return &Node[A, S]{}
}

func newNode[A comparable, S State[A, S]](action A) *Node[A, S] {
	return &Node[A, S]{action: action, hasAction: true}
}

func (n *Node[A, S]) Action() (A, bool) {
	return n.action, n.hasAction
}

// Children are kept in expansion order.
func (n *Node[A, S]) Children() []*Node[A, S] {
	return n.children
}

func (n *Node[A, S]) State() NodeState {
	return n.state
}

func (n *Node[A, S]) Visits() int {
	return n.visits
}

func (n *Node[A, S]) Rewards() float64 {
	return n.rewards
}

func (n *Node[A, S]) update(delta float64) {
	n.visits++
	n.rewards += delta
}

// BestChild returns the child with the highest UCT1 score for exploration
// constant c, the first one in expansion order on ties, or nil for a
// childless node. With c = 0 it picks the best mean value.
func (n *Node[A, S]) BestChild(c float64) *Node[A, S] {
	if len(n.children) == 0 {
		return nil
	}
	policy := newUCT(c, n.visits)

	best := n.children[0]
	bestScore := policy.evaluate(best.rewards, best.visits)
	for _, child := range n.children[1:] {
		score := policy.evaluate(child.rewards, child.visits)
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// BestPath follows greedy BestChild(0) choices down from n.
func (n *Node[A, S]) BestPath() []A {
	var path []A
	for child := n.BestChild(0); child != nil; child = child.BestChild(0) {
		path = append(path, child.action)
	}
	return path
}

func (n *Node[A, S]) hasChild(action A) bool {
	for _, child := range n.children {
		if child.action == action {
			return true
		}
	}
	return false
}

// expand adds a child for one untried action, chosen uniformly at random. It
// returns nil and turns n into a leaf if state has no allowed actions.
func (n *Node[A, S]) expand(state S, rng *rand.Rand) (*Node[A, S], error) {
	allowed := state.AllowedActions()
	if len(allowed) == 0 {
		n.state = LeafNode
		return nil, nil
	}

	candidates := make([]A, 0, len(allowed))
	for _, action := range allowed {
		if !n.hasChild(action) {
			candidates = append(candidates, action)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoUntriedActions
	}
	if len(candidates) == 1 {
		// The child created below is the last untried action
		n.state = FullyExpanded
	}

	child := newNode[A, S](candidates[rng.Intn(len(candidates))])
	n.children = append(n.children, child)
	return child, nil
}

// unexpand drops the child added by the last expand so no unvisited child
// stays in the tree.
func (n *Node[A, S]) unexpand(previous NodeState) {
	n.children = n.children[:len(n.children)-1]
	n.state = previous
}

// iterate runs one selection, expansion, simulation and backup pass below n.
// state is advanced destructively along the way and must be a throwaway clone.
func (n *Node[A, S]) iterate(state S, c float64, rng *rand.Rand, collector metrics.Collector) (float64, error) {
	var delta float64

	switch n.state {
	case LeafNode:
		delta = state.Reward()

	case FullyExpanded:
		child := n.BestChild(c)
		if child == nil {
			return 0, ErrNoChildren
		}
		if !child.hasAction {
			return 0, ErrMissingAction
		}
		if err := state.MakeMove(child.action); err != nil {
			return 0, fmt.Errorf("selecting %v: %w", child.action, err)
		}
		d, err := child.iterate(state, c, rng, collector)
		if err != nil {
			return 0, err
		}
		delta = d

	default:
		previous := n.state
		child, err := n.expand(state, rng)
		if err != nil {
			return 0, err
		}
		if child == nil {
			delta = state.Reward()
			break
		}
		if err := state.MakeMove(child.action); err != nil {
			n.unexpand(previous)
			return 0, fmt.Errorf("expanding %v: %w", child.action, err)
		}
		final, err := Playout[A](state, rng)
		if err != nil {
			n.unexpand(previous)
			return 0, err
		}
		collector.AddFullPlayout()
		delta = final.Reward()
		// The new child is not recursed into, so it records its first visit here
		child.update(delta)
	}

	n.update(delta)
	return delta, nil
}

// Statistics summarizes the shape of the subtree rooted at n.
func (n *Node[A, S]) Statistics() TreeStatistics {
	if len(n.children) == 0 {
		return TreeStatistics{Nodes: 1}
	}
	stats := make([]TreeStatistics, len(n.children))
	for i, child := range n.children {
		stats[i] = child.Statistics()
	}
	return mergeStatistics(stats)
}

// Dump writes the subtree rooted at n, one indented line per node.
func (n *Node[A, S]) Dump(w io.Writer) error {
	return n.dump(w, 0)
}

func (n *Node[A, S]) dump(w io.Writer, depth int) error {
	label := "root"
	if n.hasAction {
		label = fmt.Sprint(n.action)
	}
	_, err := fmt.Fprintf(w, "%s%s q=%.3f n=%d %v\n", strings.Repeat("  ", depth), label, n.rewards, n.visits, n.state)
	if err != nil {
		return err
	}
	for _, child := range n.children {
		if err := child.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
