package game

import (
	"errors"

	"golang.org/x/exp/rand"
)

// ErrIllegalMove is returned by MakeMove when the action is not currently allowed.
var ErrIllegalMove = errors.New("illegal move")

// Rng is a seedable random source whose state is copied, not shared, when a
// game is cloned. Clones therefore replay the same random future.
type Rng struct {
	src *rand.PCGSource
	*rand.Rand
}

func NewRng(seed uint64) Rng {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return Rng{src: src, Rand: rand.New(src)}
}

// Seed resets the generator in place.
func (r Rng) Seed(seed uint64) {
	r.src.Seed(seed)
}

func (r Rng) Clone() Rng {
	src := *r.src
	return Rng{src: &src, Rand: rand.New(&src)}
}
