package searcher

import "math"

// Default exploration constant for UCT1
const Exploration = 1.0

type uct struct {
	c      float64
	twoLnN float64
}

func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, twoLnN: 2 * math.Log(float64(N))}
}

func (u uct) evaluate(q float64, n int) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT1 = q/n + c*sqrt(2*ln(N)/n)
	return q/float64(n) + u.c*math.Sqrt(u.twoLnN/float64(n))
}
