package searcher

import "math"

const DefaultExploration = 1.0 // UCB1 exploration constant C

type ucb1 struct {
	c         float64
	numerator float64
}

func newUCB1(c float64, total float64) *ucb1 {
	if total == 0 {
		panic("total cannot be 0")
	}
	return &ucb1{c: c, numerator: 2 * math.Log(total)}
}

func (u ucb1) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + c*sqrt(2*ln(T)/n)
	return q/n + u.c*math.Sqrt(u.numerator/n)
}
