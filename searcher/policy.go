package searcher

import "math"

// uct scores the children of a node visited N times by the win rate of
// their mover plus an exploration bonus: q/n + sqrt(c^2*ln(N)/n).
type uct struct {
	cSquared float64
	logN     float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("parent visits cannot be 0")
	}
	return &uct{cSquared: cSquared, logN: math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("child visits cannot be 0")
	}
	return u.winRate(q, n) + u.exploration(n)
}

func (u uct) winRate(q, n float64) float64 {
	return q / n
}

// exploration vanishes for a single parent visit since ln(1) is 0.
func (u uct) exploration(n float64) float64 {
	return math.Sqrt(u.cSquared * u.logN / n)
}
