package agent

import (
	"context"
	"domineering/experiments/metrics"
	"domineering/game"
	"domineering/searcher"
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.FlatMC
	temperature float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples moves in
// proportion to exp(mean/temperature) instead of always playing the best
// one, so repeated games explore different lines.
func NewTrainingAgent(mcts *searcher.FlatMC, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	if state.Terminated() {
		return 0, metrics.SearchMetric{}, fmt.Errorf("no move to find: %s has already won", state.Winner())
	}
	means := a.mcts.Evaluate(state)
	policy := adjustTemperature(means, state.Player(), a.temperature)

	a.mu.Lock()
	sampled := a.rng.Float64()
	a.mu.Unlock()

	return state.Move(sample(policy, sampled)), metrics.SearchMetric{
		Searcher:    "flat-training",
		Simulations: a.mcts.Simulations(),
		Candidates:  len(means),
		Playouts:    len(means) * a.mcts.Simulations(),
	}, nil
}

// adjustTemperature turns mean scores into move probabilities from the
// point of view of player.
func adjustTemperature(means []float64, player game.Player, temperature float64) []float64 {
	sign := float64(player.Score())
	exponents := make([]float64, len(means))
	top := math.Inf(-1)
	for i, mean := range means {
		exponents[i] = sign * mean / temperature
		top = math.Max(top, exponents[i])
	}

	// Shifted by the largest exponent so small temperatures cannot overflow
	probs := make([]float64, len(means))
	sum := 0.0
	for i, exponent := range exponents {
		probs[i] = math.Exp(exponent - top)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample(policy []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
