package searcher

import (
	"domineering/experiments/metrics"
	"domineering/game"
	"domineering/utils"
	"sync"
)

// FlatMC ranks every legal move by the mean outcome of a fixed number of
// random playouts started with that move. It builds no tree.
//
// Playout j of candidate i is seeded from the base seed, the position, i
// and j, so repeated searches of a position with a fixed seed return the
// same move whatever the number of goroutines.
type FlatMC struct {
	config
}

type trials struct {
	candidate  int
	start, end int
}

func NewFlatMC(options ...Option) *FlatMC {
	f := &FlatMC{config: newConfig(options)}
	if f.simulations <= 0 {
		panic("Must specify simulations per move")
	}
	return f
}

// Simulations returns the number of playouts per candidate move.
func (f *FlatMC) Simulations() int {
	return f.simulations
}

func (f *FlatMC) Search(state game.State) (game.Move, metrics.SearchMetric) {
	collector := f.collector()
	collector.Start("flat", f.goroutines, f.simulations, state.Count())
	best := f.selectIndex(&state, collector)
	return state.Move(best), collector.Complete()
}

// FindNextMove returns the legal move with the best mean playout score for
// the side to move.
func (f *FlatMC) FindNextMove(state game.State) game.Move {
	move, _ := f.Search(state)
	return move
}

// SelectIndex returns the index of the chosen move in state.LegalMoves().
func (f *FlatMC) SelectIndex(state game.State) int {
	return f.selectIndex(&state, metrics.NewDummyCollector())
}

// Evaluate returns the mean playout score of every legal move, indexed
// like state.LegalMoves().
func (f *FlatMC) Evaluate(state game.State) []float64 {
	sums := f.simulate(&state, metrics.NewDummyCollector())
	return f.means(sums)
}

func (f *FlatMC) selectIndex(state *game.State, collector metrics.Collector) int {
	means := f.means(f.simulate(state, collector))
	return best(means, state.Player())
}

func (f *FlatMC) means(sums []int64) []float64 {
	means := make([]float64, len(sums))
	for i, sum := range sums {
		means[i] = float64(sum) / float64(f.simulations)
	}
	return means
}

// best maximizes for vertical and minimizes for horizontal. Ties go to the
// first candidate.
func best(means []float64, player game.Player) int {
	if player == game.Vertical {
		return utils.BestIndex(means, func(a, b float64) bool { return a > b })
	}
	return utils.BestIndex(means, func(a, b float64) bool { return a < b })
}

// simulate returns the sum of playout scores per candidate. Workers only
// read state and keep their own sums, merged once all of them are done.
func (f *FlatMC) simulate(state *game.State, collector metrics.Collector) []int64 {
	if state.Terminated() {
		panic("cannot search a terminal state")
	}
	key := positionKey(state)
	candidates := state.Count()

	chunk := (f.simulations + f.goroutines - 1) / f.goroutines
	task := make(chan trials, candidates*((f.simulations+chunk-1)/chunk))
	for i := 0; i < candidates; i++ {
		for start := 0; start < f.simulations; start += chunk {
			task <- trials{candidate: i, start: start, end: min(start+chunk, f.simulations)}
		}
	}
	close(task)

	partial := make([][]int64, f.goroutines)
	var wg sync.WaitGroup
	for w := 0; w < f.goroutines; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			rng := f.newRand()
			sums := make([]int64, candidates)
			playouts := 0
			for t := range task {
				move := state.Move(t.candidate)
				for trial := t.start; trial < t.end; trial++ {
					rng.Seed(derive(f.seed, key, uint64(t.candidate), uint64(trial)))
					copied := *state
					PlayoutFrom(&copied, move, rng)
					sums[t.candidate] += int64(copied.Score())
				}
				playouts += t.end - t.start
			}
			partial[w] = sums
			collector.AddPlayouts(playouts)
		}(w)
	}
	wg.Wait()

	total := make([]int64, candidates)
	for _, sums := range partial {
		for i, sum := range sums {
			total[i] += sum
		}
	}
	return total
}
