package searcher

import (
	"domineering/experiments/metrics"
	"domineering/game"
	"runtime"
	"time"

	"golang.org/x/exp/rand"
)

// Searcher picks a move for the side to move. Calling Search on a
// terminal state is a programming error.
type Searcher interface {
	Search(state game.State) (game.Move, metrics.SearchMetric)
}

// Rand is the random source consumed by playouts. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// SeededRand is a Rand that can be reset to a deterministic stream.
// Every search worker owns one and reseeds it before each playout.
type SeededRand interface {
	Rand
	Seed(seed uint64)
}

type Option func(c *config)

type config struct {
	goroutines  int
	simulations int
	episodes    int
	duration    time.Duration
	seed        uint64
	newRand     func() SeededRand
	metrics     bool
}

func newConfig(options []Option) config {
	c := config{ // Default values
		goroutines: runtime.GOMAXPROCS(0),
		seed:       uint64(time.Now().UnixNano()),
		newRand:    newPCG,
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

func newPCG() SeededRand {
	return rand.New(rand.NewSource(0))
}

func WithGoroutines(goroutines int) Option {
	return func(c *config) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

// WithSimulations sets the number of playouts per candidate move of the
// flat Monte Carlo searcher.
func WithSimulations(simulations int) Option {
	return func(c *config) {
		if simulations > 0 {
			c.simulations = simulations
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(c *config) {
		if episodes > 0 {
			c.episodes = episodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(c *config) {
		if duration > 0 {
			c.duration = duration
		}
	}
}

// WithSeed fixes the base seed every playout stream is derived from.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithRandFactory replaces the generator each worker draws from.
func WithRandFactory(factory func() SeededRand) Option {
	return func(c *config) {
		if factory != nil {
			c.newRand = factory
		}
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = true
	}
}

func (c config) collector() metrics.Collector {
	if c.metrics {
		return metrics.NewCollector()
	}
	return metrics.NewDummyCollector()
}

// positionKey packs the occupancy grid into one bit per cell and mixes in
// the side to move.
func positionKey(state *game.State) uint64 {
	var key uint64
	for i, occupied := range state.Occupancy() {
		if occupied {
			key |= 1 << i
		}
	}
	return derive(key, uint64(state.Player()))
}

// derive mixes its inputs into a seed with the splitmix64 finalizer.
func derive(seed uint64, values ...uint64) uint64 {
	for _, v := range values {
		seed = splitmix(seed ^ splitmix(v))
	}
	return seed
}

func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
