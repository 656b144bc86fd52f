package experiments

import (
	"context"
	"domineering/game"
	"domineering/searcher"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Throughput struct {
	Goroutines int
	Playouts   int
	Elapsed    time.Duration
	MeanScore  float64
}

func (t Throughput) PerSecond() float64 {
	if t.Elapsed <= 0 {
		return 0
	}
	return float64(t.Playouts) / t.Elapsed.Seconds()
}

// RunThroughput plays random games from the initial position on every
// goroutine until duration elapses.
func RunThroughput(ctx context.Context, goroutines int, duration time.Duration, seed uint64) (Throughput, error) {
	if goroutines <= 0 || duration <= 0 {
		return Throughput{}, fmt.Errorf("throughput needs goroutines and a duration, got %d and %s", goroutines, duration)
	}

	playouts := make([]int, goroutines)
	scores := make([]int, goroutines)
	start := time.Now()
	deadline := start.Add(duration)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + uint64(w)))
			initial := game.InitialState()
			for n := 0; ; n++ {
				// Checking the clock every playout would dominate the cost
				if n%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
					if time.Now().After(deadline) {
						return nil
					}
				}
				state := initial
				searcher.Playout(&state, rng)
				playouts[w]++
				scores[w] += state.Score()
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Throughput{}, err
	}

	t := Throughput{Goroutines: goroutines, Elapsed: time.Since(start)}
	total := 0
	for w := range playouts {
		t.Playouts += playouts[w]
		total += scores[w]
	}
	if t.Playouts > 0 {
		t.MeanScore = float64(total) / float64(t.Playouts)
	}
	log.Info().Msgf("%d goroutines played %d playouts in %s (%.0f per second)", goroutines, t.Playouts, t.Elapsed, t.PerSecond())
	return t, nil
}
