package engine

import (
	"context"
	"domineering/experiments/metrics"
	"domineering/searcher"
	"domineering/searcher/agent"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidConfig = errors.New("invalid match configuration")

// Tally counts wins per side over a batch of matches.
type Tally struct {
	Vertical   int
	Horizontal int
}

func (t Tally) Matches() int {
	return t.Vertical + t.Horizontal
}

func (t Tally) VerticalRate() float64 {
	if t.Matches() == 0 {
		return 0
	}
	return float64(t.Vertical) / float64(t.Matches())
}

func (t Tally) HorizontalRate() float64 {
	if t.Matches() == 0 {
		return 0
	}
	return float64(t.Horizontal) / float64(t.Matches())
}

func (t Tally) String() string {
	return fmt.Sprintf("%.1f%% vertical - %.1f%% horizontal over %d matches",
		100*t.VerticalRate(), 100*t.HorizontalRate(), t.Matches())
}

type MatchResult struct {
	Score int
	Game  metrics.GameMetric
	Moves []metrics.MoveMetric
}

// TallyResults counts a win for the side each score favors.
func TallyResults(results []MatchResult) Tally {
	var t Tally
	for _, r := range results {
		if r.Score > 0 {
			t.Vertical++
		} else {
			t.Horizontal++
		}
	}
	return t
}

// AgentFactory builds the agent for the given match, so that concurrent
// matches never share search state.
type AgentFactory func(match int) agent.Agent

// RunMatches plays n matches, at most parallel of them at a time, and
// returns their results in match order.
func RunMatches(ctx context.Context, n int, vertical, horizontal AgentFactory, parallel int) ([]MatchResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d matches", ErrInvalidConfig, n)
	}
	if parallel <= 0 {
		parallel = 1
	}

	results := make([]MatchResult, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			e := NewLocalEngine(vertical(i), horizontal(i))
			score, gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			results[i] = MatchResult{Score: score, Game: gameMetric, Moves: moveMetrics}
			log.Debug().Msgf("match %d of %d won by %s in %d moves", i+1, n, gameMetric.Winner, gameMetric.TotalMoves)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type BatchOption func(b *batch)

type batch struct {
	parallel   int
	goroutines int
	seed       uint64
}

// WithParallelMatches sets how many matches run at once.
func WithParallelMatches(parallel int) BatchOption {
	return func(b *batch) {
		if parallel > 0 {
			b.parallel = parallel
		}
	}
}

// WithSearchGoroutines sets the goroutines of every move search.
func WithSearchGoroutines(goroutines int) BatchOption {
	return func(b *batch) {
		if goroutines > 0 {
			b.goroutines = goroutines
		}
	}
}

// WithSeed makes a batch reproducible.
func WithSeed(seed uint64) BatchOption {
	return func(b *batch) {
		b.seed = seed
	}
}

func newBatch(options []BatchOption) batch {
	b := batch{ // Default values
		parallel:   1,
		goroutines: runtime.GOMAXPROCS(0),
		seed:       uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

func (b batch) flatAgent(budget int, stream uint64) AgentFactory {
	return func(match int) agent.Agent {
		return agent.NewEvaluationAgent(searcher.NewFlatMC(
			searcher.WithSimulations(budget),
			searcher.WithGoroutines(b.goroutines),
			searcher.WithSeed(b.seed+2*uint64(match)+stream),
		))
	}
}

func validateBudgets(budgetVertical, budgetHorizontal int) error {
	if budgetVertical <= 0 || budgetHorizontal <= 0 {
		return fmt.Errorf("%w: simulation budgets must be positive, got vertical=%d horizontal=%d",
			ErrInvalidConfig, budgetVertical, budgetHorizontal)
	}
	return nil
}

// PlayOneMatch plays a flat Monte Carlo agent with budgetVertical playouts
// per move against one with budgetHorizontal and returns the final score.
func PlayOneMatch(ctx context.Context, budgetVertical, budgetHorizontal int, options ...BatchOption) (int, error) {
	if err := validateBudgets(budgetVertical, budgetHorizontal); err != nil {
		return 0, err
	}
	b := newBatch(options)
	results, err := RunMatches(ctx, 1, b.flatAgent(budgetVertical, 0), b.flatAgent(budgetHorizontal, 1), 1)
	if err != nil {
		return 0, err
	}
	return results[0].Score, nil
}

// PlayMatches plays n matches between flat Monte Carlo agents and tallies
// the wins.
func PlayMatches(ctx context.Context, n, budgetVertical, budgetHorizontal int, options ...BatchOption) (Tally, error) {
	if n <= 0 {
		return Tally{}, fmt.Errorf("%w: %d matches", ErrInvalidConfig, n)
	}
	if err := validateBudgets(budgetVertical, budgetHorizontal); err != nil {
		return Tally{}, err
	}
	b := newBatch(options)

	log.Info().Msgf("playing %d matches, vertical budget %d against horizontal budget %d", n, budgetVertical, budgetHorizontal)
	results, err := RunMatches(ctx, n, b.flatAgent(budgetVertical, 0), b.flatAgent(budgetHorizontal, 1), b.parallel)
	if err != nil {
		return Tally{}, err
	}
	tally := TallyResults(results)
	log.Info().Msgf("completed %d matches: %s", n, tally)
	return tally, nil
}
