package searcher

import (
	"domineering/experiments/metrics"
	"domineering/game"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MCTS is a tree-parallel UCT searcher: goroutines share one tree and
// apply virtual losses so they spread over different branches. A search
// runs a fixed number of episodes or until its duration elapses.
type MCTS struct {
	config
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{config: newConfig(options)}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

func (m *MCTS) Search(state game.State) (game.Move, metrics.SearchMetric) {
	if state.Terminated() {
		panic("cannot search a terminal state")
	}
	root := newDecision(nil, 0, &state)
	collector := m.collector()
	collector.Start("mcts", m.goroutines, 0, state.Count())

	key := positionKey(&state)
	if m.episodes > 0 {
		m.iterate(root, state, key, collector)
	} else {
		m.countdown(root, state, key, collector)
	}
	metric := collector.Complete()
	log.Debug().Msgf("mcts searched %d episodes for %s", metric.Episodes, state.Player())

	return root.findBestMove(), metric
}

// FindNextMove returns the most visited root move.
func (m *MCTS) FindNextMove(state game.State) game.Move {
	move, _ := m.Search(state)
	return move
}

func (m *MCTS) iterate(root *decision, state game.State, key uint64, collector metrics.Collector) {
	task := make(chan int, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rng := m.newRand()
			for episode := range task {
				rng.Seed(derive(m.seed, key, uint64(episode)))
				simulate(root, state, rng)
				collector.AddEpisode()
				collector.AddPlayouts(1)
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *decision, state game.State, key uint64, collector metrics.Collector) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			rng := m.newRand()
			rng.Seed(derive(m.seed, key, uint64(worker)))
			// At least one episode per worker so the root has a child
			for {
				simulate(root, state, rng)
				collector.AddEpisode()
				collector.AddPlayouts(1)

				select {
				case <-done:
					return
				default:
				}
			}
		}(i)
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// simulate runs one episode on its own copy of state.
func simulate(root *decision, state game.State, rng Rand) {
	node := selectThenExpand(root, &state)
	Playout(&state, rng)
	backup(node, state.Winner())
}

func selectThenExpand(root *decision, state *game.State) *decision {
	node := root
	for {
		child, expanded := node.SelectOrExpand(state)
		if child == node { // Terminal node
			return node
		}
		node = child
		if expanded {
			return node
		}
	}
}

func backup(node *decision, winner game.Player) {
	for node != nil {
		node = node.Backup(winner)
	}
}
