package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Searcher    string
	Goroutines  int
	Simulations int // Playouts per candidate move, 0 for tree search
	Candidates  int
	Duration    time.Duration
	Episodes    int
	Playouts    int
}

type MoveMetric struct {
	Step   int
	Player int
	Move   int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string
	Score          int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers the statistics of a single search. Workers report
// through it concurrently.
type Collector interface {
	Start(searcher string, goroutines, simulations, candidates int)
	AddPlayouts(n int)
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	searcher    string
	goroutines  int
	simulations int
	candidates  int
	startTime   time.Time
	episodes    atomic.Int64
	playouts    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(searcher string, goroutines, simulations, candidates int) {
	m.startTime = time.Now()
	m.searcher = searcher
	m.goroutines = goroutines
	m.simulations = simulations
	m.candidates = candidates
	m.episodes.Store(0)
	m.playouts.Store(0)
}

func (m *collector) AddPlayouts(n int) {
	m.playouts.Add(int64(n))
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Searcher:    m.searcher,
		Goroutines:  m.goroutines,
		Simulations: m.simulations,
		Candidates:  m.candidates,
		Duration:    time.Since(m.startTime),
		Episodes:    int(m.episodes.Load()),
		Playouts:    int(m.playouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(searcher string, goroutines, simulations, candidates int) {}
func (m *dummyCollector) AddPlayouts(n int)                                              {}
func (m *dummyCollector) AddEpisode()                                                    {}
func (m *dummyCollector) Complete() SearchMetric                                         { return SearchMetric{} }
