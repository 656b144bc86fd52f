package engine

import (
	"context"
	"domineering/experiments/metrics"
	"domineering/game"
	"domineering/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

// LocalEngine plays one game between two in-process (or remote) agents.
type LocalEngine struct {
	State  game.State
	Agents [2]agent.Agent // Indexed by game.Player
}

func NewLocalEngine(vertical, horizontal agent.Agent) *LocalEngine {
	if vertical == nil || horizontal == nil {
		panic("need an agent for both players")
	}
	return &LocalEngine{
		State:  game.InitialState(),
		Agents: [2]agent.Agent{vertical, horizontal},
	}
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.State.Player()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	step := 1
	for !e.State.Terminated() {
		player := e.State.Player()
		move, searchMetric, err := e.Agents[player].FindMove(ctx, e.State)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("step %d, %s failed to move: %w", step, player, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Move:         int(move),
			SearchMetric: searchMetric,
		})
		log.Trace().Msgf("step %d: %s plays %s", step, player, move)

		e.State.Play(move)
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = e.State.Winner().String()
	gameMetric.Score = e.State.Score()

	return gameMetric.Score, gameMetric, moveMetrics, nil
}
