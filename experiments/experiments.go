package experiments

import (
	"context"
	"domineering/engine"
	"domineering/experiments/metrics"
	"domineering/searcher"
	"domineering/searcher/agent"
	"fmt"

	"github.com/rs/zerolog/log"
)

// BudgetConfigs compares flat Monte Carlo agents of growing simulation
// budgets against a 100-playout baseline.
func BudgetConfigs(goroutines int) (metrics.AgentConfig, []metrics.AgentConfig) {
	baseline := metrics.AgentConfig{ID: 0, Searcher: "flat", Goroutines: goroutines, Simulations: 100}
	configs := []metrics.AgentConfig{
		{ID: 1, Searcher: "flat", Goroutines: goroutines, Simulations: 100}, // Baseline equivalent
		{ID: 2, Searcher: "flat", Goroutines: goroutines, Simulations: 1000},
		{ID: 3, Searcher: "flat", Goroutines: goroutines, Simulations: 10000},
	}
	return baseline, configs
}

type Experiment struct {
	Name     string
	Dir      string
	NumGames int // Per side per match up
	Parallel int // Matches played at once
	Seed     uint64
}

// Run pairs every config against the baseline, once with each side for
// NumGames games, then stores the configs, games and moves under Dir.
func (x Experiment) Run(ctx context.Context, baseline metrics.AgentConfig, configs []metrics.AgentConfig) (string, error) {
	if x.NumGames <= 0 {
		return "", fmt.Errorf("%w: %d games per match up", engine.ErrInvalidConfig, x.NumGames)
	}
	agents := append([]metrics.AgentConfig{baseline}, configs...)
	for _, config := range agents {
		if err := validate(config); err != nil {
			return "", err
		}
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config}, [2]metrics.AgentConfig{config, baseline})
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchUp := range matchUps {
		vertical, horizontal := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between vertical=%+v and horizontal=%+v...", mi+1, len(matchUps), vertical, horizontal)

		seed := x.Seed + uint64(mi)<<32
		results, err := engine.RunMatches(ctx, x.NumGames,
			factory(vertical, seed), factory(horizontal, seed+1<<16), x.Parallel)
		if err != nil {
			return "", fmt.Errorf("matchup %d: %w", mi+1, err)
		}

		for _, result := range results {
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Vertical:   vertical.ID,
				Horizontal: horizontal.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
		}
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(matchUps), engine.TallyResults(results))
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	return x.store(agents, gameRecords, moveRecords)
}

func (x Experiment) store(configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(x.Dir, x.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteGameRecordsParquet(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

func validate(config metrics.AgentConfig) error {
	switch config.Searcher {
	case "flat":
		if config.Simulations <= 0 {
			return fmt.Errorf("%w: agent %d needs simulations", engine.ErrInvalidConfig, config.ID)
		}
	case "mcts":
		if config.Episodes <= 0 && config.Duration <= 0 {
			return fmt.Errorf("%w: agent %d needs episodes or a duration", engine.ErrInvalidConfig, config.ID)
		}
	default:
		return fmt.Errorf("%w: agent %d has unknown searcher %q", engine.ErrInvalidConfig, config.ID, config.Searcher)
	}
	return nil
}

func factory(config metrics.AgentConfig, seed uint64) engine.AgentFactory {
	return func(match int) agent.Agent {
		return agent.NewEvaluationAgent(CreateSearcher(config, seed+uint64(match)))
	}
}

// CreateSearcher builds the searcher an agent config describes.
func CreateSearcher(config metrics.AgentConfig, seed uint64) searcher.Searcher {
	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}

	if config.Searcher == "mcts" {
		if config.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(config.Episodes))
		}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		return searcher.NewMCTS(options...)
	}

	options = append(options, searcher.WithSimulations(config.Simulations))
	return searcher.NewFlatMC(options...)
}
