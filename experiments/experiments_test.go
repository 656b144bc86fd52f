package experiments

import (
	"context"
	"domineering/engine"
	"domineering/experiments/metrics"
	"domineering/searcher"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExperimentRun(t *testing.T) {
	baseline := metrics.AgentConfig{ID: 0, Searcher: "flat", Goroutines: 2, Simulations: 2}
	configs := []metrics.AgentConfig{
		{ID: 1, Searcher: "flat", Goroutines: 2, Simulations: 4},
		{ID: 2, Searcher: "mcts", Goroutines: 2, Episodes: 20},
	}
	x := Experiment{Name: "budget", Dir: t.TempDir(), NumGames: 2, Parallel: 2, Seed: 7}

	dir, err := x.Run(context.Background(), baseline, configs)
	require.NoError(t, err)

	t.Run("agent configs", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, rows, 1+3)
	})

	t.Run("game records", func(t *testing.T) {
		// 2 configs, both sides, 2 games each
		rows := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, rows, 1+8)

		games, err := metrics.ReadGameRecordsParquet(filepath.Join(dir, "game_records.parquet"))
		require.NoError(t, err)
		require.Len(t, games, 8)
		for _, g := range games {
			require.Contains(t, []string{"vertical", "horizontal"}, g.Winner)
		}
	})

	t.Run("move records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(dir, "move_records.csv"))
		// Every game has at least one move
		require.Greater(t, len(rows), 8)
	})
}

func TestExperimentInvalidConfig(t *testing.T) {
	baseline, _ := BudgetConfigs(1)

	tests := []struct {
		name     string
		numGames int
		config   metrics.AgentConfig
	}{
		{"no games", 0, baseline},
		{"no simulations", 1, metrics.AgentConfig{ID: 1, Searcher: "flat"}},
		{"no mcts budget", 1, metrics.AgentConfig{ID: 1, Searcher: "mcts"}},
		{"unknown searcher", 1, metrics.AgentConfig{ID: 1, Searcher: "minimax", Simulations: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := Experiment{Name: "invalid", Dir: t.TempDir(), NumGames: tt.numGames, Parallel: 1}
			_, err := x.Run(context.Background(), baseline, []metrics.AgentConfig{tt.config})
			require.ErrorIs(t, err, engine.ErrInvalidConfig)
		})
	}
}

func TestCreateSearcher(t *testing.T) {
	flat := CreateSearcher(metrics.AgentConfig{Searcher: "flat", Goroutines: 1, Simulations: 3}, 1)
	require.IsType(t, &searcher.FlatMC{}, flat)
	require.Equal(t, 3, flat.(*searcher.FlatMC).Simulations())

	mcts := CreateSearcher(metrics.AgentConfig{Searcher: "mcts", Goroutines: 1, Duration: time.Millisecond}, 1)
	require.IsType(t, &searcher.MCTS{}, mcts)
}

func TestRunThroughput(t *testing.T) {
	t.Run("plays playouts", func(t *testing.T) {
		result, err := RunThroughput(context.Background(), 2, 50*time.Millisecond, 1)
		require.NoError(t, err)
		require.Equal(t, 2, result.Goroutines)
		require.Positive(t, result.Playouts)
		require.Positive(t, result.PerSecond())
		require.GreaterOrEqual(t, result.MeanScore, -1.0)
		require.LessOrEqual(t, result.MeanScore, 1.0)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := RunThroughput(context.Background(), 0, time.Second, 1)
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RunThroughput(ctx, 2, time.Minute, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}
