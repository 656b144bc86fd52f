package main

import (
	"context"
	"domineering/communication/client"
	"domineering/communication/server"
	"domineering/engine"
	"domineering/experiments"
	"domineering/experiments/metrics"
	"domineering/meta"
	"domineering/searcher"
	"domineering/searcher/agent"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode        string
	logLevel    string
	matches     int
	parallel    int
	goroutines  int
	vertical    int
	horizontal  int
	seed        uint64
	duration    time.Duration
	searcher    string
	episodes    int
	simulations int
	addr        string
	remote      string
	out         string
	temperature float64
}

func parseOptions(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("domineering", flag.ContinueOnError)
	fs.StringVar(&o.mode, "mode", "match", "One of match, throughput, experiment or serve")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	fs.IntVar(&o.matches, "matches", meta.MATCHES, "Number of matches to play")
	fs.IntVar(&o.parallel, "parallel", 1, "Matches played at once")
	fs.IntVar(&o.goroutines, "goroutines", meta.GO_ROUTINES, "Goroutines per search or throughput run")
	fs.IntVar(&o.vertical, "vertical", meta.SIMULATIONS, "Playouts per move of the vertical agent")
	fs.IntVar(&o.horizontal, "horizontal", meta.SIMULATIONS, "Playouts per move of the horizontal agent")
	fs.Uint64Var(&o.seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
	fs.DurationVar(&o.duration, "duration", meta.DURATION, "Throughput run time, or MCTS time per move")
	fs.StringVar(&o.searcher, "searcher", "flat", "Searcher served by serve mode (flat or mcts)")
	fs.IntVar(&o.episodes, "episodes", meta.EPISODES, "MCTS episodes per move, zero to search for -duration")
	fs.IntVar(&o.simulations, "simulations", meta.SIMULATIONS, "Flat Monte Carlo playouts per move in serve mode")
	fs.StringVar(&o.addr, "addr", meta.ADDR, "Listen address of serve mode")
	fs.StringVar(&o.remote, "remote", "", "Base URL of a remote agent playing horizontal in match mode")
	fs.StringVar(&o.out, "out", "results", "Output directory of experiment mode")
	fs.Float64Var(&o.temperature, "temperature", 0, "Serve a flat agent sampling moves at this temperature instead of the best one")
	err := fs.Parse(args)
	return o, err
}

func main() {
	o, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		log.Fatal().Err(err).Msgf("%s failed", o.mode)
	}
}

func run(ctx context.Context, o options) error {
	switch o.mode {
	case "match":
		if o.remote != "" {
			return remoteMatch(ctx, o)
		}
		tally, err := engine.PlayMatches(ctx, o.matches, o.vertical, o.horizontal,
			engine.WithParallelMatches(o.parallel),
			engine.WithSearchGoroutines(o.goroutines),
			engine.WithSeed(o.seed))
		if err != nil {
			return err
		}
		fmt.Println(tally)
	case "throughput":
		t, err := experiments.RunThroughput(ctx, o.goroutines, o.duration, o.seed)
		if err != nil {
			return err
		}
		fmt.Printf("%d playouts in %s: %.0f per second, mean score %.3f\n", t.Playouts, t.Elapsed, t.PerSecond(), t.MeanScore)
	case "experiment":
		baseline, configs := experiments.BudgetConfigs(o.goroutines)
		x := experiments.Experiment{Name: "budget", Dir: o.out, NumGames: o.matches, Parallel: o.parallel, Seed: o.seed}
		dir, err := x.Run(ctx, baseline, configs)
		if err != nil {
			return err
		}
		fmt.Println(dir)
	case "serve":
		config := metrics.AgentConfig{
			Searcher:    o.searcher,
			Goroutines:  o.goroutines,
			Simulations: o.simulations,
			Episodes:    o.episodes,
			Duration:    o.duration,
		}
		var a agent.Agent
		if o.temperature > 0 {
			flat := searcher.NewFlatMC(searcher.WithSimulations(o.simulations), searcher.WithGoroutines(o.goroutines), searcher.WithSeed(o.seed))
			a = agent.NewTrainingAgent(flat, o.temperature, o.seed)
		} else {
			a = agent.NewEvaluationAgent(experiments.CreateSearcher(config, o.seed))
		}
		s := server.New(a)
		log.Info().Msgf("serving %s agent on %s", o.searcher, o.addr)
		return s.ListenAndServe(ctx, o.addr)
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
	return nil
}

// remoteMatch plays local flat Monte Carlo as vertical against the remote
// agent as horizontal.
func remoteMatch(ctx context.Context, o options) error {
	if o.vertical <= 0 {
		return fmt.Errorf("%w: vertical budget %d", engine.ErrInvalidConfig, o.vertical)
	}
	remote := client.New(o.remote)
	local := func(match int) agent.Agent {
		return agent.NewEvaluationAgent(searcher.NewFlatMC(
			searcher.WithSimulations(o.vertical),
			searcher.WithGoroutines(o.goroutines),
			searcher.WithSeed(o.seed+uint64(match)),
		))
	}
	results, err := engine.RunMatches(ctx, o.matches, local, func(int) agent.Agent { return remote }, o.parallel)
	if err != nil {
		return err
	}
	fmt.Println(engine.TallyResults(results))
	return nil
}
