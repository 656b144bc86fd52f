package meta

import "time"

// GO_ROUTINES defines the number of goroutines a searcher uses.
const GO_ROUTINES = 8

// SIMULATIONS defines the playouts per candidate move of flat Monte Carlo.
const SIMULATIONS = 100

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 1000

// DURATION bounds an MCTS search when no episode count is given.
const DURATION = 500 * time.Millisecond

// MATCHES defines how many matches a batch plays.
const MATCHES = 10

const ADDR = ":8080"
