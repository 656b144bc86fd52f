package searcher

import "domineering/game"

// Playout plays uniformly random moves until the game is over. It mutates
// state; copy it first to keep the starting position.
func Playout(state *game.State, rng Rand) {
	for !state.Terminated() {
		state.PlayIndex(rng.Intn(state.Count()))
	}
}

// PlayoutFrom plays move, then finishes the game at random.
func PlayoutFrom(state *game.State, move game.Move, rng Rand) {
	state.Play(move)
	Playout(state, rng)
}
