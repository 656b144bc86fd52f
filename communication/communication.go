package communication

import (
	"domineering/game"
	"fmt"
)

// FindMoveRequest is the body of POST /findmove. Occupied lists covered
// cells as game.Index(x, y).
type FindMoveRequest struct {
	Occupied []int `json:"occupied"`
	Player   int   `json:"player"`
}

type FindMoveResponse struct {
	Move     int    `json:"move"`
	Player   int    `json:"player"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Playouts int    `json:"playouts"`
	Searcher string `json:"searcher,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func EncodeState(state game.State) FindMoveRequest {
	occupancy := state.Occupancy()
	occupied := make([]int, 0, state.OccupiedCount())
	for i, covered := range occupancy {
		if covered {
			occupied = append(occupied, i)
		}
	}
	return FindMoveRequest{Occupied: occupied, Player: int(state.Player())}
}

// State rebuilds the position described by the request.
func (r FindMoveRequest) State() (game.State, error) {
	if r.Player != int(game.Vertical) && r.Player != int(game.Horizontal) {
		return game.State{}, fmt.Errorf("invalid player %d", r.Player)
	}
	var occupied [game.Cells]bool
	for _, cell := range r.Occupied {
		if cell < 0 || cell >= game.Cells {
			return game.State{}, fmt.Errorf("cell %d outside the board", cell)
		}
		occupied[cell] = true
	}
	return game.NewState(occupied, game.Player(r.Player)), nil
}

func EncodeMove(move game.Move) FindMoveResponse {
	player, x, y := move.Decode()
	return FindMoveResponse{Move: int(move), Player: int(player), X: x, Y: y}
}
