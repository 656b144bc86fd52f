package game

import "fmt"

const (
	resultNone       uint8 = 0
	resultVertical   uint8 = 10
	resultHorizontal uint8 = 20
)

// State is a complete Domineering position. It holds no pointers, so
// assigning a State copies it; simulations copy the position they start
// from and mutate their own copy.
type State struct {
	moves    [MaxMoves]Move // Legal moves of player, valid up to count
	occupied [Cells]bool    // Indexed by Index(x, y)
	count    uint8
	result   uint8 // Set once the game is over, records the last mover
	player   Player
}

// InitialState returns the empty board with the vertical player to move.
func InitialState() State {
	var s State
	s.player = Vertical
	s.generate(Vertical)
	return s
}

// NewState rebuilds a position from an occupancy grid and the side to move.
// If that side has no moves the game is over and its opponent has won.
func NewState(occupied [Cells]bool, player Player) State {
	if player > Horizontal {
		panic(fmt.Sprintf("game: invalid player %d to move", player))
	}
	s := State{occupied: occupied, player: player}
	s.generate(player)
	if s.count == 0 {
		s.result = resultFor(player.Opponent())
	}
	return s
}

func resultFor(winner Player) uint8 {
	if winner == Vertical {
		return resultVertical
	}
	return resultHorizontal
}

// generate overwrites the legal move list with the moves of player,
// scanning x in the outer loop and y in the inner loop.
func (s *State) generate(player Player) {
	count := 0
	if player == Vertical {
		for x := 0; x < Size; x++ {
			for y := 0; y < Size-1; y++ {
				i := Index(x, y)
				if !s.occupied[i] && !s.occupied[i+Size] {
					s.moves[count] = encode(Vertical, x, y)
					count++
				}
			}
		}
	} else {
		for x := 0; x < Size-1; x++ {
			for y := 0; y < Size; y++ {
				i := Index(x, y)
				if !s.occupied[i] && !s.occupied[i+1] {
					s.moves[count] = encode(Horizontal, x, y)
					count++
				}
			}
		}
	}
	s.count = uint8(count)
}

// Play applies a legal move of the player to move. Playing on a finished
// game or on occupied cells is a programming error and panics.
func (s *State) Play(move Move) {
	if s.count == 0 {
		panic(fmt.Sprintf("game: move %s played on a terminal state", move))
	}
	mover := move.Player()
	if mover != s.player {
		panic(fmt.Sprintf("game: move %s played out of turn, %s to move", move, s.player))
	}
	first, second := move.Cells()
	if s.occupied[first] || s.occupied[second] {
		panic(fmt.Sprintf("game: move %s covers an occupied cell", move))
	}
	s.occupied[first] = true
	s.occupied[second] = true

	s.player = mover.Opponent()
	s.generate(s.player)

	// The side left without a move loses
	if s.count == 0 {
		s.result = resultFor(mover)
	}
}

// PlayIndex plays the i-th legal move.
func (s *State) PlayIndex(i int) {
	if i < 0 || i >= int(s.count) {
		panic(fmt.Sprintf("game: move index %d out of range [0, %d)", i, s.count))
	}
	s.Play(s.moves[i])
}

// Player returns the side to move.
func (s *State) Player() Player {
	return s.player
}

// Count returns the number of legal moves of the side to move.
func (s *State) Count() int {
	return int(s.count)
}

// Move returns the i-th legal move without copying the move list.
func (s *State) Move(i int) Move {
	if i < 0 || i >= int(s.count) {
		panic(fmt.Sprintf("game: move index %d out of range [0, %d)", i, s.count))
	}
	return s.moves[i]
}

// LegalMoves returns a copy of the legal moves in generation order.
func (s *State) LegalMoves() []Move {
	moves := make([]Move, s.count)
	copy(moves, s.moves[:s.count])
	return moves
}

func (s *State) Terminated() bool {
	return s.count == 0
}

// Score is +1 once vertical has won, -1 once horizontal has won and 0
// while the game is running.
func (s *State) Score() int {
	return s.Winner().Score()
}

func (s *State) Winner() Player {
	switch s.result {
	case resultVertical:
		return Vertical
	case resultHorizontal:
		return Horizontal
	default:
		return NoPlayer
	}
}

func (s *State) Occupied(x, y int) bool {
	return s.occupied[Index(x, y)]
}

// Occupancy returns a copy of the occupancy grid.
func (s *State) Occupancy() [Cells]bool {
	return s.occupied
}

// OccupiedCount returns the number of covered cells.
func (s *State) OccupiedCount() int {
	n := 0
	for _, occupied := range s.occupied {
		if occupied {
			n++
		}
	}
	return n
}
