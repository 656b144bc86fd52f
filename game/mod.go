package game

import "fmt"

// Board dimensions. Every move occupies two of the Cells cells, so a game
// lasts at most Cells/2 moves.
const (
	Size     = 8
	Cells    = Size * Size
	MaxMoves = Cells
)

// Player identifies a side. The vertical player always moves first.
type Player uint8

const (
	Vertical Player = iota
	Horizontal
	NoPlayer
)

// Opponent returns the other side. It panics for NoPlayer.
func (p Player) Opponent() Player {
	switch p {
	case Vertical:
		return Horizontal
	case Horizontal:
		return Vertical
	default:
		panic(fmt.Sprintf("game: no opponent for player %d", p))
	}
}

// Score is the outcome of a game won by p: +1 for vertical, -1 for
// horizontal and 0 for NoPlayer.
func (p Player) Score() int {
	switch p {
	case Vertical:
		return 1
	case Horizontal:
		return -1
	default:
		return 0
	}
}

func (p Player) String() string {
	switch p {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// Index maps board coordinates to a linear cell index.
func Index(x, y int) int {
	return Size*y + x
}
