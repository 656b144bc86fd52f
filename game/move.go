package game

import "fmt"

// Move packs (player, x, y) as player*100 + x*10 + y. The vertical player
// covers (x, y) and (x, y+1), the horizontal player (x, y) and (x+1, y).
type Move uint8

// Encode panics when the coordinates fall outside the board.
func Encode(player Player, x, y int) Move {
	if player > Horizontal || x < 0 || x >= Size || y < 0 || y >= Size {
		panic(fmt.Sprintf("game: cannot encode move player=%d x=%d y=%d", player, x, y))
	}
	return encode(player, x, y)
}

func encode(player Player, x, y int) Move {
	return Move(int(player)*100 + x*10 + y)
}

// Decode is the inverse of Encode.
func (m Move) Decode() (player Player, x, y int) {
	return Player(m / 100), int(m/10) % 10, int(m % 10)
}

func (m Move) Player() Player {
	return Player(m / 100)
}

// Cells returns the linear indices of the two cells covered by the move.
// It panics if the move does not fit on the board.
func (m Move) Cells() (first, second int) {
	player, x, y := m.Decode()
	switch {
	case player == Vertical && x < Size && y < Size-1:
		return Index(x, y), Index(x, y+1)
	case player == Horizontal && x < Size-1 && y < Size:
		return Index(x, y), Index(x+1, y)
	default:
		panic(fmt.Sprintf("game: move %d does not fit on the board", m))
	}
}

func (m Move) String() string {
	player, x, y := m.Decode()
	return fmt.Sprintf("%d(%s %d,%d)", uint8(m), player, x, y)
}
