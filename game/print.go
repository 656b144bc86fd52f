package game

import (
	"strconv"
	"strings"
)

// String renders the board with y growing upwards, "::" for covered cells
// and "[]" for free ones, followed by the pending moves.
func (s *State) String() string {
	var b strings.Builder
	for row := Size - 1; row >= 0; row-- {
		b.WriteString(strconv.Itoa(row))
		for x := 0; x < Size; x++ {
			if s.occupied[Index(x, row)] {
				b.WriteString("::")
			} else {
				b.WriteString("[]")
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte(' ')
	for x := 0; x < Size; x++ {
		b.WriteString(strconv.Itoa(x))
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte('\n')

	b.WriteString(s.player.String())
	b.WriteString(" to move, possible moves: ")
	b.WriteString(strconv.Itoa(int(s.count)))
	b.WriteByte('\n')
	for i := 0; i < int(s.count); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(s.moves[i])))
	}
	if s.count == 0 {
		b.WriteString("winner: ")
		b.WriteString(s.Winner().String())
	}
	b.WriteByte('\n')
	return b.String()
}
