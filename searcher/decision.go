package searcher

import (
	"domineering/game"
	"sync"
)

// decision is a tree node for the position reached by move. Rewards are
// counted from the point of view of mover, the player who made that move,
// so a parent picks the child with the best rewards for its side to move.
type decision struct {
	sync.RWMutex
	parent   *decision
	move     game.Move
	mover    game.Player
	moves    []game.Move // Legal moves, expanded in generation order
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, move game.Move, state *game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:   parent,
		move:     move,
		mover:    state.Player().Opponent(),
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand plays one move on state and returns the reached child,
// with a virtual loss applied. A terminal node returns itself.
func (d *decision) SelectOrExpand(state *game.State) (child *decision, expanded bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		state.Play(move)
		child = newDecision(d, move, state)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, true
	}

	// Fully expanded node
	child = d.children[d.pickChild()]
	state.Play(child.move)
	child.applyLoss()
	return child, false
}

func (d *decision) pickChild() int {
	// Children visits include pending virtual losses, so N > 0 even
	// before the first backup reaches this node.
	N := 0.0
	for _, child := range d.children {
		N += child.Visits()
	}
	policy := newUCT(CSquared, N)

	maxIndex := 0
	maxScore := -1.0
	for i, child := range d.children {
		if score := child.score(policy); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) score(policy *uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// Backup records the outcome of a playout through this node and returns
// its parent.
func (d *decision) Backup(winner game.Player) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	if winner == d.mover {
		d.rewards += Win
	} else {
		d.rewards += Loss
	}
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// findBestMove returns the most visited move.
func (d *decision) findBestMove() game.Move {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.children[bestIndex].move
}
