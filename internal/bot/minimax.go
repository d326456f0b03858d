package bot

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	scoreWin  = 1
	scoreDraw = 0
	scoreLoss = -1
)

type positionKey struct {
	board entity.Board
	turn  entity.Mark
	self  entity.Mark
}

// Minimax searches the whole game tree and never loses.
// Scores are +1, 0 and -1 from the mover's point of view; equal scores keep the lowest cell.
// Not safe for concurrent use.
type Minimax struct {
	scores map[positionKey]int
}

func NewMinimax() *Minimax {
	return &Minimax{scores: make(map[positionKey]int)}
}

func (that *Minimax) ChooseMove(state entity.GameState) (int, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return 0, fmt.Errorf("minimax bot: %w", err)
	}

	self := state.Turn
	bestCell, bestScore := moves[0], scoreLoss-1

	for _, cell := range moves {
		next := state
		if err = next.Apply(cell); err != nil {
			return 0, fmt.Errorf("minimax bot: %w", err)
		}

		// a move that wins on the spot already has the top score
		if next.Outcome.Status == entity.StatusWin {
			return cell, nil
		}

		if score := that.score(next, self); score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, nil
}

// Reset drops the cached position scores.
func (that *Minimax) Reset() {
	clear(that.scores)
}

func (that *Minimax) score(state entity.GameState, self entity.Mark) int {
	switch state.Outcome.Status {
	case entity.StatusWin:
		if state.Outcome.Winner == self {
			return scoreWin
		}
		return scoreLoss
	case entity.StatusDraw:
		return scoreDraw
	}

	key := positionKey{board: state.Board, turn: state.Turn, self: self}
	if cached, ok := that.scores[key]; ok {
		return cached
	}

	maximizing := state.Turn == self

	best := scoreWin + 1
	if maximizing {
		best = scoreLoss - 1
	}

	for _, cell := range state.LegalMoves() {
		next := state
		if err := next.Apply(cell); err != nil {
			continue
		}

		score := that.score(next, self)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	that.scores[key] = best
	return best
}
