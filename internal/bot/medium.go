package bot

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Medium follows a fixed rule order: win, block, take the center, otherwise play randomly.
// Corners get no special treatment.
type Medium struct {
	rnd Rand
}

func NewMedium(rnd Rand) *Medium {
	return &Medium{rnd: rnd}
}

func (that *Medium) ChooseMove(state entity.GameState) (int, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return 0, fmt.Errorf("medium bot: %w", err)
	}

	self := state.Turn

	if cell, ok := findWinningCell(state.Board, moves, self); ok {
		return cell, nil
	}

	if cell, ok := findWinningCell(state.Board, moves, self.Opponent()); ok {
		return cell, nil
	}

	for _, cell := range moves {
		if cell == entity.CenterCell {
			return cell, nil
		}
	}

	return moves[that.rnd.Intn(len(moves))], nil
}

// findWinningCell returns the lowest cell among moves that completes a line for mark.
func findWinningCell(board entity.Board, moves []int, mark entity.Mark) (int, bool) {
	for _, cell := range moves {
		scratch := board
		scratch[cell] = mark

		outcome := entity.EvaluateTerminal(scratch)
		if outcome.Status == entity.StatusWin && outcome.Winner == mark {
			return cell, true
		}
	}
	return 0, false
}
