package bot

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Random plays a uniformly chosen legal cell.
type Random struct {
	rnd Rand
}

func NewRandom(rnd Rand) *Random {
	return &Random{rnd: rnd}
}

func (that *Random) ChooseMove(state entity.GameState) (int, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return 0, fmt.Errorf("random bot: %w", err)
	}

	return moves[that.rnd.Intn(len(moves))], nil
}
