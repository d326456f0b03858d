package usecase

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const FirstTurnRandom = "random"

// Starter decides which mark opens a game.
type Starter interface {
	First() entity.Mark
}

// FixedStarter always opens with the same mark.
type FixedStarter entity.Mark

func (that FixedStarter) First() entity.Mark {
	return entity.Mark(that)
}

// RandomStarter flips a coin per game.
type RandomStarter struct {
	rnd bot.Rand
}

func NewRandomStarter(rnd bot.Rand) *RandomStarter {
	return &RandomStarter{rnd: rnd}
}

func (that *RandomStarter) First() entity.Mark {
	if that.rnd.Intn(2) == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

// NewStarter parses the first-turn setting: "x", "o" or "random".
func NewStarter(firstTurn string, rnd bot.Rand) (Starter, error) {
	if strings.EqualFold(strings.TrimSpace(firstTurn), FirstTurnRandom) {
		return NewRandomStarter(rnd), nil
	}

	mark, err := entity.ParseMark(firstTurn)
	if err != nil {
		return nil, err
	}

	return FixedStarter(mark), nil
}
