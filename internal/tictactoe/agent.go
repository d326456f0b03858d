package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Agent selects moves for one mark. Agents only read the state they are given.
type Agent interface {
	Mark() entity.Mark
	Kind() string
	ChooseMove(state entity.GameState) (int, error)
	Reset()
}

// HumanAgent relays a move supplied from outside. It holds at most one pending move.
type HumanAgent struct {
	mark    entity.Mark
	pending *int
}

func NewHumanAgent(mark entity.Mark) *HumanAgent {
	return &HumanAgent{mark: mark}
}

func (that *HumanAgent) Mark() entity.Mark { return that.mark }

func (that *HumanAgent) Kind() string { return entity.KindHuman }

// SetNextMove buffers cell for the next ChooseMove, replacing any earlier one.
func (that *HumanAgent) SetNextMove(cell int) {
	that.pending = &cell
}

// ChooseMove hands out the buffered move once.
func (that *HumanAgent) ChooseMove(_ entity.GameState) (int, error) {
	if that.pending == nil {
		return 0, apperror.ErrMissingInput
	}

	cell := *that.pending
	that.pending = nil

	return cell, nil
}

func (that *HumanAgent) Reset() {
	that.pending = nil
}

// BotAgent plays whatever its strategy picks.
type BotAgent struct {
	mark       entity.Mark
	difficulty string
	strategy   bot.Strategy
}

func NewBotAgent(mark entity.Mark, difficulty string, rnd bot.Rand) (*BotAgent, error) {
	strategy, err := bot.New(difficulty, rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot for %s: %w", mark, err)
	}

	return &BotAgent{mark: mark, difficulty: difficulty, strategy: strategy}, nil
}

func (that *BotAgent) Mark() entity.Mark { return that.mark }

func (that *BotAgent) Kind() string { return entity.KindBot }

func (that *BotAgent) ChooseMove(state entity.GameState) (int, error) {
	cell, err := that.strategy.ChooseMove(state)
	if err != nil {
		return 0, fmt.Errorf("bot %s failed to choose move: %w", that.mark, err)
	}

	return cell, nil
}

// Reset drops any search cache the strategy keeps.
func (that *BotAgent) Reset() {
	if resetter, ok := that.strategy.(interface{ Reset() }); ok {
		resetter.Reset()
	}
}
