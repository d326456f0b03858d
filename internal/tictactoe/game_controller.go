package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Coordinator owns the state of one match and asks the agent on turn for each move.
type Coordinator struct {
	mode       string
	difficulty string
	agents     map[entity.Mark]Agent
	state      entity.GameState
}

// NewMatch binds agents to both marks for mode and starts an empty game with first to move.
// Difficulty selects the strategy of every bot agent and is ignored for human_vs_human.
func NewMatch(mode, difficulty string, first entity.Mark, rnd bot.Rand) (*Coordinator, error) {
	return Restore(mode, difficulty, entity.NewGameState(first), rnd)
}

// Restore rebuilds a coordinator around an existing state with freshly built agents.
func Restore(mode, difficulty string, state entity.GameState, rnd bot.Rand) (*Coordinator, error) {
	agents, err := newAgents(mode, difficulty, rnd)
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		mode:       mode,
		difficulty: difficulty,
		agents:     agents,
		state:      state,
	}, nil
}

func newAgents(mode, difficulty string, rnd bot.Rand) (map[entity.Mark]Agent, error) {
	agents := make(map[entity.Mark]Agent, 2)

	switch mode {
	case entity.ModeHumanVsHuman:
		agents[entity.PlayerX] = NewHumanAgent(entity.PlayerX)
		agents[entity.PlayerO] = NewHumanAgent(entity.PlayerO)

	// the human always holds X against the bot
	case entity.ModeHumanVsAI, entity.ModeAIVsHuman:
		botO, err := NewBotAgent(entity.PlayerO, difficulty, rnd)
		if err != nil {
			return nil, err
		}
		agents[entity.PlayerX] = NewHumanAgent(entity.PlayerX)
		agents[entity.PlayerO] = botO

	case entity.ModeAIVsAI:
		for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
			agent, err := NewBotAgent(mark, difficulty, rnd)
			if err != nil {
				return nil, err
			}
			agents[mark] = agent
		}

	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	return agents, nil
}

// CurrentAgent returns the agent holding the mark on turn.
func (that *Coordinator) CurrentAgent() Agent {
	return that.agents[that.state.Turn]
}

// IsHumanTurn reports whether the next Advance needs an external move.
func (that *Coordinator) IsHumanTurn() bool {
	return that.CurrentAgent().Kind() == entity.KindHuman
}

// State returns a copy of the current game state.
func (that *Coordinator) State() entity.GameState {
	return that.state
}

func (that *Coordinator) BoardSnapshot() [entity.BoardSize]entity.Mark {
	return that.state.Board.Snapshot()
}

func (that *Coordinator) LegalMoves() []int {
	return that.state.LegalMoves()
}

func (that *Coordinator) Outcome() entity.Outcome {
	return that.state.Outcome
}

// Players describes who holds each mark.
func (that *Coordinator) Players() []*entity.Player {
	players := make([]*entity.Player, 0, len(that.agents))
	for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		agent := that.agents[mark]
		player := &entity.Player{Mark: mark, Kind: agent.Kind()}
		if agent.Kind() == entity.KindBot {
			player.Difficulty = that.difficulty
		}
		players = append(players, player)
	}
	return players
}

// Advance plays one move. On a human turn external must hold the cell; on a bot turn it is ignored.
func (that *Coordinator) Advance(external *int) (entity.GameState, error) {
	if err := that.state.ConfirmOngoingState(); err != nil {
		return that.state, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	agent := that.CurrentAgent()

	if human, ok := agent.(*HumanAgent); ok {
		if external == nil {
			return that.state, fmt.Errorf("%s to move: %w", human.Mark(), apperror.ErrMissingInput)
		}
		human.SetNextMove(*external)
	}

	cell, err := agent.ChooseMove(that.state)
	if err != nil {
		return that.state, fmt.Errorf("failed to choose move: %w", err)
	}

	if err = that.state.Apply(cell); err != nil {
		return that.state, fmt.Errorf("failed to apply move: %w", err)
	}

	return that.state, nil
}

// Reset discards the current game and starts a fresh one with first to move.
func (that *Coordinator) Reset(first entity.Mark) entity.GameState {
	for _, agent := range that.agents {
		agent.Reset()
	}

	that.state = entity.NewGameState(first)

	return that.state
}
