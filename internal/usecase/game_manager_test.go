package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockMatchRepo struct {
	mock.Mock
}

func (that *mockMatchRepo) CreateOrUpdate(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)
	return args.Error(0)
}

func (that *mockMatchRepo) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	args := that.Called(ctx, id)
	match, _ := args.Get(0).(*entity.Match)
	return match, args.Error(1)
}

func (that *mockMatchRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newMockRepo(t *testing.T) *mockMatchRepo {
	t.Helper()

	repo := &mockMatchRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func newTestManager(repo matchRepo, starter Starter) *GameManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGameManager(logger, repo, starter, bot.NewLockedRand(1))
}

func humanVsHumanMatch(id string, board entity.Board, turn entity.Mark) *entity.Match {
	return &entity.Match{
		ID:   id,
		Mode: entity.ModeHumanVsHuman,
		State: entity.GameState{
			Board:   board,
			Turn:    turn,
			Outcome: entity.EvaluateTerminal(board),
		},
		Players: []*entity.Player{
			{Mark: entity.PlayerX, Kind: entity.KindHuman},
			{Mark: entity.PlayerO, Kind: entity.KindHuman},
		},
	}
}

func intPtr(i int) *int {
	return &i
}

func TestGameManager_NewMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a match", func(t *testing.T) {
		// Given: a repository that accepts the match and a starter that picks O
		repo := newMockRepo(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Match")).Return(nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerO))

		// When: a human vs bot match is created
		match, err := manager.NewMatch(ctx, entity.ModeHumanVsAI, entity.MediumDifficulty)

		// Then: it has an ID, an empty board, O to move and both seats described
		require.NoError(t, err)
		assert.NotEmpty(t, match.ID)
		assert.Equal(t, entity.NewGameState(entity.PlayerO), match.State)
		require.Len(t, match.Players, 2)
		assert.Equal(t, entity.KindHuman, match.PlayerByMark(entity.PlayerX).Kind)
		assert.Equal(t, entity.KindBot, match.PlayerByMark(entity.PlayerO).Kind)
		assert.Equal(t, entity.MediumDifficulty, match.PlayerByMark(entity.PlayerO).Difficulty)
		assert.False(t, match.CreatedAt.IsZero())
	})

	t.Run("Returns error for an unknown mode without storing", func(t *testing.T) {
		// Given: a repository that expects no calls
		repo := newMockRepo(t)
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: a match with an unknown mode is created
		match, err := manager.NewMatch(ctx, "solo", entity.HardDifficulty)

		// Then: ErrUnknownMode is returned
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
		assert.Nil(t, match)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		// Given: a repository that cannot store
		repo := newMockRepo(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Match")).Return(errRedisDown).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: a match is created
		match, err := manager.NewMatch(ctx, entity.ModeAIVsAI, entity.EasyDifficulty)

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, match)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns error if the match cannot be loaded", func(t *testing.T) {
		// Given: a repository without the match
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m1").Return(nil, apperror.ErrMatchNotFound).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: a turn is made
		match, err := manager.MakeTurn(ctx, "m1", intPtr(0))

		// Then: ErrMatchNotFound is returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Nil(t, match)
	})

	t.Run("Applies a human move and stores the match", func(t *testing.T) {
		// Given: a fresh human vs human match
		stored := humanVsHumanMatch("m2", entity.Board{}, entity.PlayerX)
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m2").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(m *entity.Match) bool {
			return m.ID == "m2" && m.State.Board[4] == entity.PlayerX && m.State.Turn == entity.PlayerO
		})).Return(nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: X plays the center
		match, err := manager.MakeTurn(ctx, "m2", intPtr(4))

		// Then: the move is applied and O is on turn
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, match.State.Board[4])
		assert.Equal(t, entity.Tally{}, manager.Tally())
	})

	t.Run("Rejects an illegal move without storing", func(t *testing.T) {
		// Given: a match where cell 0 is taken
		stored := humanVsHumanMatch("m3", entity.Board{entity.PlayerX}, entity.PlayerO)
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m3").Return(stored, nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: O plays cell 0
		match, err := manager.MakeTurn(ctx, "m3", intPtr(0))

		// Then: ErrIllegalMove is returned with the unchanged match
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.NotNil(t, match)
		assert.Equal(t, entity.PlayerO, match.State.Turn)
	})

	t.Run("Rejects a human turn without input", func(t *testing.T) {
		// Given: a fresh human vs human match
		stored := humanVsHumanMatch("m4", entity.Board{}, entity.PlayerX)
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m4").Return(stored, nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: a turn is made without a cell
		_, err := manager.MakeTurn(ctx, "m4", nil)

		// Then: ErrMissingInput is returned
		require.ErrorIs(t, err, apperror.ErrMissingInput)
	})

	t.Run("Records the outcome of a finishing move", func(t *testing.T) {
		// Given: X is one move from the top row
		board := entity.Board{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		}
		stored := humanVsHumanMatch("m5", board, entity.PlayerX)
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m5").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Match")).Return(nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: X completes the row
		match, err := manager.MakeTurn(ctx, "m5", intPtr(2))

		// Then: X wins and the tally counts it
		require.NoError(t, err)
		assert.Equal(t, entity.Outcome{Status: entity.StatusWin, Winner: entity.PlayerX}, match.State.Outcome)
		assert.Equal(t, entity.Tally{XWins: 1}, manager.Tally())
	})

	t.Run("Returns error if the repository fails on update", func(t *testing.T) {
		// Given: a repository that cannot store
		stored := humanVsHumanMatch("m6", entity.Board{}, entity.PlayerX)
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m6").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Match")).Return(errRedisDown).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		// When: a legal move is made
		match, err := manager.MakeTurn(ctx, "m6", intPtr(0))

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, match)
	})
}

func TestGameManager_ResetAndClose(t *testing.T) {
	ctx := context.Background()

	t.Run("Reset empties the board and picks the opener again", func(t *testing.T) {
		// Given: a finished match
		board := entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		}
		stored := humanVsHumanMatch("m7", board, entity.PlayerX)
		repo := newMockRepo(t)
		repo.On("GetByID", ctx, "m7").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Match")).Return(nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerO))

		// When: the match is reset
		match, err := manager.Reset(ctx, "m7")

		// Then: it is a fresh game with O to move
		require.NoError(t, err)
		assert.Equal(t, entity.NewGameState(entity.PlayerO), match.State)
	})

	t.Run("CloseMatch deletes the match", func(t *testing.T) {
		repo := newMockRepo(t)
		repo.On("DeleteByID", ctx, "m8").Return(nil).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		require.NoError(t, manager.CloseMatch(ctx, "m8"))
	})

	t.Run("CloseMatch returns the repository error", func(t *testing.T) {
		repo := newMockRepo(t)
		repo.On("DeleteByID", ctx, "m9").Return(apperror.ErrMatchNotFound).Once()
		manager := newTestManager(repo, FixedStarter(entity.PlayerX))

		require.ErrorIs(t, manager.CloseMatch(ctx, "m9"), apperror.ErrMatchNotFound)
	})
}

func TestGameManager_PlayAgainstHardBot(t *testing.T) {
	ctx := context.Background()
	rnd := bot.NewRand(5)

	// Given: a manager over the in-memory store with random openers
	manager := NewGameManager(slog.New(slog.NewTextHandler(io.Discard, nil)),
		repository.NewMemoryMatchRepository(), NewRandomStarter(rnd), bot.NewLockedRand(5))

	match, err := manager.NewMatch(ctx, entity.ModeHumanVsAI, entity.HardDifficulty)
	require.NoError(t, err)

	for game := 0; game < 10; game++ {
		// When: the human plays random legal cells and the bot answers
		for !match.IsFinished() {
			var input *int
			if !match.PlayerByMark(match.State.Turn).IsBot() {
				moves := match.State.LegalMoves()
				input = intPtr(moves[rnd.Intn(len(moves))])
			}

			match, err = manager.MakeTurn(ctx, match.ID, input)
			require.NoError(t, err)
		}

		// Then: the human never wins
		assert.NotEqual(t, entity.PlayerX, match.State.Outcome.Winner)

		match, err = manager.Reset(ctx, match.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, manager.Tally().Total())
	assert.Zero(t, manager.Tally().XWins)

	require.NoError(t, manager.CloseMatch(ctx, match.ID))
	_, err = manager.GetMatch(ctx, match.ID)
	require.ErrorIs(t, err, apperror.ErrMatchNotFound)
}

func TestGameManager_Simulate(t *testing.T) {
	ctx := context.Background()

	t.Run("Hard bots only draw", func(t *testing.T) {
		// Given: a manager with random openers
		manager := newTestManager(newMockRepo(t), NewRandomStarter(bot.NewLockedRand(3)))

		// When: 20 hard games are simulated on 4 workers
		tally, err := manager.Simulate(ctx, entity.HardDifficulty, 20, 4)

		// Then: every game is a draw and the manager tally matches
		require.NoError(t, err)
		assert.Equal(t, entity.Tally{Draws: 20}, tally)
		assert.Equal(t, tally, manager.Tally())
	})

	t.Run("Easy bots finish every game", func(t *testing.T) {
		manager := newTestManager(newMockRepo(t), FixedStarter(entity.PlayerX))

		tally, err := manager.Simulate(ctx, entity.EasyDifficulty, 50, 0)

		require.NoError(t, err)
		assert.Equal(t, 50, tally.Total())
	})

	t.Run("Rejects an unknown difficulty", func(t *testing.T) {
		manager := newTestManager(newMockRepo(t), FixedStarter(entity.PlayerX))

		_, err := manager.Simulate(ctx, "nightmare", 5, 2)

		require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
	})

	t.Run("Stops on a canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		manager := newTestManager(newMockRepo(t), FixedStarter(entity.PlayerX))

		_, err := manager.Simulate(canceled, entity.MediumDifficulty, 5, 1)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewStarter(t *testing.T) {
	starter, err := NewStarter("o", bot.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, entity.PlayerO, starter.First())

	starter, err = NewStarter("random", bot.NewRand(1))
	require.NoError(t, err)
	assert.IsType(t, &RandomStarter{}, starter)

	_, err = NewStarter("first", bot.NewRand(1))
	require.ErrorIs(t, err, apperror.ErrUnknownMark)
}
