package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"golang.org/x/sync/errgroup"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

// seedSource hands out seeds for per-match random sources.
type seedSource interface {
	bot.Rand
	Int63() int64
}

// GameManager runs matches by ID on top of the match store and keeps the tally of finished games.
type GameManager struct {
	logger    *slog.Logger
	matchRepo matchRepo
	starter   Starter
	rnd       seedSource
	now       func() time.Time

	mu    sync.Mutex
	tally entity.Tally
}

// NewGameManager wires the manager. rnd must be safe for concurrent use, e.g. *bot.LockedRand.
func NewGameManager(logger *slog.Logger, matchRepo matchRepo, starter Starter, rnd seedSource) *GameManager {
	return &GameManager{
		logger: logger,

		matchRepo: matchRepo,
		starter:   starter,
		rnd:       rnd,
		now:       time.Now,
	}
}

// NewMatch creates and stores a match whose opener comes from the starter.
func (that *GameManager) NewMatch(ctx context.Context, mode, difficulty string) (*entity.Match, error) {
	coordinator, err := tictactoe.NewMatch(mode, difficulty, that.starter.First(), that.rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	now := that.now()
	match := &entity.Match{
		ID:         uuid.NewString(),
		Mode:       mode,
		Difficulty: difficulty,
		State:      coordinator.State(),
		Players:    coordinator.Players(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}

	that.logger.Info("match created", "method", "NewMatch", "matchID", match.ID, "mode", mode, "first", match.State.Turn)

	return match, nil
}

// GetMatch returns the stored match.
func (that *GameManager) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// MakeTurn advances the match by one move. cell is required on a human turn and ignored on a bot turn.
// A rejected move returns the unchanged match together with the error.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell *int) (*entity.Match, error) {
	log := that.logger.With("method", "MakeTurn", "matchID", id)

	match, err := that.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	coordinator, err := tictactoe.Restore(match.Mode, match.Difficulty, match.State, that.rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to restore match: %w", err)
	}

	mover := match.State.Turn

	state, err := coordinator.Advance(cell)
	if err != nil {
		log.Debug("turn rejected", "mark", mover, "error", err)
		return match, fmt.Errorf("failed to make turn: %w", err)
	}

	match.State = state
	match.UpdatedAt = that.now()

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	log.Debug("turn made", "mark", mover, "board", state.Board)

	if state.IsFinished() {
		that.record(state.Outcome)
		log.Info("match finished", "outcome", state.Outcome.String())
	}

	return match, nil
}

// Reset starts the match over with a fresh board and a new opener.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	coordinator, err := tictactoe.Restore(match.Mode, match.Difficulty, match.State, that.rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to restore match: %w", err)
	}

	match.State = coordinator.Reset(that.starter.First())
	match.UpdatedAt = that.now()

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	that.logger.Info("match reset", "method", "Reset", "matchID", id, "first", match.State.Turn)

	return match, nil
}

// CloseMatch removes the match from the store.
func (that *GameManager) CloseMatch(ctx context.Context, id string) error {
	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	that.logger.Info("match closed", "method", "CloseMatch", "matchID", id)

	return nil
}

// Tally returns the counts of games finished through this manager.
func (that *GameManager) Tally() entity.Tally {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.tally
}

// Simulate plays n ai_vs_ai games at difficulty on up to workers goroutines and returns their tally.
// Simulated games are added to the manager's tally too; they are never stored.
func (that *GameManager) Simulate(ctx context.Context, difficulty string, n, workers int) (entity.Tally, error) {
	var (
		mu    sync.Mutex
		batch entity.Tally
	)

	if workers < 1 {
		workers = 1
	}

	// fail fast on a bad difficulty before spawning anything
	if _, err := bot.New(difficulty, that.rnd); err != nil {
		return batch, fmt.Errorf("failed to simulate: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := 0; i < n; i++ {
		seed := that.rnd.Int63()
		first := that.starter.First()

		group.Go(func() error {
			outcome, err := playOut(groupCtx, difficulty, first, bot.NewRand(seed))
			if err != nil {
				return err
			}

			mu.Lock()
			batch.Record(outcome)
			mu.Unlock()

			that.record(outcome)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return batch, fmt.Errorf("failed to simulate: %w", err)
	}

	that.logger.Info("simulation finished", "method", "Simulate", "difficulty", difficulty, "games", n, "tally", batch.String())

	return batch, nil
}

func playOut(ctx context.Context, difficulty string, first entity.Mark, rnd bot.Rand) (entity.Outcome, error) {
	coordinator, err := tictactoe.NewMatch(entity.ModeAIVsAI, difficulty, first, rnd)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("failed to create match: %w", err)
	}

	for !coordinator.Outcome().IsTerminal() {
		if err = ctx.Err(); err != nil {
			return entity.Outcome{}, fmt.Errorf("simulation canceled: %w", err)
		}

		if _, err = coordinator.Advance(nil); err != nil {
			return entity.Outcome{}, fmt.Errorf("failed to advance: %w", err)
		}
	}

	return coordinator.Outcome(), nil
}

func (that *GameManager) record(outcome entity.Outcome) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.tally.Record(outcome)
}
