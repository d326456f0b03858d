// Package bot holds the move-selection strategies used by automated players.
package bot

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Strategy picks a cell for the player whose turn it is in state.
type Strategy interface {
	ChooseMove(state entity.GameState) (int, error)
}

// Rand is the subset of *rand.Rand the strategies need.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed is still deterministic.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint: gosec // game randomness
}

// LockedRand is a seeded source that can be shared between goroutines.
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rnd: NewRand(seed)}
}

func (that *LockedRand) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

func (that *LockedRand) Int63() int64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Int63()
}

// New returns the strategy for difficulty.
func New(difficulty string, rnd Rand) (Strategy, error) {
	switch difficulty {
	case entity.EasyDifficulty:
		return NewRandom(rnd), nil
	case entity.MediumDifficulty:
		return NewMedium(rnd), nil
	case entity.HardDifficulty:
		return NewMinimax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

func legalMoves(state entity.GameState) ([]int, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, apperror.ErrNoLegalMoves
	}
	return moves, nil
}
