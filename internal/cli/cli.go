// Package cli is the terminal driver: it turns commands and typed cells into GameManager calls.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/spf13/cobra"
)

// gameManager is what the commands need from usecase.GameManager.
type gameManager interface {
	NewMatch(ctx context.Context, mode, difficulty string) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, cell *int) (*entity.Match, error)
	Reset(ctx context.Context, id string) (*entity.Match, error)
	CloseMatch(ctx context.Context, id string) error
	Simulate(ctx context.Context, difficulty string, n, workers int) (entity.Tally, error)
	Tally() entity.Tally
}

type commands struct {
	logger  *slog.Logger
	manager gameManager
	conf    *config.Config

	mode       string
	difficulty string
	matches    int
	workers    int
}

// NewRootCommand builds the command tree. Flags default to the loaded config.
func NewRootCommand(logger *slog.Logger, manager gameManager, conf *config.Config) *cobra.Command {
	that := &commands{
		logger:  logger.With("component", "cli"),
		manager: manager,
		conf:    conf,
	}

	rootCmd := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Play tic-tac-toe against people or bots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play matches interactively until you quit",
		Args:  cobra.NoArgs,
		RunE:  that.runPlay,
	}
	that.addMatchFlags(playCmd)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run bot against bot games and print the tally",
		Args:  cobra.NoArgs,
		RunE:  that.runSimulate,
	}
	simulateCmd.Flags().StringVarP(&that.difficulty, "difficulty", "d", conf.Difficulty, "easy, medium or hard")
	simulateCmd.Flags().IntVarP(&that.matches, "matches", "n", conf.Simulate.Matches, "number of games")
	simulateCmd.Flags().IntVarP(&that.workers, "workers", "w", conf.Simulate.Workers, "games played in parallel")

	rootCmd.AddCommand(playCmd, simulateCmd, that.newMatchCommand())

	return rootCmd
}

func (that *commands) addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&that.mode, "mode", "m", that.conf.Mode, "human_vs_human, human_vs_ai or ai_vs_ai")
	cmd.Flags().StringVarP(&that.difficulty, "difficulty", "d", that.conf.Difficulty, "easy, medium or hard")
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, logger *slog.Logger, manager gameManager, conf *config.Config, args []string) error {
	rootCmd := NewRootCommand(logger, manager, conf)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// advanceBots lets bots move until a human is on turn or the game ends.
func (that *commands) advanceBots(ctx context.Context, match *entity.Match) (*entity.Match, error) {
	for !match.IsFinished() {
		player := match.PlayerByMark(match.State.Turn)
		if player == nil || !player.IsBot() {
			return match, nil
		}

		next, err := that.manager.MakeTurn(ctx, match.ID, nil)
		if err != nil {
			return match, fmt.Errorf("bot failed to make turn: %w", err)
		}
		match = next
	}

	return match, nil
}

// isRetryable reports errors a human can fix by typing another cell.
func isRetryable(err error) bool {
	return errors.Is(err, apperror.ErrIllegalMove) || errors.Is(err, apperror.ErrMissingInput)
}
