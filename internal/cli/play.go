package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/spf13/cobra"
)

const (
	inputReset = "r"
	inputQuit  = "q"
)

func (that *commands) runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	match, err := that.manager.NewMatch(ctx, that.mode, that.difficulty)
	if err != nil {
		return err
	}

	defer func() {
		// the context may be canceled by now, the store still has to forget the match
		if err := that.manager.CloseMatch(context.WithoutCancel(ctx), match.ID); err != nil {
			that.logger.Warn("failed to close match", "method", "runPlay", "matchID", match.ID, "error", err)
		}
	}()

	if match, err = that.showTurn(ctx, out, match); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if err = ctx.Err(); err != nil {
			return nil
		}

		prompt(out, match)
		if !scanner.Scan() {
			if err = scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
			continue

		case inputQuit:
			printTally(out, that.manager.Tally())
			return nil

		case inputReset:
			if match, err = that.manager.Reset(ctx, match.ID); err != nil {
				return err
			}
			if match, err = that.showTurn(ctx, out, match); err != nil {
				return err
			}
			continue
		}

		if match.IsFinished() {
			fmt.Fprintf(out, "game over, type %s for a new one or %s to quit\n", inputReset, inputQuit)
			continue
		}

		cell, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(out, "type a cell 0-8, %s to reset or %s to quit\n", inputReset, inputQuit)
			continue
		}

		next, err := that.manager.MakeTurn(ctx, match.ID, &cell)
		if err != nil {
			if isRetryable(err) {
				fmt.Fprintln(out, errorMessage(err))
				continue
			}
			return err
		}

		if match, err = that.showTurn(ctx, out, next); err != nil {
			return err
		}
	}
}

// showTurn lets bots play, then prints the board and the tally once the game is over.
func (that *commands) showTurn(ctx context.Context, out io.Writer, match *entity.Match) (*entity.Match, error) {
	match, err := that.advanceBots(ctx, match)
	if err != nil {
		return match, err
	}

	printMatch(out, match)
	if match.IsFinished() {
		printTally(out, that.manager.Tally())
	}

	return match, nil
}

func prompt(out io.Writer, match *entity.Match) {
	if match.IsFinished() {
		fmt.Fprintf(out, "%s new game, %s quit > ", inputReset, inputQuit)
		return
	}
	fmt.Fprintf(out, "%s cell > ", match.State.Turn)
}

// errorMessage keeps only the innermost cause, which is what a player can act on.
func errorMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err.Error()
}
