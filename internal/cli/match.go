package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newMatchCommand exposes single steps of a stored match. Matches only outlive the process with the redis store.
func (that *commands) newMatchCommand() *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Drive a stored match one command at a time",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a match and print its id",
		Args:  cobra.NoArgs,
		RunE:  that.runMatchNew,
	}
	that.addMatchFlags(newCmd)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the board of a match",
		Args:  cobra.ExactArgs(1),
		RunE:  that.runMatchShow,
	}

	moveCmd := &cobra.Command{
		Use:   "move <id> <cell>",
		Short: "Play a cell for the human on turn, then let bots reply",
		Args:  cobra.ExactArgs(2),
		RunE:  that.runMatchMove,
	}

	resetCmd := &cobra.Command{
		Use:   "reset <id>",
		Short: "Start the match over",
		Args:  cobra.ExactArgs(1),
		RunE:  that.runMatchReset,
	}

	closeCmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Delete the match",
		Args:  cobra.ExactArgs(1),
		RunE:  that.runMatchClose,
	}

	matchCmd.AddCommand(newCmd, showCmd, moveCmd, resetCmd, closeCmd)

	return matchCmd
}

func (that *commands) runMatchNew(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	match, err := that.manager.NewMatch(ctx, that.mode, that.difficulty)
	if err != nil {
		return err
	}

	if match, err = that.advanceBots(ctx, match); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "match", match.ID)
	printMatch(cmd.OutOrStdout(), match)

	return nil
}

func (that *commands) runMatchShow(cmd *cobra.Command, args []string) error {
	match, err := that.manager.GetMatch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printMatch(cmd.OutOrStdout(), match)

	return nil
}

func (that *commands) runMatchMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cell, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("cell must be a number 0-8: %w", err)
	}

	match, err := that.manager.MakeTurn(ctx, args[0], &cell)
	if err != nil {
		return err
	}

	if match, err = that.advanceBots(ctx, match); err != nil {
		return err
	}

	printMatch(cmd.OutOrStdout(), match)

	return nil
}

func (that *commands) runMatchReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	match, err := that.manager.Reset(ctx, args[0])
	if err != nil {
		return err
	}

	if match, err = that.advanceBots(ctx, match); err != nil {
		return err
	}

	printMatch(cmd.OutOrStdout(), match)

	return nil
}

func (that *commands) runMatchClose(cmd *cobra.Command, args []string) error {
	if err := that.manager.CloseMatch(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "closed", args[0])

	return nil
}
