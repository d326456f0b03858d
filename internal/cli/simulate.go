package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (that *commands) runSimulate(cmd *cobra.Command, _ []string) error {
	if that.matches < 0 {
		return fmt.Errorf("matches must not be negative, got %d", that.matches)
	}

	tally, err := that.manager.Simulate(cmd.Context(), that.difficulty, that.matches, that.workers)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d %s games\n", tally.Total(), that.difficulty)
	printTally(cmd.OutOrStdout(), tally)

	return nil
}
