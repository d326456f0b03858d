package entity

import "fmt"

// Tally counts finished games.
type Tally struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

// Record adds a terminal outcome. Ongoing outcomes are ignored.
func (that *Tally) Record(outcome Outcome) {
	switch {
	case outcome.Status == StatusDraw:
		that.Draws++
	case outcome.Status == StatusWin && outcome.Winner == PlayerX:
		that.XWins++
	case outcome.Status == StatusWin && outcome.Winner == PlayerO:
		that.OWins++
	}
}

func (that Tally) Total() int {
	return that.XWins + that.OWins + that.Draws
}

func (that Tally) String() string {
	return fmt.Sprintf("X: %d  O: %d  draws: %d", that.XWins, that.OWins, that.Draws)
}
