package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	styleX      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C"))
	styleO      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	styleHint   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
	styleStatus = lipgloss.NewStyle().Bold(true)
	styleBoard  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderBoard draws the grid; empty cells show their index so players know what to type.
func renderBoard(board entity.Board) string {
	rows := make([]string, 0, 5)
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			switch board[i] {
			case entity.PlayerX:
				cells[c] = styleX.Render(string(entity.PlayerX))
			case entity.PlayerO:
				cells[c] = styleO.Render(string(entity.PlayerO))
			default:
				cells[c] = styleHint.Render(strconv.Itoa(i))
			}
		}
		rows = append(rows, " "+strings.Join(cells, " | ")+" ")
		if r < 2 {
			rows = append(rows, "---+---+---")
		}
	}
	return styleBoard.Render(strings.Join(rows, "\n"))
}

func statusLine(match *entity.Match) string {
	state := match.State
	switch state.Outcome.Status {
	case entity.StatusWin:
		return styleStatus.Render(fmt.Sprintf("%s wins!", state.Outcome.Winner))
	case entity.StatusDraw:
		return styleStatus.Render("Draw!")
	}

	who := "human"
	if player := match.PlayerByMark(state.Turn); player != nil && player.IsBot() {
		who = player.Difficulty + " bot"
	}
	return styleStatus.Render(fmt.Sprintf("%s to move (%s)", state.Turn, who))
}

func printMatch(out io.Writer, match *entity.Match) {
	fmt.Fprintln(out, renderBoard(match.State.Board))
	fmt.Fprintln(out, statusLine(match))
}

func printTally(out io.Writer, tally entity.Tally) {
	fmt.Fprintln(out, styleHint.Render("tally ")+tally.String())
}
