package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusOngoing = "ongoing"
	StatusWin     = "win"
	StatusDraw    = "draw"

	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""

	CenterCell = 4
	BoardSize  = 9
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the symbol a player places on the board.
type Mark string

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// ParseMark accepts "x"/"X"/"o"/"O".
func ParseMark(value string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(PlayerX):
		return PlayerX, nil
	case string(PlayerO):
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrUnknownMark, value)
	}
}

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]Mark

// Snapshot returns the ordered cell values.
func (that Board) Snapshot() [BoardSize]Mark {
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// String renders the board as plain text, one row per line.
func (that Board) String() string {
	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			cells[c] = " "
			if mark := that[r*3+c]; mark != EmptyCell {
				cells[c] = string(mark)
			}
		}
		rows = append(rows, fmt.Sprintf(" %s | %s | %s ", cells[0], cells[1], cells[2]))
	}
	return strings.Join(rows, "\n---+---+---\n")
}

// Outcome is the terminal status of a board. Winner is set only when Status is StatusWin.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWin || that.Status == StatusDraw
}

func (that Outcome) String() string {
	switch that.Status {
	case StatusWin:
		return fmt.Sprintf("%s wins", that.Winner)
	case StatusDraw:
		return "draw"
	default:
		return StatusOngoing
	}
}

// EvaluateTerminal checks the winning lines before the full-board draw.
func EvaluateTerminal(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: StatusWin, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return Outcome{Status: StatusOngoing}
	}

	return Outcome{Status: StatusDraw}
}

// GameState is a board plus whose turn it is and how the game stands.
type GameState struct {
	Board   Board   `json:"board"`
	Turn    Mark    `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

// NewGameState returns an empty ongoing game with first to move. Anything but O starts with X.
func NewGameState(first Mark) GameState {
	if first != PlayerO {
		first = PlayerX
	}

	return GameState{
		Turn:    first,
		Outcome: Outcome{Status: StatusOngoing},
	}
}

// LegalMoves returns the empty cells in ascending order, or nothing once the game is over.
func (that GameState) LegalMoves() []int {
	if that.IsFinished() {
		return nil
	}

	moves := make([]int, 0, BoardSize)
	for i, cell := range that.Board {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}
	return moves
}

// IsLegal reports whether cell can be played right now.
func (that GameState) IsLegal(cell int) bool {
	return that.validateMove(cell) == nil
}

// Apply places the current player's mark on cell. A rejected move leaves the state untouched.
func (that *GameState) Apply(cell int) error {
	if err := that.validateMove(cell); err != nil {
		return err
	}

	that.Board[cell] = that.Turn
	that.Outcome = EvaluateTerminal(that.Board)

	if that.IsOngoing() {
		that.Turn = that.Turn.Opponent()
	}

	return nil
}

func (that GameState) validateMove(cell int) error {
	if that.IsFinished() {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrGameFinished)
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrIllegalMove, apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrIllegalMove, apperror.ErrCellOccupied, cell)
	}

	return nil
}

func (that GameState) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that GameState) IsOngoing() bool {
	return that.Outcome.Status == StatusOngoing
}

func (that GameState) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}
	return nil
}
