package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrMissingInput = errors.New("human turn requires a move")
	ErrNoLegalMoves = errors.New("no legal moves")

	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")

	ErrUnknownMode       = errors.New("unknown game mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownMark       = errors.New("unknown mark")
	ErrMatchNotFound     = errors.New("match not found")
)
