package apperror

import "errors"

var (
	ErrOutOfBounds        = errors.New("cell is out of bounds")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrWrongTurn          = errors.New("it's not your turn")
	ErrInvalidBoardState  = errors.New("invalid board state")
	ErrInvalidSize        = errors.New("invalid board size")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrNoAvailableMoves   = errors.New("no available moves")
	ErrInvalidRounds      = errors.New("number of rounds must be positive")
	ErrFatalMove          = errors.New("automated player made an invalid move")
	ErrInconsistentState  = errors.New("incremental and full win checks disagree")
	ErrInputClosed        = errors.New("input closed")
	ErrInvalidPlayerSetup = errors.New("invalid player setup")
)
