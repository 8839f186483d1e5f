package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameNotFound     = errors.New("game not found")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell coordinates")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidBoard     = errors.New("invalid board snapshot")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrInvalidLevel     = errors.New("invalid ai level")
	ErrInvalidMode      = errors.New("invalid game mode")
	ErrInvalidDepth     = errors.New("invalid search depth")
	ErrNoAvailableMoves = errors.New("no available moves")
)
