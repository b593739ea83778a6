package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrOutOfBounds       = errors.New("coordinate outside the board")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrBoardSizeMismatch = errors.New("board size does not match")

	// Catalog errors
	ErrEmptyCatalog   = errors.New("piece catalog is empty")
	ErrInvalidPiece   = errors.New("invalid piece definition")
	ErrDuplicatePiece = errors.New("duplicate piece id")
	ErrUnknownPiece   = errors.New("unknown piece")

	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotPlayerTurn  = errors.New("not this player's turn")
	ErrPlayerNotFound = errors.New("player not found")
	ErrEliminated     = errors.New("player has been eliminated")
	ErrInvalidAnchor  = errors.New("cell is not a valid anchor")
	ErrPieceNotOwned  = errors.New("player does not hold this piece")
	ErrNoSuchOption   = errors.New("no such placement option")
	ErrIllegalMove    = errors.New("placement is not legal")
)
