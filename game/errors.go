package game

import "errors"

var (
	// ErrIllegalMove is returned for moves and discards the validator rejects.
	// The session is left unchanged.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned for any move after the run has been won or lost.
	ErrGameOver = errors.New("game over")
)
