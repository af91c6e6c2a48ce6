// Package rules is the sole authority for producing successor game states.
// Every operation consumes a model.GameState value and returns a fresh one;
// nothing here mutates a caller's state.
package rules

import "errors"

// Rejections of user intent. These are expected outcomes, returned typed so
// the session layer can report them; they are never silently dropped.
var (
	ErrInvalidMove = errors.New("invalid move: target not in the legal set")
	ErrInvalidDrop = errors.New("invalid drop: target not in the legal set")
	ErrGameOver    = errors.New("game is already over")
)
