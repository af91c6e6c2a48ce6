package rules

import "github.com/minihouse/minihouse-backend/internal/model"

type Status string

const (
	StatusNone      Status = "none"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// DetectTerminal classifies the state for the side to move: checkmate when
// in check with no legal move or drop, stalemate when not in check with no
// legal move or drop. It recomputes from the board rather than trusting the
// derived flags, so reconstructed states are classified correctly too.
func DetectTerminal(state *model.GameState) Status {
	inCheck := KingInCheck(&state.Board, state.ToMove)
	if hasAnyAction(state, state.ToMove) {
		if inCheck {
			return StatusCheck
		}
		return StatusNone
	}
	if inCheck {
		return StatusCheckmate
	}
	return StatusStalemate
}
