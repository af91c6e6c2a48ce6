package ai

import (
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

// The opening book is a small candidate-target table for the first three
// full moves: central pawn pushes first, then development squares. Targets
// are written from White's side and mirrored for Black. A book hit skips
// the search entirely; well-understood openings are not worth the budget.
var bookTargets = [3][]model.Position{
	{{X: 2, Y: 3}, {X: 3, Y: 3}},
	{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}, {X: 4, Y: 3}},
	{{X: 0, Y: 3}, {X: 5, Y: 3}, {X: 1, Y: 4}, {X: 4, Y: 4}},
}

func mirrorTarget(pos model.Position) model.Position {
	return model.Position{X: pos.X, Y: model.BoardSize - 1 - pos.Y}
}

// bookAction returns a book move for the first three full moves, or false
// when out of book. Never consulted while in check.
func bookAction(state *model.GameState) (model.Action, bool) {
	fullMove := len(state.MoveHistory) / 2
	if fullMove >= len(bookTargets) {
		return model.Action{}, false
	}
	if rules.IsInCheck(state, state.ToMove) {
		return model.Action{}, false
	}
	targets := bookTargets[fullMove]
	actions := rules.AllActions(state)
	for _, target := range targets {
		want := target
		if state.ToMove == model.Black {
			want = mirrorTarget(target)
		}
		for _, action := range actions {
			if action.IsDrop() || action.To != want {
				continue
			}
			// Book squares are quiet development targets; skip them when
			// the square is contested by something other than a pawn trade.
			if !state.Board.At(want).IsEmpty() {
				continue
			}
			return action, true
		}
	}
	return model.Action{}, false
}
