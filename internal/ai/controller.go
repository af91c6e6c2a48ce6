// Package ai selects moves for a computer-controlled side: a time-bounded
// iterative-deepening alpha-beta search with drop-aware move ordering.
package ai

import (
	"context"
	"time"

	"github.com/minihouse/minihouse-backend/internal/eval"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyHard        Difficulty = "hard"
	DifficultyGrandmaster Difficulty = "grandmaster"
)

func (d Difficulty) SearchDepth() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 3
	case DifficultyHard:
		return 4
	case DifficultyGrandmaster:
		return 5
	}
	return 3
}

const (
	defaultBudget = 500 * time.Millisecond
	inCheckBudget = 800 * time.Millisecond
)

// RequestMove picks an action for the side to move. Terminal states are
// rejected with rules.ErrGameOver; callers should consult DetectTerminal
// instead of searching a finished game. Cancel ctx to abandon a search
// whose game has ended; the deadline itself is soft (checked between
// depth iterations only).
func RequestMove(ctx context.Context, state model.GameState, difficulty Difficulty, budget time.Duration) (model.Action, error) {
	switch rules.DetectTerminal(&state) {
	case rules.StatusCheckmate, rules.StatusStalemate:
		return model.Action{}, rules.ErrGameOver
	}

	inCheck := rules.IsInCheck(&state, state.ToMove)
	if budget <= 0 {
		budget = defaultBudget
		if inCheck {
			budget = inCheckBudget
		}
	}
	depth := difficulty.SearchDepth()
	// Tactically loaded positions get one extra ply.
	if inCheck || bigCaptureAvailable(&state) {
		depth++
	}

	actions := rules.AllActions(&state)
	if len(actions) == 1 {
		return actions[0], nil
	}
	if action, ok := bookAction(&state); ok {
		return action, nil
	}

	sc := newSearchContext(ctx, time.Now().Add(budget))
	best, ok := findBestAction(sc, state, depth)
	if !ok {
		return actions[0], nil
	}
	return best, nil
}

// bigCaptureAvailable reports whether a capture worth at least a rook is
// on the board for the side to move.
func bigCaptureAvailable(state *model.GameState) bool {
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			from := model.Position{X: x, Y: y}
			piece := state.Board.At(from)
			if piece.IsEmpty() || piece.Color != state.ToMove {
				continue
			}
			for _, to := range rules.LegalMoves(state, from) {
				victim := state.Board.At(to)
				if !victim.IsEmpty() && eval.PieceValue(victim.Type) >= eval.PieceValue(model.Rook) {
					return true
				}
			}
		}
	}
	return false
}
