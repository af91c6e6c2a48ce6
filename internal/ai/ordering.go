package ai

import (
	"sort"

	"github.com/minihouse/minihouse-backend/internal/eval"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

type candidate struct {
	action     model.Action
	order      int
	isCapture  bool
	givesCheck bool
	central    bool
}

// orderCandidates scores and sorts actions for the search: MVV-LVA for
// captures, drop tactics plus positional tables for drops, a boost for
// checks and for king moves out of check, killer and history bias.
func orderCandidates(sc *searchContext, state *model.GameState, actions []model.Action, ply int) []candidate {
	candidates := make([]candidate, 0, len(actions))
	for _, action := range actions {
		c := candidate{action: action}
		c.central = centralSquare(action.To) || (!action.IsDrop() && centralSquare(action.From))
		c.givesCheck = actionGivesCheck(state, action)

		if action.IsDrop() {
			piece, ok := rules.BankPiece(state, state.ToMove, action.PieceType)
			if ok {
				phase := eval.ClassifyPhase(state)
				c.order = ScoreDrop(state, piece, action.To) +
					eval.PieceSquareValue(piece.Type, state.ToMove, action.To, phase)
			}
		} else {
			victim := state.Board.At(action.To)
			if !victim.IsEmpty() {
				c.isCapture = true
				c.order = 10000 + eval.PieceValue(victim.Type) - eval.PieceValue(action.PieceType)
			}
			if state.IsCheck && action.PieceType == model.King {
				c.order += 500
			}
		}
		if c.givesCheck {
			c.order += 800
		}
		if sc.isKiller(action, ply) {
			c.order += 700
		}
		c.order += sc.history[action]
		candidates = append(candidates, c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].order > candidates[j].order
	})
	return candidates
}

// forwardPrune trims a wide candidate set at shallow remaining depth down
// to captures, checks and central moves. This trades strict minimax
// correctness for latency; it is a deliberate approximation, not a bug.
func forwardPrune(candidates []candidate) []candidate {
	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.isCapture || c.givesCheck || c.central {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// actionGivesCheck simulates just the placement on a board copy and asks
// whether the opponent's king is attacked afterwards.
func actionGivesCheck(state *model.GameState, action model.Action) bool {
	board := state.Board
	mover := state.ToMove
	if action.IsDrop() {
		piece, ok := rules.BankPiece(state, mover, action.PieceType)
		if !ok {
			return false
		}
		board.Set(action.To, piece)
	} else {
		piece := board.At(action.From)
		if piece.IsEmpty() {
			return false
		}
		board.Clear(action.From)
		if action.Promotion != "" {
			piece.Type = action.Promotion
		}
		board.Set(action.To, piece)
		if piece.Type == model.King {
			board.SetKingPosition(mover, action.To)
		}
	}
	return rules.KingInCheck(&board, mover.Opponent())
}
