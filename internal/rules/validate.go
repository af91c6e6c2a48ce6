package rules

import (
	"fmt"

	"github.com/minihouse/minihouse-backend/internal/model"
)

// ValidateAndApply checks a player's intent against the legal sets and
// applies it, returning the successor state. This is the entry point for
// human input; the search engine calls ApplyMove/ApplyDrop directly.
func ValidateAndApply(state model.GameState, action model.Action) (model.GameState, error) {
	switch DetectTerminal(&state) {
	case StatusCheckmate, StatusStalemate:
		return model.GameState{}, ErrGameOver
	}

	if action.IsDrop() {
		piece, ok := BankPiece(&state, state.ToMove, action.PieceType)
		if !ok {
			return model.GameState{}, fmt.Errorf("%w: no banked %s", ErrInvalidDrop, action.PieceType)
		}
		if !containsPosition(LegalDrops(&state, piece), action.To) {
			return model.GameState{}, fmt.Errorf("%w: %s to %s", ErrInvalidDrop, action.PieceType, action.To.SquareNotation())
		}
		return ApplyDrop(state, piece, action.To), nil
	}

	if !action.From.InBounds() || !action.To.InBounds() {
		return model.GameState{}, fmt.Errorf("%w: out of bounds", ErrInvalidMove)
	}
	piece := state.Board.At(action.From)
	if piece.IsEmpty() || piece.Color != state.ToMove {
		return model.GameState{}, fmt.Errorf("%w: no movable piece at %s", ErrInvalidMove, action.From.SquareNotation())
	}
	if !containsPosition(LegalMoves(&state, action.From), action.To) {
		return model.GameState{}, fmt.Errorf("%w: %s to %s", ErrInvalidMove, action.From.SquareNotation(), action.To.SquareNotation())
	}
	promotion := action.Promotion
	if piece.Type == Pawn && action.To.Y == model.PromotionRank(piece.Color) && promotion == "" {
		promotion = Queen
	}
	if promotion != "" && (piece.Type != Pawn || action.To.Y != model.PromotionRank(piece.Color)) {
		return model.GameState{}, fmt.Errorf("%w: promotion not available", ErrInvalidMove)
	}
	switch promotion {
	case "", Queen, Rook, Bishop, Knight:
	default:
		return model.GameState{}, fmt.Errorf("%w: cannot promote to %s", ErrInvalidMove, promotion)
	}
	return ApplyMove(state, action.From, action.To, promotion), nil
}

// AllActions enumerates every legal action for the side to move: all legal
// moves for every piece plus one drop action per banked type and target.
// Pawn promotions always promote to queen.
func AllActions(state *model.GameState) []model.Action {
	actions := []model.Action{}
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			from := model.Position{X: x, Y: y}
			piece := state.Board.At(from)
			if piece.IsEmpty() || piece.Color != state.ToMove {
				continue
			}
			for _, to := range LegalMoves(state, from) {
				action := model.Action{Kind: model.ActionMove, PieceType: piece.Type, From: from, To: to}
				if piece.Type == Pawn && to.Y == model.PromotionRank(piece.Color) {
					action.Promotion = Queen
				}
				actions = append(actions, action)
			}
		}
	}
	for _, t := range DistinctBankTypes(state, state.ToMove) {
		piece, _ := BankPiece(state, state.ToMove, t)
		for _, to := range LegalDrops(state, piece) {
			actions = append(actions, model.Action{Kind: model.ActionDrop, PieceType: t, To: to})
		}
	}
	return actions
}

// Apply dispatches a trusted action through ApplyMove or ApplyDrop.
func Apply(state model.GameState, action model.Action) model.GameState {
	if action.IsDrop() {
		piece, ok := BankPiece(&state, state.ToMove, action.PieceType)
		if !ok {
			panic(fmt.Sprintf("rules: Apply drop of %s with empty bank", action.PieceType))
		}
		return ApplyDrop(state, piece, action.To)
	}
	return ApplyMove(state, action.From, action.To, action.Promotion)
}

func containsPosition(positions []model.Position, pos model.Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}
