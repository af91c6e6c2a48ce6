package rules

import "github.com/minihouse/minihouse-backend/internal/model"

// LegalDrops enumerates the empty squares the piece may be dropped on.
// Pawns may not be dropped on either terminal rank, and no drop may leave
// the dropping side's own king in check.
func LegalDrops(state *model.GameState, piece model.Piece) []model.Position {
	legal := []model.Position{}
	for y := 0; y < model.BoardSize; y++ {
		if piece.Type == Pawn && (y == 0 || y == model.BoardSize-1) {
			continue
		}
		for x := 0; x < model.BoardSize; x++ {
			to := model.Position{X: x, Y: y}
			if !state.Board.At(to).IsEmpty() {
				continue
			}
			board := state.Board
			board.Set(to, piece)
			if !KingInCheck(&board, piece.Color) {
				legal = append(legal, to)
			}
		}
	}
	return legal
}

// BankPiece finds a banked piece of the given type for the color, matching
// the first entry so the same identity is chosen deterministically.
func BankPiece(state *model.GameState, color model.PlayerColor, t model.PieceType) (model.Piece, bool) {
	for _, p := range state.Banks.For(color) {
		if p.Type == t {
			return p, true
		}
	}
	return model.Piece{}, false
}

// DistinctBankTypes lists the piece types present in a color's bank, in
// bank order without duplicates. Drop enumeration works per type because
// same-type banked pieces are interchangeable targets.
func DistinctBankTypes(state *model.GameState, color model.PlayerColor) []model.PieceType {
	seen := map[model.PieceType]bool{}
	types := []model.PieceType{}
	for _, p := range state.Banks.For(color) {
		if !seen[p.Type] {
			seen[p.Type] = true
			types = append(types, p.Type)
		}
	}
	return types
}
