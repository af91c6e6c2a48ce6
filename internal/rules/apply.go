package rules

import (
	"fmt"

	"github.com/minihouse/minihouse-backend/internal/model"
)

// ApplyMove applies an already-validated move and returns the successor
// state. Search trees call this thousands of times, so it does not
// re-validate against LegalMoves; an out-of-contract call is an engine bug
// and panics rather than guessing.
func ApplyMove(state model.GameState, from, to model.Position, promotion model.PieceType) model.GameState {
	if !from.InBounds() || !to.InBounds() {
		panic(fmt.Sprintf("rules: ApplyMove out of bounds: %v -> %v", from, to))
	}
	piece := state.Board.At(from)
	if piece.IsEmpty() {
		panic(fmt.Sprintf("rules: ApplyMove from empty square %v", from))
	}
	if piece.Color != state.ToMove {
		panic(fmt.Sprintf("rules: ApplyMove for %s on %s's turn", piece.Color, state.ToMove))
	}

	st := state.Clone()
	mover := st.ToMove

	var capturedRef *model.Piece
	captured := st.Board.At(to)
	if !captured.IsEmpty() {
		if captured.Type == King {
			panic("rules: king capture, upstream state is corrupt")
		}
		capturedCopy := captured
		capturedRef = &capturedCopy
		// Captured pieces change owner and enter the capturer's bank,
		// keeping their identity.
		banked := captured
		banked.Color = mover
		banked.HasMoved = false
		addToBank(&st.Banks, mover, banked)
	}

	st.Board.Clear(from)
	piece.HasMoved = true
	movedAs := piece

	promoted := model.PieceType("")
	if piece.Type == Pawn && to.Y == model.PromotionRank(mover) {
		if promotion == "" {
			promotion = Queen
		}
		piece.Type = promotion
		promoted = promotion
	} else if promotion != "" {
		panic(fmt.Sprintf("rules: promotion of %s to %s at %v", piece.Type, promotion, to))
	}

	st.Board.Set(to, piece)
	if piece.Type == King {
		st.Board.SetKingPosition(mover, to)
	}

	fromCopy := from
	ply := model.Ply{
		Kind:      model.ActionMove,
		Piece:     piece,
		From:      &fromCopy,
		To:        to,
		Captured:  capturedRef,
		Promotion: promoted,
		Notation:  model.MoveNotation(movedAs, from, to, capturedRef != nil, promoted),
	}
	finishApply(&st, ply)
	return st
}

// ApplyDrop applies an already-validated drop: the piece leaves the
// dropping side's bank and lands on the target square. Same contract as
// ApplyMove.
func ApplyDrop(state model.GameState, piece model.Piece, to model.Position) model.GameState {
	if !to.InBounds() {
		panic(fmt.Sprintf("rules: ApplyDrop out of bounds: %v", to))
	}
	if !state.Board.At(to).IsEmpty() {
		panic(fmt.Sprintf("rules: ApplyDrop onto occupied square %v", to))
	}
	if piece.Type == Pawn && (to.Y == 0 || to.Y == model.BoardSize-1) {
		panic(fmt.Sprintf("rules: pawn drop on terminal rank %d", to.Y))
	}

	st := state.Clone()
	mover := st.ToMove
	if !removeFromBank(&st.Banks, mover, piece.ID) {
		panic(fmt.Sprintf("rules: ApplyDrop of piece %s not in %s bank", piece.ID, mover))
	}

	piece.Color = mover
	piece.HasMoved = true
	st.Board.Set(to, piece)

	ply := model.Ply{
		Kind:     model.ActionDrop,
		Piece:    piece,
		To:       to,
		Notation: model.DropNotation(piece, to),
	}
	finishApply(&st, ply)
	return st
}

// finishApply switches the turn, recomputes the derived flags on the new
// state and appends the ply to the history.
func finishApply(st *model.GameState, ply model.Ply) {
	st.ToMove = st.ToMove.Opponent()
	st.IsCheck = KingInCheck(&st.Board, st.ToMove)
	hasAction := hasAnyAction(st, st.ToMove)
	st.IsCheckmate = st.IsCheck && !hasAction
	st.IsStalemate = !st.IsCheck && !hasAction

	ply.IsCheck = st.IsCheck
	ply.IsCheckmate = st.IsCheckmate
	if st.IsCheckmate {
		ply.Notation += "#"
	} else if st.IsCheck {
		ply.Notation += "+"
	}
	st.MoveHistory = append(st.MoveHistory, ply)
	last := ply
	st.LastAction = &last
}

// hasAnyAction reports whether the color has at least one legal move or
// drop, stopping at the first one found.
func hasAnyAction(st *model.GameState, color model.PlayerColor) bool {
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			from := model.Position{X: x, Y: y}
			piece := st.Board.At(from)
			if piece.IsEmpty() || piece.Color != color {
				continue
			}
			if len(LegalMoves(st, from)) > 0 {
				return true
			}
		}
	}
	for _, t := range DistinctBankTypes(st, color) {
		piece, _ := BankPiece(st, color, t)
		if len(LegalDrops(st, piece)) > 0 {
			return true
		}
	}
	return false
}

func addToBank(banks *model.PieceBanks, color model.PlayerColor, piece model.Piece) {
	if color == model.White {
		banks.White = append(banks.White, piece)
	} else {
		banks.Black = append(banks.Black, piece)
	}
}

func removeFromBank(banks *model.PieceBanks, color model.PlayerColor, pieceID string) bool {
	bank := banks.For(color)
	for i, p := range bank {
		if p.ID == pieceID {
			next := make([]model.Piece, 0, len(bank)-1)
			next = append(next, bank[:i]...)
			next = append(next, bank[i+1:]...)
			if color == model.White {
				banks.White = next
			} else {
				banks.Black = next
			}
			return true
		}
	}
	return false
}
