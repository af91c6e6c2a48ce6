package rules

import "github.com/minihouse/minihouse-backend/internal/model"

var rookDirs = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
var bishopDirs = []model.Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
var knightDirs = []model.Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
var kingDirs = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}

// RawMoves enumerates the piece's movement pattern with no self-check
// filtering: sliders run until blocked, knights jump, the king steps one
// square, pawns push one forward and capture diagonally. The compressed
// board has no double push, no en passant and no castling.
func RawMoves(b *model.Board, from model.Position) []model.Position {
	piece := b.At(from)
	if piece.IsEmpty() {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return rawPawnMoves(b, from, piece.Color)
	case Knight:
		return stepMoves(b, from, piece.Color, knightDirs)
	case Bishop:
		return slideMoves(b, from, piece.Color, bishopDirs)
	case Rook:
		return slideMoves(b, from, piece.Color, rookDirs)
	case Queen:
		return append(slideMoves(b, from, piece.Color, rookDirs), slideMoves(b, from, piece.Color, bishopDirs)...)
	case King:
		return stepMoves(b, from, piece.Color, kingDirs)
	}
	return nil
}

// LegalMoves filters RawMoves down to moves that do not leave the moving
// piece's own king in check, by simulating each move on a board copy.
func LegalMoves(state *model.GameState, from model.Position) []model.Position {
	piece := state.Board.At(from)
	if piece.IsEmpty() {
		return nil
	}
	legal := []model.Position{}
	for _, to := range RawMoves(&state.Board, from) {
		board := state.Board
		board.Clear(from)
		board.Set(to, piece)
		if piece.Type == King {
			board.SetKingPosition(piece.Color, to)
		}
		if !KingInCheck(&board, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

func slideMoves(b *model.Board, from model.Position, color model.PlayerColor, dirs []model.Position) []model.Position {
	moves := []model.Position{}
	for _, dir := range dirs {
		target := model.Position{X: from.X + dir.X, Y: from.Y + dir.Y}
		for target.InBounds() {
			occupant := b.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, target)
			} else {
				if occupant.Color != color {
					moves = append(moves, target)
				}
				break
			}
			target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
		}
	}
	return moves
}

func stepMoves(b *model.Board, from model.Position, color model.PlayerColor, dirs []model.Position) []model.Position {
	moves := []model.Position{}
	for _, dir := range dirs {
		target := model.Position{X: from.X + dir.X, Y: from.Y + dir.Y}
		if target.InBounds() && (b.At(target).IsEmpty() || b.At(target).Color != color) {
			moves = append(moves, target)
		}
	}
	return moves
}

func rawPawnMoves(b *model.Board, from model.Position, color model.PlayerColor) []model.Position {
	moves := []model.Position{}
	dir := model.PawnDirection(color)
	forward := model.Position{X: from.X, Y: from.Y + dir}
	if forward.InBounds() && b.At(forward).IsEmpty() {
		moves = append(moves, forward)
	}
	for _, dx := range []int{-1, 1} {
		target := model.Position{X: from.X + dx, Y: from.Y + dir}
		if target.InBounds() && !b.At(target).IsEmpty() && b.At(target).Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

// Local aliases keep the per-kind switches readable.
const (
	King   = model.King
	Queen  = model.Queen
	Rook   = model.Rook
	Bishop = model.Bishop
	Knight = model.Knight
	Pawn   = model.Pawn
)
