package rules

import (
	"fmt"

	"github.com/minihouse/minihouse-backend/internal/model"
)

// SquareAttacked reports whether any piece of the attacking color attacks
// the given square. It walks attack patterns outward from the square, so it
// never consults the self-check filter and check detection cannot recurse.
func SquareAttacked(b *model.Board, attacker model.PlayerColor, pos model.Position) bool {
	for _, dir := range rookDirs {
		target := model.Position{X: pos.X + dir.X, Y: pos.Y + dir.Y}
		for target.InBounds() {
			occupant := b.At(target)
			if !occupant.IsEmpty() {
				if occupant.Color == attacker && (occupant.Type == Queen || occupant.Type == Rook) {
					return true
				}
				break
			}
			target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
		}
	}
	for _, dir := range bishopDirs {
		target := model.Position{X: pos.X + dir.X, Y: pos.Y + dir.Y}
		for target.InBounds() {
			occupant := b.At(target)
			if !occupant.IsEmpty() {
				if occupant.Color == attacker && (occupant.Type == Queen || occupant.Type == Bishop) {
					return true
				}
				break
			}
			target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
		}
	}
	for _, dir := range knightDirs {
		target := model.Position{X: pos.X + dir.X, Y: pos.Y + dir.Y}
		if target.InBounds() && !b.At(target).IsEmpty() && b.At(target).Color == attacker && b.At(target).Type == Knight {
			return true
		}
	}
	for _, dir := range kingDirs {
		target := model.Position{X: pos.X + dir.X, Y: pos.Y + dir.Y}
		if target.InBounds() && !b.At(target).IsEmpty() && b.At(target).Color == attacker && b.At(target).Type == King {
			return true
		}
	}
	// A pawn of the attacking color sits one rank behind its attack squares.
	pawnRank := pos.Y - model.PawnDirection(attacker)
	for _, dx := range []int{-1, 1} {
		target := model.Position{X: pos.X + dx, Y: pawnRank}
		if target.InBounds() && !b.At(target).IsEmpty() && b.At(target).Color == attacker && b.At(target).Type == Pawn {
			return true
		}
	}
	return false
}

// AttackerCount counts pieces of the given color attacking the square.
func AttackerCount(b *model.Board, attacker model.PlayerColor, pos model.Position) int {
	count := 0
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			from := model.Position{X: x, Y: y}
			piece := b.At(from)
			if piece.IsEmpty() || piece.Color != attacker {
				continue
			}
			for _, sq := range AttackSquares(b, from) {
				if sq == pos {
					count++
					break
				}
			}
		}
	}
	return count
}

// AttackSquares is the squares the piece at from attacks or defends,
// including squares occupied by friendly pieces (a defense map, not a move
// set). For pawns this is the two capture diagonals only.
func AttackSquares(b *model.Board, from model.Position) []model.Position {
	piece := b.At(from)
	if piece.IsEmpty() {
		return nil
	}
	switch piece.Type {
	case Pawn:
		squares := []model.Position{}
		dir := model.PawnDirection(piece.Color)
		for _, dx := range []int{-1, 1} {
			target := model.Position{X: from.X + dx, Y: from.Y + dir}
			if target.InBounds() {
				squares = append(squares, target)
			}
		}
		return squares
	case Knight:
		return coveredSteps(from, knightDirs)
	case King:
		return coveredSteps(from, kingDirs)
	case Bishop:
		return coveredSlides(b, from, bishopDirs)
	case Rook:
		return coveredSlides(b, from, rookDirs)
	case Queen:
		return append(coveredSlides(b, from, rookDirs), coveredSlides(b, from, bishopDirs)...)
	}
	return nil
}

func coveredSteps(from model.Position, dirs []model.Position) []model.Position {
	squares := []model.Position{}
	for _, dir := range dirs {
		target := model.Position{X: from.X + dir.X, Y: from.Y + dir.Y}
		if target.InBounds() {
			squares = append(squares, target)
		}
	}
	return squares
}

func coveredSlides(b *model.Board, from model.Position, dirs []model.Position) []model.Position {
	squares := []model.Position{}
	for _, dir := range dirs {
		target := model.Position{X: from.X + dir.X, Y: from.Y + dir.Y}
		for target.InBounds() {
			squares = append(squares, target)
			if !b.At(target).IsEmpty() {
				break
			}
			target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
		}
	}
	return squares
}

// KingInCheck reports whether the given color's king square is attacked.
// A board whose recorded king square does not hold that king is corrupt
// (a reconstructed state missing its king, or positions out of sync) and
// panics rather than answering from a bogus square.
func KingInCheck(b *model.Board, color model.PlayerColor) bool {
	kingPos := b.KingPosition(color)
	if k := b.At(kingPos); k.Type != King || k.Color != color {
		panic(fmt.Sprintf("rules: no %s king at recorded square %s", color, kingPos.SquareNotation()))
	}
	return SquareAttacked(b, color.Opponent(), kingPos)
}

// IsInCheck is the state-level form of KingInCheck.
func IsInCheck(state *model.GameState, color model.PlayerColor) bool {
	return KingInCheck(&state.Board, color)
}
