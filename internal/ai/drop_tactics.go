package ai

import (
	"github.com/minihouse/minihouse-backend/internal/eval"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

// Drop-move pattern scores, tried in order with the first match winning.
// The numbers only have to rank drops against each other during move
// ordering; the search decides what is actually good.
const (
	pinDropScore     = 450
	outpostDropScore = 380
	batteryDropScore = 320
	restrictionBase  = 250
)

// ScoreDrop rates dropping the piece onto the square. Pattern detectors
// run first (pin, outpost, battery, mobility restriction); if none match,
// a generic scorer adds up smaller tactical rewards.
func ScoreDrop(state *model.GameState, piece model.Piece, to model.Position) int {
	if pinningDrop(&state.Board, piece, to) {
		return pinDropScore
	}
	if outpostDrop(&state.Board, piece, to) {
		return outpostDropScore
	}
	if batteryDrop(&state.Board, piece, to) {
		return batteryDropScore
	}
	if reduction := mobilityReduction(&state.Board, piece, to); reduction >= 4 {
		return restrictionBase + 5*reduction
	}
	return genericDropScore(state, piece, to)
}

func sliderDirs(t model.PieceType) []model.Position {
	switch t {
	case model.Rook:
		return orthogonalDirs
	case model.Bishop:
		return diagonalDirs
	case model.Queen:
		return append(append([]model.Position{}, orthogonalDirs...), diagonalDirs...)
	}
	return nil
}

var orthogonalDirs = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
var diagonalDirs = []model.Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}

// pinningDrop: a long-range piece placed so that exactly one enemy piece
// stands between the drop square and the enemy king on a line the piece
// controls.
func pinningDrop(b *model.Board, piece model.Piece, to model.Position) bool {
	dirs := sliderDirs(piece.Type)
	if dirs == nil {
		return false
	}
	kingPos := b.KingPosition(piece.Color.Opponent())
	for _, dir := range dirs {
		blockers := 0
		target := model.Position{X: to.X + dir.X, Y: to.Y + dir.Y}
		for target.InBounds() {
			occupant := b.At(target)
			if target == kingPos {
				if blockers == 1 {
					return true
				}
				break
			}
			if !occupant.IsEmpty() {
				if occupant.Color == piece.Color {
					break
				}
				blockers++
				if blockers > 1 {
					break
				}
			}
			target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
		}
	}
	return false
}

// outpostDrop: a knight dropped onto a central square that a friendly
// piece already defends.
func outpostDrop(b *model.Board, piece model.Piece, to model.Position) bool {
	return piece.Type == model.Knight && centralSquare(to) && rules.SquareAttacked(b, piece.Color, to)
}

// batteryDrop: the drop lines the piece up with a friendly piece of the
// same power class on a shared rank, file or diagonal, with an enemy piece
// beyond both.
func batteryDrop(b *model.Board, piece model.Piece, to model.Position) bool {
	dirs := sliderDirs(piece.Type)
	if dirs == nil {
		return false
	}
	for _, dir := range dirs {
		ahead, aheadFriendly := firstPieceFrom(b, to, dir, piece)
		// Friendly partner in front, target past it.
		if aheadFriendly && pieceBeyond(b, ahead, dir, piece.Color) {
			return true
		}
		// Dropped between the partner and the target.
		if !ahead.IsEmpty() && ahead.Color != piece.Color {
			if _, behindFriendly := firstPieceFrom(b, to, model.Position{X: -dir.X, Y: -dir.Y}, piece); behindFriendly {
				return true
			}
		}
	}
	return false
}

// firstPieceFrom scans from pos (exclusive) along dir; reports the first
// piece met and whether it is a same-class friendly slider for this line.
func firstPieceFrom(b *model.Board, pos, dir model.Position, piece model.Piece) (model.Piece, bool) {
	target := model.Position{X: pos.X + dir.X, Y: pos.Y + dir.Y}
	for target.InBounds() {
		occupant := b.At(target)
		if !occupant.IsEmpty() {
			return occupant, occupant.Color == piece.Color && samePowerClass(occupant.Type, dir)
		}
		target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
	}
	return model.Piece{}, false
}

func pieceBeyond(b *model.Board, partner model.Piece, dir model.Position, color model.PlayerColor) bool {
	pos, found := findPiece(b, partner.ID)
	if !found {
		return false
	}
	target := model.Position{X: pos.X + dir.X, Y: pos.Y + dir.Y}
	for target.InBounds() {
		occupant := b.At(target)
		if !occupant.IsEmpty() {
			return occupant.Color != color
		}
		target = model.Position{X: target.X + dir.X, Y: target.Y + dir.Y}
	}
	return false
}

func findPiece(b *model.Board, id string) (model.Position, bool) {
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			pos := model.Position{X: x, Y: y}
			if b.At(pos).ID == id {
				return pos, true
			}
		}
	}
	return model.Position{}, false
}

func samePowerClass(t model.PieceType, dir model.Position) bool {
	if dir.X == 0 || dir.Y == 0 {
		return t == model.Rook || t == model.Queen
	}
	return t == model.Bishop || t == model.Queen
}

// mobilityReduction measures how many raw moves the opponent loses when
// the piece lands on the square.
func mobilityReduction(b *model.Board, piece model.Piece, to model.Position) int {
	opponent := piece.Color.Opponent()
	before := rawMobility(b, opponent)
	after := *b
	after.Set(to, piece)
	return before - rawMobility(&after, opponent)
}

func rawMobility(b *model.Board, color model.PlayerColor) int {
	total := 0
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			pos := model.Position{X: x, Y: y}
			if !b.At(pos).IsEmpty() && b.At(pos).Color == color {
				total += len(rules.RawMoves(b, pos))
			}
		}
	}
	return total
}

// genericDropScore rewards the smaller drop motifs: blocking or giving
// check, forks, protecting loose friendly pieces (rooks above all),
// hitting loose enemy pieces, central and advanced placement, and in the
// endgame a pawn parked one step from promotion.
func genericDropScore(state *model.GameState, piece model.Piece, to model.Position) int {
	b := &state.Board
	mover := piece.Color
	opponent := mover.Opponent()
	withDrop := *b
	withDrop.Set(to, piece)

	score := 0
	if rules.KingInCheck(b, mover) && !rules.KingInCheck(&withDrop, mover) {
		score += 400
	}
	if rules.KingInCheck(&withDrop, opponent) {
		score += 300
	}

	attackedEnemies := 0
	for _, sq := range rules.AttackSquares(&withDrop, to) {
		target := withDrop.At(sq)
		if target.IsEmpty() {
			continue
		}
		if target.Color == mover {
			if !rules.SquareAttacked(b, mover, sq) {
				if target.Type == model.Rook {
					score += 120
				} else {
					score += 80
				}
			}
		} else if target.Type != model.King {
			attackedEnemies++
			if !rules.SquareAttacked(b, opponent, sq) {
				score += 70
			}
		}
	}
	if attackedEnemies >= 2 {
		score += 60 * attackedEnemies
	}

	if centralSquare(to) {
		score += 25
	}
	advance := to.Y - 1
	if mover == model.White {
		advance = model.BoardSize - 2 - to.Y
	}
	if advance > 0 {
		score += 8 * advance
	}

	if eval.ClassifyPhase(state) == eval.PhaseEndgame && piece.Type == model.Pawn {
		promotionAdjacent := 1
		if mover == model.Black {
			promotionAdjacent = model.BoardSize - 2
		}
		if to.Y == promotionAdjacent {
			score += 90
		}
	}
	return score
}

func centralSquare(pos model.Position) bool {
	return pos.X >= 2 && pos.X <= 3 && pos.Y >= 2 && pos.Y <= 3
}
