// Package eval scores game states. Scores are centipawn-ish integers,
// positive favoring White.
package eval

import (
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

// MateScore is the magnitude returned for checkmate, signed toward the
// winner. All positional scores stay well inside it.
const MateScore = 100000

type Phase int

const (
	PhaseOpening Phase = iota
	PhaseMiddlegame
	PhaseEndgame
)

// Weights is one phase's weight vector over the evaluation terms.
type Weights struct {
	Material    float64
	Position    float64
	Mobility    float64
	Center      float64
	KingSafety  float64
	Development float64
	Threats     float64
	Drop        float64
}

// The middlegame and endgame push king safety and banked-piece value much
// harder than the opening: on a 6x6 board a well-timed drop near the king
// decides games.
var phaseWeights = map[Phase]Weights{
	PhaseOpening:    {Material: 1.0, Position: 1.0, Mobility: 0.8, Center: 1.0, KingSafety: 0.6, Development: 1.2, Threats: 0.7, Drop: 0.8},
	PhaseMiddlegame: {Material: 1.0, Position: 1.0, Mobility: 1.0, Center: 1.0, KingSafety: 1.4, Development: 0.6, Threats: 1.0, Drop: 1.0},
	PhaseEndgame:    {Material: 1.2, Position: 0.8, Mobility: 0.9, Center: 0.6, KingSafety: 1.5, Development: 0.2, Threats: 1.1, Drop: 1.2},
}

func PieceValue(t model.PieceType) int {
	switch t {
	case model.Pawn:
		return 100
	case model.Knight:
		return 320
	case model.Bishop:
		return 330
	case model.Rook:
		return 500
	case model.Queen:
		return 900
	case model.King:
		return 20000
	}
	return 0
}

// ClassifyPhase buckets the state by how much is left on the board.
func ClassifyPhase(state *model.GameState) Phase {
	pieces := 0
	material := 0
	for i := range state.Board.Squares {
		p := state.Board.Squares[i]
		if p.IsEmpty() {
			continue
		}
		pieces++
		if p.Type != model.King {
			material += PieceValue(p.Type)
		}
	}
	if pieces > 20 && material > 2000 {
		return PhaseOpening
	}
	if pieces < 10 || material < 1000 {
		return PhaseEndgame
	}
	return PhaseMiddlegame
}

// Evaluate scores the state, positive favoring White. Checkmate scores
// MateScore toward the winner; stalemate is a dead draw.
func Evaluate(state *model.GameState) int {
	if state.IsCheckmate {
		if state.ToMove == model.White {
			return -MateScore
		}
		return MateScore
	}
	if state.IsStalemate {
		return 0
	}
	phase := ClassifyPhase(state)
	return sideScore(state, model.White, phase) - sideScore(state, model.Black, phase)
}

func sideScore(state *model.GameState, color model.PlayerColor, phase Phase) int {
	w := phaseWeights[phase]
	b := &state.Board

	material := 0
	position := 0
	mobility := 0
	center := 0
	development := 0
	threats := 0
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			pos := model.Position{X: x, Y: y}
			piece := b.At(pos)
			if piece.IsEmpty() || piece.Color != color {
				continue
			}
			if piece.Type != model.King {
				material += PieceValue(piece.Type)
			}
			position += PieceSquareValue(piece.Type, color, pos, phase)
			mobility += len(rules.RawMoves(b, pos))
			if inCenter(pos) {
				center += 15
			}
			if piece.Type != model.King && piece.Type != model.Pawn && piece.HasMoved {
				development += 12
			}
			for _, sq := range rules.AttackSquares(b, pos) {
				if inCenter(sq) {
					center += 5
				}
				target := b.At(sq)
				if !target.IsEmpty() && target.Color != color {
					threats += 6
				}
			}
		}
	}

	kingSafety := kingSafetyScore(b, color)
	bank := bankScore(state, color)

	total := float64(material)*w.Material +
		float64(position)*w.Position +
		float64(mobility*2)*w.Mobility +
		float64(center)*w.Center +
		float64(kingSafety)*w.KingSafety +
		float64(development)*w.Development +
		float64(threats)*w.Threats +
		float64(bank)*w.Drop
	return int(total)
}

// kingSafetyScore rewards friendly neighbors around the king and charges
// 30 points per enemy piece bearing on the king square.
func kingSafetyScore(b *model.Board, color model.PlayerColor) int {
	kingPos := b.KingPosition(color)
	score := 0
	for _, d := range []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}} {
		adj := model.Position{X: kingPos.X + d.X, Y: kingPos.Y + d.Y}
		if adj.InBounds() && !b.At(adj).IsEmpty() && b.At(adj).Color == color {
			score += 10
		}
	}
	score -= 30 * rules.AttackerCount(b, color.Opponent(), kingPos)
	return score
}

// bankScore values each banked piece at 0.7x its nominal worth; the phase
// drop weight scales it from the caller.
func bankScore(state *model.GameState, color model.PlayerColor) int {
	score := 0
	for _, p := range state.Banks.For(color) {
		score += PieceValue(p.Type) * 7 / 10
	}
	return score
}

func inCenter(pos model.Position) bool {
	return pos.X >= 2 && pos.X <= 3 && pos.Y >= 2 && pos.Y <= 3
}
