package eval

import (
	"testing"

	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

// mirrorState flips the board vertically and swaps every color, including
// the banks and the side to move.
func mirrorState(gs model.GameState) model.GameState {
	out := model.GameState{ToMove: gs.ToMove.Opponent()}
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			p := gs.Board.At(model.Position{X: x, Y: y})
			if p.IsEmpty() {
				continue
			}
			flipped := p
			flipped.Color = p.Color.Opponent()
			to := model.Position{X: x, Y: model.BoardSize - 1 - y}
			out.Board.Set(to, flipped)
			if p.Type == model.King {
				out.Board.SetKingPosition(flipped.Color, to)
			}
		}
	}
	for _, p := range gs.Banks.White {
		p.Color = model.Black
		out.Banks.Black = append(out.Banks.Black, p)
	}
	for _, p := range gs.Banks.Black {
		p.Color = model.White
		out.Banks.White = append(out.Banks.White, p)
	}
	return out
}

func TestEvaluateInitialPositionBalanced(t *testing.T) {
	gs := model.NewGameState()
	if score := Evaluate(&gs); score != 0 {
		t.Fatalf("initial position should score 0, got %d", score)
	}
}

func TestEvaluateColorSymmetry(t *testing.T) {
	gs := model.NewGameState()
	script := []model.Action{
		{Kind: model.ActionMove, From: model.Position{X: 2, Y: 4}, To: model.Position{X: 2, Y: 3}},
		{Kind: model.ActionMove, From: model.Position{X: 3, Y: 1}, To: model.Position{X: 3, Y: 2}},
		{Kind: model.ActionMove, From: model.Position{X: 2, Y: 3}, To: model.Position{X: 3, Y: 2}},
		{Kind: model.ActionMove, From: model.Position{X: 4, Y: 1}, To: model.Position{X: 3, Y: 2}},
		{Kind: model.ActionMove, From: model.Position{X: 1, Y: 5}, To: model.Position{X: 2, Y: 3}},
	}
	for i, a := range script {
		next, err := rules.ValidateAndApply(gs, a)
		if err != nil {
			t.Fatalf("scripted action %d rejected: %v", i, err)
		}
		gs = next

		mirrored := mirrorState(gs)
		got, want := Evaluate(&mirrored), -Evaluate(&gs)
		if got != want {
			t.Fatalf("after action %d: mirrored score %d, want %d", i, got, want)
		}
	}
}

func TestEvaluateTerminalScores(t *testing.T) {
	gs := model.GameState{ToMove: model.Black, IsCheckmate: true}
	if score := Evaluate(&gs); score != MateScore {
		t.Fatalf("black checkmated should score %d, got %d", MateScore, score)
	}
	gs = model.GameState{ToMove: model.White, IsCheckmate: true}
	if score := Evaluate(&gs); score != -MateScore {
		t.Fatalf("white checkmated should score %d, got %d", -MateScore, score)
	}
	gs = model.GameState{ToMove: model.White, IsStalemate: true}
	if score := Evaluate(&gs); score != 0 {
		t.Fatalf("stalemate should score 0, got %d", score)
	}
}

func TestEvaluateMaterialSwing(t *testing.T) {
	gs := model.NewGameState()
	// Remove the black queen; the bank stays empty, so this is a clean
	// material deficit rather than a crazyhouse exchange.
	gs.Board.Clear(model.Position{X: 3, Y: 0})
	if score := Evaluate(&gs); score <= 0 {
		t.Fatalf("white up a queen should score positive, got %d", score)
	}
}

func TestBankedPieceWorthLessThanOnBoard(t *testing.T) {
	onBoard := model.NewGameState()
	inBank := model.NewGameState()
	pos := model.Position{X: 0, Y: 5}
	rook := inBank.Board.At(pos)
	inBank.Board.Clear(pos)
	inBank.Banks.White = append(inBank.Banks.White, rook)

	if Evaluate(&inBank) >= Evaluate(&onBoard) {
		t.Fatalf("a banked rook should be worth less than a developed one: %d vs %d",
			Evaluate(&inBank), Evaluate(&onBoard))
	}
}

func TestClassifyPhase(t *testing.T) {
	gs := model.NewGameState()
	if phase := ClassifyPhase(&gs); phase != PhaseOpening {
		t.Fatalf("initial position should be the opening, got %v", phase)
	}

	endgame := model.GameState{ToMove: model.White}
	endgame.Board.Set(model.Position{X: 4, Y: 5}, model.NewPiece(model.King, model.White))
	endgame.Board.SetKingPosition(model.White, model.Position{X: 4, Y: 5})
	endgame.Board.Set(model.Position{X: 4, Y: 0}, model.NewPiece(model.King, model.Black))
	endgame.Board.SetKingPosition(model.Black, model.Position{X: 4, Y: 0})
	endgame.Board.Set(model.Position{X: 0, Y: 3}, model.NewPiece(model.Pawn, model.White))
	if phase := ClassifyPhase(&endgame); phase != PhaseEndgame {
		t.Fatalf("bare kings and a pawn should be the endgame, got %v", phase)
	}
}

func TestPieceSquareValueMirrors(t *testing.T) {
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			pos := model.Position{X: x, Y: y}
			mirror := model.Position{X: x, Y: model.BoardSize - 1 - y}
			white := PieceSquareValue(model.Knight, model.White, pos, PhaseMiddlegame)
			black := PieceSquareValue(model.Knight, model.Black, mirror, PhaseMiddlegame)
			if white != black {
				t.Fatalf("table not mirrored at %v: white %d, black %d", pos, white, black)
			}
		}
	}
}
