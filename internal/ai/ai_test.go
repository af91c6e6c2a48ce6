package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minihouse/minihouse-backend/internal/eval"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

func placed(toMove model.PlayerColor, pieces map[model.Position]model.Piece) model.GameState {
	gs := model.GameState{ToMove: toMove}
	for pos, p := range pieces {
		gs.Board.Set(pos, p)
		if p.Type == model.King {
			gs.Board.SetKingPosition(p.Color, pos)
		}
	}
	gs.IsCheck = rules.IsInCheck(&gs, toMove)
	return gs
}

func TestRequestMoveRejectsFinishedGame(t *testing.T) {
	mated := placed(model.Black, map[model.Position]model.Piece{
		{X: 0, Y: 0}: model.NewPiece(model.King, model.Black),
		{X: 1, Y: 1}: model.NewPiece(model.Queen, model.White),
		{X: 2, Y: 2}: model.NewPiece(model.King, model.White),
	})
	_, err := RequestMove(context.Background(), mated, DifficultyMedium, 0)
	if !errors.Is(err, rules.ErrGameOver) {
		t.Fatalf("got %v, want ErrGameOver", err)
	}
}

func TestRequestMoveSingleActionShortCircuit(t *testing.T) {
	gs := placed(model.White, map[model.Position]model.Piece{
		{X: 0, Y: 0}: model.NewPiece(model.King, model.White),
		{X: 1, Y: 5}: model.NewPiece(model.Rook, model.Black),
		{X: 5, Y: 0}: model.NewPiece(model.King, model.Black),
	})

	start := time.Now()
	action, err := RequestMove(context.Background(), gs, DifficultyGrandmaster, 0)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	want := model.Action{Kind: model.ActionMove, PieceType: model.King, From: model.Position{X: 0, Y: 0}, To: model.Position{X: 0, Y: 1}}
	if action != want {
		t.Fatalf("got %+v, want the only legal move %+v", action, want)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("single-action position should not be searched, took %v", elapsed)
	}
}

func TestRequestMoveFindsMateInOne(t *testing.T) {
	gs := placed(model.White, map[model.Position]model.Piece{
		{X: 0, Y: 0}: model.NewPiece(model.King, model.Black),
		{X: 0, Y: 2}: model.NewPiece(model.King, model.White),
		{X: 5, Y: 5}: model.NewPiece(model.Rook, model.White),
	})

	action, err := RequestMove(context.Background(), gs, DifficultyMedium, 2*time.Second)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	want := model.Action{Kind: model.ActionMove, PieceType: model.Rook, From: model.Position{X: 5, Y: 5}, To: model.Position{X: 5, Y: 0}}
	if action != want {
		t.Fatalf("got %+v, want the mating rook lift %+v", action, want)
	}

	next := rules.Apply(gs, action)
	if !next.IsCheckmate {
		t.Fatalf("expected the chosen move to deliver mate")
	}

	// Deeper iterative runs revisit the mate through the transposition
	// table at several remaining depths; the immediate mate must still
	// come out on top.
	action, err = RequestMove(context.Background(), gs, DifficultyGrandmaster, 2*time.Second)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	if action != want {
		t.Fatalf("deep search drifted off the immediate mate: got %+v", action)
	}
}

func TestMateScoreRebasing(t *testing.T) {
	mateAtFive := eval.MateScore - 5
	stored := mateToTT(mateAtFive, 5)
	if got := mateFromTT(stored, 5); got != mateAtFive {
		t.Fatalf("round trip at the same ply: got %d, want %d", got, mateAtFive)
	}
	// Probing closer to the root must surface a faster mate, not the
	// score frozen at the storing node's distance.
	if got := mateFromTT(stored, 2); got != eval.MateScore-2 {
		t.Fatalf("rebase toward the root: got %d, want %d", got, eval.MateScore-2)
	}
	if got := mateFromTT(mateToTT(-mateAtFive, 5), 2); got != -(eval.MateScore - 2) {
		t.Fatalf("rebase of a mated score: got %d, want %d", got, -(eval.MateScore-2))
	}
	if got := mateFromTT(mateToTT(120, 7), 3); got != 120 {
		t.Fatalf("ordinary scores must pass through untouched, got %d", got)
	}
}

func TestRequestMoveReturnsLegalAction(t *testing.T) {
	gs := model.NewGameState()
	for i := 0; i < 6; i++ {
		action, err := RequestMove(context.Background(), gs, DifficultyEasy, 200*time.Millisecond)
		if err != nil {
			t.Fatalf("ply %d: RequestMove failed: %v", i, err)
		}
		next, err := rules.ValidateAndApply(gs, action)
		if err != nil {
			t.Fatalf("ply %d: engine chose an illegal action %+v: %v", i, action, err)
		}
		gs = next
		if gs.IsTerminal() {
			break
		}
	}
}

func TestBookOpeningMove(t *testing.T) {
	gs := model.NewGameState()
	action, err := RequestMove(context.Background(), gs, DifficultyMedium, 0)
	if err != nil {
		t.Fatalf("RequestMove failed: %v", err)
	}
	if action.IsDrop() {
		t.Fatalf("book move cannot be a drop: %+v", action)
	}
	bookSquares := map[model.Position]bool{{X: 2, Y: 3}: true, {X: 3, Y: 3}: true}
	if !bookSquares[action.To] {
		t.Fatalf("first move %+v not on a book square", action)
	}
}

func TestScoreDropPin(t *testing.T) {
	gs := placed(model.White, map[model.Position]model.Piece{
		{X: 0, Y: 5}: model.NewPiece(model.King, model.White),
		{X: 5, Y: 0}: model.NewPiece(model.King, model.Black),
		{X: 5, Y: 2}: model.NewPiece(model.Knight, model.Black),
	})
	rook := model.NewPiece(model.Rook, model.White)
	if got := ScoreDrop(&gs, rook, model.Position{X: 5, Y: 4}); got != pinDropScore {
		t.Fatalf("rook drop pinning the knight scored %d, want %d", got, pinDropScore)
	}
}

func TestScoreDropOutpost(t *testing.T) {
	gs := placed(model.White, map[model.Position]model.Piece{
		{X: 0, Y: 5}: model.NewPiece(model.King, model.White),
		{X: 5, Y: 0}: model.NewPiece(model.King, model.Black),
		{X: 1, Y: 3}: model.NewPiece(model.Pawn, model.White),
	})
	knight := model.NewPiece(model.Knight, model.White)
	if got := ScoreDrop(&gs, knight, model.Position{X: 2, Y: 2}); got != outpostDropScore {
		t.Fatalf("defended central knight drop scored %d, want %d", got, outpostDropScore)
	}
}

func TestScoreDropPrefersCheck(t *testing.T) {
	gs := placed(model.White, map[model.Position]model.Piece{
		{X: 0, Y: 5}: model.NewPiece(model.King, model.White),
		{X: 5, Y: 0}: model.NewPiece(model.King, model.Black),
	})
	knight := model.NewPiece(model.Knight, model.White)
	checking := ScoreDrop(&gs, knight, model.Position{X: 3, Y: 1})
	quiet := ScoreDrop(&gs, knight, model.Position{X: 0, Y: 1})
	if checking <= quiet {
		t.Fatalf("checking drop scored %d, quiet drop %d", checking, quiet)
	}
}

func TestPreferDropTieBreak(t *testing.T) {
	move := model.Action{Kind: model.ActionMove, From: model.Position{X: 0, Y: 4}, To: model.Position{X: 0, Y: 3}}
	drop := model.Action{Kind: model.ActionDrop, PieceType: model.Knight, To: model.Position{X: 2, Y: 2}}

	near := []scoredAction{{action: move, score: 100}, {action: drop, score: 96}}
	if got := preferDrop(near, model.White); got != drop {
		t.Fatalf("drop within margin not preferred: got %+v", got)
	}

	far := []scoredAction{{action: move, score: 100}, {action: drop, score: 60}}
	if got := preferDrop(far, model.White); got != move {
		t.Fatalf("weak drop should lose the tie-break: got %+v", got)
	}
}

func TestHashStateBankSensitivity(t *testing.T) {
	base := model.NewGameState()

	withPawn := base.Clone()
	withPawn.Banks.White = append(withPawn.Banks.White, model.NewPiece(model.Pawn, model.White))
	if hashState(&base) == hashState(&withPawn) {
		t.Fatalf("bank contents must affect the hash")
	}

	otherPawn := base.Clone()
	otherPawn.Banks.White = append(otherPawn.Banks.White, model.NewPiece(model.Pawn, model.White))
	if hashState(&withPawn) != hashState(&otherPawn) {
		t.Fatalf("banked pieces of one type are interchangeable; hashes must match")
	}

	black := base.Clone()
	black.ToMove = model.Black
	if hashState(&base) == hashState(&black) {
		t.Fatalf("side to move must affect the hash")
	}
}
