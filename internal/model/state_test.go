package model

import "testing"

func TestNewGameStateSetup(t *testing.T) {
	gs := NewGameState()

	if gs.ToMove != White {
		t.Fatalf("expected white to move, got %s", gs.ToMove)
	}
	pieces := 0
	for i := range gs.Board.Squares {
		if !gs.Board.Squares[i].IsEmpty() {
			pieces++
		}
	}
	if pieces != 24 {
		t.Fatalf("expected 24 pieces on the initial board, got %d", pieces)
	}
	if got := gs.Board.At(Position{X: 4, Y: 5}); got.Type != King || got.Color != White {
		t.Fatalf("expected white king at e1, got %s %s", got.Color, got.Type)
	}
	if got := gs.Board.At(Position{X: 4, Y: 0}); got.Type != King || got.Color != Black {
		t.Fatalf("expected black king at e6, got %s %s", got.Color, got.Type)
	}
	if gs.Board.WhiteKingPosition != (Position{X: 4, Y: 5}) {
		t.Fatalf("white king position out of sync: %v", gs.Board.WhiteKingPosition)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	gs := NewGameState()

	// Put captured pieces in both banks so identity survival is exercised.
	capturedPawn := NewPiece(Pawn, White)
	capturedRook := NewPiece(Rook, Black)
	gs.Banks.White = append(gs.Banks.White, capturedPawn)
	gs.Banks.Black = append(gs.Banks.Black, capturedRook)
	from := Position{X: 2, Y: 4}
	gs.MoveHistory = append(gs.MoveHistory, Ply{
		Kind:     ActionMove,
		Piece:    gs.Board.At(from),
		From:     &from,
		To:       Position{X: 2, Y: 3},
		Notation: "c3",
	})

	data, err := EncodeState(gs)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.ToMove != gs.ToMove {
		t.Fatalf("toMove mismatch: %s vs %s", decoded.ToMove, gs.ToMove)
	}
	if decoded.Board != gs.Board {
		t.Fatalf("board mismatch after round trip")
	}
	if len(decoded.Banks.White) != 1 || decoded.Banks.White[0].ID != capturedPawn.ID {
		t.Fatalf("white bank lost piece identity: %+v", decoded.Banks.White)
	}
	if len(decoded.Banks.Black) != 1 || decoded.Banks.Black[0].ID != capturedRook.ID {
		t.Fatalf("black bank lost piece identity: %+v", decoded.Banks.Black)
	}
	if len(decoded.MoveHistory) != 1 || decoded.MoveHistory[0].Notation != "c3" {
		t.Fatalf("history mismatch: %+v", decoded.MoveHistory)
	}
}

func TestDecodeRejectsKinglessState(t *testing.T) {
	gs := NewGameState()
	gs.Board.Clear(Position{X: 4, Y: 5})

	data, err := EncodeState(gs)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := DecodeState(data); err == nil {
		t.Fatalf("expected a decode error for a board missing the white king")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	gs := NewGameState()
	gs.Banks.White = append(gs.Banks.White, NewPiece(Pawn, White))

	clone := gs.Clone()
	clone.Banks.White[0].Type = Queen
	clone.Board.Clear(Position{X: 0, Y: 0})

	if gs.Banks.White[0].Type != Pawn {
		t.Fatalf("clone aliased the bank slice")
	}
	if gs.Board.At(Position{X: 0, Y: 0}).IsEmpty() {
		t.Fatalf("clone aliased the board")
	}
}

func TestNotation(t *testing.T) {
	knight := NewPiece(Knight, White)
	if got := MoveNotation(knight, Position{X: 1, Y: 5}, Position{X: 2, Y: 3}, false, ""); got != "Nc3" {
		t.Fatalf("expected Nc3, got %s", got)
	}
	pawn := NewPiece(Pawn, White)
	if got := MoveNotation(pawn, Position{X: 2, Y: 4}, Position{X: 3, Y: 3}, true, ""); got != "cxd3" {
		t.Fatalf("expected cxd3, got %s", got)
	}
	if got := DropNotation(knight, Position{X: 2, Y: 3}); got != "N@c3" {
		t.Fatalf("expected N@c3, got %s", got)
	}
}
