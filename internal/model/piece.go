package model

import "github.com/google/uuid"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

type PlayerColor string

const (
	White PlayerColor = "white"
	Black PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == White {
		return Black
	}
	return White
}

// Piece identity is stable across capture and drop: the same ID that left
// the board in one color's hands reappears from the other color's bank.
type Piece struct {
	ID       string      `json:"id"`
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	HasMoved bool        `json:"hasMoved"`
}

func NewPiece(t PieceType, c PlayerColor) Piece {
	return Piece{ID: uuid.New().String(), Type: t, Color: c}
}

// IsEmpty reports whether this is the zero Piece used for empty squares.
func (p Piece) IsEmpty() bool {
	return p.Type == ""
}
