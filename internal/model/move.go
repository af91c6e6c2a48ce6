package model

import "fmt"

type ActionKind string

const (
	ActionMove ActionKind = "move"
	ActionDrop ActionKind = "drop"
)

// Action is a player's intent before validation: either an ordinary move
// (From/To, optional Promotion) or a drop of a banked piece type onto To.
// It is a comparable value so it can serve as a table key in the search.
type Action struct {
	Kind      ActionKind `json:"kind"`
	PieceType PieceType  `json:"pieceType,omitempty"`
	From      Position   `json:"from"`
	To        Position   `json:"to"`
	Promotion PieceType  `json:"promotion,omitempty"`
}

func (a Action) IsDrop() bool {
	return a.Kind == ActionDrop
}

// Ply is one applied half-move as recorded in the move history.
type Ply struct {
	Kind        ActionKind `json:"kind"`
	Piece       Piece      `json:"piece"`
	From        *Position  `json:"from"` // nil for drops
	To          Position   `json:"to"`
	Captured    *Piece     `json:"captured"`
	Promotion   PieceType  `json:"promotion,omitempty"`
	Notation    string     `json:"notation"`
	IsCheck     bool       `json:"isCheck"`
	IsCheckmate bool       `json:"isCheckmate"`
}

func (p Ply) Action() Action {
	a := Action{Kind: p.Kind, PieceType: p.Piece.Type, To: p.To, Promotion: p.Promotion}
	if p.From != nil {
		a.From = *p.From
	}
	return a
}

// Notation follows the usual crazyhouse convention: drops read "N@c3",
// ordinary moves as piece letter, "x" on capture, destination square.
func MoveNotation(piece Piece, from, to Position, captured bool, promotion PieceType) string {
	prefix := piece.Type.Notation()
	fileSpecifier := ""
	if piece.Type == Pawn {
		prefix = ""
		if captured {
			fileSpecifier = fmt.Sprintf("%c", from.X+'a')
		}
	}
	capture := ""
	if captured {
		capture = "x"
	}
	suffix := ""
	if promotion != "" {
		suffix = "=" + promotion.Notation()
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, fileSpecifier, capture, to.SquareNotation(), suffix)
}

func DropNotation(piece Piece, to Position) string {
	return fmt.Sprintf("%s@%s", piece.Type.Notation(), to.SquareNotation())
}
