package model

import "fmt"

const BoardSize = 6

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (p Position) SquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+'a', BoardSize-p.Y)
}

// Board is a fixed 36-cell arena indexed by y*6+x. Cells hold Piece values,
// with the zero Piece standing for an empty square, so copying a Board is a
// plain value copy and sibling search branches never alias each other.
type Board struct {
	Squares           [BoardSize * BoardSize]Piece `json:"squares"`
	WhiteKingPosition Position                     `json:"whiteKingPosition"`
	BlackKingPosition Position                     `json:"blackKingPosition"`
}

func (b *Board) At(pos Position) Piece {
	return b.Squares[pos.Y*BoardSize+pos.X]
}

func (b *Board) Set(pos Position, p Piece) {
	b.Squares[pos.Y*BoardSize+pos.X] = p
}

func (b *Board) Clear(pos Position) {
	b.Squares[pos.Y*BoardSize+pos.X] = Piece{}
}

func (b *Board) KingPosition(c PlayerColor) Position {
	if c == White {
		return b.WhiteKingPosition
	}
	return b.BlackKingPosition
}

func (b *Board) SetKingPosition(c PlayerColor, pos Position) {
	if c == White {
		b.WhiteKingPosition = pos
	} else {
		b.BlackKingPosition = pos
	}
}

// NewBoard sets up the initial 6x6 position: R N B Q K R on each back rank
// with a full rank of pawns in front. Black sits on rows 0-1, White on 4-5.
func NewBoard() Board {
	board := Board{}
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Rook}
	for x, t := range backRank {
		board.Set(Position{X: x, Y: 0}, NewPiece(t, Black))
		board.Set(Position{X: x, Y: BoardSize - 1}, NewPiece(t, White))
	}
	for x := 0; x < BoardSize; x++ {
		board.Set(Position{X: x, Y: 1}, NewPiece(Pawn, Black))
		board.Set(Position{X: x, Y: BoardSize - 2}, NewPiece(Pawn, White))
	}
	board.BlackKingPosition = Position{X: 4, Y: 0}
	board.WhiteKingPosition = Position{X: 4, Y: BoardSize - 1}
	return board
}

// ValidateKings checks that each recorded king square holds that color's
// king, so reconstructed states fail at the boundary instead of deep
// inside the rules.
func (b *Board) ValidateKings() error {
	for _, c := range []PlayerColor{White, Black} {
		pos := b.KingPosition(c)
		if !pos.InBounds() {
			return fmt.Errorf("%s king position %v out of bounds", c, pos)
		}
		if p := b.At(pos); p.Type != King || p.Color != c {
			return fmt.Errorf("no %s king at recorded square %s", c, pos.SquareNotation())
		}
	}
	return nil
}

// PromotionRank is the rank on which a pawn of the given color promotes.
func PromotionRank(c PlayerColor) int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnDirection is the Y step a pawn of the given color advances by.
func PawnDirection(c PlayerColor) int {
	if c == White {
		return -1
	}
	return 1
}
