package eval

import "github.com/minihouse/minihouse-backend/internal/model"

// Piece-square tables from White's perspective: index y*6+x, with y=0 the
// promotion rank White is pushing toward. Black reads them mirrored.

var pawnTable = [36]int{
	0, 0, 0, 0, 0, 0,
	60, 60, 60, 60, 60, 60,
	20, 25, 30, 30, 25, 20,
	10, 15, 25, 25, 15, 10,
	5, 5, 10, 10, 5, 5,
	0, 0, 0, 0, 0, 0,
}

var knightTable = [36]int{
	-30, -20, -15, -15, -20, -30,
	-20, 0, 10, 10, 0, -20,
	-15, 10, 20, 20, 10, -15,
	-15, 10, 20, 20, 10, -15,
	-20, 0, 10, 10, 0, -20,
	-30, -20, -15, -15, -20, -30,
}

var bishopTable = [36]int{
	-15, -10, -5, -5, -10, -15,
	-10, 5, 5, 5, 5, -10,
	-5, 5, 15, 15, 5, -5,
	-5, 10, 15, 15, 10, -5,
	-10, 5, 5, 5, 5, -10,
	-15, -10, -5, -5, -10, -15,
}

var rookTable = [36]int{
	5, 5, 10, 10, 5, 5,
	15, 20, 20, 20, 20, 15,
	0, 0, 5, 5, 0, 0,
	0, 0, 5, 5, 0, 0,
	-5, 0, 5, 5, 0, -5,
	0, 0, 5, 5, 0, 0,
}

var queenTable = [36]int{
	-10, -5, 0, 0, -5, -10,
	-5, 5, 5, 5, 5, -5,
	0, 5, 10, 10, 5, 0,
	0, 5, 10, 10, 5, 0,
	-5, 0, 5, 5, 0, -5,
	-10, -5, 0, 0, -5, -10,
}

var kingTable = [36]int{
	-40, -40, -40, -40, -40, -40,
	-30, -30, -35, -35, -30, -30,
	-20, -25, -30, -30, -25, -20,
	-10, -15, -20, -20, -15, -10,
	0, -5, -10, -10, -5, 0,
	10, 15, 0, 0, 15, 10,
}

var kingEndgameTable = [36]int{
	-20, -10, -5, -5, -10, -20,
	-10, 0, 10, 10, 0, -10,
	-5, 10, 20, 20, 10, -5,
	-5, 10, 20, 20, 10, -5,
	-10, 0, 10, 10, 0, -10,
	-20, -10, -5, -5, -10, -20,
}

// PieceSquareValue looks up the positional value of a piece standing on
// pos, mirroring the table vertically for Black.
func PieceSquareValue(t model.PieceType, color model.PlayerColor, pos model.Position, phase Phase) int {
	idx := pos.Y*model.BoardSize + pos.X
	if color == model.Black {
		idx = (model.BoardSize-1-pos.Y)*model.BoardSize + pos.X
	}
	switch t {
	case model.Pawn:
		return pawnTable[idx]
	case model.Knight:
		return knightTable[idx]
	case model.Bishop:
		return bishopTable[idx]
	case model.Rook:
		return rookTable[idx]
	case model.Queen:
		return queenTable[idx]
	case model.King:
		if phase == PhaseEndgame {
			return kingEndgameTable[idx]
		}
		return kingTable[idx]
	}
	return 0
}
