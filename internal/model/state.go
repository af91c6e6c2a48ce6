package model

import "encoding/json"

// PieceBanks holds each color's captured pieces, eligible for dropping.
// Entries keep their original IDs; only their Color has flipped.
type PieceBanks struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func (pb *PieceBanks) For(c PlayerColor) []Piece {
	if c == White {
		return pb.White
	}
	return pb.Black
}

// GameState is an immutable snapshot. The rule engine never mutates one in
// place; every operation consumes a state and returns a fresh value whose
// slices are copied, so states held by callers are never written through.
type GameState struct {
	Board       Board       `json:"board"`
	ToMove      PlayerColor `json:"toMove"`
	MoveHistory []Ply       `json:"moveHistory"`
	Banks       PieceBanks  `json:"banks"`
	IsCheck     bool        `json:"isCheck"`
	IsCheckmate bool        `json:"isCheckmate"`
	IsStalemate bool        `json:"isStalemate"`
	LastAction  *Ply        `json:"lastAction"`
}

func NewGameState() GameState {
	return GameState{
		Board:       NewBoard(),
		ToMove:      White,
		MoveHistory: make([]Ply, 0),
		Banks: PieceBanks{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
}

// Clone returns a deep copy whose history and banks share no backing arrays
// with the receiver. The board is an array value, copied implicitly.
func (gs GameState) Clone() GameState {
	out := gs
	out.MoveHistory = make([]Ply, len(gs.MoveHistory))
	copy(out.MoveHistory, gs.MoveHistory)
	out.Banks.White = make([]Piece, len(gs.Banks.White))
	copy(out.Banks.White, gs.Banks.White)
	out.Banks.Black = make([]Piece, len(gs.Banks.Black))
	copy(out.Banks.Black, gs.Banks.Black)
	if gs.LastAction != nil {
		last := *gs.LastAction
		out.LastAction = &last
	}
	return out
}

func (gs GameState) IsTerminal() bool {
	return gs.IsCheckmate || gs.IsStalemate
}

// EncodeState serializes a GameState for transport or storage. The encoding
// round-trips losslessly, including piece IDs sitting in the banks.
func EncodeState(gs GameState) ([]byte, error) {
	return json.Marshal(gs)
}

func DecodeState(data []byte) (GameState, error) {
	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return GameState{}, err
	}
	if err := gs.Board.ValidateKings(); err != nil {
		return GameState{}, err
	}
	if gs.MoveHistory == nil {
		gs.MoveHistory = make([]Ply, 0)
	}
	if gs.Banks.White == nil {
		gs.Banks.White = make([]Piece, 0)
	}
	if gs.Banks.Black == nil {
		gs.Banks.Black = make([]Piece, 0)
	}
	return gs, nil
}
