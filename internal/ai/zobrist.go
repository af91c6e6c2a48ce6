package ai

import "github.com/minihouse/minihouse-backend/internal/model"

// Zobrist keys over (square, kind, color), the side to move, and per-kind
// bank counts. The search recomputes the hash per node; on a 36-square
// board that costs less than keeping an incremental hash honest.

type zobristTable struct {
	pieces [model.BoardSize * model.BoardSize][6][2]uint64
	side   uint64
}

var zobrist = newZobristTable()

func newZobristTable() *zobristTable {
	rng := splitmix64{state: 0x9e3779b97f4a7c15}
	t := &zobristTable{}
	for sq := range t.pieces {
		for kind := 0; kind < 6; kind++ {
			for color := 0; color < 2; color++ {
				t.pieces[sq][kind][color] = rng.next()
			}
		}
	}
	t.side = rng.next()
	return t
}

func kindIndex(t model.PieceType) int {
	switch t {
	case model.King:
		return 0
	case model.Queen:
		return 1
	case model.Rook:
		return 2
	case model.Bishop:
		return 3
	case model.Knight:
		return 4
	case model.Pawn:
		return 5
	}
	return 0
}

func colorIndex(c model.PlayerColor) int {
	if c == model.White {
		return 0
	}
	return 1
}

func hashState(state *model.GameState) uint64 {
	var hash uint64
	for sq := range state.Board.Squares {
		p := state.Board.Squares[sq]
		if p.IsEmpty() {
			continue
		}
		hash ^= zobrist.pieces[sq][kindIndex(p.Type)][colorIndex(p.Color)]
	}
	if state.ToMove == model.Black {
		hash ^= zobrist.side
	}
	hash ^= bankHash(model.White, state.Banks.White)
	hash ^= bankHash(model.Black, state.Banks.Black)
	return hash
}

// bankHash folds per-kind counts in, so two states differing only in the
// banks never collide on purpose. Piece IDs stay out of the hash: banked
// pieces of the same kind are interchangeable for search purposes.
func bankHash(color model.PlayerColor, bank []model.Piece) uint64 {
	counts := [6]int{}
	for _, p := range bank {
		counts[kindIndex(p.Type)]++
	}
	var hash uint64
	for kind, count := range counts {
		if count == 0 {
			continue
		}
		seed := uint64(kind)<<8 | uint64(count)<<2 | uint64(colorIndex(color))
		rng := splitmix64{state: seed + 0x9e3779b97f4a7c15}
		hash ^= rng.next()
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
