package tak

import "math/rand"

// ZobristHash is a position hash over (square, piece type, stack height, color), folded
// with the side-to-move word. Incremental updates after a ply match a from-scratch
// recomputation, by construction: both paths fold the same per-(square,height) word set.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

const maxStackHeight = 64

// ZobristTable is a pseudo-randomized table for computing a position hash.
type ZobristTable struct {
	words [64][3][maxStackHeight][2]uint64
	turn  [2]uint64
}

func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for sq := 0; sq < 64; sq++ {
		for pt := 0; pt < 3; pt++ {
			for h := 0; h < maxStackHeight; h++ {
				for c := 0; c < 2; c++ {
					ret.words[sq][pt][h][c] = r.Uint64()
				}
			}
		}
	}
	ret.turn[White] = r.Uint64()
	ret.turn[Black] = r.Uint64()
	return ret
}

// foldStack xors in the word for every piece currently in the stack at sq.
func (z *ZobristTable) foldStack(sq Square, n int, stack Stack) ZobristHash {
	var hash ZobristHash
	idx := sq.Index(n)
	for h := 0; h < stack.Len(); h++ {
		p := stack.At(h)
		hash ^= ZobristHash(z.words[idx][p.Type][h][p.Color])
	}
	return hash
}

// Hash computes the zobrist hash for the given state from scratch.
func (z *ZobristTable) Hash(s *State) ZobristHash {
	var hash ZobristHash
	for x := 0; x < s.Size; x++ {
		for y := 0; y < s.Size; y++ {
			hash ^= z.foldStack(Square{X: x, Y: y}, s.Size, s.Board[x][y])
		}
	}
	hash ^= ZobristHash(z.turn[s.ToMove])
	return hash
}

// Advance computes the hash of the position after applying a ply incrementally, by
// folding out every touched square's old stack contents and folding in its new contents,
// then flipping the side-to-move word. before/after must agree on every untouched square.
func (z *ZobristTable) Advance(hash ZobristHash, before, after *State, touched []Square) ZobristHash {
	for _, sq := range touched {
		hash ^= z.foldStack(sq, before.Size, before.Board[sq.X][sq.Y])
		hash ^= z.foldStack(sq, after.Size, after.Board[sq.X][sq.Y])
	}
	hash ^= ZobristHash(z.turn[before.ToMove])
	hash ^= ZobristHash(z.turn[after.ToMove])
	return hash
}
