package tak

import "sync"

// dropCombosCache holds, for each stack size 1..=8, every ordered partition of that size
// into drop counts -- i.e. every way to carry `size` stones and drop 1..size of them on
// consecutive squares, in order. combos[n] is the list for stack size n.
var dropCombosCache = sync.OnceValue(func() [][][]int {
	const maxSize = 8

	combos := make([][][]int, maxSize+1)
	combos[0] = nil

	for size := 1; size <= maxSize; size++ {
		// Dropping everything on the first square is always an option.
		var sized [][]int
		sized = append(sized, []int{size})

		// Extend every combo for a smaller stack by dropping the remainder first.
		for k := 0; k < size; k++ {
			for _, combo := range combos[k] {
				sum := 0
				for _, c := range combo {
					sum += c
				}
				extended := make([]int, 0, len(combo)+1)
				extended = append(extended, size-sum)
				extended = append(extended, combo...)
				sized = append(sized, extended)
			}
		}
		combos[size] = sized
	}
	return combos
})

// DropCombos returns every ordered drop combination for picking up `size` stones, as
// produced by the recurrence combos(n) = {[n]} U {[n-sum(c), ...c] : c in combos(k), k<n}.
func DropCombos(size int) [][]int {
	return dropCombosCache()[size]
}

// Placements emits a Place ply for every set square of locations, for the given piece type.
func Placements(locations Bitmap, n int, t PieceType) []Ply {
	squares := locations.Squares(n)
	ret := make([]Ply, 0, len(squares))
	for _, sq := range squares {
		ret = append(ret, NewPlace(sq.X, sq.Y, t))
	}
	return ret
}

// Spreads emits every legal Spread ply that picks up the top-piece-owned stack on one of
// the given locations. board must be the full N x N stack grid.
func Spreads(board [][]Stack, locations Bitmap, n int) []Ply {
	var ret []Ply

	for _, sq := range locations.Squares(n) {
		stack := board[sq.X][sq.Y]
		top, ok := stack.Top()
		if !ok {
			continue
		}

		pickupSize := stack.Len()
		if pickupSize > n {
			pickupSize = n
		}

		for _, dir := range []Direction{North, East, South, West} {
			dx, dy := dir.Offset()
			tx, ty := sq.X, sq.Y
			distance := 0

			// Cast until the edge of the board, or until and including a blocking piece.
			for i := 0; i < pickupSize; i++ {
				tx += dx
				ty += dy
				if tx < 0 || tx >= n || ty < 0 || ty >= n {
					break
				}
				distance++

				if t, ok := board[tx][ty].TopType(); ok && (t == StandingStone || t == Capstone) {
					break
				}
			}
			if distance == 0 {
				continue
			}

			for size := 1; size <= pickupSize; size++ {
				for _, combo := range DropCombos(size) {
					if len(combo) > distance {
						continue
					}

					lx, ly := sq.X+len(combo)*dx, sq.Y+len(combo)*dy
					targetType, hasTarget := board[lx][ly].TopType()

					unblocked := !hasTarget || targetType == Flatstone
					crush := hasTarget && targetType == StandingStone &&
						top.Type == Capstone && combo[len(combo)-1] == 1

					if !unblocked && !crush {
						continue
					}

					drops := append([]int(nil), combo...)
					ret = append(ret, NewSpread(sq.X, sq.Y, dir, drops, crush))
				}
			}
		}
	}

	return ret
}
