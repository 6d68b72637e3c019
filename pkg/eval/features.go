package eval

import (
	"fmt"

	"github.com/herohde/tak/pkg/tak"
)

// orbit folds a square into its canonical representative under the board's 8-fold
// dihedral symmetry (the 4 rotations and 4 reflections of a square board): first fold
// towards the nearest corner along each axis, then fold across the diagonal. Squares in
// the same orbit are interchangeable by a symmetry of the board, so the network can share
// a single feature bucket across all of them.
func orbit(sq tak.Square, n int) (x, y int) {
	qx, qy := sq.X, sq.Y
	if qx > n-1-qx {
		qx = n - 1 - qx
	}
	if qy > n-1-qy {
		qy = n - 1 - qy
	}
	if qx > qy {
		return qx, qy
	}
	return qy, qx
}

// NumOrbits returns the number of distinct symmetry orbits for a board of size n: the
// triangular number of squares in one eighth of the board.
func NumOrbits(n int) int {
	h := half(n)
	return h * (h + 1) / 2
}

// half is the number of distinct orbit columns/rows for a board of size n: NumOrbits(n)'s
// triangle has half rows, the first of length half, shrinking by one per row.
func half(n int) int {
	return (n + 1) / 2
}

func orbitIndex(sq tak.Square, n int) int {
	x, y := orbit(sq, n)
	// Row-major over the symmetry triangle: row y holds columns y..half-1, so the index
	// counts every complete earlier row's length plus how far x is into this one.
	h := half(n)
	return y*h - y*(y-1)/2 + (x - y)
}

// OrbitName renders the orbit's canonical square name, e.g. "a1", "c3", for a board whose
// symmetry triangle has the given number of rows (half(n), the caller's board size).
func OrbitName(i, h int) string {
	y := 0
	for rowStart(y+1, h) <= i {
		y++
	}
	x := y + (i - rowStart(y, h))
	return fmt.Sprintf("%c%d", rune('a'+x), y+1)
}

// rowStart returns orbitIndex's value for the first column of row y: the sum of every
// earlier row's length.
func rowStart(y, h int) int {
	return y*h - y*(y-1)/2
}

const (
	shallowFeatures = 13 // reserve + 2*(friendly,captive)*(flat,standing,cap)
	fixedFeatures   = 9  // road groups, lines occupied, 2 completion, 5 blockage
)

// FeatureCount returns the length of the feature vector gathered for a board of size n.
func FeatureCount(n int) int {
	return 1 + 2*(shallowFeatures+2*NumOrbits(n)+fixedFeatures)
}

// FeatureNames returns the name of every feature gathered for a board of size n, in the
// same order Gather produces values. Used only for explanation output.
func FeatureNames(n int) []string {
	names := []string{"Flat count differential"}
	for _, who := range []string{"Player", "Opponent"} {
		names = append(names,
			who+": Reserve flatstones",
			who+": Shallow friendlies under flatstones",
			who+": Shallow friendlies under standing stones",
			who+": Shallow friendlies under capstones",
			who+": Shallow captives under flatstones",
			who+": Shallow captives under standing stones",
			who+": Shallow captives under capstones",
			who+": Deep friendlies under flatstones",
			who+": Deep friendlies under standing stones",
			who+": Deep friendlies under capstones",
			who+": Deep captives under flatstones",
			who+": Deep captives under standing stones",
			who+": Deep captives under capstones",
		)
		h := half(n)
		for i := 0; i < NumOrbits(n); i++ {
			names = append(names, fmt.Sprintf("%s: Flatstones in %s symmetries", who, OrbitName(i, h)))
		}
		for i := 0; i < NumOrbits(n); i++ {
			names = append(names, fmt.Sprintf("%s: Capstones in %s symmetries", who, OrbitName(i, h)))
		}
		names = append(names,
			who+": Road groups",
			who+": Lines occupied",
			who+": Unblocked road completion",
			who+": Soft-blocked road completion",
			who+": Standing stone blockage of enemy flatstones",
			who+": Standing stone blockage of enemy standing stones",
			who+": Capstone blockage of enemy flatstones",
			who+": Capstone blockage of enemy standing stones",
			who+": Capstone blockage of enemy capstones",
		)
	}
	return names
}

// Gather computes the feature vector for s, from the perspective of the side to move.
func Gather(s *tak.State) []float32 {
	n := s.Size
	self, opponent := s.ToMove, s.ToMove.Opponent()

	selfFlats := s.Metadata.P1Pieces.Intersect(s.Metadata.Flatstones).PopCount()
	oppFlats := s.Metadata.P2Pieces.Intersect(s.Metadata.Flatstones).PopCount()
	if self == tak.Black {
		selfFlats, oppFlats = oppFlats, selfFlats
	}

	ret := make([]float32, 0, FeatureCount(n))
	ret = append(ret, float32(selfFlats-oppFlats))
	ret = append(ret, playerFeatures(s, self)...)
	ret = append(ret, playerFeatures(s, opponent)...)
	return ret
}

func playerFeatures(s *tak.State, c tak.Color) []float32 {
	n := s.Size

	var reserveFlats int
	if c == tak.White {
		reserveFlats = s.P1Flatstones
	} else {
		reserveFlats = s.P2Flatstones
	}

	var shallowFriendFlat, shallowFriendWall, shallowFriendCap int
	var shallowCaptiveFlat, shallowCaptiveWall, shallowCaptiveCap int
	var deepFriendFlat, deepFriendWall, deepFriendCap int
	var deepCaptiveFlat, deepCaptiveWall, deepCaptiveCap int

	flatOrbits := make([]float32, NumOrbits(n))
	capOrbits := make([]float32, NumOrbits(n))

	var ownMask, enemyMask tak.Bitmap
	var ownWalls, ownCaps, enemyFlats, enemyWalls, enemyCaps tak.Bitmap

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			sq := tak.Square{X: x, Y: y}
			stack := s.Board[x][y]
			if stack.IsEmpty() {
				continue
			}
			top, _ := stack.Top()

			if top.Color == c {
				ownMask = ownMask.Set(sq, n)
				switch top.Type {
				case tak.Flatstone:
					flatOrbits[orbitIndex(sq, n)]++
				case tak.StandingStone:
					ownWalls = ownWalls.Set(sq, n)
				case tak.Capstone:
					ownCaps = ownCaps.Set(sq, n)
					capOrbits[orbitIndex(sq, n)]++
				}
			} else {
				enemyMask = enemyMask.Set(sq, n)
				switch top.Type {
				case tak.Flatstone:
					enemyFlats = enemyFlats.Set(sq, n)
				case tak.StandingStone:
					enemyWalls = enemyWalls.Set(sq, n)
				case tak.Capstone:
					enemyCaps = enemyCaps.Set(sq, n)
				}
			}

			bucket := top.Type
			for h := 0; h < stack.Len()-1; h++ {
				buried := stack.At(h)
				friendly := buried.Color == c
				shallow := stack.Len()-1-h <= 1

				switch {
				case friendly && shallow && bucket == tak.Flatstone:
					shallowFriendFlat++
				case friendly && shallow && bucket == tak.StandingStone:
					shallowFriendWall++
				case friendly && shallow && bucket == tak.Capstone:
					shallowFriendCap++
				case friendly && !shallow && bucket == tak.Flatstone:
					deepFriendFlat++
				case friendly && !shallow && bucket == tak.StandingStone:
					deepFriendWall++
				case friendly && !shallow && bucket == tak.Capstone:
					deepFriendCap++
				case !friendly && shallow && bucket == tak.Flatstone:
					shallowCaptiveFlat++
				case !friendly && shallow && bucket == tak.StandingStone:
					shallowCaptiveWall++
				case !friendly && shallow && bucket == tak.Capstone:
					shallowCaptiveCap++
				case !friendly && !shallow && bucket == tak.Flatstone:
					deepCaptiveFlat++
				case !friendly && !shallow && bucket == tak.StandingStone:
					deepCaptiveWall++
				case !friendly && !shallow && bucket == tak.Capstone:
					deepCaptiveCap++
				}
			}
		}
	}

	road := s.Metadata.RoadPieces(c)
	groups := len(tak.Groups(road, n))
	lines := linesOccupied(ownMask, n)

	allThreats := tak.PlacementThreatMap(road, enemyMask, n)
	empty := s.Metadata.Occupied().Complement(n)
	unblocked := allThreats.Intersect(empty).PopCount()
	softBlocked := allThreats.Intersect(ownMask).PopCount()

	ret := []float32{
		float32(reserveFlats),
		float32(shallowFriendFlat), float32(shallowFriendWall), float32(shallowFriendCap),
		float32(shallowCaptiveFlat), float32(shallowCaptiveWall), float32(shallowCaptiveCap),
		float32(deepFriendFlat), float32(deepFriendWall), float32(deepFriendCap),
		float32(deepCaptiveFlat), float32(deepCaptiveWall), float32(deepCaptiveCap),
	}
	ret = append(ret, flatOrbits...)
	ret = append(ret, capOrbits...)
	ret = append(ret,
		float32(groups),
		float32(lines),
		float32(unblocked),
		float32(softBlocked),
		float32(tak.Dilate(ownWalls, n).Intersect(enemyFlats).PopCount()),
		float32(tak.Dilate(ownWalls, n).Intersect(enemyWalls).PopCount()),
		float32(tak.Dilate(ownCaps, n).Intersect(enemyFlats).PopCount()),
		float32(tak.Dilate(ownCaps, n).Intersect(enemyWalls).PopCount()),
		float32(tak.Dilate(ownCaps, n).Intersect(enemyCaps).PopCount()),
	)
	return ret
}

func linesOccupied(mask tak.Bitmap, n int) int {
	count := 0
	for y := 0; y < n; y++ {
		var row tak.Bitmap
		for x := 0; x < n; x++ {
			row = row.Set(tak.Square{X: x, Y: y}, n)
		}
		if mask.Intersect(row) != tak.EmptyBitmap {
			count++
		}
	}
	for x := 0; x < n; x++ {
		var col tak.Bitmap
		for y := 0; y < n; y++ {
			col = col.Set(tak.Square{X: x, Y: y}, n)
		}
		if mask.Intersect(col) != tak.EmptyBitmap {
			count++
		}
	}
	return count
}
