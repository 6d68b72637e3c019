package tak

import "fmt"

// Metadata is a bundle of bitmaps over a position's top pieces, maintained incrementally
// as plies are executed. Road and flat-count computations read these rather than walking
// the full stack grid.
type Metadata struct {
	P1Pieces       Bitmap // squares whose top piece belongs to White
	P2Pieces       Bitmap // squares whose top piece belongs to Black
	Flatstones     Bitmap // squares whose top piece is a flatstone
	StandingStones Bitmap // squares whose top piece is a standing stone
	Capstones      Bitmap // squares whose top piece is a capstone
}

func (m Metadata) clear(sq Square, n int) Metadata {
	mask := SquareMask(sq, n)
	m.P1Pieces = m.P1Pieces.Without(mask)
	m.P2Pieces = m.P2Pieces.Without(mask)
	m.Flatstones = m.Flatstones.Without(mask)
	m.StandingStones = m.StandingStones.Without(mask)
	m.Capstones = m.Capstones.Without(mask)
	return m
}

func (m Metadata) set(sq Square, n int, p Piece) Metadata {
	mask := SquareMask(sq, n)
	if p.Color == White {
		m.P1Pieces = m.P1Pieces.Union(mask)
	} else {
		m.P2Pieces = m.P2Pieces.Union(mask)
	}
	switch p.Type {
	case Flatstone:
		m.Flatstones = m.Flatstones.Union(mask)
	case StandingStone:
		m.StandingStones = m.StandingStones.Union(mask)
	case Capstone:
		m.Capstones = m.Capstones.Union(mask)
	}
	return m
}

// RoadPieces returns the bitmap of a color's top pieces that count towards a road.
func (m Metadata) RoadPieces(c Color) Bitmap {
	owned := m.P1Pieces
	if c == Black {
		owned = m.P2Pieces
	}
	return owned.Intersect(m.Flatstones.Union(m.Capstones))
}

// Occupied is every square with a piece on top, either color.
func (m Metadata) Occupied() Bitmap {
	return m.P1Pieces.Union(m.P2Pieces)
}

// ResolutionKind classifies how, or whether, a game has ended.
type ResolutionKind uint8

const (
	Ongoing ResolutionKind = iota
	RoadWin
	FlatWin
	Draw
)

// Resolution records the game's outcome, if any. P1Flats/P2Flats are the top flatstone
// counts at resolution time, meaningful for FlatWin and Draw.
type Resolution struct {
	Kind    ResolutionKind
	Winner  Color
	P1Flats int
	P2Flats int
}

func (r Resolution) IsOver() bool {
	return r.Kind != Ongoing
}

func (r Resolution) String() string {
	switch r.Kind {
	case RoadWin:
		return fmt.Sprintf("R-%s", r.Winner)
	case FlatWin:
		return fmt.Sprintf("F-%s", r.Winner)
	case Draw:
		return "1/2-1/2"
	default:
		return "ongoing"
	}
}

// reserveCounts returns the standard per-color flatstone and capstone reserve for a board
// of the given size.
func reserveCounts(n int) (flats, caps int) {
	switch n {
	case 3:
		return 10, 0
	case 4:
		return 15, 0
	case 5:
		return 21, 1
	case 6:
		return 30, 1
	case 7:
		return 40, 2
	case 8:
		return 50, 2
	default:
		return 21, 1
	}
}

// State is an immutable snapshot of a Tak position: the board, both players' remaining
// reserves, the ply count, the side to move, any game resolution and the incrementally
// maintained Metadata bitmaps. Executing a ply produces a new State; it never mutates s.
type State struct {
	Size int

	Board [][]Stack // Board[x][y], (0,0) is a1

	P1Flatstones, P1Capstones int
	P2Flatstones, P2Capstones int

	Plies  int
	ToMove Color

	Metadata   Metadata
	Resolution Resolution

	Hash ZobristHash

	zt *ZobristTable
}

// NewGame returns the initial position for a board of the given size, seeded with its
// standard reserve counts.
func NewGame(n int, zt *ZobristTable) *State {
	board := make([][]Stack, n)
	for x := range board {
		board[x] = make([]Stack, n)
	}

	flats, caps := reserveCounts(n)
	s := &State{
		Size:         n,
		Board:        board,
		P1Flatstones: flats,
		P1Capstones:  caps,
		P2Flatstones: flats,
		P2Capstones:  caps,
		ToMove:       White,
		zt:           zt,
	}
	if zt != nil {
		s.Hash = zt.Hash(s)
	}
	return s
}

func (s *State) clone() *State {
	board := make([][]Stack, s.Size)
	for x := range board {
		board[x] = append([]Stack(nil), s.Board[x]...)
	}
	c := *s
	c.Board = board
	return &c
}

// touch updates Metadata for a single changed square and records it for the hash update.
func (s *State) touch(sq Square) {
	s.Metadata = s.Metadata.clear(sq, s.Size)
	if top, ok := s.Board[sq.X][sq.Y].Top(); ok {
		s.Metadata = s.Metadata.set(sq, s.Size, top)
	}
}

// Execute returns the State resulting from applying ply to s. s is unchanged; the first
// two opening plies of the game place an opponent's piece, per Tak's standard swap rule.
func (s *State) Execute(ply Ply) (*State, error) {
	if s.Resolution.IsOver() {
		return nil, fmt.Errorf("tak: game already resolved: %s", s.Resolution)
	}

	mover := s.ToMove
	placer := mover
	if s.Plies < 2 {
		placer = mover.Opponent()
	}

	next := s.clone()
	var touched []Square

	switch ply.Kind {
	case Place:
		sq := Square{X: ply.X, Y: ply.Y}
		if !sq.InBounds(s.Size) {
			return nil, fmt.Errorf("tak: %s out of bounds", sq)
		}
		if !s.Board[sq.X][sq.Y].IsEmpty() {
			return nil, fmt.Errorf("tak: %s is occupied", sq)
		}
		if err := next.debitReserve(placer, ply.PieceType); err != nil {
			return nil, err
		}

		next.Board[sq.X][sq.Y] = Stack{}.Push(NewPiece(placer, ply.PieceType), false)
		touched = append(touched, sq)

	case Spread:
		origin := Square{X: ply.X, Y: ply.Y}
		if !origin.InBounds(s.Size) {
			return nil, fmt.Errorf("tak: %s out of bounds", origin)
		}
		stack := s.Board[origin.X][origin.Y]
		top, ok := stack.Top()
		if !ok || top.Color != mover {
			return nil, fmt.Errorf("tak: %s has no stack owned by %s", origin, mover)
		}

		pickup := ply.PickupCount()
		if pickup <= 0 || pickup > stack.Len() || pickup > s.Size {
			return nil, fmt.Errorf("tak: invalid pickup count %d at %s", pickup, origin)
		}

		dx, dy := ply.Direction.Offset()
		taken, remainder := stack.Take(pickup)

		next.Board[origin.X][origin.Y] = remainder
		touched = append(touched, origin)

		idx := 0
		x, y := origin.X, origin.Y
		for i, d := range ply.Drops {
			if d <= 0 {
				return nil, fmt.Errorf("tak: non-positive drop count in %s", ply)
			}
			x, y = x+dx, y+dy
			sq := Square{X: x, Y: y}
			if !sq.InBounds(s.Size) {
				return nil, fmt.Errorf("tak: spread from %s runs off the board", origin)
			}

			target := s.Board[x][y]
			last := i == len(ply.Drops)-1
			crush := last && ply.Crush

			if t, blocked := target.TopType(); blocked {
				switch {
				case t == Capstone:
					return nil, fmt.Errorf("tak: %s is blocked by a capstone", sq)
				case t == StandingStone && !(crush && d == 1 && top.Type == Capstone):
					return nil, fmt.Errorf("tak: %s is blocked by a standing stone", sq)
				}
			}

			chunk := taken[idx : idx+d]
			idx += d
			next.Board[x][y] = next.Board[x][y].Append(chunk, crush)
			touched = append(touched, sq)
		}
	}

	next.Plies = s.Plies + 1
	next.ToMove = mover.Opponent()

	for _, sq := range touched {
		next.touch(sq)
	}
	if s.zt != nil {
		next.Hash = s.zt.Advance(s.Hash, s, next, touched)
	}

	next.Resolution = next.resolve(mover)
	return next, nil
}

func (s *State) debitReserve(c Color, t PieceType) error {
	switch {
	case c == White && t == Capstone:
		if s.P1Capstones == 0 {
			return fmt.Errorf("tak: white has no capstones left")
		}
		s.P1Capstones--
	case c == White:
		if s.P1Flatstones == 0 {
			return fmt.Errorf("tak: white has no flatstones left")
		}
		s.P1Flatstones--
	case c == Black && t == Capstone:
		if s.P2Capstones == 0 {
			return fmt.Errorf("tak: black has no capstones left")
		}
		s.P2Capstones--
	default:
		if s.P2Flatstones == 0 {
			return fmt.Errorf("tak: black has no flatstones left")
		}
		s.P2Flatstones--
	}
	return nil
}

// resolve determines the Resolution of the position s is in. preferred is checked for a
// completed road first, matching the rule that the player who just moved wins outright
// even if their placement incidentally also completes the opponent's road.
func (s *State) resolve(preferred Color) Resolution {
	mover := preferred

	if r, ok := s.roadResolution(mover); ok {
		return r
	}
	if r, ok := s.roadResolution(mover.Opponent()); ok {
		return r
	}

	full := s.Metadata.Occupied() == BoardMask(s.Size)
	exhausted := (s.P1Flatstones == 0 && s.P1Capstones == 0) ||
		(s.P2Flatstones == 0 && s.P2Capstones == 0)

	if full || exhausted {
		p1 := s.Metadata.P1Pieces.Intersect(s.Metadata.Flatstones).PopCount()
		p2 := s.Metadata.P2Pieces.Intersect(s.Metadata.Flatstones).PopCount()
		switch {
		case p1 > p2:
			return Resolution{Kind: FlatWin, Winner: White, P1Flats: p1, P2Flats: p2}
		case p2 > p1:
			return Resolution{Kind: FlatWin, Winner: Black, P1Flats: p1, P2Flats: p2}
		default:
			return Resolution{Kind: Draw, P1Flats: p1, P2Flats: p2}
		}
	}

	return Resolution{Kind: Ongoing}
}

func (s *State) roadResolution(c Color) (Resolution, bool) {
	road := s.Metadata.RoadPieces(c)

	west := FloodFill(EdgeMask(West, s.Size), road, s.Size)
	if west.Intersect(EdgeMask(East, s.Size)) != EmptyBitmap {
		return Resolution{Kind: RoadWin, Winner: c}, true
	}
	north := FloodFill(EdgeMask(North, s.Size), road, s.Size)
	if north.Intersect(EdgeMask(South, s.Size)) != EmptyBitmap {
		return Resolution{Kind: RoadWin, Winner: c}, true
	}
	return Resolution{}, false
}

// LegalPlies returns every legal ply for the side to move, partitioned by placement vs.
// spread the way the ordered ply stream (see pkg/search) expects to consume them.
func (s *State) LegalPlies() []Ply {
	empty := s.Metadata.Occupied().Complement(s.Size)

	placer := s.ToMove
	if s.Plies < 2 {
		placer = s.ToMove.Opponent()
	}

	var ret []Ply
	hasFlats := s.flatstonesOf(placer) > 0
	hasCaps := s.capstonesOf(placer) > 0

	if s.Plies < 2 {
		// Opening plies are flat-only, per the swap rule.
		if hasFlats {
			ret = append(ret, Placements(empty, s.Size, Flatstone)...)
		}
		return ret
	}

	if hasFlats {
		ret = append(ret, Placements(empty, s.Size, Flatstone)...)
		ret = append(ret, Placements(empty, s.Size, StandingStone)...)
	}
	if hasCaps {
		ret = append(ret, Placements(empty, s.Size, Capstone)...)
	}

	owned := s.Metadata.P1Pieces
	if s.ToMove == Black {
		owned = s.Metadata.P2Pieces
	}
	ret = append(ret, Spreads(s.Board, owned, s.Size)...)

	return ret
}

// PassTurn returns the position with the turn flipped and nothing else changed. It is not
// a legal ply -- placement is mandatory every turn in Tak -- and exists solely as the
// "skip a move" fiction null-move pruning verifies against during search. The returned
// state must never be treated as a real position: in particular, its Resolution is
// inherited unchanged from s rather than recomputed.
func (s *State) PassTurn() *State {
	next := s.clone()
	next.Plies = s.Plies + 1
	next.ToMove = s.ToMove.Opponent()
	if s.zt != nil {
		next.Hash = s.zt.Advance(s.Hash, s, next, nil)
	}
	return next
}

func (s *State) flatstonesOf(c Color) int {
	if c == White {
		return s.P1Flatstones
	}
	return s.P2Flatstones
}

func (s *State) capstonesOf(c Color) int {
	if c == White {
		return s.P1Capstones
	}
	return s.P2Capstones
}
