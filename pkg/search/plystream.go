package search

import "github.com/herohde/tak/pkg/tak"

// Fallibility marks whether a candidate ply is guaranteed legal in the position it was
// offered for (Infallible: derived directly from the position itself) or must be
// validated before use (Fallible: suggested by a transposition-table or killer-move entry
// that may no longer apply to this exact position).
type Fallibility uint8

const (
	Fallible Fallibility = iota
	Infallible
)

// Continuation tells the ply stream whether to keep chaining further sources after a
// candidate. Stop is used by the forced-win source: an immediate winning placement makes
// every other move in the position moot, so nothing past it is worth generating.
type Continuation uint8

const (
	Continue Continuation = iota
	Stop
)

// candidate is one ply proposed by an ordering source.
type candidate struct {
	ply          tak.Ply
	fallibility  Fallibility
	continuation Continuation
}

// PlyStream produces a position's plies in priority order -- a forced win, the
// transposition table's remembered best move, killer moves for this ply-from-root, then
// every remaining legal ply by move-order heuristic -- deduplicating as it goes so each
// distinct ply is offered exactly once.
type PlyStream struct {
	sources [][]candidate
	seen    map[string]bool
	i, j    int
	stopped bool
}

// NewPlyStream builds the ordered candidate stream for s. ttPly is the transposition
// table's suggested move for this exact position, if any. killers are this ply-from-root's
// killer moves, most recent first.
func NewPlyStream(s *tak.State, ttPly *tak.Ply, killers []tak.Ply) *PlyStream {
	return &PlyStream{
		sources: [][]candidate{
			forcedWin(s),
			ttCandidate(ttPly),
			killerCandidates(killers),
			remainder(s),
		},
		seen: make(map[string]bool),
	}
}

// Next returns the next ply to try and whether the caller must validate it before use, or
// false once the stream is exhausted.
func (p *PlyStream) Next() (tak.Ply, Fallibility, bool) {
	if p.stopped {
		return tak.Ply{}, 0, false
	}
	for p.i < len(p.sources) {
		if p.j >= len(p.sources[p.i]) {
			p.i++
			p.j = 0
			continue
		}

		c := p.sources[p.i][p.j]
		p.j++

		key := c.ply.String()
		if p.seen[key] {
			continue
		}
		p.seen[key] = true

		if c.continuation == Stop {
			p.stopped = true
		}
		return c.ply, c.fallibility, true
	}
	return tak.Ply{}, 0, false
}

// placementThreats returns the empty squares where c could complete a road by placing a
// single flat or capstone right now.
func placementThreats(s *tak.State, c tak.Color) tak.Bitmap {
	road := s.Metadata.RoadPieces(c)
	blocking := s.Metadata.Occupied().Without(road)
	return tak.PlacementThreatMap(road, blocking, s.Size)
}

// forcedWin returns the single placement that would immediately complete a road for the
// side to move, if one exists. Nothing else in the position is worth searching when a
// forced win is available, so it carries Stop.
func forcedWin(s *tak.State) []candidate {
	threats := placementThreats(s, s.ToMove)
	if threats.IsEmpty() {
		return nil
	}

	pieceType := tak.Capstone
	if reserveFlatstones(s, s.ToMove) > 0 {
		pieceType = tak.Flatstone
	}

	sq := threats.Squares(s.Size)[0]
	return []candidate{{
		ply:          tak.NewPlace(sq.X, sq.Y, pieceType),
		fallibility:  Infallible,
		continuation: Stop,
	}}
}

func reserveFlatstones(s *tak.State, c tak.Color) int {
	if c == tak.White {
		return s.P1Flatstones
	}
	return s.P2Flatstones
}

func ttCandidate(ply *tak.Ply) []candidate {
	if ply == nil {
		return nil
	}
	return []candidate{{ply: *ply, fallibility: Fallible, continuation: Continue}}
}

func killerCandidates(killers []tak.Ply) []candidate {
	ret := make([]candidate, len(killers))
	for i, k := range killers {
		ret[i] = candidate{ply: k, fallibility: Fallible, continuation: Continue}
	}
	return ret
}

// remainder returns every legal ply of s, ordered by a cheap move-order heuristic. Every
// ply here is derived straight from s.LegalPlies, so it is always Infallible.
func remainder(s *tak.State) []candidate {
	plies := s.LegalPlies()
	list := NewMoveList(plies, centerPriority(s.Size))

	ret := make([]candidate, 0, len(plies))
	for {
		p, ok := list.Next()
		if !ok {
			break
		}
		ret = append(ret, candidate{ply: p, fallibility: Infallible, continuation: Continue})
	}
	return ret
}
