package tak

import (
	"fmt"
	"strings"
)

// PlyKind distinguishes the two kinds of ply.
type PlyKind uint8

const (
	Place PlyKind = iota
	Spread
)

// Ply is a tagged union: a placement of a new stone, or a spread of a stack. Drops holds
// the number of stones dropped on each square along the spread, from the origin outward;
// it sums to at most N and has length at most N.
type Ply struct {
	Kind      PlyKind
	X, Y      int
	PieceType PieceType // Place only
	Direction Direction // Spread only
	Drops     []int     // Spread only
	Crush     bool      // Spread only: final drop is a lone capstone onto a standing stone
}

func NewPlace(x, y int, t PieceType) Ply {
	return Ply{Kind: Place, X: x, Y: y, PieceType: t}
}

func NewSpread(x, y int, dir Direction, drops []int, crush bool) Ply {
	return Ply{Kind: Spread, X: x, Y: y, Direction: dir, Drops: drops, Crush: crush}
}

func (p Ply) Equals(o Ply) bool {
	if p.Kind != o.Kind || p.X != o.X || p.Y != o.Y {
		return false
	}
	switch p.Kind {
	case Place:
		return p.PieceType == o.PieceType
	case Spread:
		if p.Direction != o.Direction || p.Crush != o.Crush || len(p.Drops) != len(o.Drops) {
			return false
		}
		for i := range p.Drops {
			if p.Drops[i] != o.Drops[i] {
				return false
			}
		}
		return true
	}
	return false
}

// PickupCount is the number of stones picked up by a spread: the sum of Drops.
func (p Ply) PickupCount() int {
	n := 0
	for _, d := range p.Drops {
		n += d
	}
	return n
}

func (p Ply) String() string {
	col := string(rune('a' + p.X))
	switch p.Kind {
	case Place:
		suffix := ""
		switch p.PieceType {
		case StandingStone:
			suffix = "S"
		case Capstone:
			suffix = "C"
		}
		return fmt.Sprintf("%s%s%v", suffix, col, p.Y+1)
	case Spread:
		count := p.PickupCount()
		prefix := ""
		if count > 1 {
			prefix = fmt.Sprintf("%v", count)
		}
		drops := make([]string, len(p.Drops))
		for i, d := range p.Drops {
			drops[i] = fmt.Sprintf("%v", d)
		}
		dropStr := ""
		if len(p.Drops) > 1 {
			dropStr = strings.Join(drops, "")
		}
		crush := ""
		if p.Crush {
			crush = "*"
		}
		return fmt.Sprintf("%v%s%v%v%v%v", prefix, col, p.Y+1, p.Direction, dropStr, crush)
	}
	return "?"
}
