package tak

import "fmt"

// PieceType distinguishes the three kinds of Tak stones. 2 bits.
type PieceType uint8

const (
	Flatstone PieceType = iota
	StandingStone
	Capstone
)

func (t PieceType) String() string {
	switch t {
	case Flatstone:
		return "flat"
	case StandingStone:
		return "wall"
	case Capstone:
		return "cap"
	default:
		return "?"
	}
}

// IsRoadPiece returns whether the piece type counts towards a road (flats and capstones).
func (t PieceType) IsRoadPiece() bool {
	return t == Flatstone || t == Capstone
}

// Piece is a single stone: a color and a piece type. Stored bottom-to-top in a Stack.
type Piece struct {
	Color Color
	Type  PieceType
}

func NewPiece(c Color, t PieceType) Piece {
	return Piece{Color: c, Type: t}
}

func (p Piece) String() string {
	s := "1"
	if p.Color == Black {
		s = "2"
	}
	switch p.Type {
	case StandingStone:
		s += "S"
	case Capstone:
		s += "C"
	}
	return s
}

func (p Piece) IsRoadPiece() bool {
	return p.Type.IsRoadPiece()
}

// ParsePieceType parses the optional top-piece modifier used in TPS stack tokens.
func ParsePieceType(r rune) (PieceType, error) {
	switch r {
	case 'S':
		return StandingStone, nil
	case 'C':
		return Capstone, nil
	default:
		return Flatstone, fmt.Errorf("invalid piece type modifier: %q", r)
	}
}
