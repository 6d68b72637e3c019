package tak

// Stack is the pieces occupying a square, bottom-to-top. An empty stack has no top piece.
type Stack struct {
	pieces []Piece
}

func (s Stack) Len() int {
	return len(s.pieces)
}

func (s Stack) IsEmpty() bool {
	return len(s.pieces) == 0
}

// Top returns the top piece, if any.
func (s Stack) Top() (Piece, bool) {
	if len(s.pieces) == 0 {
		return Piece{}, false
	}
	return s.pieces[len(s.pieces)-1], true
}

// TopType is a convenience accessor for Top().Type.
func (s Stack) TopType() (PieceType, bool) {
	p, ok := s.Top()
	if !ok {
		return 0, false
	}
	return p.Type, true
}

// At returns the piece at the given height, 0-indexed from the bottom.
func (s Stack) At(height int) Piece {
	return s.pieces[height]
}

// Push places a piece on top of the stack, flattening a standing stone if crush is set.
func (s Stack) Push(p Piece, crush bool) Stack {
	pieces := make([]Piece, len(s.pieces), len(s.pieces)+1)
	copy(pieces, s.pieces)
	if crush {
		pieces[len(pieces)-1].Type = Flatstone
	}
	pieces = append(pieces, p)
	return Stack{pieces: pieces}
}

// Take removes and returns the top count pieces, bottom-to-top, along with the remainder.
func (s Stack) Take(count int) (taken []Piece, remainder Stack) {
	split := len(s.pieces) - count
	taken = append([]Piece(nil), s.pieces[split:]...)
	remainder = Stack{pieces: append([]Piece(nil), s.pieces[:split]...)}
	return taken, remainder
}

// Append appends pieces (bottom-to-top) onto the stack, flattening its current top if crush is set.
func (s Stack) Append(pieces []Piece, crush bool) Stack {
	out := make([]Piece, len(s.pieces), len(s.pieces)+len(pieces))
	copy(out, s.pieces)
	if crush && len(out) > 0 {
		out[len(out)-1].Type = Flatstone
	}
	out = append(out, pieces...)
	return Stack{pieces: out}
}

// Owners returns the color of every piece in the stack, bottom-to-top.
func (s Stack) Owners() []Color {
	ret := make([]Color, len(s.pieces))
	for i, p := range s.pieces {
		ret[i] = p.Color
	}
	return ret
}
