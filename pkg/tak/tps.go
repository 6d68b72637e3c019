package tak

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTPS decodes a position in Tak Positional System notation.
//
// Example:
//   "x5/x5/x5/x5/x5 1 1"
//   "21,1,1,1,1/x5/x5/x5/x,2,x,x,x 2 3"
//
// A TPS record has three space-separated fields: the board, the side to move, and the
// move number. zt may be nil, in which case the returned State's Hash is left zero.
func ParseTPS(tps string, zt *ZobristTable) (*State, error) {
	fields := strings.Fields(tps)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: wrong number of fields in %q", ErrInvalidTPS, tps)
	}

	// (1) Board rows, from rank n down to rank 1; within a row, files a through n. A run
	// of empty squares is "x" or "xN"; an occupied square is a bottom-to-top run of "1"/"2"
	// color digits, with an optional trailing "S"/"C" modifier describing the top piece.

	rows := strings.Split(fields[0], "/")
	n := len(rows)
	if n < 3 || n > 8 {
		return nil, fmt.Errorf("%w: unsupported board size %d in %q", ErrInvalidTPS, n, tps)
	}

	board := make([][]Stack, n)
	for x := range board {
		board[x] = make([]Stack, n)
	}

	for i, row := range rows {
		y := n - 1 - i
		x := 0
		for _, cell := range strings.Split(row, ",") {
			if cell == "" {
				return nil, fmt.Errorf("%w: empty cell in %q", ErrInvalidTPS, tps)
			}
			if cell[0] == 'x' {
				count := 1
				if len(cell) > 1 {
					c, err := strconv.Atoi(cell[1:])
					if err != nil || c < 1 {
						return nil, fmt.Errorf("%w: bad run %q in %q", ErrInvalidTPS, cell, tps)
					}
					count = c
				}
				x += count
				continue
			}

			body := cell
			mod := Flatstone
			if last := body[len(body)-1]; last == 'S' || last == 'C' {
				t, err := ParsePieceType(rune(last))
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidTPS, err)
				}
				mod = t
				body = body[:len(body)-1]
			}
			if body == "" || x >= n {
				return nil, fmt.Errorf("%w: bad stack %q in %q", ErrInvalidTPS, cell, tps)
			}

			var stack Stack
			for j, r := range body {
				c, err := ParseColor(string(r))
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidTPS, err)
				}
				t := Flatstone
				if j == len(body)-1 {
					t = mod
				}
				stack = stack.Push(NewPiece(c, t), false)
			}
			board[x][y] = stack
			x++
		}
		if x != n {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d in %q", ErrInvalidTPS, i, x, n, tps)
		}
	}

	// (2) Active color: "1" for White, "2" for Black.

	toMove, err := ParseColor(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTPS, err)
	}

	// (3) Move number, starting at 1, incremented after Black's ply.

	move, err := strconv.Atoi(fields[2])
	if err != nil || move < 1 {
		return nil, fmt.Errorf("%w: bad move number in %q", ErrInvalidTPS, tps)
	}

	flats, caps := reserveCounts(n)
	s := &State{
		Size: n, Board: board, ToMove: toMove, Plies: (move - 1) * 2,
		P1Flatstones: flats, P1Capstones: caps,
		P2Flatstones: flats, P2Capstones: caps,
		zt: zt,
	}
	if toMove == Black {
		s.Plies++
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			stack := board[x][y]
			for h := 0; h < stack.Len(); h++ {
				p := stack.At(h)
				if err := s.debitReserve(p.Color, p.Type); err != nil {
					return nil, fmt.Errorf("%w: %v in %q", ErrInvalidTPS, err, tps)
				}
			}
			if top, ok := stack.Top(); ok {
				s.Metadata = s.Metadata.set(Square{X: x, Y: y}, n, top)
			}
		}
	}

	if zt != nil {
		s.Hash = zt.Hash(s)
	}
	s.Resolution = s.resolve(toMove.Opponent())
	return s, nil
}

// FormatTPS encodes s in Tak Positional System notation.
func (s *State) FormatTPS() string {
	var rows []string
	for y := s.Size - 1; y >= 0; y-- {
		var cells []string
		run := 0
		flush := func() {
			if run == 0 {
				return
			}
			if run == 1 {
				cells = append(cells, "x")
			} else {
				cells = append(cells, fmt.Sprintf("x%d", run))
			}
			run = 0
		}

		for x := 0; x < s.Size; x++ {
			stack := s.Board[x][y]
			if stack.IsEmpty() {
				run++
				continue
			}
			flush()

			var sb strings.Builder
			for h := 0; h < stack.Len(); h++ {
				if stack.At(h).Color == White {
					sb.WriteByte('1')
				} else {
					sb.WriteByte('2')
				}
			}
			if top, _ := stack.Top(); top.Type == StandingStone {
				sb.WriteByte('S')
			} else if top.Type == Capstone {
				sb.WriteByte('C')
			}
			cells = append(cells, sb.String())
		}
		flush()
		rows = append(rows, strings.Join(cells, ","))
	}

	side := "1"
	if s.ToMove == Black {
		side = "2"
	}
	move := s.Plies/2 + 1
	return fmt.Sprintf("%s %s %d", strings.Join(rows, "/"), side, move)
}
