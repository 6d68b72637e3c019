package search

import (
	"container/heap"

	"github.com/herohde/tak/pkg/tak"
)

// Priority represents a ply's move-order priority: higher values are tried first.
type Priority int32

// MoveList is a ply priority queue used to order the exhaustive remainder of a position's
// plies once the forced-win, transposition and killer candidates are exhausted.
type MoveList struct {
	h plyHeap
}

// NewMoveList returns a move list over plies, ordered by fn from highest to lowest.
func NewMoveList(plies []tak.Ply, fn func(p tak.Ply) Priority) *MoveList {
	h := make(plyHeap, len(plies))
	for i, p := range plies {
		h[i] = plyElm{p: p, val: fn(p)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the highest-priority remaining ply, or false once the list is empty.
func (ml *MoveList) Next() (tak.Ply, bool) {
	if ml.h.Len() == 0 {
		return tak.Ply{}, false
	}
	return heap.Pop(&ml.h).(plyElm).p, true
}

type plyElm struct {
	p   tak.Ply
	val Priority
}

type plyHeap []plyElm

func (h plyHeap) Len() int            { return len(h) }
func (h plyHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h plyHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *plyHeap) Push(x interface{}) { *h = append(*h, x.(plyElm)) }

func (h *plyHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[:n-1]
	return ret
}

// centerPriority ranks every spread at least as high as any placement (the exact center
// square of an odd-sized board ties with them), and within placements favors squares
// closer to the board's center: early Tak play is dominated by center control, and
// spreads tend to be more forcing than a quiet placement.
func centerPriority(n int) func(p tak.Ply) Priority {
	mid := float64(n-1) / 2
	return func(p tak.Ply) Priority {
		if p.Kind == tak.Spread {
			return 1000
		}
		dx := float64(p.X) - mid
		dy := float64(p.Y) - mid
		return Priority(1000 - int(100*(dx*dx+dy*dy)))
	}
}
