package search

import "github.com/herohde/tak/pkg/tak"

// killerSlots is the number of killer moves remembered per ply-from-root.
const killerSlots = 2

// KillerTable remembers, for each ply-from-root, the most recent plies that caused a beta
// cutoff there. A move that pruned one sibling's subtree is a good bet to prune the next
// sibling's too, so the ply stream tries these before falling through to the full move
// list. Not safe for concurrent use: a searcher owns one KillerTable per goroutine and
// indexes it by ply-from-root, not by absolute search depth, so siblings at the same
// distance from the root share history regardless of which branch of the tree they're in.
// A parallel search gives each worker its own Clone and Merges the clones back into the
// root table once the workers are idle.
type KillerTable struct {
	moves [][killerSlots]tak.Ply
	set   [][killerSlots]bool
}

// NewKillerTable returns a table sized for ply-from-root values in [0, maxPly).
func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{
		moves: make([][killerSlots]tak.Ply, maxPly),
		set:   make([][killerSlots]bool, maxPly),
	}
}

// Store records ply as the most recent killer at the given ply-from-root, evicting the
// oldest slot. Storing a move already present is a no-op rather than a promotion.
func (k *KillerTable) Store(ply int, p tak.Ply) {
	if ply < 0 || ply >= len(k.moves) {
		return
	}
	for i := 0; i < killerSlots; i++ {
		if k.set[ply][i] && k.moves[ply][i].Equals(p) {
			return
		}
	}
	copy(k.moves[ply][1:], k.moves[ply][:killerSlots-1])
	copy(k.set[ply][1:], k.set[ply][:killerSlots-1])
	k.moves[ply][0] = p
	k.set[ply][0] = true
}

// Moves returns the killer plies stored at the given ply-from-root, most recent first.
func (k *KillerTable) Moves(ply int) []tak.Ply {
	if ply < 0 || ply >= len(k.moves) {
		return nil
	}
	var ret []tak.Ply
	for i := 0; i < killerSlots; i++ {
		if k.set[ply][i] {
			ret = append(ret, k.moves[ply][i])
		}
	}
	return ret
}

// Clone returns an independent copy of k, safe to hand to a worker goroutine that will
// mutate it in isolation.
func (k *KillerTable) Clone() *KillerTable {
	c := &KillerTable{
		moves: make([][killerSlots]tak.Ply, len(k.moves)),
		set:   make([][killerSlots]bool, len(k.set)),
	}
	copy(c.moves, k.moves)
	copy(c.set, k.set)
	return c
}

// Merge folds other's entries into k, oldest first, so other's most recent killer at each
// ply ends up k's most recent too, unless k already held it: Store does not promote a ply
// that is already present, so such a ply keeps its old place in k. Intended for combining a worker's per-thread clone back
// into the root table at an iteration boundary; the caller must exclude concurrent access
// to k while merging.
func (k *KillerTable) Merge(other *KillerTable) {
	for ply := 0; ply < len(other.moves) && ply < len(k.moves); ply++ {
		for i := killerSlots - 1; i >= 0; i-- {
			if other.set[ply][i] {
				k.Store(ply, other.moves[ply][i])
			}
		}
	}
}
