package search

import "go.uber.org/atomic"

// Statistics accumulates search counters across every search run with the Context that
// holds it. Safe for concurrent updates from parallel workers.
type Statistics struct {
	Nodes        atomic.Uint64
	TTHits       atomic.Uint64
	TTCutoffs    atomic.Uint64
	BetaCutoffs  atomic.Uint64
	NullMoveCuts atomic.Uint64
}

// Snapshot returns a point-in-time copy of the counters, safe to read after the search
// that accumulated them has stopped.
func (s *Statistics) Snapshot() StatisticsSnapshot {
	return StatisticsSnapshot{
		Nodes:        s.Nodes.Load(),
		TTHits:       s.TTHits.Load(),
		TTCutoffs:    s.TTCutoffs.Load(),
		BetaCutoffs:  s.BetaCutoffs.Load(),
		NullMoveCuts: s.NullMoveCuts.Load(),
	}
}

// StatisticsSnapshot is an immutable copy of Statistics' counters.
type StatisticsSnapshot struct {
	Nodes, TTHits, TTCutoffs, BetaCutoffs, NullMoveCuts uint64
}
