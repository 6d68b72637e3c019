// Package search implements alpha-beta position search over Tak states: ordered move
// generation, a transposition table, killer moves and a parallel dispatcher compose into
// a principal-variation search that the searchctl package drives to iterative depths.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/tak"
	"github.com/seekerror/build"
)

// Version identifies this search package's behavior, reported alongside every PV so a
// caller logging or persisting results can tell which search engine produced them.
var Version = build.NewVersion(0, 1, 0)

// ErrHalted indicates a search was stopped before reaching its target depth, whether by
// context cancellation or an explicit Handle.Halt call.
var ErrHalted = errors.New("search: halted")

// PV is the principal variation and score reported for one completed search depth.
type PV struct {
	Depth int
	Moves []tak.Ply
	Score eval.Evaluation
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization [0;1], if a table was used
}

func (p PV) String() string {
	moves := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		moves[i] = m.String()
	}
	return fmt.Sprintf("version=%v depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		Version, p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), strings.Join(moves, " "))
}

// Search evaluates s to the given remaining depth and returns the score, from the
// perspective of s.ToMove, together with the principal variation that achieves it.
// Implementations must be safe to invoke repeatedly with increasing depth against the
// same Context, as iterative deepening does.
type Search interface {
	Search(ctx context.Context, sctx *Context, s *tak.State, depth int) (Result, error)
}

// Result is the outcome of one Search call.
type Result struct {
	Score eval.Evaluation
	PV    []tak.Ply
	Nodes uint64
}

// NewContext returns a Context with a killer table sized for up to maxPly plies-from-root
// and fresh statistics. TT and Dispatch are left nil; set them explicitly to enable
// transposition caching and parallel search respectively.
func NewContext(maxPly int) *Context {
	return &Context{
		Killers: NewKillerTable(maxPly),
		Stats:   &Statistics{},
	}
}

// DefaultSplitDepth is the remaining depth at or above which a node's non-eldest children
// are parallelized across the dispatcher, per Young Brothers Wait. Below it, the overhead
// of crossing goroutines outweighs what's left to search in the subtree.
const DefaultSplitDepth = 3

// NewParallelContext is NewContext with a worker pool of the given size wired in: a fresh
// Dispatcher and DefaultSplitDepth, so AlphaBeta.Search parallelizes young siblings at
// nodes deep enough to be worth it. A worker pool this size is expected to be created once
// per analyze call and Closed when the caller is done searching with it.
func NewParallelContext(maxPly, workers int) *Context {
	sctx := NewContext(maxPly)
	sctx.Dispatch = NewDispatcher(workers, maxPly)
	sctx.SplitDepth = DefaultSplitDepth
	return sctx
}

// Close releases resources owned by sctx, namely its worker pool if NewParallelContext
// wired one in. Safe to call on a Context built with plain NewContext.
func (c *Context) Close() {
	if c.Dispatch != nil {
		c.Dispatch.Close()
	}
}
