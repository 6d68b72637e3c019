// Package searchctl drives an search.Search implementation through iterative deepening,
// under depth and wall-clock limits, and exposes a handle the caller can use to halt a
// running search and collect its best result so far.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
)

// Options hold the dynamic limits for one search: the caller may set either, both, or
// neither. Depth 0 and a nil TimeControl both mean "no limit" on that dimension.
type Options struct {
	DepthLimit  int
	TimeControl *TimeControl
}

func (o Options) String() string {
	var ret []string
	if o.DepthLimit > 0 {
		ret = append(ret, fmt.Sprintf("depth=%v", o.DepthLimit))
	}
	if o.TimeControl != nil {
		ret = append(ret, fmt.Sprintf("time=%v", *o.TimeControl))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher starts an iterative-deepening search and returns a handle to manage it.
type Launcher interface {
	// Launch begins searching s. It returns a channel of increasingly deep PVs -- closed
	// once the search halts, whether by exhausting opt's limits or an explicit Halt -- and
	// a Handle to stop it early.
	Launch(ctx context.Context, sctx *search.Context, s *tak.State, opt Options) (Handle, <-chan search.PV)
}

// Handle manages a running search. The engine is expected to spin off searches against
// forked positions and Halt them when no longer needed; Halt is idempotent and returns the
// best PV found so far. If called before the first depth completes, Halt waits for that
// depth (or for the search to end) before returning.
type Handle interface {
	Halt() search.PV
}
