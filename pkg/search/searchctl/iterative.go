package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a Launcher that repeatedly searches a position at increasing depth,
// publishing each completed depth's PV before starting the next. Earlier, shallower PVs
// feed the transposition table and killer history that make the next depth's search
// faster -- the standard justification for iterative deepening over searching the target
// depth directly.
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, sctx *search.Context, s *tak.State, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, sctx, s, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, sctx *search.Context, s *tak.State, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		result, err := root.Search(wctx, sctx, s, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", s.FormatTPS(), depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: result.Nodes,
			Score: result.Score,
			Moves: result.PV,
			Time:  time.Since(start),
		}
		if sctx.TT != nil {
			pv.Hash = sctx.TT.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", s.FormatTPS(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if opt.DepthLimit > 0 && depth >= opt.DepthLimit {
			return // halt: reached max depth
		}
		if pv.Score.IsTerminal() {
			return // halt: forced result found within a full-width search; nothing deeper to learn
		}
		if useSoft && soft < time.Since(start) {
			return // halt: this depth alone took longer than the soft limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}
