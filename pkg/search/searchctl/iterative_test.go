package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/search/searchctl"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// materialEval scores the road-piece (top flatstone and capstone) count difference and
// short-circuits resolved positions to the terminal band, same law the real
// embedded-network Model follows.
type materialEval struct{}

func (materialEval) Evaluate(_ context.Context, s *tak.State) eval.Evaluation {
	if r := s.Resolution; r.IsOver() {
		ply := eval.Evaluation(s.Plies)
		if r.Kind != tak.Draw && r.Winner == s.ToMove {
			return eval.Win - ply
		}
		if r.Kind != tak.Draw {
			return eval.Lose + ply
		}
		return eval.Zero - ply
	}
	mine := s.Metadata.RoadPieces(s.ToMove).PopCount()
	theirs := s.Metadata.RoadPieces(s.ToMove.Opponent()).PopCount()
	return eval.Evaluation(mine - theirs)
}

func TestIterative_LaunchReachesDepthLimit(t *testing.T) {
	zt := tak.NewZobristTable(3)
	s := tak.NewGame(5, zt)

	launcher := &searchctl.Iterative{Root: search.AlphaBeta{Eval: materialEval{}}}
	sctx := search.NewContext(8)

	h, out := launcher.Launch(context.Background(), sctx, s, searchctl.Options{DepthLimit: 2})

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.Equal(t, 2, last.Depth)

	// Halt after completion is idempotent and returns the same final PV.
	assert.Equal(t, last, h.Halt())
}

func TestIterative_HaltStopsAnUnboundedSearch(t *testing.T) {
	zt := tak.NewZobristTable(4)
	s := tak.NewGame(5, zt)

	launcher := &searchctl.Iterative{Root: search.AlphaBeta{Eval: materialEval{}}}
	sctx := search.NewContext(64)

	h, out := launcher.Launch(context.Background(), sctx, s, searchctl.Options{})

	select {
	case _, ok := <-out:
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first depth")
	}

	pv := h.Halt()
	assert.GreaterOrEqual(t, pv.Depth, 1)

	// draining out must complete now that the search has been halted.
	for range out {
	}
}
