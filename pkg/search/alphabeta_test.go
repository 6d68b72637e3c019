package search_test

import (
	"context"
	"testing"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// materialEval is a cheap stand-in for the real neural evaluator: it short-circuits
// resolved positions to the same terminal band the real Model does, and otherwise scores
// the difference in road pieces (flatstones and capstones on top) from the side to move's
// perspective. Good enough to
// exercise the search kernel's control flow without pulling in the embedded network.
type materialEval struct{}

func (materialEval) Evaluate(_ context.Context, s *tak.State) eval.Evaluation {
	if r := s.Resolution; r.IsOver() {
		ply := eval.Evaluation(s.Plies)
		switch r.Kind {
		case tak.RoadWin, tak.FlatWin:
			if r.Winner == s.ToMove {
				return eval.Win - ply
			}
			return eval.Lose + ply
		default:
			return eval.Zero - ply
		}
	}

	mine := s.Metadata.RoadPieces(s.ToMove).PopCount()
	theirs := s.Metadata.RoadPieces(s.ToMove.Opponent()).PopCount()
	return eval.Evaluation(mine - theirs)
}

func TestAlphaBeta_FindsImmediateWin(t *testing.T) {
	// White has four flats across the bottom row; placing at e1 wins outright.
	in := "x5/x5/x5/x5/1,1,1,1,x 1 3"
	s, err := tak.ParseTPS(in, nil)
	require.NoError(t, err)

	ab := search.AlphaBeta{Eval: materialEval{}}
	sctx := search.NewContext(8)

	res, err := ab.Search(context.Background(), sctx, s, 2)
	require.NoError(t, err)

	require.NotEmpty(t, res.PV)
	assert.Equal(t, tak.NewPlace(4, 0, tak.Flatstone), res.PV[0])
	assert.True(t, res.Score.IsTerminal())
	assert.Greater(t, res.Score, eval.Evaluation(0))
}

func TestAlphaBeta_TranspositionTableIsReused(t *testing.T) {
	zt := tak.NewZobristTable(7)
	s := tak.NewGame(5, zt)

	ab := search.AlphaBeta{Eval: materialEval{}}
	sctx := search.NewContext(8)
	sctx.TT = search.NewTranspositionTable(1 << 16)

	_, err := ab.Search(context.Background(), sctx, s, 2)
	require.NoError(t, err)

	before := sctx.Stats.Snapshot().TTHits

	res2, err := ab.Search(context.Background(), sctx, s, 2)
	require.NoError(t, err)

	assert.Greater(t, sctx.Stats.Snapshot().TTHits, before, "re-searching the same position hits the table")
	assert.False(t, res2.Score.IsTerminal())
}

func TestAlphaBeta_HaltsOnCancelledContext(t *testing.T) {
	zt := tak.NewZobristTable(1)
	s := tak.NewGame(5, zt)

	ab := search.AlphaBeta{Eval: materialEval{}}
	sctx := search.NewContext(8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ab.Search(ctx, sctx, s, 4)
	assert.Equal(t, search.ErrHalted, err)
}

func TestAlphaBeta_ParallelSearchMatchesSequential(t *testing.T) {
	zt := tak.NewZobristTable(11)
	s := tak.NewGame(4, zt)

	ab := search.AlphaBeta{Eval: materialEval{}}

	seq := search.NewContext(8)
	want, err := ab.Search(context.Background(), seq, s, 3)
	require.NoError(t, err)

	par := search.NewParallelContext(8, 4)
	defer par.Close()

	got, err := ab.Search(context.Background(), par, s, 3)
	require.NoError(t, err)

	assert.Equal(t, want.Score, got.Score, "parallel search must agree with sequential search on the same position")
	assert.NotZero(t, got.Nodes)
}

func TestAlphaBeta_ResolvedRootNeverReachesPlyGeneration(t *testing.T) {
	// search() special-cases resolved positions before generating plies, so a fully
	// resolved root is never handed to the ply stream in the first place.
	in := "x5/x5/x5/x5/1,1,1,1,1 1 4"
	s, err := tak.ParseTPS(in, nil)
	require.NoError(t, err)
	require.True(t, s.Resolution.IsOver())

	ab := search.AlphaBeta{Eval: materialEval{}}
	sctx := search.NewContext(8)

	assert.NotPanics(t, func() {
		_, _ = ab.Search(context.Background(), sctx, s, 3)
	})
}
