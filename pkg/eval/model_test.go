package eval_test

import (
	"context"
	"testing"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_TerminalRoadWin(t *testing.T) {
	zt := tak.NewZobristTable(1)
	s, err := tak.ParseTPS("x5/x5/x5/x5/1,1,1,1,x 1 3", zt)
	require.NoError(t, err)

	next, err := s.Execute(tak.NewPlace(4, 0, tak.Flatstone))
	require.NoError(t, err)
	require.True(t, next.Resolution.IsOver())

	score, err := eval.Evaluate(context.Background(), next)
	require.NoError(t, err)

	// White completed the road and it's black to move: a loss for the side to move.
	assert.Equal(t, tak.Black, next.ToMove)
	assert.True(t, score.IsTerminal())
	assert.Less(t, score, eval.Zero)
}

func TestEvaluate_NonTerminalWithinRange(t *testing.T) {
	zt := tak.NewZobristTable(1)
	s := tak.NewGame(5, zt)

	score, err := eval.Evaluate(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, score.IsTerminal())
	assert.True(t, score > eval.Min && score < eval.Max)
}

func TestFeatureCount_MatchesGather(t *testing.T) {
	zt := tak.NewZobristTable(1)
	s := tak.NewGame(6, zt)

	features := eval.Gather(s)
	assert.Len(t, features, eval.FeatureCount(6))
	assert.Len(t, eval.FeatureNames(6), eval.FeatureCount(6))
}
