package search_test

import (
	"testing"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable_SizeRoundsDownToPowerOfTwoSlots(t *testing.T) {
	small := search.NewTranspositionTable(0x1000)
	large := search.NewTranspositionTable(0x1700)

	assert.Equal(t, small.Size(), large.Size(), "0x1700 rounds down to the same slot count as 0x1000")
	assert.Greater(t, small.Size(), uint64(0))
}

func TestTranspositionTable_ReadWrite(t *testing.T) {
	tt := search.NewTranspositionTable(1 << 20)

	var a tak.ZobristHash = 0xdeadbeef

	_, ok := tt.Read(a)
	assert.False(t, ok)

	p := tak.NewPlace(2, 2, tak.Flatstone)
	entry := search.Entry{Bound: search.ExactBound, Depth: 5, Score: eval.Evaluation(120), Ply: p, HasPly: true}

	assert.True(t, tt.Write(a, entry))

	got, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, entry, got)

	_, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)
}

func TestTranspositionTable_DepthBasedReplacement(t *testing.T) {
	// A single-slot table forces every hash to collide, so replacement behavior is
	// deterministic to observe from outside the package.
	tt := search.NewTranspositionTable(1)

	var a, b tak.ZobristHash = 1, 2

	deep := search.Entry{Bound: search.ExactBound, Depth: 4, Score: eval.Evaluation(2)}
	require := assert.New(t)
	require.True(tt.Write(a, deep))

	shallow := search.Entry{Bound: search.ExactBound, Depth: 2, Score: eval.Evaluation(1)}
	require.False(tt.Write(b, shallow), "an unrelated but deeper result is kept over a shallower one")

	got, ok := tt.Read(a)
	require.True(ok)
	require.Equal(deep, got)

	deeper := search.Entry{Bound: search.ExactBound, Depth: 5, Score: eval.Evaluation(3)}
	require.True(tt.Write(b, deeper), "a deeper result replaces the slot regardless of hash")

	got, ok = tt.Read(b)
	require.True(ok)
	require.Equal(deeper, got)
}

func TestTranspositionTable_Used(t *testing.T) {
	tt := search.NewTranspositionTable(1 << 20)
	assert.Equal(t, float64(0), tt.Used())

	tt.Write(1, search.Entry{Bound: search.ExactBound, Depth: 1})
	assert.Greater(t, tt.Used(), float64(0))
}

func TestNoTranspositionTable(t *testing.T) {
	var tt search.NoTranspositionTable

	ok := tt.Write(1, search.Entry{Depth: 5})
	assert.False(t, ok)

	_, found := tt.Read(1)
	assert.False(t, found)
	assert.Equal(t, uint64(0), tt.Size())
	assert.Equal(t, float64(0), tt.Used())
}
