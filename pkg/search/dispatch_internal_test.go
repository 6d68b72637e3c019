package search

import (
	"testing"
	"time"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_SplitRunsEveryPly(t *testing.T) {
	d := NewDispatcher(4, 8)
	defer d.Close()

	plies := []tak.Ply{
		tak.NewPlace(0, 0, tak.Flatstone),
		tak.NewPlace(1, 1, tak.Flatstone),
		tak.NewPlace(2, 2, tak.Flatstone),
	}

	results, _ := d.Split(plies, func(p tak.Ply, wk *KillerTable) (eval.Evaluation, []tak.Ply) {
		assert.NotNil(t, wk)
		return eval.Evaluation(p.X), []tak.Ply{p}
	})

	seen := map[string]bool{}
	for r := range results {
		seen[r.ply.String()] = true
		assert.Equal(t, []tak.Ply{r.ply}, r.pv)
	}
	for _, p := range plies {
		assert.True(t, seen[p.String()], "ply %v missing from results", p)
	}
}

func TestDispatcher_SplitEmptyBatchClosesImmediately(t *testing.T) {
	d := NewDispatcher(2, 8)
	defer d.Close()

	results, prune := d.Split(nil, func(tak.Ply, *KillerTable) (eval.Evaluation, []tak.Ply) {
		t.Fatal("fn must not be called for an empty batch")
		return 0, nil
	})
	prune()

	_, ok := <-results
	assert.False(t, ok, "results channel is closed with nothing to read")
}

func TestDispatcher_PruneStopsBlockingEarlyConsumer(t *testing.T) {
	d := NewDispatcher(2, 8)
	defer d.Close()

	plies := make([]tak.Ply, 10)
	for i := range plies {
		plies[i] = tak.NewPlace(i%5, i/5, tak.Flatstone)
	}

	results, prune := d.Split(plies, func(p tak.Ply, wk *KillerTable) (eval.Evaluation, []tak.Ply) {
		return eval.Evaluation(p.X), nil
	})

	// Consume a single result, then abandon the rest -- finish() on the remaining workers
	// must not block even though nothing else ever reads from results.
	select {
	case _, ok := <-results:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first result")
	}
	prune()
}

func TestDispatcher_ResetAndMergeKillers(t *testing.T) {
	d := NewDispatcher(3, 8)
	defer d.Close()

	root := NewKillerTable(8)
	root.Store(2, tak.NewPlace(0, 0, tak.Flatstone))

	d.ResetKillersFrom(root)
	for _, wk := range d.killers {
		assert.Equal(t, []tak.Ply{tak.NewPlace(0, 0, tak.Flatstone)}, wk.Moves(2))
	}

	d.killers[1].Store(3, tak.NewPlace(1, 1, tak.Flatstone))

	merged := NewKillerTable(8)
	d.MergeKillersInto(merged)
	assert.Equal(t, []tak.Ply{tak.NewPlace(0, 0, tak.Flatstone)}, merged.Moves(2))
	assert.Equal(t, []tak.Ply{tak.NewPlace(1, 1, tak.Flatstone)}, merged.Moves(3))
}

func TestBag_ReusesFreedSlots(t *testing.T) {
	var b Bag[int]

	a := b.Push(1)
	_ = b.Push(2)
	b.Remove(a)
	c := b.Push(3)

	assert.Equal(t, a, c, "freed slot is reused before growing")
	assert.Equal(t, 2, b.Len())

	v, ok := b.Get(c)
	require.True(t, ok)
	assert.Equal(t, 3, *v)

	_, ok = b.Get(a)
	assert.True(t, ok, "slot a now holds the reused entry")
}
