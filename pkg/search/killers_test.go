package search_test

import (
	"testing"

	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
)

func TestKillerTable_StoreAndMoves(t *testing.T) {
	k := search.NewKillerTable(4)

	a := tak.NewPlace(0, 0, tak.Flatstone)
	b := tak.NewPlace(1, 1, tak.Flatstone)

	assert.Empty(t, k.Moves(2))

	k.Store(2, a)
	assert.Equal(t, []tak.Ply{a}, k.Moves(2))

	k.Store(2, b)
	assert.Equal(t, []tak.Ply{b, a}, k.Moves(2), "most recent first")

	// Re-storing an already-present killer is a no-op, not a promotion.
	k.Store(2, a)
	assert.Equal(t, []tak.Ply{b, a}, k.Moves(2))
}

func TestKillerTable_EvictsOldest(t *testing.T) {
	k := search.NewKillerTable(1)

	a := tak.NewPlace(0, 0, tak.Flatstone)
	b := tak.NewPlace(1, 1, tak.Flatstone)
	c := tak.NewPlace(2, 2, tak.Flatstone)

	k.Store(0, a)
	k.Store(0, b)
	k.Store(0, c)

	assert.Equal(t, []tak.Ply{c, b}, k.Moves(0), "oldest killer a is evicted")
}

func TestKillerTable_OutOfRangePlyIsIgnored(t *testing.T) {
	k := search.NewKillerTable(2)

	k.Store(-1, tak.NewPlace(0, 0, tak.Flatstone))
	k.Store(5, tak.NewPlace(0, 0, tak.Flatstone))

	assert.Nil(t, k.Moves(-1))
	assert.Nil(t, k.Moves(5))
}
