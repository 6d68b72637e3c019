package search_test

import (
	"testing"

	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveList_OrdersHighestPriorityFirst(t *testing.T) {
	a := tak.NewPlace(0, 0, tak.Flatstone)
	b := tak.NewPlace(1, 1, tak.Flatstone)
	c := tak.NewPlace(2, 2, tak.Flatstone)

	priority := map[string]search.Priority{a.String(): 1, b.String(): 3, c.String(): 2}

	ml := search.NewMoveList([]tak.Ply{a, b, c}, func(p tak.Ply) search.Priority {
		return priority[p.String()]
	})

	first, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, b, first)

	second, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, c, second)

	third, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, a, third)

	_, ok = ml.Next()
	assert.False(t, ok)
}

func TestMoveList_Empty(t *testing.T) {
	ml := search.NewMoveList(nil, func(tak.Ply) search.Priority { return 0 })
	_, ok := ml.Next()
	assert.False(t, ok)
}
