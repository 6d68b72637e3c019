package search_test

import (
	"testing"

	"github.com/herohde/tak/pkg/search"
	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlyStream_ForcedWinStopsTheStream(t *testing.T) {
	// White has four flats across the bottom row; placing at e1 completes the road.
	in := "x5/x5/x5/x5/1,1,1,1,x 1 3"
	s, err := tak.ParseTPS(in, nil)
	require.NoError(t, err)

	stream := search.NewPlyStream(s, nil, nil)

	p, fallibility, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, tak.NewPlace(4, 0, tak.Flatstone), p)
	assert.Equal(t, search.Infallible, fallibility)

	_, _, ok = stream.Next()
	assert.False(t, ok, "nothing else is worth searching once a forced win is found")
}

func TestPlyStream_TTAndKillersPrecedeRemainderAndDedup(t *testing.T) {
	s := tak.NewGame(5, nil)

	tt := tak.NewPlace(2, 2, tak.Flatstone)
	killerDup := tt // already offered by the TT; must not be repeated
	killerNew := tak.NewPlace(1, 1, tak.Flatstone)

	stream := search.NewPlyStream(s, &tt, []tak.Ply{killerDup, killerNew})

	p, fallibility, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, tt, p)
	assert.Equal(t, search.Fallible, fallibility)

	p, fallibility, ok = stream.Next()
	require.True(t, ok)
	assert.Equal(t, killerNew, p)
	assert.Equal(t, search.Fallible, fallibility)

	seen := map[string]bool{tt.String(): true, killerNew.String(): true}
	count := 0
	for {
		p, fallibility, ok := stream.Next()
		if !ok {
			break
		}
		assert.Equal(t, search.Infallible, fallibility)
		assert.Falsef(t, seen[p.String()], "ply %v repeated", p)
		seen[p.String()] = true
		count++
	}
	assert.Greater(t, count, 0, "opening position has legal remainder plies")
}

func TestPlyStream_NilTTPlyYieldsNoTTCandidate(t *testing.T) {
	s := tak.NewGame(5, nil)
	stream := search.NewPlyStream(s, nil, nil)

	// The very first candidate must come straight from the legal-ply remainder, since
	// there is no TT hint and no killers to try first.
	_, fallibility, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, search.Infallible, fallibility)
}
