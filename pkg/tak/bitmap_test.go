package tak_test

import (
	"strings"
	"testing"

	"github.com/herohde/tak/pkg/tak"
	"github.com/stretchr/testify/assert"
)

// parseGrid turns a sequence of "01000" style rows (top row first, matching
// Bitmap.String's display order) into a Bitmap.
func parseGrid(n int, rows string) tak.Bitmap {
	lines := strings.Split(rows, "/")
	var b tak.Bitmap
	for i, line := range lines {
		y := n - 1 - i
		for x, r := range line {
			if r == '1' {
				b = b.Set(tak.Square{X: x, Y: y}, n)
			}
		}
	}
	return b
}

func TestPlacementThreatMap(t *testing.T) {
	n := 5
	road := parseGrid(n, "01000/11110/01000/00000/01000")

	t.Run("no blockers", func(t *testing.T) {
		expected := parseGrid(n, "00000/00001/00000/01000/00000")
		assert.Equal(t, expected, tak.PlacementThreatMap(road, tak.EmptyBitmap, n))
	})

	t.Run("row blocked", func(t *testing.T) {
		blocked := parseGrid(n, "01000/11111/01000/00000/01000")
		expected := parseGrid(n, "00000/00000/00000/01000/00000")
		assert.Equal(t, expected, tak.PlacementThreatMap(road, blocked, n))
	})
}

func TestDropCombos(t *testing.T) {
	combos := tak.DropCombos(4)
	assert.Len(t, combos, 8)
}

func TestGroups(t *testing.T) {
	n := 5
	mask := parseGrid(n, "11000/10000/00000/00011/00010")
	groups := tak.Groups(mask, n)
	assert.Len(t, groups, 2)
}
