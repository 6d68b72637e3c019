package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLassoRegression_UnweightedIdentity(t *testing.T) {
	x := [][]float32{{1}, {2}, {3}, {4}}
	y := []float32{1, 2, 3, 4}
	weights := []float32{1, 1, 1, 1}

	w, b := lassoRegression(x, y, weights, 0, 1)

	assert.InDelta(t, 1.0, w[0], 1e-4)
	assert.InDelta(t, 0.0, b, 1e-4)
}

func TestSoftThreshold(t *testing.T) {
	assert.Equal(t, float32(0), softThreshold(0.5, 1))
	assert.Equal(t, float32(1), softThreshold(2, 1))
	assert.Equal(t, float32(-1), softThreshold(-2, 1))
}
