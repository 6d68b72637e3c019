package ann_test

import (
	"testing"

	"github.com/herohde/tak/pkg/ann"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShallowNet_Forward(t *testing.T) {
	// 2 inputs, 2 hidden units, 1 output; weights chosen so the result is hand-checkable.
	net, err := ann.NewShallowNet(2, 2, 1,
		[]float32{1, 0, 0, 1}, // hidden_weights, column-major [2][2]: identity
		[]float32{0, 0},       // hidden_biases
		[]float32{1, 1},       // output_weights [2][1]
		[]float32{0},          // output_biases
	)
	require.NoError(t, err)

	out, err := net.Forward([]float32{0.5, -0.5})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// hidden = relu([0.5, -0.5]) = [0.5, 0]; output = tanh(0.5*1 + 0*1) = tanh(0.5)
	assert.InDelta(t, 0.46211716, out[0], 1e-6)
}

func TestShallowNet_ShapeValidation(t *testing.T) {
	_, err := ann.NewShallowNet(2, 2, 1, []float32{1, 0}, []float32{0, 0}, []float32{1, 1}, []float32{0})
	assert.Error(t, err)
}
