// Package ann contains a minimal feed-forward neural network: forward inference only, no
// training. Weight layout and activation choices mirror the shallow network architecture
// used to produce the embedded per-board-size evaluation models.
package ann

import "fmt"

// ShallowNet is a two-layer feed-forward network: a ReLU hidden layer followed by a tanh
// output layer. Inputs, Hidden and Outputs are fixed at construction time.
type ShallowNet struct {
	Inputs, Hidden, Outputs int

	HiddenWeights []float32 // column-major [Inputs][Hidden]: HiddenWeights[h*Inputs+i]
	HiddenBiases  []float32 // [Hidden]
	OutputWeights []float32 // column-major [Hidden][Outputs]: OutputWeights[o*Hidden+h]
	OutputBiases  []float32 // [Outputs]
}

// NewShallowNet validates that the given weight slices match the declared shape.
func NewShallowNet(inputs, hidden, outputs int, hiddenWeights, hiddenBiases, outputWeights, outputBiases []float32) (*ShallowNet, error) {
	net := &ShallowNet{
		Inputs: inputs, Hidden: hidden, Outputs: outputs,
		HiddenWeights: hiddenWeights, HiddenBiases: hiddenBiases,
		OutputWeights: outputWeights, OutputBiases: outputBiases,
	}
	if len(hiddenWeights) != inputs*hidden {
		return nil, fmt.Errorf("ann: hidden_weights has %d entries, want %d", len(hiddenWeights), inputs*hidden)
	}
	if len(hiddenBiases) != hidden {
		return nil, fmt.Errorf("ann: hidden_biases has %d entries, want %d", len(hiddenBiases), hidden)
	}
	if len(outputWeights) != hidden*outputs {
		return nil, fmt.Errorf("ann: output_weights has %d entries, want %d", len(outputWeights), hidden*outputs)
	}
	if len(outputBiases) != outputs {
		return nil, fmt.Errorf("ann: output_biases has %d entries, want %d", len(outputBiases), outputs)
	}
	return net, nil
}

// Forward computes out = tanh(relu(x . W1 + b1) . W2 + b2) for a single input vector.
func (n *ShallowNet) Forward(x []float32) ([]float32, error) {
	if len(x) != n.Inputs {
		return nil, fmt.Errorf("ann: input has %d entries, want %d", len(x), n.Inputs)
	}

	hidden := make([]float32, n.Hidden)
	for h := 0; h < n.Hidden; h++ {
		sum := n.HiddenBiases[h]
		base := h * n.Inputs
		for i := 0; i < n.Inputs; i++ {
			sum += x[i] * n.HiddenWeights[base+i]
		}
		hidden[h] = relu(sum)
	}

	out := make([]float32, n.Outputs)
	for o := 0; o < n.Outputs; o++ {
		sum := n.OutputBiases[o]
		base := o * n.Hidden
		for h := 0; h < n.Hidden; h++ {
			sum += hidden[h] * n.OutputWeights[base+h]
		}
		out[o] = tanh32(sum)
	}
	return out, nil
}
