package ann

import "math"

func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

func tanh32(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}
