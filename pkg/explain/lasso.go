package explain

import "math"

// lassoRegression fits w, b such that y ~= x.w + b, penalized by alpha, via coordinate
// descent with sample-weighted, centered inputs. x is row-major [samples][features].
//
// Each sample is additionally reweighted by the square root of its weight, which is the
// standard trick for turning a weighted least-squares problem into an unweighted one: a
// row scaled by sqrt(w) contributes w to the normal equations once squared.
func lassoRegression(x [][]float32, y, sampleWeights []float32, alpha float32, iterations int) (weights []float32, intercept float32) {
	samples := len(x)
	features := len(x[0])

	w := make([]float32, len(sampleWeights))
	var sum float32
	for _, sw := range sampleWeights {
		sum += sw
	}
	for i, sw := range sampleWeights {
		w[i] = sw * float32(samples) / sum
	}

	xMean := make([]float32, features)
	for f := 0; f < features; f++ {
		var acc float32
		for s := 0; s < samples; s++ {
			acc += x[s][f] * w[s]
		}
		xMean[f] = acc / float32(samples)
	}

	centered := make([][]float32, samples)
	for s := range centered {
		centered[s] = make([]float32, features)
		for f := 0; f < features; f++ {
			centered[s][f] = x[s][f] - xMean[f]
		}
	}

	var yMean float32
	for s := 0; s < samples; s++ {
		yMean += y[s] * w[s]
	}
	yMean /= float32(samples)

	residual := make([]float32, samples)
	for s := 0; s < samples; s++ {
		residual[s] = y[s] - yMean
	}

	for s := 0; s < samples; s++ {
		sw := float32(math.Sqrt(float64(w[s])))
		for f := 0; f < features; f++ {
			centered[s][f] *= sw
		}
		residual[s] *= sw
	}

	xNorm := make([]float32, features)
	for f := 0; f < features; f++ {
		var acc float32
		for s := 0; s < samples; s++ {
			acc += centered[s][f] * centered[s][f]
		}
		xNorm[f] = acc
	}

	coef := make([]float32, features)

	for it := 0; it < iterations; it++ {
		for f := 0; f < features; f++ {
			if xNorm[f] == 0 {
				continue
			}

			if coef[f] != 0 {
				for s := 0; s < samples; s++ {
					residual[s] += centered[s][f] * coef[f]
				}
			}

			var num float32
			for s := 0; s < samples; s++ {
				num += residual[s] * centered[s][f]
			}

			coef[f] = softThreshold(num, alpha*float32(samples)) / xNorm[f]

			if coef[f] != 0 {
				for s := 0; s < samples; s++ {
					residual[s] -= centered[s][f] * coef[f]
				}
			}
		}
	}

	var dot float32
	for f := 0; f < features; f++ {
		dot += xMean[f] * coef[f]
	}
	return coef, yMean - dot
}

// softThreshold implements sign(z) * max(|z| - t, 0), the proximal operator of the L1
// penalty that coordinate descent applies at each step.
func softThreshold(z, t float32) float32 {
	switch {
	case z > 0 && t < z:
		return z - t
	case z < 0 && t < -z:
		return z + t
	default:
		return 0
	}
}
