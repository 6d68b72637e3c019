// Package explain implements a LIME-style local explanation of the evaluator: it
// perturbs a position's feature vector, samples the network's response to each
// perturbation, and fits a sparse linear surrogate model whose coefficients approximate
// each feature's local contribution to the evaluation.
package explain

import (
	"fmt"
	"math"

	"github.com/herohde/tak/pkg/ann"
)

const (
	lassoAlpha      = 0.001
	lassoIterations = 100
)

// FeatureWeight is a named feature's coefficient in the local linear surrogate.
type FeatureWeight struct {
	Name   string
	Weight float32
}

// Explanation is the result of explaining a single evaluation.
type Explanation struct {
	Evaluation     float32
	Intercept      float32
	FeatureWeights []FeatureWeight
}

// Explain fits a local linear surrogate for net's response around features, by
// resampling masked versions of the non-zero features samples times. names must have the
// same length as features and supplies the label for each coefficient in the result.
func Explain(net *ann.ShallowNet, features []float32, names []string, samples int) (Explanation, error) {
	if len(features) != len(names) {
		return Explanation{}, fmt.Errorf("explain: %d features but %d names", len(features), len(names))
	}

	baseline, err := net.Forward(features)
	if err != nil {
		return Explanation{}, fmt.Errorf("explain: baseline evaluation failed: %w", err)
	}

	var active []int
	for i, v := range features {
		if v != 0 {
			active = append(active, i)
		}
	}
	if len(active) == 0 {
		return Explanation{Evaluation: baseline[0]}, nil
	}

	x := make([][]float32, samples)
	y := make([]float32, samples)
	weights := make([]float32, samples)

	perturbed := make([]float32, len(features))
	for s := 0; s < samples; s++ {
		mask := make([]bool, len(active))
		count := 0
		withRNG(func(r *jkiss32) {
			for i := range mask {
				if r.Float32() < 0.5 {
					mask[i] = true
					count++
				}
			}
		})

		copy(perturbed, features)
		row := make([]float32, len(active))
		for i, idx := range active {
			if mask[i] {
				perturbed[idx] = 0
				row[i] = 1
			} else {
				row[i] = 0
			}
		}

		out, err := net.Forward(perturbed)
		if err != nil {
			return Explanation{}, fmt.Errorf("explain: sample evaluation failed: %w", err)
		}

		var weight float32
		if count > 0 {
			weight = float32(count) / (float32(math.Sqrt(float64(count))) * float32(math.Sqrt(float64(len(active)))))
		}

		x[s] = row
		y[s] = out[0]
		weights[s] = weight
	}

	coef, intercept := lassoRegression(x, y, weights, lassoAlpha, lassoIterations)

	featureWeights := make([]FeatureWeight, len(active))
	for i, idx := range active {
		featureWeights[i] = FeatureWeight{Name: names[idx], Weight: coef[i]}
	}

	return Explanation{
		Evaluation:     baseline[0],
		Intercept:      intercept,
		FeatureWeights: featureWeights,
	}, nil
}
