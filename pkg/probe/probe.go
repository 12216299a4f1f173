// Package probe implements the three statistical probes behind the QHI
// composite: an L2-regularized logistic uncertainty probe, a small MLP risk
// regressor, and an L1-sparse logistic violation probe. Each probe degrades
// to a documented fallback when used before training.
package probe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Logits are clipped before exponentiation to avoid overflow.
const logitClip = 500.0

func sigmoid(z float64) float64 {
	if z > logitClip {
		z = logitClip
	} else if z < -logitClip {
		z = -logitClip
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// log1pExp computes log(1+exp(z)) without overflow for large z.
func log1pExp(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

func affine(w []float64, b float64, x []float64) float64 {
	return floats.Dot(w, x) + b
}
