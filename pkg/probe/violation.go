package probe

import (
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/Roxrite0509/medguard/pkg/metrics"
)

const (
	// DefaultViolationC is the conventional inverse-regularization
	// strength for the violation probe.
	DefaultViolationC = 0.5

	violationMaxIter = 2000
	violationTol     = 1e-7
)

// Violation is the L1-regularized logistic probe. The L1 penalty drives
// most weights to exactly zero, and inference uses only the nonzero subset.
// Untrained, it reports 0.5.
type Violation struct {
	c       float64
	weights []float64
	bias    float64
	trained bool

	// Indices of nonzero weights, recomputed once after training.
	// Performance-only: skipping zero weights must not change the result.
	nonzero []int
}

// ViolationMetrics are the training metrics of the violation probe.
type ViolationMetrics struct {
	AUCROC   float64 `json:"auc_roc"`
	Sparsity float64 `json:"sparsity"`
}

// NewViolation creates a violation probe with inverse-regularization
// strength c (DefaultViolationC when c <= 0).
func NewViolation(c float64) *Violation {
	if c <= 0 {
		c = DefaultViolationC
	}
	return &Violation{c: c}
}

// Train fits ||w||₁ + C·Σ logloss by proximal gradient descent with
// soft-thresholding, which yields exact zeros. The bias is unpenalized.
func (p *Violation) Train(x [][]float64, y []int) (*ViolationMetrics, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("training data empty or label count mismatch")
	}
	dim := len(x[0])

	// Step size from the Lipschitz bound of the smooth part:
	// L <= (C/4) * sum_i ||x_i||².
	var sumSq float64
	for _, xi := range x {
		sumSq += floats.Dot(xi, xi)
	}
	lip := p.c / 4 * sumSq
	if lip <= 0 {
		return nil, errors.New("degenerate training matrix")
	}
	step := 1 / lip

	w := make([]float64, dim)
	grad := make([]float64, dim)
	var b float64

	iters := 0
	for ; iters < violationMaxIter; iters++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradB float64
		for i, xi := range x {
			r := p.c * (sigmoid(affine(w, b, xi)) - float64(y[i]))
			floats.AddScaled(grad, r, xi)
			gradB += r
		}

		var maxDelta float64
		for j := range w {
			next := softThreshold(w[j]-step*grad[j], step)
			if d := math.Abs(next - w[j]); d > maxDelta {
				maxDelta = d
			}
			w[j] = next
		}
		b -= step * gradB
		if d := math.Abs(step * gradB); d > maxDelta {
			maxDelta = d
		}

		if maxDelta < violationTol {
			break
		}
	}
	log.Debugf("violation probe converged after %d iterations", iters)

	p.weights = w
	p.bias = b
	p.trained = true

	p.nonzero = p.nonzero[:0]
	for j, wj := range w {
		if wj != 0 {
			p.nonzero = append(p.nonzero, j)
		}
	}

	probs := p.PredictBatch(x)
	return &ViolationMetrics{
		AUCROC:   metrics.ROCAUC(probs, y),
		Sparsity: 1 - float64(len(p.nonzero))/float64(dim),
	}, nil
}

// Predict returns the violation probability for one feature vector, or 0.5
// if untrained. When the nonzero set is smaller than the vector it computes
// the dot product over that subset only, numerically equal to the dense path.
func (p *Violation) Predict(x []float64) float64 {
	if !p.trained {
		return 0.5
	}
	var z float64
	if p.nonzero != nil && len(p.nonzero) < len(x) {
		for _, j := range p.nonzero {
			z += p.weights[j] * x[j]
		}
		z += p.bias
	} else {
		z = affine(p.weights, p.bias, x)
	}
	return sigmoid(z)
}

// PredictBatch is elementwise identical to per-row Predict.
func (p *Violation) PredictBatch(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = p.Predict(xi)
	}
	return out
}

// Trained reports whether the probe has been fit.
func (p *Violation) Trained() bool {
	return p.trained
}

// NonzeroCount reports the size of the sparse weight support.
func (p *Violation) NonzeroCount() int {
	return len(p.nonzero)
}

func softThreshold(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}
