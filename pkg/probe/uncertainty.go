package probe

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/Roxrite0509/medguard/pkg/metrics"
)

const (
	// DefaultUncertaintyC is the conventional inverse-regularization
	// strength for the uncertainty probe.
	DefaultUncertaintyC = 1.0

	uncertaintyMaxIter = 1000
)

// Uncertainty is the L2-regularized logistic probe. It estimates the
// probability that the model was internally uncertain about its output.
// Untrained, it reports the maximally uncertain prior 0.5.
type Uncertainty struct {
	c       float64
	weights []float64
	bias    float64
	trained bool
}

// UncertaintyMetrics are the training metrics of the uncertainty probe.
type UncertaintyMetrics struct {
	AUCROC   float64 `json:"auc_roc"`
	Accuracy float64 `json:"accuracy"`
}

// NewUncertainty creates an uncertainty probe with inverse-regularization
// strength c (DefaultUncertaintyC when c <= 0).
func NewUncertainty(c float64) *Uncertainty {
	if c <= 0 {
		c = DefaultUncertaintyC
	}
	return &Uncertainty{c: c}
}

// Train fits the probe by minimizing 0.5·||w||² + C·Σ logloss with LBFGS.
// AUC falls back to its neutral sentinel when y is single-class.
func (p *Uncertainty) Train(x [][]float64, y []int) (*UncertaintyMetrics, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("training data empty or label count mismatch")
	}
	dim := len(x[0])

	// theta holds the weights with the bias appended.
	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			w, b := theta[:dim], theta[dim]
			loss := 0.5 * floats.Dot(w, w)
			for i, xi := range x {
				z := affine(w, b, xi)
				loss += p.c * (log1pExp(z) - float64(y[i])*z)
			}
			return loss
		},
		Grad: func(grad, theta []float64) {
			w, b := theta[:dim], theta[dim]
			copy(grad[:dim], w)
			grad[dim] = 0
			for i, xi := range x {
				r := p.c * (sigmoid(affine(w, b, xi)) - float64(y[i]))
				floats.AddScaled(grad[:dim], r, xi)
				grad[dim] += r
			}
		},
	}

	settings := &optimize.Settings{MajorIterations: uncertaintyMaxIter}
	result, err := optimize.Minimize(problem, make([]float64, dim+1), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, errors.Wrap(err, "failed to fit uncertainty probe")
	}
	if err != nil {
		// Linesearch stalls near the optimum are fine, keep the best point.
		log.Debugf("uncertainty probe optimizer stopped early: %v", err)
	}

	p.weights = append([]float64(nil), result.X[:dim]...)
	p.bias = result.X[dim]
	p.trained = true

	probs := p.PredictBatch(x)
	pred := make([]int, len(probs))
	for i, pr := range probs {
		if pr >= 0.5 {
			pred[i] = 1
		}
	}
	return &UncertaintyMetrics{
		AUCROC:   metrics.ROCAUC(probs, y),
		Accuracy: metrics.Accuracy(pred, y),
	}, nil
}

// Predict returns the calibrated uncertainty probability for one feature
// vector, or 0.5 if the probe has not been trained.
func (p *Uncertainty) Predict(x []float64) float64 {
	if !p.trained {
		return 0.5
	}
	return sigmoid(affine(p.weights, p.bias, x))
}

// PredictBatch is elementwise identical to per-row Predict.
func (p *Uncertainty) PredictBatch(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = p.Predict(xi)
	}
	return out
}

// Trained reports whether the probe has been fit.
func (p *Uncertainty) Trained() bool {
	return p.trained
}
