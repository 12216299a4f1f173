package probe

import (
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/Roxrite0509/medguard/pkg/metrics"
)

const (
	RiskMin = 1.0
	RiskMax = 5.0

	riskHidden1     = 64
	riskHidden2     = 32
	riskValFraction = 0.15
	riskMaxEpochs   = 500
	riskBatchSize   = 32
	riskPatience    = 10
	riskMinDelta    = 1e-4

	adamLR      = 1e-3
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// Risk is a feed-forward regressor (two hidden layers, 64 then 32, ReLU)
// mapping features to a clinical severity in [1,5]. Before training it
// degrades to the static specialty lookup so the system is usable for
// crude scoring with no data at all.
type Risk struct {
	seed uint64

	w1 [][]float64
	b1 []float64
	w2 [][]float64
	b2 []float64
	w3 []float64
	b3 float64

	trained bool
}

// RiskMetrics are the training metrics of the risk probe.
type RiskMetrics struct {
	MAE float64 `json:"mae"`
	R2  float64 `json:"r2"`
}

// NewRisk creates a risk probe whose weight initialization and validation
// split are deterministic for the given seed.
func NewRisk(seed uint64) *Risk {
	return &Risk{seed: seed}
}

// Train fits the regressor with minibatch Adam and early stopping on a
// held-out validation fraction, restoring the best validation weights.
func (p *Risk) Train(x [][]float64, y []float64) (*RiskMetrics, error) {
	n := len(x)
	if n < 2 || n != len(y) {
		return nil, errors.New("training data too small or label count mismatch")
	}
	dim := len(x[0])

	rng := rand.New(rand.NewSource(p.seed))
	perm := rng.Perm(n)
	nVal := int(float64(n) * riskValFraction)
	if nVal < 1 {
		nVal = 1
	}
	valIdx, trainIdx := perm[:nVal], perm[nVal:]

	p.initWeights(dim, rng)
	opt := newAdamState(p)

	bestVal := math.Inf(1)
	var best *riskSnapshot
	wait := riskPatience

	for epoch := 0; epoch < riskMaxEpochs; epoch++ {
		rng.Shuffle(len(trainIdx), func(i, j int) {
			trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i]
		})
		for lo := 0; lo < len(trainIdx); lo += riskBatchSize {
			hi := lo + riskBatchSize
			if hi > len(trainIdx) {
				hi = len(trainIdx)
			}
			p.step(x, y, trainIdx[lo:hi], opt)
		}

		valMSE := p.mse(x, y, valIdx)
		if valMSE < bestVal-riskMinDelta {
			bestVal = valMSE
			best = p.snapshot()
			wait = riskPatience
		} else if wait--; wait == 0 {
			log.Debugf("risk probe early stop at epoch %d (val mse %.6f)", epoch, bestVal)
			break
		}
	}
	if best != nil {
		p.restore(best)
	}
	p.trained = true

	pred := make([]float64, n)
	for i, xi := range x {
		pred[i] = p.forward(xi)
	}
	return &RiskMetrics{
		MAE: metrics.MAE(pred, y),
		R2:  metrics.R2(pred, y),
	}, nil
}

// Predict returns the severity estimate for one feature vector, clamped to
// [1,5]. Untrained probes fall back to the specialty lookup.
func (p *Risk) Predict(x []float64, specialty string) float64 {
	if !p.trained {
		return SpecialtyRisk(specialty)
	}
	return clamp(p.forward(x), RiskMin, RiskMax)
}

// PredictBatch is elementwise identical to per-row Predict with an unknown
// specialty.
func (p *Risk) PredictBatch(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		if !p.trained {
			out[i] = DefaultSpecialtyRisk
			continue
		}
		out[i] = clamp(p.forward(xi), RiskMin, RiskMax)
	}
	return out
}

// Trained reports whether the probe has been fit.
func (p *Risk) Trained() bool {
	return p.trained
}

func (p *Risk) initWeights(dim int, rng *rand.Rand) {
	he := func(fanIn int) float64 { return math.Sqrt(2 / float64(fanIn)) }

	p.w1 = randMatrix(riskHidden1, dim, he(dim), rng)
	p.b1 = make([]float64, riskHidden1)
	p.w2 = randMatrix(riskHidden2, riskHidden1, he(riskHidden1), rng)
	p.b2 = make([]float64, riskHidden2)
	p.w3 = randRow(riskHidden2, he(riskHidden2), rng)
	p.b3 = 0
}

func (p *Risk) forward(x []float64) float64 {
	a1 := make([]float64, riskHidden1)
	for j := range a1 {
		a1[j] = relu(affine(p.w1[j], p.b1[j], x))
	}
	a2 := make([]float64, riskHidden2)
	for k := range a2 {
		a2[k] = relu(affine(p.w2[k], p.b2[k], a1))
	}
	return affine(p.w3, p.b3, a2)
}

// step runs one minibatch forward/backward pass and an Adam update.
func (p *Risk) step(x [][]float64, y []float64, idx []int, opt *adamState) {
	g := newRiskGrads(p)
	scale := 1 / float64(len(idx))

	a1 := make([]float64, riskHidden1)
	a2 := make([]float64, riskHidden2)
	d1 := make([]float64, riskHidden1)
	d2 := make([]float64, riskHidden2)

	for _, i := range idx {
		xi := x[i]
		for j := range a1 {
			a1[j] = relu(affine(p.w1[j], p.b1[j], xi))
		}
		for k := range a2 {
			a2[k] = relu(affine(p.w2[k], p.b2[k], a1))
		}
		out := affine(p.w3, p.b3, a2)

		dOut := 2 * (out - y[i]) * scale

		for k := range a2 {
			g.w3[k] += dOut * a2[k]
			d2[k] = 0
			if a2[k] > 0 {
				d2[k] = dOut * p.w3[k]
			}
		}
		g.b3 += dOut

		for j := range a1 {
			d1[j] = 0
		}
		for k, dk := range d2 {
			if dk == 0 {
				continue
			}
			floats.AddScaled(g.w2[k], dk, a1)
			g.b2[k] += dk
			floats.AddScaled(d1, dk, p.w2[k])
		}
		for j := range d1 {
			if a1[j] <= 0 {
				d1[j] = 0
				continue
			}
			floats.AddScaled(g.w1[j], d1[j], xi)
			g.b1[j] += d1[j]
		}
	}

	opt.update(p, g)
}

func (p *Risk) mse(x [][]float64, y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		d := p.forward(x[i]) - y[i]
		sum += d * d
	}
	return sum / float64(len(idx))
}

type riskSnapshot struct {
	w1 [][]float64
	b1 []float64
	w2 [][]float64
	b2 []float64
	w3 []float64
	b3 float64
}

func (p *Risk) snapshot() *riskSnapshot {
	return &riskSnapshot{
		w1: copyMatrix(p.w1),
		b1: append([]float64(nil), p.b1...),
		w2: copyMatrix(p.w2),
		b2: append([]float64(nil), p.b2...),
		w3: append([]float64(nil), p.w3...),
		b3: p.b3,
	}
}

func (p *Risk) restore(s *riskSnapshot) {
	p.w1, p.b1 = s.w1, s.b1
	p.w2, p.b2 = s.w2, s.b2
	p.w3, p.b3 = s.w3, s.b3
}

// riskGrads mirrors the parameter structure for one backward pass.
type riskGrads struct {
	w1 [][]float64
	b1 []float64
	w2 [][]float64
	b2 []float64
	w3 []float64
	b3 float64
}

func newRiskGrads(p *Risk) *riskGrads {
	return &riskGrads{
		w1: zeroMatrix(len(p.w1), len(p.w1[0])),
		b1: make([]float64, len(p.b1)),
		w2: zeroMatrix(len(p.w2), len(p.w2[0])),
		b2: make([]float64, len(p.b2)),
		w3: make([]float64, len(p.w3)),
	}
}

// adamState carries the first/second moment estimates for every parameter.
type adamState struct {
	t   int
	mW1 [][]float64
	vW1 [][]float64
	mB1 []float64
	vB1 []float64
	mW2 [][]float64
	vW2 [][]float64
	mB2 []float64
	vB2 []float64
	mW3 []float64
	vW3 []float64
	mB3 float64
	vB3 float64
}

func newAdamState(p *Risk) *adamState {
	return &adamState{
		mW1: zeroMatrix(len(p.w1), len(p.w1[0])),
		vW1: zeroMatrix(len(p.w1), len(p.w1[0])),
		mB1: make([]float64, len(p.b1)),
		vB1: make([]float64, len(p.b1)),
		mW2: zeroMatrix(len(p.w2), len(p.w2[0])),
		vW2: zeroMatrix(len(p.w2), len(p.w2[0])),
		mB2: make([]float64, len(p.b2)),
		vB2: make([]float64, len(p.b2)),
		mW3: make([]float64, len(p.w3)),
		vW3: make([]float64, len(p.w3)),
	}
}

func (o *adamState) update(p *Risk, g *riskGrads) {
	o.t++
	c1 := 1 - math.Pow(adamBeta1, float64(o.t))
	c2 := 1 - math.Pow(adamBeta2, float64(o.t))

	adam := func(param, grad, m, v *float64) {
		g := *grad
		*m = adamBeta1*(*m) + (1-adamBeta1)*g
		*v = adamBeta2*(*v) + (1-adamBeta2)*g*g
		*param -= adamLR * (*m / c1) / (math.Sqrt(*v/c2) + adamEpsilon)
	}
	adamRow := func(param, grad, m, v []float64) {
		for i := range param {
			adam(&param[i], &grad[i], &m[i], &v[i])
		}
	}
	adamMat := func(param, grad, m, v [][]float64) {
		for i := range param {
			adamRow(param[i], grad[i], m[i], v[i])
		}
	}

	adamMat(p.w1, g.w1, o.mW1, o.vW1)
	adamRow(p.b1, g.b1, o.mB1, o.vB1)
	adamMat(p.w2, g.w2, o.mW2, o.vW2)
	adamRow(p.b2, g.b2, o.mB2, o.vB2)
	adamRow(p.w3, g.w3, o.mW3, o.vW3)
	adam(&p.b3, &g.b3, &o.mB3, &o.vB3)
}

func relu(z float64) float64 {
	if z > 0 {
		return z
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func randMatrix(rows, cols int, std float64, rng *rand.Rand) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = randRow(cols, std, rng)
	}
	return m
}

func randRow(n int, std float64, rng *rand.Rand) []float64 {
	r := make([]float64, n)
	for i := range r {
		r[i] = rng.NormFloat64() * std
	}
	return r
}

func zeroMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func copyMatrix(src [][]float64) [][]float64 {
	dst := make([][]float64, len(src))
	for i := range src {
		dst[i] = append([]float64(nil), src[i]...)
	}
	return dst
}
