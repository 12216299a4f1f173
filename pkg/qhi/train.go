package qhi

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Roxrite0509/medguard/pkg/probe"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

// MinTrainSamples is the structural minimum below which no meaningful
// model can be fit.
const MinTrainSamples = 10

// ErrInsufficientData is the configuration-error kind returned when fewer
// than MinTrainSamples samples are offered for training.
var ErrInsufficientData = errors.New("insufficient training data")

// TrainMetrics aggregates the per-probe training metrics.
type TrainMetrics struct {
	Uncertainty   *probe.UncertaintyMetrics `json:"uncertainty"`
	Risk          *probe.RiskMetrics        `json:"risk"`
	Violation     *probe.ViolationMetrics   `json:"violation"`
	NTrain        int                       `json:"n_train"`
	NHallucinated int                       `json:"n_hallucinated"`
	NClean        int                       `json:"n_clean"`
}

// Train fits all three probes on the same feature matrix. Ground truth is
// folded into three label vectors: the raw binary label for the uncertainty
// probe, clip(severity/5, 1, 5) for the risk probe, and severity > 10 for
// the violation probe.
func (s *System) Train(samples []*sample.Sample) (*TrainMetrics, error) {
	if len(samples) < MinTrainSamples {
		return nil, errors.Wrapf(ErrInsufficientData,
			"need at least %d samples, got %d", MinTrainSamples, len(samples))
	}

	x := make([][]float64, len(samples))
	yLabel := make([]int, len(samples))
	yRisk := make([]float64, len(samples))
	yViolation := make([]int, len(samples))
	hallucinated := 0

	for i, smp := range samples {
		x[i] = s.vectorizer.Vectorize(smp.Entities, smp.Text)
		yLabel[i] = smp.TrueLabel
		if smp.TrueLabel == 1 {
			hallucinated++
		}

		r := smp.TrueSeverity / 5.0
		if r < probe.RiskMin {
			r = probe.RiskMin
		} else if r > probe.RiskMax {
			r = probe.RiskMax
		}
		yRisk[i] = r

		if smp.TrueSeverity > 10.0 {
			yViolation[i] = 1
		}
	}

	mu, err := s.uncertainty.Train(x, yLabel)
	if err != nil {
		return nil, errors.Wrap(err, "training uncertainty probe")
	}
	mr, err := s.risk.Train(x, yRisk)
	if err != nil {
		return nil, errors.Wrap(err, "training risk probe")
	}
	mv, err := s.violation.Train(x, yViolation)
	if err != nil {
		return nil, errors.Wrap(err, "training violation probe")
	}

	s.trained = true
	log.Debugf("trained on %d samples (%d hallucinated, %d clean)",
		len(samples), hallucinated, len(samples)-hallucinated)

	return &TrainMetrics{
		Uncertainty:   mu,
		Risk:          mr,
		Violation:     mv,
		NTrain:        len(samples),
		NHallucinated: hallucinated,
		NClean:        len(samples) - hallucinated,
	}, nil
}
