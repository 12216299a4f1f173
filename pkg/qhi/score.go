// Package qhi combines the three probe outputs into the bounded QHI index
// (0-25) and maps it to a deployment gate.
package qhi

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Roxrite0509/medguard/pkg/feature"
	"github.com/Roxrite0509/medguard/pkg/probe"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

// Gate is the discrete deployment recommendation derived from QHI.
type Gate string

const (
	GateAutoUse Gate = "AUTO_USE"
	GateReview  Gate = "REVIEW"
	GateBlock   Gate = "BLOCK"

	// Gate thresholds, fixed. Boundary values belong to the upper band.
	ReviewThreshold = 5.0
	BlockThreshold  = 20.0

	QHIMax = 25.0
)

// GateFor maps a QHI value to its gate. Pure function of qhi.
func GateFor(qhi float64) Gate {
	switch {
	case qhi < ReviewThreshold:
		return GateAutoUse
	case qhi < BlockThreshold:
		return GateReview
	default:
		return GateBlock
	}
}

// Details carries the per-sample diagnostic context of a score.
type Details struct {
	TextLength  int    `json:"text_length"`
	NumEntities int    `json:"n_entities"`
	Specialty   string `json:"specialty"`
}

// Score is the result of scoring one sample. Field names are the wire
// contract for downstream reporting; immutable once produced.
type Score struct {
	QHI           float64 `json:"qhi"`
	Uncertainty   float64 `json:"uncertainty"`
	RiskScore     float64 `json:"risk_score"`
	ViolationProb float64 `json:"violation_prob"`
	Gate          Gate    `json:"gate"`
	InferenceMS   float64 `json:"inference_ms"`
	Details       Details `json:"details"`
}

// Config holds the system hyperparameters.
type Config struct {
	Seed         uint64  `yaml:"seed"`
	UncertaintyC float64 `yaml:"uncertainty_c"`
	ViolationC   float64 `yaml:"violation_c"`
}

// DefaultConfig returns the conventional hyperparameters.
func DefaultConfig() Config {
	return Config{
		Seed:         42,
		UncertaintyC: probe.DefaultUncertaintyC,
		ViolationC:   probe.DefaultViolationC,
	}
}

// System owns the vectorizer and the three probes, and computes
// QHI = clip(uncertainty × risk × violation × 5, 0, 25).
type System struct {
	vectorizer  feature.Vectorizer
	uncertainty *probe.Uncertainty
	risk        *probe.Risk
	violation   *probe.Violation

	trained bool
}

// New creates a system with the hash-seeded feature extractor.
func New(cfg Config) *System {
	return NewWithVectorizer(cfg, feature.NewExtractor(cfg.Seed))
}

// NewWithVectorizer creates a system around a custom embedding backend.
func NewWithVectorizer(cfg Config, v feature.Vectorizer) *System {
	return &System{
		vectorizer:  v,
		uncertainty: probe.NewUncertainty(cfg.UncertaintyC),
		risk:        probe.NewRisk(cfg.Seed),
		violation:   probe.NewViolation(cfg.ViolationC),
	}
}

// Score scores a single sample. The three probes are independent; the
// recorded wall-clock duration covers extraction, all probe calls, and the
// combination, and is observational only.
func (s *System) Score(smp *sample.Sample) *Score {
	t0 := time.Now()

	x := s.vectorizer.Vectorize(smp.Entities, smp.Text)
	uncertainty := s.uncertainty.Predict(x)
	risk := s.risk.Predict(x, smp.Specialty)
	violation := s.violation.Predict(x)

	qhi := uncertainty * risk * violation * 5.0
	if qhi < 0 {
		qhi = 0
	} else if qhi > QHIMax {
		qhi = QHIMax
	}

	return &Score{
		QHI:           qhi,
		Uncertainty:   uncertainty,
		RiskScore:     risk,
		ViolationProb: violation,
		Gate:          GateFor(qhi),
		InferenceMS:   float64(time.Since(t0)) / float64(time.Millisecond),
		Details: Details{
			TextLength:  len(smp.Text),
			NumEntities: len(smp.Entities),
			Specialty:   smp.Specialty,
		},
	}
}

// ScoreBatch scores samples in parallel. Results keep input order and are
// numerically identical to per-sample Score; samples share no mutable state
// beyond the idempotent embedding cache.
func (s *System) ScoreBatch(samples []*sample.Sample) []*Score {
	out := make([]*Score, len(samples))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, smp := range samples {
		i, smp := i, smp
		g.Go(func() error {
			out[i] = s.Score(smp)
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	return out
}

// Trained reports whether Train has completed.
func (s *System) Trained() bool {
	return s.trained
}
