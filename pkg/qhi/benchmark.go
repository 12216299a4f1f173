package qhi

import (
	"github.com/pkg/errors"

	"github.com/Roxrite0509/medguard/pkg/metrics"
	"github.com/Roxrite0509/medguard/pkg/sample"
)

// BenchmarkMetrics is the aggregate statistical report over a labeled test
// set: discrimination, severity correlation, latency, and gate mix.
type BenchmarkMetrics struct {
	AUCROC           float64          `json:"auc_roc"`
	AvgPrecision     float64          `json:"avg_precision"`
	F1Score          float64          `json:"f1_score"`
	PearsonR         float64          `json:"pearson_r"`
	AvgLatencyMS     float64          `json:"avg_latency_ms"`
	P95LatencyMS     float64          `json:"p95_latency_ms"`
	GateDistribution map[Gate]float64 `json:"gate_distribution"`
	NTest            int              `json:"n_test"`
}

// Benchmark scores every test sample and aggregates. Degenerate label sets
// never fail; the affected metrics fall back to their neutral sentinels.
// Binary detection uses the same threshold as the AUTO_USE/REVIEW boundary.
func (s *System) Benchmark(testSamples []*sample.Sample) (*BenchmarkMetrics, error) {
	if len(testSamples) == 0 {
		return nil, errors.New("no test samples")
	}

	scores := s.ScoreBatch(testSamples)

	n := len(scores)
	qhi := make([]float64, n)
	latencies := make([]float64, n)
	severity := make([]float64, n)
	yTrue := make([]int, n)
	yPred := make([]int, n)
	gateCounts := map[Gate]int{}

	for i, sc := range scores {
		qhi[i] = sc.QHI
		latencies[i] = sc.InferenceMS
		severity[i] = testSamples[i].TrueSeverity
		yTrue[i] = testSamples[i].TrueLabel
		if sc.QHI >= ReviewThreshold {
			yPred[i] = 1
		}
		gateCounts[sc.Gate]++
	}

	dist := map[Gate]float64{}
	for _, g := range []Gate{GateAutoUse, GateReview, GateBlock} {
		dist[g] = float64(gateCounts[g]) / float64(n) * 100
	}

	return &BenchmarkMetrics{
		AUCROC:           metrics.ROCAUC(qhi, yTrue),
		AvgPrecision:     metrics.AveragePrecision(qhi, yTrue),
		F1Score:          metrics.F1(yPred, yTrue),
		PearsonR:         metrics.PearsonR(qhi, severity),
		AvgLatencyMS:     metrics.Mean(latencies),
		P95LatencyMS:     metrics.Quantile(0.95, latencies),
		GateDistribution: dist,
		NTest:            n,
	}, nil
}
