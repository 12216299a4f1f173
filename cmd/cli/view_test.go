package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Roxrite0509/medguard/pkg/data"
	"github.com/Roxrite0509/medguard/pkg/probe"
	"github.com/Roxrite0509/medguard/pkg/qhi"
)

func TestRenderScore(t *testing.T) {
	s := &qhi.Score{
		QHI:           21.3,
		Uncertainty:   0.91,
		RiskScore:     4.7,
		ViolationProb: 0.99,
		Gate:          qhi.GateBlock,
		InferenceMS:   0.42,
	}

	out := renderScore(s)
	assert.Contains(t, out, "21.30 / 25")
	assert.Contains(t, out, string(qhi.GateBlock))
	assert.Contains(t, out, "🚫")
	assert.Contains(t, out, "0.9100")
	assert.Contains(t, out, "0.42 ms")
}

func TestRenderScore_UnknownGate(t *testing.T) {
	out := renderScore(&qhi.Score{Gate: qhi.Gate("WEIRD")})
	assert.Contains(t, out, "?")
}

func TestRenderTrain(t *testing.T) {
	m := &qhi.TrainMetrics{
		Uncertainty:   &probe.UncertaintyMetrics{AUCROC: 0.95, Accuracy: 0.9},
		Risk:          &probe.RiskMetrics{MAE: 0.4, R2: 0.8},
		Violation:     &probe.ViolationMetrics{AUCROC: 0.92, Sparsity: 0.7},
		NTrain:        100,
		NHallucinated: 50,
		NClean:        50,
	}

	out := renderTrain(m)
	assert.Contains(t, out, "100 samples")
	assert.Contains(t, out, "auc_roc=0.9500")
	assert.Contains(t, out, "sparsity=0.7000")
}

func TestRenderBenchmark(t *testing.T) {
	m := &qhi.BenchmarkMetrics{
		AUCROC:       0.93,
		AvgPrecision: 0.91,
		F1Score:      0.88,
		PearsonR:     0.85,
		AvgLatencyMS: 0.12,
		P95LatencyMS: 0.34,
		GateDistribution: map[qhi.Gate]float64{
			qhi.GateAutoUse: 50,
			qhi.GateReview:  30,
			qhi.GateBlock:   20,
		},
		NTest: 80,
	}

	out := renderBenchmark(m)
	assert.Contains(t, out, "80 samples")
	assert.Contains(t, out, "AUTO_USE=50.0%")
	assert.Contains(t, out, "BLOCK=20.0%")
}

func TestRenderRuns(t *testing.T) {
	assert.Contains(t, renderRuns(nil), "no runs")

	out := renderRuns([]*data.RunRecord{
		{ID: 1, CreatedAt: "2026-08-23 10:00:00", NTrain: 320, NTest: 80, AUCROC: 0.93},
	})
	assert.Contains(t, out, "320")
	assert.Contains(t, out, "0.9300")
}
