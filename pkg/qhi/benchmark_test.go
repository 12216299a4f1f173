package qhi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roxrite0509/medguard/pkg/sample"
)

func trainedSystem(t *testing.T, n int, seed uint64) *System {
	t.Helper()
	sys := New(DefaultConfig())
	_, err := sys.Train(sample.LoadDemo(n, seed))
	require.NoError(t, err)
	return sys
}

func TestBenchmark_Empty(t *testing.T) {
	sys := New(DefaultConfig())
	_, err := sys.Benchmark(nil)
	assert.Error(t, err)
}

func TestBenchmark_GateDistributionSums(t *testing.T) {
	sys := trainedSystem(t, 200, 42)

	m, err := sys.Benchmark(sample.LoadDemo(80, 9))
	require.NoError(t, err)

	var sum float64
	for _, pct := range m.GateDistribution {
		assert.GreaterOrEqual(t, pct, 0.0)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.01)
	assert.Equal(t, 80, m.NTest)
}

func TestBenchmark_Discrimination(t *testing.T) {
	sys := trainedSystem(t, 320, 42)

	m, err := sys.Benchmark(sample.LoadDemo(80, 17))
	require.NoError(t, err)

	// the demo corpus repeats training items, so discrimination is strong
	assert.Greater(t, m.AUCROC, 0.9)
	assert.Greater(t, m.AvgPrecision, 0.8)
	assert.Greater(t, m.PearsonR, 0.5)
	assert.GreaterOrEqual(t, m.AvgLatencyMS, 0.0)
	assert.GreaterOrEqual(t, m.P95LatencyMS, 0.0)
}

func TestBenchmark_HallucinatedScoresHigher(t *testing.T) {
	sys := trainedSystem(t, 320, 42)

	var hallucinated, clean float64
	var nH, nC int
	for _, smp := range sample.LoadDemo(100, 23) {
		sc := sys.Score(smp)
		if smp.TrueLabel == 1 {
			hallucinated += sc.QHI
			nH++
		} else {
			clean += sc.QHI
			nC++
		}
	}
	assert.Greater(t, hallucinated/float64(nH), clean/float64(nC))
}

func TestBenchmark_STEMIHallucinationFlagged(t *testing.T) {
	sys := trainedSystem(t, 320, 42)

	sc := sys.Score(sample.New(
		"Q: How do you treat acute STEMI?\nA: Give antacids and observe. This is likely GERD presenting as chest pain. Discharge with PPI prescription.",
		[]string{"stemi", "antacids", "gerd"}, 1, 25.0, "cardiology"))

	// trained system must not wave the worst demo hallucination through
	assert.NotEqual(t, GateAutoUse, sc.Gate)
}

func TestBenchmark_SingleClassSentinels(t *testing.T) {
	sys := trainedSystem(t, 100, 42)

	// all-clean test set: AUC and AP are undefined, sentinels expected
	var clean []*sample.Sample
	for _, smp := range sample.LoadDemo(60, 5) {
		if smp.TrueLabel == 0 {
			clean = append(clean, smp)
		}
	}
	require.NotEmpty(t, clean)

	m, err := sys.Benchmark(clean)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.AUCROC)
	assert.Equal(t, 0.0, m.AvgPrecision)
}

func TestBenchmark_Reproducible(t *testing.T) {
	test := sample.LoadDemo(60, 3)

	a, err := trainedSystem(t, 200, 42).Benchmark(test)
	require.NoError(t, err)
	b, err := trainedSystem(t, 200, 42).Benchmark(test)
	require.NoError(t, err)

	assert.InDelta(t, a.AUCROC, b.AUCROC, 1e-9)
	assert.InDelta(t, a.AvgPrecision, b.AvgPrecision, 1e-9)
	assert.InDelta(t, a.F1Score, b.F1Score, 1e-9)
	assert.InDelta(t, a.PearsonR, b.PearsonR, 1e-9)
	assert.Equal(t, a.GateDistribution, b.GateDistribution)
}
