package qhi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roxrite0509/medguard/pkg/sample"
)

func TestGateFor_Boundaries(t *testing.T) {
	assert.Equal(t, GateAutoUse, GateFor(0))
	assert.Equal(t, GateAutoUse, GateFor(4.999))
	// boundary values belong to the upper band
	assert.Equal(t, GateReview, GateFor(5.0))
	assert.Equal(t, GateReview, GateFor(19.999))
	assert.Equal(t, GateBlock, GateFor(20.0))
	assert.Equal(t, GateBlock, GateFor(25.0))
}

func TestScore_UntrainedDefaults(t *testing.T) {
	sys := New(DefaultConfig())
	smp := sample.New("Q: STEMI?\nA: antacids", nil, 1, 25.0, "cardiology")

	sc := sys.Score(smp)

	// untrained probes fall back to 0.5 / specialty lookup / 0.5
	assert.Equal(t, 0.5, sc.Uncertainty)
	assert.Equal(t, 4.6, sc.RiskScore)
	assert.Equal(t, 0.5, sc.ViolationProb)
	assert.InDelta(t, 0.5*4.6*0.5*5, sc.QHI, 1e-9)
	assert.Equal(t, GateReview, sc.Gate)

	assert.GreaterOrEqual(t, sc.InferenceMS, 0.0)
	assert.Equal(t, len(smp.Text), sc.Details.TextLength)
	assert.Equal(t, len(smp.Entities), sc.Details.NumEntities)
	assert.Equal(t, "cardiology", sc.Details.Specialty)
}

func TestScore_BoundedAlways(t *testing.T) {
	sys := New(DefaultConfig())
	_, err := sys.Train(sample.LoadDemo(100, 42))
	require.NoError(t, err)

	for _, smp := range sample.LoadDemo(200, 7) {
		sc := sys.Score(smp)
		assert.GreaterOrEqual(t, sc.QHI, 0.0)
		assert.LessOrEqual(t, sc.QHI, QHIMax)
		assert.Equal(t, GateFor(sc.QHI), sc.Gate)
	}
}

func TestScoreBatch_MatchesSingle(t *testing.T) {
	sys := New(DefaultConfig())
	_, err := sys.Train(sample.LoadDemo(100, 42))
	require.NoError(t, err)

	samples := sample.LoadDemo(50, 9)
	batch := sys.ScoreBatch(samples)
	require.Len(t, batch, len(samples))

	for i, smp := range samples {
		single := sys.Score(smp)
		assert.InDelta(t, single.QHI, batch[i].QHI, 1e-6)
		assert.InDelta(t, single.Uncertainty, batch[i].Uncertainty, 1e-6)
		assert.InDelta(t, single.RiskScore, batch[i].RiskScore, 1e-6)
		assert.InDelta(t, single.ViolationProb, batch[i].ViolationProb, 1e-6)
		assert.Equal(t, single.Gate, batch[i].Gate)
	}
}

func TestScore_WireContract(t *testing.T) {
	sys := New(DefaultConfig())
	sc := sys.Score(sample.New("sepsis care", nil, 0, 0, "critical_care"))

	b, err := json.Marshal(sc)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"qhi", "uncertainty", "risk_score",
		"violation_prob", "gate", "inference_ms", "details"} {
		assert.Contains(t, m, key)
	}
	details := m["details"].(map[string]any)
	for _, key := range []string{"text_length", "n_entities", "specialty"} {
		assert.Contains(t, details, key)
	}
}
