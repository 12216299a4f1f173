package qhi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roxrite0509/medguard/pkg/sample"
)

func TestTrain_TooFewSamples(t *testing.T) {
	sys := New(DefaultConfig())

	_, err := sys.Train(sample.LoadDemo(8, 42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.Contains(t, err.Error(), "at least 10")
	assert.Contains(t, err.Error(), "got 8")
	assert.False(t, sys.Trained())
}

func TestTrain_ExactMinimum(t *testing.T) {
	sys := New(DefaultConfig())

	m, err := sys.Train(sample.LoadDemo(MinTrainSamples, 42))
	require.NoError(t, err)
	assert.True(t, sys.Trained())
	assert.Equal(t, MinTrainSamples, m.NTrain)
}

func TestTrain_Metrics(t *testing.T) {
	sys := New(DefaultConfig())
	samples := sample.LoadDemo(100, 42)

	m, err := sys.Train(samples)
	require.NoError(t, err)

	assert.Equal(t, 100, m.NTrain)
	assert.Equal(t, 50, m.NHallucinated)
	assert.Equal(t, 50, m.NClean)
	assert.Equal(t, m.NTrain, m.NHallucinated+m.NClean)

	require.NotNil(t, m.Uncertainty)
	require.NotNil(t, m.Risk)
	require.NotNil(t, m.Violation)

	// demo corpus is cleanly separable in feature space
	assert.Greater(t, m.Uncertainty.AUCROC, 0.9)
	assert.Greater(t, m.Violation.AUCROC, 0.7)
	assert.GreaterOrEqual(t, m.Violation.Sparsity, 0.0)
	assert.LessOrEqual(t, m.Violation.Sparsity, 1.0)
}
