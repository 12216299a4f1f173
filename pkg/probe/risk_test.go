package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSpecialtyRisk(t *testing.T) {
	assert.Equal(t, 5.0, SpecialtyRisk("emergency"))
	assert.Equal(t, 5.0, SpecialtyRisk("Emergency"))
	assert.Equal(t, 4.6, SpecialtyRisk("CARDIOLOGY"))
	assert.Equal(t, DefaultSpecialtyRisk, SpecialtyRisk("astrology"))
	assert.Equal(t, DefaultSpecialtyRisk, SpecialtyRisk(""))
}

func TestKnownViolations_ReferenceData(t *testing.T) {
	assert.Contains(t, KnownViolations, "epinephrine")
	assert.Equal(t, []string{"anaphylaxis_first_line"}, KnownViolations["epinephrine"])
}

func TestRisk_UntrainedFallback(t *testing.T) {
	p := NewRisk(42)
	assert.False(t, p.Trained())
	assert.Equal(t, 5.0, p.Predict(make([]float64, 8), "emergency"))
	assert.Equal(t, DefaultSpecialtyRisk, p.Predict(make([]float64, 8), "unknown"))

	batch := p.PredictBatch(make([][]float64, 3))
	for _, v := range batch {
		assert.Equal(t, DefaultSpecialtyRisk, v)
	}
}

// riskData maps a single feature dimension onto two severity levels.
func riskData(n, dim int, seed uint64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		row := make([]float64, dim)
		for j := range row {
			row[j] = rng.NormFloat64() * 0.1
		}
		if i%2 == 0 {
			row[1] += 1.0
			y[i] = 4.5
		} else {
			row[1] -= 1.0
			y[i] = 1.2
		}
		x[i] = row
	}
	return x, y
}

func TestRisk_Train(t *testing.T) {
	x, y := riskData(120, 8, 42)

	p := NewRisk(42)
	m, err := p.Train(x, y)
	require.NoError(t, err)
	require.True(t, p.Trained())

	assert.Less(t, m.MAE, 1.0)
	assert.False(t, m.R2 > 1.0)

	// predictions stay clamped to the risk band
	for _, xi := range x {
		v := p.Predict(xi, "general")
		assert.GreaterOrEqual(t, v, RiskMin)
		assert.LessOrEqual(t, v, RiskMax)
	}
}

func TestRisk_TrainedSeparation(t *testing.T) {
	x, y := riskData(120, 8, 42)
	p := NewRisk(42)
	_, err := p.Train(x, y)
	require.NoError(t, err)

	// high-severity rows should score above low-severity rows on average
	var hi, lo float64
	var nHi, nLo int
	for i, xi := range x {
		v := p.Predict(xi, "general")
		if y[i] > 3 {
			hi += v
			nHi++
		} else {
			lo += v
			nLo++
		}
	}
	assert.Greater(t, hi/float64(nHi), lo/float64(nLo))
}

func TestRisk_TrainErrors(t *testing.T) {
	p := NewRisk(42)
	_, err := p.Train(nil, nil)
	assert.Error(t, err)

	_, err = p.Train([][]float64{{1}}, []float64{1, 2})
	assert.Error(t, err)
}
