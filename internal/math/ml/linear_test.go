package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear_Score(t *testing.T) {
	m := NewLinear(2, Constant{Eta: 0.1})
	// zero initialized weights score everything 0
	assert.Equal(t, 0.0, m.Score([]float64{1, 2}))
}

func TestLinearGradient_ResetApplyIsNoop(t *testing.T) {
	m := NewLinear(3, Constant{Eta: 0.1})
	g := m.NewGradient()

	g.Update([]float64{1, 2, 3}, 0, 0.5, 0.1)
	g.Reset()
	g.Apply()

	assert.Equal(t, []float64{0, 0, 0}, m.Weights())
}

// The more relevant document must be pushed up: with features [1,0] vs [0,1],
// relevances 1 vs 0 and zero weights, one update cycle has to move weight 0
// positive and weight 1 non-positive.
func TestLinearGradient_Direction(t *testing.T) {
	m := NewLinear(2, Constant{Eta: 0.1})
	g := m.NewGradient()
	act := NewSigma(1)

	docA := []float64{1, 0} // relevance 1
	docB := []float64{0, 1} // relevance 0

	sa, sb := m.Score(docA), m.Score(docB)
	lambda := act.Act(sa-sb) - 1
	assert.Equal(t, -0.5, lambda)

	g.Update(docA, sa, lambda, 0.1)
	g.Update(docB, sb, -lambda, 0.1)
	g.Apply()

	w := m.Weights()
	assert.Greater(t, w[0], 0.0)
	assert.LessOrEqual(t, w[1], 0.0)
	assert.Greater(t, m.Score(docA), m.Score(docB))
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultRate, rate.At(0))

	rate, err = ParseRate("const:0.05")
	assert.NoError(t, err)
	assert.Equal(t, 0.05, rate.At(7))

	rate, err = ParseRate("decay:0.1,10")
	assert.NoError(t, err)
	assert.Equal(t, 0.1, rate.At(0))
	assert.InDelta(t, 0.05, rate.At(10), 1e-12)

	for _, spec := range []string{"const:", "const:-1", "decay:0.1", "warmup:5"} {
		_, err := ParseRate(spec)
		assert.Error(t, err, spec)
	}
}
