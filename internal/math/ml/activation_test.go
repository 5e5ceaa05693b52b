package ml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigma(t *testing.T) {
	s := NewSigma(1)

	assert.Equal(t, 0.5, s.Act(0))
	assert.InDelta(t, 1.0, s.Act(100), 1e-9)
	assert.InDelta(t, 0.0, s.Act(-100), 1e-9)

	// derivative peaks at the midpoint
	assert.Equal(t, 0.25, s.Deriv(0.5))
	assert.Equal(t, 0.0, s.Deriv(0))
	assert.Equal(t, 0.0, s.Deriv(1))
}

func TestSigma_Sharpness(t *testing.T) {
	soft := NewSigma(1)
	sharp := NewSigma(5)
	assert.Greater(t, sharp.Act(1), soft.Act(1))
	assert.Equal(t, 0.5, sharp.Act(0))
}

func TestSigma_LogitInvertsAct(t *testing.T) {
	s := NewSigma(1)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		assert.InDelta(t, x, s.Act(s.Logit(x)), 1e-9)
	}
}

func TestSigma_LogitClampsBoundary(t *testing.T) {
	s := NewSigma(1)
	for _, x := range []float64{0, 1, -0.5, 1.5} {
		v := s.Logit(x)
		assert.False(t, math.IsNaN(v), "logit(%f) must not be NaN", x)
		assert.False(t, math.IsInf(v, 0), "logit(%f) must not be Inf", x)
	}
	assert.Less(t, s.Logit(0), 0.0)
	assert.Greater(t, s.Logit(1), 0.0)
}
