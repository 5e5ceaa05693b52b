package ml

import (
	ltrmath "github.com/hanling14/graphchi-ltr/internal/math"
)

// Linear scores by a plain dot product of weights and features, no nonlinearity.
// Weights start at zero.
type Linear struct {
	weights []float64
	rate    Rate
}

// NewLinear creates a linear model for the given feature dimensions.
func NewLinear(dimensions int, rate Rate) *Linear {
	return &Linear{
		weights: make([]float64, dimensions),
		rate:    rate,
	}
}

func (m *Linear) Name() string {
	return "linreg"
}

func (m *Linear) Score(features []float64) float64 {
	return ltrmath.Dot(m.weights, features)
}

func (m *Linear) Dimensions() int {
	return len(m.weights)
}

func (m *Linear) Rate() Rate {
	return m.rate
}

func (m *Linear) NewGradient() Gradient {
	return &linearGradient{
		parent: m,
		acc:    make([]float64, len(m.weights)),
	}
}

// Weights exposes a copy of the current weight vector.
func (m *Linear) Weights() []float64 {
	w := make([]float64, len(m.weights))
	copy(w, m.weights)
	return w
}

// linearGradient is the accumulator for a Linear parent.
type linearGradient struct {
	parent *Linear
	acc    []float64
}

func (g *linearGradient) Reset() {
	for i := range g.acc {
		g.acc[i] = 0
	}
}

func (g *linearGradient) Update(features []float64, _ float64, mult float64, eta float64) {
	// d(score)/d(w_i) is just the feature value.
	for i, f := range features {
		g.acc[i] -= eta * mult * f
	}
}

func (g *linearGradient) Apply() {
	for i := range g.acc {
		g.parent.weights[i] += g.acc[i]
	}
}
