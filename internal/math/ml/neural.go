package ml

import (
	"fmt"

	ltrmath "github.com/hanling14/graphchi-ltr/internal/math"
)

const (
	// weightSeed fixes the weight initialization so that runs with the same
	// architecture are reproducible.
	weightSeed = 1001
	// sigmaK is the sharpness of the default logistic activation.
	sigmaK = 1
)

// NeuralNet is a feed forward network with a single hidden layer and no bias terms.
// Forward pass: hidden_h = sigma(sum_x features[x] * w1[x][h]), y = sigma(sum_h hidden_h * wy[h]).
// Every weight is drawn uniform on [0.1, 1.0) from a seeded generator.
type NeuralNet struct {
	dimensions int
	hidden     int
	w1         [][]float64 // input -> hidden, [dimensions][hidden]
	wy         []float64   // hidden -> output
	act        Activation
	rate       Rate
}

// NewNeuralNet creates a network with the given number of hidden neurons.
func NewNeuralNet(dimensions, hidden int, rate Rate) *NeuralNet {
	gen := ltrmath.Uniform(weightSeed, 0.1, 1.0)
	return &NeuralNet{
		dimensions: dimensions,
		hidden:     hidden,
		w1:         ltrmath.UniformMat(dimensions, hidden, gen),
		wy:         ltrmath.UniformVec(hidden, gen),
		act:        NewSigma(sigmaK),
		rate:       rate,
	}
}

func (m *NeuralNet) Name() string {
	return fmt.Sprintf("nn%d", m.hidden)
}

// Score recomputes the full forward pass. Safe for concurrent use.
func (m *NeuralNet) Score(features []float64) float64 {
	y, _ := m.ScoreRetain(features)
	return y
}

// ScoreRetain runs the forward pass and also returns the hidden layer
// activations, so that a following gradient computation does not need
// a separate pass for them.
func (m *NeuralNet) ScoreRetain(features []float64) (float64, []float64) {
	hidden := make([]float64, m.hidden)
	for x := 0; x < m.dimensions; x++ {
		for h := 0; h < m.hidden; h++ {
			hidden[h] += features[x] * m.w1[x][h]
		}
	}
	for h := range hidden {
		hidden[h] = m.act.Act(hidden[h])
	}

	y := 0.0
	for h := range hidden {
		y += hidden[h] * m.wy[h]
	}
	return m.act.Act(y), hidden
}

func (m *NeuralNet) Dimensions() int {
	return m.dimensions
}

func (m *NeuralNet) Rate() Rate {
	return m.rate
}

// Activation exposes the configured nonlinearity.
func (m *NeuralNet) Activation() Activation {
	return m.act
}

func (m *NeuralNet) NewGradient() Gradient {
	g1 := make([][]float64, m.dimensions)
	for i := range g1 {
		g1[i] = make([]float64, m.hidden)
	}
	return &neuralGradient{
		parent: m,
		g1:     g1,
		gy:     make([]float64, m.hidden),
	}
}

// neuralGradient is the accumulator for a NeuralNet parent,
// shaped identically to the parent weights.
type neuralGradient struct {
	parent *NeuralNet
	g1     [][]float64
	gy     []float64
}

func (g *neuralGradient) Reset() {
	for i := range g.g1 {
		for h := range g.g1[i] {
			g.g1[i][h] = 0
		}
	}
	for h := range g.gy {
		g.gy[h] = 0
	}
}

func (g *neuralGradient) Update(features []float64, y float64, mult float64, eta float64) {
	_, hidden := g.parent.ScoreRetain(features)

	// output layer first
	deltay := g.parent.act.Deriv(y)
	for h := range g.gy {
		g.gy[h] -= eta * mult * deltay * hidden[h]
	}

	// then the hidden layer, against the frozen output weights
	for h := range g.gy {
		deltah := g.parent.act.Deriv(hidden[h])
		for i := 0; i < g.parent.dimensions; i++ {
			g.g1[i][h] -= eta * mult * deltay * g.parent.wy[h] * deltah * features[i]
		}
	}
}

func (g *neuralGradient) Apply() {
	for i := range g.g1 {
		for h := range g.g1[i] {
			g.parent.w1[i][h] += g.g1[i][h]
		}
	}
	for h := range g.gy {
		g.parent.wy[h] += g.gy[h]
	}
}
