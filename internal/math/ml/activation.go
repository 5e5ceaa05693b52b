package ml

import (
	"math"

	ltrmath "github.com/hanling14/graphchi-ltr/internal/math"
)

// logitEps bounds the logit argument away from 0 and 1,
// where the function is singular.
const logitEps = 1e-15

// Activation is a pluggable scalar nonlinearity with its derivative and inverse.
type Activation interface {
	// Act applies the function to x.
	Act(x float64) float64
	// Deriv returns the derivative, expressed in terms of the already activated value fx.
	Deriv(fx float64) float64
	// Logit is the inverse of Act. Arguments outside (0,1) are clamped,
	// never propagated as NaN or Inf.
	Logit(x float64) float64
}

// Sigma is the logistic function 1 / (1 + e^(-K*x)) with sharpness K.
type Sigma struct {
	K float64
}

// NewSigma creates a logistic activation with the given sharpness.
func NewSigma(k float64) Sigma {
	return Sigma{K: k}
}

func (s Sigma) Act(x float64) float64 {
	return 1 / (1 + math.Exp(-s.K*x))
}

// Deriv takes the activated value sigma(x), not x itself.
func (s Sigma) Deriv(fx float64) float64 {
	return fx * (1 - fx)
}

func (s Sigma) Logit(x float64) float64 {
	x = ltrmath.Clamp(x, logitEps, 1-logitEps)
	return math.Log(x) - math.Log(1-x)
}
