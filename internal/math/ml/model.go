package ml

import (
	"fmt"
	"strconv"
	"strings"
)

// Model is a differentiable scorer over feature vectors.
// Scoring is deterministic given the current weights and safe for concurrent use;
// weights are only mutated through Gradient.Apply.
type Model interface {
	// Name returns the registry name the model was created under.
	Name() string
	// Score computes the relevance score of the features under the current weights.
	Score(features []float64) float64
	// NewGradient constructs a fresh zeroed accumulator shaped like the model weights.
	NewGradient() Gradient
	// Dimensions is the feature vector size the model was built for.
	Dimensions() int
	// Rate is the learning rate policy shared with the model at construction.
	Rate() Rate
	// Save persists the model weights to the given path.
	Save(path string) error
}

// Gradient collects weighted per-example contributions for its parent model.
// Contributions are accumulated negated (descent direction), so that Apply
// is a plain additive update on the parent weights.
// Apply does not reset the accumulator; callers reset explicitly before the
// next accumulation cycle.
type Gradient interface {
	// Reset zeroes the accumulator.
	Reset()
	// Update adds one example contribution. y is the already computed model
	// output for the features, mult the loss derivative weight supplied by
	// the ranking algorithm, and eta the step size for this iteration.
	Update(features []float64, y float64, mult float64, eta float64)
	// Apply commits the accumulated delta to the parent model weights.
	Apply()
}

// Builder constructs a model once the feature dimensions are known.
type Builder func(dimensions int, rate Rate) Model

// models is the registry of fixed model names.
// nn<N> is handled separately because the name carries the hidden layer size.
var models = map[string]Builder{
	"linreg": func(dimensions int, rate Rate) Model {
		return NewLinear(dimensions, rate)
	},
}

const nnPrefix = "nn"

// ValidName checks a model name without constructing the model,
// so that a bad name fails the run before any data is read.
func ValidName(name string) error {
	if _, ok := models[name]; ok {
		return nil
	}
	if strings.HasPrefix(name, nnPrefix) {
		if _, err := parseNeurons(name); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("model %q is not implemented; select one of linreg, nn<N>", name)
}

// New creates the model registered under name.
func New(name string, dimensions int, rate Rate) (Model, error) {
	if build, ok := models[name]; ok {
		return build(dimensions, rate), nil
	}
	if strings.HasPrefix(name, nnPrefix) {
		neurons, err := parseNeurons(name)
		if err != nil {
			return nil, err
		}
		return NewNeuralNet(dimensions, neurons, rate), nil
	}
	return nil, fmt.Errorf("model %q is not implemented; select one of linreg, nn<N>", name)
}

func parseNeurons(name string) (int, error) {
	suffix := strings.TrimPrefix(name, nnPrefix)
	neurons, err := strconv.Atoi(suffix)
	if err != nil || neurons <= 0 {
		return 0, fmt.Errorf("model %q: the number of neurons must be specified, e.g. nn10", name)
	}
	return neurons, nil
}
