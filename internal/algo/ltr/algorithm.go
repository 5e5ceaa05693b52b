package ltr

import (
	"fmt"
	"math"

	"github.com/hanling14/graphchi-ltr/internal/eval"
	ltrmath "github.com/hanling14/graphchi-ltr/internal/math"
	"github.com/hanling14/graphchi-ltr/internal/math/ml"
	"github.com/hanling14/graphchi-ltr/internal/model"
)

// Pass is the per-callback view the engine hands to an algorithm: the phase,
// the iteration and the gradient accumulator confined to the calling worker.
type Pass struct {
	Phase     model.Phase
	Iteration int
	Gradient  ml.Gradient
}

// Result carries the outcome of one query group pass.
type Result struct {
	Measure float64
	Pairs   int
	Loss    float64
}

// Algorithm orchestrates one pass over a single query group: forming document
// pairs, turning pairwise loss into per-document gradient contributions and
// reporting the evaluation measure. Weights are only touched during Train.
type Algorithm interface {
	Name() string
	ProcessQuery(group model.QueryGroup, pass Pass) Result
}

// Builder constructs an algorithm bound to its model and measure.
type Builder func(m ml.Model, measure eval.Measure) Algorithm

var algorithms = map[string]Builder{
	// ranknet_old is the per-pair variant, kept under its historical name
	"ranknet_old": func(m ml.Model, measure eval.Measure) Algorithm {
		return NewRankNet(m, measure)
	},
	"ranknet": func(m ml.Model, measure eval.Measure) Algorithm {
		return NewRankNetLambda(m, measure)
	},
	"lambdarank": func(m ml.Model, measure eval.Measure) Algorithm {
		return NewLambdaRank(m, measure)
	},
}

// ValidName checks an algorithm name without constructing it.
func ValidName(name string) error {
	if _, ok := algorithms[name]; ok {
		return nil
	}
	return fmt.Errorf("algorithm %q is not implemented; select one of ranknet, ranknet_old, lambdarank", name)
}

// New creates the algorithm registered under name.
func New(name string, m ml.Model, measure eval.Measure) (Algorithm, error) {
	if build, ok := algorithms[name]; ok {
		return build(m, measure), nil
	}
	return nil, fmt.Errorf("algorithm %q is not implemented; select one of ranknet, ranknet_old, lambdarank", name)
}

// base holds what every pairwise algorithm shares: the model, the measure and
// the logistic squash for pair probabilities.
type base struct {
	model   ml.Model
	measure eval.Measure
	act     ml.Activation
}

func newBase(m ml.Model, measure eval.Measure) base {
	return base{model: m, measure: measure, act: ml.NewSigma(1)}
}

// scores runs the frozen model over every document of the group.
func (b base) scores(group model.QueryGroup) []float64 {
	scores := make([]float64, len(group.Docs))
	for i, doc := range group.Docs {
		scores[i] = b.model.Score(doc.Features)
	}
	return scores
}

// eachPair visits every ordered document pair (i, j) of the group where
// relevance(i) > relevance(j). Equally labelled documents form no pair.
func eachPair(group model.QueryGroup, visit func(i, j int)) {
	for i := range group.Docs {
		for j := range group.Docs {
			if group.Docs[i].Relevance > group.Docs[j].Relevance {
				visit(i, j)
			}
		}
	}
}

// pairLoss is the cross entropy of the pair probability against target 1,
// clamped away from the log singularity at 0.
func pairLoss(p float64) float64 {
	return -math.Log(ltrmath.Clamp(p, 1e-15, 1))
}
