package eval

import (
	"fmt"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

// Measure computes a ranking quality score for one query group.
type Measure interface {
	Name() string
	// Evaluate scores the predicted order of the group against its relevance
	// labels. The result is in [0,1].
	Evaluate(group model.QueryGroup, scores []float64) float64
	// Rank exposes the full ranked view of the group, for algorithms that
	// weigh document pairs by the measure change of a hypothetical swap.
	Rank(group model.QueryGroup, scores []float64) Ranking
}

// Ranking is the scored order of one query group under a measure.
type Ranking interface {
	// Value is the measure of the current order.
	Value() float64
	// SwapDelta is the absolute measure change if the documents at group
	// indices i and j traded ranked positions.
	SwapDelta(i, j int) float64
}

// Builder constructs a measure with the configured cutoff.
type Builder func(cutoff int) Measure

var measures = map[string]Builder{
	"ndcg": func(cutoff int) Measure {
		return NewNdcg(cutoff)
	},
}

// New creates the evaluation measure registered under name.
func New(name string, cutoff int) (Measure, error) {
	if build, ok := measures[name]; ok {
		return build(cutoff), nil
	}
	return nil, fmt.Errorf("evaluation measure %q is not implemented; select one of ndcg", name)
}
