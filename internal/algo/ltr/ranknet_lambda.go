package ltr

import (
	"github.com/hanling14/graphchi-ltr/internal/eval"
	"github.com/hanling14/graphchi-ltr/internal/math/ml"
	"github.com/hanling14/graphchi-ltr/internal/model"
)

// RankNetLambda is the lambda formulation of RankNet: the contributions of
// all pairs a document participates in are summed into one per-document
// lambda before the gradient is touched, so the model sees a single update
// per document per query.
type RankNetLambda struct {
	base
}

// NewRankNetLambda creates the lambda variant of RankNet.
func NewRankNetLambda(m ml.Model, measure eval.Measure) *RankNetLambda {
	return &RankNetLambda{base: newBase(m, measure)}
}

func (r *RankNetLambda) Name() string {
	return "ranknet"
}

func (r *RankNetLambda) ProcessQuery(group model.QueryGroup, pass Pass) Result {
	scores := r.scores(group)
	res := Result{Measure: r.measure.Evaluate(group, scores)}

	lambdas := make([]float64, len(group.Docs))
	eachPair(group, func(i, j int) {
		p := r.act.Act(scores[i] - scores[j])
		lambda := p - 1
		lambdas[i] += lambda
		lambdas[j] -= lambda
		res.Pairs++
		res.Loss += pairLoss(p)
	})

	if pass.Phase != model.Train {
		return res
	}

	eta := r.model.Rate().At(pass.Iteration)
	for d, lambda := range lambdas {
		if lambda == 0 {
			continue
		}
		pass.Gradient.Update(group.Docs[d].Features, scores[d], lambda, eta)
	}
	return res
}
