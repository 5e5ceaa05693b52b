package ltr

import (
	"github.com/hanling14/graphchi-ltr/internal/eval"
	"github.com/hanling14/graphchi-ltr/internal/math/ml"
	"github.com/hanling14/graphchi-ltr/internal/model"
)

// LambdaRank scales each pair's RankNet gradient by the evaluation measure
// change a swap of the two documents would cause, so pairs that matter most
// to the target metric pull hardest.
type LambdaRank struct {
	base
}

// NewLambdaRank creates the LambdaRank algorithm.
func NewLambdaRank(m ml.Model, measure eval.Measure) *LambdaRank {
	return &LambdaRank{base: newBase(m, measure)}
}

func (r *LambdaRank) Name() string {
	return "lambdarank"
}

func (r *LambdaRank) ProcessQuery(group model.QueryGroup, pass Pass) Result {
	scores := r.scores(group)
	ranking := r.measure.Rank(group, scores)
	res := Result{Measure: ranking.Value()}

	lambdas := make([]float64, len(group.Docs))
	eachPair(group, func(i, j int) {
		p := r.act.Act(scores[i] - scores[j])
		lambda := (p - 1) * ranking.SwapDelta(i, j)
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
