package ltr

import (
	"github.com/hanling14/graphchi-ltr/internal/eval"
	"github.com/hanling14/graphchi-ltr/internal/math/ml"
	"github.com/hanling14/graphchi-ltr/internal/model"
)

// RankNet is the original per-pair variant: every document pair contributes
// its gradient immediately, without collecting per-document lambdas first.
type RankNet struct {
	base
}

// NewRankNet creates the per-pair RankNet algorithm.
func NewRankNet(m ml.Model, measure eval.Measure) *RankNet {
	return &RankNet{base: newBase(m, measure)}
}

func (r *RankNet) Name() string {
	return "ranknet_old"
}

func (r *RankNet) ProcessQuery(group model.QueryGroup, pass Pass) Result {
	scores := r.scores(group)
	res := Result{Measure: r.measure.Evaluate(group, scores)}

	train := pass.Phase == model.Train
	eta := r.model.Rate().At(pass.Iteration)

	eachPair(group, func(i, j int) {
		p := r.act.Act(scores[i] - scores[j])
		// target probability is 1, so the pair gradient is p - 1
		lambda := p - 1
		res.Pairs++
		res.Loss += pairLoss(p)
		if !train {
			return
		}
		pass.Gradient.Update(group.Docs[i].Features, scores[i], lambda, eta)
		pass.Gradient.Update(group.Docs[j].Features, scores[j], -lambda, eta)
	})

	return res
}
