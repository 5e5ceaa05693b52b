package eval

import (
	"math"
	"sort"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

// Ndcg is the normalized discounted cumulative gain truncated at the top
// cutoff positions. A query with no relevant documents evaluates to 0.
type Ndcg struct {
	cutoff int
}

// NewNdcg creates the measure for NDCG@cutoff.
func NewNdcg(cutoff int) *Ndcg {
	return &Ndcg{cutoff: cutoff}
}

func (e *Ndcg) Name() string {
	return "ndcg"
}

func (e *Ndcg) Evaluate(group model.QueryGroup, scores []float64) float64 {
	return e.Rank(group, scores).Value()
}

func (e *Ndcg) Rank(group model.QueryGroup, scores []float64) Ranking {
	n := len(group.Docs)

	// order by score descending; ties resolve on the original document id
	// so the ranking is reproducible
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := order[a], order[b]
		if scores[da] != scores[db] {
			return scores[da] > scores[db]
		}
		return group.Docs[da].ID < group.Docs[db].ID
	})

	gains := make([]float64, n)
	for i, doc := range group.Docs {
		gains[i] = gain(doc.Relevance)
	}

	// position of each document in the ranked list
	pos := make([]int, n)
	for p, doc := range order {
		pos[doc] = p
	}

	dcg := 0.0
	for p, doc := range order {
		dcg += gains[doc] * e.discount(p)
	}

	ideal := make([]float64, n)
	copy(ideal, gains)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	idcg := 0.0
	for p, g := range ideal {
		idcg += g * e.discount(p)
	}

	return &ndcgRanking{measure: e, gains: gains, pos: pos, dcg: dcg, idcg: idcg}
}

// discount is the positional weight of the 0-based rank p;
// positions past the cutoff carry no weight.
func (e *Ndcg) discount(p int) float64 {
	if p >= e.cutoff {
		return 0
	}
	return 1 / math.Log2(float64(p)+2)
}

func gain(relevance float64) float64 {
	return math.Pow(2, relevance) - 1
}

type ndcgRanking struct {
	measure *Ndcg
	gains   []float64
	pos     []int
	dcg     float64
	idcg    float64
}

func (r *ndcgRanking) Value() float64 {
	if r.idcg == 0 {
		return 0
	}
	return r.dcg / r.idcg
}

func (r *ndcgRanking) SwapDelta(i, j int) float64 {
	if r.idcg == 0 {
		return 0
	}
	di := r.measure.discount(r.pos[i])
	dj := r.measure.discount(r.pos[j])
	return math.Abs((r.gains[i] - r.gains[j]) * (di - dj) / r.idcg)
}
