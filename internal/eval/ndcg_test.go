package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

func group(rels ...float64) model.QueryGroup {
	g := model.QueryGroup{QID: "q"}
	for i, rel := range rels {
		g.Docs = append(g.Docs, model.Document{
			ID:        fmt.Sprintf("d%d", i),
			Relevance: rel,
		})
	}
	return g
}

func TestNdcg_PerfectOrder(t *testing.T) {
	e := NewNdcg(20)
	g := group(3, 2, 1, 0)
	assert.Equal(t, 1.0, e.Evaluate(g, []float64{4, 3, 2, 1}))
}

func TestNdcg_Range(t *testing.T) {
	e := NewNdcg(20)
	g := group(2, 1, 0)
	for _, scores := range [][]float64{
		{3, 2, 1},
		{1, 2, 3},
		{2, 2, 2},
		{0, 0, 1},
	} {
		v := e.Evaluate(g, scores)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	// reversed order scores worse than perfect order
	assert.Less(t, e.Evaluate(g, []float64{1, 2, 3}), 1.0)
}

func TestNdcg_AllZeroRelevanceIsZero(t *testing.T) {
	e := NewNdcg(20)
	g := group(0, 0, 0)
	assert.Equal(t, 0.0, e.Evaluate(g, []float64{3, 2, 1}))
}

func TestNdcg_SingleDocument(t *testing.T) {
	e := NewNdcg(20)
	assert.Equal(t, 1.0, e.Evaluate(group(1), []float64{0.5}))
	assert.Equal(t, 0.0, e.Evaluate(group(0), []float64{0.5}))
}

// Scaling the single positive label must not change the measure:
// the gain cancels against the ideal.
func TestNdcg_SingleRelevantRelabelInvariance(t *testing.T) {
	e := NewNdcg(20)
	scores := []float64{1, 2, 3}
	v1 := e.Evaluate(group(1, 0, 0), scores)
	v2 := e.Evaluate(group(9, 0, 0), scores)
	assert.InDelta(t, v1, v2, 1e-12)
}

func TestNdcg_PerfectOrderRelabelInvariance(t *testing.T) {
	e := NewNdcg(20)
	scores := []float64{3, 2, 1}
	assert.Equal(t, 1.0, e.Evaluate(group(2, 1, 0), scores))
	assert.Equal(t, 1.0, e.Evaluate(group(7, 4, 1), scores))
}

func TestNdcg_TieBreaksOnDocumentID(t *testing.T) {
	e := NewNdcg(20)
	g := model.QueryGroup{QID: "q", Docs: []model.Document{
		{ID: "b", Relevance: 1},
		{ID: "a", Relevance: 0},
	}}
	// equal scores rank "a" first, putting the relevant "b" second
	tied := e.Evaluate(g, []float64{1, 1})
	assert.Less(t, tied, 1.0)
	// and the result is stable across calls
	assert.Equal(t, tied, e.Evaluate(g, []float64{1, 1}))
}

func TestNdcg_Cutoff(t *testing.T) {
	e := NewNdcg(1)
	g := group(1, 1)
	// both orders put one relevant document at the single counted position
	assert.Equal(t, 1.0, e.Evaluate(g, []float64{2, 1}))
	assert.Equal(t, 1.0, e.Evaluate(g, []float64{1, 2}))
}

func TestNdcg_SwapDeltaMatchesEvaluate(t *testing.T) {
	e := NewNdcg(20)
	g := group(1, 0)

	before := e.Evaluate(g, []float64{2, 1})
	after := e.Evaluate(g, []float64{1, 2})

	ranking := e.Rank(g, []float64{2, 1})
	delta := ranking.SwapDelta(0, 1)
	assert.InDelta(t, before-after, delta, 1e-12)
}

func TestNdcg_SwapDeltaZeroForZeroIdeal(t *testing.T) {
	e := NewNdcg(20)
	g := group(0, 0)
	ranking := e.Rank(g, []float64{2, 1})
	assert.Equal(t, 0.0, ranking.SwapDelta(0, 1))
}

func TestNew_Registry(t *testing.T) {
	m, err := New("ndcg", 10)
	assert.NoError(t, err)
	assert.Equal(t, "ndcg", m.Name())

	_, err = New("map", 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ndcg")
}
