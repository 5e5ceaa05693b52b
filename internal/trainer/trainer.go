package trainer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hanling14/graphchi-ltr/internal/algo/ltr"
	"github.com/hanling14/graphchi-ltr/internal/buffer"
	"github.com/hanling14/graphchi-ltr/internal/dataset"
	"github.com/hanling14/graphchi-ltr/internal/engine"
	ltrmath "github.com/hanling14/graphchi-ltr/internal/math"
	"github.com/hanling14/graphchi-ltr/internal/math/ml"
	"github.com/hanling14/graphchi-ltr/internal/metrics"
	"github.com/hanling14/graphchi-ltr/internal/model"
)

// StoppingCondition selects the early termination policy consulted once per
// iteration, besides the configured iteration budget.
type StoppingCondition int

const (
	// StopNever runs the full iteration budget.
	StopNever StoppingCondition = iota
	// StopOnConvergence halts once the evaluation measure stops improving
	// across a window of recent iterations.
	StopOnConvergence
)

const (
	convergenceWindow  = 3
	convergenceEpsilon = 1e-4
)

// ParseStopping validates the numeric stopping condition from the configuration.
func ParseStopping(v int) (StoppingCondition, error) {
	switch StoppingCondition(v) {
	case StopNever, StopOnConvergence:
		return StoppingCondition(v), nil
	}
	return 0, fmt.Errorf("stopping condition %d is not implemented; select one of 0 (fixed iterations), 1 (convergence)", v)
}

// Config carries the per-run iteration settings.
type Config struct {
	Niters  int
	Workers int
	Stop    StoppingCondition
}

// Trainer owns the model, algorithm and measure for the lifetime of one run
// and drives them through the phases.
type Trainer struct {
	model ml.Model
	alg   ltr.Algorithm
	cfg   Config
}

// New creates a trainer for the given model and algorithm.
func New(m ml.Model, alg ltr.Algorithm, cfg Config) *Trainer {
	return &Trainer{model: m, alg: alg, cfg: cfg}
}

// Report summarizes one phase run.
type Report struct {
	Phase      model.Phase
	Iterations int
	Queries    int
	Pairs      int
	Measure    float64
	Loss       float64
	Elapsed    time.Duration
}

// partial is the per-shard aggregation slot; each engine worker writes only
// to its own, so no locking is needed before the barrier merge.
type partial struct {
	measures []float64
	pairs    int
	loss     float64
}

func (p *partial) add(res ltr.Result) {
	p.measures = append(p.measures, res.Measure)
	p.pairs += res.Pairs
	p.loss += res.Loss
}

// RunPhase drives the iteration engine over the dataset for one phase.
// Weights are mutated only at iteration barriers and only during Train;
// validation and testing score against frozen weights.
func (t *Trainer) RunPhase(ctx context.Context, phase model.Phase, ds *dataset.Dataset) (Report, error) {
	workers := t.cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	shards := ds.Shards(workers)
	eng := engine.New(shards, workers)

	grads := make([]ml.Gradient, len(shards))
	for i := range grads {
		grads[i] = t.model.NewGradient()
	}
	partials := make([]partial, len(shards))

	history := buffer.NewRing(convergenceWindow)
	report := Report{Phase: phase}
	start := time.Now()

	cb := func(group model.QueryGroup, shard, iteration int) {
		res := t.alg.ProcessQuery(group, ltr.Pass{
			Phase:     phase,
			Iteration: iteration,
			Gradient:  grads[shard],
		})
		partials[shard].add(res)
	}

	barrier := func(iteration int) bool {
		if phase == model.Train {
			// commit in fixed shard order so reruns are bit identical
			for _, g := range grads {
				g.Apply()
				g.Reset()
			}
		}

		var total partial
		for i := range partials {
			total.measures = append(total.measures, partials[i].measures...)
			total.pairs += partials[i].pairs
			total.loss += partials[i].loss
			partials[i] = partial{}
		}
		queries := len(total.measures)
		mean := ltrmath.Mean(total.measures)

		report.Iterations = iteration + 1
		report.Queries = queries
		report.Pairs = total.pairs
		report.Measure = mean
		report.Loss = total.loss

		log.Info().
			Str("phase", phase.String()).
			Int("iteration", iteration).
			Int("queries", queries).
			Int("pairs", total.pairs).
			Float64("measure", mean).
			Float64("loss", total.loss).
			Msg("iteration done")
		metrics.Observer.Iteration(phase.String(), queries, total.pairs, mean, total.loss)

		history.Push(mean)
		return t.keepGoing(history)
	}

	if _, err := eng.Run(ctx, t.cfg.Niters, cb, barrier); err != nil {
		return report, fmt.Errorf("phase %s: %w", phase, err)
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

// keepGoing consults the stopping condition against the measure history.
func (t *Trainer) keepGoing(history *buffer.Ring) bool {
	if t.cfg.Stop != StopOnConvergence || !history.Full() {
		return true
	}
	vv := history.Get()
	return vv[len(vv)-1]-vv[0] > convergenceEpsilon
}
