package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observer is the process wide metrics sink.
var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Iterations,
		Observer.prometheus.Queries,
		Observer.prometheus.Pairs,
		Observer.prometheus.Measure,
		Observer.prometheus.Loss,
	)
}

type Metrics struct {
	prometheus Prometheus
}

// Iteration records one finished iteration of the phase with its aggregates.
func (m *Metrics) Iteration(phase string, queries, pairs int, measure, loss float64) {
	m.prometheus.Iterations.WithLabelValues(phase).Inc()
	m.prometheus.Queries.WithLabelValues(phase).Add(float64(queries))
	m.prometheus.Pairs.WithLabelValues(phase).Add(float64(pairs))
	m.prometheus.Measure.WithLabelValues(phase).Set(measure)
	m.prometheus.Loss.WithLabelValues(phase).Set(loss)
}

// Serve exposes the collectors on /metrics at the given address.
// It blocks, so callers usually run it on its own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
