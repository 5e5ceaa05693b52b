package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus groups the training collectors.
type Prometheus struct {
	Iterations *prometheus.CounterVec
	Queries    *prometheus.CounterVec
	Pairs      *prometheus.CounterVec
	Measure    *prometheus.GaugeVec
	Loss       *prometheus.GaugeVec
}

// NewPrometheusMetrics creates the collectors under the ltr namespace.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ltr",
				Name:      "iterations",
			}, []string{"phase"}),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ltr",
				Name:      "queries",
			}, []string{"phase"}),
		Pairs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ltr",
				Name:      "pairs",
			}, []string{"phase"}),
		Measure: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ltr",
				Name:      "measure",
			}, []string{"phase"}),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ltr",
				Name:      "loss",
			}, []string{"phase"}),
	}
}
