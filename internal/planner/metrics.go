package planner

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts plan generations and parse results.
type Metrics struct {
	generations   *prometheus.CounterVec
	genDuration   *prometheus.HistogramVec
	parsedDays    *prometheus.HistogramVec
	enrichResults *prometheus.CounterVec
}

// NewMetrics creates the planner collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthtrack",
			Name:      "plan_generations_total",
			Help:      "Exercise plan generations by environment and outcome.",
		}, []string{"environment", "outcome"}),
		genDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthtrack",
			Name:      "plan_generation_seconds",
			Help:      "Time spent waiting for the text generator.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"environment"}),
		parsedDays: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthtrack",
			Name:      "plan_parsed_days",
			Help:      "Days found when parsing a plan.",
			Buckets:   []float64{0, 1, 3, 5, 7, 10},
		}, []string{"environment"}),
		enrichResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthtrack",
			Name:      "plan_enrichments_total",
			Help:      "Catalog enrichment attempts by environment and outcome.",
		}, []string{"environment", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.generations, m.genDuration, m.parsedDays, m.enrichResults)
	}
	return m
}
