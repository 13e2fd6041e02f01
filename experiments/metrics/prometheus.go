package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromCounters are the search counters shared by every PromCollector
// registered against the same registry.
type PromCounters struct {
	searches   *prometheus.CounterVec
	iterations *prometheus.CounterVec
	playouts   *prometheus.CounterVec
	expansions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewPromCounters(reg prometheus.Registerer) *PromCounters {
	c := &PromCounters{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maze",
			Subsystem: "search",
			Name:      "searches_total",
			Help:      "Total searches started",
		}, []string{"algorithm"}),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maze",
			Subsystem: "search",
			Name:      "iterations_total",
			Help:      "Total search iterations (tree descents, beam levels, chokudai passes)",
		}, []string{"algorithm"}),
		playouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maze",
			Subsystem: "search",
			Name:      "playouts_total",
			Help:      "Total random playouts to a terminal state",
		}, []string{"algorithm"}),
		expansions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maze",
			Subsystem: "search",
			Name:      "expansions_total",
			Help:      "Total node or candidate expansions",
		}, []string{"algorithm"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "maze",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall time per completed search",
			Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"algorithm"}),
	}
	reg.MustRegister(c.searches, c.iterations, c.playouts, c.expansions, c.duration)
	return c
}

// PromCollector forwards every count to Prometheus while keeping a local
// tally so Complete still reports the last search.
type PromCollector struct {
	counters *PromCounters
	local    collector
}

func NewPromCollector(counters *PromCounters) *PromCollector {
	return &PromCollector{counters: counters}
}

func (p *PromCollector) Start(algorithm string) {
	p.local.Start(algorithm)
	p.counters.searches.WithLabelValues(algorithm).Inc()
}

func (p *PromCollector) AddIteration() {
	p.local.AddIteration()
	p.counters.iterations.WithLabelValues(p.local.algorithm).Inc()
}

func (p *PromCollector) AddPlayout() {
	p.local.AddPlayout()
	p.counters.playouts.WithLabelValues(p.local.algorithm).Inc()
}

func (p *PromCollector) AddExpansion() {
	p.local.AddExpansion()
	p.counters.expansions.WithLabelValues(p.local.algorithm).Inc()
}

func (p *PromCollector) Complete() SearchMetric {
	m := p.local.Complete()
	p.counters.duration.WithLabelValues(m.Algorithm).Observe(m.Duration.Seconds())
	return m
}

// Searches returns the started-search counter for algorithm.
func (c *PromCounters) Searches(algorithm string) prometheus.Counter {
	return c.searches.WithLabelValues(algorithm)
}
