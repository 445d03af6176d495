// Package metrics records search statistics as Prometheus metrics.
//
// The CLI is a short-lived process, so metrics live on a private registry
// instead of the global one and are written out in the Prometheus text
// exposition format when the run ends (see Recorder.WriteText).
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const (
	metricsNamespace = "watersort"
	searchSubsystem  = "search"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeSolved     = "solved"
	OutcomeUnsolvable = "unsolvable"
	OutcomeCancelled  = "cancelled"
)

// Reasons a state was skipped, used as the "reason" label.
const (
	SkipCycle = "cycle"
	SkipDead  = "dead"
)

// Search summarizes one finished search.
type Search struct {
	Outcome       string
	Nodes         int
	CyclesSkipped int
	DeadSkipped   int
	MaxDepth      int
	Moves         int
	Duration      time.Duration
}

// Recorder holds the Prometheus collectors for solver runs.
type Recorder struct {
	registry *prometheus.Registry

	// SearchesTotal counts searches by outcome.
	SearchesTotal *prometheus.CounterVec

	// NodesTotal counts board states visited across all searches.
	NodesTotal prometheus.Counter

	// SkippedTotal counts states pruned without expansion, by reason.
	SkippedTotal *prometheus.CounterVec

	// MaxDepth is the deepest recursion level reached by the last search.
	MaxDepth prometheus.Gauge

	// SolutionMoves is the length of the last solution found.
	SolutionMoves prometheus.Gauge

	// DurationSeconds measures wall time per search.
	DurationSeconds prometheus.Histogram
}

// NewRecorder creates a Recorder with its collectors registered on a fresh
// registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "searches_total",
				Help:      "Total number of searches by outcome",
			},
			[]string{"outcome"},
		),
		NodesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "nodes_total",
				Help:      "Total number of board states visited",
			},
		),
		SkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "skipped_total",
				Help:      "Board states skipped without expansion, by reason",
			},
			[]string{"reason"},
		),
		MaxDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "max_depth",
				Help:      "Deepest recursion level reached by the last search",
			},
		),
		SolutionMoves: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "solution_moves",
				Help:      "Number of pours in the last solution found",
			},
		),
		DurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "duration_seconds",
				Help:      "Wall time spent per search in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
			},
		),
	}
}

// Registry exposes the private registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSearch records the summary of one finished search.
func (r *Recorder) ObserveSearch(s Search) {
	r.SearchesTotal.WithLabelValues(s.Outcome).Inc()
	r.NodesTotal.Add(float64(s.Nodes))
	r.SkippedTotal.WithLabelValues(SkipCycle).Add(float64(s.CyclesSkipped))
	r.SkippedTotal.WithLabelValues(SkipDead).Add(float64(s.DeadSkipped))
	r.MaxDepth.Set(float64(s.MaxDepth))
	if s.Outcome == OutcomeSolved {
		r.SolutionMoves.Set(float64(s.Moves))
	}
	r.DurationSeconds.Observe(s.Duration.Seconds())
}

// WriteText writes every gathered metric family to w in the Prometheus
// text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
