package portfolio

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TerminationReason classifies why a single worker's Solve call returned,
// per spec §4.9's "termination reason ∈ {solution, timeout, resource,
// external-stop}".
type TerminationReason int

const (
	// TerminationSolution covers a worker whose own search concluded on its
	// own terms: it proved SAT or UNSAT without being cut short by the
	// manager. Spec.md's four-value enum has no separate "unsat" bucket, so
	// this rewrite reads "solution" as "the search reached a verdict" rather
	// than narrowly "this worker found the winning model" — see DESIGN.md.
	TerminationSolution TerminationReason = iota
	// TerminationTimeout means the portfolio's global wall-clock deadline
	// elapsed before this worker concluded.
	TerminationTimeout
	// TerminationResource means the worker's solver could not be
	// constructed: solver.FromClauses returned an error.
	TerminationResource
	// TerminationExternalStop means Manager.Stop was called, or a sibling
	// found a solution first, before this worker concluded on its own.
	TerminationExternalStop
)

func (r TerminationReason) String() string {
	switch r {
	case TerminationSolution:
		return "solution"
	case TerminationTimeout:
		return "timeout"
	case TerminationResource:
		return "resource"
	case TerminationExternalStop:
		return "external-stop"
	default:
		return "unknown"
	}
}

// WorkerStats records one worker's contribution, per spec §4.9's
// "per-worker counters" list.
type WorkerStats struct {
	Preset           string
	Conflicts        int
	Decisions        int
	Propagations     int
	Restarts         int
	MaxDecisionLevel int
	LearnedClauses   int
	SolveDuration    time.Duration
	PeakMemoryBytes  int64
	Termination      TerminationReason
}

// metricsSet is the optional Prometheus registration behind
// Options.MetricsRegisterer: nil (the zero value) makes every method here a
// no-op, so a caller who never sets a registerer pays nothing. Grounded in
// operator-framework-operator-lifecycle-manager's pkg/metrics package,
// which likewise builds a handful of package-level Gauge/Counter/Summary
// vectors and registers them once.
type metricsSet struct {
	conflicts    *prometheus.CounterVec
	decisions    *prometheus.CounterVec
	restarts     *prometheus.CounterVec
	solveSeconds *prometheus.SummaryVec
}

func newMetricsSet(reg prometheus.Registerer) *metricsSet {
	if reg == nil {
		return nil
	}
	m := &metricsSet{
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "satkit_portfolio_worker_conflicts_total",
			Help: "Cumulative conflicts encountered by a portfolio worker.",
		}, []string{"preset"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "satkit_portfolio_worker_decisions_total",
			Help: "Cumulative decisions made by a portfolio worker.",
		}, []string{"preset"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "satkit_portfolio_worker_restarts_total",
			Help: "Cumulative restarts performed by a portfolio worker.",
		}, []string{"preset"}),
		solveSeconds: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "satkit_portfolio_worker_solve_duration_seconds",
			Help:       "Wall-clock duration of a portfolio worker's Solve call.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"preset", "termination"}),
	}
	reg.MustRegister(m.conflicts, m.decisions, m.restarts, m.solveSeconds)
	return m
}

func (m *metricsSet) observe(s WorkerStats) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(s.Preset).Add(float64(s.Conflicts))
	m.decisions.WithLabelValues(s.Preset).Add(float64(s.Decisions))
	m.restarts.WithLabelValues(s.Preset).Add(float64(s.Restarts))
	m.solveSeconds.WithLabelValues(s.Preset, s.Termination.String()).Observe(s.SolveDuration.Seconds())
}
