// Package portfolio implements spec §4.9's diversified parallel CDCL
// portfolio: N workers, each an independent solver.Solver seeded from a
// diversification catalog, racing on the same formula.
//
// Grounded in the teacher's own multi-solution machinery
// (solver.Solver.Enumerate/CountModels — many searches over one formula,
// collated by the caller) generalized from "many models of one solver" to
// "one model, first of many solvers", and in
// operator-framework-operator-lifecycle-manager's errgroup-based
// concurrent-validation pattern (pkg/controller/operators/labeller/filters.go)
// for the fan-out/cancel-on-first-result shape.
package portfolio

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tmertens/satkit/internal/satlog"
	"github.com/tmertens/satkit/solver"
)

// Options configures a Manager beyond the required formula/timeout/worker
// count. Every field is optional.
type Options struct {
	// Catalog overrides the built-in diversification catalog (DefaultCatalog).
	Catalog []Preset
	// MemoryBudgetBytes caps the manager's total estimated worker memory,
	// per spec §4.9's "Memory budget". Zero disables the memory-based cap
	// (only CPU count and catalog size bound K).
	MemoryBudgetBytes int64
	// MetricsRegisterer, if non-nil, receives the per-worker Prometheus
	// vectors this package registers. Nil (the default) means no metrics.
	MetricsRegisterer prometheus.Registerer
	// Logger receives manager- and worker-scoped structured log entries.
	Logger *logrus.Entry
}

// Manager runs a diversified portfolio over one immutable formula. Spec
// §4.9/§6's Portfolio type.
type Manager struct {
	nbVars  int
	clauses [][]solver.Lit
	timeout time.Duration
	presets []Preset

	solutionFound atomic.Bool
	globalTimeout atomic.Bool
	resultCh      chan workerResult

	mu         sync.Mutex
	winnerName string
	model      []bool
	solved     bool

	statsMu sync.Mutex
	stats   []WorkerStats

	log     *logrus.Entry
	metrics *metricsSet
}

// New builds a Manager over nbVars variables and clauses, selecting at most
// K presets from opts.Catalog (or DefaultCatalog if unset) per spec §4.9's
// "at most K = min(preset_count, cpu_hw_concurrency, memory_budget /
// per_worker_estimate)" rule. timeout <= 0 means no wall-clock limit;
// workerCount <= 0 defaults to runtime.NumCPU().
func New(nbVars int, clauses [][]solver.Lit, timeout time.Duration, workerCount int, opts Options) (*Manager, error) {
	if nbVars <= 0 {
		return nil, ErrEmptyFormula
	}
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	presets := selectPresets(catalog, workerCount, opts.MemoryBudgetBytes, len(clauses))
	if len(presets) == 0 {
		return nil, ErrNoPresets
	}

	return &Manager{
		nbVars:  nbVars,
		clauses: clauses,
		timeout: timeout,
		presets: presets,
		resultCh: make(chan workerResult, 1),
		log:      satlog.Or(opts.Logger),
		metrics:  newMetricsSet(opts.MetricsRegisterer),
	}, nil
}

// WorkerCount reports how many presets — and thus goroutines — Solve will
// actually launch, after budget narrowing.
func (m *Manager) WorkerCount() int { return len(m.presets) }

// Solve races every selected worker to a first answer. It returns true iff
// some worker reported SAT before the timeout/context elapsed; per spec
// §4.9's "if all workers report UNSAT (or terminate)... the manager returns
// UNSAT" and "a global wall-clock timeout... the manager returns UNSAT by
// convention", both map to a false return here. Solve always waits for
// every worker to return before returning itself (spec §5's "the manager
// waits (joins) for all workers").
func (m *Manager) Solve(ctx context.Context) bool {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	workCtx, cancelWork := context.WithCancel(ctx)
	defer cancelWork()

	var g errgroup.Group
	for i, preset := range m.presets {
		i, preset := i, preset
		g.Go(func() error {
			stats := m.runWorker(workCtx, i, preset, cancelWork)
			m.metrics.observe(stats)
			m.recordStats(stats)
			return nil
		})
	}
	g.Wait()

	if ctx.Err() == context.DeadlineExceeded {
		m.globalTimeout.Store(true)
	}

	select {
	case res := <-m.resultCh:
		m.publish(res)
		return true
	default:
		return false
	}
}

// Stop signals every worker to abort at its next self-poll, without waiting
// for a result. Safe to call before or during Solve; a no-op afterward.
func (m *Manager) Stop() {
	m.globalTimeout.Store(true)
}

func (m *Manager) publish(res workerResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.winnerName = res.presetName
	m.model = res.model
	m.solved = true
}

// Solution returns the winning assignment and the name of the preset that
// found it, or ok=false if Solve has not yet returned a SAT verdict.
func (m *Manager) Solution() (model []bool, presetName string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.solved {
		return nil, "", false
	}
	return append([]bool(nil), m.model...), m.winnerName, true
}

func (m *Manager) recordStats(s WorkerStats) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	m.stats = append(m.stats, s)
}

// Statistics returns one WorkerStats entry per worker that has completed so
// far, in completion order. Spec §4.9's per-worker statistics.
func (m *Manager) Statistics() []WorkerStats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return append([]WorkerStats(nil), m.stats...)
}
