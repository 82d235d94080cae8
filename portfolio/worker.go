package portfolio

import (
	"context"
	"time"

	"github.com/tmertens/satkit/solver"
)

// workerResult is what a winning worker hands back to the manager: exactly
// the "assignment + which preset found it" pair spec §5's result record
// describes. It travels over resultCh rather than shared mutable fields —
// spec §5's "prefer message passing... a bounded results channel the
// manager drains" note.
type workerResult struct {
	presetName string
	model      []bool
}

// runWorker builds an independent solver for preset, races it against ctx
// cancellation (siblings winning, the global timeout, or an explicit Stop),
// and reports its outcome. It never mutates Manager state directly except
// through the two channels/atomics the manager owns, matching spec §5's
// "each worker owns its state exclusively" rule.
func (m *Manager) runWorker(ctx context.Context, idx int, preset Preset, cancelSiblings context.CancelFunc) WorkerStats {
	start := time.Now()

	opts := preset.toSolverOptions(int64(idx) + 1)
	opts.Logger = m.log.WithField("worker", preset.Name)

	s, err := solver.FromClauses(m.nbVars, m.clauses, opts)
	if err != nil {
		return WorkerStats{Preset: preset.Name, Termination: TerminationResource}
	}

	// stopWatch mirrors spec §5's "each worker self-polls... no worker is
	// preempted": Solve() only checks its own deadline/stop flag at
	// propagation/decision checkpoints, so a side goroutine translates ctx
	// cancellation (a sibling won, or the manager's overall timeout fired)
	// and a Manager.Stop request (seen by polling globalTimeout) into that
	// same cooperative Stop signal.
	stopWatch := make(chan struct{})
	go func() {
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				s.Stop()
				return
			case <-stopWatch:
				return
			case <-tick.C:
				if m.globalTimeout.Load() {
					s.Stop()
					return
				}
			}
		}
	}()

	status := s.Solve()
	close(stopWatch)
	duration := time.Since(start)

	stats := s.Statistics()
	result := WorkerStats{
		Preset:           preset.Name,
		Conflicts:        stats.NbConflicts,
		Decisions:        stats.NbDecisions,
		Propagations:     stats.NbPropagations,
		Restarts:         stats.NbRestarts,
		MaxDecisionLevel: stats.MaxDecisionLevel,
		LearnedClauses:   stats.NbLearned,
		SolveDuration:    duration,
		PeakMemoryBytes:  approxPeakMemory(s),
		Termination:      terminationFor(ctx, status),
	}

	if status == solver.Sat {
		select {
		case m.resultCh <- workerResult{presetName: preset.Name, model: s.Model()}:
			m.solutionFound.Store(true)
			cancelSiblings()
		default:
			// A sibling already delivered a result first; ours is discarded,
			// per spec §5's "subsequent winners silently abandon their
			// assignments".
		}
	}

	return result
}

// terminationFor classifies a worker's outcome per spec §4.9's four-value
// enum: a status of Sat or Unsat means the search reached a verdict on its
// own (TerminationSolution, see its doc comment for why "solution" covers
// both here); Unknown means it was cut short, distinguished by whether ctx
// expired on its own deadline or was cancelled for another reason (a
// sibling's win, or an explicit external Stop).
func terminationFor(ctx context.Context, status solver.Status) TerminationReason {
	if status != solver.Unknown {
		return TerminationSolution
	}
	if ctx.Err() == context.DeadlineExceeded {
		return TerminationTimeout
	}
	return TerminationExternalStop
}

// approxPeakMemory reports the clause database's approximate footprint at
// the moment the worker stopped, as a stand-in for a true peak (which would
// need continuous sampling); acceptable for spec §4.9's advisory
// "peak memory" counter.
func approxPeakMemory(s *solver.Solver) int64 {
	return s.ApproxMemoryBytes()
}
