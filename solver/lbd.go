package solver

// Conflict-count windows for the VSIDS-reseed-after-restart heuristic
// (isStalled/shouldReseed below): a restart that fires before
// stallMediumWindow conflicts have passed since the last one is "shallow" —
// the search isn't making headway — and stallLongWindow worth of shallow
// restarts in a row triggers a VSIDS activity reseed. stallShortWindow is
// the shorter threshold that boosts random-polarity frequency before things
// get bad enough to reseed.
const (
	stallShortWindow  = 50
	stallMediumWindow = 400
	stallLongWindow   = 2000
)

// Iteration-count thresholds for spec §4.4's second stall mechanism: a
// counter that increments every search-loop iteration that records no
// progress in conflicts, decisions, propagations, learned-clause count,
// decision level, or restarts, independent of the conflicts-since-restart
// tracking above. Grounded in original_source/src/CDCLSolverIncremental.cpp
// (~lines 225-382)'s stuck_counter/stuck_at_level_count/no_progress_count/
// consecutive_restarts quartet.
const (
	// stallForceRestartIterations is "50" in spec §4.4 and the original's
	// stuck_counter > 50: iterations without progress before a restart is
	// forced independent of the normal Luby/geometric schedule.
	stallForceRestartIterations = 50
	// stallClearLearnedAfterForcedRestarts is the original's
	// consecutive_restarts > 10: after this many forced restarts in a row
	// without progress, escalate to clearing every learned clause and
	// reinitializing VSIDS instead of restarting again.
	stallClearLearnedAfterForcedRestarts = 10
	// stallForceBackjumpIterations is "400" in spec §4.4 and the original's
	// stuck_at_level_count > 400: iterations stuck at the same decision
	// level before a forced partial backjump (one level down).
	stallForceBackjumpIterations = 400
	// stallUnresolvedIterations is "2000" in spec §4.4 and the original's
	// no_progress_count > 2000: iterations without progress before the
	// solve gives up and reports Unknown rather than spin indefinitely.
	stallUnresolvedIterations = 2000
)

// stallDetector tracks whether the search is making progress, feeding both
// choosePolarity's extra randomization / VSIDS-reseed-after-restart (the
// conflicts-since-restart counters) and spec §4.4's four iteration-count
// stall thresholds (the snapshot/stuck counters). Grounded in the teacher's
// lbdStats (solver/lbd.go), which detects the same "is the search stuck"
// condition from recent-vs-total LBD averages; this rewrite tracks conflict
// counts and, separately, per-iteration progress signals instead, since
// spec §4.4 phrases stall detection in terms of conflict-count windows and
// iteration counts rather than LBD trend, and the teacher's glucose-style
// auto-restart trigger is superseded here by the explicit Luby/geometric
// schedule in restart.go.
type stallDetector struct {
	conflictsSinceRestart      int
	consecutiveShallowRestarts int

	lastConflicts, lastDecisions, lastPropagations int
	lastLearned, lastRestarts, lastDecisionLevel   int

	stuckIterations           int // iterations since the last progress signal; drives forceRestartDue
	noProgressIterations      int // like stuckIterations but never reset by a forced restart itself; drives unresolved
	stuckAtLevelIterations    int // iterations with the decision level unchanged; drives forceBackjumpDue
	consecutiveForcedRestarts int // forced restarts fired back to back without progress; drives shouldClearLearned
}

func newStallDetector() *stallDetector { return &stallDetector{} }

// recordConflict is called once per conflict.
func (d *stallDetector) recordConflict() {
	d.conflictsSinceRestart++
}

// recordRestart is called right after a restart's level-0 backjump. A
// restart that fires before stallMediumWindow conflicts have elapsed since
// the previous one counts as shallow; consecutiveShallowRestarts resets the
// moment a restart takes longer than that to arrive.
func (d *stallDetector) recordRestart() {
	if d.conflictsSinceRestart < stallMediumWindow {
		d.consecutiveShallowRestarts++
	} else {
		d.consecutiveShallowRestarts = 0
	}
	d.conflictsSinceRestart = 0
}

// isStalled reports whether more than stallShortWindow conflicts have
// happened since the last restart without one being due yet.
func (d *stallDetector) isStalled() bool {
	return d.conflictsSinceRestart > stallShortWindow
}

// shouldReseed reports whether enough consecutive shallow restarts have
// accumulated to cross stallLongWindow's worth of unproductive search, and
// resets the counter if so.
func (d *stallDetector) shouldReseed() bool {
	if d.consecutiveShallowRestarts*stallMediumWindow < stallLongWindow {
		return false
	}
	d.consecutiveShallowRestarts = 0
	return true
}

// observeIteration updates the stuck/no-progress counters from one
// search-loop iteration's live counts, to be called once per iteration
// before propagate/analyze/decide run. Any of conflicts, decisions,
// propagations, learned-clause count, restarts growing, or decisionLevel
// increasing counts as progress; decisionLevel staying flat is tracked
// separately regardless of the other signals, since that is the one spec
// §4.4 ties specifically to the forced-partial-backjump threshold.
func (d *stallDetector) observeIteration(conflicts, decisions, propagations, learned, restarts, decisionLevel int) {
	progress := conflicts > d.lastConflicts ||
		decisions > d.lastDecisions ||
		propagations > d.lastPropagations ||
		learned > d.lastLearned ||
		restarts > d.lastRestarts ||
		decisionLevel > d.lastDecisionLevel

	if decisionLevel > d.lastDecisionLevel {
		d.stuckAtLevelIterations = 0
	} else if decisionLevel == d.lastDecisionLevel {
		d.stuckAtLevelIterations++
	}

	d.lastConflicts, d.lastDecisions, d.lastPropagations = conflicts, decisions, propagations
	d.lastLearned, d.lastRestarts, d.lastDecisionLevel = learned, restarts, decisionLevel

	if progress {
		d.stuckIterations = 0
		d.noProgressIterations = 0
		d.consecutiveForcedRestarts = 0
		return
	}
	d.stuckIterations++
	d.noProgressIterations++
}

// forceRestartDue reports whether stallForceRestartIterations have elapsed
// without progress; the caller must follow up with restartForced once it
// has actually restarted (or escalated per shouldClearLearned).
func (d *stallDetector) forceRestartDue() bool {
	return d.stuckIterations > stallForceRestartIterations
}

// shouldClearLearned reports whether enough forced restarts have fired back
// to back without progress that the caller should clear every learned
// clause and reinitialize VSIDS instead of restarting again. Only
// meaningful when forceRestartDue is true.
func (d *stallDetector) shouldClearLearned() bool {
	return d.consecutiveForcedRestarts >= stallClearLearnedAfterForcedRestarts
}

// restartForced is called once a forced restart has actually run; cleared
// reports whether it was the clear-learned escalation rather than a plain
// restart, which resets the consecutive count instead of growing it.
func (d *stallDetector) restartForced(cleared bool) {
	d.stuckIterations = 0
	if cleared {
		d.consecutiveForcedRestarts = 0
		return
	}
	d.consecutiveForcedRestarts++
}

// forceBackjumpDue reports whether stallForceBackjumpIterations have
// elapsed stuck at the same decision level.
func (d *stallDetector) forceBackjumpDue() bool {
	return d.stuckAtLevelIterations > stallForceBackjumpIterations
}

// backjumpForced is called once a forced partial backjump has actually run.
func (d *stallDetector) backjumpForced() {
	d.stuckAtLevelIterations = 0
}

// unresolved reports whether stallUnresolvedIterations have elapsed overall
// without progress — the point at which search gives up rather than spin
// indefinitely on a pathological instance.
func (d *stallDetector) unresolved() bool {
	return d.noProgressIterations > stallUnresolvedIterations
}
