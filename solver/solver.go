package solver

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tmertens/satkit/internal/satlog"
)

// Solver is the CDCL search engine: trail, clause database, VSIDS, restart
// schedule and the propagate/analyze/decide loop that drives them. It
// implements spec §4's core algorithm; the incremental external API spec §6
// describes (AddClause, SetAssumptions, Solve, ...) lives in incremental.go
// on top of this type.
//
// Grounded in the teacher's Solver (solver/solver.go): the overall shape —
// one struct owning trail, activity/heap, and reason bookkeeping — is kept,
// but every field is now sourced from the smaller types this rewrite split
// out (trail, clauseDatabase, vsids, restartController) instead of parallel
// slices declared directly on Solver.
type Solver struct {
	nbVars int

	db      *clauseDatabase
	trail   *trail
	vsids   *vsids
	restart *restartController
	stall   *stallDetector

	opts Options
	log  *logrus.Entry

	status        Status
	decisionLevel int

	assumptions  []Lit
	lastConflict ClauseID // dedicated conflict id feeding UNSAT-core extraction; see SPEC_FULL.md §4/§9

	// explicitCore holds a synthesized core for the case where an assumption
	// contradicts a trail entry directly, before search ever runs — no
	// clause mediates that conflict, so lastConflict has nothing to point
	// at. Set by Solve (and by addClause for an empty clause), read by Core,
	// and reset at the start of every Solve; nil whenever the ordinary
	// antecedent-walk core applies.
	explicitCore []Lit

	// permLen is the trail length representing "permanent facts only": every
	// entry below this index was pushed by AddClause/AddTemporaryClause
	// eagerly asserting a unit clause, independent of any assumption. Solve
	// retracts the trail down to permLen before asserting the current
	// assumption set, so a previous solve's assumptions (and anything
	// propagated or learned only because of them) never leak into the next
	// one — see SPEC_FULL.md's note on spec §4.7's "reset trail" step, and
	// DESIGN.md's Open Questions.
	permLen int

	// structuralConflict records a clause that was unsatisfiable by itself
	// at the moment it was added — an empty clause, or a unit clause
	// already falsified by the level-0 assignment — as opposed to a
	// conflict search derives. Such a clause is never watched (clausedb.go's
	// watch skips Len() < 2), so propagate/search can never rediscover it on
	// a later Solve call once Solve's own per-call reset runs; Solve checks
	// this field first and returns Unsat without touching the trail or
	// search at all. NoClause means no such clause is currently registered.
	// Spec §7/§8's "empty clause in input" and "falsified unit clause"
	// boundary cases.
	structuralConflict ClauseID
	// structuralConflictCore records whether the clause that set
	// structuralConflict was core (added via AddClause) as opposed to
	// temporary (AddTemporaryClause): only a temporary one is cleared by
	// ClearLearned, since only its own removal from the database can make
	// the formula satisfiable again.
	structuralConflictCore bool
	// structuralCore mirrors explicitCore for the structural case: Solve
	// copies it into explicitCore on the short-circuit path, since
	// structuralConflict's clause is never watched and may have no
	// literals at all for Core's antecedent walk to visit.
	structuralCore []Lit

	deadline    time.Time
	hasDeadline bool
	stopped     bool

	propCount int // drives propagate.go's per-reduceCheckInterval MaybeReduce poll

	Stats Stats
}

// New builds a solver over nbVars variables (identifiers 0..nbVars-1) with
// no clauses yet. Spec §4.7/§6's construction contract; clauses and
// assumptions are added afterward via AddClause/AddTemporaryClause and
// SetAssumptions.
func New(nbVars int, opts Options) (*Solver, error) {
	if nbVars <= 0 {
		return nil, ErrNoVariables
	}
	opts = opts.withDefaults()
	s := &Solver{
		nbVars:             nbVars,
		db:                 newClauseDatabase(nbVars, opts.MaxLearnts),
		trail:              newTrail(nbVars),
		vsids:              newVSIDS(nbVars, opts.VarDecay, opts.PhaseSaving, opts.Seed, opts.RandomPolarity),
		restart:            newRestartController(opts.RestartStrategy, opts.RestartBase),
		stall:              newStallDetector(),
		opts:               opts,
		log:                satlog.Or(opts.Logger),
		structuralConflict: NoClause,
	}
	return s, nil
}

// permanentLevelZero reports whether v's level-0 binding was established
// before the current Solve call — a core or temporary clause's eagerly
// pushed unit, never retracted between solves — as opposed to a live
// assumption or anything propagated from one, which also sits at level 0
// per spec §4.7 but occupies a trail position >= permLen and is exactly
// what truncateTo(s.permLen, ...) retracts at the next Solve. analyze and
// minimizeClause use this, not a bare level==0 check, to decide whether a
// level-0 literal is safe to drop from a learned clause as unconditionally
// true: dropping one that is only true because of this solve's assumptions
// would cache the clause as an unconditional fact and misapply it to a
// later solve with a different assumption set (spec §8's soundness
// contract, §6's incremental-monotonicity property).
func (s *Solver) permanentLevelZero(v Var) bool {
	return s.trail.levelOf(v) == 0 && s.trail.posOf(v) < s.permLen
}

// NewVariable appends a fresh variable to the solver (spec §4.7): the
// clause database, trail, and VSIDS heap all grow to accommodate it, with
// zero activity and no saved phase.
func (s *Solver) NewVariable() Var {
	s.nbVars++
	s.db.NewVariable()
	s.trail.grow()
	return s.vsids.grow()
}

// onUnassign is the trail's backjump callback: a variable that becomes
// unbound again is given back to the decision heap, and — if phase saving
// is enabled — its last value is remembered as the default polarity next
// time it is picked. Spec §4.4's "Backjump to level d" contract.
func (s *Solver) onUnassign(v Var, lastValue bool) {
	if s.opts.PhaseSaving {
		s.vsids.savePhase(v, lastValue)
	}
	s.vsids.reinsert(v)
}

// clauseToVarRatio is fed to choosePolarity's ratio-adaptive randomization
// (spec §4.4/§4.5): the number of slots in the clause database's arena
// (original, temporary and learned clauses, vacant slots included) divided
// by the number of variables, computed once per decision.
func (s *Solver) clauseToVarRatio() float64 {
	if s.nbVars == 0 {
		return 0
	}
	return float64(len(s.db.clauses)) / float64(s.nbVars)
}

// checkDeadline reports whether the solver's timeout, if any, has elapsed
// or whether Stop was called externally. Checked once per decision and
// once per conflict, per spec §6's Set Timeout / abort contract.
func (s *Solver) checkDeadline() bool {
	if s.stopped {
		return true
	}
	if s.hasDeadline && time.Now().After(s.deadline) {
		return true
	}
	return false
}

// Stop requests that any Solve currently in progress return Unknown as soon
// as it next checks in, per spec §6's external stop signal.
func (s *Solver) Stop() { s.stopped = true }

// doRestart performs a level-0 backjump that keeps every learned clause and
// every level-0 assumption, then advances the restart schedule and, when
// the stall detector's shouldReseed says so, resets VSIDS activities and
// rebuilds the decision heap. Spec §4.6.
func (s *Solver) doRestart() {
	s.trail.backjumpTo(0, s.onUnassign)
	s.decisionLevel = 0
	s.restart.restart()
	s.stall.recordRestart()
	s.Stats.NbRestarts++
	if s.stall.shouldReseed() {
		s.vsids.resetActivities()
		s.vsids.rebuild(s.nbVars, s.trail.assigned)
		s.log.Debug("vsids activity reseeded after prolonged stall")
	}
}

// forceStallRestart fires spec §4.4's iteration-count stall trigger,
// independent of the normal Luby/geometric restart schedule: the search has
// gone stallForceRestartIterations iterations without any progress signal,
// so a restart is forced regardless of the conflict-count threshold
// restart.recordConflict tracks. After enough of these in a row without
// progress (stallClearLearnedAfterForcedRestarts), a plain restart clearly
// isn't enough, so this escalates to dropping every learned clause and
// reinitializing VSIDS from scratch instead — backjumping to level 0 first
// so no learned clause being cleared can still be locked as some variable's
// antecedent. Grounded in original_source/src/CDCLSolverIncremental.cpp's
// stuck_counter-triggered restart/consecutive_restarts escalation.
func (s *Solver) forceStallRestart() {
	if s.stall.shouldClearLearned() {
		s.trail.backjumpTo(0, s.onUnassign)
		s.decisionLevel = 0
		s.db.ClearLearned()
		s.vsids.resetActivities()
		s.vsids.rebuild(s.nbVars, s.trail.assigned)
		s.log.Debug("too many consecutive forced restarts, clearing learned clauses and reinitializing VSIDS")
		s.stall.restartForced(true)
		return
	}
	s.doRestart()
	// doRestart bumps Stats.NbRestarts; record that in the detector's
	// snapshot so this forced restart is not itself read as progress.
	s.stall.lastRestarts = s.Stats.NbRestarts
	s.log.Debug("no progress for too many iterations, forcing a restart")
	s.stall.restartForced(false)
}

// isLocked reports whether id is currently the antecedent of its own first
// literal's variable, i.e. deleting it now would leave that trail entry's
// justification dangling. Passed to clauseDatabase.Reduce/MaybeReduce so the
// database never needs its own view of the trail.
func (s *Solver) isLocked(id ClauseID) bool {
	c := s.db.Get(id)
	if c == nil || c.Len() == 0 {
		return false
	}
	v := c.Lit(0).Var()
	return s.trail.assigned(v) && s.trail.reasonOf(v) == id
}

// search runs propagate/analyze/decide until the formula is proven
// satisfiable, proven unsatisfiable under the current assumptions, the
// deadline/stop signal fires, or spec §4.4's stall detection gives up
// (stallDetector.unresolved): a counter that increments every iteration
// without progress in conflicts, decisions, propagations, learned-clause
// count, decision level, or restarts, feeding four thresholds —
// forceStallRestart once 50 iterations pass with no progress,
// a forced partial backjump once 400 iterations are stuck at the same
// decision level, and Unknown once 2000 iterations pass overall. Spec §4's
// top-level algorithm.
func (s *Solver) search() Status {
	for {
		if s.checkDeadline() {
			return Unknown
		}

		s.stall.observeIteration(s.Stats.NbConflicts, s.Stats.NbDecisions, s.Stats.NbPropagations, s.db.LearnedCount(), s.Stats.NbRestarts, s.decisionLevel)
		if s.stall.forceRestartDue() {
			s.forceStallRestart()
		}
		if s.stall.forceBackjumpDue() {
			target := s.decisionLevel - 1
			if target < 0 {
				target = 0
			}
			s.trail.backjumpTo(target, s.onUnassign)
			s.decisionLevel = target
			s.stall.backjumpForced()
			s.log.Debug("stuck at one decision level too long, forcing a partial backjump")
		}
		if s.stall.unresolved() {
			return Unknown
		}

		confl := s.propagate()
		if confl != NoClause {
			s.Stats.NbConflicts++
			s.stall.recordConflict()
			if s.decisionLevel == 0 {
				s.lastConflict = confl
				return Unsat
			}
			learned, backLvl, lbd := s.analyze(confl)
			s.trail.backjumpTo(backLvl, s.onUnassign)
			s.decisionLevel = backLvl

			if len(learned) == 1 {
				s.trail.push(learned[0], 0, NoClause, false)
			} else {
				id := s.db.AddLearned(learned, lbd)
				s.trail.push(learned[0], backLvl, id, false)
				s.Stats.NbLearned++
				s.Stats.NbDeleted += s.db.MaybeReduce(s.trail.litStatus, s.isLocked)
			}

			if s.restart.recordConflict() {
				s.doRestart()
			}
			continue
		}

		v, ok := s.vsids.pick(s.trail.assigned)
		if !ok {
			return Sat
		}
		s.decisionLevel++
		if s.decisionLevel > s.Stats.MaxDecisionLevel {
			s.Stats.MaxDecisionLevel = s.decisionLevel
		}
		ratio := s.clauseToVarRatio()
		stalled := s.stall.isStalled()
		positive := s.vsids.choosePolarity(v, ratio, stalled)
		lit := v.SignedLit(!positive)
		s.trail.push(lit, s.decisionLevel, NoClause, true)
		s.Stats.NbDecisions++
	}
}

// Model returns the current satisfying assignment as a slice indexed by
// Var, valid only immediately after search returns Sat. True/false mirror
// the trail's assignment; the value for a variable never assigned by the
// search (possible if NewVariable outpaced clause additions) is reported
// as false.
func (s *Solver) Model() []bool {
	m := make([]bool, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		m[v] = s.trail.assign[v] > 0
	}
	return m
}
