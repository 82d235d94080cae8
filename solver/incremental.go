package solver

import "time"

// This file is the external incremental API spec §6 and §8 describe:
// building up a formula clause by clause, solving it repeatedly under
// different assumptions, and reusing all learned clauses across those
// solves. Grounded in the teacher's Interface/ModelMap/Result trio (this
// file, renamed from solver/interface.go), replaced by direct methods on
// *Solver operating on the ClauseID/trail/clauseDatabase types the rest of
// this package now uses instead of the teacher's *Clause/Model slices and
// its Optimal/Enumerate optimization-oriented Interface.

// AddClause interns lits as a permanent (core) constraint. It may be called
// before or between Solve calls; a unit clause is asserted immediately, a
// unit clause that is already falsified by the level-0 assignment puts the
// solver into a standing Unsat state that persists across future Solve
// calls until the solver is rebuilt, and an empty clause does the same with
// an empty Core() — spec §7/§8's "empty clause in input" boundary case.
func (s *Solver) AddClause(lits []Lit) (ClauseID, error) {
	return s.addClause(lits, true)
}

// AddTemporaryClause interns lits as a temporary constraint (core=false):
// it participates in solving like any other clause but, unlike an original
// constraint, is dropped by ClearLearned. Spec §6's add_temporary_clause.
func (s *Solver) AddTemporaryClause(lits []Lit) (ClauseID, error) {
	return s.addClause(lits, false)
}

func (s *Solver) addClause(lits []Lit, core bool) (ClauseID, error) {
	if err := s.validateLits(lits); err != nil {
		return NoClause, err
	}
	// Retract whatever the previous solve's assumptions and search left on
	// the trail before asserting anything new, so the eager unit push below
	// never lands on top of stale per-solve state (and never gets mistaken
	// for permanent the next time permLen advances).
	s.trail.truncateTo(s.permLen, s.onUnassign)
	s.decisionLevel = 0

	id := s.db.AddClause(lits, core)
	s.vsids.recordOccurrence(lits)
	s.trail.resetCursor()
	switch len(lits) {
	case 0:
		// An empty clause is trivially falsified by any assignment — spec
		// §7/§8's "empty clause in input → UNSAT... with empty core", not an
		// API error: there is no literal left to watch or to push, so the
		// solver just stands permanently UNSAT with nothing to blame it on.
		// It is never watched (watch() skips Len() < 2), so this has to be
		// recorded in structuralConflict for Solve to find again later —
		// propagate/search have no way to rediscover it on their own.
		s.status = Unsat
		s.lastConflict = NoClause
		s.explicitCore = []Lit{}
		s.recordStructuralConflict(id, core, []Lit{})
	case 1:
		l := lits[0]
		switch s.trail.litStatus(l) {
		case Unsat:
			// Same reasoning as the empty-clause case: a unit clause is
			// never watched either, so this falsification is invisible to
			// propagate/search and must be remembered independently of the
			// trail/search-facing status fields Solve resets on every call.
			s.status = Unsat
			s.lastConflict = id
			s.explicitCore = nil
			s.recordStructuralConflict(id, core, nil)
		case Indet:
			s.trail.push(l, 0, id, false)
			s.permLen = s.trail.Len()
		}
	}
	return id, nil
}

// recordStructuralConflict registers the first clause found unsatisfiable
// at AddClause/AddTemporaryClause time, so Solve can report Unsat on every
// future call without relying on propagate/search to rediscover a clause
// that is never watched. A later structural conflict is ignored once one is
// already recorded: the earliest one is sufficient to keep every subsequent
// Solve call Unsat, and a core conflict must never be overwritten by one
// found later under a temporary clause, since only the core one is
// permanent.
func (s *Solver) recordStructuralConflict(id ClauseID, core bool, explicit []Lit) {
	if s.structuralConflict != NoClause {
		return
	}
	s.structuralConflict = id
	s.structuralConflictCore = core
	s.structuralCore = explicit
}

func (s *Solver) validateLits(lits []Lit) error {
	for _, l := range lits {
		v := int(l.Var())
		if v < 0 || v >= s.nbVars {
			return ErrInvalidLiteral
		}
	}
	return nil
}

// SetAssumptions replaces the solver's assumption set, checked for internal
// consistency (no variable assumed both true and false) but not yet against
// the current assignment — that check happens lazily at the next Solve, per
// spec §6's set_assumptions.
func (s *Solver) SetAssumptions(lits []Lit) error {
	if err := s.validateLits(lits); err != nil {
		return err
	}
	seen := make(map[Lit]bool, len(lits))
	for _, l := range lits {
		if seen[l.Negation()] {
			return ErrContradictoryAssumptions
		}
		seen[l] = true
	}
	s.assumptions = append(s.assumptions[:0:0], lits...)
	return nil
}

// ClearAssumptions drops every current assumption; the next Solve call
// behaves as an unconditional solve of the accumulated clause set.
func (s *Solver) ClearAssumptions() {
	s.assumptions = nil
}

// SetTimeout sets an absolute deadline d from now; every Solve call that is
// still running when it passes returns Unknown, and a Solve started after
// it has passed returns Unknown at its first deadline check. The deadline
// is not renewed per Solve call. d <= 0 disables the deadline. Spec §6's
// set_timeout.
func (s *Solver) SetTimeout(d time.Duration) {
	if d <= 0 {
		s.hasDeadline = false
		return
	}
	s.deadline = time.Now().Add(d)
	s.hasDeadline = true
}

// SetVarDecay updates the VSIDS decay factor used by future bumps. Spec
// §6's set_var_decay.
func (s *Solver) SetVarDecay(decay float64) {
	s.opts.VarDecay = decay
	s.vsids.varDecay = decay
}

// SetRestart switches the restart schedule strategy and base immediately:
// the schedule starts over and the conflicts counted toward the next
// restart are reset to zero. Spec §6's set_restart.
func (s *Solver) SetRestart(strategy RestartStrategy, base int) {
	s.opts.RestartStrategy = strategy
	s.opts.RestartBase = base
	s.restart.setStrategy(strategy, base)
}

// SetMaxLearnts updates the learned-clause population cap enforced by
// MaybeReduce. Spec §6's set_max_learnts.
func (s *Solver) SetMaxLearnts(cap int) {
	s.opts.MaxLearnts = cap
	s.db.SetMaxLearnts(cap)
}

// ClearLearned drops every learned and temporary clause, keeping only
// original constraints; useful between unrelated incremental problems that
// share a variable pool. Spec §6's clear_learned.
func (s *Solver) ClearLearned() {
	s.db.ClearLearned()
	// Units from temporary clauses also sat below permLen, so rebuild the
	// permanent prefix from the unit clauses that survived.
	s.trail.truncateTo(0, s.onUnassign)
	for id, c := range s.db.clauses {
		if c != nil && c.Len() == 1 && s.trail.litStatus(c.Lit(0)) == Indet {
			s.trail.push(c.Lit(0), 0, ClauseID(id), false)
		}
	}
	s.permLen = s.trail.Len()
	s.decisionLevel = 0
	s.trail.resetCursor()
	// A structural conflict set by a temporary clause is removed along with
	// that clause above; a core one is a permanent contradiction and must
	// survive ClearLearned exactly like any other original constraint.
	if s.structuralConflict != NoClause && !s.structuralConflictCore {
		s.structuralConflict = NoClause
		s.structuralCore = nil
	}
}

// Statistics returns a snapshot of the solver's cumulative counters. Spec
// §6's statistics.
func (s *Solver) Statistics() Stats { return s.Stats }

// ApproxMemoryBytes exposes the clause database's memory estimate, used by
// the portfolio manager to report a worker's advisory peak-memory counter
// (spec §4.9).
func (s *Solver) ApproxMemoryBytes() int64 { return s.db.ApproxMemoryBytes() }

// Status returns the outcome of the most recent Solve call, or Indet if
// Solve has never been called.
func (s *Solver) Status() Status { return s.status }

// Solve runs the search to completion under the current assumption set,
// reusing every clause (original, temporary, and learned) accumulated so
// far. It retracts the trail to its permanent prefix (the asserted unit
// clauses), undoing both the search and the level-0 assumptions left over
// from a previous Solve call, before asserting the current assumptions,
// per spec §6's
// incremental-monotonicity contract: prior learned clauses remain valid
// because they were derived only from clauses still present in the
// database.
//
// A clause found unsatisfiable by itself when it was added (an empty
// clause, or a unit clause already falsified at level 0) short-circuits
// straight to Unsat here, independent of assumptions and without running
// search: that clause was never watched, so search has no way to
// rediscover it once this method's own per-call reset below runs.
func (s *Solver) Solve() Status {
	if s.structuralConflict != NoClause {
		s.status = Unsat
		s.Stats.NbSolves++
		s.lastConflict = s.structuralConflict
		s.explicitCore = s.structuralCore
		return Unsat
	}

	s.trail.truncateTo(s.permLen, s.onUnassign)
	s.decisionLevel = 0
	s.stopped = false
	s.lastConflict = NoClause
	s.explicitCore = nil

	for _, a := range s.assumptions {
		switch s.trail.litStatus(a) {
		case Sat:
			continue
		case Unsat:
			s.status = Unsat
			s.Stats.NbSolves++
			s.explicitCore = s.contradictionCore(a)
			return Unsat
		default:
			s.trail.push(a, 0, NoClause, true)
		}
	}

	s.Stats.NbSolves++
	st := s.search()
	s.status = st
	return st
}

// contradictionCore builds the UNSAT core for the case where assumption a
// directly contradicts a literal already bound at level 0 before search
// ever runs (spec §4.7 step 2, §7's "Contradictory assumptions" row): no
// clause mediates the conflict, so Core's antecedent walk has nothing to
// walk from. If the prior literal is itself a live assumption, the pair is
// exactly the minimal core (spec §7: "Core is exactly the contradictory
// pair"); if it is a permanent/temporary fact instead, a alone already
// suffices, since that fact holds regardless of any assumption and a
// level-0 non-decision must not appear in the core (§9's note 3).
func (s *Solver) contradictionCore(a Lit) []Lit {
	e := s.trail.at(s.trail.posOf(a.Var()))
	if e.level == 0 && e.isDecision {
		return []Lit{a, e.lit}
	}
	return []Lit{a}
}

// Core returns the subset of the current assumptions that participated in
// deriving the conflict from the most recent Unsat Solve call, or nil if
// the last Solve did not return Unsat. Spec §6's unsat_core / §9's
// resolution of the dedicated-conflict-id design: extraction walks the
// antecedent chain from lastConflict down to level 0, and only trail
// entries that are both at level 0 and marked isDecision (i.e. asserted
// assumptions, never plain propagated facts) are reported.
func (s *Solver) Core() []Lit {
	if s.status != Unsat {
		return nil
	}
	if s.explicitCore != nil {
		return append([]Lit(nil), s.explicitCore...)
	}
	if s.lastConflict == NoClause {
		return nil
	}
	c := s.db.Get(s.lastConflict)
	if c == nil {
		return nil
	}
	seen := make([]bool, s.nbVars)
	var core []Lit
	var visit func(v Var)
	visit = func(v Var) {
		if seen[v] {
			return
		}
		seen[v] = true
		reason := s.trail.reasonOf(v)
		if reason == NoClause {
			if !s.trail.assigned(v) {
				return
			}
			e := s.trail.at(s.trail.posOf(v))
			if e.level == 0 && e.isDecision {
				core = append(core, e.lit)
			}
			return
		}
		rc := s.db.Get(reason)
		if rc == nil {
			return
		}
		for i := 0; i < rc.Len(); i++ {
			visit(rc.Lit(i).Var())
		}
	}
	for i := 0; i < c.Len(); i++ {
		visit(c.Lit(i).Var())
	}
	return core
}
