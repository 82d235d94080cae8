package solver

import "time"

// minimizeRecursionCap bounds litRedundant's depth (spec §4.3's minimizer:
// "recursion depth capped at 100 to bound worst-case blowup on pathological
// antecedent chains").
const minimizeRecursionCap = 100

// minimizeBudget bounds the wall-clock time minimizeClause may spend; once
// exceeded it stops attempting further removals and returns whatever it has
// simplified so far, rather than block the search loop on a rare
// pathological clause.
const minimizeBudget = 100 * time.Millisecond

// minimizeClause implements spec §4.3's clause minimization: literal i (i>0)
// is dropped from a learned clause if it is "redundant" — implied by
// literals already in the clause via its antecedent chain — checked with a
// depth-capped recursive walk (self-subsumption), followed by a bounded
// binary-resolution pass that tries to drop a literal by resolving the
// clause against a binary clause covering its complement.
//
// Grounded in the teacher's minimizeLearned (renamed from solver/learn.go),
// generalized from the teacher's flat single-level reason-clause scan to
// the recursive multi-level check spec §4.3 calls for, since the teacher
// never follows a reason's own reasons.
func (s *Solver) minimizeClause(lits []Lit, seen []bool) []Lit {
	deadline := time.Now().Add(minimizeBudget)
	out := lits[:1]
	for i := 1; i < len(lits); i++ {
		l := lits[i]
		if time.Now().After(deadline) {
			out = append(out, lits[i:]...)
			break
		}
		if s.trail.reasonOf(l.Var()) == NoClause || !s.litRedundant(l, seen, 0) {
			out = append(out, l)
		}
	}
	out = s.binaryResolutionMinimize(out, deadline)
	return out
}

// litRedundant reports whether l's assignment is implied by literals
// already marked seen, by recursively checking that every other literal in
// l's antecedent is either already seen, a permanent level-0 fact (hence
// always true, per Solver.permanentLevelZero), or itself redundant by the
// same test. depth bounds recursion per minimizeRecursionCap.
func (s *Solver) litRedundant(l Lit, seen []bool, depth int) bool {
	if depth >= minimizeRecursionCap {
		return false
	}
	reason := s.trail.reasonOf(l.Var())
	if reason == NoClause {
		return false
	}
	c := s.db.Get(reason)
	if c == nil {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		lit := c.Lit(i)
		v := lit.Var()
		if v == l.Var() {
			continue
		}
		if seen[v] {
			continue
		}
		if s.permanentLevelZero(v) {
			continue
		}
		if s.trail.reasonOf(v) == NoClause {
			return false
		}
		if !s.litRedundant(lit, seen, depth+1) {
			return false
		}
	}
	seen[l.Var()] = true
	return true
}

// binaryResolutionMinimize tries a second, cheaper minimization pass: for
// each literal in the clause, if some binary clause watches its negation
// paired with another literal still in the clause, the literal is
// subsumed by resolution and can be dropped. Spec §4.3's optional bounded
// binary-resolution pass; grounded in the same watch lists the propagator
// uses, since a binary clause's non-watched-away literal is always one of
// its two watches.
func (s *Solver) binaryResolutionMinimize(lits []Lit, deadline time.Time) []Lit {
	if len(lits) < 2 {
		return lits
	}
	present := make(map[Lit]bool, len(lits))
	for _, l := range lits {
		present[l] = true
	}
	out := lits[:1]
	for i := 1; i < len(lits); i++ {
		l := lits[i]
		if time.Now().After(deadline) {
			out = append(out, lits[i:]...)
			break
		}
		if s.binarySubsumed(l, present) {
			delete(present, l)
			continue
		}
		out = append(out, l)
	}
	return out
}

// binarySubsumed reports whether l can be dropped from the learned clause
// because a binary clause {¬l, m} exists with m already present in the
// clause: resolving the learned clause with that binary clause on l
// eliminates l without adding any new literal.
func (s *Solver) binarySubsumed(l Lit, present map[Lit]bool) bool {
	for _, id := range s.db.WatchesOf(l.Negation()) {
		c := s.db.Get(id)
		if c == nil || c.Len() != 2 {
			continue
		}
		other := c.Lit(0)
		if other == l.Negation() {
			other = c.Lit(1)
		}
		if present[other] {
			return true
		}
	}
	return false
}
