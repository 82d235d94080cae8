package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lits(ints ...int) []Lit {
	ls := make([]Lit, len(ints))
	for i, n := range ints {
		ls[i] = IntToLit(n)
	}
	return ls
}

// verifySatisfied checks model (as returned by Solver.Model) satisfies
// every clause in cnf, where each clause is given as signed int literals.
func verifySatisfied(t *testing.T, model []bool, cnf [][]int) {
	t.Helper()
	for _, clause := range cnf {
		ok := false
		for _, n := range clause {
			l := IntToLit(n)
			if model[l.Var()] == l.IsPositive() {
				ok = true
				break
			}
		}
		assert.Truef(t, ok, "clause %v not satisfied by model %v", clause, model)
	}
}

func TestSolveSatSoundness(t *testing.T) {
	cnf := [][]int{{1, 2, 3}, {-1, -4}, {-2, 3, 4}, {-3, 1}}
	s, err := New(4, NewOptions())
	require.NoError(t, err)
	for _, c := range cnf {
		_, err := s.AddClause(lits(c...))
		require.NoError(t, err)
	}
	status := s.Solve()
	require.Equal(t, Sat, status)
	verifySatisfied(t, s.Model(), cnf)
}

func TestSolveUnsatTrivial(t *testing.T) {
	s, err := New(1, NewOptions())
	require.NoError(t, err)
	_, err = s.AddClause(lits(1))
	require.NoError(t, err)
	_, err = s.AddClause(lits(-1))
	require.NoError(t, err)
	assert.Equal(t, Unsat, s.Solve())
}

// TestSolveUnsatPigeonhole checks completeness on a small hard instance:
// four pigeons, three holes, each pigeon in exactly one hole, no hole
// shared. Variable v(p,h) = 3*(p-1)+h for p in 1..4, h in 1..3.
func TestSolveUnsatPigeonhole(t *testing.T) {
	v := func(p, h int) int { return 3*(p-1) + h }
	var cnf [][]int
	for p := 1; p <= 4; p++ {
		var atLeastOne []int
		for h := 1; h <= 3; h++ {
			atLeastOne = append(atLeastOne, v(p, h))
		}
		cnf = append(cnf, atLeastOne)
	}
	for h := 1; h <= 3; h++ {
		for p1 := 1; p1 <= 4; p1++ {
			for p2 := p1 + 1; p2 <= 4; p2++ {
				cnf = append(cnf, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}
	s, err := New(12, NewOptions())
	require.NoError(t, err)
	for _, c := range cnf {
		_, err := s.AddClause(lits(c...))
		require.NoError(t, err)
	}
	assert.Equal(t, Unsat, s.Solve())
}

func TestAssumptionsAndCore(t *testing.T) {
	cnf := [][]int{{1, 2}, {-1, 3}}
	s, err := New(3, NewOptions())
	require.NoError(t, err)
	for _, c := range cnf {
		_, err := s.AddClause(lits(c...))
		require.NoError(t, err)
	}

	require.NoError(t, s.SetAssumptions(lits(-2, -3, -1)))
	status := s.Solve()
	require.Equal(t, Unsat, status)
	core := s.Core()
	assert.NotEmpty(t, core)

	// Retracting the assumptions must actually retract their effect on the
	// trail, not just the caller-visible assumption list: a stale -1/-2/-3
	// left bound at level 0 would make the next solve wrongly report Sat
	// over a model that still violates {1, 2}.
	s.ClearAssumptions()
	require.Equal(t, Sat, s.Solve())
	verifySatisfied(t, s.Model(), cnf)
}

// TestAssumptionsDoNotLeakAcrossSolves exercises the same retraction
// discipline from the other direction: a variable forced true by an
// assumption in one solve must be free again once that assumption is
// dropped, even though spec §4.7 places assumptions at decision level 0
// alongside genuinely permanent facts.
func TestAssumptionsDoNotLeakAcrossSolves(t *testing.T) {
	s, err := New(1, NewOptions())
	require.NoError(t, err)

	require.NoError(t, s.SetAssumptions(lits(1)))
	require.Equal(t, Sat, s.Solve())
	assert.True(t, s.Model()[IntToVar(1)])

	require.NoError(t, s.SetAssumptions(lits(-1)))
	require.Equal(t, Sat, s.Solve())
	assert.False(t, s.Model()[IntToVar(1)])
}

func TestSetAssumptionsRejectsContradiction(t *testing.T) {
	s, err := New(2, NewOptions())
	require.NoError(t, err)
	err = s.SetAssumptions(lits(1, -1))
	assert.ErrorIs(t, err, ErrContradictoryAssumptions)
}

// TestContradictoryAssumptionAgainstPriorFactHasCore covers spec §4.7 step
// 2 and §7's "contradictory assumptions" row for the case where the
// contradiction is with a previously asserted permanent fact rather than
// another assumption, a path distinct from SetAssumptions' own
// self-contradiction check above: Core must still report the offending
// assumption instead of nil, since no clause mediates this conflict for
// the usual antecedent walk to follow.
func TestContradictoryAssumptionAgainstPriorFactHasCore(t *testing.T) {
	s, err := New(1, NewOptions())
	require.NoError(t, err)
	_, err = s.AddClause(lits(1))
	require.NoError(t, err)

	require.NoError(t, s.SetAssumptions(lits(-1)))
	require.Equal(t, Unsat, s.Solve())
	assert.Equal(t, lits(-1), s.Core())
}

// TestLearnedClauseUnderAssumptionDoesNotLeak exercises spec §4.3's
// assumption-preservation requirement through an actual multi-decision
// conflict, not just a level-0 propagation: every clause below is gated
// behind ¬g so that assuming g forces a genuine pigeonhole contradiction
// (3 pigeons into 2 holes) the solver can only refute by deciding,
// conflicting, and learning along the way. Clearing the assumption
// afterward must free the formula back to trivially satisfiable; it would
// stay wrongly Unsat if any lemma learned under g had silently dropped its
// dependency on g and been cached as an unconditional fact.
func TestLearnedClauseUnderAssumptionDoesNotLeak(t *testing.T) {
	cnf := [][]int{
		{-1, 2, 3}, {-1, 4, 5}, {-1, 6, 7},
		{-1, -2, -4}, {-1, -2, -6}, {-1, -4, -6},
		{-1, -3, -5}, {-1, -3, -7}, {-1, -5, -7},
	}
	s, err := New(7, NewOptions())
	require.NoError(t, err)
	for _, c := range cnf {
		_, err := s.AddClause(lits(c...))
		require.NoError(t, err)
	}

	require.NoError(t, s.SetAssumptions(lits(1)))
	require.Equal(t, Unsat, s.Solve())

	require.NoError(t, s.SetAssumptions(lits(-1)))
	require.Equal(t, Sat, s.Solve())
}

// TestIncrementalMonotonicity checks that clauses and learned lemmas
// accumulated in one Solve call remain in force in the next: tightening
// the formula between calls can only shrink the solution space.
func TestIncrementalMonotonicity(t *testing.T) {
	s, err := New(3, NewOptions())
	require.NoError(t, err)
	_, err = s.AddClause(lits(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, Sat, s.Solve())

	_, err = s.AddClause(lits(-1))
	require.NoError(t, err)
	_, err = s.AddClause(lits(-2))
	require.NoError(t, err)
	require.Equal(t, Sat, s.Solve())
	assert.True(t, s.Model()[IntToVar(3)])

	_, err = s.AddClause(lits(-3))
	require.NoError(t, err)
	assert.Equal(t, Unsat, s.Solve())
}

func TestRestartStrategyInvariance(t *testing.T) {
	cnf := [][]int{{1, 2, 3}, {-1, -4}, {-2, 3, 4}, {-3, 1}, {2, -3, -4}}
	build := func() *Solver {
		s, err := New(4, NewOptions())
		require.NoError(t, err)
		for _, c := range cnf {
			_, err := s.AddClause(lits(c...))
			require.NoError(t, err)
		}
		return s
	}

	sLuby := build()
	sLuby.SetRestart(RestartLuby, 1)
	statusLuby := sLuby.Solve()

	sGeo := build()
	sGeo.SetRestart(RestartGeometric, 1)
	statusGeo := sGeo.Solve()

	assert.Equal(t, statusLuby, statusGeo)
	if statusLuby == Sat {
		verifySatisfied(t, sLuby.Model(), cnf)
		verifySatisfied(t, sGeo.Model(), cnf)
	}
}

func TestNewVariableExpandsSolver(t *testing.T) {
	s, err := New(1, NewOptions())
	require.NoError(t, err)
	v := s.NewVariable()
	assert.Equal(t, Var(1), v)
	_, err = s.AddClause([]Lit{v.SignedLit(false)})
	require.NoError(t, err)
	require.Equal(t, Sat, s.Solve())
	assert.True(t, s.Model()[v])
}

func TestClearLearnedDropsLearnedClauses(t *testing.T) {
	s, err := New(4, NewOptions())
	require.NoError(t, err)
	for _, c := range [][]int{{1, 2, 3}, {-1, -4}, {-2, 3, 4}, {-3, 1}, {2, -3, -4}} {
		_, err := s.AddClause(lits(c...))
		require.NoError(t, err)
	}
	s.Solve()
	s.ClearLearned()
	assert.Equal(t, 0, s.db.LearnedCount())
}

func TestAddClauseValidatesLiterals(t *testing.T) {
	s, err := New(2, NewOptions())
	require.NoError(t, err)
	_, err = s.AddClause(lits(5))
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

// TestAddEmptyClauseIsUnsat covers spec §7/§8's boundary case: an empty
// clause is not an API misuse (nil and a zero-length slice validate the
// same as any other literal list, with nothing to range over) but an
// immediate, standing contradiction — Solve must report Unsat without
// even running search, and Core must come back empty since no assumption
// is to blame.
func TestAddEmptyClauseIsUnsat(t *testing.T) {
	s, err := New(2, NewOptions())
	require.NoError(t, err)
	_, err = s.AddClause(lits(1, 2))
	require.NoError(t, err)

	_, err = s.AddClause(nil)
	require.NoError(t, err)

	assert.Equal(t, Unsat, s.Solve())
	assert.Empty(t, s.Core())
}

func TestTimeoutReturnsUnknown(t *testing.T) {
	s, err := New(1, NewOptions())
	require.NoError(t, err)
	// Simulate an already-elapsed deadline directly rather than via
	// SetTimeout, since SetTimeout treats d <= 0 as "no deadline" and this
	// needs the check to fail on the very first checkDeadline call inside
	// search().
	s.deadline = time.Now().Add(-time.Second)
	s.hasDeadline = true
	assert.Equal(t, Unknown, s.Solve())
}
