package solver

// FromClauses builds a Solver over nbVars variables and interns every
// clause in clauses as an original constraint, in order. It is a
// convenience for callers (and tests) that already have a full clause set
// in hand rather than adding clauses one at a time; parsing any on-disk or
// wire representation into that clause set is out of scope here — spec's
// input-format Non-goal — so this is the one remaining piece of the
// teacher's Problem type (solver/formula.go, renamed from problem.go) kept
// after dropping its DIMACS/pseudo-boolean simplify/simplifyPB
// preprocessing, which existed only to support the parser this rewrite
// does not have.
//
// If a clause is empty, or is a unit clause whose literal is already
// falsified by an earlier unit clause, the returned Solver's Status is
// Unsat, the remaining clauses are not added, and further Solve calls
// return Unsat immediately without search. No propagation runs while the
// clauses are added, so any other contradiction is found by Solve.
func FromClauses(nbVars int, clauses [][]Lit, opts Options) (*Solver, error) {
	s, err := New(nbVars, opts)
	if err != nil {
		return nil, err
	}
	for _, lits := range clauses {
		if _, err := s.AddClause(lits); err != nil {
			return nil, err
		}
		if s.status == Unsat {
			break
		}
	}
	return s, nil
}
