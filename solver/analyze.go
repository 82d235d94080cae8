package solver

// analyze implements spec §4.3's first-UIP conflict analysis: walk the
// trail backward from the conflicting clause, resolving in each falsified
// antecedent until exactly one literal from the current decision level
// remains, then minimize the result and compute its backjump level and LBD.
//
// Grounded in the teacher's learnClause/addClauseLits (renamed from
// solver/learn.go), reworked around the ClauseID-addressed clauseDatabase
// and trail types instead of *Clause/model/reason slices held directly on
// Solver, and dropping the cardinality-aware "lits might be true in the
// conflict clause" skip since spec's scope is plain CNF only.
func (s *Solver) analyze(confl ClauseID) (learned []Lit, backjumpLevel int, lbd int) {
	nbVars := len(s.trail.assign)
	seen := make([]bool, nbVars)
	curLevel := s.trail.last().level

	learned = append(learned, 0) // placeholder for the asserting (UIP) literal
	counter := 0
	var p Lit
	pSet := false
	idx := s.trail.Len() - 1
	c := s.db.Get(confl)

	for {
		s.db.BumpActivity(confl)
		for i := 0; i < c.Len(); i++ {
			l := c.Lit(i)
			if pSet && l == p {
				continue
			}
			v := l.Var()
			if seen[v] {
				continue
			}
			// A level-0 fact established before this Solve call is
			// unconditionally true and drops out of the clause entirely, same
			// as the teacher's plain level-0 skip. A level-0 literal bound
			// only for this solve — a live assumption, or anything
			// propagated from one before the first decision — is not
			// unconditional, so spec §4.3's "literals corresponding to
			// current assumptions... are preserved verbatim" routes it
			// through the normal append-to-learned path below instead of
			// being silently dropped.
			if s.permanentLevelZero(v) {
				continue
			}
			seen[v] = true
			s.vsids.bump(v)
			if s.trail.levelOf(v) >= curLevel {
				counter++
			} else {
				learned = append(learned, l)
			}
		}

		for !seen[s.trail.at(idx).lit.Var()] {
			idx--
		}
		v := s.trail.at(idx).lit.Var()
		p = s.trail.at(idx).lit
		pSet = true
		idx--
		seen[v] = false
		counter--
		if counter == 0 {
			break
		}
		confl = s.trail.reasonOf(v)
		c = s.db.Get(confl)
	}
	learned[0] = p.Negation()

	s.vsids.decay()
	s.db.DecayActivities()

	learned = s.minimizeClause(learned, seen)

	if len(learned) == 1 {
		return learned, 0, 1
	}
	backjumpLevel = 0
	maxIdx := 1
	for i := 1; i < len(learned); i++ {
		lvl := s.trail.levelOf(learned[i].Var())
		if lvl > backjumpLevel {
			backjumpLevel = lvl
			maxIdx = i
		}
	}
	learned[1], learned[maxIdx] = learned[maxIdx], learned[1]

	lbd = s.db.ComputeLBD(learned, s.trail.levelOf)
	return learned, backjumpLevel, lbd
}
