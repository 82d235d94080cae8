package solver

// reduceCheckInterval is how many propagated literals pass between
// opportunistic MaybeReduce polls, mirroring
// original_source/include/ClauseDatabase.h's periodic reduceDB trigger
// (see SPEC_FULL.md §4's note on the two reduce call sites).
const reduceCheckInterval = 1000

// propagate implements spec §4.2's unit-propagation loop: drain the trail's
// unprocessed prefix, and for each newly-true literal ℓ, find every clause
// watching ℓ' = ¬ℓ (now falsified) and either find it a new watch, discover
// it is unit and enqueue the forced literal, or discover it is fully
// falsified and report the conflicting ClauseID.
//
// Grounded in the teacher's unifyLiteral/simplifyClause (solver/solver.go),
// stripped of cardinality-constraint bookkeeping (spec's plain-CNF-only
// scope) and rewritten around ClauseID lookups instead of *Clause slices
// held directly in per-literal buckets.
func (s *Solver) propagate() ClauseID {
	for {
		lit, ok := s.trail.nextPropagated()
		if !ok {
			return NoClause
		}
		s.Stats.NbPropagations++
		s.propCount++
		if s.propCount%reduceCheckInterval == 0 {
			s.Stats.NbDeleted += s.db.MaybeReduce(s.trail.litStatus, s.isLocked)
		}

		falsified := lit.Negation()
		ws := s.db.WatchesOf(falsified)

		// keep compacts falsified's bucket in place: a clause stays in it
		// (appended to keep) unless it is migrated to a different watch
		// literal, in which case simply not appending it here is what
		// removes it — MigrateWatch only adds it to the new bucket, it
		// never touches this one, precisely to avoid a second mutation of
		// the same backing array this loop is compacting.
		keep := ws[:0]
		conflict := NoClause
		for i := 0; i < len(ws); i++ {
			id := ws[i]
			c := s.db.Get(id)
			if c == nil {
				continue
			}

			slotIdx := c.SlotOf(falsified)
			if slotIdx < 0 {
				// Stale entry from a prior migration; drop it.
				continue
			}
			otherIdx := 1 - slotIdx
			otherLit := c.Watched(otherIdx)

			if s.trail.litStatus(otherLit) == Sat {
				keep = append(keep, id)
				continue
			}

			// Search for a replacement watch among the non-watched literals.
			newPos := -1
			w0, w1 := c.Watched(0), c.Watched(1)
			for k := 0; k < c.Len(); k++ {
				cand := c.Lit(k)
				if cand == w0 || cand == w1 {
					continue
				}
				if s.trail.litStatus(cand) != Unsat {
					newPos = k
					break
				}
			}

			if newPos >= 0 {
				newLit := c.Lit(newPos)
				s.db.MigrateWatch(id, slotIdx, newLit, newPos)
				continue
			}

			// No replacement: clause is unit on otherLit, or fully falsified.
			keep = append(keep, id)
			if s.trail.litStatus(otherLit) == Unsat {
				conflict = id
				// Copy the remaining untouched watchers back so the bucket
				// stays consistent; stop scanning further, the search loop
				// will backjump before touching this bucket again.
				for j := i + 1; j < len(ws); j++ {
					keep = append(keep, ws[j])
				}
				s.db.SetWatches(falsified, keep)
				return conflict
			}
			s.trail.push(otherLit, s.trail.levelOf(lit.Var()), id, false)
		}
		s.db.SetWatches(falsified, keep)
	}
}
