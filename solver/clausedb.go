package solver

import "sort"

// Soft memory ceiling: spec §4.1's "constant in the source: 1 GB". Advisory
// only — MaybeReduce is a hint to reclaim space, never a hard abort.
const memoryCeilingBytes = 1 << 30

// lowLBDThreshold is spec §4.1's "constant ≈ 2.5" for clauses reduce()
// always preserves; since LBD is an integer, "≤ 2.5" is "≤ 2".
const lowLBDThreshold = 2

const (
	clauseDecay          = 0.999 // teacher's solver/solver.go clauseDecay constant
	defaultInitMaxLearnt = 2000  // teacher's initNbMaxClauses
	reduceTargetFraction = 0.75  // shrink back to 3/4 of the cap, per spec §4.1
)

// clauseDatabase owns every clause (C1+C2). It is the sole mutator of
// clause storage and watch lists; everything else (trail antecedents,
// UNSAT-core extraction, the propagator) only ever holds a ClauseID and
// looks it up here.
//
// Grounded in the teacher's watcherList (solver/watcher.go), but clauses
// are now addressed by a stable ClauseID handle into a growable arena
// (nil entries are vacant slots) instead of *Clause pointers stored
// directly in per-literal slices — the arena-with-identifiers shape is
// grounded in togatoga-gatosat's ClauseAllocator/ClauseReference, whose own
// comment flags the map-based version as something "we should replace...
// with the array", which is exactly what this version does.
type clauseDatabase struct {
	clauses []*Clause  // arena; nil = vacant slot
	free    []ClauseID // reusable vacant slot ids

	watches [][]ClauseID // one bucket per literal (2*nbVars buckets); watches[l] holds ids of clauses watching l

	nbVars     int
	nbLearned  int
	maxLearnts int
	clauseInc  float32
}

func newClauseDatabase(nbVars, maxLearnts int) *clauseDatabase {
	if maxLearnts <= 0 {
		maxLearnts = defaultInitMaxLearnt
	}
	return &clauseDatabase{
		watches:    make([][]ClauseID, nbVars*2),
		nbVars:     nbVars,
		maxLearnts: maxLearnts,
		clauseInc:  1.0,
	}
}

// NewVariable extends watch storage for a freshly introduced variable and
// returns its identifier. Spec §4.7/§4.1's new_variable.
func (db *clauseDatabase) NewVariable() Var {
	v := Var(db.nbVars)
	db.nbVars++
	db.watches = append(db.watches, nil, nil)
	return v
}

// Get returns the clause for id, or nil if id is vacant or out of range.
// Callers (watch-list iteration, trail antecedent lookups) must treat nil
// as "this clause has been deleted" rather than fail; spec §4.1's "invalid
// identifiers are silently ignored".
func (db *clauseDatabase) Get(id ClauseID) *Clause {
	if id == NoClause || int(id) >= len(db.clauses) {
		return nil
	}
	return db.clauses[id]
}

func (db *clauseDatabase) alloc(c *Clause) ClauseID {
	if n := len(db.free); n > 0 {
		id := db.free[n-1]
		db.free = db.free[:n-1]
		db.clauses[id] = c
		return id
	}
	db.clauses = append(db.clauses, c)
	return ClauseID(len(db.clauses) - 1)
}

// watch registers a freshly-added clause's two initial watches (its first
// two literals). A clause watching literal w is filed under bucket w
// itself, so that when w's negation is asserted (falsifying w) the
// propagator finds it via WatchesOf(Negation(assertedLit)) — spec §4.2
// step 2's "let ℓ' = -ℓ. Iterate watches_of(ℓ')". Unit clauses (len 1) and
// the empty clause need no watches: a unit is asserted directly onto the
// trail by the caller, and an empty clause signals UNSAT on sight.
func (db *clauseDatabase) watch(id ClauseID, c *Clause) {
	if c.Len() < 2 {
		return
	}
	db.appendWatch(c.Watched(0), id)
	db.appendWatch(c.Watched(1), id)
}

func (db *clauseDatabase) appendWatch(lit Lit, id ClauseID) {
	db.watches[lit] = append(db.watches[lit], id)
}

// removeWatch does a swap-and-truncate removal of id from lit's watch list;
// grounded in togatoga-gatosat's RemoveWatcher and the teacher's
// removeFrom (solver/watcher.go), both of which use the same trick since
// watch-list order does not matter.
func (db *clauseDatabase) removeWatch(lit Lit, id ClauseID) {
	ws := db.watches[lit]
	for i, w := range ws {
		if w == id {
			last := len(ws) - 1
			ws[i] = ws[last]
			db.watches[lit] = ws[:last]
			return
		}
	}
}

// WatchesOf returns the live backing slice of clause ids currently
// watching lit. The propagator is allowed to compact this slice in place
// (removing satisfied/migrated entries as it scans) — spec §4.2 step 2's
// "the list can be mutated during iteration only by explicit watch
// migration, not by concurrent appends" — but must call SetWatches with
// the result once it is done, since Go slice headers are not
// self-updating.
func (db *clauseDatabase) WatchesOf(lit Lit) []ClauseID { return db.watches[lit] }

// SetWatches replaces lit's watch list wholesale, used by the propagator
// after compacting it in place.
func (db *clauseDatabase) SetWatches(lit Lit, ids []ClauseID) { db.watches[lit] = ids }

// AddClause interns an original (core) or temporary (core=false,
// learned=false) clause and registers its watches. Spec §4.1's add_clause.
func (db *clauseDatabase) AddClause(lits []Lit, core bool) ClauseID {
	c := newClause(lits, false, core)
	id := db.alloc(c)
	db.watch(id, c)
	return id
}

// AddLearned interns a clause produced by conflict analysis, stores its
// LBD, and bumps its activity as freshly-learned clauses always start hot.
// Spec §4.1's add_learned.
func (db *clauseDatabase) AddLearned(lits []Lit, lbd int) ClauseID {
	c := newClause(lits, true, false)
	c.SetLBD(lbd)
	id := db.alloc(c)
	db.nbLearned++
	db.watch(id, c)
	db.BumpActivity(id)
	return id
}

// RemoveClause detaches c's watches (if any) and marks its slot vacant.
// Locked clauses (currently an antecedent on the trail) must never be
// removed by the caller; the database does not re-check this itself, same
// as the teacher's unwatchClause/reduceLearned split of responsibility.
func (db *clauseDatabase) RemoveClause(id ClauseID) {
	c := db.Get(id)
	if c == nil {
		return
	}
	if c.Len() >= 2 {
		db.removeWatch(c.Watched(0), id)
		db.removeWatch(c.Watched(1), id)
	}
	if c.learned {
		db.nbLearned--
	}
	db.clauses[id] = nil
	db.free = append(db.free, id)
}

// MigrateWatch moves watch slot slotIdx (0 or 1) of clause id to newPos
// (newLit's position within the clause) and files id under newLit's
// bucket. It does NOT remove id from its old bucket — the propagator's
// compaction loop (propagate.go) is scanning that exact bucket in place and
// handles the removal itself by simply not re-adding id to the compacted
// result, since a search-and-remove here would race with that same
// in-place compaction over the same backing array. Spec §4.1's
// update_watches.
func (db *clauseDatabase) MigrateWatch(id ClauseID, slotIdx int, newLit Lit, newPos int) {
	c := db.Get(id)
	if c == nil {
		return
	}
	c.setWatch(slotIdx, newPos)
	db.appendWatch(newLit, id)
}

// BumpActivity increments id's activity (learned clauses only — original
// and temporary clauses are never deleted for quality reasons, so scoring
// them is pointless), rescaling every learned clause's activity if the
// threshold is crossed. Teacher's clauseBumpActivity idiom.
func (db *clauseDatabase) BumpActivity(id ClauseID) {
	c := db.Get(id)
	if c == nil || !c.learned {
		return
	}
	c.activity += db.clauseInc
	if c.activity > 1e30 {
		for _, c2 := range db.clauses {
			if c2 != nil && c2.learned {
				c2.activity *= 1e-30
			}
		}
		db.clauseInc *= 1e-30
	}
}

// DecayActivities grows the shared increment, per teacher's
// clauseDecayActivity, so future bumps count for relatively more.
func (db *clauseDatabase) DecayActivities() {
	db.clauseInc *= 1 / clauseDecay
}

// ComputeLBD counts the distinct nonzero decision levels among lits, as
// reported by levelOf; literals at level 0 do not contribute.
func (db *clauseDatabase) ComputeLBD(lits []Lit, levelOf func(Var) int) int {
	if len(lits) == 0 {
		return 0
	}
	seen := make(map[int]struct{}, len(lits))
	for _, l := range lits {
		if lvl := levelOf(l.Var()); lvl != 0 {
			seen[lvl] = struct{}{}
		}
	}
	return len(seen)
}

// Reduce implements spec §4.1's two-phase cleanup: drop learned clauses
// already satisfied under the current assignment, then — if still over the
// cap — rank the rest by activity/max(lbd,1) ascending, always keep
// lbd <= lowLBDThreshold or locked clauses, and delete enough of the
// remainder to return to reduceTargetFraction of the cap.
//
// locked reports whether id is currently some variable's antecedent on the
// trail (per the standard MiniSat convention: c is locked iff it is the
// reason for its own first literal's variable), grounded in the teacher's
// separate boolean locked field on Clause; this rewrite computes it instead
// of maintaining it, since keeping a stored flag in sync would need a
// lock/unlock call at every trail push and backjump.
func (db *clauseDatabase) Reduce(litStatus func(Lit) Status, locked func(ClauseID) bool) int {
	removed := 0
	var candidates []ClauseID
	for id, c := range db.clauses {
		if c == nil || !c.learned || locked(ClauseID(id)) {
			continue
		}
		satisfied := false
		for _, l := range c.lits {
			if litStatus(l) == Sat {
				satisfied = true
				break
			}
		}
		if satisfied {
			db.RemoveClause(ClauseID(id))
			removed++
			continue
		}
		candidates = append(candidates, ClauseID(id))
	}
	target := int(float64(db.maxLearnts) * reduceTargetFraction)
	if db.nbLearned <= db.maxLearnts {
		return removed
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := db.clauses[candidates[i]], db.clauses[candidates[j]]
		return score(ci) < score(cj)
	})
	toRemove := db.nbLearned - target
	for _, id := range candidates {
		if toRemove <= 0 {
			break
		}
		c := db.clauses[id]
		if c.LBD() <= lowLBDThreshold || locked(id) {
			continue
		}
		db.RemoveClause(id)
		removed++
		toRemove--
	}
	return removed
}

func score(c *Clause) float32 {
	lbd := c.LBD()
	if lbd < 1 {
		lbd = 1
	}
	return c.Activity() / float32(lbd)
}

// LearnedCount returns the number of live learned clauses.
func (db *clauseDatabase) LearnedCount() int { return db.nbLearned }

// SetMaxLearnts updates the learned-clause population cap (spec §6's
// set_max_learnts).
func (db *clauseDatabase) SetMaxLearnts(cap int) { db.maxLearnts = cap }

// ApproxMemoryBytes estimates the database's footprint from live clause
// sizes, used to decide when to opportunistically Reduce under memory
// pressure (spec §4.1's soft ceiling).
func (db *clauseDatabase) ApproxMemoryBytes() int64 {
	var total int64
	for _, c := range db.clauses {
		if c == nil {
			continue
		}
		total += int64(48 + 4*len(c.lits))
	}
	return total
}

// MaybeReduce triggers Reduce if either the learned population is over cap
// or the soft memory ceiling has been crossed. Called from both
// propagate.go's periodic poll and solver.go's post-AddLearned check —
// the two call sites original_source/include/ClauseDatabase.h keeps
// distinct even though spec §4.1 describes one reduce() operation; see
// SPEC_FULL.md §4.
func (db *clauseDatabase) MaybeReduce(litStatus func(Lit) Status, locked func(ClauseID) bool) int {
	if db.nbLearned > db.maxLearnts || db.ApproxMemoryBytes() > memoryCeilingBytes {
		return db.Reduce(litStatus, locked)
	}
	return 0
}

// ClearLearned drops every non-core clause (both learned and temporary),
// per spec §4.1's clear_learned: "drops all non-core clauses, empties and
// re-sizes watch lists."
func (db *clauseDatabase) ClearLearned() {
	for id, c := range db.clauses {
		if c != nil && !c.core {
			db.RemoveClause(ClauseID(id))
		}
	}
}
