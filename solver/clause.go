package solver

import "fmt"

// A Clause is an ordered, duplicate-free list of literals plus the metadata
// the database and propagator need: whether it survives across solves
// (core), whether conflict analysis produced it (learned), its activity for
// deletion ranking, its LBD, and the pair of literal positions the
// propagator currently watches.
//
// Grounded in the teacher's solver.Clause (solver/clause.go), but the
// teacher's bit-packed lbdValue (learned/locked/lbd crammed into one
// uint32) is split into explicit fields here: this rewrite needs learned
// and core to vary independently (spec §3: "a clause is either an original
// constraint (core=true) or a temporary constraint (core=false)"), which
// the teacher's two-state packing never needed to express.
type Clause struct {
	lits     []Lit
	watched  [2]int // indices into lits; unused for size < 2 clauses
	learned  bool
	core     bool
	activity float32
	lbd      uint32
}

// newClause builds a clause and sets up its initial watch positions: the
// first two literals, per spec §4.1's add_clause contract.
func newClause(lits []Lit, learned, core bool) *Clause {
	c := &Clause{lits: lits, learned: learned, core: core}
	if len(lits) >= 2 {
		c.watched = [2]int{0, 1}
	}
	return c
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Lits returns the clause's literals. Callers must not retain the returned
// slice past a call that mutates the clause.
func (c *Clause) Lits() []Lit { return c.lits }

// Lit returns the i-th literal of the clause.
func (c *Clause) Lit(i int) Lit { return c.lits[i] }

// Watched returns the literal currently held at watch slot i (0 or 1).
func (c *Clause) Watched(i int) Lit { return c.lits[c.watched[i]] }

// WatchedIdx returns the position within Lits() of watch slot i.
func (c *Clause) WatchedIdx(i int) int { return c.watched[i] }

// SlotOf returns which watch slot (0 or 1) currently holds lit, or -1 if
// lit is not presently watched by this clause.
func (c *Clause) SlotOf(lit Lit) int {
	if len(c.lits) < 2 {
		return -1
	}
	switch lit {
	case c.lits[c.watched[0]]:
		return 0
	case c.lits[c.watched[1]]:
		return 1
	default:
		return -1
	}
}

// setWatch moves watch slot i to point at position newPos within lits.
func (c *Clause) setWatch(i, newPos int) { c.watched[i] = newPos }

// swap exchanges the literals at positions i and j. Watch slots stay on
// their positions, so a slot watching position i now sees the literal that
// was at j.
func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Learned reports whether conflict analysis produced this clause.
func (c *Clause) Learned() bool { return c.learned }

// Core reports whether this is a permanent, as opposed to a temporary
// one-solve, original constraint. Meaningless for learned clauses.
func (c *Clause) Core() bool { return c.core }

// LBD returns the clause's stored Literal Block Distance. Zero for clauses
// that were never scored.
func (c *Clause) LBD() int { return int(c.lbd) }

// SetLBD stores lbd on the clause.
func (c *Clause) SetLBD(lbd int) { c.lbd = uint32(lbd) }

// Activity returns the clause's current activity score.
func (c *Clause) Activity() float32 { return c.activity }

// CNF renders the clause as a DIMACS-style space-separated literal list
// terminated by 0. For logging only; there is no wire format in scope.
func (c *Clause) CNF() string {
	res := ""
	for _, lit := range c.lits {
		res += fmt.Sprintf("%d ", lit.Int())
	}
	return fmt.Sprintf("%s0", res)
}
