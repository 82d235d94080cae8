package solver

import "math"

// Describes basic types and constants used across the solver package.

// Status is the status of a solve, a clause, or a single literal at a given
// moment.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem or clause is satisfied.
	Sat
	// Unsat means the problem or clause is unsatisfied.
	Unsat
	// Unknown means the solve was aborted (timeout or an external stop
	// signal) before a proof of either Sat or Unsat could be produced.
	// Unlike the conservative convention of reporting Unknown as Unsat,
	// callers here can tell the two apart; see Solver.Solve and
	// DESIGN.md's note on the timeout Open Question.
	Unknown
	// Unit is a constant meaning the clause contains only one unassigned
	// literal.
	Unit
	// Many is a constant meaning the clause contains at least 2
	// unassigned literals.
	Many
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Unknown:
		return "UNKNOWN"
	case Unit:
		return "UNIT"
	case Many:
		return "MANY"
	default:
		panic("invalid status")
	}
}

// Var identifies a variable. Vars start at 0 internally; the CNF variable 1
// is encoded as Var 0. New variables are only ever appended, never reused.
type Var int32

// Lit is a signed literal. Lits start at 0 and are non-negative; the sign
// bit is the last bit. Thus the CNF literal -3 is encoded as
// 2*(3-1) + 1 = 5. This is the teacher's encoding, kept as-is: it packs a
// variable and its sign into one dense, sortable, array-indexable integer.
type Lit int32

// ClauseID is a stable handle into a ClauseDatabase. It never changes once
// issued, even if the referenced clause is later deleted: at that point the
// id simply refers to a vacant slot, and every consumer (watch lists, trail
// antecedents, UNSAT-core traces) must be prepared to treat that as "this
// clause is gone" rather than dereference something else in its place.
type ClauseID uint32

// NoClause is the sentinel ClauseID meaning "no antecedent" (used by
// decisions and assumptions on the trail) or "clause not found".
const NoClause ClauseID = math.MaxUint32

// IntToLit converts a signed, nonzero CNF literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a positive CNF variable identifier to a Var.
func IntToVar(i int) Var {
	return Var(i - 1)
}

// Lit returns the positive Lit associated with v.
func (v Var) Lit() Lit {
	return Lit(v * 2)
}

// SignedLit returns the Lit associated with v, negated if negated is true.
func (v Var) SignedLit(negated bool) Lit {
	if negated {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable underlying l.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// Int returns the signed, nonzero CNF literal equivalent to l.
func (l Lit) Int() int {
	sign := l&1 == 1
	res := int(l/2 + 1)
	if sign {
		return -res
	}
	return res
}

// IsPositive is true iff l asserts its variable true.
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns -l.
func (l Lit) Negation() Lit {
	return l ^ 1
}
