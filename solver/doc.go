/*
Package solver implements an incremental CDCL (Conflict-Driven Clause
Learning) SAT solver: two-watched-literal unit propagation, first-UIP
conflict analysis with clause minimization, VSIDS variable selection with
phase saving, and Luby or geometric restarts.

Describing a problem

Variables are identified by consecutive Var values starting at 0; New takes
the initial variable count and clauses are then added one at a time:

    s, err := solver.New(6, solver.NewOptions())
    s.AddClause([]solver.Lit{lit(1), lit(2), lit(3)})
    s.AddClause([]solver.Lit{lit(4), lit(5), lit(6)})
    s.AddClause([]solver.Lit{lit(-1), lit(-4)})

where lit converts a signed, nonzero integer literal via solver.IntToLit.
New variables can be introduced after construction with NewVariable, and
clauses can keep being added between Solve calls — every learned clause
survives across those calls, since nothing about the search is undone
except the assignment trail itself.

Solving a problem

    status := s.Solve()

Solve returns Sat, Unsat, or Unknown (if a timeout set via SetTimeout, or
an external Stop call, interrupted the search before either was proven).
If the status is Sat, Model returns a full variable assignment:

    if status == solver.Sat {
        model := s.Model()
    }

Assumptions and incremental use

SetAssumptions restricts a Solve call to the assignments consistent with a
given set of literals without touching the underlying clause set — useful
for testing many what-if scenarios against the same accumulated learned
clauses:

    s.SetAssumptions([]solver.Lit{lit(1), lit(-2)})
    if s.Solve() == solver.Unsat {
        core := s.Core() // the subset of assumptions that conflict
    }
*/
package solver
