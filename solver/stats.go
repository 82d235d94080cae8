package solver

// Stats reports counters about a solver's cumulative activity, for
// information/telemetry purposes only. Grounded in the teacher's own Stats
// struct (solver/solver.go), extended with the counters spec §6's
// Statistics operation and the portfolio package's reporting need.
type Stats struct {
	NbRestarts      int
	NbConflicts     int
	NbDecisions     int
	NbPropagations  int
	NbLearned       int
	NbDeleted       int
	NbSolves        int // number of completed Solve() calls (incremental reuse)
	MaxDecisionLevel int
}
