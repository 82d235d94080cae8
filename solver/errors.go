package solver

import "github.com/pkg/errors"

// Errors returned by the construction and incremental-API surface (spec §6)
// wrap a sentinel with github.com/pkg/errors so callers can both errors.Is
// against a stable value and get a captured stack trace for logging — the
// same wrapping style the teacher's own maxsat/optim packages use for their
// non-solve-path failures. The core Solve/propagate/analyze path never
// returns a Go error; it reports outcomes via Status, per spec §7.

// ErrNoVariables is returned by New when asked to build a solver over zero
// variables.
var ErrNoVariables = errors.New("solver: at least one variable is required")

// ErrInvalidLiteral is returned when a clause or assumption references a
// variable outside [0, nbVars).
var ErrInvalidLiteral = errors.New("solver: literal references an unknown variable")

// ErrContradictoryAssumptions is returned by SetAssumptions when the given
// assumptions are pairwise contradictory before any solving has occurred
// (spec §6's "assumptions containing both a literal and its negation").
var ErrContradictoryAssumptions = errors.New("solver: assumptions contain a literal and its negation")
