package portfolio

import "github.com/pkg/errors"

// ErrNoPresets is returned by New when memory/CPU budgeting narrows the
// catalog down to zero runnable workers.
var ErrNoPresets = errors.New("portfolio: no preset fits the given cpu/memory budget")

// ErrEmptyFormula is returned by New when nbVars is non-positive.
var ErrEmptyFormula = errors.New("portfolio: nbVars must be positive")
