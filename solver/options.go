package solver

import "github.com/sirupsen/logrus"

// Default tuning constants, grounded in the teacher's own defaults
// (solver/solver.go's initNbMaxClauses/defaultVarDecay) and spec §4's
// numeric constants where the teacher has none.
const (
	defaultVarDecay      = 0.8
	defaultRestartBase   = 100
	defaultPhaseSaving   = true
	defaultRandomPolarity = 0.0
)

// Options configures a Solver at construction time. Every field has a
// working zero-value-implied default applied by New, so callers can build
// an Options with just the fields they care about — the same shape as the
// teacher's exported Solver fields (Verbose, Certified, ...), but grouped
// into one struct rather than left as top-level Solver fields, since spec
// §6 treats these as construction-time knobs rather than mutable solver
// state (aside from the explicit Set* operations spec §6 lists, which stay
// mutable after construction).
type Options struct {
	// VarDecay is the VSIDS decay factor; higher values remember conflict
	// history longer. Defaults to 0.8.
	VarDecay float64

	// RestartStrategy selects Luby or geometric restart scheduling.
	// Defaults to RestartLuby.
	RestartStrategy RestartStrategy
	// RestartBase is the schedule's base unit (conflicts). Defaults to 100.
	RestartBase int

	// MaxLearnts caps the learned clause population before Reduce is
	// triggered. Zero uses clauseDatabase's own default.
	MaxLearnts int

	// PhaseSaving enables remembering each variable's last assigned value
	// as its default polarity on the next decision. Zero-value Options
	// leaves this false; use NewOptions for the recommended true default.
	PhaseSaving bool
	// RandomPolarity adds a constant offset to the ratio-adaptive random
	// polarity frequency; portfolio workers use distinct nonzero values to
	// diversify their search. Defaults to 0.
	RandomPolarity float64
	// Seed seeds the polarity RNG. Two solvers built with equal Seed,
	// Options, and formula make identical decisions (spec §9's determinism
	// note).
	Seed int64

	// Logger receives structured solve events. Defaults to
	// logrus.StandardLogger() wrapped by internal/satlog.
	Logger *logrus.Entry
}

// NewOptions returns the recommended starting configuration: Luby restarts,
// phase saving on, no random polarity offset, an arbitrary fixed seed. New
// itself only fills in zero-valued numeric fields (see withDefaults); start
// from NewOptions when the boolean defaults matter too.
func NewOptions() Options {
	return Options{
		VarDecay:        defaultVarDecay,
		RestartStrategy: RestartLuby,
		RestartBase:     defaultRestartBase,
		PhaseSaving:     defaultPhaseSaving,
		RandomPolarity:  defaultRandomPolarity,
		Seed:            1,
	}
}

// withDefaults returns a copy of o with every unset field replaced by its
// documented default.
func (o Options) withDefaults() Options {
	if o.VarDecay == 0 {
		o.VarDecay = defaultVarDecay
	}
	if o.RestartBase == 0 {
		o.RestartBase = defaultRestartBase
	}
	if o.MaxLearnts == 0 {
		o.MaxLearnts = defaultInitMaxLearnt
	}
	return o
}
