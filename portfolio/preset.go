package portfolio

import (
	"github.com/samber/lo"

	"github.com/tmertens/satkit/solver"
)

// disabledReduceMaxLearnts stands in for "never opportunistically delete
// learned clauses for quality reasons": clauseDatabase.MaybeReduce only
// fires once the learned population exceeds MaxLearnts or the memory
// ceiling is crossed, so a very high cap approximates "LBD-based deletion
// off" without needing a second knob on solver.Options.
const disabledReduceMaxLearnts = 1 << 30

// Preset is one entry in the diversification catalog: a named bundle of
// solver.Options deviations from the defaults. Grounded in spec §4.9's
// "Diversification" list (var_decay, restart strategy/base, random
// polarity frequency, LBD-based deletion on/off, phase saving on/off,
// learned-clause cap). This is the runtime, already-typed form; satkitcfg
// decodes loosely-typed configuration into this shape.
type Preset struct {
	Name               string
	VarDecay           float64
	RestartStrategy    solver.RestartStrategy
	RestartBase        int
	RandomPolarity     float64
	PhaseSaving        bool
	LBDDeletionEnabled bool
	MaxLearnts         int

	// EstimatedBytesPerClause feeds selectPresets' memory budgeting; presets with
	// a higher learned-clause cap or more aggressive minimization retain
	// more memory per clause on average. Zero uses a package default.
	EstimatedBytesPerClause int64
}

func (p Preset) toSolverOptions(seed int64) solver.Options {
	maxLearnts := p.MaxLearnts
	if !p.LBDDeletionEnabled {
		maxLearnts = disabledReduceMaxLearnts
	}
	return solver.Options{
		VarDecay:        p.VarDecay,
		RestartStrategy: p.RestartStrategy,
		RestartBase:     p.RestartBase,
		MaxLearnts:      maxLearnts,
		PhaseSaving:     p.PhaseSaving,
		RandomPolarity:  p.RandomPolarity,
		Seed:            seed,
	}
}

const defaultBytesPerClause = 64

func (p Preset) memoryEstimate(nbClauses int) int64 {
	bytesPerClause := p.EstimatedBytesPerClause
	if bytesPerClause == 0 {
		bytesPerClause = defaultBytesPerClause
	}
	learnedCap := p.MaxLearnts
	if learnedCap == 0 || learnedCap > 25000 {
		learnedCap = 25000
	}
	return int64(nbClauses)*bytesPerClause + int64(learnedCap)*bytesPerClause
}

// DefaultCatalog returns the built-in diversification catalog spec §4.9
// describes: var_decay 0.95-0.98, Luby vs geometric restart with base
// 25-100, random polarity 0.05-0.15, LBD deletion on/off, phase saving
// on/off, learned-clause cap 8k-25k.
func DefaultCatalog() []Preset {
	return []Preset{
		{Name: "luby-conservative", VarDecay: 0.95, RestartStrategy: solver.RestartLuby, RestartBase: 25, RandomPolarity: 0.05, PhaseSaving: true, LBDDeletionEnabled: true, MaxLearnts: 8000},
		{Name: "luby-aggressive", VarDecay: 0.98, RestartStrategy: solver.RestartLuby, RestartBase: 100, RandomPolarity: 0.15, PhaseSaving: false, LBDDeletionEnabled: true, MaxLearnts: 25000},
		{Name: "geometric-conservative", VarDecay: 0.95, RestartStrategy: solver.RestartGeometric, RestartBase: 25, RandomPolarity: 0.05, PhaseSaving: true, LBDDeletionEnabled: false, MaxLearnts: 12000},
		{Name: "geometric-aggressive", VarDecay: 0.98, RestartStrategy: solver.RestartGeometric, RestartBase: 100, RandomPolarity: 0.15, PhaseSaving: false, LBDDeletionEnabled: true, MaxLearnts: 20000},
		{Name: "luby-balanced", VarDecay: 0.96, RestartStrategy: solver.RestartLuby, RestartBase: 50, RandomPolarity: 0.1, PhaseSaving: true, LBDDeletionEnabled: true, MaxLearnts: 16000},
		{Name: "geometric-balanced", VarDecay: 0.97, RestartStrategy: solver.RestartGeometric, RestartBase: 60, RandomPolarity: 0.1, PhaseSaving: false, LBDDeletionEnabled: false, MaxLearnts: 16000},
		{Name: "luby-no-phase-saving", VarDecay: 0.96, RestartStrategy: solver.RestartLuby, RestartBase: 40, RandomPolarity: 0.08, PhaseSaving: false, LBDDeletionEnabled: true, MaxLearnts: 10000},
		{Name: "geometric-hi-random", VarDecay: 0.97, RestartStrategy: solver.RestartGeometric, RestartBase: 30, RandomPolarity: 0.15, PhaseSaving: true, LBDDeletionEnabled: true, MaxLearnts: 22000},
	}
}

// selectPresets narrows catalog to at most K = min(len(catalog),
// cpuCount, memoryBudgetBytes/perWorkerEstimate) entries — spec §4.9's
// "at construction time the manager chooses at most K presets" and
// "Memory budget" sections — using lo.Filter to reject presets whose
// estimate alone exceeds the whole budget and a plain slice expression to
// cap the count, mirroring limaJavier-timetabling's lo-based catalog
// narrowing.
func selectPresets(catalog []Preset, cpuCount int, memoryBudgetBytes int64, nbClauses int) []Preset {
	if cpuCount <= 0 {
		cpuCount = 1
	}

	affordable := catalog
	if memoryBudgetBytes > 0 {
		affordable = lo.Filter(catalog, func(p Preset, _ int) bool {
			return p.memoryEstimate(nbClauses) <= memoryBudgetBytes
		})
	}

	k := len(affordable)
	if cpuCount < k {
		k = cpuCount
	}

	if memoryBudgetBytes > 0 && k > 0 {
		var used int64
		limited := make([]Preset, 0, k)
		for _, p := range affordable {
			if len(limited) >= k {
				break
			}
			est := p.memoryEstimate(nbClauses)
			if used+est > memoryBudgetBytes {
				continue
			}
			used += est
			limited = append(limited, p)
		}
		return limited
	}

	if k >= len(affordable) {
		return affordable
	}
	return affordable[:k]
}
