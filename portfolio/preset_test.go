package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmertens/satkit/solver"
)

func TestSelectPresetsCapsByCPU(t *testing.T) {
	catalog := DefaultCatalog()
	selected := selectPresets(catalog, 3, 0, 100)
	assert.Len(t, selected, 3)
}

func TestSelectPresetsCapsByMemoryBudget(t *testing.T) {
	catalog := DefaultCatalog()
	tiny := catalog[0].memoryEstimate(100)
	selected := selectPresets(catalog, len(catalog), tiny, 100)
	assert.NotEmpty(t, selected)
	for _, p := range selected {
		assert.LessOrEqual(t, p.memoryEstimate(100), tiny)
	}
}

func TestSelectPresetsNeverExceedsCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	selected := selectPresets(catalog, 1000, 0, 100)
	assert.LessOrEqual(t, len(selected), len(catalog))
}

func TestPresetToSolverOptionsDisablesReduceWhenLBDOff(t *testing.T) {
	p := Preset{LBDDeletionEnabled: false, MaxLearnts: 5000}
	opts := p.toSolverOptions(1)
	assert.Equal(t, disabledReduceMaxLearnts, opts.MaxLearnts)
}

func TestPresetToSolverOptionsKeepsCapWhenLBDOn(t *testing.T) {
	p := Preset{LBDDeletionEnabled: true, MaxLearnts: 5000, RestartStrategy: solver.RestartGeometric}
	opts := p.toSolverOptions(1)
	assert.Equal(t, 5000, opts.MaxLearnts)
	assert.Equal(t, solver.RestartGeometric, opts.RestartStrategy)
}
