package satkitcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmertens/satkit/solver"
)

func TestDecodeOptionsFromMap(t *testing.T) {
	raw := map[string]interface{}{
		"var_decay":        0.97,
		"restart_strategy": "geometric",
		"restart_base":     50,
		"max_learnts":      12000,
		"phase_saving":     true,
		"random_polarity":  0.1,
		"seed":             int64(42),
	}

	opts, err := DecodeOptions(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.97, opts.VarDecay)
	assert.Equal(t, solver.RestartGeometric, opts.RestartStrategy)
	assert.Equal(t, 50, opts.RestartBase)
	assert.Equal(t, 12000, opts.MaxLearnts)
	assert.True(t, opts.PhaseSaving)
	assert.Equal(t, 0.1, opts.RandomPolarity)
	assert.EqualValues(t, 42, opts.Seed)
}

func TestDecodeOptionsDefaultsRestartToLuby(t *testing.T) {
	opts, err := DecodeOptions(map[string]interface{}{"var_decay": 0.9})
	require.NoError(t, err)
	assert.Equal(t, solver.RestartLuby, opts.RestartStrategy)
}

func TestDecodeOptionsRejectsUnknownStrategy(t *testing.T) {
	_, err := DecodeOptions(map[string]interface{}{"restart_strategy": "bogus"})
	assert.Error(t, err)
}

func TestDecodeOptionsWeaklyTypedNumbers(t *testing.T) {
	// mapstructure's WeaklyTypedInput lets JSON-shaped numeric strings
	// through, the way config loaded from an env var or a text field would
	// arrive.
	raw := map[string]interface{}{
		"restart_base": "75",
		"max_learnts":  "9000",
	}
	opts, err := DecodeOptions(raw)
	require.NoError(t, err)
	assert.Equal(t, 75, opts.RestartBase)
	assert.Equal(t, 9000, opts.MaxLearnts)
}
