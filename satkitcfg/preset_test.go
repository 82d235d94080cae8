package satkitcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmertens/satkit/solver"
)

func TestDecodeCatalog(t *testing.T) {
	raw := []map[string]interface{}{
		{
			"name":                 "custom-luby",
			"var_decay":            0.95,
			"restart_strategy":     "luby",
			"restart_base":         30,
			"lbd_deletion_enabled": true,
			"max_learnts":          9000,
		},
		{
			"name":             "custom-geo",
			"restart_strategy": "geometric",
			"restart_base":     40,
		},
	}

	catalog, err := DecodeCatalog(raw)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "custom-luby", catalog[0].Name)
	assert.Equal(t, solver.RestartLuby, catalog[0].RestartStrategy)
	assert.Equal(t, "custom-geo", catalog[1].Name)
	assert.Equal(t, solver.RestartGeometric, catalog[1].RestartStrategy)
}

func TestDecodeCatalogRejectsBadEntry(t *testing.T) {
	raw := []map[string]interface{}{
		{"name": "bad", "restart_strategy": "nope"},
	}
	_, err := DecodeCatalog(raw)
	assert.Error(t, err)
}
