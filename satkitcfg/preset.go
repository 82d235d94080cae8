package satkitcfg

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/tmertens/satkit/portfolio"
)

// PresetConfig is the mapstructure-tagged mirror of portfolio.Preset, used
// to decode a portfolio diversification catalog authored as data (e.g. a
// []map[string]interface{} loaded from YAML/JSON) instead of a hand-written
// Go literal per preset — spec §4.9's "Diversification" catalog, expressed
// per SPEC_FULL.md's Configuration section as decodable data.
type PresetConfig struct {
	Name                    string  `mapstructure:"name"`
	VarDecay                float64 `mapstructure:"var_decay"`
	RestartStrategy         string  `mapstructure:"restart_strategy"`
	RestartBase             int     `mapstructure:"restart_base"`
	RandomPolarity          float64 `mapstructure:"random_polarity"`
	PhaseSaving             bool    `mapstructure:"phase_saving"`
	LBDDeletionEnabled      bool    `mapstructure:"lbd_deletion_enabled"`
	MaxLearnts              int     `mapstructure:"max_learnts"`
	EstimatedBytesPerClause int64   `mapstructure:"estimated_bytes_per_clause"`
}

// ToPreset resolves the string restart strategy name and returns the
// runtime portfolio.Preset.
func (c PresetConfig) ToPreset() (portfolio.Preset, error) {
	strategy, err := parseRestartStrategy(c.RestartStrategy)
	if err != nil {
		return portfolio.Preset{}, err
	}
	return portfolio.Preset{
		Name:                    c.Name,
		VarDecay:                c.VarDecay,
		RestartStrategy:         strategy,
		RestartBase:             c.RestartBase,
		RandomPolarity:          c.RandomPolarity,
		PhaseSaving:             c.PhaseSaving,
		LBDDeletionEnabled:      c.LBDDeletionEnabled,
		MaxLearnts:              c.MaxLearnts,
		EstimatedBytesPerClause: c.EstimatedBytesPerClause,
	}, nil
}

// DecodeCatalog decodes raw (typically []map[string]interface{}) into a
// portfolio diversification catalog, one PresetConfig per entry.
func DecodeCatalog(raw interface{}) ([]portfolio.Preset, error) {
	var configs []PresetConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &configs,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "satkitcfg: building catalog decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "satkitcfg: decoding preset catalog")
	}

	presets := make([]portfolio.Preset, 0, len(configs))
	for _, c := range configs {
		p, err := c.ToPreset()
		if err != nil {
			return nil, errors.Wrapf(err, "satkitcfg: preset %q", c.Name)
		}
		presets = append(presets, p)
	}
	return presets, nil
}
