// Package satkitcfg turns loosely-typed configuration — a
// map[string]interface{} read from a config file, environment, or a
// hand-written literal — into the strict solver.Options and
// portfolio.Preset structs the rest of satkit consumes.
//
// Grounded in limaJavier-timetabling's pkg/model/input.go, which decodes a
// RawModelInput map into a typed ModelInput via mapstructure.Decode before
// any validation runs; this package follows the same decode-then-validate
// split so a portfolio preset catalog can be authored as data instead of a
// hand-written Go literal per preset.
package satkitcfg

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/tmertens/satkit/solver"
)

// SolverConfig is the mapstructure-tagged mirror of solver.Options: every
// field is a plain type mapstructure can decode from a
// map[string]interface{} (JSON/YAML-shaped data), since solver.Options
// itself carries a *logrus.Entry and a solver.RestartStrategy enum that a
// generic decoder cannot populate directly.
type SolverConfig struct {
	VarDecay        float64 `mapstructure:"var_decay"`
	RestartStrategy string  `mapstructure:"restart_strategy"` // "luby" or "geometric"
	RestartBase     int     `mapstructure:"restart_base"`
	MaxLearnts      int     `mapstructure:"max_learnts"`
	PhaseSaving     bool    `mapstructure:"phase_saving"`
	RandomPolarity  float64 `mapstructure:"random_polarity"`
	Seed            int64   `mapstructure:"seed"`
}

// Decode fills a SolverConfig from raw (typically a map[string]interface{}
// parsed from JSON/YAML, or a struct with matching field names) using
// mapstructure's default naming convention plus this package's
// `mapstructure` tags.
func Decode(raw interface{}) (SolverConfig, error) {
	var cfg SolverConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return SolverConfig{}, errors.Wrap(err, "satkitcfg: building decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return SolverConfig{}, errors.Wrap(err, "satkitcfg: decoding solver config")
	}
	return cfg, nil
}

// ToOptions converts a decoded SolverConfig into solver.Options, resolving
// the string restart strategy name and leaving zero-valued numeric fields
// for solver.New's own withDefaults to fill in.
func (c SolverConfig) ToOptions() (solver.Options, error) {
	strategy, err := parseRestartStrategy(c.RestartStrategy)
	if err != nil {
		return solver.Options{}, err
	}
	return solver.Options{
		VarDecay:        c.VarDecay,
		RestartStrategy: strategy,
		RestartBase:     c.RestartBase,
		MaxLearnts:      c.MaxLearnts,
		PhaseSaving:     c.PhaseSaving,
		RandomPolarity:  c.RandomPolarity,
		Seed:            c.Seed,
	}, nil
}

func parseRestartStrategy(name string) (solver.RestartStrategy, error) {
	switch name {
	case "", "luby":
		return solver.RestartLuby, nil
	case "geometric":
		return solver.RestartGeometric, nil
	default:
		return 0, errors.Errorf("satkitcfg: unknown restart strategy %q", name)
	}
}

// DecodeOptions is the common case's one-call shortcut: decode raw straight
// into a usable solver.Options.
func DecodeOptions(raw interface{}) (solver.Options, error) {
	cfg, err := Decode(raw)
	if err != nil {
		return solver.Options{}, err
	}
	return cfg.ToOptions()
}
