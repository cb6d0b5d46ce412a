package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/shapereg/qp"
	"github.com/katalvlaran/shapereg/regularize"
	"github.com/katalvlaran/shapereg/segments"
)

const defaultNeighbors = 4

var errBadConfig = errors.New("cli: invalid configuration")

// Config is the TOML configuration of the regularize command.
type Config struct {
	Angles    AnglesConfig    `toml:"angles"`
	Offsets   OffsetsConfig   `toml:"offsets"`
	Neighbors NeighborsConfig `toml:"neighbors"`
	Solver    SolverConfig    `toml:"solver"`
}

// AnglesConfig controls the orientation pass.
type AnglesConfig struct {
	MaxAngle float64 `toml:"max_angle"`
	Weight   float64 `toml:"weight"`
	Lambda   float64 `toml:"lambda"`
}

// OffsetsConfig controls the optional collinearity pass.
type OffsetsConfig struct {
	Enabled   bool    `toml:"enabled"`
	MaxOffset float64 `toml:"max_offset"`
	// Tolerance is the orientation bucket width in degrees used to form
	// parallel groups before the pass.
	Tolerance float64 `toml:"tolerance"`
}

// NeighborsConfig selects the neighbor query; K <= 0 means every pair.
type NeighborsConfig struct {
	K int `toml:"k"`
}

// SolverConfig tunes qp.ADMM.
type SolverConfig struct {
	MaxIterations int     `toml:"max_iterations"`
	EpsAbs        float64 `toml:"eps_abs"`
	EpsRel        float64 `toml:"eps_rel"`
}

func defaultConfig() Config {
	qo := qp.DefaultOptions()
	return Config{
		Angles: AnglesConfig{
			MaxAngle: segments.DefaultMaxAngle,
			Weight:   regularize.DefaultWeight,
			Lambda:   regularize.DefaultLambda,
		},
		Offsets: OffsetsConfig{
			MaxOffset: segments.DefaultMaxOffset,
			Tolerance: 1,
		},
		Neighbors: NeighborsConfig{K: defaultNeighbors},
		Solver: SolverConfig{
			MaxIterations: qo.MaxIterations,
			EpsAbs:        qo.EpsAbs,
			EpsRel:        qo.EpsRel,
		},
	}
}

// loadConfig decodes path on top of the defaults. An empty path yields the
// defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q: %w", path, undec[0].String(), errBadConfig)
	}

	return cfg, nil
}

// validate rejects values that the option constructors would panic on.
// Out-of-range bounds are left to the regularization types, which warn and
// fall back to their defaults.
func (c Config) validate() error {
	switch {
	case !(c.Angles.Weight > 0) || math.IsInf(c.Angles.Weight, 0):
		return fmt.Errorf("angles.weight=%v: %w", c.Angles.Weight, errBadConfig)
	case !(c.Angles.Lambda > 0 && c.Angles.Lambda < 1):
		return fmt.Errorf("angles.lambda=%v: %w", c.Angles.Lambda, errBadConfig)
	case !(c.Offsets.Tolerance > 0):
		return fmt.Errorf("offsets.tolerance=%v: %w", c.Offsets.Tolerance, errBadConfig)
	case c.Solver.MaxIterations < 1:
		return fmt.Errorf("solver.max_iterations=%d: %w", c.Solver.MaxIterations, errBadConfig)
	case !(c.Solver.EpsAbs >= 0) || !(c.Solver.EpsRel >= 0) || c.Solver.EpsAbs+c.Solver.EpsRel == 0,
		math.IsInf(c.Solver.EpsAbs, 0) || math.IsInf(c.Solver.EpsRel, 0):
		return fmt.Errorf("solver tolerances abs=%v rel=%v: %w", c.Solver.EpsAbs, c.Solver.EpsRel, errBadConfig)
	}

	return nil
}
