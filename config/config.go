// Package config captures and validates a simplification run's
// configuration, sourced from CLI flags and optionally round-tripped
// through a YAML file for reproducible runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfig wraps every configuration validation failure.
var ErrConfig = fmt.Errorf("config: invalid configuration")

// Run captures everything a simplification run needs, independent of how
// it was sourced (flags or a YAML file).
type Run struct {
	Input             string  `yaml:"input"`
	Boundary          string  `yaml:"boundary,omitempty"`
	BoundaryFromHgrid bool    `yaml:"boundary_from_hgrid,omitempty"`
	NegativeDown      bool    `yaml:"negative_down"`
	Validate          bool    `yaml:"validate"`
	ZOffset           string  `yaml:"z_offset"`
	MaxTriangleArea   float64 `yaml:"max_triangle_area"`
	Aspect            bool    `yaml:"aspect"`
	Diagnose          bool    `yaml:"diagnose,omitempty"`
}

// Validate checks that Run is internally consistent and ready to drive a
// simplification run, returning an error wrapping ErrConfig describing the
// first problem found.
func (r Run) Validate() error {
	if r.Input == "" {
		return fmt.Errorf("%w: --input is required", ErrConfig)
	}
	if r.Boundary == "" && !r.BoundaryFromHgrid {
		return fmt.Errorf("%w: one of --boundary or --boundary-from-hgrid is required", ErrConfig)
	}
	if r.Boundary != "" && r.BoundaryFromHgrid {
		return fmt.Errorf("%w: --boundary and --boundary-from-hgrid are mutually exclusive", ErrConfig)
	}
	if r.ZOffset == "" {
		return fmt.Errorf("%w: --z-offset is required", ErrConfig)
	}
	if r.MaxTriangleArea < 0 {
		return fmt.Errorf("%w: --max-triangle-area must be >= 0 (0 disables the test)", ErrConfig)
	}
	return nil
}

// Load reads a Run from a YAML file, for the --config flag.
func Load(path string) (Run, error) {
	var r Run
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return r, nil
}

// Save writes r to a YAML file, capturing a run's flags for later replay.
func Save(path string, r Run) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return os.WriteFile(path, data, 0o644)
}
