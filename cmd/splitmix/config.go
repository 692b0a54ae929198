package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// CheckConfig represents the complete quality-check configuration
type CheckConfig struct {
	Check CheckSettings `hcl:"check,block"`
}

// CheckSettings tunes the quality suite
type CheckSettings struct {
	Draws           int     `hcl:"draws,optional"`
	Streams         int     `hcl:"streams,optional"`
	CollisionSample int     `hcl:"collision_sample,optional"`
	MaxBitSkew      float64 `hcl:"max_bit_skew,optional"`
	MaxMeanError    float64 `hcl:"max_mean_error,optional"`
}

// DefaultCheckConfig returns default quality-check configuration
func DefaultCheckConfig() *CheckConfig {
	return &CheckConfig{
		Check: CheckSettings{
			Draws:           1 << 16,
			Streams:         8,
			CollisionSample: 1 << 18,
			MaxBitSkew:      0.05,
			MaxMeanError:    0.01,
		},
	}
}

// LoadCheckConfig loads quality-check configuration from an HCL file,
// falling back to defaults when the file does not exist
func LoadCheckConfig(filename string) (*CheckConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultCheckConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	config := &CheckConfig{}
	if diags := gohcl.DecodeBody(file.Body, nil, config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults fills in any settings the file left unset
func (c *CheckConfig) applyDefaults() {
	def := DefaultCheckConfig().Check
	s := &c.Check
	if s.Draws == 0 {
		s.Draws = def.Draws
	}
	if s.Streams == 0 {
		s.Streams = def.Streams
	}
	if s.CollisionSample == 0 {
		s.CollisionSample = def.CollisionSample
	}
	if s.MaxBitSkew == 0 {
		s.MaxBitSkew = def.MaxBitSkew
	}
	if s.MaxMeanError == 0 {
		s.MaxMeanError = def.MaxMeanError
	}
}

// Validate rejects settings the suite cannot run with
func (c *CheckConfig) Validate() error {
	s := c.Check
	if s.Draws <= 0 {
		return fmt.Errorf("check.draws must be positive, got %d", s.Draws)
	}
	if s.Streams <= 0 {
		return fmt.Errorf("check.streams must be positive, got %d", s.Streams)
	}
	if s.CollisionSample <= 0 {
		return fmt.Errorf("check.collision_sample must be positive, got %d", s.CollisionSample)
	}
	if s.MaxBitSkew <= 0 || s.MaxBitSkew >= 1 {
		return fmt.Errorf("check.max_bit_skew must be in (0, 1), got %f", s.MaxBitSkew)
	}
	if s.MaxMeanError <= 0 || s.MaxMeanError >= 0.5 {
		return fmt.Errorf("check.max_mean_error must be in (0, 0.5), got %f", s.MaxMeanError)
	}
	return nil
}
