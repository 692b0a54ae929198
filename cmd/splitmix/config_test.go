package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCheckConfigMissingFile(t *testing.T) {
	cfg, err := LoadCheckConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCheckConfig(), cfg)
}

func TestLoadCheckConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitmix.hcl")
	content := `
check {
  draws    = 1000
  streams  = 4
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadCheckConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Check.Draws)
	assert.Equal(t, 4, cfg.Check.Streams)

	// Unset attributes fall back to defaults.
	def := DefaultCheckConfig().Check
	assert.Equal(t, def.CollisionSample, cfg.Check.CollisionSample)
	assert.Equal(t, def.MaxBitSkew, cfg.Check.MaxBitSkew)
	assert.Equal(t, def.MaxMeanError, cfg.Check.MaxMeanError)
}

func TestLoadCheckConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitmix.hcl")
	content := `
check {
  max_bit_skew = 1.5
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadCheckConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_bit_skew")
}

func TestLoadCheckConfigRejectsInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitmix.hcl")
	require.NoError(t, os.WriteFile(path, []byte("check {"), 0o644))

	_, err := LoadCheckConfig(path)
	require.Error(t, err)
}
