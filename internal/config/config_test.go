package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.SolverTimeout)
	assert.Equal(t, 1000, cfg.MaxFoods)
	assert.Equal(t, 1e-10, cfg.PivotTol)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("DIETOPT_PORT", "9090")
	t.Setenv("DIETOPT_MAX_FOODS", "5")
	t.Setenv("DIETOPT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.MaxFoods)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dietopt.yaml")
	content := []byte("port: 1234\nsolver_timeout: 5s\nquantity_epsilon: 1e-6\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1234, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.SolverTimeout)
	assert.Equal(t, 1e-6, cfg.QuantityEpsilon)
	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBrokenSettings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"non-positive timeout", func(c *Config) { c.SolverTimeout = 0 }},
		{"non-positive max foods", func(c *Config) { c.MaxFoods = -1 }},
		{"negative epsilon", func(c *Config) { c.QuantityEpsilon = -1e-9 }},
		{"negative tolerance", func(c *Config) { c.ToleranceRel = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
