package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Simplices", cfg.Simplices, 6400},
		{"Timeslices", cfg.Timeslices, 16},
		{"Seed", cfg.Seed, uint64(1)},
		{"Workers", cfg.Workers, 1},
		{"MaxFixPasses", cfg.MaxFixPasses, 20},
		{"Verbose", cfg.Verbose, false},
		{"Output.STL", cfg.Output.STL, ""},
		{"Output.Leaf", cfg.Output.Leaf, uint32(1)},
		{"Output.Width", cfg.Output.Width, 800},
		{"Output.Height", cfg.Output.Height, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("CDT_SIMPLICES", "64000")
	t.Setenv("CDT_TIMESLICES", "64")
	t.Setenv("CDT_VERBOSE", "true")
	viper.SetEnvPrefix("CDT")
	viper.AutomaticEnv()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 64000, cfg.Simplices)
	assert.Equal(t, 64, cfg.Timeslices)
	assert.True(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), ".cdt.yaml")
	content := "simplices: 128\ntimeslices: 2\noutput:\n  stl: leaf.stl\n  leaf: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Simplices)
	assert.Equal(t, 2, cfg.Timeslices)
	assert.Equal(t, "leaf.stl", cfg.Output.STL)
	assert.Equal(t, uint32(2), cfg.Output.Leaf)
}

func TestValidate(t *testing.T) {
	base := Config{Simplices: 4, Timeslices: 2, MaxFixPasses: 20, Output: OutputConfig{Width: 1, Height: 1}}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeslices", func(c *Config) { c.Timeslices = 0 }},
		{"zero simplices", func(c *Config) { c.Simplices = 0 }},
		{"zero passes", func(c *Config) { c.MaxFixPasses = 0 }},
		{"png without stl", func(c *Config) { c.Output.PNG = "leaf.png" }},
		{"zero width", func(c *Config) { c.Output.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
