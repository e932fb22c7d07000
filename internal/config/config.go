// Package config loads the run configuration of the cdt command.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// OutputConfig names the optional artifacts written after generation.
// Empty paths are skipped.
type OutputConfig struct {
	// STL is the path of the binary STL of the leaf selected by Leaf.
	STL string `mapstructure:"stl"`
	// PNG is the path of a preview of the STL. Requires STL.
	PNG string `mapstructure:"png"`
	// Profile is the path of the volume profile chart.
	Profile string `mapstructure:"profile"`
	// Leaf is the time label of the exported leaf.
	Leaf   uint32 `mapstructure:"leaf"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// Config holds all runtime configuration for a generation run.
// Values are populated from .cdt.yaml, CDT_* env vars, and CLI flags.
type Config struct {
	Simplices    int          `mapstructure:"simplices"`
	Timeslices   int          `mapstructure:"timeslices"`
	Seed         uint64       `mapstructure:"seed"`
	Workers      int          `mapstructure:"workers"`
	MaxFixPasses int          `mapstructure:"max_fix_passes"`
	Verbose      bool         `mapstructure:"verbose"`
	Output       OutputConfig `mapstructure:"output"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("simplices", 6400)
	viper.SetDefault("timeslices", 16)
	viper.SetDefault("seed", 1)
	viper.SetDefault("workers", 1)
	viper.SetDefault("max_fix_passes", 20)
	viper.SetDefault("verbose", false)
	viper.SetDefault("output.stl", "")
	viper.SetDefault("output.png", "")
	viper.SetDefault("output.profile", "")
	viper.SetDefault("output.leaf", 1)
	viper.SetDefault("output.width", 800)
	viper.SetDefault("output.height", 600)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default away.
func (c Config) Validate() error {
	switch {
	case c.Timeslices < 1:
		return fmt.Errorf("timeslices must be positive, got %d", c.Timeslices)
	case c.Simplices < 1:
		return fmt.Errorf("simplices must be positive, got %d", c.Simplices)
	case c.MaxFixPasses < 1:
		return fmt.Errorf("max_fix_passes must be positive, got %d", c.MaxFixPasses)
	case c.Output.PNG != "" && c.Output.STL == "":
		return errors.New("output.png requires output.stl")
	case c.Output.Width < 1 || c.Output.Height < 1:
		return fmt.Errorf("output size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	return nil
}
