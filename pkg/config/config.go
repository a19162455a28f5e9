// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/sortbench/pkg/errors"
)

const (
	DefaultLogLevel  = "info"
	DefaultOutputDir = "."
	DefaultScenario  = "Initial"
	DefaultStrategy  = "Merge Sort"
	DefaultSize      = 1000
	DefaultMinCrew   = 50
	DefaultMaxCrew   = 5000
	DefaultRepeat    = 1
	DefaultParallel  = 1
)

// Config is the sortbench configuration file.
type Config struct {
	LogLevel    string `toml:"log-level" json:"log-level"`
	LogFile     string `toml:"log-file" json:"log-file"`
	OutputDir   string `toml:"output-dir" json:"output-dir"`
	MetricsFile string `toml:"metrics-file" json:"metrics-file"`

	Run     RunConfig     `toml:"run" json:"run"`
	Compare CompareConfig `toml:"compare" json:"compare"`
}

// RunConfig holds the parameters of a single run. Range checks happen when
// the run starts so values overridden on the command line are covered too.
type RunConfig struct {
	Scenario string `toml:"scenario" json:"scenario"`
	Strategy string `toml:"strategy" json:"strategy"`
	Size     int    `toml:"size" json:"size"`
	Min      int    `toml:"min" json:"min"`
	Max      int    `toml:"max" json:"max"`
	// Seed of 0 seeds the generator from the clock.
	Seed int64 `toml:"seed" json:"seed"`
}

// CompareConfig controls the compare command.
type CompareConfig struct {
	Strategies []string `toml:"strategies" json:"strategies"`
	Repeat     int      `toml:"repeat" json:"repeat"`
	Parallel   int      `toml:"parallel" json:"parallel"`
}

// GetDefaultConfig returns the defaults of the original control panel.
func GetDefaultConfig() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		OutputDir: DefaultOutputDir,
		Run: RunConfig{
			Scenario: DefaultScenario,
			Strategy: DefaultStrategy,
			Size:     DefaultSize,
			Min:      DefaultMinCrew,
			Max:      DefaultMaxCrew,
		},
		Compare: CompareConfig{
			Strategies: []string{"merge", "quick", "smooth"},
			Repeat:     DefaultRepeat,
			Parallel:   DefaultParallel,
		},
	}
}

// LoadConfig decodes the TOML file at path on top of the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapError(errors.ErrLoadConfig, err, path)
	}

	cfg := GetDefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.WrapError(errors.ErrLoadConfig, err, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.WrapError(errors.ErrLoadConfig,
			errors.Errorf("unknown keys in config: %v", undecoded), path)
	}
	if err := cfg.ValidateAndAdjust(); err != nil {
		return nil, errors.WrapError(errors.ErrLoadConfig, err, path)
	}
	return cfg, nil
}

// ValidateAndAdjust normalizes the config and fills zero values with defaults.
func (c *Config) ValidateAndAdjust() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return errors.Errorf("unsupported log level: %s", c.LogLevel)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = DefaultOutputDir
	}
	if strings.TrimSpace(c.Run.Scenario) == "" {
		c.Run.Scenario = DefaultScenario
	}
	if strings.TrimSpace(c.Run.Strategy) == "" {
		c.Run.Strategy = DefaultStrategy
	}

	strategies := make([]string, 0, len(c.Compare.Strategies))
	for _, s := range c.Compare.Strategies {
		s = strings.TrimSpace(s)
		if s != "" {
			strategies = append(strategies, s)
		}
	}
	if len(strategies) == 0 {
		return errors.New("compare needs at least one strategy")
	}
	c.Compare.Strategies = strategies
	if c.Compare.Repeat <= 0 {
		return errors.Errorf("compare repeat must be > 0: %d", c.Compare.Repeat)
	}
	if c.Compare.Parallel <= 0 {
		return errors.Errorf("compare parallel must be > 0: %d", c.Compare.Parallel)
	}
	return nil
}
