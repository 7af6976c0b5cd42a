// Package config provides YAML-based configuration loading for gridsnake:
// board dimensions, autoplay defaults and per-difficulty preset tuning.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Board    BoardConfig             `yaml:"board"`
	Autoplay AutoplayConfig          `yaml:"autoplay"`
	Presets  map[string]PresetConfig `yaml:"presets"`
}

// BoardConfig defines the grid size. Zero values mean "fit the terminal".
type BoardConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// AutoplayConfig defines whether the policy drives the snake by default and
// which difficulty it plays at.
type AutoplayConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Difficulty string `yaml:"difficulty"`
}

// PresetConfig overrides the tuning of a registered difficulty.
// Unset fields keep the built-in value; an explicit commit_probability of 0
// is honored.
type PresetConfig struct {
	CommitProbability *float64 `yaml:"commit_probability"`
	TickIntervalMS    *int     `yaml:"tick_interval_ms"`
}

// TickInterval returns the configured interval as a duration, or 0 when unset.
func (p PresetConfig) TickInterval() time.Duration {
	if p.TickIntervalMS == nil {
		return 0
	}
	return time.Duration(*p.TickIntervalMS) * time.Millisecond
}

// Validate reports the first setting that cannot produce a playable session.
func (c SnakeConfig) Validate() error {
	if c.Board.Columns < 0 || c.Board.Rows < 0 {
		return fmt.Errorf("config: board %dx%d must not be negative", c.Board.Columns, c.Board.Rows)
	}
	if (c.Board.Columns == 0) != (c.Board.Rows == 0) {
		return fmt.Errorf("config: board columns and rows must both be set or both be zero")
	}
	if c.Autoplay.Difficulty != "" {
		if _, err := autoplay.ParseDifficulty(c.Autoplay.Difficulty); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	for name, p := range c.Presets {
		if _, err := autoplay.ParseDifficulty(name); err != nil {
			return fmt.Errorf("config: presets: %w", err)
		}
		if cp := p.CommitProbability; cp != nil && (*cp < 0 || *cp > 1) {
			return fmt.Errorf("config: preset %q commit_probability %v outside [0, 1]", name, *cp)
		}
		if ms := p.TickIntervalMS; ms != nil && *ms <= 0 {
			return fmt.Errorf("config: preset %q tick_interval_ms must be positive", name)
		}
	}
	return nil
}
