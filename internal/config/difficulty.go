package config

import (
	"strings"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
)

// EnvDifficulty overrides the configured default difficulty.
const EnvDifficulty = "GRIDSNAKE_DIFFICULTY"

// Difficulty returns the default difficulty, honouring GRIDSNAKE_DIFFICULTY.
// An unknown value falls back to normal.
func (c SnakeConfig) Difficulty() autoplay.Difficulty {
	name := GetEnv(EnvDifficulty, c.Autoplay.Difficulty)
	if d, err := autoplay.ParseDifficulty(name); err == nil {
		return d
	}
	return autoplay.Normal
}

// Preset resolves the registered preset for d with any configured overrides applied.
func (c SnakeConfig) Preset(d autoplay.Difficulty) (autoplay.Preset, error) {
	p, err := autoplay.Lookup(d)
	if err != nil {
		return autoplay.Preset{}, err
	}

	for name, o := range c.Presets {
		if strings.EqualFold(name, string(d)) {
			p = p.WithOverrides(o.CommitProbability, o.TickInterval())
		}
	}
	return p, nil
}
