// Package autoplay provides the heuristic policy that steers a snake toward food
// and the registry of difficulty presets that tune it.
package autoplay

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Difficulty names a preset.
type Difficulty string

const (
	Relaxed Difficulty = "relaxed"
	Normal  Difficulty = "normal"
	Intense Difficulty = "intense"
)

// Preset is the configuration record behind a difficulty.
type Preset struct {
	Name Difficulty

	// CommitProbability is the chance of choosing among the moves closest to
	// food instead of any safe move.
	CommitProbability float64

	// TickInterval is the cadence the driver should tick at. The policy itself
	// never reads it.
	TickInterval time.Duration

	// KeepHeading keeps the current direction whenever it is already one of
	// the closest moves.
	KeepHeading bool
}

// Validate checks that the preset can drive the policy.
func (p Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("autoplay: preset name is empty")
	}
	if p.CommitProbability < 0 || p.CommitProbability > 1 {
		return fmt.Errorf("autoplay: preset %q commit probability %v outside [0, 1]", p.Name, p.CommitProbability)
	}
	if p.TickInterval <= 0 {
		return fmt.Errorf("autoplay: preset %q tick interval must be positive", p.Name)
	}
	return nil
}

// WithOverrides returns a copy of p with the given overrides applied. A nil
// commitProbability or a non-positive tickInterval keeps the current value.
func (p Preset) WithOverrides(commitProbability *float64, tickInterval time.Duration) Preset {
	if commitProbability != nil {
		p.CommitProbability = *commitProbability
	}
	if tickInterval > 0 {
		p.TickInterval = tickInterval
	}
	return p
}

var (
	presets = make(map[Difficulty]Preset)
	mu      sync.RWMutex
)

func init() {
	Register(Preset{Name: Relaxed, CommitProbability: 0.3, TickInterval: 240 * time.Millisecond})
	Register(Preset{Name: Normal, CommitProbability: 0.7, TickInterval: 180 * time.Millisecond})
	Register(Preset{Name: Intense, CommitProbability: 0.95, TickInterval: 120 * time.Millisecond, KeepHeading: true})
}

// Register adds a preset to the registry.
// Panics if the preset is invalid or its name is already registered.
func Register(p Preset) {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.Name]; exists {
		panic(fmt.Sprintf("autoplay: preset %q already registered", p.Name))
	}
	presets[p.Name] = p
}

// Lookup returns the preset registered under d.
func Lookup(d Difficulty) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[d]
	if !ok {
		return Preset{}, fmt.Errorf("autoplay: unknown difficulty %q", d)
	}
	return p, nil
}

// ParseDifficulty normalizes s and checks it names a registered preset.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(d); err != nil {
		return "", err
	}
	return d, nil
}

// List returns all registered presets ordered from slowest to fastest tick.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TickInterval != result[j].TickInterval {
			return result[i].TickInterval > result[j].TickInterval
		}
		return result[i].Name < result[j].Name
	})

	return result
}
