package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
	"github.com/vovakirdan/gridsnake/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long:  `Shows every autoplay difficulty preset with overrides from snake.yaml applied.`,
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	presets, err := resolvedPresets(cfg)
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return nil
	}

	def := cfg.Difficulty()

	fmt.Println("Difficulty presets:")
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %-11s  %s\n", "Name", "Tick", "Commit prob", "Keeps heading")
	fmt.Printf("  %-10s  %-8s  %-11s  %s\n", "----", "----", "-----------", "-------------")

	for _, p := range presets {
		name := string(p.Name)
		if p.Name == def {
			name += "*"
		}
		fmt.Printf("  %-10s  %-8s  %-11.2f  %t\n", name, p.TickInterval, p.CommitProbability, p.KeepHeading)
	}

	fmt.Println()
	fmt.Println("* default difficulty")
	fmt.Println("Run 'gridsnake play --difficulty <name>' to play at a preset.")
	return nil
}

// resolvedPresets returns every registered preset with config overrides applied.
func resolvedPresets(cfg config.SnakeConfig) ([]autoplay.Preset, error) {
	registered := autoplay.List()
	presets := make([]autoplay.Preset, 0, len(registered))
	for _, r := range registered {
		p, err := cfg.Preset(r.Name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}
