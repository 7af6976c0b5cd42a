// gridsnake is a deterministic grid Snake game for the terminal with a
// heuristic autoplay mode.
//
// Usage:
//
//	gridsnake play             - Play in the terminal
//	gridsnake simulate         - Run headless autoplay games
//	gridsnake scores           - Show the best recorded runs
//	gridsnake presets          - List difficulty presets
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.gridsnake/runs.db)
//	--config <path>      - Use a custom snake.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsnake",
	Short: "gridsnake - Snake on a grid, by hand or on autoplay",
	Long: `gridsnake is a deterministic Snake game for the terminal.

The same seed always produces the same food placement, and the autoplay
policy can steer the snake at three difficulty presets.

Available commands:
  play      - Play in the terminal
  simulate  - Run headless autoplay games and record them
  scores    - View the best recorded runs
  presets   - List difficulty presets

Examples:
  gridsnake play
  gridsnake play --difficulty intense --autoplay
  gridsnake simulate --games 20 --difficulty relaxed
  gridsnake scores --difficulty normal`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridsnake/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
}

// newLogger creates the CLI logger writing to w at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridsnake",
	})
	logger.SetLevel(level)
	return logger, nil
}

// loadConfig loads snake.yaml following the standard search order.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	return cfg, nil
}

// baseSeed returns --seed, or a time-based seed when it is zero.
func baseSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
