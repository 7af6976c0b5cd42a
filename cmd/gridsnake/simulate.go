package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagSimDifficulty string
	flagSimGames      int
	flagSimMaxTicks   int
	flagSimColumns    int
	flagSimRows       int
	flagSimRealtime   bool
	flagSimNoRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autoplay games",
	Long: `Run autoplay games without a terminal UI and print a summary.

Game i is seeded with --seed + i, so a fixed --seed reproduces the whole batch.
Finished runs are recorded to the runs database unless --no-record is set.

Examples:
  gridsnake simulate --games 10
  gridsnake simulate --difficulty intense --seed 7 --max-ticks 5000
  gridsnake simulate --realtime --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	def := core.DefaultConfig()
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset (default: from config)")
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 10000, "Tick limit per game (0 = no limit, headless mode only)")
	simulateCmd.Flags().IntVar(&flagSimColumns, "columns", def.Columns, "Board width in cells")
	simulateCmd.Flags().IntVar(&flagSimRows, "rows", def.Rows, "Board height in cells")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick at the preset interval instead of as fast as possible")
	simulateCmd.Flags().BoolVar(&flagSimNoRecord, "no-record", false, "Do not record runs to the database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagSimGames < 1 {
		return fmt.Errorf("--games must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	difficulty := cfg.Difficulty()
	if flagSimDifficulty != "" {
		if difficulty, err = autoplay.ParseDifficulty(flagSimDifficulty); err != nil {
			return err
		}
	}
	preset, err := cfg.Preset(difficulty)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagSimNoRecord {
		if store, err = storage.Open(flagDBPath); err != nil {
			logger.Warn("runs will not be recorded", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := baseSeed()
	results := make([]session.RunResult, 0, flagSimGames)

	for i := 0; i < flagSimGames; i++ {
		opts := []session.Option{session.WithLogger(logger), session.WithPreset(preset)}
		if store != nil {
			opts = append(opts, session.WithResultSaver(store))
		}

		s, err := session.New(core.RuntimeConfig{
			Columns:      flagSimColumns,
			Rows:         flagSimRows,
			Seed:         seed + int64(i),
			TickInterval: preset.TickInterval,
			Difficulty:   string(difficulty),
			Autoplay:     true,
		}, opts...)
		if err != nil {
			return err
		}

		var res session.RunResult
		if flagSimRealtime {
			res, err = s.Run(ctx)
			if errors.Is(err, context.Canceled) {
				logger.Info("simulation interrupted", "games_played", len(results))
				break
			}
		} else {
			res = s.RunToEnd(flagSimMaxTicks)
		}
		results = append(results, res)

		if ctx.Err() != nil {
			break
		}
	}

	printSummary(preset, results)
	return nil
}

// printSummary prints one line per game followed by the aggregate.
func printSummary(preset autoplay.Preset, results []session.RunResult) {
	fmt.Printf("\n  %s autoplay, %dx%d board\n\n", preset.Name, flagSimColumns, flagSimRows)
	fmt.Printf("  %-4s  %-20s  %6s  %6s  %8s  %-10s\n", "GAME", "SEED", "SCORE", "LENGTH", "TICKS", "END")
	fmt.Println("  " + strings.Repeat("-", 64))

	best, total := 0, 0
	for i, r := range results {
		fmt.Printf("  %-4d  %-20d  %6d  %6d  %8d  %-10s\n", i+1, r.Seed, r.Score, r.Length, r.Ticks, r.EndReason)
		total += r.Score
		best = max(best, r.Score)
	}

	if len(results) == 0 {
		fmt.Println("  No games played.")
		return
	}
	fmt.Println()
	fmt.Printf("  Games: %d  Best: %d  Avg: %.1f\n\n", len(results), best, float64(total)/float64(len(results)))
}
