package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagScoresDifficulty  string
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the best recorded runs and per-difficulty statistics.

Examples:
  gridsnake scores
  gridsnake scores --difficulty intense --limit 20
  gridsnake scores -i
  gridsnake scores --clear --difficulty relaxed`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show runs at this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse runs in a scoreboard UI")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete recorded runs (for --difficulty, or all)")
}

func runScores(cmd *cobra.Command, args []string) error {
	difficulty := ""
	if flagScoresDifficulty != "" {
		d, err := autoplay.ParseDifficulty(flagScoresDifficulty)
		if err != nil {
			return err
		}
		difficulty = string(d)
	}

	// Open run log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(difficulty); err != nil {
			return fmt.Errorf("error clearing runs: %w", err)
		}
		fmt.Println("Runs cleared.")
		return nil
	}

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, difficultyNames(), width, height)
	}

	runs, err := store.TopRuns(difficulty, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	title := difficulty
	if title == "" {
		title = "all difficulties"
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gridsnake play' or 'gridsnake simulate' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-8s  %-6s  %-10s  %s\n", "Rank", "Score", "Length", "Ticks", "Level", "Mode", "End", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-8s  %-6s  %-10s  %s\n", "----", "-----", "------", "-----", "-----", "----", "---", "----")

	for i, r := range runs {
		mode := "manual"
		if r.Autoplay {
			mode = "auto"
		}
		fmt.Printf("  %-4d  %-6d  %-6d  %-7d  %-8s  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Length, r.Ticks, r.Difficulty, mode, r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(difficulty)
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Runs: %d (%d autoplay)  Best: %d  Avg: %.1f  Longest: %d ticks\n",
		stats.RunsCount, stats.AutoplayCount, stats.HighScore, stats.AvgScore, stats.LongestTicks)

	return nil
}

// difficultyNames lists registered difficulties, slowest first.
func difficultyNames() []string {
	presets := autoplay.List()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = string(p.Name)
	}
	return names
}
