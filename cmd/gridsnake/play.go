package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagDifficulty string
	flagAutoplay   bool
	flagColumns    int
	flagRows       int
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in the terminal",
	Long: `Start a game of snake. Without --difficulty a menu lets you pick one.

Controls:
  Arrows/WASD  - Steer
  P/Esc/Space  - Pause
  Tab          - Toggle autoplay
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty presets:
  relaxed  - Slow ticks, the autoplay wanders a lot
  normal   - Medium ticks, usually heads for food
  intense  - Fast ticks, almost always heads for food

Examples:
  gridsnake play
  gridsnake play --difficulty intense --autoplay
  gridsnake play --columns 30 --rows 20 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: relaxed, normal, intense")
	playCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Start with autoplay steering")
	playCmd.Flags().IntVar(&flagColumns, "columns", 0, "Board width in cells (0 = fit terminal)")
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Board height in cells (0 = fit terminal)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write run logs to this file (default: discard)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Get terminal size for the default board
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	columns, rows, err := boardSize(cfg.Board, flagColumns, flagRows, width, height)
	if err != nil {
		return err
	}

	// Open run log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	difficulty := cfg.Difficulty()
	autoplayOn := cfg.Autoplay.Enabled || flagAutoplay
	if cmd.Flags().Changed("difficulty") {
		if difficulty, err = autoplay.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	} else {
		presets, err := resolvedPresets(cfg)
		if err != nil {
			return err
		}
		selection, err := tui.RunMenu(presets, tui.MenuSelection{Difficulty: difficulty, Autoplay: autoplayOn}, highScores(store), width)
		if err != nil {
			return err
		}
		// User quit from the menu
		if selection == nil {
			return nil
		}
		difficulty, autoplayOn = selection.Difficulty, selection.Autoplay
	}

	preset, err := cfg.Preset(difficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []session.Option{session.WithLogger(logger), session.WithPreset(preset)}
	if store != nil {
		opts = append(opts, session.WithResultSaver(store))
	}

	s, err := session.New(core.RuntimeConfig{
		Columns:      columns,
		Rows:         rows,
		Seed:         baseSeed(),
		TickInterval: preset.TickInterval,
		Difficulty:   string(difficulty),
		Autoplay:     autoplayOn,
	}, opts...)
	if err != nil {
		return err
	}

	best := 0
	if store != nil {
		if best, err = store.HighScore(string(difficulty)); err != nil {
			logger.Warn("could not read high score", "error", err)
		}
	}

	if err := tui.Run(s, best); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// boardSize picks the grid: --columns/--rows win over the config file, and a
// board left unset fits the terminal. The flags must be given as a pair.
func boardSize(board config.BoardConfig, columns, rows, termWidth, termHeight int) (int, int, error) {
	if columns < 0 || rows < 0 {
		return 0, 0, fmt.Errorf("board %dx%d must not be negative", columns, rows)
	}
	if (columns == 0) != (rows == 0) {
		return 0, 0, fmt.Errorf("--columns and --rows must be set together")
	}
	if columns == 0 {
		columns, rows = board.Columns, board.Rows
	}
	if columns == 0 || rows == 0 {
		columns, rows = core.BoardForScreen(termWidth, termHeight, tui.HUDLines)
	}
	return columns, rows, nil
}

// playLogger returns a logger that stays off the alternate screen: it writes
// to --log-file when set and discards otherwise.
func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}

	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// highScores returns the best score per difficulty, or nil without a store.
func highScores(store *storage.Store) map[string]int {
	if store == nil {
		return nil
	}
	stats, err := store.AllStats()
	if err != nil {
		return nil
	}
	scores := make(map[string]int, len(stats))
	for d, st := range stats {
		scores[d] = st.HighScore
	}
	return scores
}
