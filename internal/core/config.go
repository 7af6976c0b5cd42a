// Package core holds the small types shared by the engine and its front ends:
// the random source, run parameters, input actions and the screen buffer.
// It has no third-party dependencies.
package core

import "time"

// RuntimeConfig contains the parameters a driver needs to start a game.
type RuntimeConfig struct {
	Columns      int           // Board width in cells
	Rows         int           // Board height in cells
	Seed         int64         // RNG seed for deterministic gameplay
	TickInterval time.Duration // Time between simulation ticks; 0 uses the preset's
	Difficulty   string        // Autoplay preset name
	Autoplay     bool          // Whether the autoplay policy steers
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Columns:    20,
		Rows:       15,
		Difficulty: "normal",
		Seed:       0, // 0 means use current time in platform layer
	}
}

// BoardForScreen derives a board size that fits a terminal of the given size.
// Each cell is drawn two characters wide; hudLines rows are reserved for the HUD
// and the border takes one cell on every side.
func BoardForScreen(screenW, screenH, hudLines int) (columns, rows int) {
	columns = (screenW - 2) / 2
	rows = screenH - hudLines - 2
	return max(columns, 3), max(rows, 3)
}
