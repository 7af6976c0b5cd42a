package core

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Columns != 20 || cfg.Rows != 15 {
		t.Errorf("default board = %dx%d, expected 20x15", cfg.Columns, cfg.Rows)
	}
	if cfg.Difficulty != "normal" || cfg.Autoplay {
		t.Errorf("default play = (%q, autoplay %v), expected normal manual play", cfg.Difficulty, cfg.Autoplay)
	}
	if cfg.TickInterval != 0 {
		t.Errorf("default tick interval = %v, expected 0 so the preset decides", cfg.TickInterval)
	}
}

func TestBoardForScreen(t *testing.T) {
	tests := []struct {
		name          string
		w, h, hud     int
		columns, rows int
	}{
		{"standard terminal", 80, 24, 3, 39, 19},
		{"odd width rounds down", 81, 24, 3, 39, 19},
		{"no hud", 40, 12, 0, 19, 10},
		{"tiny terminal clamps to minimum", 4, 4, 3, 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r := BoardForScreen(tc.w, tc.h, tc.hud)
			if c != tc.columns || r != tc.rows {
				t.Errorf("BoardForScreen(%d, %d, %d) = (%d, %d), expected (%d, %d)",
					tc.w, tc.h, tc.hud, c, r, tc.columns, tc.rows)
			}
		})
	}
}
