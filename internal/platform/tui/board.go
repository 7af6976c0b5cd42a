package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// HUDLines is the number of terminal rows used around the bordered grid: the
// HUD line, the status line and the help line rendered by the model.
const HUDLines = 3

const cellWidth = 2

// Cell glyphs, each cellWidth runes wide.
var (
	glyphHead = [cellWidth]rune{'▓', '▓'}
	glyphBody = [cellWidth]rune{'█', '█'}
	glyphFood = [cellWidth]rune{'(', ')'}
)

// HUD holds the session facts shown around the board.
type HUD struct {
	Difficulty string
	Autoplay   bool
	HighScore  int
}

// ScreenSize returns the screen buffer size needed to draw a columns x rows
// board, excluding the help line.
func ScreenSize(columns, rows int) (width, height int) {
	return columns*cellWidth + 2, rows + 2 + 2
}

// DrawBoard draws snap into dst with the HUD above the board and the status
// line below it. The board and HUD are centered horizontally and clipped on
// the right if dst is too small.
func DrawBoard(dst *core.Screen, snap snake.Snapshot, hud HUD) {
	dst.Clear()

	boxW := snap.Columns*cellWidth + 2
	boxH := snap.Rows + 2
	ox := max((dst.Width()-boxW)/2, 0)
	oy := 1

	line := hudLine(snap, hud)
	dst.Text(max((dst.Width()-len([]rune(line)))/2, 0), 0, line, core.ColorHUD)
	dst.Box(ox, oy, boxW, boxH, core.ColorBorder)

	cell := func(p snake.GridPoint, g [cellWidth]rune, c core.Color) {
		x := ox + 1 + p.X*cellWidth
		y := oy + 1 + p.Y
		for i, r := range g {
			dst.Set(x+i, y, r, c)
		}
	}

	if snap.HasFood {
		cell(snap.Food, glyphFood, core.ColorFood)
	}
	// Draw tail first so the head wins if segments ever overlap on screen.
	for i := len(snap.Snake) - 1; i >= 1; i-- {
		cell(snap.Snake[i], glyphBody, core.ColorBody)
	}
	if len(snap.Snake) > 0 {
		headColor := core.ColorHead
		if snap.State == snake.StateGameOver {
			headColor = core.ColorCrash
		}
		cell(snap.Snake[0], glyphHead, headColor)
	}

	dst.TextCentered(oy+boxH, statusLine(snap), core.ColorStatus)
}

func hudLine(snap snake.Snapshot, hud HUD) string {
	mode := "manual"
	if hud.Autoplay {
		mode = "auto"
	}
	parts := []string{
		fmt.Sprintf("SCORE %d", snap.Score),
		fmt.Sprintf("LEN %d", len(snap.Snake)),
		fmt.Sprintf("BEST %d", max(hud.HighScore, snap.Score)),
		strings.ToUpper(hud.Difficulty),
		mode,
	}
	return strings.Join(parts, "  ")
}

func statusLine(snap snake.Snapshot) string {
	switch snap.State {
	case snake.StatePaused:
		return "PAUSED"
	case snake.StateGameOver:
		return fmt.Sprintf("GAME OVER (%s)  r: restart", strings.ReplaceAll(string(snap.EndReason), "_", " "))
	}
	return ""
}
