package core

// Color names the role a cell plays on the board. The front end decides which
// terminal color each role gets.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHUD           // Score line above the board
	ColorBorder        // Board outline
	ColorFood
	ColorBody
	ColorHead
	ColorCrash  // Head after the game ended
	ColorStatus // PAUSED / GAME OVER line
)
