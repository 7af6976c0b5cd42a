package core

// Action is a player intent decoded from a key press. Front ends map keys to
// actions and actions to session calls.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow
	ActionDown            // S, Down arrow
	ActionLeft            // A, Left arrow
	ActionRight           // D, Right arrow
	ActionPause           // P, Escape - pause/unpause game
	ActionRestart         // R key - restart game after game over
	ActionAutoplay        // Tab - toggle autoplay steering
	ActionQuit            // Q, Ctrl+C - exit game
)

var actionNames = [...]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionPause:    "Pause",
	ActionRestart:  "Restart",
	ActionAutoplay: "Autoplay",
	ActionQuit:     "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// IsDirectional reports whether the action steers the snake.
func (a Action) IsDirectional() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}
