package snake

import "slices"

// GameStateType represents the lifecycle state of a game.
type GameStateType string

const (
	StateRunning  GameStateType = "running"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing, logging
// and rendering. It shares no memory with the Game it was taken from.
type Snapshot struct {
	Tick          uint64
	Columns       int
	Rows          int
	Snake         []GridPoint // Head first
	Dir           Direction
	PendingDir    Direction
	HasPending    bool
	Food          GridPoint
	HasFood       bool
	Score         int
	PendingGrowth int
	State         GameStateType
	EndReason     Collision
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StateRunning
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:          g.ticks,
		Columns:       g.columns,
		Rows:          g.rows,
		Snake:         slices.Clone(g.body),
		Dir:           g.direction,
		PendingDir:    g.pendingDir,
		HasPending:    g.hasPending,
		Food:          g.food,
		HasFood:       g.hasFood,
		Score:         g.score,
		PendingGrowth: g.pendingGrowth,
		State:         state,
		EndReason:     g.endReason,
	}
}

// Head returns the head segment of the snapshot.
func (s Snapshot) Head() GridPoint {
	if len(s.Snake) == 0 {
		return GridPoint{}
	}
	return s.Snake[0]
}
