// Package snake implements the deterministic grid Snake engine: board state,
// per-tick movement, collision and growth rules, and seeded food placement.
//
// A Game is a plain value owned by a single driver. It is not safe for
// concurrent use; every operation that needs entropy takes the random source
// explicitly so a fixed seed always replays the same game.
package snake

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// ErrInvalidBoard is returned when a game is created with non-positive dimensions.
var ErrInvalidBoard = errors.New("snake: board dimensions must be positive")

// InitialLength is the number of segments a new snake starts with.
const InitialLength = 3

// Collision describes why a game ended.
type Collision string

const (
	CollisionNone      Collision = ""
	CollisionWall      Collision = "wall"
	CollisionSelf      Collision = "self"
	CollisionBoardFull Collision = "board_full"
)

// TickResult reports what a single Tick did.
type TickResult struct {
	Skipped   bool      // Game over or paused, nothing happened
	Moved     bool      // The head advanced one cell
	Ate       bool      // The head landed on food
	Collision Collision // Set when this tick ended the game
}

// Game is the aggregate root of one Snake game.
type Game struct {
	columns int
	rows    int

	// Snake state
	body       []GridPoint // Head at index 0
	direction  Direction
	pendingDir Direction // Buffered request, valid only when hasPending
	hasPending bool

	food    GridPoint
	hasFood bool

	score         int
	pendingGrowth int
	ticks         uint64

	gameOver  bool
	paused    bool
	endReason Collision
}

// NewGame creates a game on a columns x rows board with a three segment snake
// centered on the board heading right, and places the first food.
func NewGame(columns, rows int, rng core.Source) (*Game, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidBoard, columns, rows)
	}
	g := &Game{columns: columns, rows: rows}
	g.init(rng)
	return g, nil
}

// init lays out the starting snake and food. Boards narrower than three
// columns are accepted but start with part of the body outside the grid.
func (g *Game) init(rng core.Source) {
	head := GridPoint{X: max(2, g.columns/2), Y: g.rows / 2}
	g.body = make([]GridPoint, 0, InitialLength)
	for i := range InitialLength {
		g.body = append(g.body, GridPoint{X: head.X - i, Y: head.Y})
	}
	g.direction = DirRight
	g.PlaceFood(rng)
}

// Reset replaces the whole state with a fresh game of the same dimensions.
// It is the only way out of the game over state.
func (g *Game) Reset(rng core.Source) {
	*g = Game{columns: g.columns, rows: g.rows}
	g.init(rng)
}

// SetDirection buffers a heading for the next tick. The last request before a
// tick wins. Reversing onto the neck is rejected when the snake is longer
// than one segment; the check uses the committed direction, not the buffered one.
func (g *Game) SetDirection(d Direction) {
	if g.gameOver || !d.Valid() {
		return
	}
	if len(g.body) > 1 && d == g.direction.Opposite() {
		return
	}
	g.pendingDir = d
	g.hasPending = true
}

// TogglePause flips the paused flag. Buffered input is kept.
func (g *Game) TogglePause() {
	if g.gameOver {
		return
	}
	g.paused = !g.paused
}

// Tick advances the game by one step.
func (g *Game) Tick(rng core.Source) TickResult {
	if g.gameOver || g.paused {
		return TickResult{Skipped: true}
	}
	g.ticks++

	if g.hasPending {
		g.direction = g.pendingDir
		g.hasPending = false
	}

	next := g.body[0].Add(g.direction.Delta())
	if reason := g.check(next); reason != CollisionNone {
		g.end(reason)
		return TickResult{Collision: reason}
	}

	g.body = slices.Insert(g.body, 0, next)

	ate := g.hasFood && next == g.food
	if ate {
		g.score++
		g.pendingGrowth++
		g.PlaceFood(rng)
	}

	// Growth is materialized by skipping the tail removal.
	if g.pendingGrowth > 0 {
		g.pendingGrowth--
	} else {
		g.body = g.body[:len(g.body)-1]
	}

	return TickResult{Moved: true, Ate: ate, Collision: g.endReason}
}

// Probe reports the collision the head would suffer if it moved one cell in d
// on the next tick, using the same rules as Tick. It does not mutate the game.
func (g *Game) Probe(d Direction) Collision {
	if len(g.body) == 0 {
		return CollisionNone
	}
	return g.check(g.body[0].Add(d.Delta()))
}

// check applies the wall and self collision rules to a candidate head.
// The tail only counts as an obstacle when it stays in place, i.e. when the
// snake grows on this step.
func (g *Game) check(next GridPoint) Collision {
	if !g.InBounds(next) {
		return CollisionWall
	}

	willGrow := g.pendingGrowth > 0 || (g.hasFood && next == g.food)
	obstacles := g.body
	if !willGrow {
		obstacles = g.body[:len(g.body)-1]
	}

	occupied := mapset.New[GridPoint]()
	for _, p := range obstacles {
		occupied.Put(p)
	}
	if occupied.Has(next) {
		return CollisionSelf
	}
	return CollisionNone
}

// PlaceFood puts food on a uniformly chosen free cell. Free cells are
// enumerated row-major (all columns of row 0, then row 1, ...) and indexed by
// a single draw, so the same source and board always pick the same cell.
// A board with no free cell ends the game.
func (g *Game) PlaceFood(rng core.Source) {
	if g.gameOver {
		return
	}

	occupied := mapset.New[GridPoint]()
	for _, p := range g.body {
		occupied.Put(p)
	}

	free := make([]GridPoint, 0, max(0, g.columns*g.rows-occupied.Size()))
	for y := range g.rows {
		for x := range g.columns {
			p := GridPoint{X: x, Y: y}
			if !occupied.Has(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.hasFood = false
		g.end(CollisionBoardFull)
		return
	}

	g.food = free[rng.Intn(len(free))]
	g.hasFood = true
}

func (g *Game) end(reason Collision) {
	g.gameOver = true
	g.endReason = reason
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.body = slices.Clone(g.body)
	return &c
}

// InBounds reports whether p lies on the board.
func (g *Game) InBounds(p GridPoint) bool {
	return p.X >= 0 && p.X < g.columns && p.Y >= 0 && p.Y < g.rows
}

// Occupies reports whether any snake segment is on p.
func (g *Game) Occupies(p GridPoint) bool {
	return slices.Contains(g.body, p)
}

// Columns returns the board width.
func (g *Game) Columns() int { return g.columns }

// Rows returns the board height.
func (g *Game) Rows() int { return g.rows }

// Snake returns a copy of the body, head first.
func (g *Game) Snake() []GridPoint { return slices.Clone(g.body) }

// Head returns the head segment.
func (g *Game) Head() GridPoint { return g.body[0] }

// Len returns the number of segments.
func (g *Game) Len() int { return len(g.body) }

// Direction returns the committed heading.
func (g *Game) Direction() Direction { return g.direction }

// PendingDirection returns the buffered heading, if any.
func (g *Game) PendingDirection() (Direction, bool) { return g.pendingDir, g.hasPending }

// Food returns the food cell. ok is false once the board has no free cell.
func (g *Game) Food() (p GridPoint, ok bool) { return g.food, g.hasFood }

// Score returns the number of food items eaten.
func (g *Game) Score() int { return g.score }

// PendingGrowth returns the segments still owed to the body.
func (g *Game) PendingGrowth() int { return g.pendingGrowth }

// Ticks returns how many ticks have been applied.
func (g *Game) Ticks() uint64 { return g.ticks }

// IsGameOver reports whether the game has ended.
func (g *Game) IsGameOver() bool { return g.gameOver }

// IsPaused reports whether ticks are suspended.
func (g *Game) IsPaused() bool { return g.paused }

// EndReason returns why the game ended, or CollisionNone.
func (g *Game) EndReason() Collision { return g.endReason }

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Board: %dx%d\n", g.ticks, g.score, g.columns, g.rows)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Pending growth: %d\n", len(g.body), g.direction, g.pendingGrowth)
	if len(g.body) > 0 {
		fmt.Fprintf(&b, "Head: %s, Food: %s (present: %v)\n", g.body[0], g.food, g.hasFood)
	}
	fmt.Fprintf(&b, "GameOver: %v (%s), Paused: %v\n", g.gameOver, g.endReason, g.paused)
	return b.String()
}
