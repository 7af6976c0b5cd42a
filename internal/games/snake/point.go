package snake

import (
	"fmt"
	"strings"
)

// GridPoint is a cell coordinate on the board.
type GridPoint struct {
	X, Y int
}

// Add returns p translated by d.
func (p GridPoint) Add(d GridPoint) GridPoint {
	return GridPoint{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns the taxicab distance between p and q.
func (p GridPoint) Manhattan(q GridPoint) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (p GridPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every heading in a fixed order. Callers that enumerate
// candidates rely on this order for reproducible results.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step for the direction. Y grows downwards.
func (d Direction) Delta() GridPoint {
	switch d {
	case DirUp:
		return GridPoint{X: 0, Y: -1}
	case DirDown:
		return GridPoint{X: 0, Y: 1}
	case DirLeft:
		return GridPoint{X: -1, Y: 0}
	case DirRight:
		return GridPoint{X: 1, Y: 0}
	default:
		return GridPoint{}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name such as "up" or "Left" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return DirUp, fmt.Errorf("snake: unknown direction %q", s)
}
