package snake

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// ErrInvalidLayout is returned by FromLayout for positions the rules could never reach.
var ErrInvalidLayout = errors.New("snake: invalid layout")

// Layout describes an arbitrary running position, used for scenarios and replays.
type Layout struct {
	Columns       int
	Rows          int
	Snake         []GridPoint // Head first
	Direction     Direction
	Food          GridPoint
	HasFood       bool
	PendingGrowth int
}

// FromLayout builds a running game from l.
func FromLayout(l Layout) (*Game, error) {
	if l.Columns <= 0 || l.Rows <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidBoard, l.Columns, l.Rows)
	}
	if len(l.Snake) == 0 {
		return nil, fmt.Errorf("%w: empty snake", ErrInvalidLayout)
	}
	if !l.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidLayout, l.Direction)
	}
	if l.PendingGrowth < 0 {
		return nil, fmt.Errorf("%w: negative pending growth", ErrInvalidLayout)
	}

	g := &Game{
		columns:       l.Columns,
		rows:          l.Rows,
		body:          slices.Clone(l.Snake),
		direction:     l.Direction,
		food:          l.Food,
		hasFood:       l.HasFood,
		pendingGrowth: l.PendingGrowth,
	}

	seen := mapset.New[GridPoint]()
	for _, p := range g.body {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: segment %s out of bounds", ErrInvalidLayout, p)
		}
		if seen.Has(p) {
			return nil, fmt.Errorf("%w: duplicate segment %s", ErrInvalidLayout, p)
		}
		seen.Put(p)
	}
	if l.HasFood && (!g.InBounds(l.Food) || seen.Has(l.Food)) {
		return nil, fmt.Errorf("%w: food %s not on a free cell", ErrInvalidLayout, l.Food)
	}

	return g, nil
}
