package autoplay

import (
	"slices"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// SafeDirections returns the headings that do not end the game on the next
// tick, in snake.Directions order. The reversal of the current heading is
// excluded for snakes longer than one segment.
func SafeDirections(g *snake.Game) []snake.Direction {
	reverse := g.Direction().Opposite()

	safe := make([]snake.Direction, 0, len(snake.Directions))
	for _, d := range snake.Directions {
		if g.Len() > 1 && d == reverse {
			continue
		}
		if g.Probe(d) != snake.CollisionNone {
			continue
		}
		safe = append(safe, d)
	}
	return safe
}

// closest returns the candidates whose next head is nearest to food by
// Manhattan distance. Without food every candidate is equally good.
func closest(g *snake.Game, candidates []snake.Direction) []snake.Direction {
	food, ok := g.Food()
	if !ok {
		return candidates
	}

	head := g.Head()
	bestDist := -1
	var best []snake.Direction
	for _, d := range candidates {
		dist := head.Add(d.Delta()).Manhattan(food)
		switch {
		case bestDist < 0 || dist < bestDist:
			bestDist = dist
			best = []snake.Direction{d}
		case dist == bestDist:
			best = append(best, d)
		}
	}
	return best
}

// Suggest picks the next heading for g under preset p. It only reads g; the
// only side effect is consuming draws from rng.
//
// With no safe move the current direction is returned without drawing.
// A KeepHeading preset also returns without drawing when the current heading
// is already among the closest moves. Otherwise one Float64 draw decides
// between the closest moves and all safe moves, and one Intn draw picks
// within that pool.
func Suggest(g *snake.Game, rng core.Source, p Preset) snake.Direction {
	safe := SafeDirections(g)
	if len(safe) == 0 {
		return g.Direction()
	}

	best := closest(g, safe)
	if p.KeepHeading && slices.Contains(best, g.Direction()) {
		return g.Direction()
	}

	pool := safe
	if rng.Float64() < p.CommitProbability {
		pool = best
	}
	return pool[rng.Intn(len(pool))]
}

// Steer feeds the suggested heading through g.SetDirection, exactly as a
// player's input would be, and returns it. Finished games are left alone.
func Steer(g *snake.Game, rng core.Source, p Preset) snake.Direction {
	if g.IsGameOver() {
		return g.Direction()
	}
	d := Suggest(g, rng, p)
	g.SetDirection(d)
	return d
}
