package autoplay

import (
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// straightSnake is a three segment snake at (5,5) heading right on a 10x10 board.
func straightSnake(t *testing.T, food snake.GridPoint) *snake.Game {
	t.Helper()
	g, err := snake.FromLayout(snake.Layout{
		Columns:   10,
		Rows:      10,
		Snake:     []snake.GridPoint{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}},
		Direction: snake.DirRight,
		Food:      food,
		HasFood:   true,
	})
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}
	return g
}

func mustPreset(t *testing.T, d Difficulty) Preset {
	t.Helper()
	p, err := Lookup(d)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", d, err)
	}
	return p
}

func TestSafeDirectionsExcludesReversal(t *testing.T) {
	g := straightSnake(t, snake.GridPoint{X: 9, Y: 9})

	got := SafeDirections(g)
	want := []snake.Direction{snake.DirUp, snake.DirDown, snake.DirRight}
	if !slices.Equal(got, want) {
		t.Errorf("SafeDirections = %v, want %v", got, want)
	}
}

func TestSafeDirectionsExcludesWallsAndBody(t *testing.T) {
	// Head in the top-left corner heading up, body wrapping to the right.
	g, err := snake.FromLayout(snake.Layout{
		Columns:   5,
		Rows:      5,
		Snake:     []snake.GridPoint{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		Direction: snake.DirUp,
		Food:      snake.GridPoint{X: 4, Y: 4},
		HasFood:   true,
	})
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}

	if got := SafeDirections(g); len(got) != 0 {
		t.Errorf("SafeDirections = %v, want none", got)
	}
}

func TestSafeDirectionsAllowsVacatingTail(t *testing.T) {
	layout := snake.Layout{
		Columns:   6,
		Rows:      6,
		Snake:     []snake.GridPoint{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}},
		Direction: snake.DirUp,
		Food:      snake.GridPoint{X: 5, Y: 5},
		HasFood:   true,
	}
	g, err := snake.FromLayout(layout)
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}
	if !slices.Contains(SafeDirections(g), snake.DirRight) {
		t.Error("moving onto the vacating tail should be safe")
	}

	layout.PendingGrowth = 1
	g, err = snake.FromLayout(layout)
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}
	if slices.Contains(SafeDirections(g), snake.DirRight) {
		t.Error("the tail should block a growing snake")
	}
}

func TestSuggestNoSafeMoveKeepsDirection(t *testing.T) {
	g, err := snake.FromLayout(snake.Layout{
		Columns:   5,
		Rows:      5,
		Snake:     []snake.GridPoint{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		Direction: snake.DirUp,
		Food:      snake.GridPoint{X: 4, Y: 4},
		HasFood:   true,
	})
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}
	rng := core.NewSequenceSource([]int{1}, []float64{0.1})

	if got := Suggest(g, rng, mustPreset(t, Normal)); got != snake.DirUp {
		t.Errorf("Suggest = %v, want current direction up", got)
	}
	if ints, floats := rng.Draws(); ints != 0 || floats != 0 {
		t.Errorf("no draws expected without safe moves, got %d ints, %d floats", ints, floats)
	}
}

func TestSuggestPresets(t *testing.T) {
	// Food straight above the head: only "up" is closest.
	// Safe moves in order: up, down, right.
	above := snake.GridPoint{X: 5, Y: 1}

	tests := []struct {
		name       string
		difficulty Difficulty
		food       snake.GridPoint
		ints       []int
		floats     []float64
		want       snake.Direction
		wantInts   int
		wantFloats int
	}{
		{"normal commits below threshold", Normal, above, []int{0}, []float64{0.5}, snake.DirUp, 1, 1},
		{"normal wanders above threshold", Normal, above, []int{1}, []float64{0.8}, snake.DirDown, 1, 1},
		{"relaxed commits below threshold", Relaxed, above, []int{0}, []float64{0.2}, snake.DirUp, 1, 1},
		{"relaxed wanders above threshold", Relaxed, above, []int{2}, []float64{0.5}, snake.DirRight, 1, 1},
		{"intense commits when heading is not best", Intense, above, []int{0}, []float64{0.9}, snake.DirUp, 1, 1},
		{"intense wanders on rare draw", Intense, above, []int{1}, []float64{0.97}, snake.DirDown, 1, 1},
		{"intense keeps heading toward food", Intense, snake.GridPoint{X: 9, Y: 5}, nil, nil, snake.DirRight, 0, 0},
		{"normal breaks ties uniformly", Normal, snake.GridPoint{X: 6, Y: 4}, []int{1}, []float64{0.0}, snake.DirRight, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := straightSnake(t, tc.food)
			rng := core.NewSequenceSource(tc.ints, tc.floats)

			if got := Suggest(g, rng, mustPreset(t, tc.difficulty)); got != tc.want {
				t.Errorf("Suggest = %v, want %v", got, tc.want)
			}
			ints, floats := rng.Draws()
			if ints != tc.wantInts || floats != tc.wantFloats {
				t.Errorf("draws = (%d, %d), want (%d, %d)", ints, floats, tc.wantInts, tc.wantFloats)
			}
		})
	}
}

func TestSuggestDoesNotMutate(t *testing.T) {
	g := straightSnake(t, snake.GridPoint{X: 5, Y: 1})
	before := g.Snapshot()

	Suggest(g, core.NewSource(1), mustPreset(t, Normal))

	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("Suggest mutated the game:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestSteerBuffersSuggestion(t *testing.T) {
	g := straightSnake(t, snake.GridPoint{X: 5, Y: 1})

	d := Steer(g, core.NewSequenceSource([]int{0}, []float64{0.0}), mustPreset(t, Normal))

	pending, ok := g.PendingDirection()
	if !ok || pending != d || d != snake.DirUp {
		t.Errorf("Steer returned %v, pending = %v (ok=%v), want up", d, pending, ok)
	}
	if g.Direction() != snake.DirRight {
		t.Error("Steer must not commit the direction itself")
	}
}

func TestSteerIgnoresFinishedGame(t *testing.T) {
	g, err := snake.FromLayout(snake.Layout{
		Columns:   4,
		Rows:      4,
		Snake:     []snake.GridPoint{{X: 3, Y: 1}, {X: 2, Y: 1}},
		Direction: snake.DirRight,
	})
	if err != nil {
		t.Fatalf("FromLayout failed: %v", err)
	}
	g.Tick(core.NewSource(1))
	if !g.IsGameOver() {
		t.Fatal("setup: expected game over")
	}

	rng := core.NewSequenceSource([]int{0}, []float64{0})
	if d := Steer(g, rng, mustPreset(t, Normal)); d != snake.DirRight {
		t.Errorf("Steer = %v on a finished game, want right", d)
	}
	if ints, floats := rng.Draws(); ints+floats != 0 {
		t.Error("Steer should not draw on a finished game")
	}
}

func playOut(t *testing.T, d Difficulty, seed int64, maxTicks int) snake.Snapshot {
	t.Helper()

	rng := core.NewSource(seed)
	g, err := snake.NewGame(12, 12, rng)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	p := mustPreset(t, d)

	for range maxTicks {
		if g.IsGameOver() {
			break
		}
		Steer(g, rng, p)
		g.Tick(rng)
	}
	return g.Snapshot()
}

func TestAutoplayIsDeterministic(t *testing.T) {
	for _, d := range []Difficulty{Relaxed, Normal, Intense} {
		t.Run(string(d), func(t *testing.T) {
			a := playOut(t, d, 77, 3000)
			b := playOut(t, d, 77, 3000)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("runs diverged:\n%+v\n%+v", a, b)
			}
		})
	}
}

func TestIntenseAutoplayEats(t *testing.T) {
	snap := playOut(t, Intense, 5, 3000)
	if snap.Score == 0 {
		t.Errorf("intense autoplay never reached food: %+v", snap)
	}
}
