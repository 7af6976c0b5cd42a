package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

type memorySaver struct {
	mu      sync.Mutex
	results []RunResult
	err     error
}

func (m *memorySaver) SaveResult(r RunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return m.err
}

func (m *memorySaver) saved() []RunResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RunResult(nil), m.results...)
}

func testConfig(columns, rows int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Columns:    columns,
		Rows:       rows,
		Seed:       seed,
		Difficulty: "normal",
	}
}

func mustNew(t *testing.T, cfg core.RuntimeConfig, opts ...Option) *Session {
	t.Helper()
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestNewErrors(t *testing.T) {
	if _, err := New(testConfig(0, 5, 1)); !errors.Is(err, snake.ErrInvalidBoard) {
		t.Errorf("New() with empty board error = %v, want ErrInvalidBoard", err)
	}

	cfg := testConfig(10, 10, 1)
	cfg.Difficulty = "nightmare"
	if _, err := New(cfg); err == nil {
		t.Error("New() should reject an unknown difficulty")
	}
}

func TestNewUsesPresetInterval(t *testing.T) {
	s := mustNew(t, testConfig(10, 10, 1))
	if s.TickInterval() != 180*time.Millisecond {
		t.Errorf("TickInterval = %v, want the normal preset's 180ms", s.TickInterval())
	}

	cfg := testConfig(10, 10, 1)
	cfg.TickInterval = 50 * time.Millisecond
	s = mustNew(t, cfg)
	if s.TickInterval() != 50*time.Millisecond {
		t.Errorf("TickInterval = %v, want explicit 50ms", s.TickInterval())
	}
}

func TestStepRecordsFinishedRunOnce(t *testing.T) {
	saver := &memorySaver{}
	// Head starts at (2,2) heading right: three moves reach x=5, the wall.
	s := mustNew(t, testConfig(5, 5, 3), WithResultSaver(saver))

	for range 2 {
		if res := s.Step(); !res.Moved || res.Collision != snake.CollisionNone {
			t.Fatalf("unexpected early tick result %+v", res)
		}
	}
	if res := s.Step(); res.Collision != snake.CollisionWall {
		t.Fatalf("third tick = %+v, want wall collision", res)
	}
	if res := s.Step(); !res.Skipped {
		t.Error("ticks after game over should be skipped")
	}

	saved := saver.saved()
	if len(saved) != 1 {
		t.Fatalf("saver called %d times, want 1", len(saved))
	}
	r := saved[0]
	if r.EndReason != "wall" || r.Ticks != 3 || r.Length != snake.InitialLength+r.Score || r.Seed != 3 {
		t.Errorf("saved result = %+v", r)
	}
	if r.Autoplay {
		t.Error("run without autoplay marked as autoplay")
	}
	if r.RunID == "" || r.RunID != s.RunID() {
		t.Errorf("RunID = %q, session RunID = %q", r.RunID, s.RunID())
	}
	if got := s.Result(); got != r {
		t.Errorf("Result() = %+v, want the recorded %+v", got, r)
	}
}

func TestSaverErrorDoesNotStopPlay(t *testing.T) {
	saver := &memorySaver{err: errors.New("disk full")}
	s := mustNew(t, testConfig(5, 5, 3), WithResultSaver(saver))

	res := s.RunToEnd(100)
	if !res.Finished() || res.EndReason != "wall" {
		t.Errorf("RunToEnd = %+v, want a finished wall run", res)
	}
	if len(saver.saved()) != 1 {
		t.Errorf("saver should be tried exactly once")
	}
}

func TestRunToEndTickLimit(t *testing.T) {
	saver := &memorySaver{}
	s := mustNew(t, testConfig(40, 40, 1), WithResultSaver(saver))

	res := s.RunToEnd(5)
	if res.EndReason != EndTickLimit || res.Ticks != 5 {
		t.Errorf("RunToEnd(5) = %+v, want tick limit after 5 ticks", res)
	}
	if s.Snapshot().State != snake.StateRunning {
		t.Error("the game itself should still be running")
	}
	if len(saver.saved()) != 1 {
		t.Error("truncated run should be recorded")
	}
}

func TestRunToEndWhilePaused(t *testing.T) {
	saver := &memorySaver{}
	s := mustNew(t, testConfig(10, 10, 1), WithResultSaver(saver))
	s.TogglePause()

	for _, limit := range []int{0, 50} {
		res := s.RunToEnd(limit)
		if res.Finished() || res.EndReason != "" || res.Ticks != 0 {
			t.Errorf("RunToEnd(%d) on a paused game = %+v, want a live unfinished result", limit, res)
		}
	}
	if n := len(saver.saved()); n != 0 {
		t.Errorf("paused run recorded %d results, want none", n)
	}

	s.TogglePause()
	if res := s.RunToEnd(3); res.EndReason != EndTickLimit || res.Ticks != 3 {
		t.Errorf("RunToEnd(3) after resuming = %+v, want tick limit after 3 ticks", res)
	}
}

// A session with autoplay must reproduce the plain engine loop driven by the
// same seed: the session adds no draws of its own.
func TestAutoplaySessionMatchesEngineLoop(t *testing.T) {
	const seed = 2024
	cfg := testConfig(14, 10, seed)
	cfg.Autoplay = true
	s := mustNew(t, cfg)
	s.RunToEnd(400)

	rng := core.NewSource(seed)
	g, err := snake.NewGame(14, 10, rng)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	p, _ := autoplay.Lookup(autoplay.Normal)
	for range 400 {
		if g.IsGameOver() {
			break
		}
		autoplay.Steer(g, rng, p)
		g.Tick(rng)
	}

	if got, want := s.Snapshot(), g.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("session diverged from engine loop:\nsession %+v\nengine  %+v", got, want)
	}
	if !s.Result().Autoplay {
		t.Error("autoplay run not flagged")
	}
}

func TestSessionDeterminism(t *testing.T) {
	play := func() snake.Snapshot {
		cfg := testConfig(12, 12, 99)
		cfg.Autoplay = true
		cfg.Difficulty = "intense"
		s := mustNew(t, cfg)
		s.RunToEnd(1000)
		return s.Snapshot()
	}
	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
}

func TestToggleAutoplayMarksRun(t *testing.T) {
	s := mustNew(t, testConfig(20, 20, 1))
	if s.Autoplay() {
		t.Fatal("autoplay should start off")
	}
	if on := s.ToggleAutoplay(); !on {
		t.Fatal("ToggleAutoplay should turn autoplay on")
	}
	s.Step()
	s.ToggleAutoplay()

	res := s.RunToEnd(0)
	if !res.Autoplay {
		t.Error("a run that used autoplay at any point should be flagged")
	}
}

func TestSetDirectionAndPause(t *testing.T) {
	s := mustNew(t, testConfig(10, 10, 1))

	s.SetDirection(snake.DirUp)
	snap := s.Snapshot()
	if !snap.HasPending || snap.PendingDir != snake.DirUp {
		t.Errorf("pending = %v/%v, want up", snap.PendingDir, snap.HasPending)
	}

	s.TogglePause()
	if res := s.Step(); !res.Skipped {
		t.Error("paused session should skip ticks")
	}
	s.TogglePause()
	s.Step()
	if s.Snapshot().Dir != snake.DirUp {
		t.Error("pending direction should commit on the next tick")
	}
}

func TestRestart(t *testing.T) {
	s := mustNew(t, testConfig(5, 5, 3))
	first := s.RunToEnd(0)
	if !first.Finished() {
		t.Fatal("setup: first run should finish")
	}

	s.Restart(11)
	if s.RunID() == first.RunID {
		t.Error("Restart should start a new run ID")
	}
	if s.Seed() != 11 {
		t.Errorf("Seed = %d, want 11", s.Seed())
	}
	res := s.Result()
	if res.Finished() || res.Ticks != 0 || res.Score != 0 {
		t.Errorf("fresh run result = %+v", res)
	}
	if s.Snapshot().State != snake.StateRunning {
		t.Error("restarted game should be running")
	}
}

func TestRunStopsAtGameOver(t *testing.T) {
	saver := &memorySaver{}
	preset := autoplay.Preset{Name: autoplay.Normal, CommitProbability: 0.7, TickInterval: time.Millisecond}
	s := mustNew(t, testConfig(5, 5, 3), WithPreset(preset), WithResultSaver(saver))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.EndReason != "wall" {
		t.Errorf("Run() = %+v, want wall", res)
	}
	if len(saver.saved()) != 1 {
		t.Error("Run should record the finished run")
	}
}

func TestRunHonoursContext(t *testing.T) {
	s := mustNew(t, testConfig(10, 10, 1))
	s.TogglePause()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if res.Finished() {
		t.Error("cancelled run should not be finished")
	}
}

func TestStop(t *testing.T) {
	s := mustNew(t, testConfig(10, 10, 1))
	s.TogglePause()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.Run(context.Background()); err != nil {
			t.Errorf("Run() after Stop error = %v", err)
		}
	}()

	s.Stop()
	s.Stop() // Idempotent

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestConcurrentInput(t *testing.T) {
	cfg := testConfig(30, 30, 5)
	cfg.Autoplay = true
	s := mustNew(t, cfg)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				s.SetDirection(snake.Directions[(i+j)%len(snake.Directions)])
				_ = s.Snapshot()
			}
		}()
	}
	for range 50 {
		s.Step()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Tick == 0 {
		t.Error("no ticks were applied")
	}
}
