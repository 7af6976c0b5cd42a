// Package session drives a single snake game. A Session owns the game and its
// random source and is the only writer to either: player input, autoplay
// steering and ticks are applied one at a time under its lock.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for run events. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithPreset sets the autoplay preset instead of looking up cfg.Difficulty.
func WithPreset(p autoplay.Preset) Option {
	return func(s *Session) {
		s.preset = p
		s.hasPreset = true
	}
}

// WithResultSaver records every finished run through saver.
func WithResultSaver(saver ResultSaver) Option {
	return func(s *Session) {
		s.saver = saver
	}
}

// Session is a goroutine-safe driver around one snake.Game.
type Session struct {
	mu sync.Mutex

	cfg       core.RuntimeConfig
	game      *snake.Game
	rng       core.Source
	preset    autoplay.Preset
	hasPreset bool

	autoplay     bool
	autoplayUsed bool

	runID     string
	seed      int64
	startedAt time.Time
	endedAt   time.Time
	result    RunResult
	finished  bool

	logger *log.Logger
	saver  ResultSaver // Optional, can be nil

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a session and starts its first run with cfg.Seed.
func New(cfg core.RuntimeConfig, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:      cfg,
		autoplay: cfg.Autoplay,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	if !s.hasPreset {
		d, err := autoplay.ParseDifficulty(cfg.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		s.preset, _ = autoplay.Lookup(d)
	}
	if s.cfg.TickInterval <= 0 {
		s.cfg.TickInterval = s.preset.TickInterval
	}

	rng := core.NewSource(cfg.Seed)
	game, err := snake.NewGame(cfg.Columns, cfg.Rows, rng)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.game = game
	s.rng = rng
	s.begin(cfg.Seed)

	return s, nil
}

// begin resets the per-run bookkeeping. Caller holds mu or owns s exclusively.
func (s *Session) begin(seed int64) {
	s.seed = seed
	s.runID = uuid.NewString()
	s.startedAt = time.Now()
	s.endedAt = time.Time{}
	s.result = RunResult{}
	s.finished = false
	s.autoplayUsed = s.autoplay

	s.logger.Info("run started",
		"run_id", s.runID,
		"seed", seed,
		"board", fmt.Sprintf("%dx%d", s.game.Columns(), s.game.Rows()),
		"difficulty", s.preset.Name,
		"autoplay", s.autoplay,
	)
}

// Step advances the game by one tick. When autoplay is on, the policy steers
// first, exactly as a player's input would.
func (s *Session) Step() snake.TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoplay && !s.game.IsPaused() && !s.game.IsGameOver() {
		autoplay.Steer(s.game, s.rng, s.preset)
	}

	res := s.game.Tick(s.rng)
	if res.Skipped {
		return res
	}

	if res.Ate {
		s.logger.Debug("food eaten", "score", s.game.Score(), "length", s.game.Len())
	}
	if res.Collision != snake.CollisionNone {
		s.finish(string(res.Collision))
	}
	return res
}

// finish freezes the run result and records it once. Caller holds mu.
func (s *Session) finish(reason string) {
	if s.finished {
		return
	}
	s.endedAt = time.Now()
	s.result = s.currentResult(reason)
	s.finished = true

	s.logger.Info("game over",
		"run_id", s.runID,
		"reason", reason,
		"score", s.result.Score,
		"length", s.result.Length,
		"ticks", s.result.Ticks,
	)

	if s.saver == nil {
		return
	}
	if err := s.saver.SaveResult(s.result); err != nil {
		s.logger.Warn("failed to record run", "run_id", s.runID, "error", err)
		return
	}
	s.logger.Debug("run recorded", "run_id", s.runID)
}

func (s *Session) currentResult(reason string) RunResult {
	end := s.endedAt
	if end.IsZero() {
		end = time.Now()
	}
	return RunResult{
		RunID:      s.runID,
		Difficulty: string(s.preset.Name),
		Columns:    s.game.Columns(),
		Rows:       s.game.Rows(),
		Seed:       s.seed,
		Score:      s.game.Score(),
		Length:     s.game.Len(),
		Ticks:      s.game.Ticks(),
		Autoplay:   s.autoplayUsed,
		EndReason:  reason,
		Duration:   end.Sub(s.startedAt),
	}
}

// SetDirection forwards a directional intent to the game.
func (s *Session) SetDirection(d snake.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetDirection(d)
}

// TogglePause pauses or resumes the game.
func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.TogglePause()
}

// ToggleAutoplay flips autoplay and returns the new state.
func (s *Session) ToggleAutoplay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAutoplay(!s.autoplay)
	return s.autoplay
}

// SetAutoplay turns autoplay on or off.
func (s *Session) SetAutoplay(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAutoplay(on)
}

func (s *Session) setAutoplay(on bool) {
	if on == s.autoplay {
		return
	}
	s.autoplay = on
	if on && !s.game.IsGameOver() {
		s.autoplayUsed = true
	}
	s.logger.Debug("autoplay toggled", "run_id", s.runID, "enabled", on)
}

// Restart begins a new run on the same board with a fresh source seeded by seed.
func (s *Session) Restart(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng = core.NewSource(seed)
	s.game.Reset(s.rng)
	s.begin(seed)
}

// Abandon ends a run that has not finished on its own, recording it with reason.
// It is a no-op once the run has finished.
func (s *Session) Abandon(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(reason)
}

// Snapshot returns a copy of the current game state.
func (s *Session) Snapshot() snake.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Result returns the final result of a finished run, or the live totals with
// an empty EndReason while it is still running.
func (s *Session) Result() RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return s.result
	}
	return s.currentResult("")
}

// Autoplay reports whether the policy is steering.
func (s *Session) Autoplay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoplay
}

// Preset returns the autoplay preset.
func (s *Session) Preset() autoplay.Preset {
	return s.preset
}

// TickInterval returns the cadence Run ticks at.
func (s *Session) TickInterval() time.Duration {
	return s.cfg.TickInterval
}

// RunID returns the identifier of the current run.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}
