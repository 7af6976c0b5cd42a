package session

import (
	"context"
	"time"
)

// Run ticks the session at its tick interval until the game ends, ctx is
// cancelled or Stop is called. The returned result is final only when the
// game ended; otherwise it carries the live totals and ctx.Err().
func (s *Session) Run(ctx context.Context) (RunResult, error) {
	ticker := time.NewTicker(s.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Step()
			if res := s.Result(); res.Finished() {
				return res, nil
			}

		case <-ctx.Done():
			return s.Result(), ctx.Err()

		case <-s.done:
			return s.Result(), nil
		}
	}
}

// RunToEnd steps the session as fast as possible until the game ends or
// maxTicks ticks have passed. A run cut off by the limit is recorded with
// EndTickLimit. maxTicks <= 0 means no limit. A paused session cannot
// advance, so RunToEnd returns its live, unfinished result without recording
// anything.
func (s *Session) RunToEnd(maxTicks int) RunResult {
	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		tick := s.Step()
		if res := s.Result(); res.Finished() {
			return res
		}
		if tick.Skipped {
			return s.Result()
		}
	}
	s.Abandon(EndTickLimit)
	return s.Result()
}

// Stop ends a running Run loop.
func (s *Session) Stop() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
