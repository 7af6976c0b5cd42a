package session

import "time"

// EndTickLimit marks a headless run that was cut off before the game ended.
const EndTickLimit = "tick_limit"

// RunResult summarises one run from start (or restart) to its end.
type RunResult struct {
	RunID      string
	Difficulty string
	Columns    int
	Rows       int
	Seed       int64
	Score      int
	Length     int
	Ticks      uint64
	Autoplay   bool   // True if the policy steered at any point during the run
	EndReason  string // Collision reason, EndTickLimit, or empty while running
	Duration   time.Duration
}

// Finished reports whether the run has an end reason.
func (r RunResult) Finished() bool {
	return r.EndReason != ""
}

// ResultSaver persists finished runs.
// This allows the session to record results without depending on the storage package.
type ResultSaver interface {
	SaveResult(result RunResult) error
}
