package scheduler

import "time"

// SetClock replaces the clock used for build record timestamps.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}
