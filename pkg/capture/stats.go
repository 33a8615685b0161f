package capture

import "time"

// Stats tracks how many frames a source has delivered and how long the
// reads took overall.
type Stats struct {
	Frames       int
	TotalLatency time.Duration
}

// AverageLatency returns the mean wall time of one delivered frame.
func (s Stats) AverageLatency() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.Frames)
}

// update records one completed read that started at the given time.
func (s *Stats) update(start time.Time) {
	s.Frames++
	s.TotalLatency += time.Since(start)
}
