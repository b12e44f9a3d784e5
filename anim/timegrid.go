package anim

import "math"

// buildTimeGrid returns the ordered, evenly spaced sample instants covering
// [minArrival, maxTime]. The first instant is the largest interval multiple
// at or below the earliest arrival, so grids stay aligned regardless of where
// the log happens to start; the last instant is at or past maxTime.
//
// Each instant is computed directly from its index. Repeated addition would
// accumulate float error across long grids.
func buildTimeGrid(cfg Config, minArrival, maxTime float64) (grid []float64, truncated bool) {
	start := math.Floor(minArrival/cfg.Interval) * cfg.Interval
	for i := 0; ; i++ {
		t := start + float64(i)*cfg.Interval
		if cfg.LimitDuration > 0 && t-start > cfg.LimitDuration {
			return grid, true
		}
		grid = append(grid, t)
		if t >= maxTime {
			return grid, false
		}
	}
}
