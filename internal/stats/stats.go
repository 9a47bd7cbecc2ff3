// Package stats keeps running aggregates of a numeric series without
// retaining its history.
package stats

import "math"

// RunningStat is the aggregate of a series after some number of samples.
type RunningStat struct {
	Current float64
	Average float64
	Max     float64
	Min     float64
}

// Update folds sample into prev, which holds the aggregate of n earlier
// samples. A nil prev starts a new series (max seeded at 0, min at +Inf).
func Update(sample float64, prev *RunningStat, n int) RunningStat {
	maxSeed, minSeed, avg := 0.0, math.Inf(1), 0.0
	if prev != nil {
		maxSeed, minSeed, avg = prev.Max, prev.Min, prev.Average
	}
	if n < 0 {
		n = 0
	}

	return RunningStat{
		Current: sample,
		Average: (avg*float64(n) + sample) / float64(n+1),
		Max:     math.Max(maxSeed, sample),
		Min:     math.Min(minSeed, sample),
	}
}
