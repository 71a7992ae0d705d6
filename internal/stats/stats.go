// Package stats computes aggregate statistics over the timing samples of a
// single check result.
package stats

import (
	"slices"
	"time"

	"statuspage/internal/models"
)

// Compute summarizes the samples of a result without modifying them.
//
// Only samples with a positive round-trip time take part in the total,
// median, min and max. The average divides by every sample, so failed
// attempts pull it down.
func Compute(samples []models.Sample) models.StatSummary {
	var summary models.StatSummary

	valid := make([]time.Duration, 0, len(samples))
	for _, s := range samples {
		if !s.Valid() {
			continue
		}
		summary.Total += s.RTT
		if len(valid) == 0 || s.RTT < summary.Min {
			summary.Min = s.RTT
		}
		if len(valid) == 0 || s.RTT > summary.Max {
			summary.Max = s.RTT
		}
		valid = append(valid, s.RTT)
	}

	summary.Valid = len(valid)
	if len(samples) > 0 {
		summary.Average = float64(summary.Total) / float64(len(samples))
	}
	summary.Median = median(valid)

	return summary
}

// median sorts values in place; callers pass a private copy
func median(values []time.Duration) time.Duration {
	if len(values) == 0 {
		return 0
	}
	slices.Sort(values)

	half := len(values) / 2
	if len(values)%2 == 0 {
		// round half up, values are positive
		return (values[half-1] + values[half] + 1) / 2
	}
	return values[half]
}
