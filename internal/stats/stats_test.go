package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"statuspage/internal/models"
)

func rtts(values ...time.Duration) []models.Sample {
	samples := make([]models.Sample, len(values))
	for i, v := range values {
		samples[i] = models.Sample{RTT: v}
	}
	return samples
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		samples  []models.Sample
		expected models.StatSummary
	}{
		{
			name:     "no samples",
			samples:  nil,
			expected: models.StatSummary{},
		},
		{
			name:    "odd count takes middle value",
			samples: rtts(30, 10, 20),
			expected: models.StatSummary{
				Total: 60, Average: 20, Median: 20, Min: 10, Max: 30, Valid: 3,
			},
		},
		{
			name:    "even count rounds mean of middle values",
			samples: rtts(40, 10, 30, 20),
			expected: models.StatSummary{
				Total: 100, Average: 25, Median: 25, Min: 10, Max: 40, Valid: 4,
			},
		},
		{
			name:    "even count rounds half up",
			samples: rtts(10, 11),
			expected: models.StatSummary{
				Total: 21, Average: 10.5, Median: 11, Min: 10, Max: 11, Valid: 2,
			},
		},
		{
			name:    "average divides by every sample",
			samples: []models.Sample{{RTT: 10}, {Error: "timeout"}},
			expected: models.StatSummary{
				Total: 10, Average: 5, Median: 10, Min: 10, Max: 10, Valid: 1,
			},
		},
		{
			name:    "zero rtt is not a valid sample",
			samples: rtts(0, 5, 7),
			expected: models.StatSummary{
				Total: 12, Average: 4, Median: 6, Min: 5, Max: 7, Valid: 2,
			},
		},
		{
			name:    "all samples failed",
			samples: []models.Sample{{Error: "refused"}, {Error: "timeout"}},
			expected: models.StatSummary{
				Total: 0, Average: 0, Valid: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compute(tt.samples))
		})
	}
}

func TestComputeNoData(t *testing.T) {
	summary := Compute([]models.Sample{{Error: "timeout"}})

	assert.False(t, summary.HasData())
	assert.Zero(t, summary.Median)
	assert.Zero(t, summary.Min)
	assert.Zero(t, summary.Max)
}

func TestComputeDoesNotReorderSamples(t *testing.T) {
	samples := rtts(30*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond)
	original := append([]models.Sample(nil), samples...)

	first := Compute(samples)
	second := Compute(samples)

	assert.Equal(t, original, samples)
	assert.Equal(t, first, second)
}
