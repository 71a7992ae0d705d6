package models

import "time"

// StatSummary holds aggregate statistics over a result's samples.
// Median, Min and Max are only meaningful when Valid > 0.
type StatSummary struct {
	Total   time.Duration `json:"total"`
	Average float64       `json:"average"` // nanoseconds, divided by every sample
	Median  time.Duration `json:"median,omitempty"`
	Min     time.Duration `json:"min,omitempty"`
	Max     time.Duration `json:"max,omitempty"`
	Valid   int           `json:"valid"`
}

// HasData reports whether at least one sample had a round-trip time
func (s StatSummary) HasData() bool {
	return s.Valid > 0
}

// Status is the health of an endpoint as reported by a check
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// Color maps a status to its display color class
func (s Status) Color() string {
	switch s {
	case StatusHealthy:
		return "green"
	case StatusDegraded:
		return "yellow"
	case StatusDown:
		return "red"
	default:
		return "gray"
	}
}

// Event marks a status change of an endpoint on the timeline
type Event struct {
	Endpoint  string `json:"endpoint"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
	Status    Status `json:"status"`
	Previous  Status `json:"previous"`
	Message   string `json:"message,omitempty"`
}

// Point is one timestamped value of a chart series
type Point struct {
	Timestamp int64         `json:"timestamp"`
	Value     time.Duration `json:"value"`
	NoData    bool          `json:"no_data,omitempty"`
	Label     string        `json:"label,omitempty"`
}

// Summary counts endpoints by the status of their latest result
type Summary struct {
	Endpoints int            `json:"endpoints"`
	Results   int            `json:"results"`
	ByStatus  map[Status]int `json:"by_status"`
	LastCheck int64          `json:"last_check"`
}
