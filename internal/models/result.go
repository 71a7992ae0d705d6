package models

import "time"

// Sample is one timing attempt within a check
type Sample struct {
	RTT   time.Duration `json:"rtt,omitempty" validate:"gte=0"` // nanoseconds
	Error string        `json:"error,omitempty"`
}

// Valid reports whether the sample counts towards statistics.
// A zero round-trip time is treated the same as a missing one.
func (s Sample) Valid() bool {
	return s.RTT > 0
}

// Succeeded reports whether the attempt completed without error
func (s Sample) Succeeded() bool {
	return s.Error == "" && s.Valid()
}

// Result is one health check of one endpoint at one instant
type Result struct {
	Title     string        `json:"title"`
	Endpoint  string        `json:"endpoint" validate:"required"`
	Timestamp int64         `json:"timestamp" validate:"gt=0"` // unix nanoseconds
	Times     []Sample      `json:"times" validate:"dive"`
	Threshold time.Duration `json:"threshold,omitempty" validate:"gte=0"`
	Healthy   bool          `json:"healthy,omitempty"`
	Degraded  bool          `json:"degraded,omitempty"`
	Down      bool          `json:"down,omitempty"`
	Message   string        `json:"message,omitempty"`

	// Stats is derived from Times when the result enters a session
	Stats StatSummary `json:"stats"`
}

// Status derives the health status reported by the check
func (r *Result) Status() Status {
	switch {
	case r.Down:
		return StatusDown
	case r.Degraded:
		return StatusDegraded
	case r.Healthy:
		return StatusHealthy
	default:
		return StatusUnknown
	}
}

// Time converts the result timestamp to a time.Time
func (r *Result) Time() time.Time {
	return time.Unix(0, r.Timestamp)
}
