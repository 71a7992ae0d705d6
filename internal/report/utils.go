package report

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// sanitizeFilename replaces dots and special characters for safe filenames
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}

// FormatDuration renders d with a unit suited to its size
func FormatDuration(d time.Duration) string {
	ns := float64(d)
	switch {
	case d == 0:
		return "0ms"
	case d < time.Millisecond:
		return fmt.Sprintf("%.0fµs", math.Round(ns*1e-3))
	case d < 10*time.Second:
		return fmt.Sprintf("%.0fms", math.Round(ns*1e-6))
	case d < 90*time.Second:
		return fmt.Sprintf("%.0fs", math.Round(ns*1e-9))
	case d < 90*time.Minute:
		return fmt.Sprintf("%.0f minutes", math.Round(ns*1e-9/60))
	case d < 48*time.Hour:
		return fmt.Sprintf("%.0f hours", math.Round(ns*1e-9/60/60))
	default:
		return fmt.Sprintf("%.0f days", math.Round(ns*1e-9/60/60/24))
	}
}
