// Package chart accumulates per-endpoint series (min, median, max,
// threshold and events) as check results arrive.
package chart

import (
	"fmt"
	"slices"
	"time"

	"statuspage/internal/models"
)

// SeriesName identifies one of a chart's series
type SeriesName string

const (
	SeriesMin       SeriesName = "min"
	SeriesMed       SeriesName = "med"
	SeriesMax       SeriesName = "max"
	SeriesThreshold SeriesName = "threshold"
	SeriesEvents    SeriesName = "events"
)

// DefaultLayers are drawn back to front; max, threshold and events are
// composited separately.
var DefaultLayers = []SeriesName{SeriesMin, SeriesMed}

// Series holds the point sequences of a chart. All five stay the same length.
type Series struct {
	Min       []models.Point `json:"min"`
	Med       []models.Point `json:"med"`
	Max       []models.Point `json:"max"`
	Threshold []models.Point `json:"threshold"`
	Events    []models.Point `json:"events"`
}

// Get returns the points of a named series
func (s *Series) Get(name SeriesName) []models.Point {
	switch name {
	case SeriesMin:
		return s.Min
	case SeriesMed:
		return s.Med
	case SeriesMax:
		return s.Max
	case SeriesThreshold:
		return s.Threshold
	case SeriesEvents:
		return s.Events
	default:
		return nil
	}
}

// Annotation carries values supplied alongside a result
type Annotation struct {
	Threshold time.Duration
	Event     *models.Event
}

// Chart is the accumulated view of one endpoint
type Chart struct {
	ID       int              `json:"id"`
	Endpoint string           `json:"endpoint"`
	Title    string           `json:"title"`
	Results  []*models.Result `json:"-"`
	Series   Series           `json:"series"`
	Layers   []SeriesName     `json:"layers"`
}

// Key is the chart's element id, e.g. "chart0"
func (c *Chart) Key() string {
	return fmt.Sprintf("chart%d", c.ID)
}

// Len returns the number of results appended so far
func (c *Chart) Len() int {
	return len(c.Results)
}

// Last returns the most recently appended result
func (c *Chart) Last() (*models.Result, bool) {
	if len(c.Results) == 0 {
		return nil, false
	}
	return c.Results[len(c.Results)-1], true
}

// Append adds one point to every series at the result's timestamp. Missing
// values become no-data points so the series stay aligned. Callers feed
// results in timestamp order; Append does not reorder.
func (c *Chart) Append(result *models.Result, ann Annotation) {
	ts := result.Timestamp
	st := result.Stats
	c.Results = append(c.Results, result)
	c.Series.Min = append(c.Series.Min, point(ts, st.Min, st.HasData()))
	c.Series.Med = append(c.Series.Med, point(ts, st.Median, st.HasData()))
	c.Series.Max = append(c.Series.Max, point(ts, st.Max, st.HasData()))
	c.Series.Threshold = append(c.Series.Threshold, point(ts, ann.Threshold, ann.Threshold > 0))
	c.Series.Events = append(c.Series.Events, eventPoint(ts, st, ann))
}

// Reset drops every result and point, keeping the chart's identity
func (c *Chart) Reset() {
	c.Results = nil
	c.Series = Series{}
}

// eventPoint sits on the max line, or on the threshold when the check
// measured nothing. Without either it is a labelled no-data point.
func eventPoint(ts int64, st models.StatSummary, ann Annotation) models.Point {
	if ann.Event == nil {
		return models.Point{Timestamp: ts, NoData: true}
	}

	p := models.Point{Timestamp: ts, Label: string(ann.Event.Status)}
	switch {
	case st.HasData():
		p.Value = st.Max
	case ann.Threshold > 0:
		p.Value = ann.Threshold
	default:
		p.NoData = true
	}
	return p
}

func point(ts int64, value time.Duration, ok bool) models.Point {
	if !ok {
		return models.Point{Timestamp: ts, NoData: true}
	}
	return models.Point{Timestamp: ts, Value: value}
}

// Snapshot returns a deep copy safe to hand to readers
func (c *Chart) Snapshot() *Chart {
	return &Chart{
		ID:       c.ID,
		Endpoint: c.Endpoint,
		Title:    c.Title,
		Results:  slices.Clone(c.Results),
		Series: Series{
			Min:       slices.Clone(c.Series.Min),
			Med:       slices.Clone(c.Series.Med),
			Max:       slices.Clone(c.Series.Max),
			Threshold: slices.Clone(c.Series.Threshold),
			Events:    slices.Clone(c.Series.Events),
		},
		Layers: slices.Clone(c.Layers),
	}
}
