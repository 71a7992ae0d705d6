package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statuspage/internal/models"
)

func withStats(ts int64, min, med, max time.Duration) *models.Result {
	return &models.Result{
		Endpoint:  "svc1",
		Timestamp: ts,
		Stats:     models.StatSummary{Min: min, Median: med, Max: max, Valid: 3},
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	first := r.GetOrCreate("svc1", "Service 1")
	again := r.GetOrCreate("svc1", "ignored")
	other := r.GetOrCreate("svc2", "Service 2")

	assert.Same(t, first, again)
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "Service 1", again.Title)
	assert.Equal(t, 1, other.ID)
	assert.Equal(t, "chart1", other.Key())
	assert.Equal(t, []SeriesName{SeriesMin, SeriesMed}, first.Layers)

	byID, ok := r.ByID(1)
	require.True(t, ok)
	assert.Same(t, other, byID)

	_, ok = r.ByID(7)
	assert.False(t, ok)
	assert.Equal(t, []*Chart{first, other}, r.All())
}

func TestRegistry_IdsAreNotShared(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	assert.Equal(t, 0, a.GetOrCreate("x", "x").ID)
	assert.Equal(t, 0, b.GetOrCreate("y", "y").ID)
	assert.Equal(t, 1, a.GetOrCreate("y", "y").ID)
}

func TestChart_Append(t *testing.T) {
	c := NewRegistry().GetOrCreate("svc1", "Service 1")

	c.Append(withStats(100, 1, 2, 3), Annotation{})
	c.Append(withStats(200, 4, 5, 6), Annotation{Threshold: 5})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []models.Point{
		{Timestamp: 100, Value: 2},
		{Timestamp: 200, Value: 5},
	}, c.Series.Med)
	assert.Equal(t, []models.Point{
		{Timestamp: 100, NoData: true},
		{Timestamp: 200, Value: 5},
	}, c.Series.Threshold)
	assert.Equal(t, int64(200), c.Series.Max[1].Timestamp)
	assert.Equal(t, time.Duration(6), c.Series.Max[1].Value)
}

func TestChart_AppendNoData(t *testing.T) {
	c := NewRegistry().GetOrCreate("svc1", "Service 1")
	failed := &models.Result{Endpoint: "svc1", Timestamp: 50}

	c.Append(failed, Annotation{})

	for _, name := range []SeriesName{SeriesMin, SeriesMed, SeriesMax, SeriesThreshold, SeriesEvents} {
		points := c.Series.Get(name)
		require.Len(t, points, 1, name)
		assert.True(t, points[0].NoData, name)
		assert.Equal(t, int64(50), points[0].Timestamp, name)
	}
}

func TestChart_AppendEvent(t *testing.T) {
	c := NewRegistry().GetOrCreate("svc1", "Service 1")
	event := &models.Event{Endpoint: "svc1", Timestamp: 10, Status: models.StatusDown}

	c.Append(withStats(10, 1, 2, 9), Annotation{Event: event})

	assert.Equal(t, models.Point{Timestamp: 10, Value: 9, Label: "down"}, c.Series.Events[0])
}

func TestChart_AppendEventWithoutData(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		want      models.Point
	}{
		{"pinned to threshold", 50, models.Point{Timestamp: 10, Value: 50, Label: "down"}},
		{"no threshold", 0, models.Point{Timestamp: 10, NoData: true, Label: "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRegistry().GetOrCreate("svc1", "Service 1")
			event := &models.Event{Endpoint: "svc1", Timestamp: 10, Status: models.StatusDown}

			c.Append(&models.Result{Endpoint: "svc1", Timestamp: 10, Down: true}, Annotation{Threshold: tt.threshold, Event: event})

			assert.Equal(t, tt.want, c.Series.Events[0])
		})
	}
}

func TestChart_AppendKeepsCallerOrder(t *testing.T) {
	c := NewRegistry().GetOrCreate("svc1", "Service 1")
	c.Append(withStats(20, 1, 1, 1), Annotation{})
	c.Append(withStats(10, 2, 2, 2), Annotation{})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int64(20), c.Series.Min[0].Timestamp)
	assert.Equal(t, int64(10), c.Series.Min[1].Timestamp)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, int64(10), last.Timestamp)
}

func TestChart_Reset(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("svc0", "Service 0")
	c := r.GetOrCreate("svc1", "Service 1")
	c.Append(withStats(20, 1, 1, 1), Annotation{Threshold: 5})

	c.Reset()

	assert.Equal(t, 0, c.Len())
	for _, name := range []SeriesName{SeriesMin, SeriesMed, SeriesMax, SeriesThreshold, SeriesEvents} {
		assert.Empty(t, c.Series.Get(name), name)
	}
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Service 1", c.Title)
	assert.Equal(t, DefaultLayers, c.Layers)

	_, ok := c.Last()
	assert.False(t, ok)
}

func TestChart_Snapshot(t *testing.T) {
	c := NewRegistry().GetOrCreate("svc1", "Service 1")
	c.Append(withStats(1, 1, 1, 1), Annotation{})

	snap := c.Snapshot()
	c.Append(withStats(2, 1, 1, 1), Annotation{})

	assert.Equal(t, 1, snap.Len())
	assert.Len(t, snap.Series.Events, 1)
	assert.Equal(t, c.ID, snap.ID)
}
