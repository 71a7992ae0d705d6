package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statuspage/internal/chart"
	"statuspage/internal/models"
	"statuspage/internal/stats"
)

type fakeSource struct {
	charts []*chart.Chart
	events []models.Event
}

func (f *fakeSource) Charts() []*chart.Chart { return f.charts }
func (f *fakeSource) Events() []models.Event { return f.events }
func (f *fakeSource) Summary() models.Summary {
	return models.Summary{
		Endpoints: len(f.charts),
		ByStatus:  map[models.Status]int{models.StatusHealthy: 1, models.StatusDown: 1},
		LastCheck: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).UnixNano(),
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func buildChart(t *testing.T, registry *chart.Registry, endpoint string, base time.Time, rtts ...[]time.Duration) *chart.Chart {
	t.Helper()
	c := registry.GetOrCreate(endpoint, "Service "+endpoint)
	for i, values := range rtts {
		r := &models.Result{
			Endpoint:  endpoint,
			Timestamp: base.Add(time.Duration(i) * time.Minute).UnixNano(),
			Threshold: 40 * time.Millisecond,
			Healthy:   true,
		}
		for _, v := range values {
			r.Times = append(r.Times, models.Sample{RTT: v})
		}
		r.Stats = stats.Compute(r.Times)

		var ann chart.Annotation
		ann.Threshold = r.Threshold
		if i == 1 {
			ann.Event = &models.Event{Endpoint: endpoint, Timestamp: r.Timestamp, Status: models.StatusDegraded}
		}
		c.Append(r, ann)
	}
	return c
}

func TestRenderChart(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := buildChart(t, chart.NewRegistry(), "svc1", base,
		[]time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond},
		[]time.Duration{15 * time.Millisecond, 45 * time.Millisecond},
		nil,
		[]time.Duration{12 * time.Millisecond, 18 * time.Millisecond, 24 * time.Millisecond},
	)

	var png bytes.Buffer
	require.NoError(t, RenderChart(&png, c, PNG))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, RenderChart(&svg, c, SVG))
	assert.Contains(t, svg.String(), "<svg")
}

func TestRenderChartWithoutData(t *testing.T) {
	c := chart.NewRegistry().GetOrCreate("svc1", "Service 1")
	c.Append(&models.Result{Endpoint: "svc1", Timestamp: 1}, chart.Annotation{})

	err := RenderChart(io.Discard, c, PNG)
	assert.True(t, errors.Is(err, ErrNotEnoughData))
}

func TestGenerator_Generate(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	registry := chart.NewRegistry()
	drawable := buildChart(t, registry, "https://example.com", base,
		[]time.Duration{10 * time.Millisecond, 30 * time.Millisecond},
		[]time.Duration{20 * time.Millisecond, 50 * time.Millisecond},
	)
	empty := registry.GetOrCreate("db", "Database")
	empty.Append(&models.Result{Endpoint: "db", Timestamp: base.UnixNano(), Down: true}, chart.Annotation{})

	source := &fakeSource{
		charts: []*chart.Chart{drawable, empty},
		events: []models.Event{{
			Endpoint: "db", Title: "Database", Timestamp: base.UnixNano(),
			Status: models.StatusDown, Previous: models.StatusUnknown, Message: "refused",
		}},
	}

	dir := filepath.Join(t.TempDir(), "report")
	require.NoError(t, NewGenerator(source, quietLogger()).Generate(dir))

	assert.FileExists(t, filepath.Join(dir, "chart0_https___example_com.png"))
	assert.NoFileExists(t, filepath.Join(dir, "chart1_db.png"))

	summary, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Service https://example.com")
	assert.Contains(t, string(summary), "Database")
	assert.Contains(t, string(summary), "healthy 1, degraded 0, down 1")
	assert.Contains(t, string(summary), "40ms")

	events, err := os.ReadFile(filepath.Join(dir, "events.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(events), "Database: unknown -> down (refused)")
}

func TestGenerator_Schedule(t *testing.T) {
	g := NewGenerator(&fakeSource{}, quietLogger())

	_, err := g.Schedule("not a schedule", t.TempDir())
	assert.Error(t, err)

	c, err := g.Schedule("@every 1h", t.TempDir())
	require.NoError(t, err)
	c.Stop()
}
