package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"statuspage/internal/chart"
	"statuspage/internal/models"
)

// ErrNotEnoughData is returned for charts without a drawable latency series
var ErrNotEnoughData = errors.New("not enough data to draw chart")

var (
	bandColor      = drawing.Color{R: 120, G: 170, B: 220, A: 90}
	medianColor    = drawing.Color{R: 30, G: 90, B: 160, A: 255}
	thresholdColor = drawing.Color{R: 210, G: 60, B: 50, A: 255}
)

// Format selects the image encoding of a rendered chart
type Format = gochart.RendererProvider

var (
	PNG Format = gochart.PNG
	SVG Format = gochart.SVG
)

// RenderChart draws the min/median/max band of a chart with its threshold
// line and event markers. No-data points are left out of the lines.
func RenderChart(w io.Writer, c *chart.Chart, format Format) error {
	var series []gochart.Series

	// max is composited behind the layers
	if ts, ok := timeSeries("max", c.Series.Max, gochart.Style{
		StrokeColor: bandColor,
		FillColor:   bandColor,
		StrokeWidth: 1,
	}); ok {
		series = append(series, ts)
	}

	for _, layer := range c.Layers {
		style := gochart.Style{StrokeColor: bandColor, FillColor: drawing.ColorWhite, StrokeWidth: 1}
		if layer == chart.SeriesMed {
			style = gochart.Style{StrokeColor: medianColor, StrokeWidth: 2}
		}
		if ts, ok := timeSeries(string(layer), c.Series.Get(layer), style); ok {
			series = append(series, ts)
		}
	}
	if len(series) == 0 {
		return fmt.Errorf("%s: %w", c.Endpoint, ErrNotEnoughData)
	}

	if ts, ok := timeSeries("threshold", c.Series.Threshold, gochart.Style{
		StrokeColor:     thresholdColor,
		StrokeWidth:     1,
		StrokeDashArray: []float64{5, 5},
	}); ok {
		series = append(series, ts)
	}

	var annotations []gochart.Value2
	for _, p := range c.Series.Events {
		if p.NoData {
			continue
		}
		annotations = append(annotations, gochart.Value2{
			XValue: gochart.TimeToFloat64(time.Unix(0, p.Timestamp)),
			YValue: millis(p.Value),
			Label:  p.Label,
		})
	}
	if len(annotations) > 0 {
		series = append(series, gochart.AnnotationSeries{Name: "events", Annotations: annotations})
	}

	graph := gochart.Chart{
		Title: c.Title,
		TitleStyle: gochart.Style{
			FontSize: 14,
		},
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  600,
		Height: 200,
		XAxis: gochart.XAxis{
			Style: gochart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    8,
			},
			ValueFormatter: gochart.TimeMinuteValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name: "RTT (ms)",
			NameStyle: gochart.Style{
				FontSize: 10,
			},
			Style: gochart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    8,
			},
			GridMajorStyle: gochart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: series,
	}

	return graph.Render(format, w)
}

func timeSeries(name string, points []models.Point, style gochart.Style) (gochart.TimeSeries, bool) {
	ts := gochart.TimeSeries{Name: name, Style: style}
	for _, p := range points {
		if p.NoData {
			continue
		}
		ts.XValues = append(ts.XValues, time.Unix(0, p.Timestamp))
		ts.YValues = append(ts.YValues, millis(p.Value))
	}
	return ts, len(ts.XValues) > 0
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (g *Generator) writeChart(outputDir string, c *chart.Chart) error {
	filename := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", c.Key(), sanitizeFilename(c.Endpoint)))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := RenderChart(file, c, PNG); err != nil {
		file.Close()
		os.Remove(filename)
		return err
	}
	return file.Close()
}
