package report

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"statuspage/internal/chart"
	"statuspage/internal/models"
)

// Source is the read-only view of a dashboard session used for reports
type Source interface {
	Charts() []*chart.Chart
	Events() []models.Event
	Summary() models.Summary
}

// Generator writes chart images and text summaries for a session
type Generator struct {
	source Source
	log    logrus.FieldLogger
}

// NewGenerator creates a new report generator
func NewGenerator(source Source, log logrus.FieldLogger) *Generator {
	return &Generator{source: source, log: log}
}

// Generate writes every chart and the summary into outputDir, replacing
// files from earlier runs. A chart that cannot be drawn yet is skipped.
func (g *Generator) Generate(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	charts := g.source.Charts()
	for _, c := range charts {
		if err := g.writeChart(outputDir, c); err != nil {
			g.log.WithError(err).WithField("endpoint", c.Endpoint).Warn("Failed to generate chart")
		}
	}

	if err := g.writeSummary(outputDir, charts); err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	if err := g.writeEvents(outputDir); err != nil {
		return fmt.Errorf("failed to generate event timeline: %w", err)
	}

	g.log.WithFields(logrus.Fields{"dir": outputDir, "charts": len(charts)}).Info("Report generated")
	return nil
}

// Schedule regenerates the report on a cron spec such as "@every 5m".
// The returned cron is already running; stop it on shutdown.
func (g *Generator) Schedule(spec, outputDir string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := g.Generate(outputDir); err != nil {
			g.log.WithError(err).Error("Scheduled report failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
