package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"statuspage/internal/chart"
	"statuspage/internal/models"
)

func (g *Generator) writeSummary(outputDir string, charts []*chart.Chart) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	summary := g.source.Summary()

	fmt.Fprintf(file, "Status Report\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	if summary.LastCheck > 0 {
		fmt.Fprintf(file, "Last check: %s\n", time.Unix(0, summary.LastCheck).Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(file, "Endpoints: %d (healthy %d, degraded %d, down %d)\n\n",
		summary.Endpoints,
		summary.ByStatus[models.StatusHealthy],
		summary.ByStatus[models.StatusDegraded],
		summary.ByStatus[models.StatusDown],
	)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		"Endpoint", "Checks", "Status",
		"Median", "Min", "Max", "Average", "Threshold",
	})

	for _, c := range charts {
		if c.Len() == 0 {
			continue
		}
		last := c.Results[c.Len()-1]
		st := last.Stats

		median, minRTT, maxRTT := "-", "-", "-"
		if st.HasData() {
			median = FormatDuration(st.Median)
			minRTT = FormatDuration(st.Min)
			maxRTT = FormatDuration(st.Max)
		}
		threshold := "-"
		if last.Threshold > 0 {
			threshold = FormatDuration(last.Threshold)
		}

		t.AppendRow(table.Row{
			c.Title,
			c.Len(),
			last.Status(),
			median,
			minRTT,
			maxRTT,
			FormatDuration(time.Duration(st.Average)),
			threshold,
		})
	}

	fmt.Fprintln(file, t.Render())
	return nil
}

func (g *Generator) writeEvents(outputDir string) error {
	filename := filepath.Join(outputDir, "events.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "EVENTS")
	fmt.Fprintln(file, strings.Repeat("=", 60))

	events := g.source.Events()
	if len(events) == 0 {
		fmt.Fprintln(file, "No status changes recorded.")
		return nil
	}

	for _, e := range events {
		fmt.Fprintf(file, "%s  %s: %s -> %s",
			time.Unix(0, e.Timestamp).Format("2006-01-02 15:04:05"), e.Title, e.Previous, e.Status)
		if e.Message != "" {
			fmt.Fprintf(file, " (%s)", e.Message)
		}
		fmt.Fprintln(file)
	}

	return nil
}
