package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"statuspage/internal/chart"
	"statuspage/internal/models"
	"statuspage/internal/report"
)

type chartResponse struct {
	*chart.Chart
	Key     string           `json:"key"`
	Results []*models.Result `json:"results"`
}

// handleCharts handles /api/charts requests
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	charts := s.session.Charts()
	out := make([]chartResponse, len(charts))
	for i, c := range charts {
		out[i] = chartResponse{Chart: c, Key: c.Key(), Results: c.Results}
	}
	s.writeJSON(w, out)
}

// handleChart handles /api/charts/{id} requests
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, chartResponse{Chart: c, Key: c.Key(), Results: c.Results})
}

// handleChartImage handles /api/charts/{id}/png requests
func (s *Server) handleChartImage(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupChart(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.RenderChart(&buf, c, report.PNG); err != nil {
		if errors.Is(err, report.ErrNotEnoughData) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// handleResults handles /api/results?endpoint= requests
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" {
		http.Error(w, "endpoint parameter required", http.StatusBadRequest)
		return
	}
	s.writeJSON(w, nonNil(s.session.ResultsForEndpoint(endpoint)))
}

// handleOrdered handles /api/results/ordered requests
func (s *Server) handleOrdered(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, nonNil(s.session.AllOrdered()))
}

// handleAtTimestamp handles /api/results/at?timestamp= requests
func (s *Server) handleAtTimestamp(w http.ResponseWriter, r *http.Request) {
	ts, err := strconv.ParseInt(r.URL.Query().Get("timestamp"), 10, 64)
	if err != nil {
		http.Error(w, "timestamp parameter must be unix nanoseconds", http.StatusBadRequest)
		return
	}
	s.writeJSON(w, nonNil(s.session.ResultsAtTimestamp(ts)))
}

// handleEvents handles /api/events requests
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.session.Events()
	if events == nil {
		events = []models.Event{}
	}
	s.writeJSON(w, events)
}

// handleSummary handles /api/summary requests
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.session.Summary())
}

func (s *Server) lookupChart(w http.ResponseWriter, r *http.Request) (*chart.Chart, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid chart id", http.StatusBadRequest)
		return nil, false
	}
	c, ok := s.session.Chart(id)
	if !ok {
		http.Error(w, "chart not found", http.StatusNotFound)
		return nil, false
	}
	return c, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("Failed to write response")
	}
}

func nonNil(results []*models.Result) []*models.Result {
	if results == nil {
		return []*models.Result{}
	}
	return results
}
