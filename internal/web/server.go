package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"statuspage/internal/chart"
	"statuspage/internal/models"
)

// Session is the read-only view of the dashboard served over HTTP
type Session interface {
	Charts() []*chart.Chart
	Chart(id int) (*chart.Chart, bool)
	ResultsForEndpoint(endpoint string) []*models.Result
	ResultsAtTimestamp(timestamp int64) []*models.Result
	AllOrdered() []*models.Result
	Events() []models.Event
	Summary() models.Summary
}

// Server handles web requests
type Server struct {
	session Session
	port    int
	log     logrus.FieldLogger
	srv     *http.Server
}

// New creates a new web server
func New(session Session, port int, log logrus.FieldLogger) *Server {
	s := &Server{
		session: session,
		port:    port,
		log:     log,
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/charts", s.handleCharts)
	mux.HandleFunc("GET /api/charts/{id}", s.handleChart)
	mux.HandleFunc("GET /api/charts/{id}/png", s.handleChartImage)
	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("GET /api/results/ordered", s.handleOrdered)
	mux.HandleFunc("GET /api/results/at", s.handleAtTimestamp)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	return mux
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	s.log.WithField("port", s.port).Info("Web server starting")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
