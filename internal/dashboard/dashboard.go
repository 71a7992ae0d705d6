// Package dashboard owns the state of one status page session: the result
// store, the charts and the event timeline.
package dashboard

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"statuspage/internal/chart"
	"statuspage/internal/models"
	"statuspage/internal/store"
)

type checkFile struct {
	name    string
	results []*models.Result
}

// Session coordinates ingestion of check files. Submissions from any
// goroutine are serialized onto a single processing goroutine.
type Session struct {
	log       logrus.FieldLogger
	archive   models.Archive
	retention time.Duration

	mu        sync.RWMutex
	store     *store.Store
	charts    *chart.Registry
	events    []models.Event
	status    map[string]models.Status
	files     map[string]bool
	lastCheck int64

	incoming chan checkFile
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a Session. archive may be nil; retention only applies to the
// archive.
func New(log logrus.FieldLogger, archive models.Archive, retention time.Duration) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		log:       log,
		archive:   archive,
		retention: retention,
		store:     store.New(),
		charts:    chart.NewRegistry(),
		status:    make(map[string]models.Status),
		files:     make(map[string]bool),
		incoming:  make(chan checkFile, 100),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Charts returns snapshots of every chart in creation order
func (s *Session) Charts() []*chart.Chart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.charts.All()
	out := make([]*chart.Chart, len(all))
	for i, c := range all {
		out[i] = c.Snapshot()
	}
	return out
}

// Chart returns a snapshot of the chart with the given id
func (s *Session) Chart(id int) (*chart.Chart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts.ByID(id)
	if !ok {
		return nil, false
	}
	return c.Snapshot(), true
}

// ResultsForEndpoint returns an endpoint's results in arrival order
func (s *Session) ResultsForEndpoint(endpoint string) []*models.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ResultsForEndpoint(endpoint)
}

// ResultsAtTimestamp returns all results checked at timestamp
func (s *Session) ResultsAtTimestamp(timestamp int64) []*models.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ResultsAtTimestamp(timestamp)
}

// AllOrdered returns every result by ascending timestamp
func (s *Session) AllOrdered() []*models.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.AllOrdered()
}

// Events returns the status change timeline
func (s *Session) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Summary counts endpoints by their latest status
func (s *Session) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := models.Summary{
		Endpoints: len(s.store.Endpoints()),
		Results:   s.store.Len(),
		ByStatus:  make(map[models.Status]int),
		LastCheck: s.lastCheck,
	}
	for _, status := range s.status {
		summary.ByStatus[status]++
	}
	return summary
}
