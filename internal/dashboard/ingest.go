package dashboard

import (
	"cmp"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"

	"statuspage/internal/chart"
	"statuspage/internal/models"
	"statuspage/internal/stats"
)

// Ingest adds the results of one check file to the session. A result older
// than its chart's last point rebuilds that endpoint's chart and events in
// timestamp order.
func (s *Session) Ingest(file string, results []*models.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range results {
		s.ingest(file, r)
	}
}

func (s *Session) ingest(file string, r *models.Result) {
	r.Stats = stats.Compute(r.Times)
	s.store.Add(r)
	if r.Timestamp > s.lastCheck {
		s.lastCheck = r.Timestamp
	}

	c := s.charts.GetOrCreate(r.Endpoint, r.Title)
	if last, ok := c.Last(); ok && r.Timestamp < last.Timestamp {
		s.log.WithFields(logrus.Fields{
			"file":      file,
			"endpoint":  r.Endpoint,
			"timestamp": r.Timestamp,
		}).Debug("Late result, rebuilding chart")
		s.rebuild(c)
		return
	}
	s.plot(c, r)
}

// plot appends r to its chart and records a status change
func (s *Session) plot(c *chart.Chart, r *models.Result) {
	ann := chart.Annotation{Threshold: r.Threshold}

	current := r.Status()
	previous, seen := s.status[r.Endpoint]
	if (seen && previous != current) || (!seen && current != models.StatusHealthy) {
		if !seen {
			previous = models.StatusUnknown
		}
		ann.Event = &models.Event{
			Endpoint:  r.Endpoint,
			Title:     r.Title,
			Timestamp: r.Timestamp,
			Status:    current,
			Previous:  previous,
			Message:   r.Message,
		}
	}

	c.Append(r, ann)
	s.status[r.Endpoint] = current
	if ann.Event != nil {
		s.recordEvent(*ann.Event)
	}
}

// rebuild replots an endpoint from the store in timestamp order.
// Equal timestamps keep arrival order.
func (s *Session) rebuild(c *chart.Chart) {
	results := s.store.ResultsForEndpoint(c.Endpoint)
	slices.SortStableFunc(results, func(a, b *models.Result) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	c.Reset()
	delete(s.status, c.Endpoint)
	s.events = slices.DeleteFunc(s.events, func(e models.Event) bool {
		return e.Endpoint == c.Endpoint
	})
	for _, r := range results {
		s.plot(c, r)
	}
}

// recordEvent keeps the timeline sorted by timestamp, after any events at
// the same time
func (s *Session) recordEvent(e models.Event) {
	i := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Timestamp > e.Timestamp
	})
	s.events = slices.Insert(s.events, i, e)
}
