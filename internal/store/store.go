// Package store indexes check results by endpoint and by timestamp and keeps
// a timestamp-ordered view across all endpoints.
//
// A Store is not safe for concurrent use; the dashboard session serializes
// access to it.
package store

import (
	"slices"
	"sort"

	"statuspage/internal/models"
)

// Store holds every ingested result. Nothing is ever removed.
type Store struct {
	byEndpoint  map[string][]*models.Result
	byTimestamp map[int64][]*models.Result
	ordered     []*models.Result
	endpoints   []string
}

// New creates an empty Store
func New() *Store {
	return &Store{
		byEndpoint:  make(map[string][]*models.Result),
		byTimestamp: make(map[int64][]*models.Result),
	}
}

// Add records a result in all three views. Results sharing a timestamp
// keep their arrival order in the ordered view.
func (s *Store) Add(result *models.Result) {
	if _, ok := s.byEndpoint[result.Endpoint]; !ok {
		s.endpoints = append(s.endpoints, result.Endpoint)
	}
	s.byEndpoint[result.Endpoint] = append(s.byEndpoint[result.Endpoint], result)
	s.byTimestamp[result.Timestamp] = append(s.byTimestamp[result.Timestamp], result)

	// first position with a strictly later timestamp
	i := sort.Search(len(s.ordered), func(i int) bool {
		return s.ordered[i].Timestamp > result.Timestamp
	})
	s.ordered = slices.Insert(s.ordered, i, result)
}

// ResultsForEndpoint returns the endpoint's results in arrival order
func (s *Store) ResultsForEndpoint(endpoint string) []*models.Result {
	return slices.Clone(s.byEndpoint[endpoint])
}

// ResultsAtTimestamp returns every result checked at exactly timestamp
func (s *Store) ResultsAtTimestamp(timestamp int64) []*models.Result {
	return slices.Clone(s.byTimestamp[timestamp])
}

// AllOrdered returns all results by ascending timestamp. The order is only
// complete once every expected check file has been added.
func (s *Store) AllOrdered() []*models.Result {
	return slices.Clone(s.ordered)
}

// Endpoints lists known endpoints in order of first appearance
func (s *Store) Endpoints() []string {
	return slices.Clone(s.endpoints)
}

// Timestamps lists the distinct check timestamps in ascending order
func (s *Store) Timestamps() []int64 {
	timestamps := make([]int64, 0, len(s.byTimestamp))
	for ts := range s.byTimestamp {
		timestamps = append(timestamps, ts)
	}
	slices.Sort(timestamps)
	return timestamps
}

// Latest returns the most recently arrived result for an endpoint
func (s *Store) Latest(endpoint string) (*models.Result, bool) {
	results := s.byEndpoint[endpoint]
	if len(results) == 0 {
		return nil, false
	}
	return results[len(results)-1], true
}

// Len returns the number of stored results
func (s *Store) Len() int {
	return len(s.ordered)
}
