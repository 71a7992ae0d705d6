package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statuspage/internal/models"
)

func result(endpoint string, ts int64) *models.Result {
	return &models.Result{Endpoint: endpoint, Timestamp: ts}
}

func timestamps(results []*models.Result) []int64 {
	out := make([]int64, len(results))
	for i, r := range results {
		out[i] = r.Timestamp
	}
	return out
}

func TestStore_AllOrdered(t *testing.T) {
	s := New()
	s.Add(result("a", 30))
	s.Add(result("a", 10))
	s.Add(result("a", 20))

	assert.Equal(t, []int64{10, 20, 30}, timestamps(s.AllOrdered()))
	// arrival order is kept per endpoint
	assert.Equal(t, []int64{30, 10, 20}, timestamps(s.ResultsForEndpoint("a")))
}

func TestStore_EqualTimestampsKeepArrivalOrder(t *testing.T) {
	s := New()
	first := result("A", 10)
	second := result("B", 10)
	s.Add(result("C", 20))
	s.Add(first)
	s.Add(second)

	grouped := s.ResultsAtTimestamp(10)
	require.Len(t, grouped, 2)
	assert.Same(t, first, grouped[0])
	assert.Same(t, second, grouped[1])

	ordered := s.AllOrdered()
	require.Len(t, ordered, 3)
	assert.Same(t, first, ordered[0])
	assert.Same(t, second, ordered[1])
	assert.Equal(t, "C", ordered[2].Endpoint)
}

func TestStore_UnknownKeys(t *testing.T) {
	s := New()
	s.Add(result("a", 1))

	assert.Empty(t, s.ResultsForEndpoint("missing"))
	assert.Empty(t, s.ResultsAtTimestamp(42))

	_, ok := s.Latest("missing")
	assert.False(t, ok)
}

func TestStore_DuplicatesAreKept(t *testing.T) {
	s := New()
	s.Add(result("a", 5))
	s.Add(result("a", 5))

	assert.Len(t, s.ResultsForEndpoint("a"), 2)
	assert.Len(t, s.ResultsAtTimestamp(5), 2)
	assert.Equal(t, 2, s.Len())
}

func TestStore_ViewsAreCopies(t *testing.T) {
	s := New()
	s.Add(result("a", 1))
	s.Add(result("b", 2))

	ordered := s.AllOrdered()
	ordered[0] = nil

	assert.NotNil(t, s.AllOrdered()[0])
	assert.Equal(t, []string{"a", "b"}, s.Endpoints())
	assert.Equal(t, []int64{1, 2}, s.Timestamps())

	latest, ok := s.Latest("b")
	require.True(t, ok)
	assert.Equal(t, int64(2), latest.Timestamp)
}
