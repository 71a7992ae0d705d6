package chart

import "slices"

// Registry owns the charts of one dashboard session, keyed by endpoint.
// Ids come from a counter that only ever increases.
type Registry struct {
	next   int
	charts map[string]*Chart
	order  []*Chart
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{charts: make(map[string]*Chart)}
}

// GetOrCreate returns the endpoint's chart, creating it with title on
// first use
func (r *Registry) GetOrCreate(endpoint, title string) *Chart {
	if c, ok := r.charts[endpoint]; ok {
		return c
	}
	c := &Chart{
		ID:       r.next,
		Endpoint: endpoint,
		Title:    title,
		Layers:   slices.Clone(DefaultLayers),
	}
	r.next++
	r.charts[endpoint] = c
	r.order = append(r.order, c)
	return c
}

// Get looks up the chart for an endpoint
func (r *Registry) Get(endpoint string) (*Chart, bool) {
	c, ok := r.charts[endpoint]
	return c, ok
}

// ByID looks up a chart by its id
func (r *Registry) ByID(id int) (*Chart, bool) {
	for _, c := range r.order {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// All returns the charts in creation order
func (r *Registry) All() []*Chart {
	return slices.Clone(r.order)
}
