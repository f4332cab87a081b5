package gateway

import "sort"

// Endpoint is one gateway entry point. Lower priority values are tried
// first; Retries is the number of attempts budgeted for this endpoint
// before failing over to the next one.
type Endpoint struct {
	BaseURL  string
	Priority int
	Retries  int
}

// EndpointList is an ordered set of gateway entry points.
type EndpointList struct {
	endpoints []Endpoint
}

// NewEndpointList returns a list seeded with the given endpoints.
func NewEndpointList(endpoints ...Endpoint) *EndpointList {
	l := &EndpointList{}
	for _, e := range endpoints {
		l.Add(e.BaseURL, e.Priority, e.Retries)
	}
	return l
}

// Add appends an entry point. A retry budget below one is bumped to one so
// every endpoint gets at least a single attempt.
func (l *EndpointList) Add(baseURL string, priority, retries int) {
	if retries < 1 {
		retries = 1
	}
	l.endpoints = append(l.endpoints, Endpoint{BaseURL: baseURL, Priority: priority, Retries: retries})
}

// Ordered returns the endpoints sorted by ascending priority. The sort is
// stable, so endpoints with equal priority keep their declaration order.
func (l *EndpointList) Ordered() []Endpoint {
	out := make([]Endpoint, len(l.endpoints))
	copy(out, l.endpoints)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Len reports how many endpoints are configured.
func (l *EndpointList) Len() int {
	return len(l.endpoints)
}
