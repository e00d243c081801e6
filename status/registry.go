// Package status collects engine metrics: counters for events, gauges for levels
package status

import "sync/atomic"

// Registry is shared by all systems of an engine
// Systems fetch their metric pointers once and update them lock-free
type Registry struct {
	Counters *MetricSet[atomic.Int64]
	Gauges   *MetricSet[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricSet[atomic.Int64](),
		Gauges:   NewMetricSet[Gauge](),
	}
}

// Counter is shorthand for Counters.Get
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Counters.Get(name)
}

// Gauge is shorthand for Gauges.Get
func (r *Registry) Gauge(name string) *Gauge {
	return r.Gauges.Get(name)
}

// Snapshot is a point-in-time copy of all metrics
type Snapshot struct {
	Counters map[string]int64   `json:"counters"`
	Gauges   map[string]float64 `json:"gauges"`
}

func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Counters: make(map[string]int64, r.Counters.Count()),
		Gauges:   make(map[string]float64, r.Gauges.Count()),
	}
	for name, c := range r.Counters.All() {
		s.Counters[name] = c.Load()
	}
	for name, g := range r.Gauges.All() {
		s.Gauges[name] = g.Get()
	}
	return s
}
