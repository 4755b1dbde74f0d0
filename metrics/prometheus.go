// Package metrics exports cache events as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/krisalay/routecache/types"
)

// Prometheus implements types.Metrics with one counter per event.
type Prometheus struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Expired   prometheus.Counter
	Evictions prometheus.Counter
	Loads     *prometheus.CounterVec // label "result": "ok" or "error"
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus creates the counters under namespace and registers them on reg.
func NewPrometheus(namespace string, reg prometheus.Registerer) (*Prometheus, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		})
	}

	m := &Prometheus{
		Hits:      counter("hits_total", "Reads that found a fresh entry."),
		Misses:    counter("misses_total", "Reads that found no fresh entry."),
		Expired:   counter("expired_total", "Stale entries removed by reads or sweeps."),
		Evictions: counter("evictions_total", "Entries removed to stay within capacity."),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "loads_total",
			Help:      "Read-through loader calls by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.Hits, m.Misses, m.Expired, m.Evictions, m.Loads} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Prometheus) Hit()      { m.Hits.Inc() }
func (m *Prometheus) Miss()     { m.Misses.Inc() }
func (m *Prometheus) Expire()   { m.Expired.Inc() }
func (m *Prometheus) Eviction() { m.Evictions.Inc() }

func (m *Prometheus) Load(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.Loads.WithLabelValues(result).Inc()
}
