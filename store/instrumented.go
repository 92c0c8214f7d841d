package store

import (
	"github.com/erraggy/blueprints/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps a Store and counts its traffic with Prometheus counters.
type Instrumented struct {
	next Store

	parses      *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	releases    prometheus.Counter
}

// NewInstrumented wraps next and registers its counters on reg. A nil reg
// leaves the counters unregistered.
func NewInstrumented(next Store, reg prometheus.Registerer) *Instrumented {
	s := &Instrumented{
		next: next,
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blueprints",
				Subsystem: "store",
				Name:      "parses_total",
				Help:      "Total number of documents parsed",
			},
			[]string{"format"},
		),
		parseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blueprints",
				Subsystem: "store",
				Name:      "parse_errors_total",
				Help:      "Total number of documents that failed to parse",
			},
			[]string{"format"},
		),
		releases: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "blueprints",
				Subsystem: "store",
				Name:      "releases_total",
				Help:      "Total number of documents released",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(s.parses, s.parseErrors, s.releases)
	}
	return s
}

// Parse implements Store.
func (s *Instrumented) Parse(location string) (*tree.Map, error) {
	format := string(DetectFormat(location))
	s.parses.WithLabelValues(format).Inc()
	doc, err := s.next.Parse(location)
	if err != nil {
		s.parseErrors.WithLabelValues(format).Inc()
	}
	return doc, err
}

// Release implements Store.
func (s *Instrumented) Release(location string) {
	s.releases.Inc()
	s.next.Release(location)
}

// Unwrap returns the wrapped Store.
func (s *Instrumented) Unwrap() Store {
	return s.next
}

var _ Store = (*Instrumented)(nil)
