// Package metrics defines the Prometheus collectors the search engine
// records into.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes recorded in SearchesTotal.
const (
	OutcomeOK          = "ok"
	OutcomeSyntaxError = "syntax_error"
	OutcomeLenient     = "lenient"
	OutcomeError       = "error"
)

// Metrics holds the engine collectors.
type Metrics struct {
	// SearchesTotal counts searches by outcome.
	SearchesTotal *prometheus.CounterVec
	// CompileCache counts compile cache lookups by result (hit, miss).
	CompileCache *prometheus.CounterVec
	// CompileDuration is the latency of parse plus compile.
	CompileDuration prometheus.Histogram
	// FetchDuration is the latency of the page query.
	FetchDuration prometheus.Histogram
	// PageSize is the number of ids returned per page.
	PageSize prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardsearch_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"outcome"},
		),
		CompileCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardsearch_compile_cache_total",
				Help: "Compile cache lookups by result",
			},
			[]string{"result"},
		),
		CompileDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cardsearch_compile_duration_seconds",
				Help:    "Search parse and compile latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cardsearch_fetch_duration_seconds",
				Help:    "Page query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		PageSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cardsearch_page_size",
				Help:    "Card ids returned per page",
				Buckets: prometheus.LinearBuckets(0, 25, 9),
			},
		),
	}
}

// Sample is one gathered counter value or histogram observation count.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

func (s Sample) String() string {
	if s.Labels == "" {
		return fmt.Sprintf("%s %g", s.Name, s.Value)
	}
	return fmt.Sprintf("%s{%s} %g", s.Name, s.Labels, s.Value)
}

// Summarize flattens counters and histogram counts from g, sorted by name
// and labels. Histograms report their observation count under name_count.
func Summarize(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			labels := strings.Join(pairs, ",")

			switch {
			case m.GetCounter() != nil:
				out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: m.GetCounter().GetValue()})
			case m.GetHistogram() != nil:
				out = append(out, Sample{
					Name:   mf.GetName() + "_count",
					Labels: labels,
					Value:  float64(m.GetHistogram().GetSampleCount()),
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
