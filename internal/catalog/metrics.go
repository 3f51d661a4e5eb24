package catalog

import "github.com/prometheus/client_golang/prometheus"

const (
	labelResult  = "result"
	labelOutcome = "outcome"
)

// Metrics are optional; a nil *Metrics records nothing.
type Metrics struct {
	SearchCache  *prometheus.CounterVec
	SearchScans  prometheus.Counter
	OrderUpdates *prometheus.CounterVec
	Selected     prometheus.Gauge
	CachedTerms  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_search_cache_requests_total",
				Help: "Search index lookups by cache result",
			},
			[]string{labelResult},
		),
		SearchScans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_search_scans_total",
			Help: "Full id scans performed by the search index",
		}),
		OrderUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_order_updates_total",
				Help: "Custom order updates by outcome",
			},
			[]string{labelOutcome},
		),
		Selected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_selected_items",
			Help: "Number of selected items",
		}),
		CachedTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_search_cached_terms",
			Help: "Number of memoized search terms",
		}),
	}

	reg.MustRegister(m.SearchCache, m.SearchScans, m.OrderUpdates, m.Selected, m.CachedTerms)
	return m
}

func (m *Metrics) searchLookup(hit bool, cachedTerms int) {
	if m == nil {
		return
	}
	if hit {
		m.SearchCache.WithLabelValues("hit").Inc()
	} else {
		m.SearchCache.WithLabelValues("miss").Inc()
		m.SearchScans.Inc()
	}
	m.CachedTerms.Set(float64(cachedTerms))
}

func (m *Metrics) orderUpdate(outcome string) {
	if m == nil {
		return
	}
	m.OrderUpdates.WithLabelValues(outcome).Inc()
	if outcome != "rejected" {
		m.CachedTerms.Set(0)
	}
}

func (m *Metrics) selected(n int) {
	if m == nil {
		return
	}
	m.Selected.Set(float64(n))
}
