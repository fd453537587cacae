package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the tenant module's Prometheus metrics.
type Metrics struct {
	TenantsCreated     prometheus.Counter
	TimezoneUpdates    prometheus.Counter
	TimezoneCacheHits  prometheus.Counter
	TimezoneCacheMiss  prometheus.Counter
}

// New creates and registers the tenant metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		TenantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybound_tenants_created_total",
			Help: "Total number of tenants onboarded.",
		}),
		TimezoneUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybound_tenant_timezone_updates_total",
			Help: "Total number of tenant timezone changes.",
		}),
		TimezoneCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybound_tenant_timezone_cache_hits_total",
			Help: "Tenant timezone lookups served from cache.",
		}),
		TimezoneCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "daybound_tenant_timezone_cache_misses_total",
			Help: "Tenant timezone lookups that fell through to the store.",
		}),
	}
}

// IncrementTenantsCreated increments the onboarded tenants counter by 1.
func (m *Metrics) IncrementTenantsCreated() {
	if m != nil {
		m.TenantsCreated.Inc()
	}
}

// IncrementTimezoneUpdates increments the timezone changes counter by 1.
func (m *Metrics) IncrementTimezoneUpdates() {
	if m != nil {
		m.TimezoneUpdates.Inc()
	}
}

// RecordCacheHit counts one cache hit.
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.TimezoneCacheHits.Inc()
	}
}

// RecordCacheMiss counts one fall-through to the store.
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.TimezoneCacheMiss.Inc()
	}
}
