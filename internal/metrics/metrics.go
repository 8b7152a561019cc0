// Package metrics holds Prometheus instruments that are used across the
// renderer.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_tenants",
			Help: "Number of tenants currently loaded in memory.",
		})

	TenantLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_total",
			Help: "Cumulative number of tenants successfully loaded.",
		})

	TenantLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_errors_total",
			Help: "Cumulative number of tenant load errors.",
		})

	TenantEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_evict_total",
			Help: "Cumulative number of tenants evicted from the cache.",
		})

	PageViewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_views_total",
			Help: "Rendered page views, excluding crawlers.",
		}, []string{"device"})

	PageRenderCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "page_render_cache_hits_total",
			Help: "Page responses served from the rendered-page cache.",
		})

	EnrichRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enrich_runs_total",
			Help: "Image enrichment runs started.",
		})

	EnrichSlotsFilledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enrich_slots_filled_total",
			Help: "Image slots successfully filled across all runs.",
		})

	EnrichSearchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enrich_search_errors_total",
			Help: "Stock-photo searches that returned an error.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveTenants,
		TenantLoadTotal,
		TenantLoadErrorsTotal,
		TenantEvictTotal,
		PageViewsTotal,
		PageRenderCacheHits,
		EnrichRunsTotal,
		EnrichSlotsFilledTotal,
		EnrichSearchErrorsTotal,
	)
}
