package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for observability
// endpoints, complementing the Prometheus scrape surface.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	UploadsTotal             uint64    `json:"uploads_total"`
	RowsIngestedTotal        uint64    `json:"rows_ingested_total"`
	RowsSkippedTotal         uint64    `json:"rows_skipped_total"`
	ParseFailuresTotal       uint64    `json:"parse_failures_total"`
	ReportsRenderedTotal     uint64    `json:"reports_rendered_total"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
