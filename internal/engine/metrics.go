package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	Operations       atomic.Int64
	OperationErrors  atomic.Int64
	SearchRequests   atomic.Int64
	DetailRequests   atomic.Int64
	DetailErrors     atomic.Int64
	RecordsCollected atomic.Int64
	Exports          atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"operations":        metrics.Operations.Load(),
		"operation_errors":  metrics.OperationErrors.Load(),
		"search_requests":   metrics.SearchRequests.Load(),
		"detail_requests":   metrics.DetailRequests.Load(),
		"detail_errors":     metrics.DetailErrors.Load(),
		"records_collected": metrics.RecordsCollected.Load(),
		"exports":           metrics.Exports.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"operations", "operation_errors",
		"search_requests", "detail_requests", "detail_errors",
		"records_collected", "exports",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// IncrExports increments the export counter; called by the export package.
func IncrExports() { metrics.Exports.Add(1) }
