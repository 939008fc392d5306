// Package toolutil provides shared helper functions for go_ytsearch MCP tools.
package toolutil

import (
	"strings"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
)

// NormSortKey normalises a sort_by field: trimmed, lowercased, empty → "index".
func NormSortKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "index"
	}
	return key
}

// NormParams trims the free-text form fields.
func NormParams(p engine.SearchParams) engine.SearchParams {
	p.Query = strings.TrimSpace(p.Query)
	p.ChannelID = strings.TrimSpace(p.ChannelID)
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.EndDate = strings.TrimSpace(p.EndDate)
	return p
}

// SearchCacheKey is the result-cache key for one set of search inputs.
func SearchCacheKey(p engine.SearchParams) string {
	dedupe := "0"
	if p.Dedupe {
		dedupe = "1"
	}
	return engine.CacheKey("youtube_search", p.Query, p.ChannelID, p.StartDate, p.EndDate, dedupe)
}

// TailLog returns the last n entries of log.
func TailLog(log []engine.LogEntry, n int) []engine.LogEntry {
	if n <= 0 || len(log) <= n {
		return log
	}
	return log[len(log)-n:]
}
