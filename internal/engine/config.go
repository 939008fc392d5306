package engine

import (
	"net/http"
	"strings"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey        string
	YouTubeAPIEndpoint   string // empty = official endpoint
	PageSize             int
	MaxResults           int
	PageDelay            time.Duration
	NumberLocale         string
	ExportDir            string
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
}

// Defaults applied when the corresponding Config field is zero.
const (
	DefaultPageSize   = 50
	DefaultMaxResults = 200
	DefaultPageDelay  = 300 * time.Millisecond
	DefaultLocale     = "ko-KR"
	DefaultFileBase   = "youtube_results"
)

// ResolveAPIKey trims raw and returns "" when it is blank or a placeholder
// shipped in sample config files.
func ResolveAPIKey(raw string) string {
	key := strings.TrimSpace(raw)
	switch key {
	case "", "YOUR_API_KEY", "여기에_API_키를_입력하세요":
		return ""
	}
	return key
}

// MaskAPIKey shows the first and last four characters of key.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("•", 8)
	}
	return key[:4] + "••••••••" + key[len(key)-4:]
}

// WithDefaults returns c with zero fields replaced by package defaults.
func (c Config) WithDefaults() Config {
	c.YouTubeAPIKey = ResolveAPIKey(c.YouTubeAPIKey)
	if c.PageSize <= 0 || c.PageSize > DefaultPageSize {
		c.PageSize = DefaultPageSize
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.PageDelay < 0 {
		c.PageDelay = 0
	}
	if c.NumberLocale == "" {
		c.NumberLocale = DefaultLocale
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return c
}
