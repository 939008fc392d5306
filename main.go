// go_ytsearch is a YouTube search, statistics & spreadsheet export MCP server.
//
// Exposes three MCP tools: youtube_search, youtube_export, youtube_status.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/export"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsearch/internal/ytserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	// A missing .env is fine; the environment may already carry the key.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	mcpPort := env.Str("MCP_PORT", "8892")
	cfg := loadConfig()
	if cfg.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY is not set; youtube_search will fail until it is configured")
	}

	engine.InitCache(env.Str("REDIS_URL", ""), env.Duration("CACHE_TTL", 15*time.Minute),
		cfg.CacheMaxEntries, cfg.CacheCleanupInterval)

	yt, err := sources.NewYouTube(context.Background(), cfg)
	if err != nil {
		slog.Error("youtube client init failed", slog.Any("error", err))
		os.Exit(1)
	}

	srv := ytserver.New(engine.NewCollector(yt, cfg), export.New(cfg.ExportDir), cfg.YouTubeAPIKey)

	slog.Info("starting go_ytsearch",
		slog.String("port", mcpPort),
		slog.Int("max_results", cfg.MaxResults),
		slog.Duration("page_delay", cfg.PageDelay),
		slog.String("export_dir", cfg.ExportDir),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytsearch",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server, srv)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytsearch",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func loadConfig() engine.Config {
	return engine.Config{
		YouTubeAPIKey:        engine.ResolveAPIKey(env.Str("YOUTUBE_API_KEY", "")),
		YouTubeAPIEndpoint:   env.Str("YOUTUBE_API_ENDPOINT", ""),
		PageSize:             env.Int("YOUTUBE_PAGE_SIZE", engine.DefaultPageSize),
		MaxResults:           env.Int("YOUTUBE_MAX_RESULTS", engine.DefaultMaxResults),
		PageDelay:            env.Duration("YOUTUBE_PAGE_DELAY", engine.DefaultPageDelay),
		NumberLocale:         env.Str("NUMBER_LOCALE", engine.DefaultLocale),
		ExportDir:            env.Str("EXPORT_DIR", "."),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 100),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
		HTTPClient: &http.Client{
			Timeout: env.Duration("FETCH_TIMEOUT", 15*time.Second),
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}
