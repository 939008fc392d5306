package ytserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerYouTubeSearch(server *mcp.Server, s *Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search YouTube videos by keywords and/or channel ID within an optional publish date range (YYYY-MM-DD). Pages through results newest first (up to the configured cap), enriches each video with duration, views, comments, tags and thumbnail, and returns the table with totals and an activity log. Optionally sorts the table and exports it to .xlsx. Only one search runs at a time.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, *SearchOutput, error) {
		out, err := s.Search(ctx, input)
		if err != nil {
			slog.Warn("youtube_search failed", slog.Any("error", err))
			return nil, nil, err
		}
		return nil, out, nil
	})
}
