package ytserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerYouTubeStatus(server *mcp.Server, s *Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_status",
		Description: "Report whether a YouTube search is running, whether an API key is configured (masked), and a summary of the last completed search with its recent activity log.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, *StatusOutput, error) {
		return nil, s.Status(), nil
	})
}
