package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_ytsearch/internal/engine/export"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerYouTubeExport(server *mcp.Server, s *Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_export",
		Description: "Export the videos collected by the last youtube_search to an .xlsx spreadsheet named <file_name>_<YYYY-MM-DD>.xlsx. Returns the file path, row count and size.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, *export.Output, error) {
		out, err := s.Export(input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
