package ytserver

import "github.com/modelcontextprotocol/go-sdk/mcp"

// RegisterTools registers the YouTube tools on the given MCP server:
// youtube_search, youtube_export, youtube_status.
func RegisterTools(server *mcp.Server, s *Server) {
	registerYouTubeSearch(server, s)
	registerYouTubeExport(server, s)
	registerYouTubeStatus(server, s)
}
