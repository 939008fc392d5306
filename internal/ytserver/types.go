package ytserver

import (
	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/export"
)

// --- youtube_search ---

// SearchInput is the youtube_search form.
type SearchInput struct {
	Query     string `json:"query,omitempty" jsonschema:"Search keywords (e.g. golang tutorial). Required unless channel_id is set"`
	ChannelID string `json:"channel_id,omitempty" jsonschema:"Restrict results to one channel (e.g. UC_x5XG1OV2P6uZZ5FSM9Ttw)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Only videos published on or after this date, YYYY-MM-DD"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Only videos published on or before this date, YYYY-MM-DD"`
	SortBy    string `json:"sort_by,omitempty" jsonschema:"Sort column: index (default), title, channel, duration, views, comments, published"`
	SortDesc  bool   `json:"sort_desc,omitempty" jsonschema:"Sort descending"`
	Dedupe    bool   `json:"dedupe,omitempty" jsonschema:"Drop videos already collected earlier in the same search"`
	Fresh     bool   `json:"fresh,omitempty" jsonschema:"Bypass the result cache and query the API again"`
	Export    bool   `json:"export,omitempty" jsonschema:"Also write the collected videos to an .xlsx file"`
	FileName  string `json:"file_name,omitempty" jsonschema:"Base name of the exported file; the date and .xlsx are appended (default youtube_results)"`
}

// SearchOutput is the youtube_search result: the finalized operation with its
// records in the requested order.
type SearchOutput struct {
	Summary  string         `json:"summary"`
	SortBy   string         `json:"sort_by"`
	SortDesc bool           `json:"sort_desc,omitempty"`
	Cached   bool           `json:"cached,omitempty"`
	Result   *engine.Result `json:"result"`
	Export   *export.Output `json:"export,omitempty"`
	Notice   string         `json:"notice,omitempty"`
}

// --- youtube_export ---

// ExportInput is the youtube_export form.
type ExportInput struct {
	FileName string `json:"file_name,omitempty" jsonschema:"Base name of the exported file; the date and .xlsx are appended (default youtube_results)"`
}

// --- youtube_status ---

// StatusInput takes no arguments.
type StatusInput struct{}

// StatusOutput reports the server's session state.
type StatusOutput struct {
	Running    bool           `json:"running"`
	APIKeySet  bool           `json:"api_key_set"`
	APIKey     string         `json:"api_key,omitempty"`
	LastResult *ResultSummary `json:"last_result,omitempty"`
}

// ResultSummary is a compact view of the last completed search.
type ResultSummary struct {
	Params      engine.SearchParams `json:"params"`
	Stats       engine.Stats        `json:"stats"`
	Termination engine.Termination  `json:"termination"`
	Pages       int                 `json:"pages"`
	Partial     bool                `json:"partial,omitempty"`
	RecentLog   []engine.LogEntry   `json:"recent_log"`
}
