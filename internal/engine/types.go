package engine

// --- Collected data ---

// VideoRecord is one collected video: a search hit merged with its detail lookup.
type VideoRecord struct {
	Index         int    `json:"index"`
	VideoID       string `json:"video_id"`
	Title         string `json:"title"`
	ChannelTitle  string `json:"channel_title"`
	ChannelID     string `json:"channel_id"`
	Duration      string `json:"duration"` // HH:MM:SS
	Views         int64  `json:"views"`
	Comments      int64  `json:"comments"`
	URL           string `json:"url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	Tags          string `json:"tags"`
	PublishedDate string `json:"published_date"` // YYYY-MM-DD
}

// Stats is the summary computed over a collected set.
type Stats struct {
	TotalVideos   int   `json:"total_videos"`
	TotalViews    int64 `json:"total_views"`
	TotalComments int64 `json:"total_comments"`
	AvgViews      int64 `json:"avg_views"`

	TotalViewsText    string `json:"total_views_text,omitempty"`
	TotalCommentsText string `json:"total_comments_text,omitempty"`
	AvgViewsText      string `json:"avg_views_text,omitempty"`
}

// --- Operation input / output ---

// SearchParams are the form inputs of one search operation.
type SearchParams struct {
	Query     string `json:"query"`
	ChannelID string `json:"channel_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD, optional
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, optional
	Dedupe    bool   `json:"dedupe"`
}

// Termination names why an operation stopped paging.
type Termination string

const (
	TerminationNone       Termination = ""
	TerminationExhausted  Termination = "exhausted"
	TerminationCapReached Termination = "cap_reached"
	TerminationNoResults  Termination = "no_results"
	TerminationNoVideoIDs Termination = "no_video_ids"
)

// Result is the finalized outcome of a successful operation.
type Result struct {
	Params          SearchParams  `json:"params"`
	Records         []VideoRecord `json:"records"`
	Stats           Stats         `json:"stats"`
	Termination     Termination   `json:"termination"`
	Pages           int           `json:"pages"`
	FetchedTotal    int           `json:"fetched_total"`
	SkippedPages    int           `json:"skipped_pages"`
	DroppedIDs      int           `json:"dropped_ids"`
	DuplicatesFound int           `json:"duplicates_found,omitempty"`
	Log             []LogEntry    `json:"log"`
}

// Empty reports whether the operation completed without collecting anything.
func (r *Result) Empty() bool { return len(r.Records) == 0 }

// Partial reports whether some detail lookups failed and their items were dropped.
func (r *Result) Partial() bool { return r.SkippedPages > 0 }
