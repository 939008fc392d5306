package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube search: Data API v3 search.list for pages, videos.list for batched details.

var (
	searchParts = []string{"snippet"}
	detailParts = []string{"contentDetails", "statistics", "snippet"}
)

// YouTube implements engine.Backend over the official Data API v3 client.
type YouTube struct {
	svc *youtube.Service
}

// NewYouTube builds a Data API client authenticated with the configured key.
// cfg.YouTubeAPIEndpoint overrides the API base URL (proxies, tests).
func NewYouTube(ctx context.Context, cfg engine.Config) (*YouTube, error) {
	cfg = cfg.WithDefaults()

	// WithHTTPClient bypasses option.WithAPIKey, so the key goes on the transport.
	client := &http.Client{
		Timeout: cfg.HTTPClient.Timeout,
		Transport: &transport.APIKey{
			Key:       cfg.YouTubeAPIKey,
			Transport: cfg.HTTPClient.Transport,
		},
	}
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if cfg.YouTubeAPIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.YouTubeAPIEndpoint))
	}

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTube{svc: svc}, nil
}

// SearchPage fetches one page of video search results ordered by publish date.
func (y *YouTube) SearchPage(ctx context.Context, req engine.SearchRequest) (*engine.SearchPage, error) {
	call := y.svc.Search.List(searchParts).
		Type("video").
		Order("date").
		MaxResults(int64(req.MaxResults)).
		Context(ctx)
	if req.Query != "" {
		call = call.Q(req.Query)
	}
	if req.ChannelID != "" {
		call = call.ChannelId(req.ChannelID)
	}
	if req.PublishedAfter != "" {
		call = call.PublishedAfter(req.PublishedAfter)
	}
	if req.PublishedBefore != "" {
		call = call.PublishedBefore(req.PublishedBefore)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, apiError(err)
	}

	page := &engine.SearchPage{
		Items:         make([]engine.SearchHit, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		var hit engine.SearchHit
		if item.Id != nil {
			hit.VideoID = item.Id.VideoId
		}
		if item.Snippet != nil {
			hit.Title = item.Snippet.Title
		}
		page.Items = append(page.Items, hit)
	}
	return page, nil
}

// LookupDetails fetches snippet, contentDetails and statistics for ids in one request.
func (y *YouTube) LookupDetails(ctx context.Context, ids []string) ([]*youtube.Video, error) {
	resp, err := y.svc.Videos.List(detailParts).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError(err)
	}
	return resp.Items, nil
}

// apiError converts a googleapi error into an engine.APIError carrying error.message.
func apiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &engine.APIError{StatusCode: gerr.Code, Message: gerr.Message}
	}
	return fmt.Errorf("youtube data API: %w", err)
}
