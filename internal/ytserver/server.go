// Package ytserver exposes the YouTube collector as MCP tools and holds the
// session: the re-entrancy guard and the last completed result.
package ytserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/export"
	"github.com/anatolykoptev/go_ytsearch/internal/toolutil"
)

// ErrNoResult is returned by Export before any search has completed.
var ErrNoResult = errors.New("no completed search to export; run youtube_search first")

const statusLogTail = 10

// Server owns one collector, one exporter and the session state shared by the tools.
type Server struct {
	collector *engine.Collector
	exporter  *export.Exporter
	apiKey    string
	guard     Guard

	mu   sync.RWMutex
	last *engine.Result
}

// New builds a Server. apiKey is only used for status reporting.
func New(collector *engine.Collector, exporter *export.Exporter, apiKey string) *Server {
	return &Server{
		collector: collector,
		exporter:  exporter,
		apiKey:    engine.ResolveAPIKey(apiKey),
	}
}

// LastResult returns the last completed search, or nil.
func (s *Server) LastResult() *engine.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Server) setLast(r *engine.Result) {
	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
}

// Search runs one operation (or serves it from cache), stores it as the session
// result, and returns the records in the requested order.
func (s *Server) Search(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	params := toolutil.NormParams(engine.SearchParams{
		Query:     in.Query,
		ChannelID: in.ChannelID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Dedupe:    in.Dedupe,
	})
	sortKey := toolutil.NormSortKey(in.SortBy)
	if _, err := engine.SortRecords(nil, sortKey, false); err != nil {
		return nil, err
	}

	if !s.guard.TryAcquire() {
		return nil, ErrBusy
	}
	defer s.guard.Release()

	res, cached, err := s.run(ctx, params, in.Fresh)
	if err != nil {
		return nil, err
	}
	s.setLast(res)

	records, err := engine.SortRecords(res.Records, sortKey, in.SortDesc)
	if err != nil {
		return nil, err
	}
	view := *res
	view.Records = records

	out := &SearchOutput{
		Summary:  summarize(res),
		SortBy:   sortKey,
		SortDesc: in.SortDesc,
		Cached:   cached,
		Result:   &view,
	}

	if in.Export {
		exp, err := s.exporter.Export(res.Records, in.FileName)
		switch {
		case errors.Is(err, export.ErrNothingToExport):
			out.Notice = "nothing exported: " + err.Error()
		case err != nil:
			return nil, fmt.Errorf("export: %w", err)
		default:
			out.Export = exp
		}
	}
	return out, nil
}

func (s *Server) run(ctx context.Context, params engine.SearchParams, fresh bool) (*engine.Result, bool, error) {
	key := toolutil.SearchCacheKey(params)
	if !fresh {
		if res, ok := engine.CacheLoadJSON[engine.Result](ctx, key); ok {
			slog.Info("youtube_search: served from cache", slog.String("query", params.Query))
			return &res, true, nil
		}
	}

	res, err := s.collector.NewOperation(params).Run(ctx)
	if err != nil {
		var se *engine.SearchError
		if errors.As(err, &se) && se.Transient() {
			return nil, false, fmt.Errorf("%w (YouTube is rate limiting or unavailable, try again later)", err)
		}
		return nil, false, err
	}

	// Partial results are not cached so a later call can recover the dropped pages.
	if !res.Partial() {
		engine.CacheStoreJSON(ctx, key, *res)
	}
	return res, false, nil
}

// Export writes the last completed result to a spreadsheet.
func (s *Server) Export(in ExportInput) (*export.Output, error) {
	last := s.LastResult()
	if last == nil {
		return nil, ErrNoResult
	}
	return s.exporter.Export(last.Records, in.FileName)
}

// Status reports whether a search is running, the credential state and the last result.
func (s *Server) Status() *StatusOutput {
	out := &StatusOutput{
		Running:   s.guard.Busy(),
		APIKeySet: s.apiKey != "",
	}
	if out.APIKeySet {
		out.APIKey = engine.MaskAPIKey(s.apiKey)
	}
	if last := s.LastResult(); last != nil {
		out.LastResult = &ResultSummary{
			Params:      last.Params,
			Stats:       last.Stats,
			Termination: last.Termination,
			Pages:       last.Pages,
			Partial:     last.Partial(),
			RecentLog:   toolutil.TailLog(last.Log, statusLogTail),
		}
	}
	return out
}

func summarize(r *engine.Result) string {
	if r.Empty() {
		return "No videos found for these search conditions."
	}
	s := fmt.Sprintf("Collected %d videos. Total views %s, total comments %s, average views %s.",
		r.Stats.TotalVideos, r.Stats.TotalViewsText, r.Stats.TotalCommentsText, r.Stats.AvgViewsText)
	if r.Partial() {
		s += fmt.Sprintf(" %d page(s) failed detail lookup and %d videos were dropped.", r.SkippedPages, r.DroppedIDs)
	}
	return s
}
