package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/anatolykoptev/go-kit/strutil"
	"google.golang.org/api/youtube/v3"
)

// SearchRequest is one search-list call. The backend always asks for
// part=snippet, type=video and order=date.
type SearchRequest struct {
	Query           string
	ChannelID       string
	PublishedAfter  string // RFC 3339, empty = unbounded
	PublishedBefore string
	PageToken       string
	MaxResults      int
}

// SearchHit is one lightweight search result.
type SearchHit struct {
	VideoID string
	Title   string
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items         []SearchHit
	NextPageToken string
}

// Backend issues the two upstream calls the collector needs.
type Backend interface {
	SearchPage(ctx context.Context, req SearchRequest) (*SearchPage, error)
	LookupDetails(ctx context.Context, ids []string) ([]*youtube.Video, error)
}

// Collector drives search operations against a Backend.
// It holds only immutable settings; all per-search state lives in an Operation.
type Collector struct {
	backend    Backend
	apiKey     string
	pageSize   int
	maxResults int
	delay      time.Duration
	formatter  *Formatter
	logger     *slog.Logger
}

// NewCollector builds a Collector from cfg (zero fields take package defaults).
func NewCollector(backend Backend, cfg Config) *Collector {
	cfg = cfg.WithDefaults()
	return &Collector{
		backend:    backend,
		apiKey:     cfg.YouTubeAPIKey,
		pageSize:   cfg.PageSize,
		maxResults: cfg.MaxResults,
		delay:      cfg.PageDelay,
		formatter:  NewFormatter(cfg.NumberLocale),
		logger:     slog.Default(),
	}
}

// Formatter returns the collector's number formatter.
func (c *Collector) Formatter() *Formatter { return c.formatter }

// OperationState is the lifecycle position of an Operation.
type OperationState int32

const (
	StateIdle OperationState = iota
	StatePaging
	StateTerminated
	StateFailed
)

func (s OperationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaging:
		return "paging"
	case StateTerminated:
		return "terminated"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Operation is a single search run: created, run once, then finalized into a Result.
type Operation struct {
	c      *Collector
	params SearchParams
	log    *ActivityLog
	state  atomic.Int32

	records     []VideoRecord
	seen        map[string]bool
	pages       int
	fetched     int
	skipped     int
	dropped     int
	duplicates  int
	termination Termination
}

// NewOperation creates an idle operation with an empty collected set.
func (c *Collector) NewOperation(p SearchParams) *Operation {
	return &Operation{
		c:      c,
		params: p,
		log:    NewActivityLog(c.logger),
		seen:   make(map[string]bool),
	}
}

// State returns the current lifecycle state.
func (op *Operation) State() OperationState { return OperationState(op.state.Load()) }

// Log returns the operation's activity feed.
func (op *Operation) Log() *ActivityLog { return op.log }

// Run pages through search results until no next page remains or the cap is reached.
// Search failures abort the operation; detail-lookup failures drop that page and continue.
func (op *Operation) Run(ctx context.Context) (*Result, error) {
	if !op.state.CompareAndSwap(int32(StateIdle), int32(StatePaging)) {
		return nil, ErrAlreadyRun
	}
	metrics.Operations.Add(1)

	if err := op.validate(); err != nil {
		return nil, op.fail(err)
	}

	op.log.Info("starting YouTube search (query=%q channel=%q)", op.params.Query, op.params.ChannelID)

	token := ""
	for {
		page := op.pages + 1
		op.log.Info("calling search API (page %d)", page)
		metrics.SearchRequests.Add(1)
		sp, err := op.c.backend.SearchPage(ctx, op.searchRequest(token))
		if err != nil {
			if ctx.Err() != nil {
				return nil, op.fail(ctx.Err())
			}
			return nil, op.fail(&SearchError{Page: page, Err: err})
		}
		token = sp.NextPageToken

		if len(sp.Items) == 0 {
			op.log.Info("no more search results")
			op.termination = TerminationNoResults
			break
		}
		op.pages = page
		op.log.Info("page %d returned %d results", page, len(sp.Items))

		ids := op.videoIDs(sp.Items)
		if len(ids) == 0 {
			op.log.Info("page %d has no video IDs, stopping", page)
			op.termination = TerminationNoVideoIDs
			break
		}
		if op.params.Dedupe {
			ids = op.dedupe(ids)
		}

		if len(ids) > 0 {
			if err := op.collectDetails(ctx, page, ids); err != nil {
				return nil, op.fail(err)
			}
		}

		op.fetched += len(sp.Items)

		if token == "" {
			op.log.Info("all pages exhausted")
			op.termination = TerminationExhausted
			break
		}
		if op.fetched >= op.c.maxResults {
			op.log.Info("cap reached (%d)", op.c.maxResults)
			op.termination = TerminationCapReached
			break
		}

		if err := op.wait(ctx); err != nil {
			return nil, op.fail(err)
		}
	}

	return op.finalize(), nil
}

// collectDetails looks up one page of ids and appends a record per returned item.
// A failed lookup is logged and the page's ids are dropped; only cancellation is returned.
func (op *Operation) collectDetails(ctx context.Context, page int, ids []string) error {
	op.log.Info("looking up details for %d videos", len(ids))
	metrics.DetailRequests.Add(1)

	videos, err := op.c.backend.LookupDetails(ctx, ids)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.DetailErrors.Add(1)
		op.skipped++
		op.dropped += len(ids)
		op.log.Warn("page %d: detail lookup failed, %d videos dropped: %s",
			page, len(ids), strutil.TruncateWith(err.Error(), 300, "..."))
		return nil
	}

	for _, v := range videos {
		rec := BuildRecord(v, len(op.records))
		op.records = append(op.records, rec)
		op.seen[rec.VideoID] = true
	}
	metrics.RecordsCollected.Add(int64(len(videos)))
	op.log.Success("collected %d videos so far", len(op.records))
	return nil
}

func (op *Operation) validate() error {
	if op.c.apiKey == "" {
		return &PreconditionError{Err: ErrMissingAPIKey}
	}
	if op.params.Query == "" && op.params.ChannelID == "" {
		return &PreconditionError{Err: ErrMissingQuery}
	}
	for _, d := range []string{op.params.StartDate, op.params.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return &PreconditionError{Err: ErrInvalidDate}
		}
	}
	return nil
}

func (op *Operation) searchRequest(token string) SearchRequest {
	req := SearchRequest{
		Query:      op.params.Query,
		ChannelID:  op.params.ChannelID,
		PageToken:  token,
		MaxResults: op.c.pageSize,
	}
	if op.params.StartDate != "" {
		req.PublishedAfter = op.params.StartDate + "T00:00:00Z"
	}
	if op.params.EndDate != "" {
		req.PublishedBefore = op.params.EndDate + "T23:59:59Z"
	}
	return req
}

func (op *Operation) videoIDs(items []SearchHit) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.VideoID != "" {
			ids = append(ids, it.VideoID)
		}
	}
	return ids
}

// dedupe removes ids already collected by this operation or repeated within the page.
func (op *Operation) dedupe(ids []string) []string {
	page := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if op.seen[id] || page[id] {
			op.duplicates++
			continue
		}
		page[id] = true
		out = append(out, id)
	}
	if n := len(ids) - len(out); n > 0 {
		op.log.Info("skipped %d duplicate videos", n)
	}
	return out
}

// wait pauses for the fixed inter-page delay.
func (op *Operation) wait(ctx context.Context) error {
	if op.c.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(op.c.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (op *Operation) fail(err error) error {
	op.state.Store(int32(StateFailed))
	metrics.OperationErrors.Add(1)
	var pre *PreconditionError
	if errors.As(err, &pre) {
		op.log.Error("%s", err.Error())
	} else {
		op.log.Error("search aborted: %s", err.Error())
	}
	return err
}

func (op *Operation) finalize() *Result {
	if op.skipped > 0 {
		op.log.Info("%d page(s) had failed detail lookups; %d videos were not collected", op.skipped, op.dropped)
	}
	if len(op.records) == 0 {
		op.log.Warn("no videos found for these search conditions")
	} else {
		op.log.Success("collected %d videos in total", len(op.records))
	}
	op.state.Store(int32(StateTerminated))

	if op.records == nil {
		op.records = []VideoRecord{}
	}
	return &Result{
		Params:          op.params,
		Records:         op.records,
		Stats:           op.c.formatter.WithText(Aggregate(op.records)),
		Termination:     op.termination,
		Pages:           op.pages,
		FetchedTotal:    op.fetched,
		SkippedPages:    op.skipped,
		DroppedIDs:      op.dropped,
		DuplicatesFound: op.duplicates,
		Log:             op.log.Entries(),
	}
}
