package ytserver

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/youtube/v3"
)

// stubBackend returns a single page of videos with the given view counts.
type stubBackend struct {
	views     []uint64
	searchErr error
	block     chan struct{} // when set, SearchPage waits for it to close
	entered   chan struct{}

	searches atomic.Int32
	once     sync.Once
}

func (b *stubBackend) SearchPage(ctx context.Context, _ engine.SearchRequest) (*engine.SearchPage, error) {
	b.searches.Add(1)
	if b.block != nil {
		b.once.Do(func() { close(b.entered) })
		select {
		case <-b.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	sp := &engine.SearchPage{}
	for i := range b.views {
		sp.Items = append(sp.Items, engine.SearchHit{VideoID: videoID(i)})
	}
	return sp, nil
}

func (b *stubBackend) LookupDetails(_ context.Context, ids []string) ([]*youtube.Video, error) {
	out := make([]*youtube.Video, 0, len(ids))
	for i, id := range ids {
		out = append(out, &youtube.Video{
			Id:         id,
			Snippet:    &youtube.VideoSnippet{Title: "video " + id},
			Statistics: &youtube.VideoStatistics{ViewCount: b.views[i]},
		})
	}
	return out, nil
}

func videoID(i int) string { return string(rune('a' + i)) }

func newTestServer(t *testing.T, b engine.Backend) *Server {
	t.Helper()
	c := engine.NewCollector(b, engine.Config{YouTubeAPIKey: "AIzaSyTESTKEY12345678"})
	e := &export.Exporter{Dir: t.TempDir(), Now: func() time.Time { return time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) }}
	return New(c, e, "AIzaSyTESTKEY12345678")
}

func TestGuard(t *testing.T) {
	var g Guard
	require.True(t, g.TryAcquire())
	assert.True(t, g.Busy())
	assert.False(t, g.TryAcquire())
	g.Release()
	assert.False(t, g.Busy())
	assert.True(t, g.TryAcquire())
}

func TestSearchStoresSession(t *testing.T) {
	b := &stubBackend{views: []uint64{10, 30, 20}}
	s := newTestServer(t, b)
	assert.Nil(t, s.LastResult())

	out, err := s.Search(context.Background(), SearchInput{Query: "  golang ", SortBy: "views", SortDesc: true})
	require.NoError(t, err)

	assert.Equal(t, "views", out.SortBy)
	assert.False(t, out.Cached)
	require.Len(t, out.Result.Records, 3)
	assert.Equal(t, []int{2, 3, 1}, indices(out.Result.Records))
	assert.Equal(t, "golang", out.Result.Params.Query)
	assert.Contains(t, out.Summary, "Collected 3 videos")

	last := s.LastResult()
	require.NotNil(t, last)
	assert.Equal(t, []int{1, 2, 3}, indices(last.Records), "session keeps insertion order")
	assert.False(t, s.guard.Busy())
}

func TestSearchRejectsUnknownSortKey(t *testing.T) {
	b := &stubBackend{views: []uint64{1}}
	s := newTestServer(t, b)

	_, err := s.Search(context.Background(), SearchInput{Query: "go", SortBy: "likes"})
	assert.ErrorIs(t, err, engine.ErrUnknownSortKey)
	assert.Zero(t, b.searches.Load())
}

func TestSearchPrecondition(t *testing.T) {
	b := &stubBackend{views: []uint64{1}}
	s := newTestServer(t, b)

	_, err := s.Search(context.Background(), SearchInput{})
	assert.ErrorIs(t, err, engine.ErrMissingQuery)
	assert.Zero(t, b.searches.Load())
	assert.Nil(t, s.LastResult())
}

func TestSearchBusy(t *testing.T) {
	b := &stubBackend{views: []uint64{1}, block: make(chan struct{}), entered: make(chan struct{})}
	s := newTestServer(t, b)

	done := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), SearchInput{Query: "first"})
		done <- err
	}()
	<-b.entered

	_, err := s.Search(context.Background(), SearchInput{Query: "second"})
	assert.ErrorIs(t, err, ErrBusy)
	assert.True(t, s.Status().Running)

	close(b.block)
	require.NoError(t, <-done)
	assert.False(t, s.Status().Running)
	assert.Equal(t, "first", s.LastResult().Params.Query)
}

func TestSearchTransientHint(t *testing.T) {
	b := &stubBackend{searchErr: &engine.APIError{StatusCode: http.StatusTooManyRequests}}
	s := newTestServer(t, b)

	_, err := s.Search(context.Background(), SearchInput{Query: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search API error: HTTP 429")
	assert.Contains(t, err.Error(), "try again later")
	assert.Nil(t, s.LastResult())
}

func TestSearchCache(t *testing.T) {
	engine.InitCache("", time.Minute, 10, time.Minute)
	t.Cleanup(func() { engine.InitCache("", 0, 0, 0) })

	b := &stubBackend{views: []uint64{5, 7}}
	s := newTestServer(t, b)
	ctx := context.Background()

	first, err := s.Search(ctx, SearchInput{Query: "cached"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := s.Search(ctx, SearchInput{Query: "cached"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result.Stats, second.Result.Stats)
	assert.Equal(t, int32(1), b.searches.Load())

	_, err = s.Search(ctx, SearchInput{Query: "cached", Fresh: true})
	require.NoError(t, err)
	assert.Equal(t, int32(2), b.searches.Load())
}

func TestSearchWithExport(t *testing.T) {
	b := &stubBackend{views: []uint64{1, 2}}
	s := newTestServer(t, b)

	out, err := s.Search(context.Background(), SearchInput{Query: "go", Export: true, FileName: "gophers"})
	require.NoError(t, err)
	require.NotNil(t, out.Export)
	assert.Equal(t, "gophers_2024-05-06.xlsx", out.Export.FileName)
	assert.Equal(t, 2, out.Export.Rows)
	assert.FileExists(t, out.Export.Path)
}

func TestSearchEmptyExportNotice(t *testing.T) {
	b := &stubBackend{}
	s := newTestServer(t, b)

	out, err := s.Search(context.Background(), SearchInput{Query: "nothing", Export: true})
	require.NoError(t, err)
	assert.Nil(t, out.Export)
	assert.Contains(t, out.Notice, "nothing exported")
	assert.Equal(t, "No videos found for these search conditions.", out.Summary)
	assert.Equal(t, engine.TerminationNoResults, out.Result.Termination)
}

func TestExport(t *testing.T) {
	b := &stubBackend{views: []uint64{1}}
	s := newTestServer(t, b)

	_, err := s.Export(ExportInput{})
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = s.Search(context.Background(), SearchInput{Query: "go"})
	require.NoError(t, err)

	out, err := s.Export(ExportInput{FileName: "report"})
	require.NoError(t, err)
	assert.Equal(t, "report_2024-05-06.xlsx", out.FileName)
	assert.Equal(t, 1, out.Rows)
}

func TestStatus(t *testing.T) {
	b := &stubBackend{views: []uint64{100}}
	s := newTestServer(t, b)

	st := s.Status()
	assert.False(t, st.Running)
	assert.True(t, st.APIKeySet)
	assert.Equal(t, "AIza••••••••5678", st.APIKey)
	assert.Nil(t, st.LastResult)

	_, err := s.Search(context.Background(), SearchInput{ChannelID: "UC1"})
	require.NoError(t, err)

	st = s.Status()
	require.NotNil(t, st.LastResult)
	assert.Equal(t, "UC1", st.LastResult.Params.ChannelID)
	assert.Equal(t, 1, st.LastResult.Stats.TotalVideos)
	assert.Equal(t, engine.TerminationExhausted, st.LastResult.Termination)
	assert.NotEmpty(t, st.LastResult.RecentLog)
	assert.LessOrEqual(t, len(st.LastResult.RecentLog), statusLogTail)
}

func TestStatusWithoutKey(t *testing.T) {
	s := New(engine.NewCollector(&stubBackend{}, engine.Config{}), export.New(t.TempDir()), "YOUR_API_KEY")
	st := s.Status()
	assert.False(t, st.APIKeySet)
	assert.Empty(t, st.APIKey)
}

func indices(records []engine.VideoRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Index
	}
	return out
}
