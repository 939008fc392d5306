package engine

import (
	"strings"

	"google.golang.org/api/youtube/v3"
)

// WatchURL returns the canonical watch-page URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// BuildRecord merges one detail-lookup item into a VideoRecord.
// count is the number of records collected so far; the record gets index count+1.
// Any nested part of v may be missing; missing fields take their zero defaults.
func BuildRecord(v *youtube.Video, count int) VideoRecord {
	rec := VideoRecord{
		Index:    count + 1,
		Duration: FormatDuration(""),
	}
	if v == nil {
		return rec
	}

	rec.VideoID = v.Id
	rec.URL = WatchURL(v.Id)

	if s := v.Snippet; s != nil {
		rec.Title = s.Title
		rec.ChannelTitle = s.ChannelTitle
		rec.ChannelID = s.ChannelId
		rec.Tags = strings.Join(s.Tags, ", ")
		rec.ThumbnailURL = bestThumbnail(s.Thumbnails)
		rec.PublishedDate = publishedDate(s.PublishedAt)
	}
	if cd := v.ContentDetails; cd != nil {
		rec.Duration = FormatDuration(cd.Duration)
	}
	if st := v.Statistics; st != nil {
		rec.Views = int64(st.ViewCount)
		rec.Comments = int64(st.CommentCount)
	}
	return rec
}

// bestThumbnail returns the URL of the highest-resolution thumbnail present.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

// publishedDate truncates an RFC 3339 timestamp to its YYYY-MM-DD date.
func publishedDate(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
