package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownSortKey is returned by SortRecords for a column it cannot sort by.
var ErrUnknownSortKey = errors.New("unknown sort key")

var recordLess = map[string]func(a, b *VideoRecord) bool{
	"index":     func(a, b *VideoRecord) bool { return a.Index < b.Index },
	"title":     func(a, b *VideoRecord) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) },
	"channel":   func(a, b *VideoRecord) bool { return strings.ToLower(a.ChannelTitle) < strings.ToLower(b.ChannelTitle) },
	"duration":  func(a, b *VideoRecord) bool { return durationLess(a.Duration, b.Duration) },
	"views":     func(a, b *VideoRecord) bool { return a.Views < b.Views },
	"comments":  func(a, b *VideoRecord) bool { return a.Comments < b.Comments },
	"published": func(a, b *VideoRecord) bool { return a.PublishedDate < b.PublishedDate },
}

// SortKeys lists the columns accepted by SortRecords.
func SortKeys() []string {
	keys := make([]string, 0, len(recordLess))
	for k := range recordLess {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortRecords returns a stably sorted copy of records. An empty key keeps insertion order.
// Index values are left untouched.
func SortRecords(records []VideoRecord, key string, desc bool) ([]VideoRecord, error) {
	out := make([]VideoRecord, len(records))
	copy(out, records)

	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		key = "index"
	}
	less, ok := recordLess[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownSortKey, key, strings.Join(SortKeys(), ", "))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})
	return out, nil
}

// durationLess compares HH:MM:SS strings whose hour field may exceed two digits.
func durationLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
