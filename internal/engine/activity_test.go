package engine

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLog(t *testing.T) {
	var buf bytes.Buffer
	l := NewActivityLog(slog.New(slog.NewTextHandler(&buf, nil)))

	l.Info("page %d returned %d results", 1, 50)
	l.Success("collected %d videos so far", 50)
	l.Warn("detail lookup failed")
	l.Error("search aborted")

	entries := l.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, LevelInfo, entries[0].Level)
	assert.Equal(t, "page 1 returned 50 results", entries[0].Message)
	assert.Equal(t, LevelSuccess, entries[1].Level)
	assert.Equal(t, 1, l.Count(LevelWarn))
	assert.Equal(t, 1, l.Count(LevelError))
	assert.False(t, entries[0].Time.IsZero())

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "collected 50 videos so far")
}

func TestActivityLogEntriesIsCopy(t *testing.T) {
	l := NewActivityLog(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	l.Info("one")

	entries := l.Entries()
	entries[0].Message = "changed"

	assert.Equal(t, "one", l.Entries()[0].Message)
}
