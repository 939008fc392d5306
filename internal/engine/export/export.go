// Package export writes collected video records to .xlsx spreadsheets.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet every export writes to.
const SheetName = "YouTube Results"

// ErrNothingToExport is returned when the record set is empty.
var ErrNothingToExport = errors.New("no collected videos to export")

type column struct {
	header string
	width  float64
	value  func(engine.VideoRecord) any
}

var columns = []column{
	{"Index", 6, func(r engine.VideoRecord) any { return r.Index }},
	{"Title", 50, func(r engine.VideoRecord) any { return r.Title }},
	{"Channel Title", 20, func(r engine.VideoRecord) any { return r.ChannelTitle }},
	{"Channel ID", 26, func(r engine.VideoRecord) any { return r.ChannelID }},
	{"Duration", 10, func(r engine.VideoRecord) any { return r.Duration }},
	{"Views", 12, func(r engine.VideoRecord) any { return r.Views }},
	{"Comments", 10, func(r engine.VideoRecord) any { return r.Comments }},
	{"URL", 45, func(r engine.VideoRecord) any { return r.URL }},
	{"Thumbnail URL", 50, func(r engine.VideoRecord) any { return r.ThumbnailURL }},
	{"Tags", 40, func(r engine.VideoRecord) any { return r.Tags }},
	{"Published Date", 12, func(r engine.VideoRecord) any { return r.PublishedDate }},
}

// Headers returns the fixed column headers in sheet order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Output describes a written spreadsheet.
type Output struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
	Size     int64  `json:"size"`
	SizeText string `json:"size_text"`
}

// Exporter writes spreadsheets into Dir, dating file names with Now.
type Exporter struct {
	Dir string
	Now func() time.Time
}

// New returns an Exporter writing into dir.
func New(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{Dir: dir, Now: time.Now}
}

// FileName returns "<base>_<YYYY-MM-DD>.xlsx" for a sanitized base.
func (e *Exporter) FileName(base string) string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return cleanBase(base) + "_" + now().Format(time.DateOnly) + ".xlsx"
}

// cleanBase reduces base to a single file-name component without extension.
func cleanBase(base string) string {
	base = strings.TrimSpace(base)
	base = filepath.Base(filepath.Clean("/" + base))
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".xlsx") {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return engine.DefaultFileBase
	}
	return base
}

// Export writes one header row plus one row per record and returns the file details.
func (e *Exporter) Export(records []engine.VideoRecord, base string) (*Output, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return nil, err
	}

	row := make([]any, len(columns))
	for i, rec := range records {
		for j, c := range columns {
			row[j] = c.value(rec)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	name := e.FileName(base)
	path := filepath.Join(e.Dir, name)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save %s: %w", name, err)
	}

	out := &Output{Path: path, FileName: name, Rows: len(records)}
	if fi, err := os.Stat(path); err == nil {
		out.Size = fi.Size()
		out.SizeText = humanize.Bytes(uint64(fi.Size()))
	}

	engine.IncrExports()
	slog.Info("export: spreadsheet written",
		slog.String("path", path),
		slog.Int("rows", out.Rows),
		slog.String("size", out.SizeText))
	return out, nil
}

func writeHeader(f *excelize.File) error {
	headers := make([]any, len(columns))
	for i, c := range columns {
		headers[i] = c.header
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return fmt.Errorf("set width %s: %w", col, err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	return f.SetCellStyle(SheetName, "A1", last+"1", style)
}
