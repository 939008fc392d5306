package engine

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// FormatDuration converts an ISO-8601 duration with hour/minute/second parts into HH:MM:SS.
// Empty or unmatched input yields "00:00:00". Hours are not capped at 99.
func FormatDuration(iso string) string {
	m := isoDurationRe.FindStringSubmatch(iso)
	if m == nil {
		return "00:00:00"
	}
	return fmt.Sprintf("%02d:%02d:%02d", atoiOrZero(m[1]), atoiOrZero(m[2]), atoiOrZero(m[3]))
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Formatter renders counts for display in a fixed locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter for the BCP 47 locale tag; unparsable tags fall back to ko-KR.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Korean
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// FormatNumber renders n with the locale's digit grouping, e.g. 1234567 → "1,234,567".
func (f *Formatter) FormatNumber(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Abbreviation thresholds and their Korean units.
const (
	unitEok   = 100_000_000 // 억
	unitMan   = 10_000      // 만
	unitCheon = 1_000       // 천
)

// FormatNumberShort abbreviates n with 억/만/천 at one decimal place; below 1,000 the plain integer.
func FormatNumberShort(n int64) string {
	switch {
	case n >= unitEok:
		return strconv.FormatFloat(float64(n)/unitEok, 'f', 1, 64) + "억"
	case n >= unitMan:
		return strconv.FormatFloat(float64(n)/unitMan, 'f', 1, 64) + "만"
	case n >= unitCheon:
		return strconv.FormatFloat(float64(n)/unitCheon, 'f', 1, 64) + "천"
	}
	return strconv.FormatInt(n, 10)
}

// WithText fills the display strings of s using f.
func (f *Formatter) WithText(s Stats) Stats {
	s.TotalViewsText = FormatNumberShort(s.TotalViews) + " (" + f.FormatNumber(s.TotalViews) + ")"
	s.TotalCommentsText = FormatNumberShort(s.TotalComments) + " (" + f.FormatNumber(s.TotalComments) + ")"
	s.AvgViewsText = FormatNumberShort(s.AvgViews) + " (" + f.FormatNumber(s.AvgViews) + ")"
	return s
}
