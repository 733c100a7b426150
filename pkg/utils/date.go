package utils

import "time"

// newsDateFormats are the provider date formats tried in order when
// parsing a published-date string. Alpha-Vantage-style compact stamps
// first, then common ISO variants.
var newsDateFormats = []string{
	"20060102T150405",
	"20060102T1504",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseNewsDate parses a provider-format published date. Unparseable
// input returns the zero time and false; it never panics, so a bad date
// only affects sort order.
func ParseNewsDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range newsDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatNewsDate renders t in the compact provider format used for
// time_from/time_to query parameters.
func FormatNewsDate(t time.Time) string {
	return t.Format("20060102T1504")
}
