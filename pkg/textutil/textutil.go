package textutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp format carried by provider SMS templates:
// two-digit day/month, four-digit year, 24-hour clock.
const TimeLayout = "02/01/2006 15:04:05"

// Currency parses a monetary capture such as "2,000.00". Thousands
// separators are stripped before parsing. An empty input means the field was
// not captured and yields 0; anything else that fails to parse is an error.
func Currency(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed currency value %q: %w", s, err)
	}
	return v, nil
}

// CleanName trims a free-text capture such as a counterparty name. A value
// that is blank after trimming collapses to the empty string.
func CleanName(s string) string {
	return strings.TrimSpace(s)
}

// ParseTime parses a provider timestamp capture.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTime renders a timestamp in the provider layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
