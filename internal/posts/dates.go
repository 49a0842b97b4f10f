package posts

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate interprets a publishedAt value. Plain dates are read as UTC
// midnight; full RFC 3339 timestamps are accepted as well.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "T") {
		return time.Parse(time.RFC3339, value)
	}
	return time.Parse(dateLayout, value)
}

// FormatDate renders a publishedAt value for display, e.g. "August 6, 2024".
// With includeRelative the distance to now is appended, e.g.
// "August 6, 2024 (2mo ago)". Values that do not parse are returned as is.
func FormatDate(value string, now time.Time, includeRelative bool) string {
	t, err := ParseDate(value)
	if err != nil {
		return value
	}
	full := t.Format("January 2, 2006")
	if !includeRelative {
		return full
	}
	return fmt.Sprintf("%s (%s)", full, relative(t, now))
}

func relative(t, now time.Time) string {
	years := now.Year() - t.Year()
	months := int(now.Month()) - int(t.Month())
	days := now.Day() - t.Day()

	switch {
	case years > 0:
		return fmt.Sprintf("%dy ago", years)
	case months > 0:
		return fmt.Sprintf("%dmo ago", months)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	default:
		return "Today"
	}
}
