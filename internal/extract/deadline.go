package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRegex     = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	numericDateRegex = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4})\b`)
	dayMonthRegex    = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?([a-z]{3,9})\.?,?\s+(\d{4})\b`)
	monthDayRegex    = regexp.MustCompile(`(?i)\b([a-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

// ParseDeadline reads a calendar date out of a deadline value such as
// "15/03/2025", "2025-03-15", "15th March 2025" or "March 15, 2025".
// Numeric dates are read day first. The result is midnight UTC.
func ParseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isPlaceholder(s) {
		return time.Time{}, false
	}

	// Case 1: ISO "2025-03-15"
	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	// Case 2: dd/mm/yyyy, dd-mm-yy, dd.mm.yyyy
	if m := numericDateRegex.FindStringSubmatch(s); m != nil {
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return makeDate(year, atoi(m[2]), atoi(m[1]))
	}

	// Case 3: "15 March 2025"
	if m := dayMonthRegex.FindStringSubmatch(s); m != nil {
		if month, ok := lookupMonth(m[2]); ok {
			return makeDate(atoi(m[3]), int(month), atoi(m[1]))
		}
	}

	// Case 4: "March 15, 2025"
	if m := monthDayRegex.FindStringSubmatch(s); m != nil {
		if month, ok := lookupMonth(m[1]); ok {
			return makeDate(atoi(m[3]), int(month), atoi(m[2]))
		}
	}

	return time.Time{}, false
}

// IsOpen reports whether applications are still accepted on now. Deadlines
// that cannot be parsed are treated as open.
func IsOpen(deadline string, now time.Time) bool {
	d, ok := ParseDeadline(deadline)
	if !ok {
		return true
	}
	// the deadline day itself still counts
	return now.Before(d.Add(24 * time.Hour))
}

func lookupMonth(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if m, ok := months[name]; ok {
		return m, true
	}
	if len(name) > 3 {
		if m, ok := months[name[:3]]; ok && strings.HasPrefix(strings.ToLower(m.String()), name) {
			return m, true
		}
	}
	return 0, false
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 2000 || year > 2100 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject 31/02 and friends instead of letting time.Date roll over
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
