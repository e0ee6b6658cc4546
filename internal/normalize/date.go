package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayFirstDate = regexp.MustCompile(`^(\d{1,2})\s*[/.-]\s*(\d{1,2})\s*[/.-]\s*(\d{4})$`)
	isoDate      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T ].*)?$`)
	longDate     = regexp.MustCompile(`(\d{1,2})\s+de\s+(\p{L}+)\s+(?:del?\s+)?(\d{4})`)
)

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// Date parses the date shapes found in orders and exports:
// "15/05/2025", "5-5-2025", "2025-05-15", RFC 3339 timestamps and
// "Jueves 15 de Mayo del 2025". Impossible calendar dates are rejected.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := dayFirstDate.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	}
	if m := isoDate.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := longDate.FindStringSubmatch(Fold(s)); m != nil {
		month, ok := spanishMonths[m[2]]
		if !ok {
			return time.Time{}, false
		}
		return civil(atoi(m[3]), int(month), atoi(m[1]))
	}
	return time.Time{}, false
}

// ISODate returns Date formatted as YYYY-MM-DD, or "" when s is not a date.
func ISODate(s string) string {
	t, ok := Date(s)
	if !ok {
		return ""
	}
	return t.Format(time.DateOnly)
}

func civil(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2200 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
