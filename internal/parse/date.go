package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	dmyRe      = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})\b`)
	ymdRe      = regexp.MustCompile(`\b(\d{4})[/.-](\d{1,2})[/.-](\d{1,2})\b`)
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{4})\b`)

	monthIndex = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}

	fallbackLayouts = []string{
		"2 Jan 2006", "Jan 2, 2006", "January 2, 2006", "2006-01-02",
	}
)

// PostedDate resolves absolute posted-date text to a date-only ISO
// string. Tried in order: YYYY/MM/DD, DD/MM/YYYY, "DD Month YYYY",
// then a set of generic layouts. Returns false if nothing produces a
// valid date.
func PostedDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	// YYYY first so "2024/03/05" is not read day-first
	if m := ymdRe.FindStringSubmatch(text); len(m) > 3 {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := dmyRe.FindStringSubmatch(text); len(m) > 3 {
		if d, ok := buildDate(m[3], m[2], m[1]); ok {
			return d, true
		}
	}
	if m := dayMonthRe.FindStringSubmatch(text); len(m) > 3 {
		month := monthIndex[strings.ToLower(m[2])]
		if d, ok := buildDate(m[3], fmt.Sprintf("%d", int(month)), m[1]); ok {
			return d, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// buildDate validates year/month/day strings and formats the ISO date
func buildDate(year, month, day string) (string, bool) {
	var y, m, d int
	if _, err := fmt.Sscanf(year+" "+month+" "+day, "%d %d %d", &y, &m, &d); err != nil {
		return "", false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1900 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// reject day overflow such as 31/02
	if t.Day() != d || int(t.Month()) != m {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// Relative time units in milliseconds; month and year are fixed-length
// approximations, not calendar-aware.
var relativeUnitMs = map[string]int64{
	"second": 1000,
	"minute": 60 * 1000,
	"hour":   60 * 60 * 1000,
	"day":    24 * 60 * 60 * 1000,
	"week":   7 * 24 * 60 * 60 * 1000,
	"month":  30 * 24 * 60 * 60 * 1000,
	"year":   365 * 24 * 60 * 60 * 1000,
}

// RelativeDate resolves "amount unit ago" phrasing against now and
// returns the date-only ISO string. Unknown units return false.
func RelativeDate(now time.Time, amount int, unit string) (string, bool) {
	unit = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(unit), "s"))
	ms, ok := relativeUnitMs[unit]
	if !ok {
		return "", false
	}
	then := now.Add(-time.Duration(int64(amount)*ms) * time.Millisecond)
	return then.Format("2006-01-02"), true
}
