// Package parse contains pure text normalization functions for listing
// fields: prices, land sizes, coordinates and posted dates.
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	millionRe = regexp.MustCompile(`(?i)([\d.,]+)\s*m\b`)
	lakhRe    = regexp.MustCompile(`(?i)([\d.,]+)\s*lakhs?\b`)
	croreRe   = regexp.MustCompile(`(?i)([\d.,]+)\s*crores?\b`)
	numberRe  = regexp.MustCompile(`[\d.,]+`)
)

// Price normalizes free price text to whole rupees. It strips currency
// markers and thousands separators and applies magnitude suffixes:
// "M" x1,000,000, "lakh" x100,000, "crore" x10,000,000.
// Returns false on unparseable input.
func Price(text string) (int64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	type magnitude struct {
		re   *regexp.Regexp
		mult float64
	}
	// M before lakh: "2.5M" must not fall through to the bare number
	for _, m := range []magnitude{
		{croreRe, 10_000_000},
		{lakhRe, 100_000},
		{millionRe, 1_000_000},
	} {
		if match := m.re.FindStringSubmatch(text); len(match) > 1 {
			if v, ok := parseNumber(match[1]); ok {
				return int64(math.Round(v * m.mult)), true
			}
		}
	}

	if match := numberRe.FindString(text); match != "" {
		if v, ok := parseNumber(match); ok {
			return int64(math.Round(v)), true
		}
	}

	return 0, false
}

// parseNumber parses a numeric string after removing thousands separators
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Trim(s, ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
