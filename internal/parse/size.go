package parse

import (
	"math"
	"regexp"
)

// Perches per unit: 1 acre = 160 perches, 1 rood = 40 perches.
var sizeUnits = []struct {
	re   *regexp.Regexp
	mult float64
}{
	{regexp.MustCompile(`(?i)([\d.,]+)\s*(?:perches|perch|p)\b`), 1},
	{regexp.MustCompile(`(?i)([\d.,]+)\s*(?:acres|acre|ac)\b`), 160},
	{regexp.MustCompile(`(?i)([\d.,]+)\s*(?:roods|rood|r)\b`), 40},
}

// Size normalizes free land-size text to perches. Unit tokens are tried
// in priority order perch, acre, rood; the first match wins. Returns
// false when no unit token is present.
func Size(text string) (float64, bool) {
	for _, unit := range sizeUnits {
		if match := unit.re.FindStringSubmatch(text); len(match) > 1 {
			if v, ok := parseNumber(match[1]); ok {
				return v * unit.mult, true
			}
		}
	}
	return 0, false
}

// PricePerPerch derives a per-perch price from a resolved total and size.
// When explicitPerUnit is set the total is already a unit price and is
// returned unchanged. Otherwise the split between aggregate and unit
// prices is inferred from magnitude:
//   - total > 5,000,000 with size < 50 is an aggregate price
//   - total < 500,000 is already a unit price
//   - total > 1,000,000 is an aggregate price
//   - anything else is returned unchanged
//
// The 500,000-1,000,000 band intentionally passes through unchanged even
// for small sizes; downstream consumers rely on this boundary.
func PricePerPerch(total int64, size float64, explicitPerUnit bool) (int64, bool) {
	if total == 0 || size <= 0 {
		return 0, false
	}
	if explicitPerUnit {
		return total, true
	}
	switch {
	case total > 5_000_000 && size < 50:
		return int64(math.Round(float64(total) / size)), true
	case total < 500_000:
		return total, true
	case total > 1_000_000:
		return int64(math.Round(float64(total) / size)), true
	default:
		return total, true
	}
}
