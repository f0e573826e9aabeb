// Package region resolves free-text location strings to administrative
// region names using a static area lookup table with layered fallbacks.
package region

import (
	"sort"
	"strings"
)

// Sentinel region names. Unknown means the input itself was empty;
// Other means the input matched nothing. Callers must not conflate them.
const (
	Unknown = "Unknown"
	Other   = "Other"
)

// Separators between location parts, most specific part first.
var partSeparators = []string{",", " - ", "-", "/", "|", ">", "»"}

// Resolver maps area names to regions
type Resolver struct {
	table map[string]string
	// areas holds the table keys in sorted order so substring tiers
	// scan deterministically
	areas []string
}

// NewResolver creates a resolver backed by the built-in area table
func NewResolver() *Resolver {
	return NewResolverWithTable(areaTable)
}

// NewResolverWithTable creates a resolver backed by a caller-supplied
// table. An empty or nil table falls through to the hardcoded district
// lists for every lookup.
func NewResolverWithTable(table map[string]string) *Resolver {
	areas := make([]string, 0, len(table))
	for area := range table {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return &Resolver{table: table, areas: areas}
}

// Resolve maps a free-text location to a region name. Raw location text
// is inconsistently granular, so exact matching alone would miss the
// common case of coarser text; lookups degrade from exact part match to
// substring containment to hardcoded district lists.
func (r *Resolver) Resolve(locationText string) string {
	text := strings.ToLower(strings.TrimSpace(locationText))
	if text == "" {
		return Unknown
	}

	parts := splitParts(text)

	if len(r.table) > 0 {
		// Tier 1: exact match, most specific part first
		for _, part := range parts {
			if region, ok := r.table[part]; ok {
				return region
			}
		}

		// Tier 2: substring containment per part, either direction
		for _, part := range parts {
			for _, area := range r.areas {
				if strings.Contains(part, area) || strings.Contains(area, part) {
					return r.table[area]
				}
			}
		}

		// Tier 3: containment of the entire original text against keys.
		// Short keys can false-positive here; accepted as best effort.
		for _, area := range r.areas {
			if strings.Contains(text, area) {
				return r.table[area]
			}
		}
	}

	// Tier 4: hardcoded district lists, used when the table is missing
	// or produced no match
	for _, fb := range districtFallback {
		for _, area := range fb.areas {
			if strings.Contains(text, area) {
				return fb.region
			}
		}
	}

	return Other
}

// splitParts splits lowered location text into trimmed parts, most
// specific first
func splitParts(text string) []string {
	parts := []string{text}
	for _, sep := range partSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
