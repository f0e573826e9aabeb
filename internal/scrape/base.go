package scrape

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// trackingParams are stripped when canonicalizing URLs; they vary per
// visit and would defeat both dedup and loop detection.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"ref":          true,
	"fbclid":       true,
}

// CanonicalURL normalizes a possibly-relative URL against base into the
// canonical absolute form used as the dedup key and the pagination
// loop-detection key.
func CanonicalURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !u.IsAbs() && base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return ""
		}
		u = b.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for param := range trackingParams {
		q.Del(param)
	}
	u.RawQuery = q.Encode()

	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// BaseAdapter provides the shared selector-cascade helpers concrete
// adapters are assembled from
type BaseAdapter struct {
	BaseURL string
}

// applyHandlers evaluates an ordered handler cascade and returns the
// first non-empty result
func (b *BaseAdapter) applyHandlers(s *goquery.Selection, handlers []ElementHandler) string {
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if result := strings.TrimSpace(handler(s)); result != "" {
			return result
		}
	}
	return ""
}

// findFirst tries candidate selectors in order against the document and
// returns the first selection that yields results
func (b *BaseAdapter) findFirst(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return doc.Find(selectors[len(selectors)-1])
}

// textOf returns the trimmed text of the first selector that matches
func textOf(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if found := s.Find(sel); found.Length() > 0 {
			if text := strings.TrimSpace(found.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// attrOf returns the trimmed attribute of the first selector that has it
func attrOf(s *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		found := s.Find(sel)
		if found.Length() == 0 {
			continue
		}
		if v, ok := found.First().Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// ResolveURL resolves a link found on the page to an absolute URL
func (b *BaseAdapter) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.ResolveReference(ref).String()
}

// dedupeCards drops cards whose canonical URL was already seen within
// the page, preserving first-seen order
func dedupeCards(cards []RawCard) []RawCard {
	seen := make(map[string]bool, len(cards))
	out := cards[:0]
	for _, card := range cards {
		key := CanonicalURL(card.URL, "")
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, card)
	}
	return out
}

var titlePlaceRe = regexp.MustCompile(`(?i)\b(?:in|at)\s+([A-Za-z][A-Za-z .'-]{2,40})$`)

// locationFromTitle derives a location token from an "in <place>" or
// "at <place>" tail in the title when no dedicated element matched
func locationFromTitle(title string) string {
	if m := titlePlaceRe.FindStringSubmatch(strings.TrimSpace(title)); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// locationFromURL derives a location token from a listing URL path of
// the form .../land-for-sale-<place>-... or .../ads/<place>/...
func locationFromURL(listingURL string) string {
	u, err := url.Parse(listingURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg == "ads" && i+1 < len(segments) {
			return strings.ReplaceAll(segments[i+1], "-", " ")
		}
	}
	last := ""
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}
	for _, marker := range []string{"land-for-sale-in-", "land-for-sale-", "land-in-", "property-in-"} {
		if idx := strings.Index(last, marker); idx >= 0 {
			tail := last[idx+len(marker):]
			// strip a trailing numeric ad id
			tail = regexp.MustCompile(`-\d+$`).ReplaceAllString(tail, "")
			return strings.ReplaceAll(tail, "-", " ")
		}
	}
	return ""
}

// pageParamValue reads an integer query parameter from a URL, defaulting
// to 1 when absent or malformed
func pageParamValue(rawURL, param string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 1
	}
	v := u.Query().Get(param)
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// withPageParam returns the URL with the page query parameter set to n
func withPageParam(rawURL, param string, n int) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set(param, strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String()
}

// nextPageURL implements the shared three-step next-page resolution:
// an explicit next control whose target is page n+1, any pagination
// link whose page parameter is n+1, then a synthesized URL made by
// incrementing the page parameter, accepted only when pagination UI is
// present and the result differs from the current URL.
func (b *BaseAdapter) nextPageURL(doc *goquery.Document, current, pageParam string, nextSelectors []string, paginationSelector string) (string, bool) {
	currentPage := pageParamValue(current, pageParam)

	for _, sel := range nextSelectors {
		href, ok := doc.Find(sel).First().Attr("href")
		if !ok {
			continue
		}
		target := b.ResolveURL(href)
		if target == "" {
			continue
		}
		if pageParamValue(target, pageParam) == currentPage+1 {
			return target, true
		}
	}

	found := ""
	doc.Find(paginationSelector + " a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		target := b.ResolveURL(href)
		if target != "" && pageParamValue(target, pageParam) == currentPage+1 {
			found = target
			return false
		}
		return true
	})
	if found != "" {
		return found, true
	}

	if doc.Find(paginationSelector).Length() > 0 {
		synthesized := withPageParam(current, pageParam, currentPage+1)
		if synthesized != "" && synthesized != current {
			return synthesized, true
		}
	}

	return "", false
}

// hasNextPage implements the shared next-page presence check: a next
// control that is not disabled, else at least one card on this page
func (b *BaseAdapter) hasNextPage(doc *goquery.Document, nextSelectors []string, cardCount int) bool {
	for _, sel := range nextSelectors {
		next := doc.Find(sel).First()
		if next.Length() == 0 {
			continue
		}
		if next.HasClass("disabled") || next.AttrOr("aria-disabled", "") == "true" {
			return false
		}
		return true
	}
	return cardCount > 0
}
