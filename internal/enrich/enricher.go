// Package enrich fetches a listing's detail document and extracts the
// coordinates, posted date and refined address that index cards do not
// carry.
package enrich

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Anusara14/land-scraper/helpers"
	"github.com/Anusara14/land-scraper/internal/parse"
	"github.com/Anusara14/land-scraper/internal/scrape"
	"github.com/Anusara14/land-scraper/logger"
)

// Details holds the independently optional fields recovered from a
// detail document
type Details struct {
	Coords     *parse.Coords
	PostedDate string
	Address    string
}

// Fetcher retrieves a document body; swappable for tests
type Fetcher func(ctx context.Context, url string) (io.Reader, error)

// Enricher performs the secondary per-listing fetch
type Enricher struct {
	fetch Fetcher
	now   func() time.Time
	log   *logger.Logger
}

// NewEnricher creates an enricher using the default HTTP fetcher
func NewEnricher() *Enricher {
	return &Enricher{
		fetch: helpers.FetchWithRandomHeaders,
		now:   time.Now,
		log:   logger.ForEnricher(),
	}
}

// NewEnricherWithFetcher creates an enricher with a custom fetcher
func NewEnricherWithFetcher(fetch Fetcher, now func() time.Time) *Enricher {
	return &Enricher{fetch: fetch, now: now, log: logger.ForEnricher()}
}

// Enrich fetches and parses the detail document for a listing. All
// fields degrade independently; a network or parse failure returns an
// empty Details and never an error.
func (e *Enricher) Enrich(ctx context.Context, listingURL string, source scrape.Source) Details {
	body, err := e.fetch(ctx, listingURL)
	if err != nil {
		e.log.Debug().Str("url", listingURL).Err(err).Msg("detail fetch failed")
		return Details{}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		e.log.Debug().Str("url", listingURL).Err(err).Msg("detail parse failed")
		return Details{}
	}

	return Details{
		Coords:     e.extractCoords(doc),
		PostedDate: e.extractPostedDate(doc, source),
		Address:    e.extractAddress(doc),
	}
}

// extractCoords tries map links, map frames, inline scripts, then data
// attributes; the first in-bounds pair wins.
func (e *Enricher) extractCoords(doc *goquery.Document) *parse.Coords {
	var found *parse.Coords

	accept := func(c parse.Coords, ok bool) bool {
		if ok && parse.InSriLanka(c.Lat, c.Lng) {
			found = &c
			return true
		}
		return false
	}

	doc.Find("a[href*='maps.google'], a[href*='google.com/maps'], a[href*='goo.gl/maps']").
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			return !accept(parse.CoordsFromMapURL(href))
		})
	if found != nil {
		return found
	}

	doc.Find("iframe[src*='maps.google'], iframe[src*='google.com/maps']").
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			src, _ := s.Attr("src")
			return !accept(parse.CoordsFromMapURL(src))
		})
	if found != nil {
		return found
	}

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		return !accept(parse.CoordsFromScript(s.Text()))
	})
	if found != nil {
		return found
	}

	doc.Find("[data-lat][data-lng], [data-latitude][data-longitude]").
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			lat := s.AttrOr("data-lat", s.AttrOr("data-latitude", ""))
			lng := s.AttrOr("data-lng", s.AttrOr("data-longitude", ""))
			latV, err1 := strconv.ParseFloat(lat, 64)
			lngV, err2 := strconv.ParseFloat(lng, 64)
			if err1 != nil || err2 != nil {
				return true
			}
			return !accept(parse.Coords{Lat: latV, Lng: lngV}, true)
		})

	return found
}

var (
	postedOnRe   = regexp.MustCompile(`(?i)posted\s+on\s+([^,|<]{4,40})`)
	relativeRe   = regexp.MustCompile(`(?i)(\d+)\s+(second|minute|hour|day|week|month|year)s?\s+ago`)
	yesterdayRe  = regexp.MustCompile(`(?i)\byesterday\b`)
	todayRe      = regexp.MustCompile(`(?i)\btoday\b`)
	datedElement = map[scrape.Source]string{
		scrape.SourceIkman:     "div[class*='ad-meta'] span, span[class*='date']",
		scrape.SourceLankaLand: "span.post-date, time.entry-date",
	}
)

// extractPostedDate tries textual posted-on patterns, relative phrases,
// yesterday/today literals, then site-specific structural candidates
func (e *Enricher) extractPostedDate(doc *goquery.Document, source scrape.Source) string {
	text := doc.Text()

	if m := postedOnRe.FindStringSubmatch(text); len(m) > 1 {
		if d, ok := parse.PostedDate(m[1]); ok {
			return d
		}
	}

	if m := relativeRe.FindStringSubmatch(text); len(m) > 2 {
		amount, err := strconv.Atoi(m[1])
		if err == nil {
			if d, ok := parse.RelativeDate(e.now(), amount, m[2]); ok {
				return d
			}
		}
	}

	if yesterdayRe.MatchString(text) {
		if d, ok := parse.RelativeDate(e.now(), 1, "day"); ok {
			return d
		}
	}
	if todayRe.MatchString(text) {
		return e.now().Format("2006-01-02")
	}

	if sel, ok := datedElement[source]; ok {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if d, ok := parse.PostedDate(strings.TrimSpace(s.Text())); ok {
				found = d
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	return ""
}

// Breadcrumb tokens that are navigation, not location.
var genericCrumbs = map[string]bool{
	"home":          true,
	"ads":           true,
	"all ads":       true,
	"land":          true,
	"lands":         true,
	"property":      true,
	"properties":    true,
	"for sale":      true,
	"land for sale": true,
	"sri lanka":     true,
}

// extractAddress refines the address from breadcrumb navigation text,
// joined most-specific-first, else from location-labeled elements
func (e *Enricher) extractAddress(doc *goquery.Document) string {
	var crumbs []string
	doc.Find("nav.breadcrumb a, ul.breadcrumb a, div.breadcrumbs a, ol.breadcrumb a").
		Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text == "" || genericCrumbs[strings.ToLower(text)] {
				return
			}
			crumbs = append(crumbs, text)
		})
	if len(crumbs) > 0 {
		// breadcrumbs run general to specific; reverse for most-specific-first
		for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
			crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
		}
		return strings.Join(crumbs, ", ")
	}

	return textOf(doc, "span[class*='location']", "div[class*='location']", "address")
}

// textOf returns the trimmed text of the first matching selector
func textOf(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			if text := strings.TrimSpace(found.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}
