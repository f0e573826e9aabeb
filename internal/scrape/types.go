// Package scrape contains the per-site listing page adapters and the
// shared selector-cascade machinery they are built from.
package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Anusara14/land-scraper/internal/parse"
)

// Source identifies the site a listing came from
type Source string

const (
	SourceIkman     Source = "Ikman"
	SourceLankaLand Source = "LankaLand"
)

// RawCard holds the untyped fields pulled from one listing card before
// normalization. URL is always absolute; Coords is only present for
// sites that embed coordinates on the index page.
type RawCard struct {
	Title     string
	Location  string
	PriceText string
	SizeText  string
	URL       string
	Coords    *parse.Coords
}

// Adapter is the capability set a site implementation must provide.
// Adding a site means adding one implementation; the crawler never
// changes.
type Adapter interface {
	// Source returns the source enum for records produced by this site
	Source() Source

	// Name returns the adapter's name for logging
	Name() string

	// IsListingPage reports whether the URL looks like a listings index
	IsListingPage(u string) bool

	// Cards locates and extracts the listing cards on a parsed page.
	// Cards resolving to the same target link are deduplicated. The
	// result is a single finite pass over the page.
	Cards(doc *goquery.Document, pageURL string) []RawCard

	// NextPageURL resolves the following page's absolute URL, or false
	// when pagination is exhausted
	NextPageURL(doc *goquery.Document, current string) (string, bool)

	// HasNextPage reports whether another page is expected after the
	// current one
	HasNextPage(doc *goquery.Document, cardCount int) bool
}

// ElementHandler extracts one field's text from a card selection.
// Handlers are arranged in ordered cascades; the first non-empty result
// wins.
type ElementHandler func(*goquery.Selection) string
