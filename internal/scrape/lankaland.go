package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Anusara14/land-scraper/internal/parse"
	"github.com/Anusara14/land-scraper/logger"
)

var (
	lankaLandCardSelectors = []string{
		"div.property-item, article.property-item",
		"div.listing-item",
		"div[class*='property-listing'] article",
		"div.post-item",
	}

	lankaLandNextSelectors = []string{
		"a.next.page-numbers",
		"a[rel='next']",
		"li.next a",
	}

	lankaLandPaginationSelector = "div.pagination, ul.page-numbers, nav.pagination"
)

// LankaLandAdapter scrapes the lankaland.lk land listings index. Unlike
// ikman, the index cards sometimes carry inline map coordinates in data
// attributes.
type LankaLandAdapter struct {
	BaseAdapter
	log *logger.Logger
}

// NewLankaLandAdapter creates the lankaland.lk adapter
func NewLankaLandAdapter() *LankaLandAdapter {
	return &LankaLandAdapter{
		BaseAdapter: BaseAdapter{BaseURL: "https://www.lankaland.lk"},
		log:         logger.ForAdapter("lankaland"),
	}
}

// Source returns the source enum
func (a *LankaLandAdapter) Source() Source {
	return SourceLankaLand
}

// Name returns the adapter name
func (a *LankaLandAdapter) Name() string {
	return "LankaLandAdapter"
}

// IsListingPage reports whether the URL is a lankaland listings index
func (a *LankaLandAdapter) IsListingPage(u string) bool {
	lower := strings.ToLower(u)
	if !strings.Contains(lower, "lankaland.lk") {
		return false
	}
	return strings.Contains(lower, "/category/") || strings.Contains(lower, "/land-for-sale")
}

// Cards locates and extracts the listing cards on the page
func (a *LankaLandAdapter) Cards(doc *goquery.Document, pageURL string) []RawCard {
	var cards []RawCard

	selections := a.findFirst(doc, lankaLandCardSelectors)
	selections.Each(func(_ int, s *goquery.Selection) {
		card, ok := a.extractCard(s)
		if !ok {
			return
		}
		cards = append(cards, card)
	})

	return dedupeCards(cards)
}

// extractCard pulls the raw fields from one listing element
func (a *LankaLandAdapter) extractCard(s *goquery.Selection) (RawCard, bool) {
	href := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string { return attrOf(s, "href", "h2 a", "h3 a", "a.property-title") },
		func(s *goquery.Selection) string { return attrOf(s, "href", "a[href*='/property/']", "a") },
	})
	listingURL := a.ResolveURL(href)
	if listingURL == "" {
		return RawCard{}, false
	}

	title := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string { return textOf(s, "h2 a", "h3 a", "h2", "h3") },
		func(s *goquery.Selection) string { return attrOf(s, "title", "a") },
	})

	location := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string {
			return textOf(s, "span.property-location", "div.location", "address")
		},
		func(s *goquery.Selection) string { return locationFromTitle(title) },
		func(s *goquery.Selection) string { return locationFromURL(listingURL) },
	})

	priceText := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string {
			return textOf(s, "span.property-price", "div.price", "span.price")
		},
	})

	sizeText := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string {
			return textOf(s, "span.property-size", "div.land-size", "li.size")
		},
		func(s *goquery.Selection) string { return title },
	})

	card := RawCard{
		Title:     title,
		Location:  location,
		PriceText: priceText,
		SizeText:  sizeText,
		URL:       listingURL,
	}

	// Inline coordinates from data attributes, bounding-box validated
	lat := s.AttrOr("data-lat", attrOf(s, "data-lat", "[data-lat]"))
	lng := s.AttrOr("data-lng", attrOf(s, "data-lng", "[data-lng]"))
	if lat != "" && lng != "" {
		if c, ok := parse.CoordsFromScript("lat: " + lat + ", lng: " + lng); ok {
			card.Coords = &c
		}
	}

	return card, true
}

// NextPageURL resolves the next index page
func (a *LankaLandAdapter) NextPageURL(doc *goquery.Document, current string) (string, bool) {
	return a.nextPageURL(doc, current, "paged", lankaLandNextSelectors, lankaLandPaginationSelector)
}

// HasNextPage reports whether another index page is expected
func (a *LankaLandAdapter) HasNextPage(doc *goquery.Document, cardCount int) bool {
	return a.hasNextPage(doc, lankaLandNextSelectors, cardCount)
}
