package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Anusara14/land-scraper/logger"
)

// Ikman markup uses hashed class names that drift between deployments,
// so every field is located through a cascade of independent candidate
// selectors rather than a single fixed one.
var (
	ikmanCardSelectors = []string{
		"li[class*='normal--'], li[class*='top-ads']",
		"ul[class*='list--'] > li",
		"div[class*='card--']",
		"li.ad-item",
	}

	ikmanNextSelectors = []string{
		"a[rel='next']",
		"nav[class*='pagination'] a[class*='next']",
		"a[aria-label='Next page']",
	}

	ikmanPaginationSelector = "nav[class*='pagination'], div[class*='pagination']"
)

// IkmanAdapter scrapes the ikman.lk land listings index
type IkmanAdapter struct {
	BaseAdapter
	log *logger.Logger
}

// NewIkmanAdapter creates the ikman.lk adapter
func NewIkmanAdapter() *IkmanAdapter {
	return &IkmanAdapter{
		BaseAdapter: BaseAdapter{BaseURL: "https://ikman.lk"},
		log:         logger.ForAdapter("ikman"),
	}
}

// Source returns the source enum
func (a *IkmanAdapter) Source() Source {
	return SourceIkman
}

// Name returns the adapter name
func (a *IkmanAdapter) Name() string {
	return "IkmanAdapter"
}

// IsListingPage reports whether the URL is an ikman listings index
func (a *IkmanAdapter) IsListingPage(u string) bool {
	lower := strings.ToLower(u)
	if !strings.Contains(lower, "ikman.lk") {
		return false
	}
	return strings.Contains(lower, "/ads") && !strings.Contains(lower, "/ad/")
}

// Cards locates and extracts the listing cards on the page
func (a *IkmanAdapter) Cards(doc *goquery.Document, pageURL string) []RawCard {
	var cards []RawCard

	selections := a.findFirst(doc, ikmanCardSelectors)
	selections.Each(func(_ int, s *goquery.Selection) {
		card, ok := a.extractCard(s)
		if !ok {
			return
		}
		cards = append(cards, card)
	})

	return dedupeCards(cards)
}

// extractCard pulls the raw fields from one listing element. A card
// with no resolvable listing URL is dropped.
func (a *IkmanAdapter) extractCard(s *goquery.Selection) (RawCard, bool) {
	href := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string { return attrOf(s, "href", "a[href*='/ad/']") },
		func(s *goquery.Selection) string { return attrOf(s, "href", "a[class*='card-link']", "h2 a", "a") },
	})
	listingURL := a.ResolveURL(href)
	if listingURL == "" {
		return RawCard{}, false
	}

	title := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string { return textOf(s, "h2[class*='heading']", "h2", "h3") },
		func(s *goquery.Selection) string { return attrOf(s, "title", "a[href*='/ad/']") },
	})

	location := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string {
			return textOf(s, "div[class*='description'] span", "span[class*='location']", "div[class*='subSection'] span")
		},
		func(s *goquery.Selection) string { return locationFromURL(listingURL) },
		func(s *goquery.Selection) string { return locationFromTitle(title) },
	})

	priceText := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string {
			return textOf(s, "div[class*='price'] span", "span[class*='price']", "div[class*='price']")
		},
	})

	sizeText := a.applyHandlers(s, []ElementHandler{
		func(s *goquery.Selection) string {
			return textOf(s, "div[class*='details']", "span[class*='size']", "div[class*='description']")
		},
		func(s *goquery.Selection) string { return title },
	})

	return RawCard{
		Title:     title,
		Location:  location,
		PriceText: priceText,
		SizeText:  sizeText,
		URL:       listingURL,
	}, true
}

// NextPageURL resolves the next index page
func (a *IkmanAdapter) NextPageURL(doc *goquery.Document, current string) (string, bool) {
	return a.nextPageURL(doc, current, "page", ikmanNextSelectors, ikmanPaginationSelector)
}

// HasNextPage reports whether another index page is expected
func (a *IkmanAdapter) HasNextPage(doc *goquery.Document, cardCount int) bool {
	return a.hasNextPage(doc, ikmanNextSelectors, cardCount)
}
