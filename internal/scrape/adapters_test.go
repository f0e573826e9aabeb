package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestIkmanCards(t *testing.T) {
	doc := docFrom(t, `<html><body>
		<ul class="list--3NxGO">
			<li class="normal--2QYVk">
				<a href="/en/ad/land-for-sale-in-nugegoda-1001"></a>
				<h2 class="heading--2eONR">10 Perches in Nugegoda</h2>
				<div class="description--2-ez3"><span>Nugegoda, Colombo</span></div>
				<div class="price--3SnqI"><span>Rs 38,000,000</span></div>
				<div class="details--1GDSs">10 perches</div>
			</li>
			<li class="normal--2QYVk">
				<a href="/en/ad/land-for-sale-in-nugegoda-1001"></a>
				<h2 class="heading--2eONR">Duplicate of the first</h2>
			</li>
			<li class="normal--2QYVk">
				<h2 class="heading--2eONR">Card with no link is dropped</h2>
			</li>
		</ul>
	</body></html>`)

	cards := NewIkmanAdapter().Cards(doc, "https://ikman.lk/en/ads/sri-lanka/land")
	require.Len(t, cards, 1)
	assert.Equal(t, "10 Perches in Nugegoda", cards[0].Title)
	assert.Equal(t, "Nugegoda, Colombo", cards[0].Location)
	assert.Equal(t, "Rs 38,000,000", cards[0].PriceText)
	assert.Equal(t, "10 perches", cards[0].SizeText)
	assert.Equal(t, "https://ikman.lk/en/ad/land-for-sale-in-nugegoda-1001", cards[0].URL)
	assert.Nil(t, cards[0].Coords)
}

func TestIkmanLocationFallsBackToURL(t *testing.T) {
	doc := docFrom(t, `<html><body>
		<ul class="list--x">
			<li class="normal--x">
				<a href="/en/ad/land-for-sale-in-boralesgamuwa-77"></a>
				<h2 class="heading--x">Bare card</h2>
			</li>
		</ul>
	</body></html>`)

	cards := NewIkmanAdapter().Cards(doc, "https://ikman.lk/en/ads/sri-lanka/land")
	require.Len(t, cards, 1)
	assert.Equal(t, "boralesgamuwa", cards[0].Location)
}

func TestLankaLandCardsWithInlineCoords(t *testing.T) {
	doc := docFrom(t, `<html><body>
		<div class="property-item" data-lat="6.9271" data-lng="79.8612">
			<h2><a href="https://www.lankaland.lk/property/land-in-colombo-7/">Land in Colombo 7</a></h2>
			<span class="property-location">Colombo 7</span>
			<span class="property-price">Rs 120M</span>
			<span class="property-size">12 perches</span>
		</div>
		<div class="property-item" data-lat="51.5072" data-lng="-0.1276">
			<h2><a href="https://www.lankaland.lk/property/land-in-galle/">Land in Galle</a></h2>
		</div>
	</body></html>`)

	cards := NewLankaLandAdapter().Cards(doc, "https://www.lankaland.lk/category/land-for-sale")
	require.Len(t, cards, 2)

	first := cards[0]
	assert.Equal(t, "Land in Colombo 7", first.Title)
	assert.Equal(t, "Colombo 7", first.Location)
	assert.Equal(t, "Rs 120M", first.PriceText)
	require.NotNil(t, first.Coords)
	assert.InDelta(t, 6.9271, first.Coords.Lat, 0.0001)
	assert.InDelta(t, 79.8612, first.Coords.Lng, 0.0001)

	// out-of-bounds coordinates are discarded, the card survives
	assert.Nil(t, cards[1].Coords)
	assert.Equal(t, "Galle", cards[1].Location)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		url    string
		source Source
		found  bool
	}{
		{"https://ikman.lk/en/ads/sri-lanka/land", SourceIkman, true},
		{"https://ikman.lk/en/ads/colombo/land?page=3", SourceIkman, true},
		{"https://ikman.lk/en/ad/some-listing-123", "", false},
		{"https://www.lankaland.lk/category/land-for-sale", SourceLankaLand, true},
		{"https://www.lankaland.lk/category/land-for-sale?paged=2", SourceLankaLand, true},
		{"https://example.com/listings", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		adapter, ok := Detect(tt.url)
		assert.Equal(t, tt.found, ok, tt.url)
		if ok {
			assert.Equal(t, tt.source, adapter.Source(), tt.url)
		}
	}
}
