package enrich

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anusara14/land-scraper/internal/scrape"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func enricherFor(html string) *Enricher {
	fetch := func(ctx context.Context, url string) (io.Reader, error) {
		return strings.NewReader(html), nil
	}
	return NewEnricherWithFetcher(fetch, fixedNow)
}

func TestEnrichCoordinatesFromMapLink(t *testing.T) {
	e := enricherFor(`<html><body>
		<a href="https://www.google.com/maps/@6.9271,79.8612,15z">View on map</a>
	</body></html>`)

	d := e.Enrich(context.Background(), "https://ikman.lk/en/ad/x", scrape.SourceIkman)
	require.NotNil(t, d.Coords)
	assert.Equal(t, 6.9271, d.Coords.Lat)
	assert.Equal(t, 79.8612, d.Coords.Lng)
}

func TestEnrichCoordinatesOutOfBoundsRejected(t *testing.T) {
	e := enricherFor(`<html><body>
		<a href="https://www.google.com/maps/@51.5074,-0.1278,15z">London?</a>
		<script>var map = {lat: 6.0329, lng: 80.2168};</script>
	</body></html>`)

	d := e.Enrich(context.Background(), "https://ikman.lk/en/ad/x", scrape.SourceIkman)
	require.NotNil(t, d.Coords)
	assert.Equal(t, 6.0329, d.Coords.Lat)
}

func TestEnrichCoordinatesFromIframe(t *testing.T) {
	e := enricherFor(`<html><body>
		<iframe src="https://maps.google.com/maps?ll=7.2906,80.6337&z=14"></iframe>
	</body></html>`)

	d := e.Enrich(context.Background(), "https://example.lk/p/1", scrape.SourceLankaLand)
	require.NotNil(t, d.Coords)
	assert.Equal(t, 7.2906, d.Coords.Lat)
}

func TestEnrichCoordinatesFromDataAttributes(t *testing.T) {
	e := enricherFor(`<html><body>
		<div id="map" data-lat="6.8649" data-lng="79.8997"></div>
	</body></html>`)

	d := e.Enrich(context.Background(), "https://example.lk/p/1", scrape.SourceLankaLand)
	require.NotNil(t, d.Coords)
	assert.Equal(t, 6.8649, d.Coords.Lat)
}

func TestEnrichPostedDate(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"posted on absolute", `<p>Posted on 12/06/2023 by owner</p>`, "2023-06-12"},
		{"relative phrase", `<span>3 days ago</span>`, "2024-06-12"},
		{"yesterday literal", `<span>Updated yesterday</span>`, "2024-06-14"},
		{"today literal", `<span>today</span>`, "2024-06-15"},
		{"structural candidate", `<span class="post-date">15 March 2024</span>`, "2024-03-15"},
		{"nothing", `<p>no dates here</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := enricherFor("<html><body>" + tt.html + "</body></html>")
			d := e.Enrich(context.Background(), "https://example.lk/p/1", scrape.SourceLankaLand)
			assert.Equal(t, tt.want, d.PostedDate)
		})
	}
}

func TestEnrichAddressFromBreadcrumbs(t *testing.T) {
	e := enricherFor(`<html><body>
		<ul class="breadcrumb">
			<li><a href="/">Home</a></li>
			<li><a href="/ads">All Ads</a></li>
			<li><a href="/colombo">Colombo</a></li>
			<li><a href="/nugegoda">Nugegoda</a></li>
		</ul>
	</body></html>`)

	d := e.Enrich(context.Background(), "https://ikman.lk/en/ad/x", scrape.SourceIkman)
	assert.Equal(t, "Nugegoda, Colombo", d.Address)
}

func TestEnrichAddressFromLocationElement(t *testing.T) {
	e := enricherFor(`<html><body>
		<div class="ad-location">Maharagama, Colombo</div>
	</body></html>`)

	d := e.Enrich(context.Background(), "https://ikman.lk/en/ad/x", scrape.SourceIkman)
	assert.Equal(t, "Maharagama, Colombo", d.Address)
}

func TestEnrichFetchFailureDegradesSilently(t *testing.T) {
	fetch := func(ctx context.Context, url string) (io.Reader, error) {
		return nil, errors.New("connection refused")
	}
	e := NewEnricherWithFetcher(fetch, fixedNow)

	d := e.Enrich(context.Background(), "https://ikman.lk/en/ad/x", scrape.SourceIkman)
	assert.Nil(t, d.Coords)
	assert.Empty(t, d.PostedDate)
	assert.Empty(t, d.Address)
}
