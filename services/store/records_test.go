package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anusara14/land-scraper/models"
)

func listing(url, title string) models.Listing {
	return models.Listing{
		Title:     title,
		URL:       url,
		Source:    "Ikman",
		Region:    "Colombo",
		ScrapedAt: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestUpsertBatch(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV())

	batch := []models.Listing{
		listing("https://ikman.lk/en/ad/a", "A"),
		listing("https://ikman.lk/en/ad/b", "B"),
	}

	inserted, total, err := s.UpsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, total)

	// duplicate URL within a later batch
	inserted, total, err = s.UpsertBatch(ctx, []models.Listing{
		listing("https://ikman.lk/en/ad/b", "B again"),
		listing("https://ikman.lk/en/ad/c", "C"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 3, total)

	stored, err := s.Listings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	// first write wins and order is preserved
	assert.Equal(t, "B", stored[1].Title)
	assert.Equal(t, "C", stored[2].Title)
}

func TestUpsertBatchIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV())

	batch := []models.Listing{
		listing("https://ikman.lk/en/ad/a", "A"),
		listing("https://ikman.lk/en/ad/b", "B"),
	}

	_, _, err := s.UpsertBatch(ctx, batch)
	require.NoError(t, err)
	once, err := s.Listings(ctx)
	require.NoError(t, err)

	inserted, _, err := s.UpsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	twice, err := s.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestUpsertBatchRejectsEmptyURL(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV())

	inserted, total, err := s.UpsertBatch(ctx, []models.Listing{{Title: "no url"}})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 0, total)
}

func TestCrawlStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV())

	// defaults for a fresh store
	state, err := s.LoadState(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsScraping)
	assert.Equal(t, 0, state.PagesScraped)
	assert.Equal(t, 3.0, state.PageDelay)
	assert.Empty(t, state.VisitedPages)

	saved := CrawlState{
		IsScraping:      true,
		PagesScraped:    7,
		FilterLocations: true,
		ScrapeDetails:   true,
		PageDelay:       1.5,
		VisitedPages:    []string{"https://ikman.lk/en/ads/land?page=1"},
		CustomLocations: []string{"Nugegoda"},
		CurrentURL:      "https://ikman.lk/en/ads/land?page=2",
	}
	require.NoError(t, s.SaveState(ctx, saved))

	loaded, err := s.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSetScrapingAndCustomLocations(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV())

	require.NoError(t, s.SetScraping(ctx, true))
	require.NoError(t, s.SaveCustomLocations(ctx, []string{"Kandy", "Galle"}))

	state, err := s.LoadState(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsScraping)
	assert.Equal(t, []string{"Kandy", "Galle"}, state.CustomLocations)
}
