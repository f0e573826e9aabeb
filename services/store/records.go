package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Anusara14/land-scraper/models"
	scrapeerrors "github.com/Anusara14/land-scraper/pkg/errors"
)

// Persisted state layout. Every key is independently readable and
// writable; there is no schema migration.
const (
	keyListings        = "listings"
	keyPagesScraped    = "pagesScraped"
	keyIsScraping      = "isScraping"
	keyFilterLocations = "filterLocations"
	keyScrapeDetails   = "scrapeDetails"
	keyPageDelay       = "pageDelay"
	keyVisitedPages    = "visitedPages"
	keyCustomLocations = "customLocations"
	keyCurrentURL      = "currentUrl"
)

// CrawlState is the persisted portion of the crawl's mutable state,
// saved at page-cycle boundaries so a restarted process resumes where
// it left off.
type CrawlState struct {
	IsScraping      bool
	PagesScraped    int
	FilterLocations bool
	ScrapeDetails   bool
	PageDelay       float64 // seconds
	VisitedPages    []string
	CustomLocations []string
	CurrentURL      string
}

// RecordStore deduplicates and persists listings keyed by canonical
// URL, and owns the persisted crawl-state keys. Writes are whole-value
// replacements after a successful read; exactly one crawl context may
// be active at a time.
type RecordStore struct {
	kv KVStore
}

// NewRecordStore creates a record store on the given KV collaborator
func NewRecordStore(kv KVStore) *RecordStore {
	return &RecordStore{kv: kv}
}

// Listings loads the full stored collection. An absent key is an empty
// collection.
func (s *RecordStore) Listings(ctx context.Context) ([]models.Listing, error) {
	raw, err := s.kv.Get(ctx, keyListings)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, scrapeerrors.NewPersistence("load listings", err)
	}
	var listings []models.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, scrapeerrors.NewPersistence("decode listings", err)
	}
	return listings, nil
}

// UpsertBatch appends the records whose URL is not already stored and
// persists the combined collection. Returns the number inserted and the
// new total. Idempotent on URL; incoming order is preserved.
func (s *RecordStore) UpsertBatch(ctx context.Context, batch []models.Listing) (int, int, error) {
	existing, err := s.Listings(ctx)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l.URL] = true
	}

	inserted := 0
	for _, l := range batch {
		if !l.Valid() || seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		existing = append(existing, l)
		inserted++
	}

	if inserted > 0 {
		raw, err := json.Marshal(existing)
		if err != nil {
			return 0, 0, scrapeerrors.NewPersistence("encode listings", err)
		}
		if err := s.kv.Set(ctx, keyListings, raw); err != nil {
			return 0, 0, scrapeerrors.NewPersistence("save listings", err)
		}
	}

	return inserted, len(existing), nil
}

// LoadState restores the persisted crawl state, applying per-key
// defaults for anything absent
func (s *RecordStore) LoadState(ctx context.Context) (CrawlState, error) {
	state := CrawlState{PageDelay: 3}

	if err := s.getJSON(ctx, keyIsScraping, &state.IsScraping); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyPagesScraped, &state.PagesScraped); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyFilterLocations, &state.FilterLocations); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyScrapeDetails, &state.ScrapeDetails); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyPageDelay, &state.PageDelay); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyVisitedPages, &state.VisitedPages); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyCustomLocations, &state.CustomLocations); err != nil {
		return state, err
	}
	if err := s.getJSON(ctx, keyCurrentURL, &state.CurrentURL); err != nil {
		return state, err
	}

	return state, nil
}

// SaveState persists the full crawl state, one key per field
func (s *RecordStore) SaveState(ctx context.Context, state CrawlState) error {
	fields := map[string]interface{}{
		keyIsScraping:      state.IsScraping,
		keyPagesScraped:    state.PagesScraped,
		keyFilterLocations: state.FilterLocations,
		keyScrapeDetails:   state.ScrapeDetails,
		keyPageDelay:       state.PageDelay,
		keyVisitedPages:    state.VisitedPages,
		keyCustomLocations: state.CustomLocations,
		keyCurrentURL:      state.CurrentURL,
	}
	for key, value := range fields {
		if err := s.setJSON(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SaveCustomLocations hot-swaps the filter list without touching the
// rest of the state
func (s *RecordStore) SaveCustomLocations(ctx context.Context, locations []string) error {
	return s.setJSON(ctx, keyCustomLocations, locations)
}

// SetScraping flips the persisted running flag
func (s *RecordStore) SetScraping(ctx context.Context, running bool) error {
	return s.setJSON(ctx, keyIsScraping, running)
}

// SetPagesScraped persists the page counter
func (s *RecordStore) SetPagesScraped(ctx context.Context, pages int) error {
	return s.setJSON(ctx, keyPagesScraped, pages)
}

// getJSON decodes a key into out, leaving out untouched for absent keys
func (s *RecordStore) getJSON(ctx context.Context, key string, out interface{}) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return scrapeerrors.NewPersistence("load "+key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return scrapeerrors.NewPersistence("decode "+key, err)
	}
	return nil
}

func (s *RecordStore) setJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return scrapeerrors.NewPersistence("encode "+key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return scrapeerrors.NewPersistence("save "+key, err)
	}
	return nil
}
