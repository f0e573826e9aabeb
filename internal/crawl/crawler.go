// Package crawl drives the page-by-page scraping loop: fetch a listings
// page, normalize its cards, persist the batch, then follow pagination
// until the site runs out of pages or the operator stops the run.
package crawl

import (
	"context"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Anusara14/land-scraper/helpers"
	"github.com/Anusara14/land-scraper/internal/enrich"
	"github.com/Anusara14/land-scraper/internal/parse"
	"github.com/Anusara14/land-scraper/internal/region"
	"github.com/Anusara14/land-scraper/internal/scrape"
	"github.com/Anusara14/land-scraper/logger"
	"github.com/Anusara14/land-scraper/models"
	scrapeerrors "github.com/Anusara14/land-scraper/pkg/errors"
	"github.com/Anusara14/land-scraper/services/cache"
	"github.com/Anusara14/land-scraper/services/publisher"
	"github.com/Anusara14/land-scraper/services/store"
)

// Fetcher retrieves a page body; swappable for tests
type Fetcher func(ctx context.Context, url string) (io.Reader, error)

// Deps wires the crawler's collaborators. Store and Pub are required;
// everything else has a working default.
type Deps struct {
	Store    *store.RecordStore
	Pub      publisher.Publisher
	Enricher *enrich.Enricher
	Fetch    Fetcher
	Cache    cache.CacheService
	Resolver *region.Resolver

	// BlockTime is how long a site stays on cooldown after it
	// rate-limits us
	BlockTime time.Duration

	// SettleDelay is the pause before resuming an interrupted crawl
	SettleDelay time.Duration

	// DetailDelay paces the secondary detail fetches
	DetailDelay time.Duration

	// MaxPages caps a single run; zero means unbounded
	MaxPages int
}

// Crawler is the crawl state machine. One crawl runs at a time; Start
// on a running crawler is rejected.
type Crawler struct {
	store    *store.RecordStore
	pub      publisher.Publisher
	enricher *enrich.Enricher
	fetch    Fetcher
	cache    cache.CacheService
	resolver *region.Resolver

	blockTime   time.Duration
	settleDelay time.Duration
	maxPages    int
	limiter     *rate.Limiter
	now         func() time.Time
	log         *logger.Logger

	mu    sync.Mutex
	state State
	runID string
	site  scrape.Source
	halt  bool
}

// New creates a crawler with defaults applied for any absent optional
// dependency
func New(deps Deps) *Crawler {
	if deps.Fetch == nil {
		deps.Fetch = helpers.FetchWithRandomHeaders
	}
	if deps.Resolver == nil {
		deps.Resolver = region.NewResolver()
	}
	if deps.Enricher == nil {
		deps.Enricher = enrich.NewEnricher()
	}
	if deps.BlockTime <= 0 {
		deps.BlockTime = 10 * time.Minute
	}
	if deps.DetailDelay <= 0 {
		deps.DetailDelay = 2 * time.Second
	}

	return &Crawler{
		store:       deps.Store,
		pub:         deps.Pub,
		enricher:    deps.Enricher,
		fetch:       deps.Fetch,
		cache:       deps.Cache,
		resolver:    deps.Resolver,
		blockTime:   deps.BlockTime,
		settleDelay: deps.SettleDelay,
		maxPages:    deps.MaxPages,
		limiter:     rate.NewLimiter(rate.Every(deps.DetailDelay), 1),
		now:         time.Now,
		log:         logger.ForCrawler(),
	}
}

// State returns the current state-machine position
func (c *Crawler) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == "" {
		return StateIdle
	}
	return c.state
}

// RunID returns the identifier of the current or most recent run
func (c *Crawler) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// Site returns the adapter source detected for the current run
func (c *Crawler) Site() scrape.Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.site
}

// Stop requests a halt. The run stops at the next checkpoint: before
// processing a page, or before navigating to the next one.
func (c *Crawler) Stop() {
	c.mu.Lock()
	c.halt = true
	c.mu.Unlock()
}

func (c *Crawler) halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halt
}

func (c *Crawler) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Start begins a fresh run from startURL. The page counter and visited
// set reset; the stored listings survive so dedup spans runs.
func (c *Crawler) Start(ctx context.Context, startURL string, opts Options) error {
	adapter, ok := scrape.Detect(startURL)
	if !ok {
		return scrapeerrors.NewConfiguration("no adapter for "+startURL, nil)
	}

	c.mu.Lock()
	if c.state == StateRunning || c.state == StatePaginating {
		c.mu.Unlock()
		return scrapeerrors.NewConfiguration("a crawl is already running", nil)
	}
	c.state = StateRunning
	c.runID = uuid.NewString()
	c.site = adapter.Source()
	c.halt = false
	runID := c.runID
	c.mu.Unlock()

	if opts.PageDelay <= 0 {
		opts.PageDelay = 3
	}
	state := store.CrawlState{
		IsScraping:      true,
		FilterLocations: opts.FilterEnabled,
		ScrapeDetails:   opts.DetailEnabled,
		PageDelay:       opts.PageDelay,
		CustomLocations: opts.TargetLocations,
		CurrentURL:      startURL,
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		c.setState(StateFailed)
		return err
	}

	c.publish(ctx, publisher.Log(runID, "scrape started: "+startURL, "info"))
	c.log.Info().Str("url", startURL).Str("site", adapter.Name()).Msg("starting crawl")

	return c.run(ctx, startURL, state)
}

// Resume continues an interrupted run when the persisted state says one
// was in flight. Returns false when there is nothing to resume.
func (c *Crawler) Resume(ctx context.Context) (bool, error) {
	state, err := c.store.LoadState(ctx)
	if err != nil {
		return false, err
	}
	if !state.IsScraping || state.CurrentURL == "" {
		return false, nil
	}

	adapter, ok := scrape.Detect(state.CurrentURL)
	if !ok {
		// stale state pointing at a URL no adapter claims; clear it
		state.IsScraping = false
		state.CurrentURL = ""
		return false, c.store.SaveState(ctx, state)
	}

	c.mu.Lock()
	if c.state == StateRunning || c.state == StatePaginating {
		c.mu.Unlock()
		return false, scrapeerrors.NewConfiguration("a crawl is already running", nil)
	}
	c.state = StateRunning
	c.runID = uuid.NewString()
	c.site = adapter.Source()
	c.halt = false
	runID := c.runID
	c.mu.Unlock()

	c.log.Info().Str("url", state.CurrentURL).Int("pages", state.PagesScraped).Msg("resuming interrupted crawl")
	c.publish(ctx, publisher.Log(runID, "resuming from "+state.CurrentURL, "info"))

	// let the process settle before hitting the site again
	if err := sleep(ctx, c.settleDelay); err != nil {
		c.setState(StateHalted)
		return true, nil
	}

	return true, c.run(ctx, state.CurrentURL, state)
}

// run is the page loop. State is persisted at every page boundary so a
// killed process resumes on the page it was about to fetch.
func (c *Crawler) run(ctx context.Context, current string, state store.CrawlState) error {
	runID := c.RunID()

	visited := make(map[string]bool, len(state.VisitedPages))
	for _, u := range state.VisitedPages {
		visited[u] = true
	}
	pages := state.PagesScraped

	started := time.Now()
	var seen, keptCount, skippedCount int
	defer func() {
		c.log.Info().
			Str("state", string(c.State())).
			Int("pages", pages).
			Int("cards_seen", seen).
			Int("kept", keptCount).
			Int("skipped", skippedCount).
			Dur("duration", time.Since(started)).
			Msg("run summary")
	}()

	for {
		if c.halted() || ctx.Err() != nil {
			return c.finishHalted(ctx, runID)
		}

		adapter, ok := scrape.Detect(current)
		if !ok {
			return c.finishFailed(ctx, runID, scrapeerrors.NewPage("crawler", "no adapter for "+current, nil))
		}

		// re-read config each cycle so the operator can flip the
		// filter, details and delay mid-crawl
		fresh, err := c.store.LoadState(ctx)
		if err != nil {
			return c.finishFailed(ctx, runID, err)
		}
		opts := Options{
			FilterEnabled:   fresh.FilterLocations,
			DetailEnabled:   fresh.ScrapeDetails,
			PageDelay:       fresh.PageDelay,
			TargetLocations: fresh.CustomLocations,
		}

		doc, err := c.fetchDocument(ctx, adapter, current)
		if err != nil {
			return c.finishFailed(ctx, runID, err)
		}

		kept, skipped := c.ProcessPage(ctx, adapter, doc, current, opts)
		seen += len(kept) + skipped
		keptCount += len(kept)
		skippedCount += skipped

		inserted, total, err := c.store.UpsertBatch(ctx, kept)
		if err != nil {
			return c.finishFailed(ctx, runID, err)
		}

		pages++
		visited[scrape.CanonicalURL(current, "")] = true
		if err := c.store.SetPagesScraped(ctx, pages); err != nil {
			return c.finishFailed(ctx, runID, err)
		}

		c.log.Info().
			Str("url", current).
			Int("cards", len(kept)+skipped).
			Int("kept", len(kept)).
			Int("inserted", inserted).
			Int("total", total).
			Msg("page scraped")
		c.publish(ctx, publisher.Count(runID, total, inserted))
		c.publish(ctx, publisher.Pages(runID, pages))

		if c.maxPages > 0 && pages >= c.maxPages {
			c.log.Info().Int("pages", pages).Msg("page cap reached")
			return c.finishCompleted(ctx, runID, total)
		}
		if !adapter.HasNextPage(doc, len(kept)+skipped) {
			return c.finishCompleted(ctx, runID, total)
		}

		c.setState(StatePaginating)
		if err := sleep(ctx, secondsToDuration(opts.PageDelay)); err != nil {
			return c.finishHalted(ctx, runID)
		}
		if c.halted() {
			return c.finishHalted(ctx, runID)
		}

		next, ok := adapter.NextPageURL(doc, current)
		if !ok {
			return c.finishCompleted(ctx, runID, total)
		}
		if visited[scrape.CanonicalURL(next, "")] {
			// site is cycling back over pages we have seen
			c.log.Warn().Str("url", next).Msg("pagination loop detected, stopping")
			return c.finishCompleted(ctx, runID, total)
		}

		state = fresh
		state.IsScraping = true
		state.PagesScraped = pages
		state.VisitedPages = keys(visited)
		state.CurrentURL = next
		if err := c.store.SaveState(ctx, state); err != nil {
			return c.finishFailed(ctx, runID, err)
		}

		current = next
		c.setState(StateRunning)
	}
}

// ProcessPage extracts, normalizes and filters the cards on one parsed
// page. Returns the listings to persist and the count filtered out.
// Card-level problems skip the card; they never end the run.
func (c *Crawler) ProcessPage(ctx context.Context, adapter scrape.Adapter, doc *goquery.Document, pageURL string, opts Options) ([]models.Listing, int) {
	cards := adapter.Cards(doc, pageURL)
	if len(cards) == 0 {
		c.log.Warn().Str("url", pageURL).Msg("no cards found on page")
		return nil, 0
	}

	kept := make([]models.Listing, 0, len(cards))
	skipped := 0
	for _, card := range cards {
		if card.URL == "" {
			skipped++
			continue
		}
		listing := c.normalizeCard(card, adapter.Source())
		if opts.FilterEnabled && !matchesTargets(card, opts.TargetLocations) {
			skipped++
			continue
		}
		if opts.DetailEnabled {
			c.enrichListing(ctx, &listing, adapter.Source())
		}
		kept = append(kept, listing)
	}

	return kept, skipped
}

var perPerchRe = regexp.MustCompile(`(?i)per\s+perch`)

// normalizeCard turns one raw card into a typed listing. Every parse
// degrades independently; an unparseable field stays absent.
func (c *Crawler) normalizeCard(card scrape.RawCard, source scrape.Source) models.Listing {
	listing := models.Listing{
		Title:     card.Title,
		Address:   card.Location,
		PriceRaw:  card.PriceText,
		URL:       scrape.CanonicalURL(card.URL, ""),
		Source:    string(source),
		ScrapedAt: c.now(),
	}

	if total, ok := parse.Price(card.PriceText); ok {
		listing.PriceTotal = &total
	}
	if size, ok := parse.Size(card.SizeText); ok {
		listing.SizePerches = &size
	}
	if listing.PriceTotal != nil && listing.SizePerches != nil {
		explicit := perPerchRe.MatchString(card.PriceText)
		if perPerch, ok := parse.PricePerPerch(*listing.PriceTotal, *listing.SizePerches, explicit); ok {
			listing.PricePerPerch = &perPerch
		}
	}

	location := card.Location
	if location == "" {
		location = card.Title
	}
	listing.Region = c.resolver.Resolve(location)

	if card.Coords != nil && parse.InSriLanka(card.Coords.Lat, card.Coords.Lng) {
		listing.SetCoords(card.Coords.Lat, card.Coords.Lng)
	}

	return listing
}

// matchesTargets reports whether a card's location or title mentions
// any configured target. An empty target list keeps everything.
func matchesTargets(card scrape.RawCard, targets []string) bool {
	if len(targets) == 0 {
		return true
	}
	return helpers.ContainsAny(card.Location+" "+card.Title, targets)
}

// enrichListing fills absent fields from the listing's detail page,
// paced by the detail limiter. Enrichment never removes a field that
// the index card already provided, except that a refined address may
// replace a vaguer one.
func (c *Crawler) enrichListing(ctx context.Context, listing *models.Listing, source scrape.Source) {
	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	details := c.enricher.Enrich(ctx, listing.URL, source)

	if !listing.HasCoords() && details.Coords != nil {
		listing.SetCoords(details.Coords.Lat, details.Coords.Lng)
	}
	if listing.PostedDate == "" && details.PostedDate != "" {
		listing.PostedDate = details.PostedDate
	}
	if details.Address != "" {
		listing.Address = details.Address
		if listing.Region == region.Unknown || listing.Region == region.Other {
			if resolved := c.resolver.Resolve(details.Address); resolved != region.Other && resolved != region.Unknown {
				listing.Region = resolved
			}
		}
	}
}

// fetchDocument fetches and parses one listings page, honoring the
// per-site cooldown set after a rate-limit response
func (c *Crawler) fetchDocument(ctx context.Context, adapter scrape.Adapter, pageURL string) (*goquery.Document, error) {
	cooldownKey := strings.ToLower(adapter.Name()) + "_cooldown"
	if c.cache != nil {
		if _, err := c.cache.Get(cooldownKey); err == nil {
			return nil, scrapeerrors.NewRateLimit(adapter.Name(), c.blockTime)
		}
	}

	body, err := c.fetch(ctx, pageURL)
	if err != nil {
		if strings.Contains(err.Error(), "rate limited") {
			if c.cache != nil {
				if cerr := c.cache.Set(cooldownKey, []byte("1"), c.blockTime); cerr != nil {
					c.log.Warn().Err(cerr).Msg("failed to set cooldown")
				}
			}
			return nil, scrapeerrors.NewRateLimit(adapter.Name(), c.blockTime)
		}
		return nil, scrapeerrors.NewPage(adapter.Name(), "fetch "+pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, scrapeerrors.NewPage(adapter.Name(), "parse "+pageURL, err)
	}
	return doc, nil
}

func (c *Crawler) finishCompleted(ctx context.Context, runID string, total int) error {
	c.setState(StateCompleted)
	if err := c.store.SetScraping(ctx, false); err != nil {
		c.log.Error().Err(err).Msg("failed to clear running flag")
	}
	c.publish(ctx, publisher.Complete(runID, total))
	c.log.Info().Int("total", total).Msg("crawl completed")
	return nil
}

func (c *Crawler) finishHalted(ctx context.Context, runID string) error {
	c.setState(StateHalted)
	if err := c.store.SetScraping(context.WithoutCancel(ctx), false); err != nil {
		c.log.Error().Err(err).Msg("failed to clear running flag")
	}
	c.publish(context.WithoutCancel(ctx), publisher.Log(runID, "scrape halted", "info"))
	c.log.Info().Msg("crawl halted")
	return nil
}

func (c *Crawler) finishFailed(ctx context.Context, runID string, err error) error {
	c.setState(StateFailed)
	if serr := c.store.SetScraping(context.WithoutCancel(ctx), false); serr != nil {
		c.log.Error().Err(serr).Msg("failed to clear running flag")
	}
	c.publish(context.WithoutCancel(ctx), publisher.Failure(runID, err.Error()))
	c.log.Error().Err(err).Msg("crawl failed")
	return err
}

// publish delivers an event best effort; a broken publisher never stops
// a crawl
func (c *Crawler) publish(ctx context.Context, event publisher.Event) {
	if c.pub == nil {
		return
	}
	if err := c.pub.Publish(ctx, event); err != nil {
		c.log.Warn().Err(err).Str("type", string(event.Type)).Msg("event publish failed")
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
