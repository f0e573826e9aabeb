package worker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anusara14/land-scraper/internal/crawl"
	"github.com/Anusara14/land-scraper/services/publisher"
	"github.com/Anusara14/land-scraper/services/store"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []publisher.Event
}

func (p *capturingPublisher) Publish(_ context.Context, e publisher.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) last() (publisher.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return publisher.Event{}, false
	}
	return p.events[len(p.events)-1], true
}

const listURL = "https://ikman.lk/en/ads/sri-lanka/land"

var listPage = `<html><body>
	<ul class="list--x">
		<li class="normal--1">
			<a href="/en/ad/land-for-sale-in-galle-1"></a>
			<h2 class="heading--x">Land in Galle</h2>
			<div class="description--x"><span>Galle</span></div>
			<div class="price--x"><span>Rs 1,500,000</span></div>
			<div class="details--x">10 perches</div>
		</li>
	</ul>
</body></html>`

func fetchFixture(_ context.Context, url string) (io.Reader, error) {
	if url != listURL {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return strings.NewReader(listPage), nil
}

func newTestWorker(pub *capturingPublisher) (*Worker, *store.RecordStore) {
	recordStore := store.NewRecordStore(store.NewMemoryKV())
	crawler := crawl.New(crawl.Deps{
		Store: recordStore,
		Pub:   pub,
		Fetch: fetchFixture,
	})
	return New(crawler, recordStore, pub), recordStore
}

func TestStartCommandRunsCrawl(t *testing.T) {
	pub := &capturingPublisher{}
	w, recordStore := newTestWorker(pub)

	err := w.HandleCommand(context.Background(), Command{
		Type:      CommandStart,
		URL:       listURL,
		PageDelay: 0.001,
	})
	require.NoError(t, err)
	w.Wait()

	listings, err := recordStore.Listings(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	last, ok := pub.last()
	require.True(t, ok)
	assert.Equal(t, publisher.EventScrapingComplete, last.Type)
}

func TestStartCommandNeedsURL(t *testing.T) {
	w, _ := newTestWorker(&capturingPublisher{})
	err := w.HandleCommand(context.Background(), Command{Type: CommandStart})
	assert.Error(t, err)
}

func TestStartCommandFallsBackToDefaultURL(t *testing.T) {
	pub := &capturingPublisher{}
	w, recordStore := newTestWorker(pub)
	w.DefaultStartURL = listURL

	err := w.HandleCommand(context.Background(), Command{Type: CommandStart, PageDelay: 0.001})
	require.NoError(t, err)
	w.Wait()

	listings, err := recordStore.Listings(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestUnknownCommandRejected(t *testing.T) {
	w, _ := newTestWorker(&capturingPublisher{})
	err := w.HandleCommand(context.Background(), Command{Type: "REBOOT"})
	assert.Error(t, err)
}

func TestUpdateLocationsPersists(t *testing.T) {
	w, recordStore := newTestWorker(&capturingPublisher{})

	err := w.HandleCommand(context.Background(), Command{
		Type:      CommandUpdateLocations,
		Locations: []string{"nugegoda", "maharagama"},
	})
	require.NoError(t, err)

	state, err := recordStore.LoadState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"nugegoda", "maharagama"}, state.CustomLocations)
}

func TestGetStatusPublishesSnapshot(t *testing.T) {
	pub := &capturingPublisher{}
	w, recordStore := newTestWorker(pub)

	require.NoError(t, recordStore.SetPagesScraped(context.Background(), 4))

	err := w.HandleCommand(context.Background(), Command{Type: CommandGetStatus})
	require.NoError(t, err)

	last, ok := pub.last()
	require.True(t, ok)
	assert.Equal(t, publisher.EventStatus, last.Type)
	assert.False(t, last.IsRunning)
	assert.Equal(t, 4, last.PagesScraped)
	assert.Equal(t, 0, last.TotalRecords)
}

func TestStopCommandIsNoOpWhenIdle(t *testing.T) {
	w, _ := newTestWorker(&capturingPublisher{})
	err := w.HandleCommand(context.Background(), Command{Type: CommandStop})
	assert.NoError(t, err)
}
