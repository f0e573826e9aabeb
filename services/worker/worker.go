// Package worker owns the crawl lifecycle: it listens for operator
// commands on a redis channel, starts and stops the single crawl, and
// answers status queries over the event stream.
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Anusara14/land-scraper/internal/crawl"
	"github.com/Anusara14/land-scraper/logger"
	scrapeerrors "github.com/Anusara14/land-scraper/pkg/errors"
	"github.com/Anusara14/land-scraper/services/publisher"
	"github.com/Anusara14/land-scraper/services/store"
)

// CommandType enumerates the operator commands
type CommandType string

const (
	CommandStart           CommandType = "START"
	CommandStop            CommandType = "STOP"
	CommandUpdateLocations CommandType = "UPDATE_LOCATIONS"
	CommandGetStatus       CommandType = "GET_STATUS"
)

// Command is one operator instruction, decoded from the command channel
type Command struct {
	Type            CommandType `json:"type"`
	URL             string      `json:"url,omitempty"`
	FilterLocations bool        `json:"filter_locations,omitempty"`
	ScrapeDetails   bool        `json:"scrape_details,omitempty"`
	PageDelay       float64     `json:"page_delay,omitempty"`
	Locations       []string    `json:"locations,omitempty"`
}

// Worker dispatches commands to the crawler. At most one crawl runs at
// a time; a START while one is active is rejected.
type Worker struct {
	crawler *crawl.Crawler
	store   *store.RecordStore
	pub     publisher.Publisher
	log     *logger.Logger
	wg      sync.WaitGroup

	// DefaultStartURL is used by a START command that carries no url
	DefaultStartURL string
}

// New creates a worker around an idle crawler
func New(crawler *crawl.Crawler, recordStore *store.RecordStore, pub publisher.Publisher) *Worker {
	return &Worker{
		crawler: crawler,
		store:   recordStore,
		pub:     pub,
		log:     logger.ForWorker(),
	}
}

// HandleCommand executes one command. START launches the crawl in the
// background and returns immediately.
func (w *Worker) HandleCommand(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CommandStart:
		return w.start(ctx, cmd)
	case CommandStop:
		w.log.Info().Msg("stop requested")
		w.crawler.Stop()
		return nil
	case CommandUpdateLocations:
		w.log.Info().Int("count", len(cmd.Locations)).Msg("updating filter locations")
		return w.store.SaveCustomLocations(ctx, cmd.Locations)
	case CommandGetStatus:
		return w.publishStatus(ctx)
	default:
		return scrapeerrors.NewConfiguration("unknown command "+string(cmd.Type), nil)
	}
}

func (w *Worker) start(ctx context.Context, cmd Command) error {
	state := w.crawler.State()
	if state == crawl.StateRunning || state == crawl.StatePaginating {
		return scrapeerrors.NewConfiguration("a crawl is already running", nil)
	}
	if cmd.URL == "" {
		cmd.URL = w.DefaultStartURL
	}
	if cmd.URL == "" {
		return scrapeerrors.NewConfiguration("start command needs a url", nil)
	}

	opts := crawl.Options{
		FilterEnabled:   cmd.FilterLocations,
		DetailEnabled:   cmd.ScrapeDetails,
		PageDelay:       cmd.PageDelay,
		TargetLocations: cmd.Locations,
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.crawler.Start(ctx, cmd.URL, opts); err != nil {
			w.log.Error().Err(err).Str("url", cmd.URL).Msg("crawl ended with error")
		}
	}()
	return nil
}

// ResumeIfInterrupted restarts a crawl the previous process left in
// flight. The resume runs in the background; returns immediately.
func (w *Worker) ResumeIfInterrupted(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		resumed, err := w.crawler.Resume(ctx)
		if err != nil {
			w.log.Error().Err(err).Msg("resume failed")
			return
		}
		if !resumed {
			w.log.Debug().Msg("no interrupted crawl to resume")
		}
	}()
}

// publishStatus answers GET_STATUS with a snapshot assembled from the
// store and the crawler
func (w *Worker) publishStatus(ctx context.Context) error {
	state, err := w.store.LoadState(ctx)
	if err != nil {
		return err
	}
	listings, err := w.store.Listings(ctx)
	if err != nil {
		return err
	}

	crawlState := w.crawler.State()
	running := crawlState == crawl.StateRunning || crawlState == crawl.StatePaginating

	return w.pub.Publish(ctx, publisher.Event{
		Type:         publisher.EventStatus,
		RunID:        w.crawler.RunID(),
		Message:      string(crawlState),
		IsRunning:    running,
		PagesScraped: state.PagesScraped,
		TotalRecords: len(listings),
		DetectedSite: string(w.crawler.Site()),
		At:           time.Now(),
	})
}

// Wait blocks until any background crawl launched by this worker has
// finished
func (w *Worker) Wait() {
	w.wg.Wait()
}

// Listen consumes commands from a redis pub/sub channel until the
// context is cancelled. Malformed payloads and command errors are
// logged and reported on the event stream; they never stop the loop.
func (w *Worker) Listen(ctx context.Context, client *redis.Client, channel string) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	// fail fast when redis is unreachable
	if _, err := sub.Receive(ctx); err != nil {
		return scrapeerrors.NewConfiguration("subscribe to "+channel, err)
	}

	w.log.Info().Str("channel", channel).Msg("listening for commands")
	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				w.wg.Wait()
				return nil
			}
			var cmd Command
			if err := json.Unmarshal([]byte(msg.Payload), &cmd); err != nil {
				w.log.Warn().Err(err).Str("payload", msg.Payload).Msg("ignoring malformed command")
				continue
			}
			if err := w.HandleCommand(ctx, cmd); err != nil {
				w.log.Error().Err(err).Str("type", string(cmd.Type)).Msg("command failed")
				if perr := w.pub.Publish(ctx, publisher.Log("", err.Error(), "error")); perr != nil {
					w.log.Warn().Err(perr).Msg("event publish failed")
				}
			}
		}
	}
}
