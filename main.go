package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Anusara14/land-scraper/config"
	"github.com/Anusara14/land-scraper/internal/crawl"
	"github.com/Anusara14/land-scraper/logger"
	"github.com/Anusara14/land-scraper/services/cache"
	"github.com/Anusara14/land-scraper/services/publisher"
	"github.com/Anusara14/land-scraper/services/store"
	"github.com/Anusara14/land-scraper/services/worker"
)

func main() {
	exportMode := flag.Bool("export", false, "write the stored listings to CSV and exit")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("ikman_url", cfg.IkmanURL).
		Str("lankaland_url", cfg.LankaLandURL).
		Dur("page_delay", cfg.PageDelay).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One redis client backs the state store, the event stream and the
	// command channel
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	defer client.Close()

	recordStore := store.NewRecordStore(store.NewRedisKVWithClient(client, cfg.StateKeyPrefix))

	if *exportMode {
		if err := exportListings(ctx, recordStore, cfg.ExportPath); err != nil {
			log.Fatal().Err(err).Msg("Export failed")
		}
		log.Info().Str("path", cfg.ExportPath).Msg("Export complete")
		return
	}

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	pub := publisher.NewRedisPublisherWithClient(client, cfg.EventStream, cfg.EventStreamMaxLen)
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)

	crawler := crawl.New(crawl.Deps{
		Store:       recordStore,
		Pub:         pub,
		Cache:       cacheService,
		BlockTime:   cfg.FetchBlockTime,
		SettleDelay: cfg.SettleDelay,
		DetailDelay: cfg.DetailDelay,
		MaxPages:    cfg.MaxPages,
	})

	w := worker.New(crawler, recordStore, pub)
	w.DefaultStartURL = cfg.IkmanURL

	// Pick up a crawl the previous process left in flight
	w.ResumeIfInterrupted(ctx)

	// Start the command listener in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Str("channel", cfg.CommandChannel).Msg("Starting command worker")
		workerDone <- w.Listen(ctx, client, cfg.CommandChannel)
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		crawler.Stop()
		cancel()
		w.Wait()
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// exportListings writes the stored listings to a CSV file at path
func exportListings(ctx context.Context, recordStore *store.RecordStore, path string) error {
	listings, err := recordStore.Listings(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return store.ExportCSV(f, listings)
}
