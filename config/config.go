package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration (state store, events, commands)
	RedisAddr           string
	RedisDB             int
	EventStream         string
	EventStreamMaxLen   int
	CommandChannel      string
	StateKeyPrefix      string

	// Memcache configuration (fetch cooldown cache)
	MemcacheAddr string

	// Crawl configuration
	IkmanURL           string
	LankaLandURL       string
	PageDelay          time.Duration
	DetailDelay        time.Duration
	SettleDelay        time.Duration
	MaxPages           int
	FetchBlockTime     time.Duration
	ScrapeDetails      bool
	FilterLocations    bool
	TargetLocations    []string

	// Export
	ExportPath string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("EVENT_STREAM_MAX_LENGTH", "500"))
	pageDelay, _ := strconv.ParseFloat(getEnv("PAGE_DELAY_SECONDS", "3"), 64)
	detailDelay, _ := strconv.ParseFloat(getEnv("DETAIL_DELAY_SECONDS", "1.5"), 64)
	settleDelay, _ := strconv.ParseFloat(getEnv("SETTLE_DELAY_SECONDS", "2"), 64)
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "0"))
	blockTime, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "500"))

	return &Config{
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           redisDB,
		EventStream:       getEnv("EVENT_STREAM", "landscraper:events"),
		EventStreamMaxLen: streamMaxLen,
		CommandChannel:    getEnv("COMMAND_CHANNEL", "landscraper:commands"),
		StateKeyPrefix:    getEnv("STATE_KEY_PREFIX", "landscraper"),
		MemcacheAddr:      getEnv("MEMCACHE_ADDR", "localhost:11211"),
		IkmanURL:          getEnv("IKMAN_URL", "https://ikman.lk/en/ads/sri-lanka/land"),
		LankaLandURL:      getEnv("LANKALAND_URL", "https://www.lankaland.lk/category/land-for-sale"),
		PageDelay:         time.Duration(pageDelay * float64(time.Second)),
		DetailDelay:       time.Duration(detailDelay * float64(time.Second)),
		SettleDelay:       time.Duration(settleDelay * float64(time.Second)),
		MaxPages:          maxPages,
		FetchBlockTime:    time.Duration(blockTime) * time.Second,
		ScrapeDetails:     getEnv("SCRAPE_DETAILS", "false") == "true",
		FilterLocations:   getEnv("FILTER_LOCATIONS", "false") == "true",
		TargetLocations:   splitList(getEnv("TARGET_LOCATIONS", "")),
		ExportPath:        getEnv("EXPORT_PATH", "land_listings.csv"),
		Environment:       getEnv("LAND_SCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if c.EventStream == "" {
		return fmt.Errorf("EVENT_STREAM must not be empty")
	}
	if c.CommandChannel == "" {
		return fmt.Errorf("COMMAND_CHANNEL must not be empty")
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("PAGE_DELAY_SECONDS must not be negative")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("MAX_PAGES must not be negative")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated env value into trimmed entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
