package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	cfg := LoadConfig()
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "landscraper:events", cfg.EventStream)
	assert.Equal(t, "landscraper:commands", cfg.CommandChannel)
	assert.Equal(t, "localhost:11211", cfg.MemcacheAddr)
	assert.Equal(t, 3*time.Second, cfg.PageDelay)
	assert.Equal(t, 0, cfg.MaxPages)
	assert.False(t, cfg.ScrapeDetails)
	assert.False(t, cfg.FilterLocations)
	assert.Nil(t, cfg.TargetLocations)

	// Test with environment variables
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("PAGE_DELAY_SECONDS", "0.5")
	os.Setenv("MAX_PAGES", "10")
	os.Setenv("SCRAPE_DETAILS", "true")
	os.Setenv("TARGET_LOCATIONS", "Nugegoda, Maharagama ,Dehiwala")
	os.Setenv("IKMAN_URL", "https://example.com/land")

	cfg = LoadConfig()
	assert.Equal(t, "redis.example.com:6379", cfg.RedisAddr)
	assert.Equal(t, 1, cfg.RedisDB)
	assert.Equal(t, 500*time.Millisecond, cfg.PageDelay)
	assert.Equal(t, 10, cfg.MaxPages)
	assert.True(t, cfg.ScrapeDetails)
	assert.Equal(t, []string{"Nugegoda", "Maharagama", "Dehiwala"}, cfg.TargetLocations)
	assert.Equal(t, "https://example.com/land", cfg.IkmanURL)

	// Clean up
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("PAGE_DELAY_SECONDS")
	os.Unsetenv("MAX_PAGES")
	os.Unsetenv("SCRAPE_DETAILS")
	os.Unsetenv("TARGET_LOCATIONS")
	os.Unsetenv("IKMAN_URL")
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	assert.NoError(t, cfg.Validate())

	cfg.RedisAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.MaxPages = -1
	assert.Error(t, cfg.Validate())
}
