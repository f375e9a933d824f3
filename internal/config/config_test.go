package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 20*time.Second, cfg.Browser.NavTimeout)
	assert.Equal(t, 5, cfg.Scraper.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Scraper.RetryDelay)
	assert.Equal(t, 10, cfg.Collector.MaxProducts)
	assert.Equal(t, 5, cfg.Collector.MaxCompetitiveProducts)
	assert.Equal(t, 20, cfg.Collector.MaxAttempts)
	assert.Equal(t, 3, cfg.Collector.LinksPerProduct)
	assert.Equal(t, time.Second, cfg.Collector.Pacing)
	assert.Equal(t, 60*time.Second, cfg.Collector.CollectTimeout)
	assert.Equal(t, "memory", cfg.Frontier.Type)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("SCRAPER_MAX_ATTEMPTS", "3")
	t.Setenv("COLLECTOR_PACING", "500ms")
	t.Setenv("FRONTIER_TYPE", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 3, cfg.Scraper.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Collector.Pacing)
	assert.Equal(t, "redis", cfg.Frontier.Type)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SCRAPER_MAX_ATTEMPTS", "lots")
	t.Setenv("COLLECTOR_PACING", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Scraper.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Collector.Pacing)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Frontier.Type = "kafka"
	assert.Error(t, cfg.Validate())

	cfg.Frontier.Type = "memory"
	cfg.Collector.MaxCompetitiveProducts = cfg.Collector.MaxProducts + 1
	assert.Error(t, cfg.Validate())
}

func TestOptionMapping(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	browserOpts := cfg.BrowserOptions()
	assert.Equal(t, cfg.Browser.NavTimeout, browserOpts.NavTimeout)

	scraperOpts := cfg.ScraperOptions()
	assert.Equal(t, cfg.Scraper.MaxAttempts, scraperOpts.MaxAttempts)

	collectorOpts := cfg.CollectorOptions()
	assert.Equal(t, cfg.Collector.MaxProducts, collectorOpts.MaxProducts)
}
