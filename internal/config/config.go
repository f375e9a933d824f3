// Package config assembles runtime configuration from environment
// variables. Every knob has a default that works out of the box; unset or
// malformed values silently fall back.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/marketpeek/amazon-competitor-scraper/internal/browser"
	"github.com/marketpeek/amazon-competitor-scraper/internal/collector"
	"github.com/marketpeek/amazon-competitor-scraper/internal/scraper"
)

type Config struct {
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Collector CollectorConfig
	Frontier  FrontierConfig
	Output    OutputConfig
	Logging   LoggingConfig
}

type BrowserConfig struct {
	Headless       bool
	NavTimeout     time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	TimezoneID     string
}

type ScraperConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
	SettleDelay time.Duration
}

type CollectorConfig struct {
	MaxProducts            int
	MaxCompetitiveProducts int
	MaxAttempts            int
	LinksPerProduct        int
	Pacing                 time.Duration
	CollectTimeout         time.Duration
}

type FrontierConfig struct {
	// Type selects the frontier backend, "memory" or "redis".
	Type          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

type OutputConfig struct {
	ResultPath    string
	SelectorsPath string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			NavTimeout:     getDurationOrDefault("BROWSER_NAV_TIMEOUT", 20*time.Second),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", browser.DefaultOptions().UserAgent),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1280),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 800),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-US"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "America/New_York"),
		},
		Scraper: ScraperConfig{
			MaxAttempts: getIntOrDefault("SCRAPER_MAX_ATTEMPTS", 5),
			RetryDelay:  getDurationOrDefault("SCRAPER_RETRY_DELAY", 2*time.Second),
			SettleDelay: getDurationOrDefault("SCRAPER_SETTLE_DELAY", 2*time.Second),
		},
		Collector: CollectorConfig{
			MaxProducts:            getIntOrDefault("COLLECTOR_MAX_PRODUCTS", 10),
			MaxCompetitiveProducts: getIntOrDefault("COLLECTOR_MAX_COMPETITIVE_PRODUCTS", 5),
			MaxAttempts:            getIntOrDefault("COLLECTOR_MAX_ATTEMPTS", 20),
			LinksPerProduct:        getIntOrDefault("COLLECTOR_LINKS_PER_PRODUCT", 3),
			Pacing:                 getDurationOrDefault("COLLECTOR_PACING", time.Second),
			CollectTimeout:         getDurationOrDefault("COLLECTOR_COLLECT_TIMEOUT", 60*time.Second),
		},
		Frontier: FrontierConfig{
			Type:          getEnvOrDefault("FRONTIER_TYPE", "memory"),
			RedisAddr:     getEnvOrDefault("FRONTIER_REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnvOrDefault("FRONTIER_REDIS_PASSWORD", ""),
			RedisDB:       getIntOrDefault("FRONTIER_REDIS_DB", 0),
			RedisKey:      getEnvOrDefault("FRONTIER_REDIS_KEY", "collector:frontier"),
		},
		Output: OutputConfig{
			ResultPath:    getEnvOrDefault("OUTPUT_RESULT_PATH", "crawl_result.json"),
			SelectorsPath: getEnvOrDefault("OUTPUT_SELECTORS_PATH", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.MaxAttempts < 1 {
		return fmt.Errorf("SCRAPER_MAX_ATTEMPTS must be at least 1")
	}
	if c.Collector.MaxProducts < 1 {
		return fmt.Errorf("COLLECTOR_MAX_PRODUCTS must be at least 1")
	}
	if c.Collector.MaxCompetitiveProducts > c.Collector.MaxProducts {
		return fmt.Errorf("COLLECTOR_MAX_COMPETITIVE_PRODUCTS cannot exceed COLLECTOR_MAX_PRODUCTS")
	}
	if c.Frontier.Type != "memory" && c.Frontier.Type != "redis" {
		return fmt.Errorf("FRONTIER_TYPE must be memory or redis, got %q", c.Frontier.Type)
	}
	return nil
}

// BrowserOptions maps the browser section onto session options.
func (c *Config) BrowserOptions() *browser.Options {
	return &browser.Options{
		Headless:       c.Browser.Headless,
		NavTimeout:     c.Browser.NavTimeout,
		UserAgent:      c.Browser.UserAgent,
		ViewportWidth:  c.Browser.ViewportWidth,
		ViewportHeight: c.Browser.ViewportHeight,
		Locale:         c.Browser.Locale,
		TimezoneID:     c.Browser.TimezoneID,
	}
}

// ScraperOptions maps the scraper section onto acquisition options.
func (c *Config) ScraperOptions() scraper.Options {
	return scraper.Options{
		MaxAttempts: c.Scraper.MaxAttempts,
		RetryDelay:  c.Scraper.RetryDelay,
		SettleDelay: c.Scraper.SettleDelay,
	}
}

// CollectorOptions maps the collector section onto crawl options.
func (c *Config) CollectorOptions() collector.Options {
	return collector.Options{
		MaxProducts:            c.Collector.MaxProducts,
		MaxCompetitiveProducts: c.Collector.MaxCompetitiveProducts,
		MaxAttempts:            c.Collector.MaxAttempts,
		LinksPerProduct:        c.Collector.LinksPerProduct,
		Pacing:                 c.Collector.Pacing,
		CollectTimeout:         c.Collector.CollectTimeout,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
