// The collector command crawls an Amazon product page and its related
// products, ranks the collected competitors against the seed, and writes
// the result as JSON.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/marketpeek/amazon-competitor-scraper/internal/browser"
	"github.com/marketpeek/amazon-competitor-scraper/internal/collector"
	"github.com/marketpeek/amazon-competitor-scraper/internal/config"
	"github.com/marketpeek/amazon-competitor-scraper/internal/extract"
	"github.com/marketpeek/amazon-competitor-scraper/internal/scraper"
	"github.com/marketpeek/amazon-competitor-scraper/internal/storage"
	"github.com/marketpeek/amazon-competitor-scraper/pkg/logger"
)

func main() {
	var (
		seedURL   = pflag.String("url", "", "Amazon product URL to crawl from")
		outPath   = pflag.String("out", "", "Result file path (default from OUTPUT_RESULT_PATH)")
		selectors = pflag.String("selectors", "", "Optional selector overrides file (YAML or JSON)")
		headless  = pflag.Bool("headless", true, "Run the browser headless")
	)
	pflag.Parse()

	if *seedURL == "" {
		log.Fatal("missing required -url flag")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *outPath == "" {
		*outPath = cfg.Output.ResultPath
	}
	if *selectors == "" {
		*selectors = cfg.Output.SelectorsPath
	}

	slog.SetDefault(logger.New(cfg.Logging.Level, cfg.Logging.Format))
	slog.Info("starting competitor crawl", "url", *seedURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sel, err := extract.LoadSelectors(*selectors)
	if err != nil {
		slog.Error("failed to load selectors", "path", *selectors, "error", err)
		os.Exit(1)
	}

	browserOpts := cfg.BrowserOptions()
	browserOpts.Headless = *headless && cfg.Browser.Headless

	session := browser.NewSession(browserOpts)
	defer session.Close()

	if err := session.Initialize(); err != nil {
		slog.Error("failed to start browser session", "error", err)
		os.Exit(1)
	}

	frontier, closeFrontier, err := buildFrontier(ctx, cfg)
	if err != nil {
		slog.Error("failed to build frontier", "error", err)
		os.Exit(1)
	}
	defer closeFrontier()

	acquirer := scraper.NewAcquirer(scraper.NewBrowserOpener(session), cfg.ScraperOptions())
	c := collector.New(acquirer, extract.New(sel), frontier, cfg.CollectorOptions())

	startedAt := time.Now()
	seed, competitors, err := c.Crawl(ctx, *seedURL)
	if err != nil {
		slog.Error("crawl failed", "url", *seedURL, "error", err)
		os.Exit(1)
	}

	result := &storage.CrawlResult{
		SeedURL:     *seedURL,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		Seed:        seed,
		Competitive: competitors,
		Collected:   c.Products(),
	}

	store := storage.NewResultStore(*outPath)
	if err := store.Save(result); err != nil {
		slog.Error("failed to save crawl result", "path", *outPath, "error", err)
		os.Exit(1)
	}

	stats := store.Stats(result)
	slog.Info("crawl complete",
		"path", *outPath,
		"collected", stats["collected"],
		"competitive", stats["competitive"])
}

func buildFrontier(ctx context.Context, cfg *config.Config) (collector.Frontier, func(), error) {
	if cfg.Frontier.Type != "redis" {
		return collector.NewMemoryFrontier(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Frontier.RedisAddr,
		Password: cfg.Frontier.RedisPassword,
		DB:       cfg.Frontier.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}
	return collector.NewRedisFrontier(client, cfg.Frontier.RedisKey), func() { client.Close() }, nil
}
