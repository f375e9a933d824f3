// The scrape command fetches a single Amazon product page and prints the
// extracted record as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/marketpeek/amazon-competitor-scraper/internal/amazon"
	"github.com/marketpeek/amazon-competitor-scraper/internal/browser"
	"github.com/marketpeek/amazon-competitor-scraper/internal/config"
	"github.com/marketpeek/amazon-competitor-scraper/internal/extract"
	"github.com/marketpeek/amazon-competitor-scraper/internal/scraper"
	"github.com/marketpeek/amazon-competitor-scraper/pkg/logger"
)

func main() {
	var (
		url       = pflag.String("url", "", "Amazon product URL to scrape")
		selectors = pflag.String("selectors", "", "Optional selector overrides file (YAML or JSON)")
		headless  = pflag.Bool("headless", true, "Run the browser headless")
	)
	pflag.Parse()

	if *url == "" {
		log.Fatal("missing required -url flag")
	}
	if !amazon.IsProductURL(*url) {
		log.Fatalf("not an Amazon product URL: %s", *url)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	slog.SetDefault(logger.New(cfg.Logging.Level, cfg.Logging.Format))

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

	acquirer := scraper.NewAcquirer(scraper.NewBrowserOpener(session), cfg.ScraperOptions())
	html, err := acquirer.Acquire(ctx, *url)
	if err != nil {
		slog.Error("failed to acquire page", "url", *url, "error", err)
		os.Exit(1)
	}

	record := extract.New(sel).Product(html)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		slog.Error("failed to encode product record", "error", err)
		os.Exit(1)
	}
}
