// Package collector drives the competitor crawl: fetch a seed product,
// follow its related-product links breadth first, dedup by ASIN, and rank
// everything collected by how strongly it differs from the seed.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marketpeek/amazon-competitor-scraper/internal/amazon"
	"github.com/marketpeek/amazon-competitor-scraper/internal/extract"
	"github.com/marketpeek/amazon-competitor-scraper/internal/models"
	"github.com/marketpeek/amazon-competitor-scraper/internal/ratelimit"
)

// ErrInvalidURL marks a URL rejected before any network activity.
var ErrInvalidURL = errors.New("not an Amazon product URL")

// PageAcquirer fetches clean markup for a product URL, retrying through bot
// challenges as needed.
type PageAcquirer interface {
	Acquire(ctx context.Context, url string) (string, error)
}

type Options struct {
	// MaxProducts bounds the whole crawl, seed included.
	MaxProducts int
	// MaxCompetitiveProducts bounds both successful neighbor collections
	// and the final ranked selection.
	MaxCompetitiveProducts int
	// MaxAttempts bounds frontier pops per neighbor crawl, counting skips
	// and failures.
	MaxAttempts int
	// LinksPerProduct is how many related links each collected product
	// feeds back into the frontier.
	LinksPerProduct int
	// Pacing is the minimum spacing between page loads.
	Pacing time.Duration
	// CollectTimeout bounds a single product collection end to end.
	CollectTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxProducts:            10,
		MaxCompetitiveProducts: 5,
		MaxAttempts:            20,
		LinksPerProduct:        3,
		Pacing:                 time.Second,
		CollectTimeout:         60 * time.Second,
	}
}

// Collector owns the crawl state. Safe for a single crawl at a time per
// instance; the internal index is still guarded so concurrent Collect calls
// cannot register the same ASIN twice.
type Collector struct {
	acquirer  PageAcquirer
	extractor *extract.Extractor
	frontier  Frontier
	ranker    *Ranker
	pacer     ratelimit.Pacer
	opts      Options
	logger    *slog.Logger

	mu     sync.Mutex
	byASIN map[string]*models.CrawlCandidate
	order  []*models.CrawlCandidate
}

func New(acquirer PageAcquirer, extractor *extract.Extractor, frontier Frontier, opts Options) *Collector {
	def := DefaultOptions()
	if opts.MaxProducts <= 0 {
		opts.MaxProducts = def.MaxProducts
	}
	if opts.MaxCompetitiveProducts <= 0 {
		opts.MaxCompetitiveProducts = def.MaxCompetitiveProducts
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.LinksPerProduct <= 0 {
		opts.LinksPerProduct = def.LinksPerProduct
	}
	// Pacing zero means unset; negative disables pacing outright.
	if opts.Pacing == 0 {
		opts.Pacing = def.Pacing
	}
	if opts.CollectTimeout <= 0 {
		opts.CollectTimeout = def.CollectTimeout
	}
	return &Collector{
		acquirer:  acquirer,
		extractor: extractor,
		frontier:  frontier,
		ranker:    NewRanker(opts.MaxCompetitiveProducts),
		pacer:     ratelimit.NewSimplePacer(opts.Pacing, opts.Pacing),
		opts:      opts,
		logger:    slog.Default().With("component", "collector"),
		byASIN:    make(map[string]*models.CrawlCandidate),
	}
}

// Collect fetches one product page, extracts it, registers the candidate
// under its ASIN and feeds its first related links into the frontier.
// Re-collecting a known ASIN is a no-op that returns the existing candidate
// without touching the network.
func (c *Collector) Collect(ctx context.Context, url string, isSeed bool) (*models.CrawlCandidate, error) {
	if !amazon.IsProductURL(url) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	asin, ok := amazon.ExtractASIN(url)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	if existing := c.lookup(asin); existing != nil {
		c.logger.Info("product already collected", "asin", asin)
		return existing, nil
	}

	c.logger.Info("collecting product", "url", url, "asin", asin, "seed", isSeed)

	collectCtx, cancel := context.WithTimeout(ctx, c.opts.CollectTimeout)
	defer cancel()

	html, err := c.acquirer.Acquire(collectCtx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s: %w", url, err)
	}

	record := c.extractor.Product(html)
	candidate := models.NewCrawlCandidate(url, asin, isSeed, record)

	candidate = c.register(candidate)

	enqueued := 0
	for _, related := range record.RelatedProductURLs {
		if enqueued >= c.opts.LinksPerProduct {
			break
		}
		if err := c.frontier.Push(ctx, related); err != nil {
			c.logger.Warn("failed to enqueue related link", "url", related, "error", err)
			continue
		}
		enqueued++
	}

	c.logger.Info("collected product",
		"asin", asin, "title", candidate.Title(), "related_enqueued", enqueued)
	return candidate, nil
}

// CollectNeighbors drains the frontier until enough competitors are
// collected, the attempt budget runs out, the frontier empties, or the
// overall product cap is hit. Every pop counts as an attempt, including
// ASINs skipped as already known. It returns the ranked competitive
// selection relative to ref.
func (c *Collector) CollectNeighbors(ctx context.Context, ref *models.CrawlCandidate) []*models.CrawlCandidate {
	collected := 0
	attempts := 0

	for collected < c.opts.MaxCompetitiveProducts &&
		attempts < c.opts.MaxAttempts &&
		c.size() < c.opts.MaxProducts {

		if ctx.Err() != nil {
			break
		}

		url, err := c.frontier.Pop(ctx)
		if errors.Is(err, ErrFrontierEmpty) {
			break
		}
		if err != nil {
			c.logger.Warn("frontier pop failed", "error", err)
			break
		}
		attempts++

		if asin, ok := amazon.ExtractASIN(url); ok && c.lookup(asin) != nil {
			continue
		}

		if _, err := c.Collect(ctx, url, false); err != nil {
			c.logger.Warn("neighbor collection failed", "url", url, "error", err)
		} else {
			collected++
		}

		if err := c.pacer.Wait(ctx); err != nil {
			break
		}
	}

	return c.ranker.Select(ref, c.Products())
}

// Crawl runs the full pipeline for one seed URL. A failed seed aborts the
// crawl; without the reference product there is nothing to rank against.
func (c *Collector) Crawl(ctx context.Context, seedURL string) (*models.CrawlCandidate, []*models.CrawlCandidate, error) {
	seed, err := c.Collect(ctx, seedURL, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect seed product: %w", err)
	}

	competitors := c.CollectNeighbors(ctx, seed)
	c.logger.Info("crawl finished",
		"collected", c.size(), "competitive", len(competitors))
	return seed, competitors, nil
}

// Products returns every collected candidate in discovery order.
func (c *Collector) Products() []*models.CrawlCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.CrawlCandidate, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Collector) lookup(asin string) *models.CrawlCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byASIN[asin]
}

// register indexes the candidate, or returns the already registered one if
// a concurrent Collect got there first.
func (c *Collector) register(candidate *models.CrawlCandidate) *models.CrawlCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byASIN[candidate.ASIN]; ok {
		return existing
	}
	c.byASIN[candidate.ASIN] = candidate
	c.order = append(c.order, candidate)
	return candidate
}

func (c *Collector) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
