package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marketpeek/amazon-competitor-scraper/internal/captcha"
)

// Options bound a single URL's acquisition.
type Options struct {
	// MaxAttempts is the total navigation attempts per URL, including the
	// first one.
	MaxAttempts int
	// RetryDelay is the fixed backoff inserted before each retry.
	RetryDelay time.Duration
	// SettleDelay is the post-navigation wait that lets above-the-fold
	// content populate after DOMContentLoaded.
	SettleDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxAttempts: 5,
		RetryDelay:  2 * time.Second,
		SettleDelay: 2 * time.Second,
	}
}

// Acquirer fetches raw markup for product URLs through a page session.
type Acquirer struct {
	session PageOpener
	opts    Options
	solver  captcha.Solver
	logger  *slog.Logger
}

func NewAcquirer(session PageOpener, opts Options) *Acquirer {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	return &Acquirer{
		session: session,
		opts:    opts,
		solver:  captcha.NoopSolver{},
		logger:  slog.Default().With("component", "acquirer"),
	}
}

// WithSolver swaps in a CAPTCHA solving service. A solver failure for any
// reason falls back to the tab-retry path.
func (a *Acquirer) WithSolver(solver captcha.Solver) *Acquirer {
	if solver != nil {
		a.solver = solver
	}
	return a
}

// Acquire navigates to url and returns the page markup. Navigation waits for
// DOMContentLoaded rather than network idle, which is unreliable against
// pages with persistent background requests. A challenged or failed attempt
// discards the current page, opens a fresh one in the same context and
// retries after a fixed backoff, up to the attempt ceiling. The stale page
// is always closed before returning.
//
// Per-URL state machine: Navigating -> Challenged -> Navigating(retry),
// Navigating -> Error -> Navigating(retry), Navigating -> Clean -> Done,
// retries exhausted -> Failed.
func (a *Acquirer) Acquire(ctx context.Context, url string) (string, error) {
	page, err := a.session.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, a.opts.RetryDelay); err != nil {
				page.Close()
				return "", err
			}
		}

		if err := page.Navigate(ctx, url); err != nil {
			lastErr = err
			a.logger.Warn("navigation failed",
				"url", url, "attempt", attempt, "max_attempts", a.opts.MaxAttempts, "error", err)
			if page, err = a.replacePage(page); err != nil {
				return "", err
			}
			continue
		}

		if err := sleepCtx(ctx, a.opts.SettleDelay); err != nil {
			page.Close()
			return "", err
		}

		html, err := page.Content()
		if err != nil {
			lastErr = err
			a.logger.Warn("failed to read page content",
				"url", url, "attempt", attempt, "error", err)
			if page, err = a.replacePage(page); err != nil {
				return "", err
			}
			continue
		}

		if captcha.IsChallenged(html) {
			lastErr = ErrChallengeExhausted
			if _, err := a.solver.Solve(ctx, "", url); err != nil {
				a.logger.Warn("bot challenge detected, retrying with fresh tab",
					"url", url, "attempt", attempt, "max_attempts", a.opts.MaxAttempts, "solver", err)
			}
			if page, err = a.replacePage(page); err != nil {
				return "", err
			}
			continue
		}

		page.Close()
		return html, nil
	}

	page.Close()
	return "", fmt.Errorf("failed to acquire %s after %d attempts: %w", url, a.opts.MaxAttempts, lastErr)
}

// replacePage closes the stale page and opens a fresh one in the same
// context. Exactly one page handle is live at any point in the retry loop.
func (a *Acquirer) replacePage(stale Page) (Page, error) {
	if err := stale.Close(); err != nil {
		a.logger.Warn("failed to close stale page", "error", err)
	}
	fresh, err := a.session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open fresh page: %w", err)
	}
	return fresh, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
