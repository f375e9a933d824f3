// Package browser owns the Playwright browser process and its isolated
// browsing context for the lifetime of a crawl session.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless       bool
	NavTimeout     time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	TimezoneID     string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:       true,
		NavTimeout:     30 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		ViewportWidth:  1280,
		ViewportHeight: 800,
		Locale:         "en-US",
		TimezoneID:     "America/New_York",
	}
}

// Session owns one browser process and one browsing context. All pages it
// hands out share the context's cookies and identity but not navigation
// state. Initialize is idempotent and mutex-guarded so concurrent first use
// never launches two browsers.
type Session struct {
	mu      sync.Mutex
	opts    *Options
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	warm    playwright.Page
	logger  *slog.Logger
}

func NewSession(opts *Options) *Session {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Session{
		opts:   opts,
		logger: slog.Default().With("component", "browser"),
	}
}

// Initialize launches the browser process and context if not already live.
// Stale state from a previous failed launch is torn down first.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked()
}

func (s *Session) initLocked() error {
	if s.browser != nil && s.browser.IsConnected() {
		return nil
	}
	s.closeLocked()

	s.logger.Info("initializing browser session")

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--disable-gpu",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(s.opts.UserAgent),
		Viewport: &playwright.Size{
			Width:  s.opts.ViewportWidth,
			Height: s.opts.ViewportHeight,
		},
		Locale:            playwright.String(s.opts.Locale),
		TimezoneId:        playwright.String(s.opts.TimezoneID),
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
		HasTouch:          playwright.Bool(false),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("failed to create browser context: %w", err)
	}

	// A parked page keeps the process and context warm; without it the
	// browser reclaims the context between scrapes.
	warm, err := browserCtx.NewPage()
	if err == nil {
		if _, gotoErr := warm.Goto("about:blank"); gotoErr != nil {
			s.logger.Warn("failed to park warm page", "error", gotoErr)
		}
	} else {
		s.logger.Warn("failed to open warm page", "error", err)
	}

	s.pw = pw
	s.browser = browser
	s.context = browserCtx
	s.warm = warm

	s.logger.Info("browser session initialized")
	return nil
}

// NewPage ensures the session is initialized and opens a fresh page within
// the shared context. Every call yields an independent tab.
func (s *Session) NewPage() (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.initLocked(); err != nil {
		return nil, err
	}

	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(s.opts.NavTimeout.Milliseconds()))

	return &Page{page: page, navTimeout: s.opts.NavTimeout}, nil
}

// Close releases the context, then the browser process, then the automation
// driver. Each step is best-effort; a failure does not stop the remaining
// teardown. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	var errs []error

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.logger.Error("failed to close browser context", "error", err)
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		s.context = nil
		s.warm = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Error("failed to close browser", "error", err)
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		s.browser = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			s.logger.Error("failed to stop playwright", "error", err)
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		s.pw = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// Page wraps a Playwright tab with the navigation surface the acquisition
// loop uses.
type Page struct {
	page       playwright.Page
	navTimeout time.Duration
}

// Navigate loads url and waits for DOMContentLoaded.
func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(p.navTimeout.Milliseconds())),
	})
	return err
}

// Content returns the page's current markup.
func (p *Page) Content() (string, error) {
	return p.page.Content()
}

func (p *Page) Close() error {
	return p.page.Close()
}
