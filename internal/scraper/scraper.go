// Package scraper implements the page acquisition loop: navigate, detect
// bot challenges, and retry through fresh tabs within the same browsing
// context until the page comes back clean or the attempt ceiling is hit.
package scraper

import (
	"context"
	"errors"
)

var (
	// ErrInvalidURL marks input rejected before any network activity.
	ErrInvalidURL = errors.New("invalid Amazon product URL")

	// ErrChallengeExhausted means every attempt came back challenged.
	ErrChallengeExhausted = errors.New("bot challenge persisted through all attempts")
)

// Page is the minimal navigation surface the acquisition loop needs from a
// browser tab.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Content() (string, error)
	Close() error
}

// PageOpener yields fresh pages within one shared browsing context. Fresh
// pages carry the context's cookies and identity, which is what makes the
// tab-retry idiom work: many challenges are scoped to the stale tab.
type PageOpener interface {
	NewPage() (Page, error)
}
