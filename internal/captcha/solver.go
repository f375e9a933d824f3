package captcha

import (
	"context"
	"errors"
)

// ErrSolverUnavailable is returned when no solving service is configured.
var ErrSolverUnavailable = errors.New("captcha solver not configured")

// Solver integrates with an external CAPTCHA solving service. The crawl
// pipeline treats solving as an external concern: a solver either returns a
// solution token or fails, and the acquisition loop falls back to tab-retry
// either way.
type Solver interface {
	Solve(ctx context.Context, siteKey, pageURL string) (string, error)
}

// NoopSolver is the default Solver. It never solves anything.
type NoopSolver struct{}

func (NoopSolver) Solve(ctx context.Context, siteKey, pageURL string) (string, error) {
	return "", ErrSolverUnavailable
}
