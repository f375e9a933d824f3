package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrFrontierEmpty means the crawl frontier has no pending URLs.
var ErrFrontierEmpty = errors.New("frontier is empty")

// Frontier is the FIFO of product URLs waiting to be visited. Duplicate
// suppression is not the frontier's job; the collector skips URLs whose
// ASIN it has already seen.
type Frontier interface {
	Push(ctx context.Context, url string) error
	Pop(ctx context.Context) (string, error)
	Len(ctx context.Context) (int, error)
}

// MemoryFrontier is the default in-process frontier.
type MemoryFrontier struct {
	mu   sync.Mutex
	urls []string
}

func NewMemoryFrontier() *MemoryFrontier {
	return &MemoryFrontier{}
}

func (f *MemoryFrontier) Push(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return nil
}

func (f *MemoryFrontier) Pop(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.urls) == 0 {
		return "", ErrFrontierEmpty
	}
	url := f.urls[0]
	f.urls = f.urls[1:]
	return url, nil
}

func (f *MemoryFrontier) Len(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls), nil
}

// RedisFrontier backs the frontier with a Redis list so a crawl can resume
// after a restart or be shared across processes.
type RedisFrontier struct {
	client *redis.Client
	key    string
}

func NewRedisFrontier(client *redis.Client, key string) *RedisFrontier {
	if key == "" {
		key = "collector:frontier"
	}
	return &RedisFrontier{client: client, key: key}
}

func (f *RedisFrontier) Push(ctx context.Context, url string) error {
	if err := f.client.LPush(ctx, f.key, url).Err(); err != nil {
		return fmt.Errorf("failed to push url to frontier: %w", err)
	}
	return nil
}

func (f *RedisFrontier) Pop(ctx context.Context) (string, error) {
	url, err := f.client.RPop(ctx, f.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrFrontierEmpty
	}
	if err != nil {
		return "", fmt.Errorf("failed to pop url from frontier: %w", err)
	}
	return url, nil
}

func (f *RedisFrontier) Len(ctx context.Context) (int, error) {
	n, err := f.client.LLen(ctx, f.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read frontier length: %w", err)
	}
	return int(n), nil
}
