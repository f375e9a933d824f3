// Package storage persists crawl results as a JSON document on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/marketpeek/amazon-competitor-scraper/internal/models"
)

// CrawlResult is the serialized outcome of one crawl: the seed product and
// the ranked competitive selection, plus everything else collected along
// the way.
type CrawlResult struct {
	SeedURL     string                   `json:"seed_url"`
	StartedAt   time.Time                `json:"started_at"`
	FinishedAt  time.Time                `json:"finished_at"`
	Seed        *models.CrawlCandidate   `json:"seed"`
	Competitive []*models.CrawlCandidate `json:"competitive"`
	Collected   []*models.CrawlCandidate `json:"collected"`
}

// ResultStore reads and writes crawl results at a fixed path. Writes go
// through a temp file and rename so a crash never leaves a half-written
// document behind.
type ResultStore struct {
	mu       sync.Mutex
	filename string
}

func NewResultStore(filename string) *ResultStore {
	return &ResultStore{filename: filename}
}

func (s *ResultStore) Save(result *CrawlResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal crawl result: %w", err)
	}

	tmp := s.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write crawl result: %w", err)
	}
	if err := os.Rename(tmp, s.filename); err != nil {
		return fmt.Errorf("failed to finalize crawl result: %w", err)
	}
	return nil
}

func (s *ResultStore) Load() (*CrawlResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read crawl result: %w", err)
	}

	var result CrawlResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal crawl result: %w", err)
	}
	return &result, nil
}

// Stats summarizes a result for log output.
func (s *ResultStore) Stats(result *CrawlResult) map[string]int {
	return map[string]int{
		"collected":   len(result.Collected),
		"competitive": len(result.Competitive),
	}
}
