package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductRecord is the structured output of a single page extraction. Fields
// the extractors could not find stay nil; absence is never an error.
type ProductRecord struct {
	Title              *string        `json:"title,omitempty"`
	Price              *string        `json:"price,omitempty"`
	Description        *string        `json:"description,omitempty"`
	MainImageURL       *string        `json:"main_image_url,omitempty"`
	RelatedProductURLs []string       `json:"related_product_urls,omitempty"`
	Reviews            []ReviewRecord `json:"reviews,omitempty"`
	Details            DetailsRecord  `json:"details"`
}

// ReviewRecord is a single customer review. Rating is kept as display text
// (a numeric-looking string); reviews reached through the primary extraction
// path always carry one.
type ReviewRecord struct {
	Title            *string `json:"title,omitempty"`
	Rating           *string `json:"rating,omitempty"`
	Text             *string `json:"text,omitempty"`
	Reviewer         *string `json:"reviewer,omitempty"`
	Date             *string `json:"date,omitempty"`
	VerifiedPurchase bool    `json:"verified_purchase"`
}

// DetailsRecord holds availability, breadcrumb categories and the
// specification table. Specification keys are lowercase.
type DetailsRecord struct {
	Availability   *string           `json:"availability,omitempty"`
	Categories     []string          `json:"categories,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// CrawlCandidate wraps a ProductRecord with crawl metadata. It is created
// once per successfully acquired page and only the ranker mutates it, to set
// DistinguishingScore.
type CrawlCandidate struct {
	ID                  string        `json:"id"`
	SourceURL           string        `json:"source_url"`
	ASIN                string        `json:"asin"`
	IsSeed              bool          `json:"is_seed"`
	DiscoveredAt        time.Time     `json:"discovered_at"`
	DistinguishingScore float64       `json:"distinguishing_score"`
	Record              ProductRecord `json:"record"`
}

func NewCrawlCandidate(sourceURL, asin string, isSeed bool, record ProductRecord) *CrawlCandidate {
	return &CrawlCandidate{
		ID:           uuid.NewString(),
		SourceURL:    sourceURL,
		ASIN:         asin,
		IsSeed:       isSeed,
		DiscoveredAt: time.Now(),
		Record:       record,
	}
}

// Title returns the extracted title or an empty string.
func (c *CrawlCandidate) Title() string {
	if c.Record.Title == nil {
		return ""
	}
	return *c.Record.Title
}

// PriceText returns the raw price display text or an empty string.
func (c *CrawlCandidate) PriceText() string {
	if c.Record.Price == nil {
		return ""
	}
	return *c.Record.Price
}

// DescriptionText returns the description or an empty string.
func (c *CrawlCandidate) DescriptionText() string {
	if c.Record.Description == nil {
		return ""
	}
	return *c.Record.Description
}

// Specification looks up a specification value by its lowercase key.
func (c *CrawlCandidate) Specification(key string) string {
	return c.Record.Details.Specifications[key]
}
