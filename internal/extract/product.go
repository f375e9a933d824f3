package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marketpeek/amazon-competitor-scraper/internal/models"
)

// Product runs every field extractor against the markup and assembles a
// ProductRecord. It is a deterministic function of its input and never
// fails: fields the page does not carry stay absent. Related-link discovery
// intentionally sees the raw markup as well as the parsed document.
func (e *Extractor) Product(rawHTML string) models.ProductRecord {
	var record models.ProductRecord

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		e.logger.Warn("failed to parse markup", "error", err)
		record.RelatedProductURLs = e.relatedLinks(rawHTML)
		return record
	}

	record.Title = e.title(doc)
	record.Price = e.price(doc)
	record.Description = e.description(doc)
	record.MainImageURL = e.mainImage(doc)
	record.RelatedProductURLs = e.relatedLinks(rawHTML)
	record.Reviews = e.reviews(doc)
	record.Details = e.details(doc)

	return record
}
