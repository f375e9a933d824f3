package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marketpeek/amazon-competitor-scraper/internal/models"
	"github.com/marketpeek/amazon-competitor-scraper/internal/textutil"
)

// details assembles availability, breadcrumb categories and the
// specification table. Specification keys are lowercased and later matches
// for the same key overwrite earlier ones.
func (e *Extractor) details(doc *goquery.Document) models.DetailsRecord {
	record := models.DetailsRecord{
		Specifications: e.specifications(doc),
		Categories:     e.categories(doc),
	}
	record.Availability = firstText(doc, e.sel.Availability)
	return record
}

// specifications reads the first matching detail container: table rows give
// header→value pairs, list items are split on common separators.
func (e *Extractor) specifications(doc *goquery.Document) map[string]string {
	specs := make(map[string]string)

	var container *goquery.Selection
	for _, selector := range e.sel.DetailContainers {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	if container == nil {
		e.logger.Warn("could not find product detail section")
		return specs
	}

	container.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := textutil.Normalize(row.Find("th").First().Text())
		value := textutil.Normalize(row.Find("td").First().Text())
		if header != "" && value != "" {
			specs[strings.ToLower(header)] = value
		}
	})

	container.Find("li, .a-list-item").Each(func(_ int, item *goquery.Selection) {
		text := textutil.Normalize(item.Text())
		if key, value, ok := splitKeyValue(text); ok {
			specs[strings.ToLower(key)] = value
		}
	})

	return specs
}

// categories collects anchor text inside the first matching breadcrumb
// container, normalized and filtered to non-empty.
func (e *Extractor) categories(doc *goquery.Document) []string {
	for _, selector := range e.sel.Breadcrumbs {
		breadcrumb := doc.Find(selector).First()
		if breadcrumb.Length() == 0 {
			continue
		}
		var categories []string
		breadcrumb.Find("a").Each(func(_ int, anchor *goquery.Selection) {
			if text := textutil.Normalize(anchor.Text()); text != "" {
				categories = append(categories, text)
			}
		})
		if len(categories) > 0 {
			return categories
		}
	}
	return nil
}
