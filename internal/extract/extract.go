// Package extract turns raw Amazon product markup into a ProductRecord.
// Every field extractor is independent and fallback-chained: the first
// selector or pattern yielding a non-empty, validated value wins, and a
// field that cannot be found simply stays absent.
package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marketpeek/amazon-competitor-scraper/internal/textutil"
)

// Extractor runs the field extraction chains against parsed markup.
type Extractor struct {
	sel    *Selectors
	logger *slog.Logger
}

func New(sel *Selectors) *Extractor {
	if sel == nil {
		sel = DefaultSelectors()
	}
	return &Extractor{
		sel:    sel,
		logger: slog.Default().With("component", "extractor"),
	}
}

// firstText walks the selector list and returns the first non-empty
// normalized text match.
func firstText(doc *goquery.Document, selectors []string) *string {
	for _, selector := range selectors {
		text := textutil.Normalize(doc.Find(selector).First().Text())
		if text != "" {
			return &text
		}
	}
	return nil
}

// firstSelection walks the selector list and returns all matches of the
// first selector that matches anything.
func firstSelection(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// firstIn tries the selectors against a single container and returns the
// first element found.
func firstIn(container *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := container.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}
	return nil
}

// splitKeyValue splits a detail line into a key/value pair on the first
// separator present in the text. Both sides must be non-empty.
func splitKeyValue(text string) (string, string, bool) {
	for _, separator := range []string{":", "•", "-", "–"} {
		if !strings.Contains(text, separator) {
			continue
		}
		parts := strings.SplitN(text, separator, 2)
		key := textutil.Normalize(parts[0])
		value := textutil.Normalize(parts[1])
		if key != "" && value != "" {
			return key, value, true
		}
	}
	return "", "", false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
