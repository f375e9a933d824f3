package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/marketpeek/amazon-competitor-scraper/internal/amazon"
	"github.com/marketpeek/amazon-competitor-scraper/internal/textutil"
)

func (e *Extractor) title(doc *goquery.Document) *string {
	title := firstText(doc, e.sel.Title)
	if title == nil {
		e.logger.Warn("could not find product title")
	}
	return title
}

// price walks the selector chain keeping only candidates containing a digit,
// then scans text nodes for currency-bearing strings, then falls back to
// metadata tags. No match leaves the field absent; a placeholder price is
// never fabricated.
func (e *Extractor) price(doc *goquery.Document) *string {
	for _, selector := range e.sel.Price {
		var found *string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := textutil.Normalize(s.Text())
			if text != "" && containsDigit(text) {
				found = &text
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	if price := scanCurrencyTextNodes(doc); price != nil {
		return price
	}

	meta := doc.Find(`meta[property="product:price:amount"], meta[itemprop="price"]`).First()
	if content, ok := meta.Attr("content"); ok {
		text := textutil.Normalize(content)
		if text != "" {
			return &text
		}
	}

	e.logger.Warn("could not find product price using any method")
	return nil
}

// scanCurrencyTextNodes looks for any text node carrying a currency symbol
// and at least one digit. Script and style bodies are skipped.
func scanCurrencyTextNodes(doc *goquery.Document) *string {
	var found *string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := textutil.Normalize(n.Data)
			if text != "" && containsDigit(text) &&
				(strings.Contains(text, "$") || strings.Contains(text, "€") || strings.Contains(text, "£")) {
				found = &text
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range doc.Nodes {
		walk(node)
	}
	return found
}

// description prefers the feature-bullet block joined by newlines, falling
// back to the dedicated description section.
func (e *Extractor) description(doc *goquery.Document) *string {
	var bullets []string
	doc.Find("#feature-bullets ul li span.a-list-item").Each(func(_ int, s *goquery.Selection) {
		if text := textutil.Normalize(s.Text()); text != "" {
			bullets = append(bullets, text)
		}
	})
	if len(bullets) > 0 {
		joined := strings.Join(bullets, "\n")
		return &joined
	}

	block := doc.Find("#productDescription")
	if block.Length() > 0 {
		text := textutil.Normalize(block.Find("p").First().Text())
		if text == "" {
			text = textutil.Normalize(block.Text())
		}
		if text != "" {
			return &text
		}
	}

	e.logger.Warn("could not find product description")
	return nil
}

func (e *Extractor) mainImage(doc *goquery.Document) *string {
	if src, ok := doc.Find("#imgTagWrapperId img").First().Attr("src"); ok && src != "" {
		return &src
	}
	if src, ok := doc.Find("#landingImage").First().Attr("src"); ok && src != "" {
		return &src
	}
	e.logger.Warn("could not find main product image")
	return nil
}

// relatedLinks runs against raw markup rather than the parsed DOM: related
// product URLs frequently live in embedded JSON blobs.
func (e *Extractor) relatedLinks(rawHTML string) []string {
	return amazon.ExtractRelatedLinks(rawHTML)
}
