// Package amazon holds product URL and identifier logic shared by the
// extractors and the collector. A product identifier (ASIN) is the 10
// character alphanumeric code in the /dp/, /gp/product/ or /product/ path
// segment; two URLs naming the same ASIN are the same product.
package amazon

import (
	"fmt"
	"regexp"
	"strings"
)

const BaseURL = "https://www.amazon.com"

var (
	asinPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/dp/([A-Z0-9]{10})(?:[/?]|$)`),
		regexp.MustCompile(`/gp/product/([A-Z0-9]{10})(?:[/?]|$)`),
		regexp.MustCompile(`/product/([A-Z0-9]{10})(?:[/?]|$)`),
	}

	marketplacePattern = regexp.MustCompile(`amazon\.(com|co\.uk|de|fr|it|es|ca|jp|in)`)
	productPathPattern = regexp.MustCompile(`/(dp|gp/product|product)/[A-Z0-9]{10}`)

	// Matches absolute product links in raw markup, with an optional title
	// slug before /dp/ and an optional trailing path. Related links are often
	// embedded in JSON blobs rather than reachable anchors, so this runs on
	// the raw HTML, not the parsed DOM.
	relatedLinkPattern = regexp.MustCompile(`(?i)https?://www\.amazon\.com(?:/[^/"\s]+)?/dp/([A-Z0-9]{10})(?:/[^"\s]*)?`)
)

// ExtractASIN pulls the product identifier out of a URL.
func ExtractASIN(url string) (string, bool) {
	for _, pattern := range asinPatterns {
		if m := pattern.FindStringSubmatch(url); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

// IsProductURL reports whether url is a plausible Amazon product URL: an
// absolute HTTP(S) URL on a known marketplace domain with an identifier
// path segment.
func IsProductURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	if !marketplacePattern.MatchString(url) {
		return false
	}
	return productPathPattern.MatchString(url)
}

// CanonicalURL builds the canonical https://www.amazon.com/dp/<ASIN> form.
func CanonicalURL(asin string) string {
	return fmt.Sprintf("%s/dp/%s", BaseURL, strings.ToUpper(asin))
}

// ExtractRelatedLinks scans raw markup for absolute product URLs and returns
// them in canonical form, deduplicated by ASIN with first-seen order
// preserved.
func ExtractRelatedLinks(html string) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, m := range relatedLinkPattern.FindAllStringSubmatch(html, -1) {
		asin := strings.ToUpper(m[1])
		if _, ok := seen[asin]; ok {
			continue
		}
		seen[asin] = struct{}{}
		links = append(links, CanonicalURL(asin))
	}
	return links
}
