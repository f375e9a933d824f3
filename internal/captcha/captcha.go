// Package captcha classifies raw page markup as challenged or clean.
package captcha

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IsChallenged reports whether the markup looks like a bot-detection
// interstitial rather than real page content. The checks are intentionally
// broad: a false positive only costs a tab-retry, a false negative pollutes
// the extracted data.
func IsChallenged(html string) bool {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "recaptcha") || strings.Contains(lower, "captcha") {
		return true
	}
	if strings.Contains(html, "Type the characters you see") {
		return true
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find("#captchacharacters").Length() > 0
}
