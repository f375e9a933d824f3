package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marketpeek/amazon-competitor-scraper/internal/models"
	"github.com/marketpeek/amazon-competitor-scraper/internal/textutil"
)

// First integer or decimal token in a rating string ("4.5 out of 5 stars").
var ratingRe = regexp.MustCompile(`\d*\.\d+|\d+`)

// reviews walks the review-container selector chain; the first selector that
// matches anything is used for every container. A review without a
// determinable numeric rating is excluded. If no selector matches at all,
// the class-based long-text fallback produces text-only reviews, which are
// exempt from the rating requirement.
func (e *Extractor) reviews(doc *goquery.Document) []models.ReviewRecord {
	var reviews []models.ReviewRecord

	containers := firstSelection(doc, e.sel.ReviewContainers)
	if containers != nil {
		containers.Each(func(_ int, container *goquery.Selection) {
			if review, ok := e.reviewFromContainer(container); ok {
				reviews = append(reviews, review)
			}
		})
	}

	if len(reviews) == 0 {
		reviews = e.fallbackReviews(doc)
	}
	if len(reviews) == 0 {
		e.logger.Warn("could not find any reviews")
	}
	return reviews
}

func (e *Extractor) reviewFromContainer(container *goquery.Selection) (models.ReviewRecord, bool) {
	var review models.ReviewRecord

	if el := firstIn(container,
		"a[data-hook='review-title'] span",
		".review-title span",
		"[data-hook='review-title']",
	); el != nil {
		if text := textutil.Normalize(el.Text()); text != "" {
			review.Title = &text
		}
	}

	// Rating is mandatory on this path.
	ratingEl := firstIn(container,
		"i[data-hook='review-star-rating'] span",
		".review-rating span",
		"[data-hook='review-star-rating']",
		".a-icon-alt",
	)
	if ratingEl == nil {
		return review, false
	}
	rating := ratingRe.FindString(textutil.Normalize(ratingEl.Text()))
	if rating == "" {
		return review, false
	}
	review.Rating = &rating

	if el := firstIn(container,
		"span[data-hook='review-body'] span",
		".review-text",
		"[data-hook='review-body']",
		".review-text-content span",
	); el != nil {
		if text := textutil.Normalize(el.Text()); text != "" {
			review.Text = &text
		}
	}

	if el := firstIn(container,
		"span[data-hook='review-author']",
		".a-profile-name",
		"[data-hook='review-author']",
	); el != nil {
		if text := textutil.Normalize(el.Text()); text != "" {
			review.Reviewer = &text
		}
	}

	if el := firstIn(container,
		"span[data-hook='review-date']",
		".review-date",
		"[data-hook='review-date']",
	); el != nil {
		if text := textutil.Normalize(el.Text()); text != "" {
			review.Date = &text
		}
	}

	if el := firstIn(container,
		"span[data-hook='avp-badge']",
		".a-color-state",
		"[data-hook='avp-badge']",
	); el != nil {
		badge := strings.ToLower(textutil.Normalize(el.Text()))
		review.VerifiedPurchase = strings.Contains(badge, "verified purchase")
	}

	return review, true
}

// fallbackReviews collects block elements whose class mentions "review" and
// whose normalized text is long enough to look like a review body.
func (e *Extractor) fallbackReviews(doc *goquery.Document) []models.ReviewRecord {
	var reviews []models.ReviewRecord
	doc.Find("div, span").Each(func(_ int, s *goquery.Selection) {
		class, ok := s.Attr("class")
		if !ok || !strings.Contains(strings.ToLower(class), "review") {
			return
		}
		text := textutil.Normalize(s.Text())
		if len(text) > e.sel.MinReviewLength {
			body := text
			reviews = append(reviews, models.ReviewRecord{Text: &body})
		}
	})
	return reviews
}
