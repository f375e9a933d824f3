package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReviews(t *testing.T) {
	html := `<div>
		<div data-hook="review">
			<a data-hook="review-title"><span>Great sound</span></a>
			<i data-hook="review-star-rating"><span>4.5 out of 5 stars</span></i>
			<span data-hook="review-body"><span>Impressive bass for the price point.</span></span>
			<span data-hook="review-author">Jordan</span>
			<span data-hook="review-date">Reviewed on June 3, 2025</span>
			<span data-hook="avp-badge">Verified Purchase</span>
		</div>
		<div data-hook="review">
			<a data-hook="review-title"><span>Meh</span></a>
			<i data-hook="review-star-rating"><span>3 out of 5 stars</span></i>
			<span data-hook="review-body"><span>Average build quality.</span></span>
		</div>
	</div>`

	reviews := New(nil).reviews(parseDoc(t, html))
	require.Len(t, reviews, 2)

	first := reviews[0]
	require.NotNil(t, first.Title)
	assert.Equal(t, "Great sound", *first.Title)
	require.NotNil(t, first.Rating)
	assert.Equal(t, "4.5", *first.Rating)
	require.NotNil(t, first.Text)
	assert.Equal(t, "Impressive bass for the price point.", *first.Text)
	require.NotNil(t, first.Reviewer)
	assert.Equal(t, "Jordan", *first.Reviewer)
	require.NotNil(t, first.Date)
	assert.Equal(t, "Reviewed on June 3, 2025", *first.Date)
	assert.True(t, first.VerifiedPurchase)

	second := reviews[1]
	require.NotNil(t, second.Rating)
	assert.Equal(t, "3", *second.Rating)
	assert.False(t, second.VerifiedPurchase)
}

func TestReviewWithoutRatingIsExcluded(t *testing.T) {
	html := `<div>
		<div data-hook="review">
			<a data-hook="review-title"><span>No stars shown</span></a>
			<span data-hook="review-body"><span>This review has no rating element at all.</span></span>
		</div>
		<div data-hook="review">
			<i data-hook="review-star-rating"><span>five stars, honestly</span></i>
			<span data-hook="review-body"><span>Rating text with no numeric token.</span></span>
		</div>
		<div data-hook="review">
			<i data-hook="review-star-rating"><span>5 out of 5 stars</span></i>
			<span data-hook="review-body"><span>Kept because the rating parses.</span></span>
		</div>
	</div>`

	reviews := New(nil).reviews(parseDoc(t, html))
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Rating)
	assert.Equal(t, "5", *reviews[0].Rating)
}

func TestReviewFallbackOnLongTextBlocks(t *testing.T) {
	long := strings.Repeat("Really solid product that I use every single day. ", 3)
	html := `<div>
		<div class="customer-review-snippet">` + long + `</div>
		<span class="review-highlight">too short</span>
	</div>`

	reviews := New(nil).reviews(parseDoc(t, html))
	require.Len(t, reviews, 1)

	fallback := reviews[0]
	assert.Nil(t, fallback.Rating, "fallback reviews carry no rating")
	require.NotNil(t, fallback.Text)
	assert.Greater(t, len(*fallback.Text), 50)
	assert.False(t, fallback.VerifiedPurchase)
}

func TestReviewFirstMatchingSelectorWins(t *testing.T) {
	// One review reachable via data-hook and a second only via the generic
	// .review class. The data-hook selector matches first, so only its
	// containers are used.
	html := `<div>
		<div data-hook="review">
			<i data-hook="review-star-rating"><span>4 out of 5 stars</span></i>
			<span data-hook="review-body"><span>From the winning selector.</span></span>
		</div>
		<div class="review">
			<i data-hook="review-star-rating"><span>1 out of 5 stars</span></i>
			<span data-hook="review-body"><span>From a later selector, ignored.</span></span>
		</div>
	</div>`

	reviews := New(nil).reviews(parseDoc(t, html))
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Text)
	assert.Equal(t, "From the winning selector.", *reviews[0].Text)
}
