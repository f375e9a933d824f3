package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "product title id",
			html:     `<span id="productTitle">  Anker Soundcore   Life Q20 </span>`,
			expected: "Anker Soundcore Life Q20",
		},
		{
			name:     "fallback title class",
			html:     `<span class="a-size-large product-title-word-break">Echo Dot</span>`,
			expected: "Echo Dot",
		},
		{
			name:     "no title",
			html:     `<div>nothing here</div>`,
			expected: "",
		},
	}

	e := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := e.title(parseDoc(t, tt.html))
			if tt.expected == "" {
				assert.Nil(t, title)
			} else {
				require.NotNil(t, title)
				assert.Equal(t, tt.expected, *title)
			}
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name: "offscreen price span",
			html: `<span class="a-price a-text-price a-size-medium">
				<span class="a-offscreen">$19.99</span></span>`,
			expected: "$19.99",
		},
		{
			name:     "legacy price block",
			html:     `<span id="priceblock_ourprice">$249.00</span>`,
			expected: "$249.00",
		},
		{
			name: "candidate without digits is skipped",
			html: `<span class="a-price"><span class="a-offscreen">Price unavailable</span></span>
				<span id="price_inside_buybox">$12.50</span>`,
			expected: "$12.50",
		},
		{
			name:     "currency text-node fallback",
			html:     `<div><p>Limited offer</p><p>Now only €24,99 while stocks last</p></div>`,
			expected: "Now only €24,99 while stocks last",
		},
		{
			name:     "currency in script is ignored",
			html:     `<script>var p = "$9.99";</script><div>no visible price</div>`,
			expected: "",
		},
		{
			name:     "meta tag fallback",
			html:     `<meta property="product:price:amount" content="34.95"><div>text without currency</div>`,
			expected: "34.95",
		},
		{
			name:     "no price anywhere stays absent",
			html:     `<div id="productTitle">Just a title</div>`,
			expected: "",
		},
	}

	e := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := e.price(parseDoc(t, tt.html))
			if tt.expected == "" {
				assert.Nil(t, price)
			} else {
				require.NotNil(t, price)
				assert.Equal(t, tt.expected, *price)
			}
		})
	}
}

func TestExtractDescription(t *testing.T) {
	t.Run("feature bullets joined by newline", func(t *testing.T) {
		html := `<div id="feature-bullets"><ul>
			<li><span class="a-list-item"> Active noise cancelling </span></li>
			<li><span class="a-list-item">40h   playtime</span></li>
		</ul></div>`
		desc := New(nil).description(parseDoc(t, html))
		require.NotNil(t, desc)
		assert.Equal(t, "Active noise cancelling\n40h playtime", *desc)
	})

	t.Run("falls back to description paragraph", func(t *testing.T) {
		html := `<div id="productDescription"><p> Wireless headphones with   deep bass. </p></div>`
		desc := New(nil).description(parseDoc(t, html))
		require.NotNil(t, desc)
		assert.Equal(t, "Wireless headphones with deep bass.", *desc)
	})

	t.Run("description block without paragraph", func(t *testing.T) {
		html := `<div id="productDescription">Plain block text.</div>`
		desc := New(nil).description(parseDoc(t, html))
		require.NotNil(t, desc)
		assert.Equal(t, "Plain block text.", *desc)
	})

	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, New(nil).description(parseDoc(t, `<div>nothing</div>`)))
	})
}

func TestExtractMainImage(t *testing.T) {
	t.Run("primary wrapper image", func(t *testing.T) {
		html := `<div id="imgTagWrapperId"><img src="https://m.media-amazon.com/images/I/primary.jpg"></div>
			<img id="landingImage" src="https://m.media-amazon.com/images/I/landing.jpg">`
		img := New(nil).mainImage(parseDoc(t, html))
		require.NotNil(t, img)
		assert.Equal(t, "https://m.media-amazon.com/images/I/primary.jpg", *img)
	})

	t.Run("landing image fallback", func(t *testing.T) {
		html := `<img id="landingImage" src="https://m.media-amazon.com/images/I/landing.jpg">`
		img := New(nil).mainImage(parseDoc(t, html))
		require.NotNil(t, img)
		assert.Equal(t, "https://m.media-amazon.com/images/I/landing.jpg", *img)
	})

	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, New(nil).mainImage(parseDoc(t, `<div></div>`)))
	})
}
