package extract

import (
	"fmt"

	"github.com/spf13/viper"
)

// Selectors holds the ordered selector lists the field extractors walk.
// Amazon markup drifts over time, so the lists are swappable through an
// external file without code changes.
type Selectors struct {
	Title            []string `mapstructure:"title"`
	Price            []string `mapstructure:"price"`
	ReviewContainers []string `mapstructure:"review_containers"`
	DetailContainers []string `mapstructure:"detail_containers"`
	Availability     []string `mapstructure:"availability"`
	Breadcrumbs      []string `mapstructure:"breadcrumbs"`

	// Minimum normalized text length for the class-based review fallback.
	MinReviewLength int `mapstructure:"min_review_length"`
}

// DefaultSelectors returns the compiled-in selector lists.
func DefaultSelectors() *Selectors {
	return &Selectors{
		Title: []string{
			"#productTitle",
			"span.a-size-large.product-title-word-break",
		},
		Price: []string{
			"span.a-price.a-text-price.a-size-medium span.a-offscreen",
			"span.a-price.apexPriceToPay span.a-offscreen",
			"#priceblock_ourprice",
			"#priceblock_dealprice",
			"#priceblock_saleprice",
			"span.priceToPay span.a-offscreen",
			"div#corePrice_feature_div span.a-offscreen",
			"div#olp_feature_div span.a-color-price",
			".a-price .a-offscreen",
			"#price",
			"#price_inside_buybox",
			"#newBuyBoxPrice",
			"#tp_price_block_total_price_ww .a-offscreen",
			".a-section .a-price .a-offscreen",
			"#corePrice_desktop .a-offscreen",
		},
		ReviewContainers: []string{
			"#customer-reviews-content",
			"div[data-hook='review']",
			".review",
			"#cm-cr-dp-review-list .review",
			".a-section.review",
			"div[data-hook='review-section']",
		},
		DetailContainers: []string{
			"#prodDetails",
			"#productDetails",
			"#detailBullets",
			"#technicalDetails",
			".detail-bullets",
			"#detailBulletsWrapper_feature_div",
			"#productDescription",
			"#feature-bullets",
			"#technicalSpecifications_feature_div",
			".a-section.a-spacing-small.a-spacing-top-small",
		},
		Availability: []string{
			"#availability",
			".a-color-success",
			".a-color-price",
			"#availability-string",
		},
		Breadcrumbs: []string{
			"#wayfinding-breadcrumbs_feature_div",
			".a-breadcrumb",
			"#nav-subnav",
		},
		MinReviewLength: 50,
	}
}

// LoadSelectors returns the defaults overlaid with values from a YAML or
// JSON file. An empty path yields the defaults unchanged.
func LoadSelectors(path string) (*Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read selectors file: %w", err)
	}
	if err := v.Unmarshal(sel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selectors file: %w", err)
	}
	if sel.MinReviewLength <= 0 {
		sel.MinReviewLength = DefaultSelectors().MinReviewLength
	}
	return sel, nil
}
