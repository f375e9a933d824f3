package collector

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/marketpeek/amazon-competitor-scraper/internal/models"
)

// Score component weights. Brand is all-or-nothing, the rest scale with the
// observed difference up to their cap.
const (
	brandWeight       = 0.3
	priceCap          = 0.3
	priceFallback     = 0.1
	vocabularyCap     = 0.3
	categoriesCap     = 0.2
	maxDistinguishing = 1.0
)

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// Ranker orders collected candidates by how strongly they differ from a
// reference product. A higher distinguishing score means a more interesting
// competitor.
type Ranker struct {
	maxCompetitive int
}

func NewRanker(maxCompetitive int) *Ranker {
	return &Ranker{maxCompetitive: maxCompetitive}
}

// Score computes the distinguishing score of cand relative to ref. The
// result is deterministic in the two records and lies in [0, 1].
func (r *Ranker) Score(ref, cand *models.CrawlCandidate) float64 {
	score := 0.0

	if !strings.EqualFold(ref.Specification("manufacturer"), cand.Specification("manufacturer")) {
		score += brandWeight
	}

	score += priceComponent(ref.PriceText(), cand.PriceText())
	score += divergence(wordSet(ref.DescriptionText()), wordSet(cand.DescriptionText()), vocabularyCap)
	score += divergence(
		mapset.NewSet(ref.Record.Details.Categories...),
		mapset.NewSet(cand.Record.Details.Categories...),
		categoriesCap,
	)

	return min(maxDistinguishing, score)
}

// Select scores every non-seed candidate against ref, writes the score back
// onto the candidate, and returns the top candidates in descending score
// order. Ties keep discovery order, so reruns over the same pages produce
// the same ranking.
func (r *Ranker) Select(ref *models.CrawlCandidate, candidates []*models.CrawlCandidate) []*models.CrawlCandidate {
	ranked := make([]*models.CrawlCandidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.IsSeed || cand.ASIN == ref.ASIN {
			continue
		}
		cand.DistinguishingScore = r.Score(ref, cand)
		ranked = append(ranked, cand)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistinguishingScore > ranked[j].DistinguishingScore
	})

	if r.maxCompetitive > 0 && len(ranked) > r.maxCompetitive {
		ranked = ranked[:r.maxCompetitive]
	}
	return ranked
}

// priceComponent scales the relative price gap into [0, priceCap]. When
// either price is unparseable or non-positive there is no basis for
// comparison, so a modest fixed difference is assumed.
func priceComponent(refPrice, candPrice string) float64 {
	a, errA := parsePrice(refPrice)
	b, errB := parsePrice(candPrice)
	if errA != nil || errB != nil {
		return priceFallback
	}
	maxPrice := max(a, b)
	if maxPrice <= 0 {
		return priceFallback
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return min(priceCap, diff/maxPrice)
}

func parsePrice(text string) (float64, error) {
	return strconv.ParseFloat(nonPriceChars.ReplaceAllString(text, ""), 64)
}

// divergence is the symmetric difference of the two sets relative to the
// larger one, scaled into [0, limit]. Two empty sets have nothing to
// diverge on and contribute zero.
func divergence(a, b mapset.Set[string], limit float64) float64 {
	larger := max(a.Cardinality(), b.Cardinality())
	if larger == 0 {
		return 0
	}
	ratio := float64(a.SymmetricDifference(b).Cardinality()) / float64(larger)
	return min(limit, ratio)
}

func wordSet(text string) mapset.Set[string] {
	return mapset.NewSet(strings.Fields(strings.ToLower(text))...)
}
