package recommendation

import (
	"math"

	"smartshop/domain"
)

// Similarity scores how alike two products are from shared attributes,
// returning 0..1. It is written anchor-relative (a is the anchor) but every
// term is symmetric, so the result is the same either way round.
//
// A missing attribute on either side skips its term: no contribution, no
// penalty.
func Similarity(a, b domain.Product, w SimilarityWeights) float64 {
	score := 0.0

	if a.Category != "" && b.Category != "" && a.Category == b.Category {
		score += w.Category
	}

	if a.Brand != "" && b.Brand != "" && a.Brand == b.Brand {
		score += w.Brand
	}

	// price proximity relative to the pair's average price
	diff := math.Abs(a.Price - b.Price)
	avgPrice := (a.Price + b.Price) / 2
	relativeDiff := 0.0
	if avgPrice > 0 {
		relativeDiff = diff / avgPrice
	}
	score += w.Price * (1 - math.Min(1, relativeDiff))

	score += w.Rating * (1 - math.Min(1, math.Abs(a.Rating-b.Rating)/5))

	if a.Subcategory != "" && b.Subcategory != "" && a.Subcategory == b.Subcategory {
		score += w.Subcategory
	}

	return clamp01(score)
}
