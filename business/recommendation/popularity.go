package recommendation

import (
	"math"

	"smartshop/domain"
)

// logNorm compresses value into [0,1] against cap using log10 so a single
// viral product does not dominate linearly.
func logNorm(value, cap float64) float64 {
	if value < 0 {
		value = 0
	}
	if cap <= 0 {
		return 0
	}
	return math.Log10(1+value) / math.Log10(1+cap)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Popularity converts a product's raw engagement counters into a normalized
// 0..1 score. Purchase-related signals carry the bulk of the default weight:
// popularity should track "leads to sales", not just visibility.
//
// The counters are untrusted (no validation happens at write time), so every
// denominator is guarded and the result is clamped.
func Popularity(p domain.Product, w PopularityWeights) float64 {
	impressions := float64(p.Impressions)
	if impressions < 1 {
		impressions = 1
	}

	views := math.Max(0, float64(p.Views))
	clicks := math.Max(0, float64(p.Clicks))
	addToCart := math.Max(0, float64(p.AddToCart))
	purchases := math.Max(0, float64(p.Purchases))
	rating := math.Max(0, p.Rating)
	reviewCount := math.Max(0, float64(p.ReviewCount))

	clickRate := clicks / impressions
	cartRate := 0.0
	purchaseRate := 0.0
	if p.Impressions > 0 {
		cartRate = addToCart / impressions
		purchaseRate = purchases / impressions
	}
	conversionRate := 0.0
	if clicks > 0 {
		conversionRate = purchases / clicks
	}

	engagement := w.Views*logNorm(views, w.ViewsCap) +
		w.Clicks*logNorm(clicks, w.ClicksCap) +
		w.ClickRate*clickRate +
		w.CartRate*cartRate +
		w.PurchaseRate*purchaseRate +
		w.ConversionRate*conversionRate +
		w.Rating*(rating/5) +
		w.ReviewCount*logNorm(reviewCount, w.ReviewsCap)

	return clamp01(engagement)
}
