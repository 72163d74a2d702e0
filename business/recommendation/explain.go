package recommendation

import (
	"fmt"

	"smartshop/domain"
)

// Boosters records which scoring rules fired for a candidate so the result
// can explain itself to the shopper.
type Boosters struct {
	// SimilarTo is the anchor product when similarity crossed the booster
	// threshold.
	SimilarTo *domain.Product

	// Brand / Category hold the matched preference values.
	Brand    string
	Category string

	PriceAffinity bool
	Discount      bool
}

type Explanation struct {
	Tags   []string
	Reason string
}

// BuildExplanation derives the display tags and the single headline reason.
// Tags accumulate everything that applies; the reason is the first match in
// priority order: similar > brand > category > price > trending > discount.
func BuildExplanation(b Boosters, isTrending bool) Explanation {
	var tags []string
	var reasons []string

	if b.SimilarTo != nil {
		tags = append(tags, "Similar to what you viewed")
		reasons = append(reasons, fmt.Sprintf("Similar to %s", b.SimilarTo.Name))
	}
	if b.Brand != "" {
		tags = append(tags, "Because you like this brand")
		reasons = append(reasons, fmt.Sprintf("You engaged with %s", b.Brand))
	}
	if b.Category != "" {
		tags = append(tags, "Because you browsed this category")
		reasons = append(reasons, fmt.Sprintf("You viewed %s items", b.Category))
	}
	if b.PriceAffinity {
		tags = append(tags, "In your price range")
		reasons = append(reasons, "Matches your typical price range")
	}
	if isTrending {
		tags = append(tags, "Trending now")
		reasons = append(reasons, "Popular with other shoppers right now")
	}
	if b.Discount {
		tags = append(tags, "On sale")
		reasons = append(reasons, "Great discount available")
	}

	reason := "Recommended for you"
	if len(reasons) > 0 {
		reason = reasons[0]
	}

	return Explanation{Tags: dedupe(tags), Reason: reason}
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
