package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"smartshop/domain"
	"smartshop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
}

// Service is the recommendation engine. It is stateless: every call scores a
// fresh snapshot from the repository against the caller's user context and
// never mutates either. Counter increments happen in the route layer, not
// here, so concurrent calls need no coordination.
type Service struct {
	productRepo ProductRepository
	weights     Weights
}

func NewService(productRepo ProductRepository, weights Weights) *Service {
	return &Service{
		productRepo: productRepo,
		weights:     weights,
	}
}

// ---- personalized recommendations ----

// Recommend ranks the full catalog for the given user context and returns at
// most limit candidates, blending personalized picks with trending ones for
// discovery. excludeIDs are hard-excluded (e.g. items already in the cart).
//
// limit == 0 yields an empty result; a negative limit is a programmer error.
// An empty catalog yields an empty result, not an error.
func (s *Service) Recommend(ctx context.Context, userCtx domain.UserContext, limit int, excludeIDs []string) ([]domain.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit < 0 {
		return nil, errors.New("limit cannot be negative")
	}
	if limit == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load product snapshot", err)
		return nil, fmt.Errorf("load products: %w", err)
	}
	if len(products) == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	excludeSet := toSet(excludeIDs)
	preferredCategories := toSet(userCtx.PreferredCategories)
	preferredBrands := toSet(userCtx.PreferredBrands)

	anchor := s.resolveAnchor(products, userCtx)

	now := time.Now()
	ew := s.weights.Engine

	scored := make([]domain.ScoredCandidate, 0, len(products))
	for _, p := range products {
		if _, excluded := excludeSet[p.ID]; excluded {
			continue
		}

		basePopularity := Popularity(p, s.weights.Popularity)
		score := ew.Popularity * basePopularity
		var boosters Boosters

		// personalization boosts
		if len(preferredCategories) > 0 && p.Category != "" {
			if _, ok := preferredCategories[p.Category]; ok {
				score += ew.CategoryBoost
				boosters.Category = p.Category
			}
		}
		if len(preferredBrands) > 0 && p.Brand != "" {
			if _, ok := preferredBrands[p.Brand]; ok {
				score += ew.BrandBoost
				boosters.Brand = p.Brand
			}
		}

		// price range: reward in-range, penalize out-of-range
		if userCtx.MinPrice != nil || userCtx.MaxPrice != nil {
			within := (userCtx.MinPrice == nil || p.Price >= *userCtx.MinPrice) &&
				(userCtx.MaxPrice == nil || p.Price <= *userCtx.MaxPrice)
			if within {
				score += ew.PriceRangeBoost
				boosters.PriceAffinity = true
			} else {
				score -= ew.PriceRangePenalty
			}
		}

		// similarity to the anchor product
		if anchor != nil {
			sim := Similarity(*anchor, p, s.weights.Similarity)
			score += ew.Similarity * sim
			if sim > ew.SimilarBoosterThreshold {
				boosters.SimilarTo = anchor
			}
		}

		// recency: linear decay to zero over the horizon
		if !p.CreatedAt.IsZero() {
			ageDays := now.Sub(p.CreatedAt).Hours() / 24
			recency := math.Max(0, 1-math.Min(1, ageDays/ew.RecencyHorizonDays))
			score += ew.Recency * recency
		}

		// discount signal
		if p.HasDiscount() {
			discount := (p.OriginalPrice - p.Price) / p.OriginalPrice
			score += ew.Discount * math.Min(1, math.Max(0, discount*2))
			boosters.Discount = true
		}

		// availability
		switch {
		case p.Stock <= 0:
			score -= ew.OutOfStockPenalty
		case p.Stock < 5:
			score -= ew.LowStockPenalty
		case p.Stock < 10:
			score -= ew.LimitedStockPenalty
		}

		isTrending := basePopularity > ew.TrendingThreshold
		explain := BuildExplanation(boosters, isTrending)

		scored = append(scored, domain.ScoredCandidate{
			Product: p,
			Score:   score,
			Reason:  explain.Reason,
			Tags:    explain.Tags,
		})
	}

	// stable keeps snapshot order on ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	results := s.blend(scored, limit)

	recommendationsServed.WithLabelValues("personalized").Add(float64(len(results)))
	return results, nil
}

// blend reserves part of the limit for high-scoring "trending" candidates so
// discovery survives heavy personalization, then fills the rest with the best
// of what remains. Input must already be sorted descending.
func (s *Service) blend(scored []domain.ScoredCandidate, limit int) []domain.ScoredCandidate {
	ew := s.weights.Engine

	trendingCap := int(math.Ceil(float64(limit) * ew.TrendingShare))
	trending := make([]domain.ScoredCandidate, 0, trendingCap)
	inTrending := make(map[string]struct{}, trendingCap)
	for _, c := range scored {
		if len(trending) >= trendingCap {
			break
		}
		if c.Score >= ew.TrendingMinScore {
			trending = append(trending, c)
			inTrending[c.Product.ID] = struct{}{}
		}
	}

	personalized := make([]domain.ScoredCandidate, 0, limit)
	for _, c := range scored {
		if len(personalized) >= limit-len(trending) {
			break
		}
		if _, ok := inTrending[c.Product.ID]; ok {
			continue
		}
		personalized = append(personalized, c)
	}

	top := append(personalized, trending...)
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// resolveAnchor picks the comparison basis for similarity scoring: the most
// recent clicked product, else the most recent viewed one. The context's id
// slices are ordered most-recent-first.
func (s *Service) resolveAnchor(products []domain.Product, userCtx domain.UserContext) *domain.Product {
	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, id := range userCtx.ClickedIDs {
		if p, ok := byID[id]; ok {
			return p
		}
	}
	for _, id := range userCtx.ViewedIDs {
		if p, ok := byID[id]; ok {
			return p
		}
	}
	return nil
}

// ---- single-anchor retrievers ----

// Similar ranks every other product purely by pairwise similarity to the
// anchor. An unknown productID yields an empty result, not an error.
func (s *Service) Similar(ctx context.Context, productID string, limit int) ([]domain.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit < 0 {
		return nil, errors.New("limit cannot be negative")
	}
	if limit == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	base, ok, err := s.lookupAnchor(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ScoredCandidate{}, nil
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load product snapshot", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	scored := make([]domain.ScoredCandidate, 0, len(products))
	for _, p := range products {
		if p.ID == base.ID {
			continue
		}
		scored = append(scored, domain.ScoredCandidate{
			Product: p,
			Score:   Similarity(base, p, s.weights.Similarity),
			Reason:  "Similar to what you viewed",
			Tags:    []string{"Similar to what you viewed"},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	recommendationsServed.WithLabelValues("similar").Add(float64(len(scored)))
	return scored, nil
}

// Complementary suggests products that pair with the anchor: candidates from
// the anchor category's adjacency buckets, reweighted by popularity, price
// compatibility and rating. An unknown anchor category means no category
// restriction at all.
func (s *Service) Complementary(ctx context.Context, productID string, limit int) ([]domain.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit < 0 {
		return nil, errors.New("limit cannot be negative")
	}
	if limit == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	base, ok, err := s.lookupAnchor(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ScoredCandidate{}, nil
	}

	adjacent := toSet(s.weights.Complements[base.Category])

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load product snapshot", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	cw := s.weights.Complementary

	scored := make([]domain.ScoredCandidate, 0, len(products))
	for _, p := range products {
		if p.ID == base.ID {
			continue
		}
		if len(adjacent) > 0 {
			if _, ok := adjacent[p.Category]; !ok {
				continue
			}
		}

		score := cw.Popularity * Popularity(p, s.weights.Popularity)

		if _, ok := adjacent[p.Category]; ok {
			score += cw.AdjacencyBoost
		}

		// complements should not cost dramatically more than the anchor;
		// the sweet spot sits around half the anchor's price
		if base.Price > 0 && p.Price > 0 {
			priceRatio := p.Price / base.Price
			if priceRatio <= cw.PriceRatioCap {
				score += cw.PriceCompat * (1 - math.Min(1, math.Abs(priceRatio-cw.PriceRatioIdeal)))
			}
		}

		if p.Rating >= cw.RatingFloor {
			score += cw.RatingBonus
		}

		scored = append(scored, domain.ScoredCandidate{
			Product: p,
			Score:   score,
			Reason:  "Frequently bought together",
			Tags:    []string{"Frequently bought together", "Complementary"},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	recommendationsServed.WithLabelValues("complementary").Add(float64(len(scored)))
	return scored, nil
}

// lookupAnchor resolves productID, mapping "not found" to a soft miss.
func (s *Service) lookupAnchor(ctx context.Context, productID string) (domain.Product, bool, error) {
	base, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err.Error() == "product not found" {
			return domain.Product{}, false, nil
		}
		logger.Error("Failed to resolve anchor product", err)
		return domain.Product{}, false, fmt.Errorf("find product: %w", err)
	}
	return base, true, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
