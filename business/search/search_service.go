package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"smartshop/business/recommendation"
	"smartshop/domain"
	"smartshop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	IncrementCounters(ctx context.Context, id string, delta domain.EngagementDelta) error
}

type Params struct {
	Query    string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64

	// SortBy: price, rating, createdAt, or empty/relevance for ranked
	// results via the popularity scorer.
	SortBy    string
	SortOrder string

	Page  int
	Limit int
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type Result struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

type searchService struct {
	productRepo ProductRepository
	popularity  recommendation.PopularityWeights
}

func NewSearchService(productRepo ProductRepository, popularity recommendation.PopularityWeights) *searchService {
	return &searchService{
		productRepo: productRepo,
		popularity:  popularity,
	}
}

// Search filters the catalog through the shared predicate, sorts, paginates
// and counts an impression for every product on the returned page.
func (s *searchService) Search(ctx context.Context, params Params) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context error: %w", err)
	}

	if strings.TrimSpace(params.Query) == "" {
		return Result{}, errors.New("search query is required")
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 12
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load products for search", err)
		return Result{}, err
	}

	filter := domain.SearchFilter{
		Query:    params.Query,
		Category: params.Category,
		Brand:    params.Brand,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	s.sortResults(filtered, params.SortBy, params.SortOrder)

	totalItems := len(filtered)
	totalPages := int(math.Ceil(float64(totalItems) / float64(params.Limit)))
	skip := (params.Page - 1) * params.Limit

	var page []domain.Product
	if skip < totalItems {
		end := skip + params.Limit
		if end > totalItems {
			end = totalItems
		}
		page = filtered[skip:end]
	} else {
		page = []domain.Product{}
	}

	// returned results were shown to the shopper
	for _, p := range page {
		if err := s.productRepo.IncrementCounters(ctx, p.ID, domain.EngagementDelta{Impressions: 1}); err != nil {
			logger.Warn("Failed to count search impression", "productId", p.ID, "error", err)
		}
	}

	return Result{
		Products: page,
		Pagination: Pagination{
			CurrentPage: params.Page,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
			HasNext:     params.Page*params.Limit < totalItems,
			HasPrev:     params.Page > 1,
		},
	}, nil
}

// sortResults orders in place. Without an explicit sort key, relevance means
// the consolidated popularity score, highest first.
func (s *searchService) sortResults(products []domain.Product, sortBy, sortOrder string) {
	switch sortBy {
	case "price":
		desc := sortOrder == "desc"
		sort.SliceStable(products, func(i, j int) bool {
			if desc {
				return products[i].Price > products[j].Price
			}
			return products[i].Price < products[j].Price
		})
	case "rating":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case "createdAt":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		scores := make(map[string]float64, len(products))
		for _, p := range products {
			scores[p.ID] = recommendation.Popularity(p, s.popularity)
		}
		sort.SliceStable(products, func(i, j int) bool {
			return scores[products[i].ID] > scores[products[j].ID]
		})
	}
}

// Categories lists the distinct categories in the catalog, sorted.
func (s *searchService) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load products for categories", err)
		return nil, err
	}

	return distinct(products, func(p domain.Product) string { return p.Category }), nil
}

// Brands lists the distinct brands in the catalog, sorted.
func (s *searchService) Brands(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load products for brands", err)
		return nil, err
	}

	return distinct(products, func(p domain.Product) string { return p.Brand }), nil
}

func distinct(products []domain.Product, key func(domain.Product) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, p := range products {
		v := key(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
