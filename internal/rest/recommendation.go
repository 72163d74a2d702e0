package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"smartshop/app/echo-server/metrics"
	"smartshop/domain"
	"smartshop/pkg/logger"
)

type RecommendationService interface {
	Recommend(ctx context.Context, userCtx domain.UserContext, limit int, excludeIDs []string) ([]domain.ScoredCandidate, error)
	Similar(ctx context.Context, productID string, limit int) ([]domain.ScoredCandidate, error)
	Complementary(ctx context.Context, productID string, limit int) ([]domain.ScoredCandidate, error)
}

type RecommendationHandler struct {
	recoService RecommendationService
	timeout     time.Duration
}

func NewRecommendationHandler(recoService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recoService: recoService,
		timeout:     10 * time.Second,
	}
}

type RecommendQuery struct {
	ViewedIDs    string   `query:"viewedIds"`
	ClickedIDs   string   `query:"clickedIds"`
	PurchasedIDs string   `query:"purchasedIds"`
	WishlistIDs  string   `query:"wishlistIds"`
	Categories   string   `query:"categories"`
	Brands       string   `query:"brands"`
	MinPrice     *float64 `query:"minPrice"`
	MaxPrice     *float64 `query:"maxPrice"`
	Limit        int      `query:"limit"`
	Exclude      string   `query:"exclude"`
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GET /api/v1/recommendations?viewedIds=a,b&clickedIds=c&limit=8
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Limit == 0 {
		q.Limit = 8
	}

	userCtx := domain.UserContext{
		ViewedIDs:           splitCSV(q.ViewedIDs),
		ClickedIDs:          splitCSV(q.ClickedIDs),
		PurchasedIDs:        splitCSV(q.PurchasedIDs),
		WishlistIDs:         splitCSV(q.WishlistIDs),
		PreferredCategories: splitCSV(q.Categories),
		PreferredBrands:     splitCSV(q.Brands),
		MinPrice:            q.MinPrice,
		MaxPrice:            q.MaxPrice,
	}
	if uid, ok := c.Get("user_id").(string); ok {
		userCtx.UserID = uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recs, err := h.recoService.Recommend(ctx, userCtx, q.Limit, splitCSV(q.Exclude))
	if err != nil {
		if err.Error() == "limit cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendTotal.Add(float64(len(recs)))

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/similar/:id?limit=6
func (h *RecommendationHandler) Similar(c echo.Context) error {
	productID := c.Param("id")

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Limit == 0 {
		q.Limit = 6
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recs, err := h.recoService.Similar(ctx, productID, q.Limit)
	if err != nil {
		if err.Error() == "limit cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to build similar products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendTotal.Add(float64(len(recs)))

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/complementary/:id?limit=4
func (h *RecommendationHandler) Complementary(c echo.Context) error {
	productID := c.Param("id")

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Limit == 0 {
		q.Limit = 4
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recs, err := h.recoService.Complementary(ctx, productID, q.Limit)
	if err != nil {
		if err.Error() == "limit cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to build complementary products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendTotal.Add(float64(len(recs)))

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
