package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"smartshop/business/search"
	"smartshop/pkg/logger"
)

type SearchService interface {
	Search(ctx context.Context, params search.Params) (search.Result, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
}

type SearchHandler struct {
	searchService SearchService
	timeout       time.Duration
}

func NewSearchHandler(searchService SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		timeout:       10 * time.Second,
	}
}

type SearchQuery struct {
	Q         string   `query:"q"`
	Category  string   `query:"category"`
	Brand     string   `query:"brand"`
	MinPrice  *float64 `query:"minPrice"`
	MaxPrice  *float64 `query:"maxPrice"`
	SortBy    string   `query:"sortBy"`
	SortOrder string   `query:"sortOrder"`
	Page      int      `query:"page"`
	Limit     int      `query:"limit"`
}

// GET /api/v1/search?q=headphones&category=Electronics&sortBy=price&sortOrder=asc
func (h *SearchHandler) Search(c echo.Context) error {
	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.searchService.Search(ctx, search.Params{
		Query:     q.Q,
		Category:  q.Category,
		Brand:     q.Brand,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		if err.Error() == "search query is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Search failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *SearchHandler) Categories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.searchService.Categories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}

func (h *SearchHandler) Brands(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	brands, err := h.searchService.Brands(ctx)
	if err != nil {
		logger.Error("Failed to list brands", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(brands))
}
