package domain

import "strings"

// ProductFilter decides whether a product belongs in a result set. A single
// implementation is shared by the search service and the in-memory file store
// so filter semantics cannot drift between the two paths.
type ProductFilter interface {
	Matches(p Product) bool
}

// SearchFilter matches products against a free-text query plus optional
// attribute and price constraints. Text matching is case-insensitive
// substring over name, description, category and brand.
type SearchFilter struct {
	Query    string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64

	// InStockOnly additionally drops products with zero stock.
	InStockOnly bool
}

func (f SearchFilter) Matches(p Product) bool {
	if f.Query != "" && !textMatchAny(f.Query, p.Name, p.Description, p.Category, p.Brand) {
		return false
	}
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !containsFold(p.Brand, f.Brand) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStockOnly && p.Stock <= 0 {
		return false
	}
	return true
}

// TokenFilter matches products whose name, description or brand contains any
// of the tokens. Used by the chat assistant's product suggestions.
type TokenFilter struct {
	Tokens   []string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (f TokenFilter) Matches(p Product) bool {
	if p.Stock <= 0 {
		return false
	}
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if len(f.Tokens) == 0 {
		return true
	}
	for _, tok := range f.Tokens {
		if textMatchAny(tok, p.Name, p.Description, p.Brand) {
			return true
		}
	}
	return false
}

func textMatchAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if containsFold(field, needle) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
