package domain

// UserContext is the caller-supplied personalization snapshot for a single
// recommendation request. It is never persisted here; the route layer builds
// it from whatever the client sends along.
//
// The interaction id slices are ordered most-recent-first, which is what
// anchor resolution in the engine relies on.
type UserContext struct {
	UserID              string   `json:"userId,omitempty"`
	ViewedIDs           []string `json:"viewedIds,omitempty"`
	ClickedIDs          []string `json:"clickedIds,omitempty"`
	PurchasedIDs        []string `json:"purchasedIds,omitempty"`
	WishlistIDs         []string `json:"wishlistIds,omitempty"`
	PreferredCategories []string `json:"preferredCategories,omitempty"`
	PreferredBrands     []string `json:"preferredBrands,omitempty"`

	// Optional price range; nil means unbounded on that side.
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// ScoredCandidate is one ranked result. Score is only meaningful for relative
// ordering within a single response.
type ScoredCandidate struct {
	Product Product  `json:"product"`
	Score   float64  `json:"score"`
	Reason  string   `json:"reason"`
	Tags    []string `json:"tags"`
}
