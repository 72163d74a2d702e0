package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartshop/domain"
)

type stubProductRepo struct {
	products []domain.Product
	failAll  bool
}

func (r *stubProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	if r.failAll {
		return nil, errors.New("storage down")
	}
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *stubProductRepo) FindByID(ctx context.Context, id string) (domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errors.New("product not found")
}

func newEngine(products ...domain.Product) *Service {
	return NewService(&stubProductRepo{products: products}, DefaultWeights())
}

func stocked(id, name, category, brand string, price, rating float64) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Category:  category,
		Brand:     brand,
		Price:     price,
		Rating:    rating,
		Stock:     50,
		CreatedAt: time.Now(),
	}
}

func ids(recs []domain.ScoredCandidate) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Product.ID)
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func TestRecommend_LimitZeroReturnsEmpty(t *testing.T) {
	svc := newEngine(stocked("p1", "Widget", "Electronics", "Nimbus", 10, 4))

	recs, err := svc.Recommend(context.Background(), domain.UserContext{}, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result, got %d", len(recs))
	}
}

func TestRecommend_NegativeLimitFails(t *testing.T) {
	svc := newEngine(stocked("p1", "Widget", "Electronics", "Nimbus", 10, 4))

	_, err := svc.Recommend(context.Background(), domain.UserContext{}, -1, nil)
	if err == nil || err.Error() != "limit cannot be negative" {
		t.Fatalf("expected negative limit error, got %v", err)
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	svc := newEngine()

	recs, err := svc.Recommend(context.Background(), domain.UserContext{}, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result, got %d", len(recs))
	}
}

func TestRecommend_RespectsLimitAndExcludes(t *testing.T) {
	svc := newEngine(
		stocked("p1", "Laptop", "Electronics", "Vertex", 900, 4.5),
		stocked("p2", "Mouse", "Electronics", "Vertex", 30, 4.2),
		stocked("p3", "Keyboard", "Electronics", "Vertex", 60, 4.0),
		stocked("p4", "Monitor", "Electronics", "Vertex", 250, 4.1),
	)

	recs, err := svc.Recommend(context.Background(), domain.UserContext{}, 2, []string{"p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recs))
	}
	if contains(ids(recs), "p1") {
		t.Errorf("excluded product p1 leaked into results: %v", ids(recs))
	}
}

func TestRecommend_OutOfStockRanksLower(t *testing.T) {
	inStock := stocked("avail", "Speaker", "Electronics", "Nimbus", 80, 4.3)
	gone := stocked("gone", "Speaker", "Electronics", "Nimbus", 80, 4.3)
	gone.Stock = 0

	svc := newEngine(gone, inStock)

	recs, err := svc.Recommend(context.Background(), domain.UserContext{}, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recs))
	}
	if recs[0].Product.ID != "avail" {
		t.Errorf("in-stock product should outrank the out-of-stock twin, got order %v", ids(recs))
	}
}

func TestRecommend_PriceRangeBoost(t *testing.T) {
	cheap := stocked("cheap", "Earbuds", "Electronics", "Nimbus", 40, 4.0)
	pricey := stocked("pricey", "Earbuds Pro", "Electronics", "Nimbus", 400, 4.0)

	svc := newEngine(pricey, cheap)

	minPrice, maxPrice := 20.0, 100.0
	recs, err := svc.Recommend(context.Background(), domain.UserContext{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	}, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0].Product.ID != "cheap" {
		t.Errorf("in-range product should rank first, got order %v", ids(recs))
	}
	if !contains(recs[0].Tags, "In your price range") {
		t.Errorf("expected price range tag, got %v", recs[0].Tags)
	}
}

func TestRecommend_DiscountRanksAboveFullPriceTwin(t *testing.T) {
	full := stocked("full", "Monitor", "Electronics", "Nimbus", 60, 4.2)
	disc := stocked("disc", "Monitor", "Electronics", "Nimbus", 60, 4.2)
	disc.OriginalPrice = 100

	svc := newEngine(full, disc)

	recs, err := svc.Recommend(context.Background(), domain.UserContext{}, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recs))
	}
	if recs[0].Product.ID != "disc" {
		t.Errorf("discounted product should outrank the full-price twin, got order %v", ids(recs))
	}
	if !contains(recs[0].Tags, "On sale") {
		t.Errorf("expected sale tag on discounted product, got %v", recs[0].Tags)
	}
	if contains(recs[1].Tags, "On sale") {
		t.Errorf("full-price product must not carry the sale tag, got %v", recs[1].Tags)
	}
}

func TestRecommend_NewerRanksAboveStaleTwin(t *testing.T) {
	fresh := stocked("fresh", "Keyboard", "Electronics", "Nimbus", 45, 4.0)
	stale := stocked("stale", "Keyboard", "Electronics", "Nimbus", 45, 4.0)
	// past the decay horizon, so the stale twin gets no recency credit
	stale.CreatedAt = time.Now().AddDate(0, 0, -200)

	svc := newEngine(stale, fresh)

	recs, err := svc.Recommend(context.Background(), domain.UserContext{}, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0].Product.ID != "fresh" {
		t.Errorf("recently added product should outrank the stale twin, got order %v", ids(recs))
	}
}

func TestRecommend_PreferredCategoryBoostAndReason(t *testing.T) {
	svc := newEngine(
		stocked("book", "Novel", "Books", "Pressly", 15, 4.1),
		stocked("tv", "Television", "Electronics", "Vertex", 500, 4.1),
	)

	recs, err := svc.Recommend(context.Background(), domain.UserContext{
		PreferredCategories: []string{"Books"},
	}, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0].Product.ID != "book" {
		t.Errorf("preferred category should rank first, got order %v", ids(recs))
	}
	if recs[0].Reason != "You viewed Books items" {
		t.Errorf("unexpected reason: %q", recs[0].Reason)
	}
	if !contains(recs[0].Tags, "Because you browsed this category") {
		t.Errorf("expected category tag, got %v", recs[0].Tags)
	}
}

func TestRecommend_ClickedAnchorBoostsLookalikes(t *testing.T) {
	anchor := stocked("anchor", "Nimbus Watch", "Wearables", "Nimbus", 200, 4.5)
	lookalike := stocked("twin", "Nimbus Band", "Wearables", "Nimbus", 180, 4.4)
	stranger := stocked("far", "Blender", "Kitchen", "Whirl", 60, 4.4)

	svc := newEngine(anchor, lookalike, stranger)

	recs, err := svc.Recommend(context.Background(), domain.UserContext{
		ClickedIDs: []string{"anchor"},
	}, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var twin, far *domain.ScoredCandidate
	for i := range recs {
		switch recs[i].Product.ID {
		case "twin":
			twin = &recs[i]
		case "far":
			far = &recs[i]
		}
	}
	if twin == nil || far == nil {
		t.Fatalf("expected both candidates in results, got %v", ids(recs))
	}
	if twin.Score <= far.Score {
		t.Errorf("lookalike should outscore unrelated product: twin=%f far=%f", twin.Score, far.Score)
	}
	if !contains(twin.Tags, "Similar to what you viewed") {
		t.Errorf("expected similarity tag on the lookalike, got %v", twin.Tags)
	}
}

func TestRecommend_RepositoryFailure(t *testing.T) {
	svc := NewService(&stubProductRepo{failAll: true}, DefaultWeights())

	_, err := svc.Recommend(context.Background(), domain.UserContext{}, 5, nil)
	if err == nil {
		t.Fatal("expected error from failing repository")
	}
}

func TestRecommend_CancelledContext(t *testing.T) {
	svc := newEngine(stocked("p1", "Widget", "Electronics", "Nimbus", 10, 4))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Recommend(ctx, domain.UserContext{}, 5, nil)
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestRecommend_BlendReservesTrendingSlot(t *testing.T) {
	// a hot seller whose blended score clears the trending bar
	hot := domain.Product{
		ID: "hot", Name: "Bestseller", Category: "Electronics", Brand: "Nimbus",
		Price: 45, Rating: 4.9, Stock: 100, ReviewCount: 1500,
		Impressions: 10000, Views: 4800, Clicks: 1900, AddToCart: 1700, Purchases: 1500,
		CreatedAt: time.Now(),
	}

	products := []domain.Product{hot}
	for _, id := range []string{"b1", "b2", "b3", "b4"} {
		products = append(products, stocked(id, "Nimbus "+id, "Electronics", "Nimbus", 50, 4.0))
	}

	svc := NewService(&stubProductRepo{products: products}, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), domain.UserContext{
		PreferredCategories: []string{"Electronics"},
		PreferredBrands:     []string{"Nimbus"},
	}, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 results, got %d", len(recs))
	}
	// the trending pick rides in the reserved tail slot
	if recs[3].Product.ID != "hot" {
		t.Errorf("expected trending product in the reserved slot, got order %v", ids(recs))
	}
	if !contains(recs[3].Tags, "Trending now") {
		t.Errorf("expected trending tag, got %v", recs[3].Tags)
	}
}

func TestSimilar_UnknownAnchorReturnsEmpty(t *testing.T) {
	svc := newEngine(stocked("p1", "Widget", "Electronics", "Nimbus", 10, 4))

	recs, err := svc.Similar(context.Background(), "missing", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result for unknown anchor, got %v", ids(recs))
	}
}

func TestSimilar_RanksByAttributeOverlap(t *testing.T) {
	anchor := stocked("anchor", "Nimbus Watch", "Wearables", "Nimbus", 200, 4.5)
	sameBrand := stocked("sameBrand", "Nimbus Band", "Wearables", "Nimbus", 190, 4.4)
	sameCategory := stocked("sameCategory", "Vertex Tracker", "Wearables", "Vertex", 195, 4.4)
	unrelated := stocked("unrelated", "Desk Lamp", "Home & Office", "Lumo", 35, 4.4)

	svc := newEngine(anchor, sameBrand, sameCategory, unrelated)

	recs, err := svc.Similar(context.Background(), "anchor", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ids(recs)
	want := []string{"sameBrand", "sameCategory", "unrelated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if contains(got, "anchor") {
		t.Errorf("anchor must not recommend itself: %v", got)
	}
	if recs[0].Reason != "Similar to what you viewed" {
		t.Errorf("unexpected reason: %q", recs[0].Reason)
	}
}

func TestSimilar_LimitZeroReturnsEmpty(t *testing.T) {
	svc := newEngine(stocked("p1", "Widget", "Electronics", "Nimbus", 10, 4))

	recs, err := svc.Similar(context.Background(), "p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result, got %d", len(recs))
	}
}

func TestComplementary_RestrictsToAdjacentCategories(t *testing.T) {
	anchor := stocked("anchor", "Nimbus Laptop", "Electronics", "Nimbus", 900, 4.5)
	accessory := stocked("accessory", "Laptop Sleeve", "Accessories", "Caseco", 25, 4.6)
	wearable := stocked("wearable", "Nimbus Watch", "Wearables", "Nimbus", 200, 4.5)
	blender := stocked("blender", "Blender", "Kitchen", "Whirl", 60, 4.8)

	svc := newEngine(anchor, accessory, wearable, blender)

	recs, err := svc.Complementary(context.Background(), "anchor", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ids(recs)
	if contains(got, "blender") {
		t.Errorf("non-adjacent category leaked into complements: %v", got)
	}
	if contains(got, "anchor") {
		t.Errorf("anchor must not complement itself: %v", got)
	}
	if !contains(got, "accessory") || !contains(got, "wearable") {
		t.Errorf("expected adjacent-category products, got %v", got)
	}
	if recs[0].Reason != "Frequently bought together" {
		t.Errorf("unexpected reason: %q", recs[0].Reason)
	}
	if !contains(recs[0].Tags, "Complementary") {
		t.Errorf("expected Complementary tag, got %v", recs[0].Tags)
	}
}

func TestComplementary_UnknownCategoryMeansNoRestriction(t *testing.T) {
	anchor := stocked("anchor", "Mystery Box", "Curiosities", "Oddly", 20, 4.0)
	other := stocked("other", "Blender", "Kitchen", "Whirl", 60, 4.8)

	svc := newEngine(anchor, other)

	recs, err := svc.Complementary(context.Background(), "anchor", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(ids(recs), "other") {
		t.Errorf("unknown anchor category should not restrict candidates, got %v", ids(recs))
	}
}

func TestComplementary_UnknownAnchorReturnsEmpty(t *testing.T) {
	svc := newEngine(stocked("p1", "Widget", "Electronics", "Nimbus", 10, 4))

	recs, err := svc.Complementary(context.Background(), "missing", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result for unknown anchor, got %v", ids(recs))
	}
}
