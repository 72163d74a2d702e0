package product

import (
	"context"
	"errors"
	"testing"

	"smartshop/domain"
)

type stubProductRepo struct {
	products map[string]domain.Product
	deltas   []domain.EngagementDelta
}

func newStubRepo(products ...domain.Product) *stubProductRepo {
	m := make(map[string]domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func (r *stubProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = "generated"
	}
	r.products[product.ID] = *product
	return nil
}

func (r *stubProductRepo) FindByID(ctx context.Context, id string) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return errors.New("product not found")
	}
	r.products[product.ID] = *product
	return nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return errors.New("product not found")
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) IncrementCounters(ctx context.Context, id string, delta domain.EngagementDelta) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("product not found")
	}
	p.Impressions += delta.Impressions
	p.Views += delta.Views
	p.Clicks += delta.Clicks
	p.AddToCart += delta.AddToCart
	p.Purchases += delta.Purchases
	r.products[id] = p
	r.deltas = append(r.deltas, delta)
	return nil
}

func TestGetProductByID_CountsView(t *testing.T) {
	repo := newStubRepo(domain.Product{ID: "p1", Name: "Widget", Category: "Electronics"})
	svc := NewProductService(repo)

	p, err := svc.GetProductByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("unexpected product: %+v", p)
	}
	if repo.products["p1"].Views != 1 {
		t.Errorf("expected 1 view counted, got %d", repo.products["p1"].Views)
	}
}

func TestGetProductByID_NotFound(t *testing.T) {
	svc := NewProductService(newStubRepo())

	_, err := svc.GetProductByID(context.Background(), "missing")
	if err == nil || err.Error() != "product not found" {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewProductService(newStubRepo())

	cases := []struct {
		name    string
		product domain.Product
		wantErr string
	}{
		{"missing name", domain.Product{Category: "Electronics"}, "product name is required"},
		{"missing category", domain.Product{Name: "Widget"}, "product category is required"},
		{"negative price", domain.Product{Name: "Widget", Category: "Electronics", Price: -1}, "price cannot be negative"},
		{"negative stock", domain.Product{Name: "Widget", Category: "Electronics", Stock: -1}, "stock cannot be negative"},
	}

	for _, tc := range cases {
		_, err := svc.CreateProduct(context.Background(), &tc.product)
		if err == nil || err.Error() != tc.wantErr {
			t.Errorf("%s: expected %q, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestUpdateProduct_ReturnsStoredState(t *testing.T) {
	repo := newStubRepo(domain.Product{ID: "p1", Name: "Widget", Category: "Electronics", Price: 10})
	svc := NewProductService(repo)

	updated, err := svc.UpdateProduct(context.Background(), &domain.Product{
		ID: "p1", Name: "Widget v2", Category: "Electronics", Price: 12, Stock: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Widget v2" || updated.Price != 12 {
		t.Errorf("unexpected updated product: %+v", updated)
	}
}

func TestGetPopularProducts_RatingThenReviews(t *testing.T) {
	repo := newStubRepo(
		domain.Product{ID: "a", Rating: 4.5, ReviewCount: 10},
		domain.Product{ID: "b", Rating: 4.9, ReviewCount: 5},
		domain.Product{ID: "c", Rating: 4.5, ReviewCount: 90},
	)
	svc := NewProductService(repo)

	products, err := svc.GetPopularProducts(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products[0].ID != "b" {
		t.Errorf("highest rating should rank first, got %s", products[0].ID)
	}
	if products[1].ID != "c" || products[2].ID != "a" {
		t.Errorf("review count should break rating ties, got %s then %s", products[1].ID, products[2].ID)
	}
}

func TestGetTrendingProducts_Limit(t *testing.T) {
	repo := newStubRepo(
		domain.Product{ID: "a", Purchases: 5},
		domain.Product{ID: "b", Purchases: 50},
		domain.Product{ID: "c", Purchases: 20},
	)
	svc := NewProductService(repo)

	products, err := svc.GetTrendingProducts(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "b" || products[1].ID != "c" {
		t.Errorf("unexpected order: %s, %s", products[0].ID, products[1].ID)
	}
}

func TestTrackInteraction(t *testing.T) {
	repo := newStubRepo(domain.Product{ID: "p1", Name: "Widget"})
	svc := NewProductService(repo)

	for _, interaction := range []string{"click", "addToCart", "purchase", "view", "impression"} {
		if err := svc.TrackInteraction(context.Background(), "p1", interaction); err != nil {
			t.Errorf("%s: unexpected error: %v", interaction, err)
		}
	}

	p := repo.products["p1"]
	if p.Clicks != 1 || p.AddToCart != 1 || p.Purchases != 1 || p.Views != 1 || p.Impressions != 1 {
		t.Errorf("unexpected counters: %+v", p)
	}

	if err := svc.TrackInteraction(context.Background(), "p1", "teleport"); err == nil || err.Error() != "unknown interaction type" {
		t.Errorf("expected unknown interaction type error, got %v", err)
	}
}
