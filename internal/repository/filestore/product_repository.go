package filestore

import (
	"context"
	"errors"
	"fmt"

	"smartshop/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := readAll[domain.Product](r.store, productsCollection)
	if err != nil {
		return err
	}

	if product.ID == "" {
		product.ID = newID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now()
	}
	product.UpdatedAt = now()

	products = append(products, *product)
	return writeAll(r.store, productsCollection, products)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := readAll[domain.Product](r.store, productsCollection)
	if err != nil {
		return domain.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errors.New("product not found")
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return readAll[domain.Product](r.store, productsCollection)
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := readAll[domain.Product](r.store, productsCollection)
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID != product.ID {
			continue
		}

		// engagement counters are owned by IncrementCounters; keep them
		product.Impressions = products[i].Impressions
		product.Views = products[i].Views
		product.Clicks = products[i].Clicks
		product.AddToCart = products[i].AddToCart
		product.Purchases = products[i].Purchases
		product.CreatedAt = products[i].CreatedAt
		product.UpdatedAt = now()

		products[i] = *product
		return writeAll(r.store, productsCollection, products)
	}

	return errors.New("product not found")
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := readAll[domain.Product](r.store, productsCollection)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return errors.New("product not found")
	}

	return writeAll(r.store, productsCollection, kept)
}

func (r *ProductRepository) IncrementCounters(ctx context.Context, id string, delta domain.EngagementDelta) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, err := readAll[domain.Product](r.store, productsCollection)
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}

		products[i].Impressions += delta.Impressions
		products[i].Views += delta.Views
		products[i].Clicks += delta.Clicks
		products[i].AddToCart += delta.AddToCart
		products[i].Purchases += delta.Purchases
		products[i].UpdatedAt = now()

		return writeAll(r.store, productsCollection, products)
	}

	return errors.New("product not found")
}
