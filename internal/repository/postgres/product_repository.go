package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartshop/domain"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.Product
	if err := r.DB.WithContext(ctx).First(&existing, "id = ?", product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	if err := r.DB.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"name":           product.Name,
		"description":    product.Description,
		"category":       product.Category,
		"subcategory":    product.Subcategory,
		"brand":          product.Brand,
		"price":          product.Price,
		"original_price": product.OriginalPrice,
		"stock":          product.Stock,
		"rating":         product.Rating,
		"review_count":   product.ReviewCount,
	}).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}

	return nil
}

// IncrementCounters applies the non-zero engagement deltas atomically in SQL,
// the equivalent of the document store's $inc.
func (r *ProductRepository) IncrementCounters(ctx context.Context, id string, delta domain.EngagementDelta) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updates := map[string]any{}
	if delta.Impressions != 0 {
		updates["impressions"] = gorm.Expr("impressions + ?", delta.Impressions)
	}
	if delta.Views != 0 {
		updates["views"] = gorm.Expr("views + ?", delta.Views)
	}
	if delta.Clicks != 0 {
		updates["clicks"] = gorm.Expr("clicks + ?", delta.Clicks)
	}
	if delta.AddToCart != 0 {
		updates["add_to_cart"] = gorm.Expr("add_to_cart + ?", delta.AddToCart)
	}
	if delta.Purchases != 0 {
		updates["purchases"] = gorm.Expr("purchases + ?", delta.Purchases)
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to increment counters: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}

	return nil
}
