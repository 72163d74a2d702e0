package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              TEXT PRIMARY KEY,
//     name            TEXT,
//     description     TEXT,
//     category        TEXT,
//     subcategory     TEXT,
//     brand           TEXT,
//     price           NUMERIC,
//     original_price  NUMERIC,
//     stock           INTEGER,
//     rating          NUMERIC,
//     review_count    INTEGER,
//     impressions     BIGINT,
//     views           BIGINT,
//     clicks          BIGINT,
//     add_to_cart     BIGINT,
//     purchases       BIGINT,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ
// );

type Product struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	Name          string    `gorm:"column:name;type:text" json:"name"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	Category      string    `gorm:"column:category;type:text" json:"category"`
	Subcategory   string    `gorm:"column:subcategory;type:text" json:"subcategory,omitempty"`
	Brand         string    `gorm:"column:brand;type:text" json:"brand"`
	Price         float64   `gorm:"column:price;type:numeric" json:"price"`
	OriginalPrice float64   `gorm:"column:original_price;type:numeric" json:"originalPrice,omitempty"`
	Stock         int       `gorm:"column:stock;default:0" json:"stock"`
	Rating        float64   `gorm:"column:rating;type:numeric" json:"rating"`
	ReviewCount   int       `gorm:"column:review_count;default:0" json:"reviewCount"`
	Impressions   int64     `gorm:"column:impressions;default:0" json:"impressions"`
	Views         int64     `gorm:"column:views;default:0" json:"views"`
	Clicks        int64     `gorm:"column:clicks;default:0" json:"clicks"`
	AddToCart     int64     `gorm:"column:add_to_cart;default:0" json:"addToCart"`
	Purchases     int64     `gorm:"column:purchases;default:0" json:"purchases"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// HasDiscount reports whether the product currently sells below its original price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > 0 && p.OriginalPrice > p.Price
}

// EngagementDelta carries counter increments for a single product. Counters
// only ever grow; the repository applies non-zero fields atomically.
type EngagementDelta struct {
	Impressions int64
	Views       int64
	Clicks      int64
	AddToCart   int64
	Purchases   int64
}
