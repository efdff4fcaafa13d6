package domain

import (
	"time"
)

// Gender is a listing audience such as men, women or unisex.
type Gender struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Color is a variant color lookup row.
type Color struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	HexCode string `json:"hex_code"`
}

// Size is a variant size lookup row.
type Size struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

// Brand is a product brand.
type Brand struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// Category is a node of the category tree.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Product is a catalog entry. Purchasable combinations live in Variant.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BrandID     *string   `json:"brand_id,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	GenderID    *string   `json:"gender_id,omitempty"`
	IsPublished bool      `json:"is_published"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Brand    *Brand    `json:"brand,omitempty"`
	Category *Category `json:"category,omitempty"`
	Gender   *Gender   `json:"gender,omitempty"`
}

// Variant is one color and size of a product. Price and SalePrice hold the
// database numeric rendered as text and are parsed where they are used.
type Variant struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	SKU       string  `json:"sku"`
	Price     string  `json:"price"`
	SalePrice *string `json:"sale_price,omitempty"`
	InStock   int     `json:"in_stock"`
	Color     *Color  `json:"color,omitempty"`
	Size      *Size   `json:"size,omitempty"`
}

// Image belongs to a product and optionally to one of its variants. A nil
// VariantID marks a product-level image.
type Image struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	URL       string  `json:"url"`
	SortOrder int     `json:"sort_order"`
	IsPrimary bool    `json:"is_primary"`
}

// ProductSummary is the listing row of a product: its display price plus
// the slug sets the listing filters match against.
type ProductSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Gender      string    `json:"gender"`
	Price       *Money    `json:"price"`
	MaxPrice    *Money    `json:"max_price,omitempty"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}
