package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// summarySelect yields one listing row per product. Prices come back as
// text so no precision is lost before decimal parsing.
const summarySelect = `
		SELECT p.id, p.name, p.description, COALESCE(g.slug, ''),
		       MIN(v.price)::text, MAX(v.price)::text,
		       COALESCE(ARRAY_AGG(DISTINCT c.slug) FILTER (WHERE c.slug IS NOT NULL), '{}'),
		       COALESCE(ARRAY_AGG(DISTINCT s.slug) FILTER (WHERE s.slug IS NOT NULL), '{}'),
		       COALESCE((SELECT i.url FROM product_images i
		                 WHERE i.product_id = p.id
		                 ORDER BY i.is_primary DESC, i.sort_order, i.id LIMIT 1), ''),
		       p.rating::float8, p.created_at
		FROM products p
		LEFT JOIN genders g ON g.id = p.gender_id
		LEFT JOIN product_variants v ON v.product_id = p.id
		LEFT JOIN colors c ON c.id = v.color_id
		LEFT JOIN sizes s ON s.id = v.size_id`

const listSummariesQuery = summarySelect + `
		WHERE p.is_published
		GROUP BY p.id, g.slug
		ORDER BY p.created_at, p.id`

const recommendedQuery = summarySelect + `
		WHERE p.is_published AND p.id <> $1
		  AND (p.category_id = $2 OR p.gender_id = $3)
		GROUP BY p.id, g.slug
		ORDER BY (p.category_id IS NOT DISTINCT FROM $2) DESC, p.created_at DESC, p.id
		LIMIT $4`

const getProductQuery = `
		SELECT p.id, p.name, p.description, p.brand_id, p.category_id, p.gender_id,
		       p.is_published, p.rating::float8, p.review_count, p.created_at, p.updated_at,
		       b.name, b.slug, b.logo_url,
		       c.name, c.slug, c.parent_id,
		       g.label, g.slug
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN genders g ON g.id = p.gender_id
		WHERE p.id = $1 AND p.is_published`

const variantsQuery = `
		SELECT v.id, v.product_id, v.sku, v.price::text, v.sale_price::text, v.in_stock,
		       c.id, c.name, c.slug, c.hex_code,
		       s.id, s.name, s.slug, s.sort_order
		FROM product_variants v
		LEFT JOIN colors c ON c.id = v.color_id
		LEFT JOIN sizes s ON s.id = v.size_id
		WHERE v.product_id = $1
		ORDER BY v.created_at, v.id`

const imagesQuery = `
		SELECT id, product_id, variant_id, url, sort_order, is_primary
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order, id`

const refreshRatingQuery = `
		UPDATE products SET
		       rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE product_id = $1), 0),
		       review_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
		       updated_at = NOW()
		WHERE id = $1`

const existsQuery = `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_published)`

// ProductRepository implements catalog reads using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanSummaries(rows pgx.Rows) ([]domain.ProductSummary, error) {
	defer rows.Close()

	items := []domain.ProductSummary{}
	for rows.Next() {
		var (
			p      domain.ProductSummary
			lo, hi *string
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Gender,
			&lo,
			&hi,
			&p.Colors,
			&p.Sizes,
			&p.ImageURL,
			&p.Rating,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product summary: %w", err)
		}
		if lo != nil {
			if d, ok := catalog.ParsePrice(*lo); ok {
				p.Price = domain.MoneyPtr(&d)
			}
		}
		if hi != nil {
			if d, ok := catalog.ParsePrice(*hi); ok {
				p.MaxPrice = domain.MoneyPtr(&d)
			}
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product summaries: %w", err)
	}
	return items, nil
}

// ListSummaries returns the listing collection in featured order.
func (r *ProductRepository) ListSummaries(ctx context.Context) (_ []domain.ProductSummary, err error) {
	ctx, end := database.TraceQuery(ctx, "products.ListSummaries", listSummariesQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listSummariesQuery)
	if err != nil {
		return nil, fmt.Errorf("list product summaries: %w", err)
	}
	return scanSummaries(rows)
}

// Recommended returns up to limit other products of the same category or
// gender, same category first.
func (r *ProductRepository) Recommended(ctx context.Context, product *domain.Product, limit int) (_ []domain.ProductSummary, err error) {
	if limit <= 0 || (product.CategoryID == nil && product.GenderID == nil) {
		return []domain.ProductSummary{}, nil
	}
	ctx, end := database.TraceQuery(ctx, "products.Recommended", recommendedQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, recommendedQuery, product.ID, product.CategoryID, product.GenderID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommended products: %w", err)
	}
	return scanSummaries(rows)
}

// GetByID retrieves a published product with its brand, category and gender.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (_ *domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "products.GetByID", getProductQuery)
	defer func() { end(err) }()

	var (
		p                          domain.Product
		brandName, brandSlug       *string
		brandLogo                  *string
		categoryName, categorySlug *string
		categoryParent             *string
		genderLabel, genderSlug    *string
	)
	err = r.pool.QueryRow(ctx, getProductQuery, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BrandID,
		&p.CategoryID,
		&p.GenderID,
		&p.IsPublished,
		&p.Rating,
		&p.ReviewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&brandName,
		&brandSlug,
		&brandLogo,
		&categoryName,
		&categorySlug,
		&categoryParent,
		&genderLabel,
		&genderSlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if p.BrandID != nil && brandName != nil {
		p.Brand = &domain.Brand{ID: *p.BrandID, Name: *brandName, Slug: deref(brandSlug), LogoURL: brandLogo}
	}
	if p.CategoryID != nil && categoryName != nil {
		p.Category = &domain.Category{ID: *p.CategoryID, Name: *categoryName, Slug: deref(categorySlug), ParentID: categoryParent}
	}
	if p.GenderID != nil && genderLabel != nil {
		p.Gender = &domain.Gender{ID: *p.GenderID, Label: *genderLabel, Slug: deref(genderSlug)}
	}
	return &p, nil
}

// Variants returns the variants of a product. A variant whose color or size
// row is missing comes back with a nil Color or Size.
func (r *ProductRepository) Variants(ctx context.Context, productID string) (_ []domain.Variant, err error) {
	ctx, end := database.TraceQuery(ctx, "products.Variants", variantsQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, variantsQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	variants := []domain.Variant{}
	for rows.Next() {
		var (
			v                                  domain.Variant
			colorID, colorName, colorSlug, hex *string
			sizeID, sizeName, sizeSlug         *string
			sizeOrder                          *int
		)
		if err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.SKU,
			&v.Price,
			&v.SalePrice,
			&v.InStock,
			&colorID,
			&colorName,
			&colorSlug,
			&hex,
			&sizeID,
			&sizeName,
			&sizeSlug,
			&sizeOrder,
		); err != nil {
			return nil, fmt.Errorf("scan variant row: %w", err)
		}
		if colorID != nil {
			v.Color = &domain.Color{ID: *colorID, Name: deref(colorName), Slug: deref(colorSlug), HexCode: deref(hex)}
		}
		if sizeID != nil {
			v.Size = &domain.Size{ID: *sizeID, Name: deref(sizeName), Slug: deref(sizeSlug)}
			if sizeOrder != nil {
				v.Size.SortOrder = *sizeOrder
			}
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant rows: %w", err)
	}
	return variants, nil
}

// Images returns every image of a product.
func (r *ProductRepository) Images(ctx context.Context, productID string) (_ []domain.Image, err error) {
	ctx, end := database.TraceQuery(ctx, "products.Images", imagesQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, imagesQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := []domain.Image{}
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.VariantID, &img.URL, &img.SortOrder, &img.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}
	return images, nil
}

// RefreshRating recomputes the cached rating columns from reviews.
func (r *ProductRepository) RefreshRating(ctx context.Context, productID string) (err error) {
	ctx, end := database.TraceQuery(ctx, "products.RefreshRating", refreshRatingQuery)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, refreshRatingQuery, productID)
	if err != nil {
		return fmt.Errorf("refresh product rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}
	return nil
}

// Exists reports whether a published product has the given id.
func (r *ProductRepository) Exists(ctx context.Context, id string) (ok bool, err error) {
	ctx, end := database.TraceQuery(ctx, "products.Exists", existsQuery)
	defer func() { end(err) }()

	if err := r.pool.QueryRow(ctx, existsQuery, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return ok, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
