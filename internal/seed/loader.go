package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
)

const (
	upsertGenderQuery = `
		INSERT INTO genders (label, slug) VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET label = EXCLUDED.label, updated_at = NOW()
		RETURNING id`

	upsertColorQuery = `
		INSERT INTO colors (name, slug, hex_code) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, hex_code = EXCLUDED.hex_code, updated_at = NOW()
		RETURNING id`

	upsertSizeQuery = `
		INSERT INTO sizes (name, slug, sort_order) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order, updated_at = NOW()
		RETURNING id`

	upsertBrandQuery = `
		INSERT INTO brands (name, slug, logo_url) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, logo_url = EXCLUDED.logo_url, updated_at = NOW()
		RETURNING id`

	upsertCategoryQuery = `
		INSERT INTO categories (name, slug, parent_id) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id, updated_at = NOW()
		RETURNING id`

	upsertProductQuery = `
		INSERT INTO products (id, name, description, brand_id, category_id, gender_id, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
		       name = EXCLUDED.name,
		       description = EXCLUDED.description,
		       brand_id = EXCLUDED.brand_id,
		       category_id = EXCLUDED.category_id,
		       gender_id = EXCLUDED.gender_id,
		       is_published = EXCLUDED.is_published,
		       updated_at = NOW()`

	upsertVariantQuery = `
		INSERT INTO product_variants (product_id, sku, price, sale_price, color_id, size_id, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sku) DO UPDATE SET
		       product_id = EXCLUDED.product_id,
		       price = EXCLUDED.price,
		       sale_price = EXCLUDED.sale_price,
		       color_id = EXCLUDED.color_id,
		       size_id = EXCLUDED.size_id,
		       in_stock = EXCLUDED.in_stock,
		       updated_at = NOW()
		RETURNING id`

	deleteImagesQuery = `DELETE FROM product_images WHERE product_id = $1`

	insertImageQuery = `
		INSERT INTO product_images (product_id, variant_id, url, sort_order, is_primary)
		VALUES ($1, $2, $3, $4, $5)`
)

// Stats counts the rows written by a load.
type Stats struct {
	Lookups  int
	Products int
	Variants int
	Images   int
}

// Loader writes a normalized catalog in a single transaction. Lookup rows
// are upserted by slug, products by id and variants by sku; a product's
// images are replaced wholesale.
type Loader struct {
	db     database.DBTX
	logger *slog.Logger
}

// NewLoader creates a loader on db.
func NewLoader(db database.DBTX, logger *slog.Logger) *Loader {
	return &Loader{db: db, logger: logger}
}

// Load writes c, which must have passed Normalize. Nothing is committed
// when any row fails.
func (l *Loader) Load(ctx context.Context, c *Catalog) (stats Stats, err error) {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	ids := make(map[string]map[string]string)
	upsert := func(kind, query, key string, args ...any) error {
		var id string
		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("upsert %s %q: %w", kind, key, err)
		}
		if ids[kind] == nil {
			ids[kind] = make(map[string]string)
		}
		ids[kind][key] = id
		stats.Lookups++
		return nil
	}
	lookup := func(kind, key string) *string {
		if key == "" {
			return nil
		}
		id := ids[kind][key]
		return &id
	}

	for _, g := range c.Genders {
		if err = upsert("gender", upsertGenderQuery, g.Slug, g.Label, g.Slug); err != nil {
			return stats, err
		}
	}
	for _, col := range c.Colors {
		if err = upsert("color", upsertColorQuery, col.Slug, col.Name, col.Slug, col.Hex); err != nil {
			return stats, err
		}
	}
	for _, s := range c.Sizes {
		if err = upsert("size", upsertSizeQuery, s.Slug, s.Name, s.Slug, s.SortOrder); err != nil {
			return stats, err
		}
	}
	for _, b := range c.Brands {
		if err = upsert("brand", upsertBrandQuery, b.Slug, b.Name, b.Slug, b.LogoURL); err != nil {
			return stats, err
		}
	}
	for _, cat := range c.Categories {
		if err = upsert("category", upsertCategoryQuery, cat.Slug, cat.Name, cat.Slug, lookup("category", cat.Parent)); err != nil {
			return stats, err
		}
	}

	for _, p := range c.Products {
		published := p.Published == nil || *p.Published
		if _, err = tx.Exec(ctx, upsertProductQuery,
			p.ID, p.Name, p.Description,
			lookup("brand", p.Brand), lookup("category", p.Category), lookup("gender", p.Gender),
			published,
		); err != nil {
			return stats, fmt.Errorf("upsert product %q: %w", p.Slug, err)
		}
		stats.Products++

		variantIDs := make(map[string]string, len(p.Variants))
		for _, v := range p.Variants {
			var id string
			if err = tx.QueryRow(ctx, upsertVariantQuery,
				p.ID, v.SKU, decimal.RequireFromString(v.Price), salePrice(v.SalePrice),
				ids["color"][v.Color], ids["size"][v.Size], v.Stock,
			).Scan(&id); err != nil {
				return stats, fmt.Errorf("upsert variant %q: %w", v.SKU, err)
			}
			variantIDs[v.SKU] = id
			stats.Variants++
		}

		if _, err = tx.Exec(ctx, deleteImagesQuery, p.ID); err != nil {
			return stats, fmt.Errorf("clear images of %q: %w", p.Slug, err)
		}
		for i, img := range p.Images {
			var variantID *string
			if img.SKU != "" {
				id := variantIDs[img.SKU]
				variantID = &id
			}
			if _, err = tx.Exec(ctx, insertImageQuery, p.ID, variantID, img.URL, i, img.Primary); err != nil {
				return stats, fmt.Errorf("insert image of %q: %w", p.Slug, err)
			}
			stats.Images++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit seed transaction: %w", err)
	}
	l.logger.InfoContext(ctx, "catalog seeded",
		slog.Int("lookups", stats.Lookups),
		slog.Int("products", stats.Products),
		slog.Int("variants", stats.Variants),
		slog.Int("images", stats.Images),
	)
	return stats, nil
}

func salePrice(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d := decimal.RequireFromString(s)
	return &d
}
