package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

const (
	listWishlistQuery = `
		SELECT w.id, w.user_id, w.added_at,
		       p.id, p.name, p.description, COALESCE(g.slug, ''),
		       (SELECT MIN(v.price)::text FROM product_variants v WHERE v.product_id = p.id),
		       COALESCE((SELECT i.url FROM product_images i
		                 WHERE i.product_id = p.id
		                 ORDER BY i.is_primary DESC, i.sort_order, i.id LIMIT 1), ''),
		       p.rating::float8, p.created_at
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		LEFT JOIN genders g ON g.id = p.gender_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC, w.id`

	addWishlistQuery = `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	removeWishlistQuery = `DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`
)

// WishlistRepository implements wishlist persistence using PostgreSQL.
type WishlistRepository struct {
	pool database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool database.DBTX) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// List returns the user's saved products, most recent first.
func (r *WishlistRepository) List(ctx context.Context, userID string) (_ []domain.WishlistItem, err error) {
	ctx, end := database.TraceQuery(ctx, "wishlists.List", listWishlistQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listWishlistQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var (
			it    domain.WishlistItem
			price *string
		)
		if err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.AddedAt,
			&it.Product.ID,
			&it.Product.Name,
			&it.Product.Description,
			&it.Product.Gender,
			&price,
			&it.Product.ImageURL,
			&it.Product.Rating,
			&it.Product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		if price != nil {
			if d, ok := catalog.ParsePrice(*price); ok {
				it.Product.Price = domain.MoneyPtr(&d)
			}
		}
		it.Product.Colors = []string{}
		it.Product.Sizes = []string{}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}
	return items, nil
}

// Add saves a product. Saving it twice is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) (err error) {
	ctx, end := database.TraceQuery(ctx, "wishlists.Add", addWishlistQuery)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, addWishlistQuery, userID, productID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

// Remove unsaves a product. Removing an absent product is a no-op.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) (err error) {
	ctx, end := database.TraceQuery(ctx, "wishlists.Remove", removeWishlistQuery)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, removeWishlistQuery, userID, productID); err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	return nil
}
