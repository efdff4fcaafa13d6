package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

const insertReviewQuery = `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

const listReviewsQuery = `
		SELECT r.id, r.product_id, r.user_id, COALESCE(u.name, ''), r.rating, r.comment, r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC, r.id
		LIMIT $2`

// ReviewRepository implements review persistence using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a review. An unknown product or user is reported as not
// found.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	ctx, end := database.TraceQuery(ctx, "reviews.Create", insertReviewQuery)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, insertReviewQuery,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperrors.NotFound("product", review.ProductID)
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByProduct returns the newest reviews of a product first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, limit int) (_ []domain.Review, err error) {
	if limit <= 0 {
		limit = 20
	}
	ctx, end := database.TraceQuery(ctx, "reviews.ListByProduct", listReviewsQuery)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listReviewsQuery, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.UserID,
			&rv.AuthorName,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}
