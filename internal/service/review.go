package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/event"
	"github.com/utafrali/EcommerceGo/storefront/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// ReviewService manages product reviews and the ratings derived from them.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	catalog  *CatalogService
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	catalog *CatalogService,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
	}
}

// CreateReviewInput holds the parameters for writing a review.
type CreateReviewInput struct {
	UserID    string
	ProductID string
	Rating    int
	Comment   string
}

func (s *ReviewService) ensureProduct(ctx context.Context, productID string) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return apperrors.NotFound("product", productID)
	}
	return nil
}

// ListReviews returns the newest reviews of a product.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview stores a review by a signed-in user. The product rating is
// updated asynchronously by the review.created consumer.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	if in.UserID == "" {
		return nil, apperrors.Unauthorized("sign in to write a review")
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if err := s.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Rating:    in.Rating,
		CreatedAt: time.Now().UTC(),
	}
	if c := strings.TrimSpace(in.Comment); c != "" {
		review.Comment = &c
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}
	s.catalog.Invalidate(ctx, review.ProductID)

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)
	return review, nil
}

// RecomputeRating refreshes the stored rating of a product from its
// reviews and drops the stale detail page.
func (s *ReviewService) RecomputeRating(ctx context.Context, productID string) error {
	if err := s.products.RefreshRating(ctx, productID); err != nil {
		return fmt.Errorf("refresh rating: %w", err)
	}
	s.catalog.Invalidate(ctx, productID)
	return nil
}
