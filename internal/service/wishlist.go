package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// WishlistService manages the saved products of signed-in users.
type WishlistService struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
	logger    *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
		logger:    logger,
	}
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := s.wishlists.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

// Add saves a published product. Saving it again is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return apperrors.NotFound("product", productID)
	}
	if err := s.wishlists.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}

	s.logger.DebugContext(ctx, "product saved to wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.wishlists.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}
