package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

func TestWishlistService(t *testing.T) {
	ctx := context.Background()
	wishlists := new(mockWishlistRepository)
	products := new(mockProductRepository)
	svc := NewWishlistService(wishlists, products, newTestLogger())

	products.On("Exists", ctx, "p1").Return(true, nil)
	products.On("Exists", ctx, "p9").Return(false, nil)
	wishlists.On("Add", ctx, "u1", "p1").Return(nil)
	wishlists.On("Remove", ctx, "u1", "p1").Return(nil)
	wishlists.On("List", ctx, "u1").Return([]domain.WishlistItem{{ID: "w1", Product: domain.ProductSummary{ID: "p1"}}}, nil)

	require.NoError(t, svc.Add(ctx, "u1", "p1"))
	assert.ErrorIs(t, svc.Add(ctx, "u1", "p9"), apperrors.ErrNotFound)
	wishlists.AssertNotCalled(t, "Add", ctx, "u1", "p9")

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Remove(ctx, "u1", "p1"))
	wishlists.AssertExpectations(t)
	products.AssertNotCalled(t, "Exists", mock.Anything, "p2")
}
