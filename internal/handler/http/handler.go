// Package http exposes the storefront API over chi.
package http

import (
	"context"

	"github.com/utafrali/EcommerceGo/storefront/internal/auth"
	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/service"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

// Catalog serves the listing and product pages.
type Catalog interface {
	ListProducts(ctx context.Context, f catalog.Filter, page pagination.Params) (pagination.Result[domain.ProductSummary], error)
	Filters(ctx context.Context) (*domain.FilterFacets, error)
	GetProductDetail(ctx context.Context, id string) (*domain.ProductDetail, error)
}

// Reviews reads and writes product reviews.
type Reviews interface {
	ListReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error)
	CreateReview(ctx context.Context, in service.CreateReviewInput) (*domain.Review, error)
}

// Accounts authenticates customers.
type Accounts interface {
	SignUp(ctx context.Context, in auth.SignUpInput, guestToken string) (*auth.Result, error)
	SignIn(ctx context.Context, in auth.SignInInput, guestToken string) (*auth.Result, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) *domain.User
}

// Guests manages anonymous sessions.
type Guests interface {
	Ensure(ctx context.Context, token string) (*domain.Guest, bool, error)
	Lookup(ctx context.Context, token string) (*domain.Guest, bool, error)
}

// Wishlists manages saved products.
type Wishlists interface {
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

var (
	_ Catalog   = (*service.CatalogService)(nil)
	_ Reviews   = (*service.ReviewService)(nil)
	_ Accounts  = (*service.AccountService)(nil)
	_ Guests    = (*service.GuestService)(nil)
	_ Wishlists = (*service.WishlistService)(nil)
)
