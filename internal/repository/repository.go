package repository

import (
	"context"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// ProductRepository reads the catalog.
type ProductRepository interface {
	// ListSummaries returns every published product with the data the
	// listing filters need.
	ListSummaries(ctx context.Context) ([]domain.ProductSummary, error)

	// GetByID returns the product with its brand, category and gender.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Variants returns the variants of a product with color and size,
	// ordered by creation.
	Variants(ctx context.Context, productID string) ([]domain.Variant, error)

	// Images returns product and variant images ordered by sort order.
	Images(ctx context.Context, productID string) ([]domain.Image, error)

	// Recommended returns other products sharing the category or gender.
	Recommended(ctx context.Context, product *domain.Product, limit int) ([]domain.ProductSummary, error)

	// RefreshRating recomputes rating and review count from reviews.
	RefreshRating(ctx context.Context, productID string) error

	// Exists reports whether a published product has the given id.
	Exists(ctx context.Context, id string) (bool, error)
}

// LookupRepository reads the filter lookup tables.
type LookupRepository interface {
	Genders(ctx context.Context) ([]domain.Gender, error)
	Colors(ctx context.Context) ([]domain.Color, error)
	Sizes(ctx context.Context) ([]domain.Size, error)
}

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]domain.Review, error)
}

// GuestRepository persists guest sessions.
type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) error

	// GetByToken returns ErrNotFound when no row carries token.
	GetByToken(ctx context.Context, token string) (*domain.Guest, error)

	// DeleteExpired deletes the row for token if it expired before now and
	// reports how many rows were removed. Zero is not an error.
	DeleteExpired(ctx context.Context, token string, now time.Time) (int64, error)

	// DeleteByToken removes the row for token regardless of expiry.
	DeleteByToken(ctx context.Context, token string) (int64, error)
}

// UserRepository persists users and their credential accounts.
type UserRepository interface {
	// CreateWithAccount inserts both rows in one transaction. A taken
	// email yields ErrAlreadyExists.
	CreateWithAccount(ctx context.Context, user *domain.User, account *domain.Account) error

	GetByID(ctx context.Context, id string) (*domain.User, error)

	// FindCredential returns the user and credential account for email.
	FindCredential(ctx context.Context, email string) (*domain.User, *domain.Account, error)
}

// SessionRepository persists signed-in sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// WishlistRepository persists saved products.
type WishlistRepository interface {
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)

	// Add is a no-op when the product is already saved.
	Add(ctx context.Context, userID, productID string) error

	Remove(ctx context.Context, userID, productID string) error
}

// ProductCache holds assembled product detail pages.
type ProductCache interface {
	// Get returns nil without error on a miss.
	Get(ctx context.Context, productID string) (*domain.ProductDetail, error)
	Set(ctx context.Context, detail *domain.ProductDetail) error
	Invalidate(ctx context.Context, productID string) error
}
