package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/auth"
	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/service"
	"github.com/utafrali/EcommerceGo/storefront/pkg/health"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

const (
	productID = "8c4ba3a2-4d5e-4a53-9d0b-0f3a1c2d9e71"
	userID    = "u-1"
	goodToken = "session-abc"
)

// =============================================================================
// Mocks
// =============================================================================

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListProducts(ctx context.Context, f catalog.Filter, page pagination.Params) (pagination.Result[domain.ProductSummary], error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).(pagination.Result[domain.ProductSummary]), args.Error(1)
}

func (m *mockCatalog) Filters(ctx context.Context) (*domain.FilterFacets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterFacets), args.Error(1)
}

func (m *mockCatalog) GetProductDetail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) ListReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviews) CreateReview(ctx context.Context, in service.CreateReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

// mockAccounts resolves goodToken to a fixed user without going through the
// mock so that the session middleware stays quiet in every test.
type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) SignUp(ctx context.Context, in auth.SignUpInput, guestToken string) (*auth.Result, error) {
	args := m.Called(ctx, in, guestToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *mockAccounts) SignIn(ctx context.Context, in auth.SignInInput, guestToken string) (*auth.Result, error) {
	args := m.Called(ctx, in, guestToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *mockAccounts) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAccounts) CurrentUser(_ context.Context, token string) *domain.User {
	if token == goodToken {
		return &domain.User{ID: userID, Email: "ada@example.com"}
	}
	return nil
}

type mockGuests struct{ mock.Mock }

func (m *mockGuests) Ensure(ctx context.Context, token string) (*domain.Guest, bool, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Guest), args.Bool(1), args.Error(2)
}

func (m *mockGuests) Lookup(ctx context.Context, token string) (*domain.Guest, bool, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Guest), args.Bool(1), args.Error(2)
}

type mockWishlists struct{ mock.Mock }

func (m *mockWishlists) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

func (m *mockWishlists) Add(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockWishlists) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

// =============================================================================
// Helpers
// =============================================================================

type fixture struct {
	catalog   *mockCatalog
	reviews   *mockReviews
	accounts  *mockAccounts
	guests    *mockGuests
	wishlists *mockWishlists
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog:   new(mockCatalog),
		reviews:   new(mockReviews),
		accounts:  new(mockAccounts),
		guests:    new(mockGuests),
		wishlists: new(mockWishlists),
	}
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	f.router = NewRouter(Services{
		Catalog:   f.catalog,
		Reviews:   f.reviews,
		Accounts:  f.accounts,
		Guests:    f.guests,
		Wishlists: f.wishlists,
	}, RouterConfig{
		CORSOrigins:       []string{"http://localhost:3000"},
		Cookies:           CookieConfig{Secure: true, GuestTTL: service.DefaultGuestTTL},
		ListingPageSize:   12,
		AuthRatePerMinute: 600,
		AuthRateBurst:     100,
		Done:              done,
	}, health.NewHandler(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Cleanup(func() {
		f.catalog.AssertExpectations(t)
		f.reviews.AssertExpectations(t)
		f.accounts.AssertExpectations(t)
		f.guests.AssertExpectations(t)
		f.wishlists.AssertExpectations(t)
	})
	return f
}

type requestOption func(*http.Request)

func withCookie(name, value string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

func signedIn() requestOption { return withCookie(SessionCookieName, goodToken) }

func (f *fixture) do(method, target, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
