package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"

	"github.com/utafrali/EcommerceGo/storefront/internal/auth"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/event"
	pkgkafka "github.com/utafrali/EcommerceGo/storefront/pkg/kafka"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Kafka ---

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func (w *recordingWriter) topics() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.msgs))
	for i, m := range w.msgs {
		out[i] = m.Topic
	}
	return out
}

func newTestProducer(w *recordingWriter) *event.Producer {
	return event.NewProducer(pkgkafka.NewProducerWithWriter(w, newTestLogger()), newTestLogger())
}

// --- Mock ProductRepository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) ListSummaries(ctx context.Context) ([]domain.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSummary), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) Variants(ctx context.Context, productID string) ([]domain.Variant, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Variant), args.Error(1)
}

func (m *mockProductRepository) Images(ctx context.Context, productID string) ([]domain.Image, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *mockProductRepository) Recommended(ctx context.Context, product *domain.Product, limit int) ([]domain.ProductSummary, error) {
	args := m.Called(ctx, product, limit)
	return args.Get(0).([]domain.ProductSummary), args.Error(1)
}

func (m *mockProductRepository) RefreshRating(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *mockProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock LookupRepository ---

type mockLookupRepository struct {
	mock.Mock
}

func (m *mockLookupRepository) Genders(ctx context.Context) ([]domain.Gender, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Gender), args.Error(1)
}

func (m *mockLookupRepository) Colors(ctx context.Context) ([]domain.Color, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Color), args.Error(1)
}

func (m *mockLookupRepository) Sizes(ctx context.Context) ([]domain.Size, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Size), args.Error(1)
}

// --- Mock ReviewRepository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, productID, limit)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// --- Mock ProductCache ---

type mockProductCache struct {
	mock.Mock
}

func (m *mockProductCache) Get(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}

func (m *mockProductCache) Set(ctx context.Context, detail *domain.ProductDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *mockProductCache) Invalidate(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Mock GuestRepository ---

type mockGuestRepository struct {
	mock.Mock
}

func (m *mockGuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *mockGuestRepository) GetByToken(ctx context.Context, token string) (*domain.Guest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guest), args.Error(1)
}

func (m *mockGuestRepository) DeleteExpired(ctx context.Context, token string, now time.Time) (int64, error) {
	args := m.Called(ctx, token, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGuestRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock WishlistRepository ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

func (m *mockWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

// --- Mock auth.Provider ---

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SignUp(ctx context.Context, in auth.SignUpInput) (*auth.Result, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *mockProvider) SignIn(ctx context.Context, in auth.SignInInput) (*auth.Result, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *mockProvider) GetSession(ctx context.Context, token string) (*auth.Result, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *mockProvider) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
