package service

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

type catalogFixture struct {
	products *mockProductRepository
	lookups  *mockLookupRepository
	reviews  *mockReviewRepository
	cache    *mockProductCache
	svc      *CatalogService
}

func newCatalogFixture(withCache bool) *catalogFixture {
	f := &catalogFixture{
		products: new(mockProductRepository),
		lookups:  new(mockLookupRepository),
		reviews:  new(mockReviewRepository),
		cache:    new(mockProductCache),
	}
	opts := CatalogOptions{PlaceholderURL: "/ph.jpg", RecommendedLimit: 4, ReviewLimit: 10}
	if withCache {
		f.svc = NewCatalogService(f.products, f.lookups, f.reviews, f.cache, opts, newTestLogger())
	} else {
		f.svc = NewCatalogService(f.products, f.lookups, f.reviews, nil, opts, newTestLogger())
	}
	return f
}

func summaries() []domain.ProductSummary {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.ProductSummary{
		{ID: "p1", Name: "Air Runner", Gender: "men", Price: domain.MustMoney("120"), Sizes: []string{"42"}, CreatedAt: t0},
		{ID: "p2", Name: "Trail Blazer", Gender: "women", Price: domain.MustMoney("45"), Sizes: []string{"38"}, CreatedAt: t0.Add(time.Hour)},
		{ID: "p3", Name: "City Walk", Gender: "men", Price: domain.MustMoney("80"), Sizes: []string{"42", "43"}, CreatedAt: t0.Add(2 * time.Hour)},
	}
}

func ids(items []domain.ProductSummary) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestCatalogService_ListProducts(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	f.products.On("ListSummaries", ctx).Return(summaries(), nil)

	q, _ := url.ParseQuery("gender=men&sort=price_asc")
	res, err := f.svc.ListProducts(ctx, catalog.ParseFilter(q), pagination.Params{Page: 1, PerPage: 24})
	require.NoError(t, err)

	assert.Equal(t, []string{"p3", "p1"}, ids(res.Data))
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	assert.False(t, res.HasNext)
}

func TestCatalogService_ListProducts_Pages(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	f.products.On("ListSummaries", ctx).Return(summaries(), nil)

	res, err := f.svc.ListProducts(ctx, catalog.ParseFilter(url.Values{}), pagination.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, ids(res.Data))
	assert.Equal(t, 3, res.TotalCount)
	assert.True(t, res.HasPrev)

	res, err = f.svc.ListProducts(ctx, catalog.ParseFilter(url.Values{}), pagination.Params{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.NotNil(t, res.Data)
}

func TestCatalogService_ListProducts_PageBeyondRange(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	f.products.On("ListSummaries", ctx).Return(summaries(), nil)

	page := pagination.FromQuery(url.Values{"page": {strconv.Itoa(math.MaxInt)}}, 20)
	res, err := f.svc.ListProducts(ctx, catalog.ParseFilter(url.Values{}), page)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, 3, res.TotalCount)
	assert.False(t, res.HasNext)
}

func TestCatalogService_ListProducts_Error(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	f.products.On("ListSummaries", ctx).Return(nil, errors.New("db down"))

	_, err := f.svc.ListProducts(ctx, catalog.Filter{}, pagination.Params{Page: 1, PerPage: 24})
	assert.Error(t, err)
}

func TestCatalogService_Filters(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	f.lookups.On("Genders", ctx).Return([]domain.Gender{{ID: "g1", Label: "Men", Slug: "men"}}, nil)
	f.lookups.On("Sizes", ctx).Return([]domain.Size{{ID: "s1", Name: "42", Slug: "42"}}, nil)
	f.lookups.On("Colors", ctx).Return([]domain.Color{{ID: "c1", Name: "Black", Slug: "black"}}, nil)

	facets, err := f.svc.Filters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.FilterOption{{Label: "Men", Value: "men"}}, facets.Genders)
	assert.Equal(t, []domain.FilterOption{{Label: "Black", Value: "black"}}, facets.Colors)
	assert.Len(t, facets.Prices, len(catalog.PriceBuckets))
	assert.NotEmpty(t, facets.Sorts)
}

func strPtr(s string) *string { return &s }

func expectDetailLoad(f *catalogFixture, ctx context.Context, product *domain.Product) {
	black := &domain.Color{ID: "c1", Name: "Black", Slug: "black"}
	f.products.On("GetByID", ctx, product.ID).Return(product, nil)
	f.products.On("Variants", ctx, product.ID).Return([]domain.Variant{
		{ID: "v1", Price: "99.00", SalePrice: strPtr("120.00"), Color: black, Size: &domain.Size{ID: "s2", Name: "10"}},
		{ID: "v2", Price: "89.00", Color: black, Size: &domain.Size{ID: "s1", Name: "9"}},
	}, nil)
	f.products.On("Images", ctx, product.ID).Return([]domain.Image{}, nil)
	f.reviews.On("ListByProduct", ctx, product.ID, 10).Return([]domain.Review{}, nil)
	f.products.On("Recommended", ctx, product, 4).Return([]domain.ProductSummary{}, nil)
}

func TestCatalogService_GetProductDetail(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	product := &domain.Product{ID: "p1", Name: "Air Runner"}
	expectDetailLoad(f, ctx, product)

	d, err := f.svc.GetProductDetail(ctx, "p1")
	require.NoError(t, err)

	require.Len(t, d.ColorGroups, 1)
	g := d.ColorGroups[0]
	assert.Equal(t, "c1", g.ID)
	assert.Equal(t, []string{"9", "10"}, g.Sizes)
	require.Len(t, g.Images, 1)
	assert.Equal(t, "ph-c1", g.Images[0].ID)
	assert.Equal(t, "Air Runner - Black", g.Images[0].Alt)

	assert.Equal(t, "89", d.Pricing.Display.String())
	assert.Equal(t, "99", d.Pricing.Ceiling.String())
	assert.Equal(t, "120", d.Pricing.CompareAt.String())
	require.NotNil(t, d.Pricing.DiscountPercent)
	assert.Equal(t, 26, *d.Pricing.DiscountPercent)
}

func TestCatalogService_GetProductDetail_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(false)
	f.products.On("GetByID", ctx, "nope").Return(nil, apperrors.NotFound("product", "nope"))

	_, err := f.svc.GetProductDetail(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_GetProductDetail_CacheHit(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(true)
	cached := &domain.ProductDetail{Product: domain.Product{ID: "p1"}}
	f.cache.On("Get", ctx, "p1").Return(cached, nil)

	d, err := f.svc.GetProductDetail(ctx, "p1")
	require.NoError(t, err)
	assert.Same(t, cached, d)
	f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCatalogService_GetProductDetail_CacheFailureBypassed(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(true)
	product := &domain.Product{ID: "p1", Name: "Air Runner"}
	expectDetailLoad(f, ctx, product)
	f.cache.On("Get", ctx, "p1").Return(nil, errors.New("redis down"))
	f.cache.On("Set", ctx, mock.AnythingOfType("*domain.ProductDetail")).Return(errors.New("redis down"))

	d, err := f.svc.GetProductDetail(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", d.Product.ID)
	f.cache.AssertExpectations(t)
}
